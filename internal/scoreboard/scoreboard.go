// Package scoreboard renders the final competition standings for the CLI.
package scoreboard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sesigl/ai-coding-arena/internal/scoring"
	"github.com/sesigl/ai-coding-arena/internal/util"
)

// maxLineWidth caps styled rows so long participant names cannot wreck the
// table on narrow terminals.
const maxLineWidth = 100

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7D56F4"))

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#AFAFAF"))

	positiveStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575"))
	negativeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F87"))
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C6C6C"))
)

const rowFormat = "%-5s %-20s %7s %6s %12s %10s %10s"

// Render returns the styled scoreboard for terminal output.
func Render(summary scoring.Summary) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Final Standings"))
	b.WriteString(mutedStyle.Render(fmt.Sprintf("  (%d round(s) completed)", summary.RoundsCompleted)))
	b.WriteString("\n")
	b.WriteString(headerStyle.Render(header()))
	b.WriteString("\n")

	for i, entry := range summary.Entries {
		line := row(i+1, entry)
		switch {
		case entry.Score > 0:
			line = positiveStyle.Render(line)
		case entry.Score < 0:
			line = negativeStyle.Render(line)
		}
		b.WriteString(util.TruncateANSI(line, maxLineWidth))
		b.WriteString("\n")
	}
	return b.String()
}

// Plain returns the scoreboard without any styling, for non-terminal output.
func Plain(summary scoring.Summary) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Final Standings (%d round(s) completed)\n", summary.RoundsCompleted)
	b.WriteString(header())
	b.WriteString("\n")
	for i, entry := range summary.Entries {
		b.WriteString(row(i+1, entry))
		b.WriteString("\n")
	}
	return b.String()
}

func header() string {
	return fmt.Sprintf(rowFormat,
		"Rank", "Participant", "Score", "Fixes", "Bugs Solved", "Base Fail", "Inj Fail")
}

func row(rank int, entry scoring.SummaryEntry) string {
	return fmt.Sprintf(rowFormat,
		fmt.Sprintf("%d.", rank),
		string(entry.Participant),
		fmt.Sprintf("%d", entry.Score),
		fmt.Sprintf("%d", entry.Card.Fixes),
		fmt.Sprintf("%d", entry.Card.BugsSolved),
		fmt.Sprintf("%d", entry.Card.BaselineFailures),
		fmt.Sprintf("%d", entry.Card.BugInjectionFailures))
}
