package scoreboard

import (
	"strings"
	"testing"

	"github.com/sesigl/ai-coding-arena/internal/scoring"
)

func sampleSummary() scoring.Summary {
	return scoring.Summary{
		RoundsCompleted: 3,
		Entries: []scoring.SummaryEntry{
			{Participant: "carol", Score: 2, Card: scoring.ScoreCard{Score: 2, Fixes: 1, BugsSolved: 1}},
			{Participant: "bob", Score: 1, Card: scoring.ScoreCard{Score: 1, Fixes: 1}},
			{Participant: "alice", Score: -1, Card: scoring.ScoreCard{Score: -1, BaselineFailures: 1}},
		},
	}
}

func TestPlainListsParticipantsInOrder(t *testing.T) {
	out := Plain(sampleSummary())

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 5 {
		t.Fatalf("expected 5 lines, got %d:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[0], "3 round(s) completed") {
		t.Errorf("title = %q", lines[0])
	}
	if !strings.Contains(lines[1], "Rank") || !strings.Contains(lines[1], "Bugs Solved") {
		t.Errorf("header = %q", lines[1])
	}

	wantOrder := []string{"carol", "bob", "alice"}
	for i, name := range wantOrder {
		if !strings.Contains(lines[2+i], name) {
			t.Errorf("row %d = %q, want participant %q", i+1, lines[2+i], name)
		}
	}
	if !strings.Contains(lines[2], "1.") {
		t.Errorf("first row missing rank: %q", lines[2])
	}
}

func TestRenderContainsEveryParticipant(t *testing.T) {
	out := Render(sampleSummary())
	for _, name := range []string{"carol", "bob", "alice"} {
		if !strings.Contains(out, name) {
			t.Errorf("styled output missing %q", name)
		}
	}
}

func TestPlainEmptySummary(t *testing.T) {
	out := Plain(scoring.Summary{})
	if !strings.Contains(out, "0 round(s) completed") {
		t.Errorf("out = %q", out)
	}
}
