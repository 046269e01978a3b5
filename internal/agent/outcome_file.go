package agent

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// OutcomeFileName is the sentinel file a CLI agent writes into its workspace
// when its task is done.
const OutcomeFileName = ".arena-outcome.json"

// outcomeFile is the wire form of the sentinel file.
type outcomeFile struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// OutcomeFilePath returns the sentinel path for a workspace.
func OutcomeFilePath(workspace string) string {
	return filepath.Join(workspace, OutcomeFileName)
}

// smart and angled quote variants LLMs substitute for plain ASCII quotes
var quoteReplacer = strings.NewReplacer(
	"“", `"`, "”", `"`, "„", `"`, "‟", `"`,
	"«", `"`, "»", `"`, "＂", `"`,
	"‘", `'`, "’", `'`, "‚", `'`, "‛", `'`,
	"‹", `'`, "›", `'`,
)

var codeFencePattern = regexp.MustCompile("(?s)```(?:json)?\\s*\n?(.*?)\n?```")

// sanitizeJSON cleans up common LLM quirks before parsing: smart quotes,
// markdown code fences around the payload, and stray prose before or after
// the JSON object.
func sanitizeJSON(data []byte) []byte {
	content := quoteReplacer.Replace(string(data))

	if m := codeFencePattern.FindStringSubmatch(content); len(m) > 1 {
		content = m[1]
	}

	content = strings.TrimSpace(content)
	if idx := strings.Index(content, "{"); idx > 0 {
		content = content[idx:]
	}
	if idx := strings.LastIndex(content, "}"); idx >= 0 && idx < len(content)-1 {
		content = content[:idx+1]
	}

	return []byte(strings.TrimSpace(content))
}

// ParseOutcomeFile reads and parses the workspace's sentinel file, tolerating
// the usual LLM output quirks.
func ParseOutcomeFile(workspace string) (Outcome, error) {
	data, err := os.ReadFile(OutcomeFilePath(workspace))
	if err != nil {
		return Outcome{}, err
	}

	var parsed outcomeFile
	if err := json.Unmarshal(sanitizeJSON(data), &parsed); err != nil {
		preview := string(data)
		if len(preview) > 200 {
			preview = preview[:200] + "..."
		}
		return Outcome{}, fmt.Errorf("outcome file is not valid JSON (content preview: %q): %w", preview, err)
	}

	if strings.TrimSpace(parsed.Message) == "" {
		return Outcome{}, fmt.Errorf("outcome file has no message")
	}
	return Outcome{Success: parsed.Success, Message: parsed.Message}, nil
}
