package agent

import (
	"strings"
	"testing"
)

func TestFormatPromptsEmbedRoundAndVerifyCommand(t *testing.T) {
	builders := map[string]func(int, string) string{
		"baseline": FormatBaselinePrompt,
		"inject":   FormatBugInjectionPrompt,
		"fix":      FormatFixAttemptPrompt,
	}

	for name, build := range builders {
		t.Run(name, func(t *testing.T) {
			prompt := build(3, "make verify")
			if !strings.Contains(prompt, "round 3") {
				t.Errorf("prompt missing round number:\n%s", prompt)
			}
			if !strings.Contains(prompt, "make verify") {
				t.Errorf("prompt missing verify command:\n%s", prompt)
			}
			if !strings.Contains(prompt, OutcomeFileName) {
				t.Errorf("prompt missing outcome file name:\n%s", prompt)
			}
			if !strings.Contains(prompt, `"success"`) {
				t.Errorf("prompt missing outcome schema:\n%s", prompt)
			}
		})
	}
}
