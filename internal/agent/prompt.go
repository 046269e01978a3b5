package agent

import "fmt"

// BaselinePromptTemplate is the instruction text for the baseline author.
const BaselinePromptTemplate = `You are the BASELINE AUTHOR in a coding competition, round %d.

## Your Role
Author a small but realistic working project from scratch in the current
directory. Another participant will inject a bug into a copy of your project,
and a third will try to fix it.

## Requirements
1. The project must build and its tests must pass via ` + "`%s`" + `
2. Include meaningful tests - they are the contract later phases are judged by
3. Keep the project self-contained; do not touch paths outside this directory

## CRITICAL: Outcome File Requirement

**YOUR TASK IS NOT DONE UNTIL YOU WRITE THE OUTCOME FILE.**

**File:** ` + "`" + OutcomeFileName + "`" + ` (in the current directory)

**Required JSON structure:**
` + "```json" + `
{
  "success": true,
  "message": "Brief description of the project you created"
}
` + "```" + `

Set success to false with an explanatory message if you cannot complete the
task. The file MUST be valid JSON, not markdown or prose.`

// BugInjectionPromptTemplate is the instruction text for the bug injector.
const BugInjectionPromptTemplate = `You are the BUG INJECTOR in a coding competition, round %d.

## Your Role
The current directory holds a copy of another participant's working project.
Introduce one realistic, subtle defect - the kind a tired developer ships on a
Friday. A third participant will try to find and fix it.

## Requirements
1. The project must still build; at least one test must now fail via ` + "`%s`" + `
2. Do not break the build outright and do not delete tests
3. Do not touch paths outside this directory

## CRITICAL: Outcome File Requirement

**YOUR TASK IS NOT DONE UNTIL YOU WRITE THE OUTCOME FILE.**

**File:** ` + "`" + OutcomeFileName + "`" + ` (in the current directory)

**Required JSON structure:**
` + "```json" + `
{
  "success": true,
  "message": "One-sentence description of the defect (do not reveal the fix)"
}
` + "```" + `

Set success to false with an explanatory message if you cannot complete the
task. The file MUST be valid JSON, not markdown or prose.`

// FixAttemptPromptTemplate is the instruction text for the fixer.
const FixAttemptPromptTemplate = `You are the FIXER in a coding competition, round %d.

## Your Role
The current directory holds a project with one deliberately injected defect.
Find it and repair it.

## Requirements
1. All tests must pass again via ` + "`%s`" + `
2. Fix the defect; do not rewrite the project or delete failing tests
3. Do not touch paths outside this directory

## CRITICAL: Outcome File Requirement

**YOUR TASK IS NOT DONE UNTIL YOU WRITE THE OUTCOME FILE.**

**File:** ` + "`" + OutcomeFileName + "`" + ` (in the current directory)

**Required JSON structure:**
` + "```json" + `
{
  "success": true,
  "message": "Brief description of the defect you found and how you fixed it"
}
` + "```" + `

Set success to false with an explanatory message if you cannot complete the
task. The file MUST be valid JSON, not markdown or prose.`

// FormatBaselinePrompt builds the baseline author's instructions.
func FormatBaselinePrompt(round int, verifyCommand string) string {
	return fmt.Sprintf(BaselinePromptTemplate, round, verifyCommand)
}

// FormatBugInjectionPrompt builds the bug injector's instructions.
func FormatBugInjectionPrompt(round int, verifyCommand string) string {
	return fmt.Sprintf(BugInjectionPromptTemplate, round, verifyCommand)
}

// FormatFixAttemptPrompt builds the fixer's instructions.
func FormatFixAttemptPrompt(round int, verifyCommand string) string {
	return fmt.Sprintf(FixAttemptPromptTemplate, round, verifyCommand)
}
