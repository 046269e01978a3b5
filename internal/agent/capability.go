// Package agent defines the pluggable agent capability a competition invokes
// for each task, together with the adapters that implement it: a scriptable
// mock for tests and a CLI adapter that shells out to a real coding agent.
package agent

import "context"

// Outcome is the definitive result of one agent task. A task either succeeds
// or fails; there is no partial credit.
type Outcome struct {
	Success bool
	Message string
}

// Failure builds a failed outcome with the given message.
func Failure(message string) Outcome {
	return Outcome{Success: false, Message: message}
}

// Capability is the agent interface a competition dispatches tasks to.
// Implementations must be safely repeatable and must not mutate paths outside
// the given workspace. Calls honor ctx cancellation on a best-effort basis;
// the orchestrator stops waiting when the task budget expires regardless.
type Capability interface {
	// CreateBaseline authors a fresh working project in workspace.
	CreateBaseline(ctx context.Context, workspace, instructions string) (Outcome, error)

	// InjectBug introduces a realistic defect into a copy of the baseline.
	// sourceWorkspace holds the baseline; workspace is the task's own
	// directory.
	InjectBug(ctx context.Context, sourceWorkspace, workspace, instructions string) (Outcome, error)

	// AttemptFix repairs the injected defect. sourceWorkspace holds the
	// buggy project; workspace is the task's own directory.
	AttemptFix(ctx context.Context, sourceWorkspace, workspace, instructions string) (Outcome, error)
}
