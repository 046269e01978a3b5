package agent

import (
	"context"
	"os"
	"path/filepath"
	"time"
)

// TaskFunc is a scriptable task implementation for the mock agent.
type TaskFunc func(ctx context.Context, sourceWorkspace, workspace, instructions string) (Outcome, error)

// Mock is a scriptable Capability for tests and dry runs. Unset task
// functions fall back to a default that drops a marker file into the
// workspace and succeeds. Delay, when set, is applied before every task and
// respects ctx cancellation, which makes timeout behavior testable.
type Mock struct {
	Name         string
	Delay        time.Duration
	BaselineFunc TaskFunc
	InjectFunc   TaskFunc
	FixFunc      TaskFunc
}

var _ Capability = (*Mock)(nil)

// CreateBaseline implements Capability.
func (m *Mock) CreateBaseline(ctx context.Context, workspace, instructions string) (Outcome, error) {
	return m.run(ctx, m.BaselineFunc, "", workspace, instructions, "baseline created")
}

// InjectBug implements Capability.
func (m *Mock) InjectBug(ctx context.Context, sourceWorkspace, workspace, instructions string) (Outcome, error) {
	return m.run(ctx, m.InjectFunc, sourceWorkspace, workspace, instructions, "bug injected")
}

// AttemptFix implements Capability.
func (m *Mock) AttemptFix(ctx context.Context, sourceWorkspace, workspace, instructions string) (Outcome, error) {
	return m.run(ctx, m.FixFunc, sourceWorkspace, workspace, instructions, "bug fixed")
}

func (m *Mock) run(ctx context.Context, fn TaskFunc, sourceWorkspace, workspace, instructions, defaultMsg string) (Outcome, error) {
	if m.Delay > 0 {
		select {
		case <-time.After(m.Delay):
		case <-ctx.Done():
			return Outcome{}, ctx.Err()
		}
	}
	if fn != nil {
		return fn(ctx, sourceWorkspace, workspace, instructions)
	}

	marker := filepath.Join(workspace, ".arena-mock")
	if err := os.WriteFile(marker, []byte(m.Name), 0o644); err != nil {
		return Outcome{}, err
	}
	return Outcome{Success: true, Message: defaultMsg}, nil
}
