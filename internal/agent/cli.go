package agent

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/sesigl/ai-coding-arena/internal/logging"
	"github.com/sesigl/ai-coding-arena/internal/util"
	"github.com/sesigl/ai-coding-arena/internal/workspace"
)

// Environment variables passed to the agent command.
const (
	EnvTask            = "ARENA_TASK"
	EnvWorkspace       = "ARENA_WORKSPACE"
	EnvSourceWorkspace = "ARENA_SOURCE_WORKSPACE"
)

// pollInterval is the fallback cadence for checking the sentinel file when
// filesystem notifications are unavailable or events get lost.
const pollInterval = 500 * time.Millisecond

// CLI adapts an external coding-agent command to the Capability interface.
// The command is started inside the task workspace with the instructions on
// stdin; the agent reports its result by writing OutcomeFileName into the
// workspace. For injection and fix tasks the source workspace is copied into
// the task workspace first, so the agent always mutates its own copy.
type CLI struct {
	command []string
	logger  *logging.Logger
}

var _ Capability = (*CLI)(nil)

// NewCLI creates a CLI adapter for the given argv. A nil logger disables
// logging.
func NewCLI(command []string, logger *logging.Logger) (*CLI, error) {
	if len(command) == 0 {
		return nil, fmt.Errorf("agent command cannot be empty")
	}
	if logger == nil {
		logger = logging.Nop()
	}
	return &CLI{command: command, logger: logger}, nil
}

// CreateBaseline implements Capability.
func (c *CLI) CreateBaseline(ctx context.Context, workspacePath, instructions string) (Outcome, error) {
	return c.execute(ctx, "baseline", "", workspacePath, instructions)
}

// InjectBug implements Capability.
func (c *CLI) InjectBug(ctx context.Context, sourceWorkspace, workspacePath, instructions string) (Outcome, error) {
	return c.execute(ctx, "bug_injection", sourceWorkspace, workspacePath, instructions)
}

// AttemptFix implements Capability.
func (c *CLI) AttemptFix(ctx context.Context, sourceWorkspace, workspacePath, instructions string) (Outcome, error) {
	return c.execute(ctx, "fix_attempt", sourceWorkspace, workspacePath, instructions)
}

func (c *CLI) execute(ctx context.Context, task, sourceWorkspace, workspacePath, instructions string) (Outcome, error) {
	if sourceWorkspace != "" {
		if err := workspace.CopyTree(sourceWorkspace, workspacePath); err != nil {
			return Outcome{}, fmt.Errorf("failed to seed workspace from %s: %w", sourceWorkspace, err)
		}
		// The agent starts from a clean slate: a stale sentinel from the
		// source workspace must not count as this task's outcome.
		if err := os.Remove(OutcomeFilePath(workspacePath)); err != nil && !os.IsNotExist(err) {
			return Outcome{}, fmt.Errorf("failed to clear stale outcome file: %w", err)
		}
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return Outcome{}, fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()
	if err := watcher.Add(workspacePath); err != nil {
		return Outcome{}, fmt.Errorf("failed to watch workspace: %w", err)
	}

	var output bytes.Buffer
	cmd := exec.CommandContext(ctx, c.command[0], c.command[1:]...)
	cmd.Dir = workspacePath
	cmd.Stdin = strings.NewReader(instructions)
	cmd.Stdout = &output
	cmd.Stderr = &output
	cmd.Env = append(os.Environ(),
		EnvTask+"="+task,
		EnvWorkspace+"="+workspacePath,
		EnvSourceWorkspace+"="+sourceWorkspace,
	)

	c.logger.Debug("starting agent command", "task", task, "workspace", workspacePath)
	if err := cmd.Start(); err != nil {
		return Outcome{}, fmt.Errorf("failed to start agent command: %w", err)
	}

	exited := make(chan error, 1)
	go func() { exited <- cmd.Wait() }()

	// Once the outcome is known the command is abandoned best-effort; a
	// lingering agent process must not stall the round.
	kill := func() {
		if cmd.Process != nil {
			_ = cmd.Process.Kill()
		}
		<-exited
	}

	poll := time.NewTicker(pollInterval)
	defer poll.Stop()

	sentinel := OutcomeFilePath(workspacePath)
	for {
		select {
		case ev := <-watcher.Events:
			if ev.Name != sentinel || !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) {
				continue
			}
			if outcome, err := ParseOutcomeFile(workspacePath); err == nil {
				kill()
				return outcome, nil
			}
			// Partial write; the poll ticker retries.

		case <-poll.C:
			if outcome, err := ParseOutcomeFile(workspacePath); err == nil {
				kill()
				return outcome, nil
			}

		case waitErr := <-exited:
			// Give the final parse one chance after exit.
			if outcome, err := ParseOutcomeFile(workspacePath); err == nil {
				return outcome, nil
			}
			msg := "agent exited without reporting an outcome"
			if waitErr != nil {
				msg = fmt.Sprintf("%s (%v)", msg, waitErr)
			}
			if tail := strings.TrimSpace(output.String()); tail != "" {
				msg = fmt.Sprintf("%s: %s", msg, util.TruncateString(tail, 300))
			}
			return Failure(msg), nil

		case <-ctx.Done():
			kill()
			return Outcome{}, ctx.Err()
		}
	}
}
