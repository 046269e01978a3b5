// Package contract verifies a workspace against its build/test convention.
// An agent's claimed outcome is advisory; the verify command is the ground
// truth a task is judged by.
package contract

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"
	"time"

	"github.com/sesigl/ai-coding-arena/internal/logging"
	"github.com/sesigl/ai-coding-arena/internal/util"
)

// DefaultCommand is the verify convention a baseline project is expected to
// provide.
var DefaultCommand = []string{"make", "verify"}

// Result is the outcome of one verification run.
type Result struct {
	Passed bool
	Output string
}

// Validator runs a workspace's verify command.
type Validator struct {
	command []string
	timeout time.Duration
	logger  *logging.Logger
}

// NewValidator creates a Validator. A nil or empty command selects
// DefaultCommand; a zero timeout disables the validator-level deadline and
// leaves cancellation to the caller's ctx.
func NewValidator(command []string, timeout time.Duration, logger *logging.Logger) *Validator {
	if len(command) == 0 {
		command = DefaultCommand
	}
	if logger == nil {
		logger = logging.Nop()
	}
	return &Validator{command: command, timeout: timeout, logger: logger}
}

// Command returns the verify command as a single shell-style string, suitable
// for embedding in agent instructions.
func (v *Validator) Command() string {
	return strings.Join(v.command, " ")
}

// Verify runs the verify command inside workspace. A non-zero exit or an
// expired deadline is a failed Result, not an error; errors are reserved for
// being unable to start the command at all.
func (v *Validator) Verify(ctx context.Context, workspacePath string) (Result, error) {
	if v.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, v.timeout)
		defer cancel()
	}

	var output bytes.Buffer
	cmd := exec.CommandContext(ctx, v.command[0], v.command[1:]...)
	cmd.Dir = workspacePath
	cmd.Stdout = &output
	cmd.Stderr = &output

	v.logger.Debug("running verify command", "command", v.Command(), "workspace", workspacePath)
	err := cmd.Run()

	result := Result{
		Passed: err == nil,
		Output: util.TruncateString(strings.TrimSpace(output.String()), 4000),
	}
	if err == nil {
		return result, nil
	}

	if ctx.Err() != nil {
		result.Output = appendLine(result.Output, "verify command timed out")
		return result, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return result, nil
	}
	// The command never ran; that is the harness's problem, not the task's.
	return Result{}, err
}

func appendLine(output, line string) string {
	if output == "" {
		return line
	}
	return output + "\n" + line
}
