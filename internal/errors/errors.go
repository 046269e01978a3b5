// Package errors provides centralized error definitions for the arena codebase.
// It defines the three error categories the competition engine distinguishes:
//
//   - InvalidTransitionError: a state-machine or validator guard was violated.
//     These are logic-contract violations the orchestrator should never trigger
//     in normal operation; they are fatal and non-retryable.
//   - TimeoutError: an agent capability call exceeded its task budget. Timeouts
//     fold into task failure outcomes, never into crashes.
//   - InfrastructureError: workspace allocation or another filesystem-level
//     operation failed. Not folded into task failure; no workspace means no task
//     could be attempted, so the round's remaining work is aborted.
//
// Checking errors:
//
//	if errors.IsInvalidTransition(err) { ... }
//
//	var infraErr *errors.InfrastructureError
//	if errors.As(err, &infraErr) { ... }
package errors

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Re-export standard library functions so callers can import only this package
// for all error handling.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	New    = errors.New
	Join   = errors.Join
)

// Sentinel errors for the competition engine.
var (
	// ErrInvalidTransition indicates a phase guard or eligibility rule was violated.
	ErrInvalidTransition = New("invalid transition")
	// ErrTimeout indicates an operation exceeded its time budget.
	ErrTimeout = New("operation timed out")
	// ErrWorkspaceNotEmpty indicates a task's target directory already held files.
	ErrWorkspaceNotEmpty = New("workspace not empty")
	// ErrAuditAppend indicates the audit log rejected an event append.
	ErrAuditAppend = New("audit append failed")
	// ErrRosterTooSmall indicates the participant roster cannot fill all three roles.
	ErrRosterTooSmall = New("roster too small")
)

// InvalidTransitionError reports a guard violation in the round state machine or
// a participant eligibility check. It always wraps ErrInvalidTransition so
// callers can classify with errors.Is.
type InvalidTransitionError struct {
	Operation   string // the operation that was attempted, e.g. "recordBaselineSuccess"
	Phase       string // the phase the machine was in
	Participant string // offending participant, when the violation is an eligibility rule
	Reason      string
}

// NewInvalidTransition creates an InvalidTransitionError with a descriptive reason.
func NewInvalidTransition(operation, reason string) *InvalidTransitionError {
	return &InvalidTransitionError{Operation: operation, Reason: reason}
}

// WithPhase adds the machine's current phase to the error context.
func (e *InvalidTransitionError) WithPhase(phase string) *InvalidTransitionError {
	e.Phase = phase
	return e
}

// WithParticipant adds the offending participant to the error context.
func (e *InvalidTransitionError) WithParticipant(p string) *InvalidTransitionError {
	e.Participant = p
	return e
}

// Error returns the formatted error message.
func (e *InvalidTransitionError) Error() string {
	var parts []string
	if e.Phase != "" {
		parts = append(parts, fmt.Sprintf("phase=%s", e.Phase))
	}
	if e.Participant != "" {
		parts = append(parts, fmt.Sprintf("participant=%s", e.Participant))
	}

	prefix := fmt.Sprintf("invalid transition in %s", e.Operation)
	if len(parts) > 0 {
		prefix = fmt.Sprintf("%s [%s]", prefix, strings.Join(parts, ", "))
	}
	return fmt.Sprintf("%s: %s", prefix, e.Reason)
}

// Is reports whether this error matches the target. All InvalidTransitionErrors
// match ErrInvalidTransition and each other.
func (e *InvalidTransitionError) Is(target error) bool {
	if target == ErrInvalidTransition {
		return true
	}
	_, ok := target.(*InvalidTransitionError)
	return ok
}

// TimeoutError reports that an agent capability call did not resolve within its
// task budget.
type TimeoutError struct {
	Operation string
	Budget    time.Duration
}

// NewTimeout creates a TimeoutError for the named operation.
func NewTimeout(operation string, budget time.Duration) *TimeoutError {
	return &TimeoutError{Operation: operation, Budget: budget}
}

// Error returns the formatted error message.
func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s timed out after %s", e.Operation, e.Budget)
}

// Is reports whether this error matches the target.
func (e *TimeoutError) Is(target error) bool {
	if target == ErrTimeout {
		return true
	}
	_, ok := target.(*TimeoutError)
	return ok
}

// InfrastructureError reports a filesystem-level failure that prevents a task
// from being attempted at all.
type InfrastructureError struct {
	Op    string // the operation that failed, e.g. "allocate workspace"
	Path  string
	cause error
}

// NewInfrastructure creates an InfrastructureError wrapping the underlying cause.
func NewInfrastructure(op string, cause error) *InfrastructureError {
	return &InfrastructureError{Op: op, cause: cause}
}

// WithPath adds the affected filesystem path to the error context.
func (e *InfrastructureError) WithPath(path string) *InfrastructureError {
	e.Path = path
	return e
}

// Error returns the formatted error message.
func (e *InfrastructureError) Error() string {
	prefix := fmt.Sprintf("infrastructure failure in %s", e.Op)
	if e.Path != "" {
		prefix = fmt.Sprintf("%s [path=%s]", prefix, e.Path)
	}
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", prefix, e.cause)
	}
	return prefix
}

// Unwrap returns the underlying cause.
func (e *InfrastructureError) Unwrap() error {
	return e.cause
}

// Is reports whether this error matches the target.
func (e *InfrastructureError) Is(target error) bool {
	if _, ok := target.(*InfrastructureError); ok {
		return true
	}
	if e.cause != nil {
		return errors.Is(e.cause, target)
	}
	return false
}

// IsInvalidTransition reports whether err is a guard violation.
func IsInvalidTransition(err error) bool {
	return errors.Is(err, ErrInvalidTransition)
}

// IsTimeout reports whether err represents an exceeded task budget.
func IsTimeout(err error) bool {
	return errors.Is(err, ErrTimeout)
}

// IsInfrastructure reports whether err aborts the round rather than a single task.
func IsInfrastructure(err error) bool {
	var infraErr *InfrastructureError
	return errors.As(err, &infraErr)
}

// Wrap wraps an error with additional context message.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with a formatted context message.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
