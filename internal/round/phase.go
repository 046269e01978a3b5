// Package round implements the competition round state machine: strict phase
// sequencing, role-eligibility guards, and the per-round record of author
// pointers and fix outcomes.
package round

// Phase represents the current phase of a competition round. Exactly one phase
// is active at a time; transitions move strictly forward and return to Idle
// only after a round is finished.
type Phase string

const (
	// PhaseIdle - no round is active
	PhaseIdle Phase = "idle"
	// PhaseBaseline - the baseline author is creating the round's project
	PhaseBaseline Phase = "baseline"
	// PhaseBugInjection - a second participant is injecting a bug into the baseline
	PhaseBugInjection Phase = "bug_injection"
	// PhaseFixAttempts - participants are attempting to fix the injected bug
	PhaseFixAttempts Phase = "fix_attempts"
	// PhaseComplete - the round has ended (all phases ran, or an early failure)
	PhaseComplete Phase = "complete"
)

// TaskKind identifies the three kinds of agent tasks a round dispatches.
type TaskKind string

const (
	TaskBaseline     TaskKind = "baseline"
	TaskBugInjection TaskKind = "bug_injection"
	TaskFixAttempt   TaskKind = "fix_attempt"
)
