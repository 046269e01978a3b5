package round

import (
	"fmt"

	"github.com/sesigl/ai-coding-arena/internal/errors"
	"github.com/sesigl/ai-coding-arena/internal/participant"
)

// Record is the sealed result of a finished round. It is handed out by
// FinishRound and not retained by the machine; only its effects on the score
// ledger persist.
type Record struct {
	Number         int
	BaselineAuthor participant.ID
	// BugAuthor is empty when the round ended before a successful injection.
	BugAuthor participant.ID
	// FixOutcomes maps each fixer that recorded an attempt to its success flag.
	FixOutcomes map[participant.ID]bool
}

// StateMachine gates every round mutation behind the active phase and owns the
// current round's author pointers. Guard violations raise InvalidTransition
// errors; the orchestrator never triggers them in normal operation, so they
// are fatal and non-retryable.
//
// The machine is mutated only from the orchestrator's goroutine and carries no
// locking. A concurrent port must add explicit mutual exclusion around every
// transition.
type StateMachine struct {
	phase          Phase
	number         int
	baselineAuthor participant.ID
	bugAuthor      participant.ID
	fixOutcomes    map[participant.ID]bool
}

// NewStateMachine creates a machine in the Idle phase.
func NewStateMachine() *StateMachine {
	return &StateMachine{phase: PhaseIdle}
}

// Phase returns the active phase.
func (m *StateMachine) Phase() Phase { return m.phase }

// RoundNumber returns the active round's sequence number, zero when idle.
func (m *StateMachine) RoundNumber() int { return m.number }

// BaselineAuthor returns the active round's baseline author.
func (m *StateMachine) BaselineAuthor() participant.ID { return m.baselineAuthor }

// BugAuthor returns the active round's bug injector, empty until one succeeds.
func (m *StateMachine) BugAuthor() participant.ID { return m.bugAuthor }

// StartRound opens round number with the given baseline author. Valid only
// from Idle.
func (m *StateMachine) StartRound(number int, baselineAuthor participant.ID) error {
	if m.phase != PhaseIdle {
		return errors.NewInvalidTransition("startRound",
			fmt.Sprintf("round %d is still active", m.number)).
			WithPhase(string(m.phase))
	}
	if number < 1 {
		return errors.NewInvalidTransition("startRound",
			fmt.Sprintf("round number must be >= 1, got %d", number))
	}

	m.phase = PhaseBaseline
	m.number = number
	m.baselineAuthor = baselineAuthor
	m.bugAuthor = ""
	m.fixOutcomes = make(map[participant.ID]bool)
	return nil
}

// RecordBaselineSuccess advances the round to bug injection. Valid only from
// Baseline.
func (m *StateMachine) RecordBaselineSuccess() error {
	if m.phase != PhaseBaseline {
		return errors.NewInvalidTransition("recordBaselineSuccess",
			"no baseline task is pending").WithPhase(string(m.phase))
	}
	m.phase = PhaseBugInjection
	return nil
}

// RecordBaselineFailure ends the round early. Valid only from Baseline.
func (m *StateMachine) RecordBaselineFailure() error {
	if m.phase != PhaseBaseline {
		return errors.NewInvalidTransition("recordBaselineFailure",
			"no baseline task is pending").WithPhase(string(m.phase))
	}
	m.phase = PhaseComplete
	return nil
}

// RecordBugInjectionSuccess stores the bug author and advances the round to
// fix attempts. Valid only from BugInjection; the baseline author is never an
// eligible injector.
func (m *StateMachine) RecordBugInjectionSuccess(author participant.ID) error {
	if m.phase != PhaseBugInjection {
		return errors.NewInvalidTransition("recordBugInjectionSuccess",
			"no bug injection task is pending").WithPhase(string(m.phase))
	}
	if err := RequireNotBaselineAuthor(author, m.baselineAuthor); err != nil {
		return err
	}
	m.bugAuthor = author
	m.phase = PhaseFixAttempts
	return nil
}

// RecordBugInjectionFailure ends the round early. Valid only from BugInjection.
func (m *StateMachine) RecordBugInjectionFailure() error {
	if m.phase != PhaseBugInjection {
		return errors.NewInvalidTransition("recordBugInjectionFailure",
			"no bug injection task is pending").WithPhase(string(m.phase))
	}
	m.phase = PhaseComplete
	return nil
}

// RecordFixAttempt stores a fixer's outcome in the per-round outcome map.
// Valid only from FixAttempts; neither the baseline author nor the bug author
// may fix. A repeated attempt by the same participant overwrites the earlier
// outcome (map-set semantics).
func (m *StateMachine) RecordFixAttempt(p participant.ID, success bool) error {
	if m.phase != PhaseFixAttempts {
		return errors.NewInvalidTransition("recordFixAttempt",
			"round is not accepting fix attempts").WithPhase(string(m.phase))
	}
	if err := RequireNotBaselineAuthor(p, m.baselineAuthor); err != nil {
		return err
	}
	if err := RequireNotBugAuthor(p, m.bugAuthor); err != nil {
		return err
	}
	m.fixOutcomes[p] = success
	return nil
}

// FinishRound seals the round and resets the machine to Idle, returning the
// sealed record. Valid only from FixAttempts or Complete.
func (m *StateMachine) FinishRound() (Record, error) {
	if m.phase != PhaseFixAttempts && m.phase != PhaseComplete {
		return Record{}, errors.NewInvalidTransition("finishRound",
			"round has phases left to run").WithPhase(string(m.phase))
	}

	record := Record{
		Number:         m.number,
		BaselineAuthor: m.baselineAuthor,
		BugAuthor:      m.bugAuthor,
		FixOutcomes:    m.fixOutcomes,
	}
	m.Reset()
	return record, nil
}

// Reset returns the machine to Idle, discarding any active round.
func (m *StateMachine) Reset() {
	m.phase = PhaseIdle
	m.number = 0
	m.baselineAuthor = ""
	m.bugAuthor = ""
	m.fixOutcomes = nil
}

// NextExpectedStep projects the active phase and recorded flags into a
// human-readable status. Pure: repeated calls without intervening mutation
// return the same string.
func (m *StateMachine) NextExpectedStep() string {
	switch m.phase {
	case PhaseIdle:
		return "awaiting round start"
	case PhaseBaseline:
		return fmt.Sprintf("round %d: awaiting baseline outcome from %s", m.number, m.baselineAuthor)
	case PhaseBugInjection:
		return fmt.Sprintf("round %d: awaiting bug injection outcome", m.number)
	case PhaseFixAttempts:
		if len(m.fixOutcomes) == 0 {
			return fmt.Sprintf("round %d: awaiting fix attempts", m.number)
		}
		return fmt.Sprintf("round %d: %d fix attempt(s) recorded, awaiting round finish", m.number, len(m.fixOutcomes))
	case PhaseComplete:
		return fmt.Sprintf("round %d: complete, awaiting round finish", m.number)
	default:
		return fmt.Sprintf("unknown phase %q", m.phase)
	}
}
