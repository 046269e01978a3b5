// Package event defines the lifecycle events a competition run emits.
// Observers receive them synchronously, in emission order; observers are
// trusted, so dispatch does not guard against panics.
package event

import (
	"time"

	"github.com/sesigl/ai-coding-arena/internal/participant"
)

// Event is the interface all lifecycle events implement.
type Event interface {
	// EventType returns a string identifier, convention "category.action"
	// (e.g. "round.started", "task.baseline").
	EventType() string

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// Observer is a callback receiving every lifecycle event, synchronously and
// in order.
type Observer func(Event)

// baseEvent provides the common fields; embed it in concrete event types.
type baseEvent struct {
	eventType string
	timestamp time.Time
}

func (e baseEvent) EventType() string    { return e.eventType }
func (e baseEvent) Timestamp() time.Time { return e.timestamp }

func newBaseEvent(eventType string) baseEvent {
	return baseEvent{eventType: eventType, timestamp: time.Now()}
}

// RoundStartedEvent is emitted when a round opens, before any task runs.
type RoundStartedEvent struct {
	baseEvent
	Round          int
	BaselineAuthor participant.ID
}

// NewRoundStartedEvent creates a RoundStartedEvent.
func NewRoundStartedEvent(round int, baselineAuthor participant.ID) RoundStartedEvent {
	return RoundStartedEvent{
		baseEvent:      newBaseEvent("round.started"),
		Round:          round,
		BaselineAuthor: baselineAuthor,
	}
}

// TaskAttemptEvent is emitted after each task produced a definitive outcome.
type TaskAttemptEvent struct {
	baseEvent
	Round       int
	Participant participant.ID
	Success     bool
	Message     string
	Workspace   string
}

// NewBaselineAttemptEvent records the baseline authoring outcome.
func NewBaselineAttemptEvent(round int, p participant.ID, success bool, message, workspace string) TaskAttemptEvent {
	return TaskAttemptEvent{
		baseEvent:   newBaseEvent("task.baseline"),
		Round:       round,
		Participant: p,
		Success:     success,
		Message:     message,
		Workspace:   workspace,
	}
}

// NewBugInjectionAttemptEvent records the bug injection outcome.
func NewBugInjectionAttemptEvent(round int, p participant.ID, success bool, message, workspace string) TaskAttemptEvent {
	return TaskAttemptEvent{
		baseEvent:   newBaseEvent("task.bug_injection"),
		Round:       round,
		Participant: p,
		Success:     success,
		Message:     message,
		Workspace:   workspace,
	}
}

// NewFixAttemptEvent records a fix attempt outcome.
func NewFixAttemptEvent(round int, p participant.ID, success bool, message, workspace string) TaskAttemptEvent {
	return TaskAttemptEvent{
		baseEvent:   newBaseEvent("task.fix_attempt"),
		Round:       round,
		Participant: p,
		Success:     success,
		Message:     message,
		Workspace:   workspace,
	}
}

// RoundFinishedEvent is emitted once per round after it is sealed, whether it
// ran all three phases or ended early.
type RoundFinishedEvent struct {
	baseEvent
	Round          int
	BaselineAuthor participant.ID
	// BugAuthor is empty when the round ended before a successful injection.
	BugAuthor participant.ID
	// FixSucceeded reports whether any fixer earned the fix point.
	FixSucceeded bool
}

// NewRoundFinishedEvent creates a RoundFinishedEvent.
func NewRoundFinishedEvent(round int, baselineAuthor, bugAuthor participant.ID, fixSucceeded bool) RoundFinishedEvent {
	return RoundFinishedEvent{
		baseEvent:      newBaseEvent("round.finished"),
		Round:          round,
		BaselineAuthor: baselineAuthor,
		BugAuthor:      bugAuthor,
		FixSucceeded:   fixSucceeded,
	}
}
