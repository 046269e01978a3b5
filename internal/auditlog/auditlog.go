// Package auditlog provides the append-only audit trail of a competition.
// The audit trail is a correctness requirement of the surrounding product: a
// failed append is fatal to the task being recorded, never silently dropped.
package auditlog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sesigl/ai-coding-arena/internal/errors"
)

// Event is one audit record. Events are written as one JSON object per line.
type Event struct {
	ID          string    `json:"id"`
	Timestamp   time.Time `json:"timestamp"`
	Kind        string    `json:"kind"`
	Round       int       `json:"round,omitempty"`
	Participant string    `json:"participant,omitempty"`
	TaskKind    string    `json:"task_kind,omitempty"`
	Success     *bool     `json:"success,omitempty"`
	Message     string    `json:"message,omitempty"`
}

// NewEvent creates an event with a fresh ID and the current time.
func NewEvent(kind string) Event {
	return Event{
		ID:        uuid.NewString(),
		Timestamp: time.Now().UTC(),
		Kind:      kind,
	}
}

// WithRound sets the round number.
func (e Event) WithRound(round int) Event {
	e.Round = round
	return e
}

// WithParticipant sets the acting participant.
func (e Event) WithParticipant(p string) Event {
	e.Participant = p
	return e
}

// WithTask sets task kind and outcome.
func (e Event) WithTask(taskKind string, success bool, message string) Event {
	e.TaskKind = taskKind
	e.Success = &success
	e.Message = message
	return e
}

// Sink appends events to the audit trail.
type Sink interface {
	Append(event Event) error
}

// FileSink writes events to a JSONL file, syncing after every append so the
// trail survives a crash of the process.
type FileSink struct {
	mu   sync.Mutex
	file *os.File
}

// NewFileSink opens (or creates) the audit file in append mode.
func NewFileSink(path string) (*FileSink, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create audit directory: %w", err)
		}
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open audit file: %w", err)
	}
	return &FileSink{file: file}, nil
}

// Append implements Sink.
func (s *FileSink) Append(event Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.file == nil {
		return errors.Wrap(errors.ErrAuditAppend, "sink is closed")
	}

	data, err := json.Marshal(event)
	if err != nil {
		return errors.Wrap(errors.ErrAuditAppend, err.Error())
	}
	if _, err := s.file.Write(append(data, '\n')); err != nil {
		return errors.Wrap(errors.ErrAuditAppend, err.Error())
	}
	if err := s.file.Sync(); err != nil {
		return errors.Wrap(errors.ErrAuditAppend, err.Error())
	}
	return nil
}

// Close closes the underlying file. Appends after Close fail.
func (s *FileSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.file == nil {
		return nil
	}
	err := s.file.Close()
	s.file = nil
	return err
}

// MemorySink keeps appended events in memory. Used in tests; FailAfter can be
// set to make appends fail after a number of successful ones.
type MemorySink struct {
	mu        sync.Mutex
	events    []Event
	FailAfter int // -1 (default via NewMemorySink) disables failure injection
}

// NewMemorySink creates a sink that accepts every append.
func NewMemorySink() *MemorySink {
	return &MemorySink{FailAfter: -1}
}

// Append implements Sink.
func (s *MemorySink) Append(event Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FailAfter >= 0 && len(s.events) >= s.FailAfter {
		return errors.Wrap(errors.ErrAuditAppend, "injected failure")
	}
	s.events = append(s.events, event)
	return nil
}

// Events returns a copy of everything appended so far.
func (s *MemorySink) Events() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Event, len(s.events))
	copy(out, s.events)
	return out
}
