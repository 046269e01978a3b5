package event

import "testing"

func TestEventTypesAreDistinct(t *testing.T) {
	events := []Event{
		NewRoundStartedEvent(1, "a"),
		NewBaselineAttemptEvent(1, "a", true, "", ""),
		NewBugInjectionAttemptEvent(1, "b", true, "", ""),
		NewFixAttemptEvent(1, "c", false, "", ""),
		NewRoundFinishedEvent(1, "a", "b", false),
	}

	seen := make(map[string]bool)
	for _, e := range events {
		et := e.EventType()
		if seen[et] {
			t.Errorf("duplicate event type %q", et)
		}
		seen[et] = true
		if e.Timestamp().IsZero() {
			t.Errorf("event %q has zero timestamp", et)
		}
	}
}

func TestTaskAttemptEventFields(t *testing.T) {
	e := NewFixAttemptEvent(3, "carol", true, "tests pass", "/tmp/ws")

	if e.EventType() != "task.fix_attempt" {
		t.Errorf("EventType() = %q", e.EventType())
	}
	if e.Round != 3 || e.Participant != "carol" || !e.Success {
		t.Errorf("event = %+v", e)
	}
	if e.Message != "tests pass" || e.Workspace != "/tmp/ws" {
		t.Errorf("event = %+v", e)
	}
}
