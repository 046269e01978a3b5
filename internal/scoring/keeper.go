// Package scoring holds the competition-lifetime point ledger and the final
// scoreboard projection. The ledger records effects only; the scoring rules
// themselves are enforced by the orchestrator.
package scoring

import (
	"sort"

	"github.com/sesigl/ai-coding-arena/internal/participant"
)

// Stat identifies a monotonically increasing per-participant counter.
type Stat string

const (
	// StatFixes counts successful fix attempts that earned the fix point.
	StatFixes Stat = "fixes"
	// StatBugsSolved counts injected bugs that went unfixed, credited to the injector.
	StatBugsSolved Stat = "bugs_solved"
	// StatBaselineFailures counts failed baseline authoring attempts.
	StatBaselineFailures Stat = "baseline_failures"
	// StatBugInjectionFailures counts failed bug injection attempts.
	StatBugInjectionFailures Stat = "bug_injection_failures"
)

// ScoreCard is a participant's cumulative standing. Score may go negative; the
// counters only ever increase.
type ScoreCard struct {
	Score                int
	Fixes                int
	BugsSolved           int
	BaselineFailures     int
	BugInjectionFailures int
}

// Keeper is the in-memory ledger spanning the whole competition. It is not
// reset between rounds. Keeper is mutated only from the orchestrator's single
// goroutine, so it carries no locking.
type Keeper struct {
	cards map[participant.ID]*ScoreCard
	order []participant.ID // encounter order, drives stable scoreboard ties
}

// NewKeeper creates an empty ledger.
func NewKeeper() *Keeper {
	return &Keeper{cards: make(map[participant.ID]*ScoreCard)}
}

// RegisterParticipant ensures the participant has a score card. Idempotent;
// the first registration fixes the participant's encounter order.
func (k *Keeper) RegisterParticipant(p participant.ID) {
	if _, ok := k.cards[p]; ok {
		return
	}
	k.cards[p] = &ScoreCard{}
	k.order = append(k.order, p)
}

// AdjustScore applies a point delta to the participant's cumulative score.
// Delta may be negative. Unknown participants are registered on first touch.
func (k *Keeper) AdjustScore(p participant.ID, delta int) {
	k.RegisterParticipant(p)
	k.cards[p].Score += delta
}

// IncrementStat increases a counter for the participant by amount.
// Unknown participants are registered on first touch.
func (k *Keeper) IncrementStat(p participant.ID, stat Stat, amount int) {
	k.RegisterParticipant(p)
	card := k.cards[p]
	switch stat {
	case StatFixes:
		card.Fixes += amount
	case StatBugsSolved:
		card.BugsSolved += amount
	case StatBaselineFailures:
		card.BaselineFailures += amount
	case StatBugInjectionFailures:
		card.BugInjectionFailures += amount
	}
}

// Score returns the participant's cumulative score, zero when unknown.
func (k *Keeper) Score(p participant.ID) int {
	if card, ok := k.cards[p]; ok {
		return card.Score
	}
	return 0
}

// Card returns a copy of the participant's score card, zero-valued when unknown.
func (k *Keeper) Card(p participant.ID) ScoreCard {
	if card, ok := k.cards[p]; ok {
		return *card
	}
	return ScoreCard{}
}

// AllParticipants returns everyone the ledger has ever touched, in encounter
// order.
func (k *Keeper) AllParticipants() []participant.ID {
	out := make([]participant.ID, len(k.order))
	copy(out, k.order)
	return out
}

// SummaryEntry is one scoreboard row.
type SummaryEntry struct {
	Participant participant.ID
	Score       int
	Card        ScoreCard
}

// Summary is the final competition result: the scoreboard sorted by score
// descending (ties stable in encounter order) and the number of rounds the
// orchestrator actually completed.
type Summary struct {
	Entries         []SummaryEntry
	RoundsCompleted int
}

// BuildSummary projects the ledger into a sorted scoreboard. roundsCompleted
// may be less than the requested round count if the run was aborted.
func BuildSummary(k *Keeper, roundsCompleted int) Summary {
	entries := make([]SummaryEntry, 0, len(k.order))
	for _, p := range k.order {
		entries = append(entries, SummaryEntry{
			Participant: p,
			Score:       k.cards[p].Score,
			Card:        *k.cards[p],
		})
	}

	// Stable keeps encounter order for equal scores; no further tie-break is defined.
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})

	return Summary{Entries: entries, RoundsCompleted: roundsCompleted}
}
