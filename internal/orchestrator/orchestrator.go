// Package orchestrator drives a competition: role rotation, workspace
// allocation, agent task dispatch under per-task time budgets, state-machine
// bookkeeping, scoring, the audit trail, and the lifecycle-event stream.
//
// A competition runs on a single logical thread. Rounds are strictly
// sequential, and within a round the three tasks are too: the injection
// source is the baseline workspace and the fix source is the buggy workspace,
// so the ordering is a data dependency, not a scheduling choice.
package orchestrator

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sesigl/ai-coding-arena/internal/agent"
	"github.com/sesigl/ai-coding-arena/internal/auditlog"
	"github.com/sesigl/ai-coding-arena/internal/contract"
	"github.com/sesigl/ai-coding-arena/internal/errors"
	"github.com/sesigl/ai-coding-arena/internal/event"
	"github.com/sesigl/ai-coding-arena/internal/logging"
	"github.com/sesigl/ai-coding-arena/internal/participant"
	"github.com/sesigl/ai-coding-arena/internal/round"
	"github.com/sesigl/ai-coding-arena/internal/scoring"
	"github.com/sesigl/ai-coding-arena/internal/util"
	"github.com/sesigl/ai-coding-arena/internal/workspace"
)

// Timeouts holds the per-task-kind time budgets. Baseline authoring gets the
// largest default budget; creating a project from scratch is more open-ended
// than mutating one.
type Timeouts struct {
	Baseline     time.Duration
	BugInjection time.Duration
	FixAttempt   time.Duration
}

// DefaultTimeouts returns the stock budgets.
func DefaultTimeouts() Timeouts {
	return Timeouts{
		Baseline:     10 * time.Minute,
		BugInjection: 5 * time.Minute,
		FixAttempt:   5 * time.Minute,
	}
}

func (t Timeouts) forTask(kind round.TaskKind) time.Duration {
	switch kind {
	case round.TaskBaseline:
		return t.Baseline
	case round.TaskBugInjection:
		return t.BugInjection
	default:
		return t.FixAttempt
	}
}

// Options tunes an Orchestrator beyond its required collaborators.
type Options struct {
	Timeouts Timeouts
	Logger   *logging.Logger

	// Validator, when set, re-checks every claimed task success against the
	// workspace's build/test contract. Nil trusts the agent's claim.
	Validator *contract.Validator

	// KeepWorkspaces leaves task directories in place after each round
	// instead of releasing them.
	KeepWorkspaces bool
}

// Orchestrator runs rounds for a fixed roster of participants, each bound to
// an agent capability.
type Orchestrator struct {
	roster    *participant.Roster
	agents    map[participant.ID]agent.Capability
	allocator workspace.Allocator
	audit     auditlog.Sink
	opts      Options

	machine   *round.StateMachine
	keeper    *scoring.Keeper
	observers []event.Observer
	logger    *logging.Logger

	roundsCompleted int
}

// New creates an Orchestrator. The roster must be able to fill three pairwise
// distinct roles, and every member must be bound to an agent capability.
func New(roster *participant.Roster, agents map[participant.ID]agent.Capability,
	allocator workspace.Allocator, audit auditlog.Sink, opts Options) (*Orchestrator, error) {

	if roster.Size() < 3 {
		return nil, errors.Wrapf(errors.ErrRosterTooSmall,
			"need at least 3 participants, have %d", roster.Size())
	}
	for _, p := range roster.Members() {
		if agents[p] == nil {
			return nil, fmt.Errorf("participant %s has no agent capability", p)
		}
	}
	if opts.Timeouts == (Timeouts{}) {
		opts.Timeouts = DefaultTimeouts()
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Nop()
	}

	o := &Orchestrator{
		roster:    roster,
		agents:    agents,
		allocator: allocator,
		audit:     audit,
		opts:      opts,
		machine:   round.NewStateMachine(),
		keeper:    scoring.NewKeeper(),
		logger:    logger,
	}
	// Registration order fixes the scoreboard's tie order.
	for _, p := range roster.Members() {
		o.keeper.RegisterParticipant(p)
	}
	return o, nil
}

// Subscribe registers an observer for lifecycle events. Observers are invoked
// synchronously, in registration order, and are trusted not to panic.
func (o *Orchestrator) Subscribe(obs event.Observer) {
	o.observers = append(o.observers, obs)
}

func (o *Orchestrator) emit(e event.Event) {
	for _, obs := range o.observers {
		obs(e)
	}
}

// Keeper exposes the competition's score ledger.
func (o *Orchestrator) Keeper() *scoring.Keeper { return o.keeper }

// RoundsCompleted returns how many rounds have been sealed so far.
func (o *Orchestrator) RoundsCompleted() int { return o.roundsCompleted }

// NextExpectedStep reports the state machine's current status line.
func (o *Orchestrator) NextExpectedStep() string { return o.machine.NextExpectedStep() }

// Summary builds the final scoreboard from the ledger as it stands.
func (o *Orchestrator) Summary() scoring.Summary {
	return scoring.BuildSummary(o.keeper, o.roundsCompleted)
}

// RunCompetition runs the requested number of rounds and returns the final
// summary. It stops early when ctx is cancelled between rounds or a round
// aborts on an infrastructure or logic error; the summary then covers the
// rounds that actually completed.
func (o *Orchestrator) RunCompetition(ctx context.Context, rounds int) (scoring.Summary, error) {
	if rounds < 1 {
		return o.Summary(), fmt.Errorf("round count must be >= 1, got %d", rounds)
	}

	for number := 1; number <= rounds; number++ {
		if err := ctx.Err(); err != nil {
			o.logger.Warn("competition cancelled", "completed_rounds", o.roundsCompleted)
			return o.Summary(), err
		}
		if err := o.RunRound(ctx, number); err != nil {
			return o.Summary(), err
		}
	}
	return o.Summary(), nil
}

// RunRound drives round number end to end. Task failures fold into the
// round's outcome; InvalidTransition, infrastructure, and audit errors abort
// the round and propagate.
func (o *Orchestrator) RunRound(ctx context.Context, number int) error {
	author := o.roster.BaselineAuthor(number)
	injector, ok := o.roster.FirstInRotationExcluding(number, author)
	if !ok {
		return errors.Wrap(errors.ErrRosterTooSmall, "no eligible bug injector")
	}
	fixer, ok := o.roster.FirstInRotationExcluding(number, author, injector)
	if !ok {
		return errors.Wrap(errors.ErrRosterTooSmall, "no eligible fixer")
	}

	log := o.logger.WithRound(number)
	log.Info("round starting",
		"baseline_author", author, "bug_injector", injector, "fixer", fixer)

	if err := o.machine.StartRound(number, author); err != nil {
		return err
	}
	if err := o.audit.Append(auditlog.NewEvent("round.started").
		WithRound(number).WithParticipant(string(author))); err != nil {
		o.machine.Reset()
		return err
	}
	o.emit(event.NewRoundStartedEvent(number, author))

	var allocated []string
	defer func() {
		if o.opts.KeepWorkspaces {
			return
		}
		for _, path := range allocated {
			o.allocator.Release(path)
		}
	}()

	// Baseline.
	baselineWS, outcome, err := o.runTask(ctx, log, number, round.TaskBaseline, author, "")
	if err != nil {
		o.machine.Reset()
		return err
	}
	if baselineWS != "" {
		allocated = append(allocated, baselineWS)
	}
	o.emit(event.NewBaselineAttemptEvent(number, author, outcome.Success, outcome.Message, baselineWS))
	if !outcome.Success {
		o.keeper.AdjustScore(author, -1)
		o.keeper.IncrementStat(author, scoring.StatBaselineFailures, 1)
		if err := o.machine.RecordBaselineFailure(); err != nil {
			return err
		}
		return o.finishRound(log, false)
	}
	if err := o.machine.RecordBaselineSuccess(); err != nil {
		return err
	}

	// Bug injection.
	injectionWS, outcome, err := o.runTask(ctx, log, number, round.TaskBugInjection, injector, baselineWS)
	if err != nil {
		o.machine.Reset()
		return err
	}
	if injectionWS != "" {
		allocated = append(allocated, injectionWS)
	}
	o.emit(event.NewBugInjectionAttemptEvent(number, injector, outcome.Success, outcome.Message, injectionWS))
	if !outcome.Success {
		o.keeper.AdjustScore(injector, -1)
		o.keeper.IncrementStat(injector, scoring.StatBugInjectionFailures, 1)
		if err := o.machine.RecordBugInjectionFailure(); err != nil {
			return err
		}
		return o.finishRound(log, false)
	}
	if err := o.machine.RecordBugInjectionSuccess(injector); err != nil {
		return err
	}

	// Fix attempt. The round finalizes regardless of its outcome.
	fixWS, outcome, err := o.runTask(ctx, log, number, round.TaskFixAttempt, fixer, injectionWS)
	if err != nil {
		o.machine.Reset()
		return err
	}
	if fixWS != "" {
		allocated = append(allocated, fixWS)
	}
	o.emit(event.NewFixAttemptEvent(number, fixer, outcome.Success, outcome.Message, fixWS))
	if err := o.machine.RecordFixAttempt(fixer, outcome.Success); err != nil {
		return err
	}
	if outcome.Success {
		o.keeper.AdjustScore(fixer, 1)
		o.keeper.IncrementStat(fixer, scoring.StatFixes, 1)
	}
	return o.finishRound(log, outcome.Success)
}

// finishRound seals the active round, applies finalization scoring, and emits
// the closing event. Every fixer whose attempt failed hands the bug injector
// one point for a bug that survived.
func (o *Orchestrator) finishRound(log *logging.Logger, fixSucceeded bool) error {
	record, err := o.machine.FinishRound()
	if err != nil {
		return err
	}

	if record.BugAuthor != "" {
		for _, success := range record.FixOutcomes {
			if success {
				continue
			}
			o.keeper.AdjustScore(record.BugAuthor, 1)
			o.keeper.IncrementStat(record.BugAuthor, scoring.StatBugsSolved, 1)
		}
	}

	o.roundsCompleted++
	if err := o.audit.Append(auditlog.NewEvent("round.finished").
		WithRound(record.Number).WithParticipant(string(record.BaselineAuthor))); err != nil {
		return err
	}
	o.emit(event.NewRoundFinishedEvent(record.Number, record.BaselineAuthor, record.BugAuthor, fixSucceeded))
	log.Info("round finished", "bug_author", record.BugAuthor, "fix_succeeded", fixSucceeded)
	return nil
}

// runTask allocates the task workspace, dispatches the agent under the task
// kind's budget, verifies the claimed outcome, and records it in the audit
// trail. Infrastructure and audit errors come back as err; everything else
// folds into the outcome.
func (o *Orchestrator) runTask(ctx context.Context, log *logging.Logger, number int,
	kind round.TaskKind, p participant.ID, sourceWS string) (string, agent.Outcome, error) {

	taskLog := log.WithParticipant(string(p)).With("task", string(kind))

	path, outcome, infraErr := o.allocateAndRun(ctx, taskLog, number, kind, p, sourceWS)
	if infraErr != nil {
		return "", agent.Outcome{}, infraErr
	}

	taskLog.Info("task outcome", "success", outcome.Success, "message", outcome.Message)
	if err := o.audit.Append(auditlog.NewEvent("task.attempted").
		WithRound(number).
		WithParticipant(string(p)).
		WithTask(string(kind), outcome.Success, outcome.Message)); err != nil {
		// The audit trail is a correctness requirement; a task whose record
		// cannot be written did not happen.
		return "", agent.Outcome{}, err
	}
	return path, outcome, nil
}

func (o *Orchestrator) allocateAndRun(ctx context.Context, log *logging.Logger, number int,
	kind round.TaskKind, p participant.ID, sourceWS string) (string, agent.Outcome, error) {

	path, err := o.allocator.Allocate(workspaceName(number, kind, p))
	switch {
	case err == nil:
	case errors.Is(err, errors.ErrWorkspaceNotEmpty):
		// Cross-contamination guard: fail this task alone, leave the round's
		// other tasks unaffected.
		return "", agent.Failure(err.Error()), nil
	default:
		return "", agent.Outcome{}, err
	}

	budget := o.opts.Timeouts.forTask(kind)
	outcome := o.dispatch(ctx, log, budget, number, kind, p, sourceWS, path)

	if outcome.Success && o.opts.Validator != nil {
		outcome = o.verify(ctx, log, kind, path, outcome)
	}
	return path, outcome, nil
}

// dispatch races the agent call against the task budget. The loser is
// abandoned best-effort: the agent is not guaranteed to stop executing, the
// orchestrator just stops waiting.
func (o *Orchestrator) dispatch(ctx context.Context, log *logging.Logger, budget time.Duration,
	number int, kind round.TaskKind, p participant.ID, sourceWS, path string) agent.Outcome {

	taskCtx, cancel := context.WithTimeout(ctx, budget)
	defer cancel()

	type result struct {
		outcome agent.Outcome
		err     error
	}
	done := make(chan result, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- result{err: fmt.Errorf("agent panicked: %v", r)}
			}
		}()
		outcome, err := o.callAgent(taskCtx, number, kind, p, sourceWS, path)
		done <- result{outcome: outcome, err: err}
	}()

	select {
	case res := <-done:
		if res.err == nil {
			return res.outcome
		}
		if taskCtx.Err() == nil {
			// An unexpected agent error is a task failure, not a crash.
			log.Warn("agent call failed", "error", res.err)
			return agent.Failure(res.err.Error())
		}
	case <-taskCtx.Done():
	}

	log.Warn("task timed out", "budget", budget)
	return agent.Failure(errors.NewTimeout(string(kind), budget).Error())
}

func (o *Orchestrator) callAgent(ctx context.Context, number int, kind round.TaskKind,
	p participant.ID, sourceWS, path string) (agent.Outcome, error) {

	verifyCmd := strings.Join(contract.DefaultCommand, " ")
	if o.opts.Validator != nil {
		verifyCmd = o.opts.Validator.Command()
	}

	capability := o.agents[p]
	switch kind {
	case round.TaskBaseline:
		return capability.CreateBaseline(ctx, path, agent.FormatBaselinePrompt(number, verifyCmd))
	case round.TaskBugInjection:
		return capability.InjectBug(ctx, sourceWS, path, agent.FormatBugInjectionPrompt(number, verifyCmd))
	default:
		return capability.AttemptFix(ctx, sourceWS, path, agent.FormatFixAttemptPrompt(number, verifyCmd))
	}
}

// verify re-checks a claimed success against the build/test contract. For
// baseline and fix tasks the contract must pass; for an injection it must
// fail, since a bug that trips no test is not a bug.
func (o *Orchestrator) verify(ctx context.Context, log *logging.Logger,
	kind round.TaskKind, path string, claimed agent.Outcome) agent.Outcome {

	result, err := o.opts.Validator.Verify(ctx, path)
	if err != nil {
		log.Warn("contract verification could not run", "error", err)
		return agent.Failure(fmt.Sprintf("contract verification could not run: %v", err))
	}

	wantPass := kind != round.TaskBugInjection
	if result.Passed == wantPass {
		return claimed
	}
	if wantPass {
		return agent.Failure(fmt.Sprintf("contract verification failed: %s",
			util.TruncateString(result.Output, 300)))
	}
	return agent.Failure("contract verification still passes, no effective bug was injected")
}

func workspaceName(number int, kind round.TaskKind, p participant.ID) string {
	return fmt.Sprintf("round-%d-%s-%s", number, util.Slug(string(kind)), util.Slug(string(p)))
}
