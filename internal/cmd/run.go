package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/sesigl/ai-coding-arena/internal/agent"
	"github.com/sesigl/ai-coding-arena/internal/auditlog"
	"github.com/sesigl/ai-coding-arena/internal/config"
	"github.com/sesigl/ai-coding-arena/internal/contract"
	"github.com/sesigl/ai-coding-arena/internal/event"
	"github.com/sesigl/ai-coding-arena/internal/logging"
	"github.com/sesigl/ai-coding-arena/internal/orchestrator"
	"github.com/sesigl/ai-coding-arena/internal/participant"
	"github.com/sesigl/ai-coding-arena/internal/scoreboard"
	"github.com/sesigl/ai-coding-arena/internal/workspace"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a competition",
	Long: `Run a competition over the configured participants and round count.
Participants and rounds come from the config file or can be overridden
with flags. Without an agent command, the built-in mock agent plays
every role, which is useful for dry runs.`,
	RunE: runCompetition,
}

func init() {
	runCmd.Flags().StringSlice("participants", nil, "participant names in rotation order (minimum 3)")
	runCmd.Flags().Int("rounds", 0, "number of rounds to run")
	runCmd.Flags().StringSlice("agent-command", nil, "agent argv; instructions arrive on stdin")
	runCmd.Flags().String("workspace-root", "", "directory for task workspaces")
	runCmd.Flags().Bool("keep-workspaces", false, "keep task workspaces after each round")
	runCmd.Flags().Bool("no-verify", false, "trust agent claims instead of running the build/test contract")

	rootCmd.AddCommand(runCmd)
}

func runCompetition(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	applyRunFlags(cmd, cfg)

	roster, err := participant.NewRoster(cfg.Competition.Participants)
	if err != nil {
		return err
	}

	logger := logging.Nop()
	if cfg.Logging.Enabled {
		logger, err = logging.New(cfg.Logging.ResolveDir(), cfg.Logging.Level)
		if err != nil {
			return fmt.Errorf("failed to set up logging: %w", err)
		}
		defer logger.Close()
	}

	audit, err := auditlog.NewFileSink(filepath.Join(cfg.Logging.ResolveDir(), "audit.jsonl"))
	if err != nil {
		return fmt.Errorf("failed to open audit log: %w", err)
	}
	defer audit.Close()

	agents, err := buildAgents(roster, cfg, logger)
	if err != nil {
		return err
	}

	opts := orchestrator.Options{
		Timeouts: orchestrator.Timeouts{
			Baseline:     cfg.Timeouts.Baseline(),
			BugInjection: cfg.Timeouts.BugInjection(),
			FixAttempt:   cfg.Timeouts.FixAttempt(),
		},
		Logger:         logger,
		KeepWorkspaces: cfg.Workspace.Keep,
	}
	if cfg.Contract.Enabled {
		opts.Validator = contract.NewValidator(cfg.Contract.Command, cfg.Contract.Timeout(), logger)
	}

	alloc := workspace.NewDirAllocator(cfg.Workspace.ResolveRoot(), logger)
	o, err := orchestrator.New(roster, agents, alloc, audit, opts)
	if err != nil {
		return err
	}
	o.Subscribe(progressObserver(cmd))

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	summary, runErr := o.RunCompetition(ctx, cfg.Competition.Rounds)

	if term.IsTerminal(int(os.Stdout.Fd())) {
		cmd.Print(scoreboard.Render(summary))
	} else {
		cmd.Print(scoreboard.Plain(summary))
	}
	return runErr
}

func applyRunFlags(cmd *cobra.Command, cfg *config.Config) {
	if v, _ := cmd.Flags().GetStringSlice("participants"); len(v) > 0 {
		cfg.Competition.Participants = v
	}
	if v, _ := cmd.Flags().GetInt("rounds"); v > 0 {
		cfg.Competition.Rounds = v
	}
	if v, _ := cmd.Flags().GetStringSlice("agent-command"); len(v) > 0 {
		cfg.Agent.Command = v
	}
	if v, _ := cmd.Flags().GetString("workspace-root"); v != "" {
		cfg.Workspace.Root = v
	}
	if v, _ := cmd.Flags().GetBool("keep-workspaces"); v {
		cfg.Workspace.Keep = true
	}
	if v, _ := cmd.Flags().GetBool("no-verify"); v {
		cfg.Contract.Enabled = false
	}
}

// buildAgents binds every roster member to an agent capability. All members
// share the same agent command; what differs per task is the role prompt and
// the workspace.
func buildAgents(roster *participant.Roster, cfg *config.Config, logger *logging.Logger) (map[participant.ID]agent.Capability, error) {
	agents := make(map[participant.ID]agent.Capability, roster.Size())
	for _, p := range roster.Members() {
		if len(cfg.Agent.Command) == 0 {
			agents[p] = &agent.Mock{Name: string(p)}
			continue
		}
		cli, err := agent.NewCLI(cfg.Agent.Command, logger.WithParticipant(string(p)))
		if err != nil {
			return nil, err
		}
		agents[p] = cli
	}
	return agents, nil
}

func progressObserver(cmd *cobra.Command) event.Observer {
	status := func(success bool) string {
		if success {
			return "ok"
		}
		return "FAILED"
	}
	return func(e event.Event) {
		switch ev := e.(type) {
		case event.RoundStartedEvent:
			cmd.Printf("round %d: baseline author %s\n", ev.Round, ev.BaselineAuthor)
		case event.TaskAttemptEvent:
			cmd.Printf("  %s %s [%s] %s\n", ev.EventType(), ev.Participant, status(ev.Success), ev.Message)
		case event.RoundFinishedEvent:
			cmd.Printf("round %d finished\n", ev.Round)
		}
	}
}
