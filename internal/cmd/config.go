package cmd

import (
	"github.com/spf13/cobra"

	"github.com/sesigl/ai-coding-arena/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	RunE:  showConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func showConfig(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	cmd.Printf("config file:  %s\n", config.ConfigFile())
	cmd.Printf("participants: %v\n", cfg.Competition.Participants)
	cmd.Printf("rounds:       %d\n", cfg.Competition.Rounds)
	cmd.Printf("timeouts:     baseline %s, injection %s, fix %s\n",
		cfg.Timeouts.Baseline(), cfg.Timeouts.BugInjection(), cfg.Timeouts.FixAttempt())
	cmd.Printf("workspaces:   %s (keep: %v)\n", cfg.Workspace.ResolveRoot(), cfg.Workspace.Keep)
	if len(cfg.Agent.Command) > 0 {
		cmd.Printf("agent:        %v\n", cfg.Agent.Command)
	} else {
		cmd.Printf("agent:        built-in mock\n")
	}
	if cfg.Contract.Enabled {
		cmd.Printf("contract:     %v (timeout %s)\n", cfg.Contract.Command, cfg.Contract.Timeout())
	} else {
		cmd.Printf("contract:     disabled\n")
	}
	cmd.Printf("logging:      enabled=%v level=%s dir=%s\n",
		cfg.Logging.Enabled, cfg.Logging.Level, cfg.Logging.ResolveDir())
	return nil
}
