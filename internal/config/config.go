package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config represents the complete arena configuration
type Config struct {
	Competition CompetitionConfig `mapstructure:"competition"`
	Timeouts    TimeoutConfig     `mapstructure:"timeouts"`
	Workspace   WorkspaceConfig   `mapstructure:"workspace"`
	Agent       AgentConfig       `mapstructure:"agent"`
	Contract    ContractConfig    `mapstructure:"contract"`
	Logging     LoggingConfig     `mapstructure:"logging"`
}

// CompetitionConfig controls the competition shape
type CompetitionConfig struct {
	// Participants are the roster identifiers in rotation order (minimum 3)
	Participants []string `mapstructure:"participants"`
	// Rounds is the number of rounds to run
	Rounds int `mapstructure:"rounds"`
}

// TimeoutConfig holds the per-task time budgets in minutes.
// Baseline authoring gets the largest default budget.
type TimeoutConfig struct {
	BaselineMinutes     int `mapstructure:"baseline_minutes"`
	BugInjectionMinutes int `mapstructure:"bug_injection_minutes"`
	FixAttemptMinutes   int `mapstructure:"fix_attempt_minutes"`
}

// Baseline returns the baseline budget as a duration
func (t *TimeoutConfig) Baseline() time.Duration {
	return time.Duration(t.BaselineMinutes) * time.Minute
}

// BugInjection returns the injection budget as a duration
func (t *TimeoutConfig) BugInjection() time.Duration {
	return time.Duration(t.BugInjectionMinutes) * time.Minute
}

// FixAttempt returns the fix budget as a duration
func (t *TimeoutConfig) FixAttempt() time.Duration {
	return time.Duration(t.FixAttemptMinutes) * time.Minute
}

// WorkspaceConfig controls task workspace placement
type WorkspaceConfig struct {
	// Root is the directory task workspaces are created under.
	// Empty resolves to <config dir>/workspaces.
	Root string `mapstructure:"root"`
	// Keep leaves task workspaces in place after each round instead of
	// deleting them
	Keep bool `mapstructure:"keep"`
}

// ResolveRoot returns the effective workspace root
func (w *WorkspaceConfig) ResolveRoot() string {
	if w.Root != "" {
		return w.Root
	}
	return filepath.Join(ConfigDir(), "workspaces")
}

// AgentConfig controls how participants' agents are invoked
type AgentConfig struct {
	// Command is the agent argv; instructions arrive on stdin and the agent
	// reports via the outcome file. Empty selects the built-in mock agent.
	Command []string `mapstructure:"command"`
}

// ContractConfig controls build/test contract verification
type ContractConfig struct {
	// Enabled re-checks every claimed task success against the contract
	Enabled bool `mapstructure:"enabled"`
	// Command is the verify argv run inside the workspace (default: make verify)
	Command []string `mapstructure:"command"`
	// TimeoutMinutes bounds one verification run
	TimeoutMinutes int `mapstructure:"timeout_minutes"`
}

// Timeout returns the verification budget as a duration
func (c *ContractConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutMinutes) * time.Minute
}

// LoggingConfig controls the structured log output
type LoggingConfig struct {
	// Enabled turns file logging on
	Enabled bool `mapstructure:"enabled"`
	// Level is the minimum level: "debug", "info", "warn", "error"
	Level string `mapstructure:"level"`
	// Dir is where log files go. Empty resolves to <config dir>/logs.
	Dir string `mapstructure:"dir"`
}

// ResolveDir returns the effective log directory
func (l *LoggingConfig) ResolveDir() string {
	if l.Dir != "" {
		return l.Dir
	}
	return filepath.Join(ConfigDir(), "logs")
}

// Default returns the configuration defaults
func Default() *Config {
	return &Config{
		Competition: CompetitionConfig{
			Rounds: 3,
		},
		Timeouts: TimeoutConfig{
			BaselineMinutes:     10,
			BugInjectionMinutes: 5,
			FixAttemptMinutes:   5,
		},
		Workspace: WorkspaceConfig{
			Keep: false,
		},
		Contract: ContractConfig{
			Enabled:        true,
			Command:        []string{"make", "verify"},
			TimeoutMinutes: 5,
		},
		Logging: LoggingConfig{
			Enabled: true,
			Level:   "info",
		},
	}
}

// SetDefaults registers all defaults with viper
func SetDefaults() {
	defaults := Default()

	// Competition defaults
	viper.SetDefault("competition.participants", defaults.Competition.Participants)
	viper.SetDefault("competition.rounds", defaults.Competition.Rounds)

	// Timeout defaults
	viper.SetDefault("timeouts.baseline_minutes", defaults.Timeouts.BaselineMinutes)
	viper.SetDefault("timeouts.bug_injection_minutes", defaults.Timeouts.BugInjectionMinutes)
	viper.SetDefault("timeouts.fix_attempt_minutes", defaults.Timeouts.FixAttemptMinutes)

	// Workspace defaults
	viper.SetDefault("workspace.root", defaults.Workspace.Root)
	viper.SetDefault("workspace.keep", defaults.Workspace.Keep)

	// Agent defaults
	viper.SetDefault("agent.command", defaults.Agent.Command)

	// Contract defaults
	viper.SetDefault("contract.enabled", defaults.Contract.Enabled)
	viper.SetDefault("contract.command", defaults.Contract.Command)
	viper.SetDefault("contract.timeout_minutes", defaults.Contract.TimeoutMinutes)

	// Logging defaults
	viper.SetDefault("logging.enabled", defaults.Logging.Enabled)
	viper.SetDefault("logging.level", defaults.Logging.Level)
	viper.SetDefault("logging.dir", defaults.Logging.Dir)
}

// Load reads the configuration from viper into a Config struct and validates it
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "arena")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".arena"
	}
	return filepath.Join(home, ".config", "arena")
}

// ConfigFile returns the path to the config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}
