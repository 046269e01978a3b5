package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sesigl/ai-coding-arena/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "arena",
	Short: "Coding-agent benchmark competition runner",
	Long: `Arena runs benchmark competitions between autonomous coding agents.
Each round, participants rotate through three roles: author a baseline
project, inject a realistic bug into another participant's baseline, and
attempt to fix an injected bug. Scores accumulate across rounds into a
final scoreboard.`,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.config/arena/config.yaml)")
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
}

func initConfig() {
	// Set defaults first so they're available even without a config file
	config.SetDefaults()

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(config.ConfigDir())
		viper.AddConfigPath(".")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("ARENA")
	// Replace dots with underscores for nested keys in env vars
	// e.g., ARENA_COMPETITION_ROUNDS for competition.rounds
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file if it exists (ignore error if not found)
	_ = viper.ReadInConfig()
}
