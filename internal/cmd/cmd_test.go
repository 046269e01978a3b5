package cmd

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// executeCommand runs a cobra command with args and returns captured output
func executeCommand(root *cobra.Command, args ...string) (output string, err error) {
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err = root.Execute()
	return buf.String(), err
}

// isolateConfig points config discovery and derived paths at a temp dir
func isolateConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	viper.Reset()
	t.Cleanup(viper.Reset)
	return dir
}

func TestRootCommandWiring(t *testing.T) {
	if rootCmd.Use != "arena" {
		t.Errorf("rootCmd.Use = %q, want %q", rootCmd.Use, "arena")
	}

	cmdMap := make(map[string]bool)
	for _, cmd := range rootCmd.Commands() {
		cmdMap[cmd.Name()] = true
	}
	for _, name := range []string{"run", "config", "version"} {
		if !cmdMap[name] {
			t.Errorf("missing subcommand %q", name)
		}
	}
}

func TestVersionCommand(t *testing.T) {
	isolateConfig(t)

	out, err := executeCommand(rootCmd, "version")
	if err != nil {
		t.Fatalf("version command error = %v", err)
	}
	if !strings.Contains(out, "arena") {
		t.Errorf("output = %q", out)
	}
}

func TestConfigCommandShowsDefaults(t *testing.T) {
	isolateConfig(t)

	out, err := executeCommand(rootCmd, "config")
	if err != nil {
		t.Fatalf("config command error = %v", err)
	}
	if !strings.Contains(out, "rounds:       3") {
		t.Errorf("output missing default rounds:\n%s", out)
	}
	if !strings.Contains(out, "built-in mock") {
		t.Errorf("output missing agent line:\n%s", out)
	}
}

func TestRunCommandWithMockAgents(t *testing.T) {
	dir := isolateConfig(t)

	out, err := executeCommand(rootCmd, "run",
		"--participants", "alpha,beta,gamma",
		"--rounds", "2",
		"--workspace-root", filepath.Join(dir, "ws"),
		"--no-verify")
	if err != nil {
		t.Fatalf("run command error = %v\noutput:\n%s", err, out)
	}

	if !strings.Contains(out, "round 1: baseline author alpha") {
		t.Errorf("missing round 1 progress:\n%s", out)
	}
	if !strings.Contains(out, "round 2 finished") {
		t.Errorf("missing round 2 completion:\n%s", out)
	}
	if !strings.Contains(out, "Final Standings") {
		t.Errorf("missing scoreboard:\n%s", out)
	}
	for _, name := range []string{"alpha", "beta", "gamma"} {
		if !strings.Contains(out, name) {
			t.Errorf("scoreboard missing %q:\n%s", name, out)
		}
	}
}

func TestRunCommandRejectsSmallRoster(t *testing.T) {
	isolateConfig(t)

	_, err := executeCommand(rootCmd, "run", "--participants", "solo,duo")
	if err == nil {
		t.Fatal("expected error for a two-participant roster")
	}
}
