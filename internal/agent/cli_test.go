package agent

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"
)

// fakeAgent writes a shell script that acts as the external agent command.
func fakeAgent(t *testing.T, script string) []string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell-script fake agent requires a POSIX shell")
	}
	path := filepath.Join(t.TempDir(), "agent.sh")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+script), 0o755); err != nil {
		t.Fatalf("write fake agent: %v", err)
	}
	return []string{"/bin/sh", path}
}

func TestNewCLIRequiresCommand(t *testing.T) {
	if _, err := NewCLI(nil, nil); err == nil {
		t.Fatal("expected error for empty command")
	}
}

func TestCLIReportsOutcomeFromSentinel(t *testing.T) {
	cmd := fakeAgent(t, `printf '{"success": true, "message": "built the project"}' > `+OutcomeFileName+"\nsleep 5\n")
	cli, err := NewCLI(cmd, nil)
	if err != nil {
		t.Fatalf("NewCLI: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	outcome, err := cli.CreateBaseline(ctx, t.TempDir(), "build something")
	if err != nil {
		t.Fatalf("CreateBaseline: %v", err)
	}
	if !outcome.Success || outcome.Message != "built the project" {
		t.Errorf("outcome = %+v", outcome)
	}
}

func TestCLIExitWithoutSentinelIsFailure(t *testing.T) {
	cmd := fakeAgent(t, "echo 'something went sideways'\nexit 1\n")
	cli, err := NewCLI(cmd, nil)
	if err != nil {
		t.Fatalf("NewCLI: %v", err)
	}

	outcome, err := cli.CreateBaseline(context.Background(), t.TempDir(), "build something")
	if err != nil {
		t.Fatalf("CreateBaseline: %v", err)
	}
	if outcome.Success {
		t.Fatalf("expected failure, got %+v", outcome)
	}
	if !strings.Contains(outcome.Message, "exited without reporting an outcome") {
		t.Errorf("Message = %q", outcome.Message)
	}
	if !strings.Contains(outcome.Message, "something went sideways") {
		t.Errorf("expected captured output in message, got %q", outcome.Message)
	}
}

func TestCLISeedsWorkspaceAndClearsStaleSentinel(t *testing.T) {
	source := t.TempDir()
	if err := os.WriteFile(filepath.Join(source, "main.go"), []byte("package main\n"), 0o644); err != nil {
		t.Fatalf("seed source: %v", err)
	}
	// A stale sentinel in the source must not leak into the new task.
	if err := os.WriteFile(OutcomeFilePath(source), []byte(`{"success": true, "message": "old"}`), 0o644); err != nil {
		t.Fatalf("seed stale sentinel: %v", err)
	}

	cmd := fakeAgent(t, `test -f main.go || exit 1
printf '{"success": true, "message": "bug planted"}' > `+OutcomeFileName+"\n")
	cli, err := NewCLI(cmd, nil)
	if err != nil {
		t.Fatalf("NewCLI: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	outcome, err := cli.InjectBug(ctx, source, t.TempDir(), "plant a bug")
	if err != nil {
		t.Fatalf("InjectBug: %v", err)
	}
	if !outcome.Success || outcome.Message != "bug planted" {
		t.Errorf("outcome = %+v", outcome)
	}
}

func TestCLIContextCancellation(t *testing.T) {
	cmd := fakeAgent(t, "sleep 30\n")
	cli, err := NewCLI(cmd, nil)
	if err != nil {
		t.Fatalf("NewCLI: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err = cli.CreateBaseline(ctx, t.TempDir(), "build something")
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Errorf("cancellation took %v", elapsed)
	}
}
