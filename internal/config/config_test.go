package config

import (
	"strings"
	"testing"

	"github.com/spf13/viper"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if errs := cfg.Validate(); len(errs) != 0 {
		t.Fatalf("default config invalid: %v", ValidationErrors(errs))
	}
}

func TestLoadFromDefaults(t *testing.T) {
	viper.Reset()
	defer viper.Reset()
	SetDefaults()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Competition.Rounds != 3 {
		t.Errorf("Rounds = %d, want 3", cfg.Competition.Rounds)
	}
	if cfg.Timeouts.BaselineMinutes <= cfg.Timeouts.BugInjectionMinutes {
		t.Error("baseline budget should be the largest")
	}
	if got := cfg.Contract.Command; len(got) != 2 || got[0] != "make" {
		t.Errorf("Contract.Command = %v", got)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	viper.Reset()
	defer viper.Reset()
	SetDefaults()
	viper.Set("competition.rounds", 0)
	viper.Set("logging.level", "loud")

	_, err := Load()
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), "competition.rounds") {
		t.Errorf("error missing rounds field: %v", err)
	}
	if !strings.Contains(err.Error(), "logging.level") {
		t.Errorf("error missing level field: %v", err)
	}
}

func TestValidateParticipants(t *testing.T) {
	cfg := Default()
	cfg.Competition.Participants = []string{"a", "b"}

	errs := cfg.Validate()
	if len(errs) != 1 || errs[0].Field != "competition.participants" {
		t.Fatalf("Validate() = %v", errs)
	}

	cfg.Competition.Participants = []string{"a", "b", "c"}
	if errs := cfg.Validate(); len(errs) != 0 {
		t.Fatalf("three participants should validate, got %v", errs)
	}
}

func TestTimeoutDurations(t *testing.T) {
	cfg := Default()
	if cfg.Timeouts.Baseline().Minutes() != 10 {
		t.Errorf("Baseline() = %v", cfg.Timeouts.Baseline())
	}
	if cfg.Timeouts.FixAttempt().Minutes() != 5 {
		t.Errorf("FixAttempt() = %v", cfg.Timeouts.FixAttempt())
	}
}

func TestValidationErrorsFormatting(t *testing.T) {
	errs := ValidationErrors{
		{Field: "a", Value: 1, Message: "bad"},
		{Field: "b", Value: 2, Message: "worse"},
	}
	out := errs.Error()
	if !strings.Contains(out, "2 validation errors") {
		t.Errorf("Error() = %q", out)
	}

	one := ValidationErrors{{Field: "a", Value: 1, Message: "bad"}}
	if one.Error() != "a: bad (got: 1)" {
		t.Errorf("single error = %q", one.Error())
	}
}
