package config

import (
	"fmt"
	"slices"
	"strings"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // The config field path (e.g., "competition.rounds")
	Value   any    // The invalid value
	Message string // Human-readable error description
}

// Error implements the error interface for ValidationError
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for ValidationErrors
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e)))
	for i, err := range e {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// ValidLogLevels returns the list of valid log levels
func ValidLogLevels() []string {
	return []string{"debug", "info", "warn", "error"}
}

// Validate checks the Config for invalid values and returns all validation errors found
func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	errors = append(errors, c.validateCompetition()...)
	errors = append(errors, c.validateTimeouts()...)
	errors = append(errors, c.validateContract()...)
	errors = append(errors, c.validateLogging()...)

	return errors
}

// validateCompetition validates the CompetitionConfig
func (c *Config) validateCompetition() []ValidationError {
	var errors []ValidationError

	if c.Competition.Rounds < 1 {
		errors = append(errors, ValidationError{
			Field:   "competition.rounds",
			Value:   c.Competition.Rounds,
			Message: "must be at least 1",
		})
	}
	// An empty roster is allowed here; the run command supplies participants
	// via flags. A non-empty roster must fill three distinct roles.
	if n := len(c.Competition.Participants); n > 0 && n < 3 {
		errors = append(errors, ValidationError{
			Field:   "competition.participants",
			Value:   c.Competition.Participants,
			Message: "must list at least 3 participants",
		})
	}

	return errors
}

// validateTimeouts validates the TimeoutConfig
func (c *Config) validateTimeouts() []ValidationError {
	var errors []ValidationError

	checks := []struct {
		field string
		value int
	}{
		{"timeouts.baseline_minutes", c.Timeouts.BaselineMinutes},
		{"timeouts.bug_injection_minutes", c.Timeouts.BugInjectionMinutes},
		{"timeouts.fix_attempt_minutes", c.Timeouts.FixAttemptMinutes},
	}
	for _, check := range checks {
		if check.value < 1 {
			errors = append(errors, ValidationError{
				Field:   check.field,
				Value:   check.value,
				Message: "must be at least 1",
			})
		}
	}

	return errors
}

// validateContract validates the ContractConfig
func (c *Config) validateContract() []ValidationError {
	var errors []ValidationError

	if c.Contract.Enabled && len(c.Contract.Command) == 0 {
		errors = append(errors, ValidationError{
			Field:   "contract.command",
			Value:   c.Contract.Command,
			Message: "must not be empty when contract verification is enabled",
		})
	}
	if c.Contract.TimeoutMinutes < 0 {
		errors = append(errors, ValidationError{
			Field:   "contract.timeout_minutes",
			Value:   c.Contract.TimeoutMinutes,
			Message: "must be non-negative",
		})
	}

	return errors
}

// validateLogging validates the LoggingConfig
func (c *Config) validateLogging() []ValidationError {
	var errors []ValidationError

	if c.Logging.Level != "" && !slices.Contains(ValidLogLevels(), c.Logging.Level) {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Value:   c.Logging.Level,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidLogLevels(), ", ")),
		})
	}

	return errors
}
