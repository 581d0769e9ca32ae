/*
errors.go - Centralized error types for the roster engine

PURPOSE:
  All error types in one place. Every failure in this engine is scoped
  to the single shift or assignment being processed; nothing here is
  fatal to the caller's process.

ERROR CATEGORIES:
  1. Validation errors    - malformed input (times, dates, fields)
  2. Configuration errors - the rate table is missing a required rate
  3. Compliance advisory  - NOT an error: see BreakViolation in breaks.go,
     which is a result value surfaced to a human for accept/deny

USAGE:
  Callers can branch with errors.Is:

    if errors.Is(err, roster.ErrValidation) {
        // 400 to the client
    }
*/
package roster

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrValidation is the root of all malformed-input errors.
	ErrValidation = errors.New("validation failed")

	// ErrConfiguration is the root of all rate-table configuration errors.
	ErrConfiguration = errors.New("configuration invalid")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// ValidationError reports a malformed field on a single shift or request.
type ValidationError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// ConfigurationError reports a rate table missing a rate required by the
// active pay mode. It blocks pay computation for the affected shift only.
type ConfigurationError struct {
	Key  string
	Mode PayMode
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("rate table missing %q (pay mode %s)", e.Key, e.Mode)
}

func (e *ConfigurationError) Unwrap() error { return ErrConfiguration }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsValidation returns true if the error is due to invalid client input.
func IsValidation(err error) bool { return errors.Is(err, ErrValidation) }

// IsConfiguration returns true if the error is due to an incomplete rate table.
func IsConfiguration(err error) bool { return errors.Is(err, ErrConfiguration) }
