package apperrors

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Process exit codes.
const (
	ExitSuccess       = 0   // All checks passed.
	ExitErrorGeneric  = 1   // Unclassified failure.
	ExitErrorTimeout  = 2   // The run exceeded its deadline.
	ExitErrorMismatch = 3   // Two strategies disagreed on a result.
	ExitErrorConfig   = 4   // Invalid flags, environment or profile.
	ExitErrorCanceled = 130 // Interrupted by a signal.
)

// ConfigError reports invalid user configuration.
type ConfigError struct {
	Message string
}

func (e ConfigError) Error() string { return e.Message }

// NewConfigError creates a ConfigError with a formatted message.
//
// Parameters:
//   - format: A format string (see fmt.Sprintf).
//   - a: Arguments to be formatted into the string.
//
// Returns:
//   - error: A ConfigError holding the formatted message.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// StrategyError wraps the failure of a single strategy run.
type StrategyError struct {
	// Strategy is the name of the strategy that failed.
	Strategy string
	// Cause is the underlying error.
	Cause error
}

func (e StrategyError) Error() string {
	return fmt.Sprintf("strategy %s: %v", e.Strategy, e.Cause)
}

func (e StrategyError) Unwrap() error { return e.Cause }

// TimeoutError reports an operation that exceeded its time limit.
type TimeoutError struct {
	Operation string
	Limit     time.Duration
}

func (e TimeoutError) Error() string {
	return fmt.Sprintf("operation %q timed out after %s", e.Operation, e.Limit)
}

// ValidationError reports a field that failed validation.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error for %q: %s", e.Field, e.Message)
}

// MismatchError reports strategies that produced different results on the
// same input.
type MismatchError struct {
	// Operation names the checked operation, such as "mod_limb".
	Operation string
	// Case is the index of the first disagreeing workload case.
	Case int
	// Length is the limb length of that case.
	Length int
	// Strategies lists the strategies that disagreed with the reference.
	Strategies []string
}

func (e MismatchError) Error() string {
	return fmt.Sprintf("%s mismatch in case %d (%d limbs): %s",
		e.Operation, e.Case, e.Length, strings.Join(e.Strategies, ", "))
}

// WrapError adds context to err with %w so the cause stays inspectable.
//
// Returns:
//   - error: The wrapped error, or nil if err is nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// IsContextError reports whether err is a cancellation or deadline error.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// ExitCodeFor maps an error to the process exit code.
//
// Returns:
//   - int: ExitSuccess for nil, otherwise the code of the most specific
//     error class found in the chain.
func ExitCodeFor(err error) int {
	var (
		cfgErr      ConfigError
		valErr      ValidationError
		mismatchErr MismatchError
		timeoutErr  TimeoutError
	)
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, context.DeadlineExceeded), errors.As(err, &timeoutErr):
		return ExitErrorTimeout
	case errors.Is(err, context.Canceled):
		return ExitErrorCanceled
	case errors.As(err, &mismatchErr):
		return ExitErrorMismatch
	case errors.As(err, &cfgErr), errors.As(err, &valErr):
		return ExitErrorConfig
	default:
		return ExitErrorGeneric
	}
}
