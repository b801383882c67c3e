// Package apperrors holds the error types shared by every layer of ratcalc:
// the closed set of arithmetic failure kinds, source positions for textual
// input, the configuration/evaluation/server wrappers and the mapping from
// errors to process exit codes. Every wrapper implements Unwrap, so callers
// test for causes with errors.Is and errors.As.
package apperrors

import (
	"context"
	"errors"
	"fmt"
)

// Process exit codes.
const (
	ExitSuccess         = 0   // Indicates successful execution.
	ExitErrorGeneric    = 1   // Indicates a generic error.
	ExitErrorTimeout    = 2   // Indicates the operation timed out.
	ExitErrorMismatch   = 3   // Indicates a result mismatch between engines.
	ExitErrorConfig     = 4   // Indicates a configuration error.
	ExitErrorInput      = 5   // Indicates malformed input (syntax, file format).
	ExitErrorArithmetic = 6   // Indicates an arithmetic failure (division by zero, ...).
	ExitErrorCanceled   = 130 // Indicates the operation was canceled (e.g., SIGINT).
)

// ConfigError is an invalid flag, environment value or flag combination.
type ConfigError struct {
	Message string
}

func (e ConfigError) Error() string { return e.Message }

// NewConfigError formats a ConfigError.
//
// Parameters:
//   - format: A fmt format string.
//   - a: The format arguments.
//
// Returns:
//   - error: A ConfigError holding the formatted message.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// CalculationError encapsulates an evaluation error while preserving the
// original cause. The engine name is kept so that reports can tell which
// backend failed.
type CalculationError struct {
	// Engine is the name of the engine that produced the error (may be empty).
	Engine string
	// Cause is the underlying error that triggered this calculation error.
	Cause error
}

func (e CalculationError) Error() string { return e.Cause.Error() }

func (e CalculationError) Unwrap() error { return e.Cause }

// ServerError is a failure to start or stop the HTTP server.
type ServerError struct {
	Message string
	// Cause is optional.
	Cause error
}

func (e ServerError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e ServerError) Unwrap() error { return e.Cause }

// NewServerError builds a ServerError.
func NewServerError(message string, cause error) error {
	return ServerError{Message: message, Cause: cause}
}

// WrapError prefixes err with a formatted context message, keeping it
// inspectable with errors.Is and errors.As.
//
// Parameters:
//   - err: The error to wrap; nil yields nil.
//   - format: A fmt format string for the prefix.
//   - args: The format arguments.
//
// Returns:
//   - error: "prefix: err", or nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// IsContextError reports whether err stems from cancellation or an expired
// deadline. Such errors abort an evaluation; every other error is an answer.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
