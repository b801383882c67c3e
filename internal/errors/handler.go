package apperrors

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"
)

// ErrSyntax is wrapped by every error caused by malformed textual input
// (expressions, matrix files). It lets the handler pick ExitErrorInput
// without importing the parsers.
var ErrSyntax = errors.New("syntax error")

// ColorProvider supplies the highlight escapes used in status lines. The cli
// package implements it; apperrors cannot import cli.
type ColorProvider interface {
	Yellow() string
	Reset() string
}

// DefaultColorProvider highlights nothing.
type DefaultColorProvider struct{}

func (d DefaultColorProvider) Yellow() string { return "" }
func (d DefaultColorProvider) Reset() string  { return "" }

// HandleCalculationError prints a one-line status for a failed evaluation
// and returns the matching exit code.
//
// Parameters:
//   - err: The evaluation error; nil prints nothing.
//   - duration: Appended to timeout and cancellation messages when positive.
//   - out: Receives the status line.
//   - colors: Highlight provider; nil disables highlighting.
//
// Returns:
//   - int: ExitSuccess, ExitErrorTimeout, ExitErrorCanceled, ExitErrorInput,
//     ExitErrorArithmetic or ExitErrorGeneric.
func HandleCalculationError(err error, duration time.Duration, out io.Writer, colors ColorProvider) int {
	if err == nil {
		return ExitSuccess
	}

	if colors == nil {
		colors = DefaultColorProvider{}
	}

	msgSuffix := ""
	if duration > 0 {
		msgSuffix = fmt.Sprintf(" after %s%s%s", colors.Yellow(), duration, colors.Reset())
	}

	if errors.Is(err, context.DeadlineExceeded) {
		fmt.Fprintf(out, "Status: Failure (Timeout). The execution limit was reached%s.\n", msgSuffix)
		return ExitErrorTimeout
	}
	if errors.Is(err, context.Canceled) {
		fmt.Fprintf(out, "%sStatus: Canceled%s.%s\n", colors.Yellow(), msgSuffix, colors.Reset())
		return ExitErrorCanceled
	}
	if errors.Is(err, ErrSyntax) {
		fmt.Fprintf(out, "Status: Failure (Invalid input). %v\n", err)
		return ExitErrorInput
	}
	if kind, ok := KindOf(err); ok {
		if kind == NotANumber {
			fmt.Fprintf(out, "Status: Failure (Invalid input). %v\n", err)
			return ExitErrorInput
		}
		fmt.Fprintf(out, "Status: Failure (%s). %v\n", kind.describe(), err)
		return ExitErrorArithmetic
	}
	fmt.Fprintf(out, "Status: Failure. An unexpected error occurred: %v\n", err)
	return ExitErrorGeneric
}

// Classify names the category of err for machine-readable output: the
// arithmetic kind identifier (e.g. "zero_division"), "syntax", "timeout",
// "canceled" or "internal". It returns "" for a nil error.
func Classify(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "canceled"
	case errors.Is(err, ErrSyntax):
		return "syntax"
	}
	if kind, ok := KindOf(err); ok {
		return kind.String()
	}
	return "internal"
}
