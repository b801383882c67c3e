package apperrors

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ArithmeticKind is the closed set of failures the exact arithmetic core can
// report. Callers switch on the kind, never on message text.
type ArithmeticKind int

const (
	// NotANumber: a supplied string is not a valid decimal integer.
	NotANumber ArithmeticKind = iota + 1
	// ZeroDivision: a zero denominator or a division by the zero fraction.
	ZeroDivision
	// BadCast: a narrowing cast of a fraction whose denominator is not 1.
	BadCast
	// OutOfBounds: a conversion whose magnitude exceeds the destination range.
	OutOfBounds
)

// String returns the stable identifier of the kind, as used in JSON output.
func (k ArithmeticKind) String() string {
	switch k {
	case NotANumber:
		return "not_a_number"
	case ZeroDivision:
		return "zero_division"
	case BadCast:
		return "bad_cast"
	case OutOfBounds:
		return "out_of_bounds"
	default:
		return fmt.Sprintf("arithmetic_kind(%d)", int(k))
	}
}

func (k ArithmeticKind) describe() string {
	switch k {
	case NotANumber:
		return "not a number"
	case ZeroDivision:
		return "division by zero"
	case BadCast:
		return "bad cast"
	case OutOfBounds:
		return "out of bounds"
	default:
		return k.String()
	}
}

// ArithmeticError is returned by the digits and rational packages.
type ArithmeticError struct {
	// Kind classifies the failure.
	Kind ArithmeticKind
	// Op is the operation that failed (e.g. "rational.Parse").
	Op string
	// Input is the offending operand in text form (optional).
	Input string
}

// Error formats the error as "op: kind: input".
func (e ArithmeticError) Error() string {
	msg := e.Kind.describe()
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Input != "" {
		msg = fmt.Sprintf("%s: %q", msg, e.Input)
	}
	return msg
}

// Is reports whether target is an ArithmeticError of the same kind, which
// makes the Err* sentinels below match any error of their kind.
func (e ArithmeticError) Is(target error) bool {
	t, ok := target.(ArithmeticError)
	return ok && t.Kind == e.Kind
}

// Sentinels for errors.Is checks.
var (
	ErrNotANumber   = ArithmeticError{Kind: NotANumber}
	ErrZeroDivision = ArithmeticError{Kind: ZeroDivision}
	ErrBadCast      = ArithmeticError{Kind: BadCast}
	ErrOutOfBounds  = ArithmeticError{Kind: OutOfBounds}
)

// NewArithmeticError builds an ArithmeticError.
func NewArithmeticError(kind ArithmeticKind, op, input string) error {
	return ArithmeticError{Kind: kind, Op: op, Input: input}
}

// KindOf returns the arithmetic kind carried anywhere in err's chain.
func KindOf(err error) (ArithmeticKind, bool) {
	var ae ArithmeticError
	if errors.As(err, &ae) {
		return ae.Kind, true
	}
	return 0, false
}

// PositionError attaches the location of a failure in textual input: an
// expression, an input file or a matrix file. Line and Column are 1-based;
// zero means unknown. The cause stays reachable through Unwrap, so the
// arithmetic kind and ErrSyntax survive the wrapping.
type PositionError struct {
	// Source names the input, e.g. a file path or "expression".
	Source string
	Line   int
	Column int
	Cause  error
}

// Error formats the error as "source:line: cause", "source: column c: cause"
// or "source:line: column c: cause". Without a source or position it is the
// bare cause.
func (e PositionError) Error() string {
	var b strings.Builder
	b.WriteString(e.Source)
	if e.Line > 0 {
		if e.Source == "" {
			b.WriteString("line ")
		} else {
			b.WriteByte(':')
		}
		b.WriteString(strconv.Itoa(e.Line))
	}
	if e.Column > 0 {
		if b.Len() > 0 {
			b.WriteString(": ")
		}
		b.WriteString("column ")
		b.WriteString(strconv.Itoa(e.Column))
	}
	if b.Len() == 0 {
		return e.Cause.Error()
	}
	b.WriteString(": ")
	b.WriteString(e.Cause.Error())
	return b.String()
}

func (e PositionError) Unwrap() error { return e.Cause }
