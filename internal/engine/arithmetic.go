package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/agbru/ratcalc/internal/digits"
	apperrors "github.com/agbru/ratcalc/internal/errors"
	"github.com/agbru/ratcalc/internal/expr"
)

// arithmetic is a number system with exact rational semantics. Every engine
// supplies one; the tree walker below is shared.
type arithmetic[T any] interface {
	// literal builds num/den from decimal strings with optional leading
	// '-'. It fails with NotANumber or ZeroDivision.
	literal(num, den string) (T, error)
	add(x, y T) T
	sub(x, y T) T
	mul(x, y T) T
	quo(x, y T) (T, error)
	neg(x T) T
	abs(x T) T
	// floor truncates toward zero; round rounds halves away from zero.
	// Both fail with OutOfBounds beyond the int64 range.
	floor(x T) (T, error)
	round(x T) (T, error)
	cmp(x, y T) int
	// format renders the canonical "<[-]num/den>" text.
	format(x T) string
}

// numberEngine adapts an arithmetic to coreEngine.
type numberEngine[T any] struct {
	name  string
	arith arithmetic[T]
}

func (e *numberEngine[T]) Name() string { return e.name }

func (e *numberEngine[T]) EvaluateCore(ctx context.Context, n expr.Node) (Result, error) {
	w := walker[T]{ctx: ctx, a: e.arith}
	if b, ok := n.(*expr.Binary); ok && b.Op.IsComparison() {
		x, err := w.eval(b.X)
		if err != nil {
			return Result{}, err
		}
		y, err := w.eval(b.Y)
		if err != nil {
			return Result{}, err
		}
		v := compare(b.Op, e.arith.cmp(x, y))
		return Result{Text: fmt.Sprint(v), IsBool: true, Bool: v}, nil
	}
	v, err := w.eval(n)
	if err != nil {
		return Result{}, err
	}
	return Result{Text: e.arith.format(v)}, nil
}

func compare(op expr.Op, c int) bool {
	switch op {
	case expr.Eq:
		return c == 0
	case expr.Ne:
		return c != 0
	case expr.Lt:
		return c < 0
	case expr.Le:
		return c <= 0
	case expr.Gt:
		return c > 0
	default:
		return c >= 0
	}
}

type walker[T any] struct {
	ctx context.Context
	a   arithmetic[T]
}

// at attaches the 1-based column of n to an arithmetic failure.
func at(n expr.Node, err error) error {
	return apperrors.PositionError{Source: "expression", Column: n.Pos() + 1, Cause: err}
}

func (w *walker[T]) eval(n expr.Node) (T, error) {
	var zero T
	if err := w.ctx.Err(); err != nil {
		return zero, err
	}
	switch n := n.(type) {
	case *expr.Literal:
		v, err := w.a.literal(n.Num, n.Den)
		if err != nil {
			return zero, at(n, err)
		}
		return v, nil

	case *expr.Unary:
		x, err := w.eval(n.X)
		if err != nil {
			return zero, err
		}
		if n.Op == expr.Sub {
			return w.a.neg(x), nil
		}
		return x, nil

	case *expr.Binary:
		if n.Op.IsComparison() {
			return zero, &expr.SyntaxError{Offset: n.Offset, Msg: "comparison must be the outermost operation"}
		}
		x, err := w.eval(n.X)
		if err != nil {
			return zero, err
		}
		y, err := w.eval(n.Y)
		if err != nil {
			return zero, err
		}
		switch n.Op {
		case expr.Add:
			return w.a.add(x, y), nil
		case expr.Sub:
			return w.a.sub(x, y), nil
		case expr.Mul:
			return w.a.mul(x, y), nil
		default:
			v, err := w.a.quo(x, y)
			if err != nil {
				return zero, at(n, err)
			}
			return v, nil
		}

	case *expr.Call:
		x, err := w.eval(n.Arg)
		if err != nil {
			return zero, err
		}
		var v T
		switch n.Func {
		case expr.Abs:
			return w.a.abs(x), nil
		case expr.Floor:
			v, err = w.a.floor(x)
		case expr.Round:
			v, err = w.a.round(x)
		default:
			var one T
			if one, err = w.a.literal("1", "1"); err == nil {
				v, err = w.a.quo(one, x)
			}
		}
		if err != nil {
			return zero, at(n, err)
		}
		return v, nil
	}
	return zero, fmt.Errorf("engine: unsupported node %T", n)
}

// literalParts validates the literal text the way rational.Parse does, so
// that every engine reports the same error kind for the same input. It
// returns the unsigned digit strings and the sign of the quotient.
func literalParts(op, num, den string) (neg bool, nText, dText string, err error) {
	n, nNeg := strings.CutPrefix(num, "-")
	d, dNeg := strings.CutPrefix(den, "-")
	if !digits.Valid(n) {
		return false, "", "", apperrors.NewArithmeticError(apperrors.NotANumber, op, num)
	}
	if !digits.Valid(d) {
		return false, "", "", apperrors.NewArithmeticError(apperrors.NotANumber, op, den)
	}
	if strings.Trim(d, "0") == "" {
		return false, "", "", apperrors.NewArithmeticError(apperrors.ZeroDivision, op, num+"/"+den)
	}
	return nNeg != dNeg, n, d, nil
}
