package rational

import (
	apperrors "github.com/agbru/ratcalc/internal/errors"
)

var one = FromInt64(1)

// Add returns x + y.
func (x Rat) Add(y Rat) Rat {
	xd, yd := x.denom(), y.denom()
	l := x.num.Mul(yd)
	r := y.num.Mul(xd)
	den := xd.Mul(yd)
	if x.neg == y.neg {
		return canonical(x.neg, l.Add(r), den)
	}
	// Mixed signs: subtract the smaller magnitude, keep the sign of the larger.
	switch l.Cmp(r) {
	case 0:
		return zero()
	case 1:
		return canonical(x.neg, l.Sub(r), den)
	default:
		return canonical(y.neg, r.Sub(l), den)
	}
}

// Sub returns x - y.
func (x Rat) Sub(y Rat) Rat {
	return x.Add(y.Neg())
}

// Mul returns x * y.
func (x Rat) Mul(y Rat) Rat {
	return canonical(x.neg != y.neg, x.num.Mul(y.num), x.denom().Mul(y.denom()))
}

// Quo returns x / y. It fails with ZeroDivision when y is zero.
func (x Rat) Quo(y Rat) (Rat, error) {
	if y.IsZero() {
		return Rat{}, apperrors.NewArithmeticError(apperrors.ZeroDivision, "rational.Quo", x.String()+" / "+y.String())
	}
	return canonical(x.neg != y.neg, x.num.Mul(y.denom()), x.denom().Mul(y.num)), nil
}

// Neg returns -x. The negation of zero is zero.
func (x Rat) Neg() Rat {
	if x.IsZero() {
		return zero()
	}
	x.neg = !x.neg
	return x
}

// Pos returns x unchanged.
func (x Rat) Pos() Rat { return x }

// Abs returns |x|.
func (x Rat) Abs() Rat {
	x.neg = false
	return x
}

// Abs returns |x|.
func Abs(x Rat) Rat { return x.Abs() }

// WithinEpsilon reports whether |x| < eps.
func WithinEpsilon(x, eps Rat) bool {
	return x.Abs().Less(eps)
}

// AddAssign sets z to z + y.
func (z *Rat) AddAssign(y Rat) { *z = z.Add(y) }

// SubAssign sets z to z - y.
func (z *Rat) SubAssign(y Rat) { *z = z.Sub(y) }

// MulAssign sets z to z * y.
func (z *Rat) MulAssign(y Rat) { *z = z.Mul(y) }

// QuoAssign sets z to z / y. On failure z is left unchanged.
func (z *Rat) QuoAssign(y Rat) error {
	q, err := z.Quo(y)
	if err != nil {
		return err
	}
	*z = q
	return nil
}

// Inc adds one to z and returns the new value.
func (z *Rat) Inc() Rat {
	*z = z.Add(one)
	return *z
}

// Dec subtracts one from z and returns the new value.
func (z *Rat) Dec() Rat {
	*z = z.Sub(one)
	return *z
}

// PostInc adds one to z and returns the previous value.
func (z *Rat) PostInc() Rat {
	old := *z
	*z = z.Add(one)
	return old
}

// PostDec subtracts one from z and returns the previous value.
func (z *Rat) PostDec() Rat {
	old := *z
	*z = z.Sub(one)
	return old
}
