package digits

import (
	apperrors "github.com/agbru/ratcalc/internal/errors"
)

// Add returns x + y.
func (x Nat) Add(y Nat) Nat {
	a, b := x.digits(), y.digits()
	if len(a) < len(b) {
		a, b = b, a
	}
	z := make([]byte, len(a)+1)
	var carry byte
	for i := range a {
		s := a[i] + carry
		if i < len(b) {
			s += b[i]
		}
		z[i] = s % 10
		carry = s / 10
	}
	z[len(a)] = carry
	return norm(z)
}

// Sub returns x - y. It panics if x < y: the sign of a difference is the
// caller's business, Nat only ever holds magnitudes.
func (x Nat) Sub(y Nat) Nat {
	if x.Cmp(y) < 0 {
		panic("digits: subtraction underflow")
	}
	a, b := x.digits(), y.digits()
	z := make([]byte, len(a))
	borrow := 0
	for i := range a {
		d := int(a[i]) - borrow
		if i < len(b) {
			d -= int(b[i])
		}
		if d < 0 {
			d += 10
			borrow = 1
		} else {
			borrow = 0
		}
		z[i] = byte(d)
	}
	return norm(z)
}

// Mul returns x * y using schoolbook multiplication.
func (x Nat) Mul(y Nat) Nat {
	if x.IsZero() || y.IsZero() {
		return Zero
	}
	a, b := x.digits(), y.digits()
	z := make([]byte, len(a)+len(b))
	for i := range a {
		if a[i] == 0 {
			continue
		}
		carry := 0
		for j := range b {
			cur := int(z[i+j]) + int(a[i])*int(b[j]) + carry
			z[i+j] = byte(cur % 10)
			carry = cur / 10
		}
		z[i+len(b)] = byte(carry)
	}
	return norm(z)
}

// mulDigit returns x * d for a single digit d.
func (x Nat) mulDigit(d byte) Nat {
	switch d {
	case 0:
		return Zero
	case 1:
		return x
	}
	a := x.digits()
	z := make([]byte, len(a)+1)
	carry := 0
	for i := range a {
		cur := int(a[i])*int(d) + carry
		z[i] = byte(cur % 10)
		carry = cur / 10
	}
	z[len(a)] = byte(carry)
	return norm(z)
}

// shiftIn returns x*10 + d.
func (x Nat) shiftIn(d byte) Nat {
	if x.IsZero() {
		return Nat{d: []byte{d}}
	}
	a := x.digits()
	z := make([]byte, len(a)+1)
	z[0] = d
	copy(z[1:], a)
	return Nat{d: z}
}

// quoRem is long division for a non-zero divisor. The remainder prefix
// grows by one digit of x per step; the quotient digit is the largest d in
// [0, 9] with y*d <= prefix, found by binary search.
func (x Nat) quoRem(y Nat) (Nat, Nat) {
	if x.Cmp(y) < 0 {
		return Zero, x
	}
	a := x.digits()
	q := make([]byte, len(a))
	cur := Zero
	for i := len(a) - 1; i >= 0; i-- {
		cur = cur.shiftIn(a[i])
		digit := 0
		lo, hi := 0, 9
		for lo <= hi {
			m := (lo + hi) / 2
			if y.mulDigit(byte(m)).Cmp(cur) <= 0 {
				digit = m
				lo = m + 1
			} else {
				hi = m - 1
			}
		}
		q[i] = byte(digit)
		if digit > 0 {
			cur = cur.Sub(y.mulDigit(byte(digit)))
		}
	}
	return norm(q), cur
}

func zeroDivision(op string, x Nat) error {
	return apperrors.NewArithmeticError(apperrors.ZeroDivision, op, x.String()+"/0")
}

// QuoRem returns the integer quotient and the remainder of x / y.
// It fails with ZeroDivision when y == 0.
func (x Nat) QuoRem(y Nat) (q, r Nat, err error) {
	if y.IsZero() {
		return Nat{}, Nat{}, zeroDivision("digits.QuoRem", x)
	}
	q, r = x.quoRem(y)
	return q, r, nil
}

// Quo returns the integer quotient of x / y.
// It fails with ZeroDivision when y == 0.
func (x Nat) Quo(y Nat) (Nat, error) {
	if y.IsZero() {
		return Nat{}, zeroDivision("digits.Quo", x)
	}
	q, _ := x.quoRem(y)
	return q, nil
}

// Mod returns x - (x/y)*y.
// It fails with ZeroDivision when y == 0.
func (x Nat) Mod(y Nat) (Nat, error) {
	if y.IsZero() {
		return Nat{}, zeroDivision("digits.Mod", x)
	}
	return x.mod(y), nil
}

func (x Nat) mod(y Nat) Nat {
	q, _ := x.quoRem(y)
	return x.Sub(q.Mul(y))
}

// GCD returns the greatest common divisor of a and b using Euclid's
// algorithm. GCD(0, 0) is 0 and GCD(a, 0) is a.
func GCD(a, b Nat) Nat {
	for !a.IsZero() && !b.IsZero() {
		if a.Cmp(b) > 0 {
			a = a.mod(b)
		} else {
			b = b.mod(a)
		}
	}
	return a.Add(b)
}
