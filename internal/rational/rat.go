package rational

import (
	"math"
	"strconv"
	"strings"

	"github.com/agbru/ratcalc/internal/digits"
	apperrors "github.com/agbru/ratcalc/internal/errors"
)

// Rat is a signed fraction num/den in lowest terms.
type Rat struct {
	neg bool
	num digits.Nat
	// den is zero only in the zero value Rat{}, where it reads as 1.
	den digits.Nat
}

// floatPlaces is the number of fractional digits kept by FromFloat64.
const floatPlaces = 15

func (x Rat) denom() digits.Nat {
	if x.den.IsZero() {
		return digits.One
	}
	return x.den
}

func zero() Rat {
	return Rat{num: digits.Zero, den: digits.One}
}

// canonical reduces num/den to lowest terms. den must be non-zero.
func canonical(neg bool, num, den digits.Nat) Rat {
	if num.IsZero() {
		return zero()
	}
	// A single pass already yields coprime parts; the loop only re-checks.
	for g := digits.GCD(num, den); !g.IsOne(); g = digits.GCD(num, den) {
		num, _ = num.Quo(g)
		den, _ = den.Quo(g)
	}
	return Rat{neg: neg, num: num, den: den}
}

func splitSign(s string) (bool, string) {
	if strings.HasPrefix(s, "-") {
		return true, s[1:]
	}
	return false, s
}

// Parse builds num/den from two decimal strings, each with an optional
// leading '-'. It fails with NotANumber when either string is not a decimal
// integer and with ZeroDivision when den is zero.
func Parse(num, den string) (Rat, error) {
	nNeg, nText := splitSign(num)
	dNeg, dText := splitSign(den)
	n, err := digits.Parse(nText)
	if err != nil {
		return Rat{}, apperrors.NewArithmeticError(apperrors.NotANumber, "rational.Parse", num)
	}
	d, err := digits.Parse(dText)
	if err != nil {
		return Rat{}, apperrors.NewArithmeticError(apperrors.NotANumber, "rational.Parse", den)
	}
	if d.IsZero() {
		return Rat{}, apperrors.NewArithmeticError(apperrors.ZeroDivision, "rational.Parse", num+"/"+den)
	}
	return canonical(nNeg != dNeg, n, d), nil
}

// ParseInt is Parse(num, "1").
func ParseInt(num string) (Rat, error) {
	return Parse(num, "1")
}

func magnitude(v int64) digits.Nat {
	if v < 0 {
		// -(v+1) cannot overflow, even for math.MinInt64.
		return digits.FromUint64(uint64(-(v + 1)) + 1)
	}
	return digits.FromUint64(uint64(v))
}

// New returns num/den in canonical form.
func New(num, den int64) (Rat, error) {
	if den == 0 {
		return Rat{}, apperrors.NewArithmeticError(apperrors.ZeroDivision, "rational.New",
			strconv.FormatInt(num, 10)+"/0")
	}
	return canonical((num < 0) != (den < 0), magnitude(num), magnitude(den)), nil
}

// FromInt64 returns v/1.
func FromInt64(v int64) Rat {
	return canonical(v < 0, magnitude(v), digits.One)
}

// FromFloat64 converts x through its decimal text with 15 fractional digits.
// The conversion is lossy: digits beyond the 15th decimal place are rounded
// away, and values below 5e-16 in magnitude become zero. NaN and infinities
// fail with NotANumber.
func FromFloat64(x float64) (Rat, error) {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return Rat{}, apperrors.NewArithmeticError(apperrors.NotANumber, "rational.FromFloat64",
			strconv.FormatFloat(x, 'g', -1, 64))
	}
	neg, text := splitSign(strconv.FormatFloat(x, 'f', floatPlaces, 64))
	intText, fracText, _ := strings.Cut(text, ".")
	ip, err := digits.Parse(intText)
	if err != nil {
		return Rat{}, apperrors.NewArithmeticError(apperrors.NotANumber, "rational.FromFloat64", text)
	}
	fp, err := digits.Parse(fracText)
	if err != nil {
		return Rat{}, apperrors.NewArithmeticError(apperrors.NotANumber, "rational.FromFloat64", text)
	}
	scale := digits.Pow10(len(fracText))
	return canonical(neg, ip.Mul(scale).Add(fp), scale), nil
}

// Num returns the magnitude of the numerator.
func (x Rat) Num() digits.Nat {
	if x.num.IsZero() {
		return digits.Zero
	}
	return x.num
}

// Den returns the denominator, which is always positive.
func (x Rat) Den() digits.Nat { return x.denom() }

// Sign returns -1, 0 or +1.
func (x Rat) Sign() int {
	switch {
	case x.num.IsZero():
		return 0
	case x.neg:
		return -1
	default:
		return 1
	}
}

// IsZero reports whether x == 0.
func (x Rat) IsZero() bool { return x.num.IsZero() }

// IsInt reports whether the denominator of x is 1.
func (x Rat) IsInt() bool { return x.denom().IsOne() }

// Cmp compares x and y and returns -1, 0 or +1.
func (x Rat) Cmp(y Rat) int {
	if x.neg != y.neg {
		if x.neg {
			return -1
		}
		return 1
	}
	c := x.num.Mul(y.denom()).Cmp(y.num.Mul(x.denom()))
	if x.neg {
		return -c
	}
	return c
}

// Equal reports whether x and y denote the same fraction.
func (x Rat) Equal(y Rat) bool {
	return x.neg == y.neg && x.num.Mul(y.denom()).Equal(y.num.Mul(x.denom()))
}

// Less reports whether x < y.
func (x Rat) Less(y Rat) bool { return x.Cmp(y) < 0 }

// LessEqual reports whether x <= y.
func (x Rat) LessEqual(y Rat) bool { return x.Cmp(y) <= 0 }

// Greater reports whether x > y.
func (x Rat) Greater(y Rat) bool { return x.Cmp(y) > 0 }

// GreaterEqual reports whether x >= y.
func (x Rat) GreaterEqual(y Rat) bool { return x.Cmp(y) >= 0 }
