package rational

import (
	"strings"

	"github.com/agbru/ratcalc/internal/digits"
	apperrors "github.com/agbru/ratcalc/internal/errors"
)

// Floor returns num/den with the remainder dropped, so the result is
// truncated toward zero: Floor(-7/2) is -3. It fails with OutOfBounds when
// the quotient does not fit in an int64.
func (x Rat) Floor() (int64, error) {
	q, _, _ := x.num.QuoRem(x.denom())
	v, err := digits.ToInt[int64](q, x.neg)
	if err != nil {
		return 0, apperrors.NewArithmeticError(apperrors.OutOfBounds, "rational.Floor", x.String())
	}
	return v, nil
}

// Round returns x rounded to the nearest integer, halves away from zero.
func (x Rat) Round() (int64, error) {
	den := x.denom()
	q, r, _ := x.num.QuoRem(den)
	if r.Add(r).Cmp(den) >= 0 {
		q = q.Add(digits.One)
	}
	v, err := digits.ToInt[int64](q, x.neg)
	if err != nil {
		return 0, apperrors.NewArithmeticError(apperrors.OutOfBounds, "rational.Round", x.String())
	}
	return v, nil
}

func toInt[W digits.Signed](x Rat, op string) (W, error) {
	if !x.IsInt() {
		return 0, apperrors.NewArithmeticError(apperrors.BadCast, op, x.String())
	}
	v, err := digits.ToInt[W](x.num, x.neg)
	if err != nil {
		return 0, apperrors.NewArithmeticError(apperrors.OutOfBounds, op, x.String())
	}
	return v, nil
}

// Int converts an integral x to int. It fails with BadCast when the
// denominator is not 1 and with OutOfBounds when x does not fit.
func (x Rat) Int() (int, error) { return toInt[int](x, "rational.Int") }

// Int64 is like Int for int64.
func (x Rat) Int64() (int64, error) { return toInt[int64](x, "rational.Int64") }

// Int32 is like Int for int32.
func (x Rat) Int32() (int32, error) { return toInt[int32](x, "rational.Int32") }

// Int16 is like Int for int16.
func (x Rat) Int16() (int16, error) { return toInt[int16](x, "rational.Int16") }

// String returns x as "<num/den>", with a leading '-' inside the brackets
// for negative values.
func (x Rat) String() string {
	var b strings.Builder
	b.WriteByte('<')
	if x.neg {
		b.WriteByte('-')
	}
	b.WriteString(x.num.String())
	b.WriteByte('/')
	b.WriteString(x.denom().String())
	b.WriteByte('>')
	return b.String()
}
