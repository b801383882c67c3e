package digits

import (
	"strconv"

	apperrors "github.com/agbru/ratcalc/internal/errors"
)

// Signed is the set of fixed-width signed integer types ToInt converts to.
type Signed interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64
}

// maxOf returns the largest value representable in W.
func maxOf[W Signed]() W {
	var m W = 1
	for {
		next := m<<1 | 1
		if next <= m {
			return m
		}
		m = next
	}
}

// ToInt converts the magnitude x, with the given sign, to W. It fails with
// OutOfBounds when -x (negative) or x does not fit in W; the negative range
// holds one more unit than the positive one.
func ToInt[W Signed](x Nat, negative bool) (W, error) {
	limit := MustParse(strconv.FormatInt(int64(maxOf[W]()), 10))
	if negative {
		limit = limit.Add(One)
	}
	if x.Cmp(limit) > 0 {
		input := x.String()
		if negative {
			input = "-" + input
		}
		return 0, apperrors.NewArithmeticError(apperrors.OutOfBounds, "digits.ToInt", input)
	}

	// Accumulating towards the sign keeps min(W) representable.
	var v W
	d := x.digits()
	for i := len(d) - 1; i >= 0; i-- {
		if negative {
			v = v*10 - W(d[i])
		} else {
			v = v*10 + W(d[i])
		}
	}
	return v, nil
}
