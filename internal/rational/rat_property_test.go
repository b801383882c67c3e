package rational

import (
	"math/big"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/agbru/ratcalc/internal/digits"
)

func nonZero(v int64) int64 {
	if v == 0 {
		return 1
	}
	return v
}

// bigRat mirrors x in math/big for comparison.
func bigRat(x Rat) *big.Rat {
	r, ok := new(big.Rat).SetString(x.Num().String() + "/" + x.Den().String())
	if !ok {
		panic("invalid rational text " + x.String())
	}
	if x.Sign() < 0 {
		r.Neg(r)
	}
	return r
}

// TestCanonicalForm_PropertyBased checks the normalization rules every
// constructor and operation must uphold.
func TestCanonicalForm_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	small := gen.Int64Range(-1_000_000, 1_000_000)

	properties.Property("scaling by k does not change the value", prop.ForAll(
		func(a, b, k int64) bool {
			b, k = nonZero(b), nonZero(k)
			return MustNew(k*a, k*b).String() == MustNew(a, b).String()
		},
		small, small, small,
	))

	properties.Property("sign is normalized", prop.ForAll(
		func(a, b int64) bool {
			b = nonZero(b)
			return MustNew(-a, -b).Equal(MustNew(a, b)) &&
				MustNew(a, -b).Equal(MustNew(-a, b))
		},
		small, small,
	))

	properties.Property("zero is always <0/1>", prop.ForAll(
		func(n int64) bool {
			return MustNew(0, nonZero(n)).String() == "<0/1>"
		},
		small,
	))

	properties.Property("String round trips through ParseString", prop.ForAll(
		func(a, b int64) bool {
			x := MustNew(a, nonZero(b))
			y, err := ParseString(x.String())
			return err == nil && y.Equal(x) && y.String() == x.String()
		},
		gen.Int64(), gen.Int64(),
	))

	properties.Property("numerator and denominator are coprime", prop.ForAll(
		func(a, b int64) bool {
			x := MustNew(a, nonZero(b))
			return digits.GCD(x.Num(), x.Den()).IsOne()
		},
		gen.Int64(), gen.Int64(),
	))

	properties.Property("one gcd pass already yields coprime parts", prop.ForAll(
		func(a, b uint64) bool {
			if b == 0 {
				b = 1
			}
			n, d := digits.FromUint64(a), digits.FromUint64(b)
			g := digits.GCD(n, d)
			if g.IsZero() {
				return true
			}
			rn, _ := n.Quo(g)
			rd, _ := d.Quo(g)
			return digits.GCD(rn, rd).IsOne()
		},
		gen.UInt64(), gen.UInt64(),
	))

	properties.TestingRun(t)
}

// TestArithmeticLaws_PropertyBased checks algebraic identities and agreement
// with math/big.Rat.
func TestArithmeticLaws_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 150
	properties := gopter.NewProperties(parameters)

	g := gen.Int64Range(-100_000, 100_000)

	properties.Property("division inverts multiplication", prop.ForAll(
		func(a, b, c, d int64) bool {
			x := MustNew(a, nonZero(b))
			y := MustNew(nonZero(c), nonZero(d))
			q, err := x.Quo(y)
			return err == nil && q.Mul(y).Equal(x)
		},
		g, g, g, g,
	))

	properties.Property("addition and multiplication commute", prop.ForAll(
		func(a, b, c, d int64) bool {
			x := MustNew(a, nonZero(b))
			y := MustNew(c, nonZero(d))
			return x.Add(y).Equal(y.Add(x)) && x.Mul(y).Equal(y.Mul(x))
		},
		g, g, g, g,
	))

	properties.Property("addition and multiplication associate", prop.ForAll(
		func(a, b, c, d, e, f int64) bool {
			x := MustNew(a, nonZero(b))
			y := MustNew(c, nonZero(d))
			z := MustNew(e, nonZero(f))
			return x.Add(y).Add(z).Equal(x.Add(y.Add(z))) &&
				x.Mul(y).Mul(z).Equal(x.Mul(y.Mul(z)))
		},
		g, g, g, g, g, g,
	))

	properties.Property("results match math/big.Rat", prop.ForAll(
		func(a, b, c, d int64) bool {
			x := MustNew(a, nonZero(b))
			y := MustNew(c, nonZero(d))
			bx, by := bigRat(x), bigRat(y)
			if bigRat(x.Add(y)).Cmp(new(big.Rat).Add(bx, by)) != 0 {
				return false
			}
			if bigRat(x.Sub(y)).Cmp(new(big.Rat).Sub(bx, by)) != 0 {
				return false
			}
			if bigRat(x.Mul(y)).Cmp(new(big.Rat).Mul(bx, by)) != 0 {
				return false
			}
			return x.Cmp(y) == bx.Cmp(by)
		},
		gen.Int64(), gen.Int64(), gen.Int64(), gen.Int64(),
	))

	properties.TestingRun(t)
}
