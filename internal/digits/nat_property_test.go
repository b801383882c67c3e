package digits

import (
	"math/big"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// bigOf builds the pair (Nat, *big.Int) for x*y, which exceeds 64 bits and
// so exercises multi-word magnitudes on the math/big side.
func bigOf(x, y uint64) (Nat, *big.Int) {
	b := new(big.Int).Mul(new(big.Int).SetUint64(x), new(big.Int).SetUint64(y))
	return FromUint64(x).Mul(FromUint64(y)), b
}

// TestNatMatchesMathBig_PropertyBased checks every Nat operation against
// math/big on random operands wider than a machine word.
func TestNatMatchesMathBig_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("multiplication matches math/big", prop.ForAll(
		func(x, y uint64) bool {
			n, b := bigOf(x, y)
			return n.String() == b.String()
		},
		gen.UInt64(), gen.UInt64(),
	))

	properties.Property("addition and subtraction round trip", prop.ForAll(
		func(x, y, z uint64) bool {
			a, _ := bigOf(x, y)
			c := FromUint64(z)
			return a.Add(c).Sub(c).Equal(a)
		},
		gen.UInt64(), gen.UInt64(), gen.UInt64(),
	))

	properties.Property("long division matches math/big", prop.ForAll(
		func(x, y, d uint64) bool {
			if d == 0 {
				d = 1
			}
			a, ab := bigOf(x, y)
			q, r, err := a.QuoRem(FromUint64(d))
			if err != nil {
				return false
			}
			wq, wr := new(big.Int).QuoRem(ab, new(big.Int).SetUint64(d), new(big.Int))
			return q.String() == wq.String() && r.String() == wr.String()
		},
		gen.UInt64(), gen.UInt64(), gen.UInt64(),
	))

	properties.Property("gcd matches math/big", prop.ForAll(
		func(x, y, z uint64) bool {
			a, ab := bigOf(x, z)
			c, cb := bigOf(y, z)
			want := new(big.Int).GCD(nil, nil, ab, cb)
			return GCD(a, c).String() == want.String()
		},
		gen.UInt64Range(0, 1<<40), gen.UInt64Range(0, 1<<40), gen.UInt64Range(1, 1<<20),
	))

	properties.Property("comparison matches math/big", prop.ForAll(
		func(x, y, z, w uint64) bool {
			a, ab := bigOf(x, y)
			c, cb := bigOf(z, w)
			return a.Cmp(c) == ab.Cmp(cb)
		},
		gen.UInt64(), gen.UInt64(), gen.UInt64(), gen.UInt64(),
	))

	properties.TestingRun(t)
}
