package engine

import (
	"math/big"

	apperrors "github.com/agbru/ratcalc/internal/errors"
)

// bigArith evaluates with math/big. It serves as the reference the exact
// engine is checked against.
type bigArith struct{}

func (bigArith) literal(num, den string) (*big.Rat, error) {
	neg, n, d, err := literalParts("big.literal", num, den)
	if err != nil {
		return nil, err
	}
	bn, _ := new(big.Int).SetString(n, 10)
	bd, _ := new(big.Int).SetString(d, 10)
	r := new(big.Rat).SetFrac(bn, bd)
	if neg {
		r.Neg(r)
	}
	return r, nil
}

func (bigArith) add(x, y *big.Rat) *big.Rat { return new(big.Rat).Add(x, y) }
func (bigArith) sub(x, y *big.Rat) *big.Rat { return new(big.Rat).Sub(x, y) }
func (bigArith) mul(x, y *big.Rat) *big.Rat { return new(big.Rat).Mul(x, y) }
func (bigArith) neg(x *big.Rat) *big.Rat    { return new(big.Rat).Neg(x) }
func (bigArith) abs(x *big.Rat) *big.Rat    { return new(big.Rat).Abs(x) }
func (bigArith) cmp(x, y *big.Rat) int      { return x.Cmp(y) }

func (bigArith) quo(x, y *big.Rat) (*big.Rat, error) {
	if y.Sign() == 0 {
		return nil, apperrors.NewArithmeticError(apperrors.ZeroDivision, "big.quo", x.RatString()+" / 0")
	}
	return new(big.Rat).Quo(x, y), nil
}

func bigToInt(op string, x *big.Rat, q *big.Int) (*big.Rat, error) {
	if !q.IsInt64() {
		return nil, apperrors.NewArithmeticError(apperrors.OutOfBounds, op, x.RatString())
	}
	return new(big.Rat).SetInt(q), nil
}

func (bigArith) floor(x *big.Rat) (*big.Rat, error) {
	// Quo truncates toward zero.
	return bigToInt("big.floor", x, new(big.Int).Quo(x.Num(), x.Denom()))
}

func (bigArith) round(x *big.Rat) (*big.Rat, error) {
	den := x.Denom()
	q, r := new(big.Int).QuoRem(new(big.Int).Abs(x.Num()), den, new(big.Int))
	if r.Lsh(r, 1).Cmp(den) >= 0 {
		q.Add(q, big.NewInt(1))
	}
	if x.Sign() < 0 {
		q.Neg(q)
	}
	return bigToInt("big.round", x, q)
}

func (bigArith) format(x *big.Rat) string {
	return "<" + x.Num().String() + "/" + x.Denom().String() + ">"
}

func newBigEngine() coreEngine {
	return &numberEngine[*big.Rat]{name: "big", arith: bigArith{}}
}
