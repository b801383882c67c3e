//go:build gmp

// The gmp engine needs libgmp and cgo:
//
//	go build -tags=gmp ./...
//
// Debian/Ubuntu: apt-get install libgmp-dev; macOS: brew install gmp.

package engine

import (
	"math"

	"github.com/ncw/gmp"

	apperrors "github.com/agbru/ratcalc/internal/errors"
)

func init() {
	_ = RegisterEngine("gmp", newGMPEngine)
}

// gmpRat is a fraction over GMP integers with den > 0 and gcd(num, den) = 1.
type gmpRat struct {
	num, den *gmp.Int
}

var (
	gmpOne      = gmp.NewInt(1)
	gmpMaxInt64 = gmp.NewInt(math.MaxInt64)
	gmpMinInt64 = gmp.NewInt(math.MinInt64)
)

func newGMPRat(num, den *gmp.Int) gmpRat {
	if num.Sign() == 0 {
		return gmpRat{num: gmp.NewInt(0), den: gmp.NewInt(1)}
	}
	if den.Sign() < 0 {
		num = new(gmp.Int).Neg(num)
		den = new(gmp.Int).Neg(den)
	}
	g := new(gmp.Int).GCD(nil, nil, new(gmp.Int).Abs(num), den)
	if g.Cmp(gmpOne) != 0 {
		num = new(gmp.Int).Quo(num, g)
		den = new(gmp.Int).Quo(den, g)
	}
	return gmpRat{num: num, den: den}
}

type gmpArith struct{}

func (gmpArith) literal(num, den string) (gmpRat, error) {
	neg, n, d, err := literalParts("gmp.literal", num, den)
	if err != nil {
		return gmpRat{}, err
	}
	gn, _ := new(gmp.Int).SetString(n, 10)
	gd, _ := new(gmp.Int).SetString(d, 10)
	if neg {
		gn.Neg(gn)
	}
	return newGMPRat(gn, gd), nil
}

func (gmpArith) add(x, y gmpRat) gmpRat {
	l := new(gmp.Int).Mul(x.num, y.den)
	r := new(gmp.Int).Mul(y.num, x.den)
	return newGMPRat(l.Add(l, r), new(gmp.Int).Mul(x.den, y.den))
}

func (a gmpArith) sub(x, y gmpRat) gmpRat { return a.add(x, a.neg(y)) }

func (gmpArith) mul(x, y gmpRat) gmpRat {
	return newGMPRat(new(gmp.Int).Mul(x.num, y.num), new(gmp.Int).Mul(x.den, y.den))
}

func (a gmpArith) quo(x, y gmpRat) (gmpRat, error) {
	if y.num.Sign() == 0 {
		return gmpRat{}, apperrors.NewArithmeticError(apperrors.ZeroDivision, "gmp.quo", a.format(x)+" / 0")
	}
	return newGMPRat(new(gmp.Int).Mul(x.num, y.den), new(gmp.Int).Mul(x.den, y.num)), nil
}

func (gmpArith) neg(x gmpRat) gmpRat {
	return gmpRat{num: new(gmp.Int).Neg(x.num), den: x.den}
}

func (gmpArith) abs(x gmpRat) gmpRat {
	return gmpRat{num: new(gmp.Int).Abs(x.num), den: x.den}
}

func (gmpArith) cmp(x, y gmpRat) int {
	l := new(gmp.Int).Mul(x.num, y.den)
	r := new(gmp.Int).Mul(y.num, x.den)
	return l.Cmp(r)
}

func (a gmpArith) toInt(op string, x gmpRat, q *gmp.Int) (gmpRat, error) {
	if q.Cmp(gmpMaxInt64) > 0 || q.Cmp(gmpMinInt64) < 0 {
		return gmpRat{}, apperrors.NewArithmeticError(apperrors.OutOfBounds, op, a.format(x))
	}
	return newGMPRat(q, gmp.NewInt(1)), nil
}

func (a gmpArith) floor(x gmpRat) (gmpRat, error) {
	// Quo truncates toward zero.
	return a.toInt("gmp.floor", x, new(gmp.Int).Quo(x.num, x.den))
}

func (a gmpArith) round(x gmpRat) (gmpRat, error) {
	r := new(gmp.Int)
	q, _ := new(gmp.Int).QuoRem(new(gmp.Int).Abs(x.num), x.den, r)
	if r.Add(r, r).Cmp(x.den) >= 0 {
		q.Add(q, gmpOne)
	}
	if x.num.Sign() < 0 {
		q.Neg(q)
	}
	return a.toInt("gmp.round", x, q)
}

func (gmpArith) format(x gmpRat) string {
	return "<" + x.num.String() + "/" + x.den.String() + ">"
}

func newGMPEngine() coreEngine {
	return &numberEngine[gmpRat]{name: "gmp", arith: gmpArith{}}
}
