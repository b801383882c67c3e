package engine

import "github.com/agbru/ratcalc/internal/rational"

// exactArith evaluates with the decimal-digit rational package.
type exactArith struct{}

func (exactArith) literal(num, den string) (rational.Rat, error) { return rational.Parse(num, den) }
func (exactArith) add(x, y rational.Rat) rational.Rat            { return x.Add(y) }
func (exactArith) sub(x, y rational.Rat) rational.Rat            { return x.Sub(y) }
func (exactArith) mul(x, y rational.Rat) rational.Rat            { return x.Mul(y) }
func (exactArith) quo(x, y rational.Rat) (rational.Rat, error)   { return x.Quo(y) }
func (exactArith) neg(x rational.Rat) rational.Rat               { return x.Neg() }
func (exactArith) abs(x rational.Rat) rational.Rat               { return rational.Abs(x) }
func (exactArith) cmp(x, y rational.Rat) int                     { return x.Cmp(y) }
func (exactArith) format(x rational.Rat) string                  { return x.String() }

func (exactArith) floor(x rational.Rat) (rational.Rat, error) {
	v, err := x.Floor()
	if err != nil {
		return rational.Rat{}, err
	}
	return rational.FromInt64(v), nil
}

func (exactArith) round(x rational.Rat) (rational.Rat, error) {
	v, err := x.Round()
	if err != nil {
		return rational.Rat{}, err
	}
	return rational.FromInt64(v), nil
}

func newExactEngine() coreEngine {
	return &numberEngine[rational.Rat]{name: "exact", arith: exactArith{}}
}
