// Package rational implements exact signed fractions over digits.Nat.
//
// A Rat is always kept in canonical form: the denominator is positive, the
// numerator and denominator are coprime, and zero is represented only as 0/1
// with a cleared sign. Every operation returns a new canonical value; no
// operation modifies its operands, so a Rat can be shared freely between
// goroutines as long as no one assigns to it.
//
// The zero value is the fraction 0/1 and is ready to use.
package rational
