// Package digits implements UDI, an arbitrary-precision unsigned decimal
// integer stored as a sequence of base-10 digits, least significant first.
//
// Nat values are immutable: every operation returns a new Nat and never
// modifies its operands, so values may be shared freely between goroutines.
// The zero value of Nat is the number 0.
//
// The package provides parsing, comparison, addition, subtraction (for a
// non-negative result only), schoolbook multiplication, long division,
// modulo, GCD, bounded conversion to fixed-width signed integers and
// formatting. Errors are reported with the arithmetic kinds of
// internal/errors (NotANumber, ZeroDivision, OutOfBounds).
package digits
