package digits

import (
	apperrors "github.com/agbru/ratcalc/internal/errors"
)

// Nat is a non-negative integer of unbounded size.
type Nat struct {
	// d holds digit values 0-9, least significant first, without
	// most-significant zeros. An empty slice is read as 0.
	d []byte
}

var zeroDigits = []byte{0}

var (
	// Zero is the Nat 0.
	Zero = Nat{d: []byte{0}}
	// One is the Nat 1.
	One = Nat{d: []byte{1}}
)

func (x Nat) digits() []byte {
	if len(x.d) == 0 {
		return zeroDigits
	}
	return x.d
}

// norm strips most-significant zeros, keeping at least one digit.
func norm(d []byte) Nat {
	n := len(d)
	for n > 1 && d[n-1] == 0 {
		n--
	}
	if n == 0 {
		return Zero
	}
	return Nat{d: d[:n]}
}

// Valid reports whether s is a non-empty string of ASCII digits.
func Valid(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// Parse converts a string of ASCII digits into a Nat. Signs are not accepted;
// callers strip them first. Leading zeros are discarded.
func Parse(s string) (Nat, error) {
	if !Valid(s) {
		return Nat{}, apperrors.NewArithmeticError(apperrors.NotANumber, "digits.Parse", s)
	}
	i := 0
	for i < len(s)-1 && s[i] == '0' {
		i++
	}
	s = s[i:]
	d := make([]byte, len(s))
	for j := 0; j < len(s); j++ {
		d[len(s)-1-j] = s[j] - '0'
	}
	return Nat{d: d}, nil
}

// MustParse is like [Parse] but panics if s is not a valid digit string.
func MustParse(s string) Nat {
	n, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return n
}

// FromUint64 converts a machine integer into a Nat.
func FromUint64(x uint64) Nat {
	if x == 0 {
		return Zero
	}
	d := make([]byte, 0, 20)
	for x > 0 {
		d = append(d, byte(x%10))
		x /= 10
	}
	return Nat{d: d}
}

// Pow10 returns 10^n.
func Pow10(n int) Nat {
	if n < 0 {
		panic("digits: negative exponent")
	}
	d := make([]byte, n+1)
	d[n] = 1
	return Nat{d: d}
}

// Len returns the number of decimal digits of x (1 for zero).
func (x Nat) Len() int { return len(x.digits()) }

// IsZero reports whether x == 0.
func (x Nat) IsZero() bool {
	d := x.digits()
	return len(d) == 1 && d[0] == 0
}

// IsOne reports whether x == 1.
func (x Nat) IsOne() bool {
	d := x.digits()
	return len(d) == 1 && d[0] == 1
}

// String returns the decimal representation of x, most significant digit first.
func (x Nat) String() string {
	d := x.digits()
	buf := make([]byte, len(d))
	for i, v := range d {
		buf[len(d)-1-i] = '0' + v
	}
	return string(buf)
}

// Cmp compares x and y and returns -1, 0 or +1.
// Longer numbers are greater since neither operand has leading zeros.
func (x Nat) Cmp(y Nat) int {
	a, b := x.digits(), y.digits()
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	for i := len(a) - 1; i >= 0; i-- {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

// Equal reports whether x == y.
func (x Nat) Equal(y Nat) bool { return x.Cmp(y) == 0 }
