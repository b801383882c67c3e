package rational

import (
	"strings"

	apperrors "github.com/agbru/ratcalc/internal/errors"
)

// ParseString reads the text form produced by String. The angle brackets
// and the "/den" part are optional, so "<3/4>", "3/4", "<-5>" and "12" are
// all accepted. Surrounding white space is ignored.
func ParseString(s string) (Rat, error) {
	t := strings.TrimSpace(s)
	open := strings.HasPrefix(t, "<")
	closed := strings.HasSuffix(t, ">")
	if open != closed {
		return Rat{}, apperrors.NewArithmeticError(apperrors.NotANumber, "rational.ParseString", s)
	}
	if open {
		t = strings.TrimSpace(t[1 : len(t)-1])
	}
	num, den, found := strings.Cut(t, "/")
	if !found {
		den = "1"
	}
	return Parse(strings.TrimSpace(num), strings.TrimSpace(den))
}

// MarshalText implements encoding.TextMarshaler.
func (x Rat) MarshalText() ([]byte, error) {
	return []byte(x.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (z *Rat) UnmarshalText(text []byte) error {
	r, err := ParseString(string(text))
	if err != nil {
		return err
	}
	*z = r
	return nil
}

// MustNew is like New but panics on error.
func MustNew(num, den int64) Rat {
	r, err := New(num, den)
	if err != nil {
		panic(err)
	}
	return r
}

// MustParse is like ParseString but panics on error.
func MustParse(s string) Rat {
	r, err := ParseString(s)
	if err != nil {
		panic(err)
	}
	return r
}
