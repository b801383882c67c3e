package digits

import (
	"errors"
	"math"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/agbru/ratcalc/internal/errors"
)

func TestParse(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "0", want: "0"},
		{in: "000", want: "0"},
		{in: "007", want: "7"},
		{in: "1234567890123456789012345", want: "1234567890123456789012345"},
		{in: "", wantErr: true},
		{in: "-1", wantErr: true},
		{in: "+1", wantErr: true},
		{in: "12a", wantErr: true},
		{in: " 1", wantErr: true},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			n, err := Parse(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, apperrors.ErrNotANumber), "want NotANumber, got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, n.String())
		})
	}
}

func TestZeroValueIsZero(t *testing.T) {
	t.Parallel()
	var n Nat
	assert.True(t, n.IsZero())
	assert.Equal(t, "0", n.String())
	assert.Equal(t, 1, n.Len())
	assert.Equal(t, 0, n.Cmp(Zero))
	assert.Equal(t, "5", n.Add(FromUint64(5)).String())
}

func TestCmp(t *testing.T) {
	t.Parallel()
	tests := []struct {
		a, b string
		want int
	}{
		{"0", "0", 0},
		{"9", "10", -1},
		{"100", "99", 1},
		{"12345", "12354", -1},
		{"98765", "98765", 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, MustParse(tt.a).Cmp(MustParse(tt.b)), "%s cmp %s", tt.a, tt.b)
	}
}

func TestArithmeticKnownValues(t *testing.T) {
	t.Parallel()
	a := MustParse("131444452345")
	b := MustParse("8658585")

	assert.Equal(t, "131453110930", a.Add(b).String())
	assert.Equal(t, "131435793760", a.Sub(b).String())
	assert.Equal(t, "1138122963407631825", a.Mul(b).String())

	q, r, err := a.QuoRem(b)
	require.NoError(t, err)
	assert.Equal(t, "15180", q.String())
	assert.Equal(t, "7132045", r.String())

	m, err := a.Mod(b)
	require.NoError(t, err)
	assert.Equal(t, r.String(), m.String())

	assert.Equal(t, "1000", FromUint64(999).Add(One).String())
	assert.Equal(t, "1", FromUint64(1000).Sub(FromUint64(999)).String())
	assert.Equal(t, "0", FromUint64(42).Sub(FromUint64(42)).String())
	assert.Equal(t, "0", Zero.Mul(a).String())
}

func TestSubUnderflowPanics(t *testing.T) {
	t.Parallel()
	assert.PanicsWithValue(t, "digits: subtraction underflow", func() {
		FromUint64(3).Sub(FromUint64(4))
	})
}

func TestDivisionByZero(t *testing.T) {
	t.Parallel()
	x := FromUint64(10)

	_, err := x.Quo(Zero)
	assert.True(t, errors.Is(err, apperrors.ErrZeroDivision))
	_, err = x.Mod(Zero)
	assert.True(t, errors.Is(err, apperrors.ErrZeroDivision))
	_, _, err = x.QuoRem(Nat{})
	assert.True(t, errors.Is(err, apperrors.ErrZeroDivision))
}

func TestGCD(t *testing.T) {
	t.Parallel()
	tests := []struct{ a, b, want string }{
		{"250", "94", "2"},
		{"0", "7", "7"},
		{"7", "0", "7"},
		{"0", "0", "0"},
		{"17", "5", "1"},
		{"1335", "8658585", "15"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, GCD(MustParse(tt.a), MustParse(tt.b)).String(), "gcd(%s, %s)", tt.a, tt.b)
	}
}

func TestPow10(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "1", Pow10(0).String())
	assert.Equal(t, "1000000000000000", Pow10(15).String())
}

func TestToInt(t *testing.T) {
	t.Parallel()

	v8, err := ToInt[int8](FromUint64(127), false)
	require.NoError(t, err)
	assert.Equal(t, int8(127), v8)

	v8, err = ToInt[int8](FromUint64(128), true)
	require.NoError(t, err)
	assert.Equal(t, int8(-128), v8)

	_, err = ToInt[int8](FromUint64(128), false)
	assert.True(t, errors.Is(err, apperrors.ErrOutOfBounds))
	_, err = ToInt[int8](FromUint64(129), true)
	assert.True(t, errors.Is(err, apperrors.ErrOutOfBounds))

	v16, err := ToInt[int16](FromUint64(32768), true)
	require.NoError(t, err)
	assert.Equal(t, int16(math.MinInt16), v16)

	v64, err := ToInt[int64](MustParse("9223372036854775808"), true)
	require.NoError(t, err)
	assert.Equal(t, int64(math.MinInt64), v64)

	_, err = ToInt[int64](MustParse("9223372036854775808"), false)
	assert.True(t, errors.Is(err, apperrors.ErrOutOfBounds))

	v32, err := ToInt[int32](Zero, true)
	require.NoError(t, err)
	assert.Equal(t, int32(0), v32)
}

func TestOperandsAreNotMutated(t *testing.T) {
	t.Parallel()
	a := MustParse("999")
	b := MustParse("1")
	_ = a.Add(b)
	_ = a.Sub(b)
	_ = a.Mul(b)
	_, _, _ = a.QuoRem(MustParse("7"))
	assert.Equal(t, "999", a.String())
	assert.Equal(t, "1", b.String())
}

func TestAgainstMathBig(t *testing.T) {
	t.Parallel()
	a, _ := new(big.Int).SetString("98765432109876543210987654321", 10)
	b, _ := new(big.Int).SetString("123456789123456789", 10)
	x, y := MustParse(a.String()), MustParse(b.String())

	q, r, err := x.QuoRem(y)
	require.NoError(t, err)
	wq, wr := new(big.Int).QuoRem(a, b, new(big.Int))
	assert.Equal(t, wq.String(), q.String())
	assert.Equal(t, wr.String(), r.String())
	assert.Equal(t, new(big.Int).Mul(a, b).String(), x.Mul(y).String())
	assert.Equal(t, new(big.Int).GCD(nil, nil, a, b).String(), GCD(x, y).String())
}
