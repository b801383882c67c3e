package rational

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/agbru/ratcalc/internal/errors"
)

func TestParseCanonicalForm(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		num, den string
		want     string
	}{
		{"already reduced", "125", "47", "<125/47>"},
		{"reduced by gcd 2", "250", "94", "<125/47>"},
		{"negative numerator", "-5", "4", "<-5/4>"},
		{"negative denominator", "8", "-7", "<-8/7>"},
		{"both negative", "-6", "-4", "<3/2>"},
		{"negative zero", "-0", "17", "<0/1>"},
		{"zero over negative", "0", "-3", "<0/1>"},
		{"leading zeros", "0010", "0004", "<5/2>"},
		{"integral", "42", "1", "<42/1>"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r, err := Parse(tt.num, tt.den)
			require.NoError(t, err)
			assert.Equal(t, tt.want, r.String())
		})
	}
}

func TestParseErrors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		num, den string
		kind     error
	}{
		{"letters in numerator", "12a", "1", apperrors.ErrNotANumber},
		{"empty denominator", "1", "", apperrors.ErrNotANumber},
		{"lone minus", "-", "3", apperrors.ErrNotANumber},
		{"plus sign", "+3", "4", apperrors.ErrNotANumber},
		{"double minus", "--3", "4", apperrors.ErrNotANumber},
		{"zero denominator", "5", "0", apperrors.ErrZeroDivision},
		{"negative zero denominator", "5", "-000", apperrors.ErrZeroDivision},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Parse(tt.num, tt.den)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.kind), "got %v", err)
		})
	}
}

func TestZeroValue(t *testing.T) {
	t.Parallel()
	var z Rat
	assert.Equal(t, "<0/1>", z.String())
	assert.True(t, z.IsZero())
	assert.True(t, z.Equal(FromInt64(0)))
	assert.Equal(t, 0, z.Sign())
	assert.Equal(t, "1", z.Den().String())
	assert.Equal(t, "<3/4>", z.Add(MustNew(3, 4)).String())
}

func TestNewHandlesExtremes(t *testing.T) {
	t.Parallel()
	r := MustNew(math.MinInt64, 1)
	assert.Equal(t, "<-9223372036854775808/1>", r.String())
	v, err := r.Int64()
	require.NoError(t, err)
	assert.Equal(t, int64(math.MinInt64), v)

	flipped := MustNew(math.MinInt64, -1)
	assert.Equal(t, "<9223372036854775808/1>", flipped.String())
	_, err = flipped.Int64()
	assert.ErrorIs(t, err, apperrors.ErrOutOfBounds)

	_, err = New(1, 0)
	assert.ErrorIs(t, err, apperrors.ErrZeroDivision)
}

func TestArithmeticScenarios(t *testing.T) {
	t.Parallel()

	sum := MustNew(3, 4).Add(MustNew(-5, 6))
	assert.Equal(t, "<-1/12>", sum.String())

	_, err := MustNew(3, 4).Quo(MustNew(0, 1))
	assert.ErrorIs(t, err, apperrors.ErrZeroDivision)

	a, err := Parse("131444452345", "1335")
	require.NoError(t, err)
	b, err := Parse("4324", "8658585")
	require.NoError(t, err)
	assert.Equal(t, "<75874864227560291/770614065>", a.Add(b).String())
}

func TestAddSignCases(t *testing.T) {
	t.Parallel()
	tests := []struct {
		x, y string
		want string
	}{
		{"<1/2>", "<1/3>", "<5/6>"},
		{"<-1/2>", "<-1/3>", "<-5/6>"},
		{"<1/2>", "<-1/3>", "<1/6>"},
		{"<-1/2>", "<1/3>", "<-1/6>"},
		{"<1/3>", "<-1/2>", "<-1/6>"},
		{"<-1/3>", "<1/2>", "<1/6>"},
		{"<2/4>", "<-1/2>", "<0/1>"},
	}
	for _, tt := range tests {
		got := MustParse(tt.x).Add(MustParse(tt.y))
		assert.Equal(t, tt.want, got.String(), "%s + %s", tt.x, tt.y)
	}
}

func TestSubMulQuo(t *testing.T) {
	t.Parallel()
	x, y := MustNew(3, 4), MustNew(-5, 6)
	assert.Equal(t, "<19/12>", x.Sub(y).String())
	assert.Equal(t, "<-5/8>", x.Mul(y).String())
	q, err := x.Quo(y)
	require.NoError(t, err)
	assert.Equal(t, "<-9/10>", q.String())
	assert.Equal(t, "<0/1>", x.Mul(Rat{}).String())
}

func TestComparisons(t *testing.T) {
	t.Parallel()
	tests := []struct {
		x, y string
		want int
	}{
		{"<1/2>", "<1/3>", 1},
		{"<1/3>", "<1/2>", -1},
		{"<-1/2>", "<-1/3>", -1},
		{"<-1/3>", "<-1/2>", 1},
		{"<-1/2>", "<1/3>", -1},
		{"<2/4>", "<1/2>", 0},
		{"<0/1>", "<-1/1000>", 1},
	}
	for _, tt := range tests {
		x, y := MustParse(tt.x), MustParse(tt.y)
		assert.Equal(t, tt.want, x.Cmp(y), "%s cmp %s", tt.x, tt.y)
		assert.Equal(t, tt.want == 0, x.Equal(y))
		assert.Equal(t, tt.want < 0, x.Less(y))
		assert.Equal(t, tt.want <= 0, x.LessEqual(y))
		assert.Equal(t, tt.want > 0, x.Greater(y))
		assert.Equal(t, tt.want >= 0, x.GreaterEqual(y))
	}
}

func TestUnaryAndIncrement(t *testing.T) {
	t.Parallel()
	x := MustNew(-3, 2)
	assert.Equal(t, "<3/2>", x.Neg().String())
	assert.Equal(t, "<3/2>", Abs(x).String())
	assert.Equal(t, x, x.Pos())
	assert.Equal(t, "<0/1>", Rat{}.Neg().String())

	r := MustNew(1, 2)
	assert.Equal(t, "<3/2>", r.Inc().String())
	assert.Equal(t, "<3/2>", r.PostDec().String())
	assert.Equal(t, "<1/2>", r.String())
	assert.Equal(t, "<-1/2>", r.Dec().String())
	assert.Equal(t, "<-1/2>", r.PostInc().String())
	assert.Equal(t, "<1/2>", r.String())
}

func TestCompoundAssignment(t *testing.T) {
	t.Parallel()
	r := MustNew(1, 2)
	r.AddAssign(MustNew(1, 3))
	assert.Equal(t, "<5/6>", r.String())
	r.SubAssign(MustNew(1, 6))
	assert.Equal(t, "<2/3>", r.String())
	r.MulAssign(MustNew(3, 4))
	assert.Equal(t, "<1/2>", r.String())
	require.NoError(t, r.QuoAssign(MustNew(-1, 4)))
	assert.Equal(t, "<-2/1>", r.String())

	err := r.QuoAssign(Rat{})
	assert.ErrorIs(t, err, apperrors.ErrZeroDivision)
	assert.Equal(t, "<-2/1>", r.String(), "receiver must be unchanged on failure")
}

func TestFloorAndRound(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in           string
		floor, round int64
	}{
		{"<7/2>", 3, 4},
		{"<-7/2>", -3, -4},
		{"<22/7>", 3, 3},
		{"<5/3>", 1, 2},
		{"<-5/3>", -1, -2},
		{"<1/3>", 0, 0},
		{"<0/1>", 0, 0},
		{"<-9223372036854775808/1>", math.MinInt64, math.MinInt64},
	}
	for _, tt := range tests {
		x := MustParse(tt.in)
		f, err := x.Floor()
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.floor, f, "floor %s", tt.in)
		r, err := x.Round()
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.round, r, "round %s", tt.in)
	}

	_, err := MustParse("<99999999999999999999/1>").Floor()
	assert.ErrorIs(t, err, apperrors.ErrOutOfBounds)
	_, err = MustParse("<18446744073709551615/2>").Round()
	assert.ErrorIs(t, err, apperrors.ErrOutOfBounds)
}

func TestNarrowingCasts(t *testing.T) {
	t.Parallel()

	_, err := MustNew(3, 2).Int()
	assert.ErrorIs(t, err, apperrors.ErrBadCast)
	_, err = MustNew(3, 2).Int16()
	assert.ErrorIs(t, err, apperrors.ErrBadCast)

	v16, err := FromInt64(-32768).Int16()
	require.NoError(t, err)
	assert.Equal(t, int16(-32768), v16)
	_, err = FromInt64(32768).Int16()
	assert.ErrorIs(t, err, apperrors.ErrOutOfBounds)

	v32, err := FromInt64(math.MaxInt32).Int32()
	require.NoError(t, err)
	assert.Equal(t, int32(math.MaxInt32), v32)
	_, err = FromInt64(math.MinInt32 - 1).Int32()
	assert.ErrorIs(t, err, apperrors.ErrOutOfBounds)

	v, err := MustNew(84, 2).Int()
	require.NoError(t, err)
	assert.Equal(t, 42, v)
}

func TestFromFloat64(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in   float64
		want string
	}{
		{0.5, "<1/2>"},
		{0.1, "<1/10>"},
		{-2.25, "<-9/4>"},
		{3, "<3/1>"},
		{1e-17, "<0/1>"},
		{math.Copysign(0, -1), "<0/1>"},
	}
	for _, tt := range tests {
		r, err := FromFloat64(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, r.String(), "%v", tt.in)
	}

	for _, bad := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := FromFloat64(bad)
		assert.ErrorIs(t, err, apperrors.ErrNotANumber)
	}
}

func TestParseString(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in      string
		want    string
		wantErr error
	}{
		{in: "<3/4>", want: "<3/4>"},
		{in: " < -6 / 8 > ", want: "<-3/4>"},
		{in: "12", want: "<12/1>"},
		{in: "<-5>", want: "<-5/1>"},
		{in: "10/-4", want: "<-5/2>"},
		{in: "<3/4", wantErr: apperrors.ErrNotANumber},
		{in: "<>", wantErr: apperrors.ErrNotANumber},
		{in: "<1/x>", wantErr: apperrors.ErrNotANumber},
		{in: "<1/0>", wantErr: apperrors.ErrZeroDivision},
	}
	for _, tt := range tests {
		r, err := ParseString(tt.in)
		if tt.wantErr != nil {
			assert.ErrorIs(t, err, tt.wantErr, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, r.String())
	}
}

func TestTextMarshaling(t *testing.T) {
	t.Parallel()
	x := MustNew(-10, 4)
	b, err := x.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "<-5/2>", string(b))

	var y Rat
	require.NoError(t, y.UnmarshalText(b))
	assert.True(t, x.Equal(y))

	before := y
	assert.Error(t, y.UnmarshalText([]byte("nope")))
	assert.Equal(t, before, y)
}

func TestWithinEpsilon(t *testing.T) {
	t.Parallel()
	eps := MustNew(1, 1000)
	assert.True(t, WithinEpsilon(MustNew(-1, 1001), eps))
	assert.True(t, WithinEpsilon(Rat{}, eps))
	assert.False(t, WithinEpsilon(MustNew(1, 1000), eps))
	assert.False(t, WithinEpsilon(MustNew(-1, 2), eps))
}

func TestOperandsUnchanged(t *testing.T) {
	t.Parallel()
	x, y := MustNew(3, 4), MustNew(-5, 6)
	xs, ys := x.String(), y.String()
	_ = x.Add(y)
	_ = x.Sub(y)
	_ = x.Mul(y)
	_, _ = x.Quo(y)
	_ = x.Neg()
	_ = y.Abs()
	assert.Equal(t, xs, x.String())
	assert.Equal(t, ys, y.String())
}
