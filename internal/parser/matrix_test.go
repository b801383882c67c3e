package parser

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/agbru/ratcalc/internal/errors"
	"github.com/agbru/ratcalc/internal/rational"
)

func TestParseFile(t *testing.T) {
	m, err := ParseFile("testdata/matrix_rational.txt")
	require.NoError(t, err)

	assert.Equal(t, 3, m.Rows)
	assert.Equal(t, 3, m.Cols)
	assert.Equal(t, 5, m.Len())
	assert.Equal(t, "<-1/2>", m.At(1, 3).String())
	assert.Equal(t, "<7/3>", m.At(2, 2).String())
	assert.Equal(t, "<1/2>", m.At(3, 1).String())
	assert.True(t, m.At(2, 1).IsZero())

	entries := m.Entries()
	require.Len(t, entries, 5)
	assert.Equal(t, Coord{1, 1}, entries[0].Coord)
	assert.Equal(t, Coord{3, 3}, entries[4].Coord)

	tr, err := m.Trace()
	require.NoError(t, err)
	assert.Equal(t, "<8500000000000003/3000000000000000>", tr.String())
	assert.Equal(t, "<8500000000000003/3000000000000000>", m.Sum().String())
}

func TestPrune(t *testing.T) {
	m, err := ParseFile("testdata/matrix_rational.txt")
	require.NoError(t, err)

	assert.Zero(t, m.Prune(rational.Rat{}))
	eps, err := rational.FromFloat64(1e-12)
	require.NoError(t, err)
	assert.Equal(t, 1, m.Prune(eps))
	assert.Equal(t, 4, m.Len())
	assert.Equal(t, "<17/6>", m.Sum().String())
}

func TestTraceRequiresSquare(t *testing.T) {
	m, err := Parse(strings.NewReader("matrix rational 2 3\n1 1 1\n"), "wide")
	require.NoError(t, err)
	_, err = m.Trace()
	assert.ErrorIs(t, err, ErrNotSquare)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		line  int
		is    error
	}{
		{"empty", "# nothing\n\n", 2, apperrors.ErrSyntax},
		{"bad header", "vector rational 3\n", 1, apperrors.ErrSyntax},
		{"complex type", "matrix complex 2 2\n", 1, apperrors.ErrSyntax},
		{"zero rows", "matrix rational 0 2\n", 1, apperrors.ErrSyntax},
		{"short entry", "matrix rational 2 2\n1 1\n", 2, apperrors.ErrSyntax},
		{"bad row", "matrix rational 2 2\nx 1 <1/2>\n", 2, apperrors.ErrSyntax},
		{"zero column", "matrix rational 2 2\n1 0 <1/2>\n", 2, apperrors.ErrSyntax},
		{"outside", "matrix rational 2 2\n\n3 1 <1/2>\n", 3, apperrors.ErrSyntax},
		{"not a number", "matrix rational 2 2\n1 1 <a/2>\n", 2, apperrors.ErrNotANumber},
		{"zero denominator", "matrix rational 2 2\n1 1 <1/2>\n2 2 <1/0>\n", 3, apperrors.ErrZeroDivision},
		{"unbalanced", "matrix rational 2 2\n1 1 <1/2\n", 2, apperrors.ErrNotANumber},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.input), "m.txt")
			require.Error(t, err)
			var pe apperrors.PositionError
			require.True(t, errors.As(err, &pe), "got %T", err)
			assert.Equal(t, tt.line, pe.Line)
			assert.Equal(t, "m.txt", pe.Source)
			assert.ErrorIs(t, err, tt.is)
		})
	}
}

func TestZeroDivisionIsNotSyntax(t *testing.T) {
	_, err := Parse(strings.NewReader("matrix rational 1 1\n1 1 <1/0>\n"), "m")
	assert.ErrorIs(t, err, apperrors.ErrZeroDivision)
	assert.False(t, errors.Is(err, apperrors.ErrNotANumber))
	assert.False(t, errors.Is(err, apperrors.ErrSyntax))
}

func TestParseFileMissing(t *testing.T) {
	_, err := ParseFile("testdata/does-not-exist.txt")
	assert.Error(t, err)
}
