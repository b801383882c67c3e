// Package parser reads sparse rational matrices from text files.
//
// The format is line oriented. Blank lines and lines starting with '#' are
// ignored, and a '#' after an entry starts a trailing comment. The first
// significant line is the header
//
//	matrix rational <rows> <cols>
//
// and every following line is an entry "<i> <j> <value>" with 1-based
// coordinates. The value is "<num/den>", "<num>", "num/den" or "num".
// A later entry for the same coordinates replaces the earlier one.
package parser

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	apperrors "github.com/agbru/ratcalc/internal/errors"
	"github.com/agbru/ratcalc/internal/rational"
)

// ElementType is the only element type accepted in headers.
const ElementType = "rational"

// ErrNotSquare is returned by Trace for non-square matrices.
var ErrNotSquare = errors.New("matrix is not square")

// Coord is a 1-based matrix position.
type Coord struct {
	Row, Col int
}

// Entry is a stored value and its position.
type Entry struct {
	Coord
	Value rational.Rat
}

// Matrix is a sparse matrix of canonical fractions. Positions without an
// entry are zero.
type Matrix struct {
	Rows, Cols int
	entries    map[Coord]rational.Rat
}

// NewMatrix returns an empty rows x cols matrix.
func NewMatrix(rows, cols int) *Matrix {
	return &Matrix{Rows: rows, Cols: cols, entries: make(map[Coord]rational.Rat)}
}

// formatError is a malformed header or coordinate.
func formatError(format string, a ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, a...), apperrors.ErrSyntax)
}

// ParseFile reads the matrix stored at path.
func ParseFile(path string) (*Matrix, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f, path)
}

// Parse reads a matrix from r. source names the input in error messages.
// Every failure is an apperrors.PositionError carrying the line number; a
// bad value keeps its arithmetic kind, so errors.Is distinguishes
// apperrors.ErrNotANumber from apperrors.ErrZeroDivision.
func Parse(r io.Reader, source string) (*Matrix, error) {
	sc := bufio.NewScanner(r)
	var m *Matrix
	line := 0
	for sc.Scan() {
		line++
		text := stripComment(sc.Text())
		if text == "" {
			continue
		}
		var err error
		if m == nil {
			m, err = parseHeader(text)
		} else {
			err = m.parseEntry(text)
		}
		if err != nil {
			return nil, apperrors.PositionError{Source: source, Line: line, Cause: err}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if m == nil {
		return nil, apperrors.PositionError{Source: source, Line: line, Cause: formatError("missing %q header", "matrix "+ElementType)}
	}
	return m, nil
}

func stripComment(s string) string {
	s, _, _ = strings.Cut(s, "#")
	return strings.TrimSpace(s)
}

func parseHeader(text string) (*Matrix, error) {
	fields := strings.Fields(text)
	if len(fields) != 4 || fields[0] != "matrix" {
		return nil, formatError("expected header \"matrix %s <rows> <cols>\", got %q", ElementType, text)
	}
	if fields[1] != ElementType {
		return nil, formatError("unsupported element type %q", fields[1])
	}
	rows, err := positive("rows", fields[2])
	if err != nil {
		return nil, err
	}
	cols, err := positive("columns", fields[3])
	if err != nil {
		return nil, err
	}
	return NewMatrix(rows, cols), nil
}

func positive(what, s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, formatError("%s must be a positive integer, got %q", what, s)
	}
	return n, nil
}

func (m *Matrix) parseEntry(text string) error {
	rest := strings.Fields(text)
	if len(rest) < 3 {
		return formatError("expected \"<row> <col> <value>\", got %q", text)
	}
	row, err := positive("row", rest[0])
	if err != nil {
		return err
	}
	col, err := positive("column", rest[1])
	if err != nil {
		return err
	}
	if row > m.Rows || col > m.Cols {
		return formatError("coordinates (%d, %d) outside a %dx%d matrix", row, col, m.Rows, m.Cols)
	}
	value, err := rational.ParseString(strings.Join(rest[2:], ""))
	if err != nil {
		return err
	}
	m.entries[Coord{row, col}] = value
	return nil
}

// At returns the value at (row, col), zero when no entry is stored.
func (m *Matrix) At(row, col int) rational.Rat {
	return m.entries[Coord{row, col}]
}

// Set stores v at (row, col). Coordinates are not range checked.
func (m *Matrix) Set(row, col int, v rational.Rat) {
	m.entries[Coord{row, col}] = v
}

// Len returns the number of stored entries, zeros included.
func (m *Matrix) Len() int { return len(m.entries) }

// Entries returns the stored entries ordered by row, then column.
func (m *Matrix) Entries() []Entry {
	out := make([]Entry, 0, len(m.entries))
	for c, v := range m.entries {
		out = append(out, Entry{Coord: c, Value: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Row != out[j].Row {
			return out[i].Row < out[j].Row
		}
		return out[i].Col < out[j].Col
	})
	return out
}

// Prune drops the entries whose magnitude is below eps and returns how many
// were removed. A zero eps removes nothing.
func (m *Matrix) Prune(eps rational.Rat) int {
	removed := 0
	for c, v := range m.entries {
		if rational.WithinEpsilon(v, eps) {
			delete(m.entries, c)
			removed++
		}
	}
	return removed
}

// Sum adds up every entry.
func (m *Matrix) Sum() rational.Rat {
	var sum rational.Rat
	for _, v := range m.entries {
		sum.AddAssign(v)
	}
	return sum
}

// Trace sums the diagonal of a square matrix.
func (m *Matrix) Trace() (rational.Rat, error) {
	if m.Rows != m.Cols {
		return rational.Rat{}, fmt.Errorf("trace of a %dx%d matrix: %w", m.Rows, m.Cols, ErrNotSquare)
	}
	var tr rational.Rat
	for c, v := range m.entries {
		if c.Row == c.Col {
			tr.AddAssign(v)
		}
	}
	return tr, nil
}
