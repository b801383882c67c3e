package expr

import (
	"errors"
	"testing"

	apperrors "github.com/agbru/ratcalc/internal/errors"
)

func TestParseStructure(t *testing.T) {
	t.Parallel()
	tests := []struct {
		src  string
		want string
	}{
		{"<3/4>", "<3/4>"},
		{"< -6 / 8 >", "<-6/8>"},
		{"<5>", "<5>"},
		{"42", "<42>"},
		{"1.25", "<125/100>"},
		{"0.05", "<5/100>"},
		{"0.3", "<3/10>"},
		{"007", "<7>"},
		{"0", "<0>"},
		{"00.00", "<0/100>"},
		{"<1/2> + <1/3> * 3", "(<1/2> + (<1/3> * <3>))"},
		{"(<1/2> + <1/3>) * 3", "((<1/2> + <1/3>) * <3>)"},
		{"1 - 2 - 3", "((<1> - <2>) - <3>)"},
		{"8 / 4 / 2", "((<8> / <4>) / <2>)"},
		{"--<1/2>", "(-(-<1/2>))"},
		{"+3", "(+<3>)"},
		{"abs(<-3/4>)", "abs(<-3/4>)"},
		{"FLOOR(<7/2>) + round(1.5)", "(floor(<7/2>) + round(<15/10>))"},
		{"inv(2) * 2", "(inv(<2>) * <2>)"},
		{"<1/2> < <2/3>", "(<1/2> < <2/3>)"},
		{"<1/2><=<2/3>", "(<1/2> <= <2/3>)"},
		{"1 + 1 == 2", "((<1> + <1>) == <2>)"},
		{"<1/3> != 0.3", "(<1/3> != <3/10>)"},
		{"2 >= <4/2>", "(<2> >= <4/2>)"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.src, func(t *testing.T) {
			t.Parallel()
			n, err := Parse(tt.src)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tt.src, err)
			}
			if got := n.String(); got != tt.want {
				t.Errorf("Parse(%q) = %s, want %s", tt.src, got, tt.want)
			}
		})
	}
}

func TestParseLiteralFields(t *testing.T) {
	t.Parallel()
	n := MustParse("  < -131444452345 / 1335 >")
	lit, ok := n.(*Literal)
	if !ok {
		t.Fatalf("expected *Literal, got %T", n)
	}
	if lit.Num != "-131444452345" || lit.Den != "1335" || lit.Offset != 2 {
		t.Errorf("unexpected literal %+v", lit)
	}

	// Malformed numbers inside brackets are the engine's business.
	bad := MustParse("<12a/0>").(*Literal)
	if bad.Num != "12a" || bad.Den != "0" {
		t.Errorf("raw literal text not preserved: %+v", bad)
	}
}

func TestParseErrors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		src    string
		offset int
	}{
		{"", 0},
		{"   ", 0},
		{"<1/2", 0},
		{"1 +", 3},
		{"(1 + 2", 6},
		{"1 2", 2},
		{"sqrt(2)", 0},
		{"abs 2", 4},
		{"1 $ 2", 2},
		{"1 = 2", 2},
		{"1.", 0},
		{"1 < 2 < 3", 6},
		{")", 0},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.src, func(t *testing.T) {
			t.Parallel()
			_, err := Parse(tt.src)
			if err == nil {
				t.Fatalf("Parse(%q) succeeded, want error", tt.src)
			}
			var se *SyntaxError
			if !errors.As(err, &se) {
				t.Fatalf("Parse(%q) error %T is not *SyntaxError", tt.src, err)
			}
			if se.Offset != tt.offset {
				t.Errorf("Parse(%q) offset = %d, want %d (%v)", tt.src, se.Offset, tt.offset, err)
			}
			if !errors.Is(err, apperrors.ErrSyntax) {
				t.Errorf("Parse(%q) error does not match ErrSyntax", tt.src)
			}
		})
	}
}

func TestIsBooleanAndCount(t *testing.T) {
	t.Parallel()
	if IsBoolean(MustParse("1 + 2")) {
		t.Error("sum is not boolean")
	}
	if !IsBoolean(MustParse("1 < 2")) {
		t.Error("comparison is boolean")
	}
	if got := Count(MustParse("abs(-<1/2>) + 3 * 4")); got != 7 {
		t.Errorf("Count = %d, want 7", got)
	}
}

func TestOpString(t *testing.T) {
	t.Parallel()
	if Le.String() != "<=" || Quo.String() != "/" {
		t.Error("unexpected operator text")
	}
	if !Ge.IsComparison() || Mul.IsComparison() {
		t.Error("IsComparison misclassifies operators")
	}
}
