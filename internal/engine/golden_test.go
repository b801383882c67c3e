package engine

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	apperrors "github.com/agbru/ratcalc/internal/errors"
	"github.com/agbru/ratcalc/internal/expr"
)

// goldenCase mirrors the records written by cmd/generate-golden.
type goldenCase struct {
	Expression string `json:"expression"`
	Result     string `json:"result"`
	ErrorKind  string `json:"error_kind"`
}

func TestEnginesAgainstGoldenFile(t *testing.T) {
	goldenPath := filepath.Join("testdata", "golden.json")
	file, err := os.Open(goldenPath)
	if err != nil {
		t.Fatalf("Failed to open golden file: %v. Did you run 'go run ./cmd/generate-golden'?", err)
	}
	defer file.Close()

	var cases []goldenCase
	if err := json.NewDecoder(file).Decode(&cases); err != nil {
		t.Fatalf("Failed to decode golden file: %v", err)
	}
	if len(cases) == 0 {
		t.Fatal("golden file is empty")
	}

	ctx := context.Background()
	for name, e := range GlobalFactory().GetAll() {
		e := e
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			for _, tc := range cases {
				n, err := expr.Parse(tc.Expression)
				if err != nil {
					t.Fatalf("golden expression %q does not parse: %v", tc.Expression, err)
				}
				got, err := e.Evaluate(ctx, n)
				if tc.ErrorKind != "" {
					if kind := apperrors.Classify(err); kind != tc.ErrorKind {
						t.Errorf("%s: expected error %s, got %q (err=%v)", tc.Expression, tc.ErrorKind, kind, err)
					}
					continue
				}
				if err != nil {
					t.Errorf("%s: unexpected error: %v", tc.Expression, err)
					continue
				}
				if got.Text != tc.Result {
					t.Errorf("Mismatch for %s.\nExpected: %s\nGot:      %s", tc.Expression, tc.Result, got.Text)
				}
			}
		})
	}
}
