package expr

import (
	"fmt"

	apperrors "github.com/agbru/ratcalc/internal/errors"
)

// SyntaxError reports malformed expression text.
type SyntaxError struct {
	// Offset is the 0-based byte offset of the offending token.
	Offset int
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at column %d: %s", e.Offset+1, e.Msg)
}

// Unwrap makes errors.Is(err, apperrors.ErrSyntax) hold.
func (e *SyntaxError) Unwrap() error { return apperrors.ErrSyntax }
