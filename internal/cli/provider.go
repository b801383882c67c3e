package cli

import (
	apperrors "github.com/agbru/ratcalc/internal/errors"
	"github.com/agbru/ratcalc/internal/ui"
)

var _ apperrors.ColorProvider = CLIColorProvider{}

// CLIColorProvider feeds the active ui theme to apperrors.HandleCalculationError.
type CLIColorProvider struct{}

// Yellow returns the warning color of the current theme.
func (CLIColorProvider) Yellow() string { return ui.ColorYellow() }

// Reset returns the reset code of the current theme.
func (CLIColorProvider) Reset() string { return ui.ColorReset() }
