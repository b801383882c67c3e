// Package cli is the terminal front end of ratcalc: the progress spinner
// shown while engines run, result and error formatting, the interactive
// REPL and shell completion scripts.
package cli

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/ratcalc/internal/engine"
)

// FormatExecutionDuration formats a duration for display.
//
// Parameters:
//   - d: The duration.
//
// Returns:
//   - string: Microseconds below a millisecond, milliseconds below a second,
//     d.String() otherwise.
func FormatExecutionDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dµs", d.Microseconds())
	} else if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return d.String()
}

const (
	// TruncationLimit is the digit count from which a numerator or
	// denominator is elided in standard output.
	TruncationLimit = 100
	// DisplayEdges is the number of digits kept on each side of an elided
	// component.
	DisplayEdges = 25
	// ProgressRefreshRate defines the refresh frequency of the progress bar.
	ProgressRefreshRate = 200 * time.Millisecond
	// ProgressBarWidth defines the width in characters of the progress bar.
	ProgressBarWidth = 40
)

// Spinner abstracts the terminal spinner so that DisplayProgress can be
// tested without a real terminal.
type Spinner interface {
	// Start begins the spinner animation.
	Start()
	// Stop halts the spinner animation.
	Stop()
	// UpdateSuffix sets the text that is displayed after the spinner.
	UpdateSuffix(suffix string)
}

// realSpinner adapts spinner.Spinner to the Spinner interface.
type realSpinner struct {
	s *spinner.Spinner
}

func (rs *realSpinner) Start() { rs.s.Start() }

func (rs *realSpinner) Stop() { rs.s.Stop() }

func (rs *realSpinner) UpdateSuffix(suffix string) {
	rs.s.Lock()
	rs.s.Suffix = suffix
	rs.s.Unlock()
}

var newSpinner = func(options ...spinner.Option) Spinner {
	s := spinner.New(spinner.CharSets[11], ProgressRefreshRate, options...)
	return &realSpinner{s}
}

// ProgressState holds the last reported progress of each engine in a run.
type ProgressState struct {
	progresses []float64
	numEngines int
}

// NewProgressState tracks numEngines engines, all starting at zero.
func NewProgressState(numEngines int) *ProgressState {
	return &ProgressState{
		progresses: make([]float64, numEngines),
		numEngines: numEngines,
	}
}

// Update records value for the engine at index. Out of range indices are
// ignored.
func (ps *ProgressState) Update(index int, value float64) {
	if index >= 0 && index < len(ps.progresses) {
		ps.progresses[index] = value
	}
}

// CalculateAverage returns the mean progress across all engines.
func (ps *ProgressState) CalculateAverage() float64 {
	if ps.numEngines == 0 {
		return 0.0
	}
	var total float64
	for _, p := range ps.progresses {
		total += p
	}
	return total / float64(ps.numEngines)
}

// progressBar renders progress, clamped to [0, 1], as a bar of length runes.
func progressBar(progress float64, length int) string {
	if progress > 1.0 {
		progress = 1.0
	}
	if progress < 0.0 {
		progress = 0.0
	}
	count := int(progress * float64(length))
	var builder strings.Builder
	builder.Grow(length * 3)
	for i := 0; i < length; i++ {
		if i < count {
			builder.WriteRune('█')
		} else {
			builder.WriteRune('░')
		}
	}
	return builder.String()
}

func progressLabel(numEngines int) string {
	if numEngines > 1 {
		return "Avg progress"
	}
	return "Progress"
}

// DisplayProgress renders a spinner and an averaged progress bar until
// progressChan is closed, then prints a final 100% line. Run it in its own
// goroutine.
//
// Parameters:
//   - wg: Done is called on return.
//   - progressChan: Per-engine updates; closing it ends the display.
//   - numEngines: The number of engines averaged.
//   - out: The destination writer.
func DisplayProgress(wg *sync.WaitGroup, progressChan <-chan engine.ProgressUpdate, numEngines int, out io.Writer) {
	defer wg.Done()
	if numEngines <= 0 {
		for range progressChan {
		}
		return
	}

	state := NewProgressWithETA(numEngines)
	s := newSpinner(spinner.WithWriter(out))
	s.Start()
	spinnerStopped := false
	defer func() {
		if !spinnerStopped {
			s.Stop()
		}
	}()

	ticker := time.NewTicker(ProgressRefreshRate)
	defer ticker.Stop()

	label := progressLabel(numEngines)
	for {
		select {
		case update, ok := <-progressChan:
			if !ok {
				s.Stop()
				spinnerStopped = true
				fmt.Fprintf(out, "%s: %s\n", label, FormatProgressBarWithETA(1.0, time.Nanosecond, ProgressBarWidth))
				return
			}
			state.UpdateWithETA(update.EngineIndex, update.Value)
		case <-ticker.C:
			s.UpdateSuffix(" " + label + ": " +
				FormatProgressBarWithETA(state.CalculateAverage(), state.GetETA(), ProgressBarWidth))
		}
	}
}
