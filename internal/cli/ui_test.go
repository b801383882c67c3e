package cli

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/ratcalc/internal/engine"
	"github.com/agbru/ratcalc/internal/ui"
)

// MockSpinner records the calls made by DisplayProgress.
type MockSpinner struct {
	mu      sync.Mutex
	started bool
	stopped bool
	suffix  string
}

func (m *MockSpinner) Start() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.started = true
}

func (m *MockSpinner) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopped = true
}

func (m *MockSpinner) UpdateSuffix(suffix string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.suffix = suffix
}

func TestFormatExecutionDuration(t *testing.T) {
	t.Parallel()
	tests := []struct {
		d        time.Duration
		expected string
	}{
		{500 * time.Nanosecond, "0µs"},
		{10 * time.Microsecond, "10µs"},
		{10 * time.Millisecond, "10ms"},
		{2 * time.Second, "2s"},
	}
	for _, tt := range tests {
		if got := FormatExecutionDuration(tt.d); got != tt.expected {
			t.Errorf("FormatExecutionDuration(%v) = %s; want %s", tt.d, got, tt.expected)
		}
	}
}

func TestProgressBar(t *testing.T) {
	t.Parallel()
	tests := []struct {
		progress float64
		length   int
		want     string
	}{
		{0.0, 10, "░░░░░░░░░░"},
		{0.5, 10, "█████░░░░░"},
		{1.0, 10, "██████████"},
		{1.2, 10, "██████████"},
		{-0.1, 10, "░░░░░░░░░░"},
	}
	for _, tt := range tests {
		if got := progressBar(tt.progress, tt.length); got != tt.want {
			t.Errorf("progressBar(%f, %d) = %s; want %s", tt.progress, tt.length, got, tt.want)
		}
	}
}

func TestProgressState(t *testing.T) {
	t.Parallel()
	ps := NewProgressState(2)
	ps.Update(0, 1.0)
	ps.Update(1, 0.5)
	ps.Update(7, 1.0)
	ps.Update(-1, 1.0)
	if got := ps.CalculateAverage(); got != 0.75 {
		t.Errorf("CalculateAverage() = %f, want 0.75", got)
	}
	if got := NewProgressState(0).CalculateAverage(); got != 0 {
		t.Errorf("empty state average = %f, want 0", got)
	}
}

func TestDisplayProgress(t *testing.T) {
	ui.SetCurrentTheme(ui.NoColorTheme)
	mock := &MockSpinner{}
	original := newSpinner
	newSpinner = func(...spinner.Option) Spinner { return mock }
	defer func() { newSpinner = original }()

	var out bytes.Buffer
	var wg sync.WaitGroup
	ch := make(chan engine.ProgressUpdate, 4)
	wg.Add(1)
	go DisplayProgress(&wg, ch, 2, &out)
	ch <- engine.ProgressUpdate{EngineIndex: 0, Value: 0.5}
	ch <- engine.ProgressUpdate{EngineIndex: 1, Value: 1.0}
	close(ch)
	wg.Wait()

	if !mock.started || !mock.stopped {
		t.Errorf("spinner should be started and stopped: %+v", mock)
	}
	got := out.String()
	if !strings.Contains(got, "Avg progress: 100.00%") || !strings.Contains(got, "ETA: < 1s") {
		t.Errorf("unexpected final line %q", got)
	}
}

func TestDisplayProgressWithoutEnginesDrains(t *testing.T) {
	t.Parallel()
	var out bytes.Buffer
	var wg sync.WaitGroup
	ch := make(chan engine.ProgressUpdate, 1)
	ch <- engine.ProgressUpdate{Value: 1}
	close(ch)
	wg.Add(1)
	DisplayProgress(&wg, ch, 0, &out)
	if out.Len() != 0 {
		t.Errorf("expected no output, got %q", out.String())
	}
}
