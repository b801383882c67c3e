package cli

import (
	"fmt"
	"time"
)

const (
	// maxETA caps estimates so that a stalled run does not print absurd values.
	maxETA = 24 * time.Hour
	// etaWarmup is the time before the first estimate is attempted.
	etaWarmup = 100 * time.Millisecond
	// rateSmoothing is the weight kept from the previous rate sample.
	rateSmoothing = 0.7
)

// ProgressWithETA adds an exponentially smoothed completion-rate estimate
// to ProgressState.
type ProgressWithETA struct {
	*ProgressState
	startTime    time.Time
	lastUpdate   time.Time
	lastProgress float64
	// rate is the smoothed progress per second.
	rate float64
}

// NewProgressWithETA tracks numEngines engines from now.
func NewProgressWithETA(numEngines int) *ProgressWithETA {
	now := time.Now()
	return &ProgressWithETA{
		ProgressState: NewProgressState(numEngines),
		startTime:     now,
		lastUpdate:    now,
	}
}

// UpdateWithETA records value for the engine at index and returns the new
// average progress with the current time-remaining estimate. The estimate is
// zero until enough time and progress have accumulated.
func (p *ProgressWithETA) UpdateWithETA(index int, value float64) (float64, time.Duration) {
	return p.updateAt(time.Now(), index, value)
}

func (p *ProgressWithETA) updateAt(now time.Time, index int, value float64) (float64, time.Duration) {
	p.Update(index, value)
	progress := p.CalculateAverage()

	elapsed := now.Sub(p.startTime)
	if elapsed < etaWarmup || progress <= 0.001 {
		p.lastUpdate, p.lastProgress = now, progress
		return progress, 0
	}

	if dt := now.Sub(p.lastUpdate).Seconds(); dt > 0.05 {
		if delta := progress - p.lastProgress; delta > 0 {
			if p.rate > 0 {
				p.rate = rateSmoothing*p.rate + (1-rateSmoothing)*(delta/dt)
			} else {
				p.rate = progress / elapsed.Seconds()
			}
		}
		p.lastUpdate, p.lastProgress = now, progress
	}
	return progress, p.remaining(progress)
}

// GetETA returns the time-remaining estimate without recording progress.
func (p *ProgressWithETA) GetETA() time.Duration {
	return p.remaining(p.CalculateAverage())
}

func (p *ProgressWithETA) remaining(progress float64) time.Duration {
	if p.rate <= 0 || progress >= 1.0 {
		return 0
	}
	eta := time.Duration((1.0 - progress) / p.rate * float64(time.Second))
	return min(eta, maxETA)
}

// FormatETA renders eta as "< 1s", "42s", "2m30s" or "1h15m". A zero or
// negative eta means no estimate is available yet.
func FormatETA(eta time.Duration) string {
	switch {
	case eta <= 0:
		return "calculating..."
	case eta < time.Second:
		return "< 1s"
	case eta < time.Minute:
		return fmt.Sprintf("%ds", int(eta.Seconds()))
	case eta < time.Hour:
		m, s := int(eta.Minutes()), int(eta.Seconds())%60
		if s > 0 {
			return fmt.Sprintf("%dm%ds", m, s)
		}
		return fmt.Sprintf("%dm", m)
	}
	h, m := int(eta.Hours()), int(eta.Minutes())%60
	if m > 0 {
		return fmt.Sprintf("%dh%dm", h, m)
	}
	return fmt.Sprintf("%dh", h)
}

// FormatProgressBarWithETA renders "45.00% [████░░░░] ETA: 2m30s".
func FormatProgressBarWithETA(progress float64, eta time.Duration, width int) string {
	return fmt.Sprintf("%6.2f%% [%s] ETA: %s", progress*100, progressBar(progress, width), FormatETA(eta))
}
