package app

import (
	"context"
	"os/signal"
	"syscall"
	"time"
)

// SetupContext applies timeout to ctx.
//
// Parameters:
//   - ctx: The parent context.
//   - timeout: The evaluation budget.
//
// Returns:
//   - context.Context: A context canceled when timeout expires.
//   - context.CancelFunc: Releases the timer; defer it.
func SetupContext(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, timeout)
}

// SetupSignals returns a context canceled on SIGINT or SIGTERM.
//
// Parameters:
//   - ctx: The parent context.
//
// Returns:
//   - context.Context: A context canceled by the first termination signal.
//   - context.CancelFunc: Stops signal delivery; defer it.
func SetupSignals(ctx context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
}

// SetupLifecycle bounds a batch evaluation by timeout and by termination
// signals, whichever comes first.
//
// Parameters:
//   - ctx: The parent context.
//   - timeout: The budget for the whole batch.
//
// Returns:
//   - context.Context: The bounded context handed to the engines.
//   - *CancelFuncs: Call Cleanup when the batch is done.
func SetupLifecycle(ctx context.Context, timeout time.Duration) (context.Context, *CancelFuncs) {
	ctx, cancelTimeout := SetupContext(ctx, timeout)
	ctx, stopSignals := SetupSignals(ctx)
	return ctx, &CancelFuncs{CancelTimeout: cancelTimeout, StopSignals: stopSignals}
}

// CancelFuncs holds the cancel functions created by SetupLifecycle.
type CancelFuncs struct {
	CancelTimeout context.CancelFunc
	StopSignals   context.CancelFunc
}

// Cleanup stops signal delivery, then cancels the timeout.
func (c *CancelFuncs) Cleanup() {
	if c.StopSignals != nil {
		c.StopSignals()
	}
	if c.CancelTimeout != nil {
		c.CancelTimeout()
	}
}
