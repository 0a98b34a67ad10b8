package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// terminationSignals end a run early: generation stops with exit code 130
// and the server shuts down gracefully.
var terminationSignals = []os.Signal{syscall.SIGINT, syscall.SIGTERM}

// SetupContext bounds ctx by timeout.
func SetupContext(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, timeout)
}

// SetupSignals returns a context canceled on SIGINT or SIGTERM. The returned
// function stops the signal relay and must be called.
func SetupSignals(ctx context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(ctx, terminationSignals...)
}

// SetupLifecycle applies both the run timeout and signal handling. The
// returned context is done at whichever comes first.
//
// Parameters:
//   - ctx: The parent context.
//   - timeout: The maximum duration of the run.
//
// Returns:
//   - context.Context: The run context.
//   - *CancelFuncs: The release functions, for a deferred Cleanup call.
func SetupLifecycle(ctx context.Context, timeout time.Duration) (context.Context, *CancelFuncs) {
	ctx, cancelTimeout := SetupContext(ctx, timeout)
	ctx, stopSignals := SetupSignals(ctx)

	return ctx, &CancelFuncs{
		CancelTimeout: cancelTimeout,
		StopSignals:   stopSignals,
	}
}

// CancelFuncs holds the release functions created by SetupLifecycle.
type CancelFuncs struct {
	// CancelTimeout cancels the timeout context.
	CancelTimeout context.CancelFunc
	// StopSignals stops listening for OS signals.
	StopSignals context.CancelFunc
}

// Cleanup releases the signal relay, then the timer. Nil functions are skipped.
func (c *CancelFuncs) Cleanup() {
	if c.StopSignals != nil {
		c.StopSignals()
	}
	if c.CancelTimeout != nil {
		c.CancelTimeout()
	}
}
