package health

import (
	"context"
	"runtime"

	"github.com/go-faster/errors"
)

// GoroutineCountCheck returns a CheckFunc that fails when the goroutine
// count exceeds threshold. Useful as a liveness check for goroutine leaks.
func GoroutineCountCheck(threshold int) CheckFunc {
	return func(_ context.Context) error {
		if n := runtime.NumGoroutine(); n > threshold {
			return errors.Errorf("goroutine count %d exceeds threshold %d", n, threshold)
		}
		return nil
	}
}

// PingCheck adapts any ping-style function into a CheckFunc. Useful as a
// readiness check for upstream reachability.
func PingCheck(ping func(ctx context.Context) error) CheckFunc {
	return func(ctx context.Context) error {
		if err := ping(ctx); err != nil {
			return errors.Wrap(err, "ping")
		}
		return nil
	}
}
