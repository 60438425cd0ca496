package crawl

import (
	"context"
	"log/slog"
	"time"
)

// NavigateFunc is the signature for a navigation function.
type NavigateFunc func(ctx context.Context, url string) error

// BackoffDelays returns n exponentially growing delays starting at one second.
// It returns nil for n <= 0, which disables retries.
func BackoffDelays(n int) []time.Duration {
	if n <= 0 {
		return nil
	}
	delays := make([]time.Duration, n)
	d := time.Second
	for i := range delays {
		delays[i] = d
		d *= 2
	}
	return delays
}

// NavigateWithRetry attempts navigation once and then once more after each
// of delays, stopping at the first success. The logger, if not nil, is told
// about every retry. The last navigation error is returned.
func NavigateWithRetry(ctx context.Context, url string, navigate NavigateFunc, logger *slog.Logger, delays []time.Duration) error {
	maxAttempts := len(delays) + 1

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		err := navigate(ctx, url)
		if err == nil {
			return nil
		}
		lastErr = err

		if attempt >= maxAttempts-1 {
			break
		}

		if ctx.Err() != nil {
			return ctx.Err()
		}

		if logger != nil {
			logger.Warn("retrying navigation",
				"url", url,
				"attempt", attempt+2,
				"delay", delays[attempt],
				"err", err,
			)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}

	return lastErr
}
