package scrape

import (
	"context"
	"log/slog"
	"time"
)

// FetchFunc is the signature for a fetch function.
type FetchFunc func(ctx context.Context, url string) (string, error)

// DefaultRetryDelays returns the backoff delays for fetch retries: 3s, 6s.
// Together with the initial attempt this gives three attempts per page.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{3 * time.Second, 6 * time.Second}
}

// FetchWithRetry fetches url, retrying with DefaultRetryDelays.
func FetchWithRetry(ctx context.Context, url string, fetch FetchFunc, logger *slog.Logger) (string, error) {
	return FetchWithRetryDelays(ctx, url, fetch, logger, DefaultRetryDelays())
}

// FetchWithRetryDelays is like FetchWithRetry but with configurable delays.
// Every failed attempt except the last is logged at warn level when logger
// is non-nil. The error of the final attempt is returned once all attempts
// are exhausted.
func FetchWithRetryDelays(ctx context.Context, url string, fetch FetchFunc, logger *slog.Logger, delays []time.Duration) (string, error) {
	maxAttempts := len(delays) + 1

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		html, err := fetch(ctx, url)
		if err == nil {
			return html, nil
		}
		lastErr = err

		if attempt >= maxAttempts-1 {
			break
		}

		if err := ctx.Err(); err != nil {
			return "", err
		}

		if logger != nil {
			logger.Warn("retrying fetch",
				"url", url,
				"attempt", attempt+2,
				"delay", delays[attempt],
				"error", err,
			)
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}

	return "", lastErr
}
