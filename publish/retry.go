package publish

import (
	"context"
	"time"

	"github.com/fwojciec/pressroom"
)

// DefaultRetryDelays returns the backoff delays for fetch retries: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

type fetchFunc func(ctx context.Context, url string) (string, error)

// fetchWithRetry makes one attempt plus one retry per delay.
// It returns the last error once attempts run out. EINVALID errors are
// returned at once.
func fetchWithRetry(ctx context.Context, url string, fetch fetchFunc, delays []time.Duration) (string, error) {
	var lastErr error
	for attempt := 0; attempt <= len(delays); attempt++ {
		body, err := fetch(ctx, url)
		if err == nil {
			return body, nil
		}
		lastErr = err

		if attempt == len(delays) || pressroom.ErrorCode(err) == pressroom.EINVALID {
			break
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}
	return "", lastErr
}
