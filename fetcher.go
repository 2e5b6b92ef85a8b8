package pressroom

import "context"

// Fetcher retrieves HTML from URLs.
type Fetcher interface {
	// Fetch returns the body of the page at url.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases resources held by the fetcher.
	Close() error
}

// HostLimiter provides per-host rate limiting.
type HostLimiter interface {
	// Wait blocks until the rate limit allows a request to the host.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, host string) error
}
