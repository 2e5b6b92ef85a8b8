package publish

import (
	"context"
	"sync"

	"github.com/fwojciec/pressroom"
	"golang.org/x/time/rate"
)

var _ pressroom.HostLimiter = (*HostLimiter)(nil)

// HostLimiter rate limits requests with one token bucket per host.
// Requests to different hosts proceed independently.
type HostLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
}

// NewHostLimiter creates a HostLimiter allowing rps requests per second to
// each host, with no bursting. A non-positive rps disables limiting.
func NewHostLimiter(rps float64) *HostLimiter {
	limit := rate.Limit(rps)
	if rps <= 0 {
		limit = rate.Inf
	}
	return &HostLimiter{
		limiters: make(map[string]*rate.Limiter),
		limit:    limit,
	}
}

// Wait blocks until a request to host is allowed.
// Returns an error if the context is canceled first.
func (l *HostLimiter) Wait(ctx context.Context, host string) error {
	l.mu.Lock()
	limiter, ok := l.limiters[host]
	if !ok {
		limiter = rate.NewLimiter(l.limit, 1)
		l.limiters[host] = limiter
	}
	l.mu.Unlock()

	return limiter.Wait(ctx)
}
