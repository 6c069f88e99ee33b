package ratelimit

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Limiter defines the interface for pacing requests against the site
type Limiter interface {
	// Allow reports whether a request may proceed right now
	Allow() bool
	// Wait blocks until the pacing interval allows another request,
	// or the context is cancelled
	Wait(ctx context.Context) error
}

// Pacer enforces a minimum interval between consecutive operations. The
// pipeline is sequential, so a burst of one is exactly the fixed-delay
// behavior the site pacing calls for.
type Pacer struct {
	limiter *rate.Limiter
}

// NewPacer creates a pacer with the given minimum interval between events.
// A non-positive interval yields a pacer that never blocks.
func NewPacer(interval time.Duration) *Pacer {
	if interval <= 0 {
		return &Pacer{limiter: rate.NewLimiter(rate.Inf, 1)}
	}
	return &Pacer{limiter: rate.NewLimiter(rate.Every(interval), 1)}
}

// Allow reports whether an event may happen now
func (p *Pacer) Allow() bool {
	return p.limiter.Allow()
}

// Wait blocks until the next event is allowed
func (p *Pacer) Wait(ctx context.Context) error {
	return p.limiter.Wait(ctx)
}
