// Package ratelimit caps the global event emission rate of the stream loop.
package ratelimit

import (
	"context"

	"golang.org/x/time/rate"
)

// Limiter throttles event emission to a fixed events-per-second budget.
// A nil *Limiter never blocks, so an uncapped stream can skip the nil check.
type Limiter struct {
	limiter *rate.Limiter
}

// New creates a limiter allowing eventsPerSec events per second with an
// equal burst. A non-positive rate returns nil (no limiting).
func New(eventsPerSec int) *Limiter {
	if eventsPerSec <= 0 {
		return nil
	}
	return &Limiter{limiter: rate.NewLimiter(rate.Limit(eventsPerSec), eventsPerSec)}
}

// Wait blocks until the next event may be emitted or ctx is cancelled.
func (l *Limiter) Wait(ctx context.Context) error {
	if l == nil {
		return nil
	}
	return l.limiter.Wait(ctx)
}
