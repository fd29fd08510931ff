// Package pacing spaces out consecutive collection invocations so the
// upstream site never sees regions scraped back to back.
package pacing

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"
)

// Limiter makes every Wait block for a fixed interval. The orchestrator calls
// it between consecutive regions only.
type Limiter struct {
	interval time.Duration
	observe  func(time.Duration)
}

// New creates a Limiter with the given interval. A zero or negative interval
// disables pacing entirely. observe, when non-nil, receives each measured
// wait duration.
func New(interval time.Duration, observe func(time.Duration)) *Limiter {
	return &Limiter{interval: interval, observe: observe}
}

// Wait blocks for the configured interval or until ctx is cancelled, in which
// case the context error is returned and the caller should stop iterating.
//
// Each pause uses a fresh single-token bucket with the token pre-burned: the
// pause is always the full interval, no matter how long the preceding
// collection ran. A shared bucket would refill while the collector works and
// hand the next Wait a free token, erasing the pause exactly when regions are
// slow.
func (l *Limiter) Wait(ctx context.Context) error {
	if l.interval <= 0 {
		return nil
	}
	lim := rate.NewLimiter(rate.Every(l.interval), 1)
	lim.Allow()

	start := time.Now()
	if err := lim.Wait(ctx); err != nil {
		return fmt.Errorf("pacing wait: %w", err)
	}
	if l.observe != nil {
		l.observe(time.Since(start))
	}
	return nil
}
