package rpc

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// limiter is a token-bucket rate limiter shared by all calls of a Client.
// A nil *limiter never blocks.
type limiter struct {
	l *rate.Limiter
}

func newLimiter(rps float64, burst int) *limiter {
	if rps <= 0 {
		return nil
	}
	if burst <= 0 {
		burst = 1
	}

	return &limiter{l: rate.NewLimiter(rate.Limit(rps), burst)}
}

// wait blocks until a token is available or ctx is done.
func (l *limiter) wait(ctx context.Context) error {
	if l == nil {
		return nil
	}

	r := l.l.Reserve()
	if !r.OK() {
		return l.l.Wait(ctx)
	}

	delay := r.Delay()
	if delay == 0 {
		return nil
	}

	RPCRateLimitWaits.Inc()

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		r.Cancel()
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
