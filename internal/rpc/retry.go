package rpc

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"net"
	"strings"
	"syscall"
	"time"

	"github.com/goran-ethernal/ChainScanner/internal/logger"
	"github.com/goran-ethernal/ChainScanner/pkg/config"
)

// transientMarkers are lowercase fragments of provider and transport errors worth retrying.
var transientMarkers = []string{
	// timeouts
	"timeout", "deadline exceeded",
	// rate limiting
	"429", "too many requests", "rate limit",
	// temporary server errors
	"502", "503", "504", "bad gateway", "service unavailable", "gateway timeout",
	// connection pool exhausted
	"connection pool", "no available connection",
}

// isTransient reports whether err is worth another attempt.
func isTransient(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	for _, errno := range []error{syscall.ECONNREFUSED, syscall.ECONNRESET, syscall.EPIPE} {
		if errors.Is(err, errno) {
			return true
		}
	}

	msg := strings.ToLower(err.Error())
	for _, marker := range transientMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}

	return false
}

// retrier runs a call up to MaxAttempts times with jittered exponential backoff.
// A nil config means a single attempt.
type retrier struct {
	cfg   *config.RetryConfig
	log   *logger.Logger
	sleep func(ctx context.Context, d time.Duration) error
}

func newRetrier(cfg *config.RetryConfig, log *logger.Logger) retrier {
	return retrier{cfg: cfg, log: log, sleep: sleepCtx}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// delay returns the wait before the given attempt (1-based). The first attempt never waits.
// The result is InitialBackoff * Multiplier^(attempt-2), capped at MaxBackoff, with +/-25% jitter.
func (r retrier) delay(attempt int) time.Duration {
	if r.cfg == nil || attempt <= 1 {
		return 0
	}

	d := float64(r.cfg.InitialBackoff.Duration) * math.Pow(r.cfg.BackoffMultiplier, float64(attempt-2))
	d = math.Min(d, float64(r.cfg.MaxBackoff.Duration))
	d += d * 0.25 * (2*rand.Float64() - 1)

	return time.Duration(math.Max(d, 0))
}

func (r retrier) do(ctx context.Context, method string, fn func() error) error {
	attempts := 1
	if r.cfg != nil && r.cfg.MaxAttempts > 1 {
		attempts = r.cfg.MaxAttempts
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if attempt > 1 {
			wait := r.delay(attempt)
			r.log.Debugw("retrying rpc call", "method", method, "attempt", attempt, "backoff", wait, "error", lastErr)

			if err := r.sleep(ctx, wait); err != nil {
				return fmt.Errorf("%s: cancelled during backoff after %d attempts: %w", method, attempt-1, err)
			}
			RPCRetryInc(method)
		}

		if err := ctx.Err(); err != nil {
			return err
		}

		lastErr = fn()
		if lastErr == nil {
			return nil
		}
		if !isTransient(lastErr) {
			return lastErr
		}
	}

	if attempts == 1 {
		return lastErr
	}

	return fmt.Errorf("%s: giving up after %d attempts: %w", method, attempts, lastErr)
}
