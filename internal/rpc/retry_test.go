package rpc

import (
	"context"
	"errors"
	"fmt"
	"syscall"
	"testing"
	"time"

	"github.com/goran-ethernal/ChainScanner/internal/common"
	"github.com/goran-ethernal/ChainScanner/internal/logger"
	"github.com/goran-ethernal/ChainScanner/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type netErr struct{ timeout bool }

func (e netErr) Error() string   { return "net failure" }
func (e netErr) Timeout() bool   { return e.timeout }
func (e netErr) Temporary() bool { return false }

func testRetryConfig(attempts int) *config.RetryConfig {
	return &config.RetryConfig{
		MaxAttempts:       attempts,
		InitialBackoff:    common.NewDuration(100 * time.Millisecond),
		MaxBackoff:        common.NewDuration(time.Second),
		BackoffMultiplier: 2,
	}
}

// recordingRetrier replaces sleeping with recording the requested waits.
func recordingRetrier(cfg *config.RetryConfig) (retrier, *[]time.Duration) {
	var waits []time.Duration
	r := newRetrier(cfg, logger.NewNopLogger())
	r.sleep = func(ctx context.Context, d time.Duration) error {
		waits = append(waits, d)
		return ctx.Err()
	}
	return r, &waits
}

func TestIsTransient(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{err: nil, want: false},
		{err: context.Canceled, want: false},
		{err: fmt.Errorf("wrapped: %w", context.Canceled), want: false},
		{err: context.DeadlineExceeded, want: true},
		{err: netErr{timeout: true}, want: true},
		{err: netErr{}, want: true},
		{err: syscall.ECONNREFUSED, want: true},
		{err: fmt.Errorf("dial: %w", syscall.ECONNRESET), want: true},
		{err: syscall.EPIPE, want: true},
		{err: errors.New("HTTP 429 Too Many Requests"), want: true},
		{err: errors.New("Rate limit exceeded"), want: true},
		{err: errors.New("502 Bad Gateway"), want: true},
		{err: errors.New("503 Service Unavailable"), want: true},
		{err: errors.New("no available connection"), want: true},
		{err: errors.New("execution reverted"), want: false},
		{err: errors.New("invalid argument 0: hex string without 0x prefix"), want: false},
	}

	for _, tt := range tests {
		name := "nil"
		if tt.err != nil {
			name = tt.err.Error()
		}
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, isTransient(tt.err))
		})
	}
}

func TestRetrier_Delay(t *testing.T) {
	r := newRetrier(testRetryConfig(10), logger.NewNopLogger())

	require.Zero(t, r.delay(1))

	tests := []struct {
		attempt int
		base    time.Duration
	}{
		{attempt: 2, base: 100 * time.Millisecond},
		{attempt: 3, base: 200 * time.Millisecond},
		{attempt: 4, base: 400 * time.Millisecond},
		{attempt: 5, base: 800 * time.Millisecond},
		{attempt: 6, base: time.Second},
		{attempt: 9, base: time.Second},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("attempt %d", tt.attempt), func(t *testing.T) {
			for range 20 {
				d := r.delay(tt.attempt)
				require.GreaterOrEqual(t, d, tt.base*3/4)
				require.LessOrEqual(t, d, tt.base*5/4)
			}
		})
	}

	require.Zero(t, newRetrier(nil, logger.NewNopLogger()).delay(3))
}

func TestRetrier_Do(t *testing.T) {
	transient := errors.New("503 service unavailable")
	permanent := errors.New("execution reverted")

	tests := []struct {
		name      string
		cfg       *config.RetryConfig
		failures  []error
		wantCalls int
		wantWaits int
		wantErr   error
		wantMsg   string
	}{
		{
			name:      "first attempt succeeds",
			cfg:       testRetryConfig(3),
			wantCalls: 1,
		},
		{
			name:      "succeeds after transient failures",
			cfg:       testRetryConfig(3),
			failures:  []error{transient, transient},
			wantCalls: 3,
			wantWaits: 2,
		},
		{
			name:      "permanent error is not retried",
			cfg:       testRetryConfig(5),
			failures:  []error{permanent},
			wantCalls: 1,
			wantErr:   permanent,
		},
		{
			name:      "gives up after max attempts",
			cfg:       testRetryConfig(3),
			failures:  []error{transient, transient, transient, transient},
			wantCalls: 3,
			wantWaits: 2,
			wantErr:   transient,
			wantMsg:   "giving up after 3 attempts",
		},
		{
			name:      "nil config runs once",
			failures:  []error{transient},
			wantCalls: 1,
			wantErr:   transient,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, waits := recordingRetrier(tt.cfg)

			calls := 0
			err := r.do(context.Background(), "eth_test", func() error {
				calls++
				if calls <= len(tt.failures) {
					return tt.failures[calls-1]
				}
				return nil
			})

			require.Equal(t, tt.wantCalls, calls)
			require.Len(t, *waits, tt.wantWaits)
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.wantErr)
			if tt.wantMsg != "" {
				require.ErrorContains(t, err, tt.wantMsg)
			}
		})
	}
}

func TestRetrier_Do_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	r, _ := recordingRetrier(testRetryConfig(5))

	calls := 0
	err := r.do(ctx, "eth_test", func() error {
		calls++
		cancel()
		return errors.New("timeout")
	})

	require.ErrorIs(t, err, context.Canceled)
	require.ErrorContains(t, err, "cancelled during backoff after 1 attempts")
	require.Equal(t, 1, calls)

	calls = 0
	err = r.do(ctx, "eth_test", func() error {
		calls++
		return nil
	})
	require.ErrorIs(t, err, context.Canceled)
	require.Zero(t, calls)
}

func TestSleepCtx(t *testing.T) {
	require.NoError(t, sleepCtx(context.Background(), 0))
	require.NoError(t, sleepCtx(context.Background(), time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.ErrorIs(t, sleepCtx(ctx, time.Hour), context.Canceled)
}
