package compose

import (
	"context"
	"log/slog"
	"time"
)

const (
	defaultRetries    = 3
	defaultRetryDelay = time.Second
)

// RetryOption configures Retry.
type RetryOption func(*retryConfig)

type retryConfig struct {
	retries int
	delay   time.Duration
	logger  *slog.Logger
}

// WithRetries sets how many times a failed attempt is repeated. Negative
// values are treated as zero.
func WithRetries(retries int) RetryOption {
	return func(c *retryConfig) {
		c.retries = max(retries, 0)
	}
}

// WithDelay sets the fixed pause between attempts.
func WithDelay(delay time.Duration) RetryOption {
	return func(c *retryConfig) {
		c.delay = max(delay, 0)
	}
}

// WithRetryLogger reports every failed attempt that will be retried.
func WithRetryLogger(logger *slog.Logger) RetryOption {
	return func(c *retryConfig) {
		c.logger = logger
	}
}

// Retry invokes fn until it succeeds or the retries are used up. The
// count defaults to three retries (four attempts) separated by a fixed
// one second delay. When every attempt fails the error from the last one
// is returned as is.
func Retry[T any](ctx context.Context, fn Task[T], opts ...RetryOption) (T, error) {
	cfg := retryConfig{retries: defaultRetries, delay: defaultRetryDelay}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	for attempt := 1; ; attempt++ {
		value, err := fn(ctx)
		if err == nil {
			return value, nil
		}
		if cfg.retries <= 0 {
			return value, err
		}
		cfg.retries--

		if cfg.logger != nil {
			cfg.logger.WarnContext(ctx, "attempt failed, retrying",
				"attempt", attempt, "remaining", cfg.retries, "delay", cfg.delay, "error", err)
		}

		if err := wait(ctx, cfg.delay); err != nil {
			var zero T
			return zero, err
		}
	}
}

func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
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
