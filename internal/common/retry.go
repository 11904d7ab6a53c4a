package common

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/JahnaviK1725/dca-collection/internal/service"
)

// WithRetry executes an operation with configurable retry behavior.
// Only retryable errors (store contention) trigger another attempt; any
// other error is returned to the caller immediately. Each backoff delay
// carries random jitter so concurrent writers do not re-collide in lockstep.
func WithRetry(ctx context.Context, operation func() error, opts service.RetryOptions) error {
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = 5
	}
	if opts.InitialDelay <= 0 {
		opts.InitialDelay = 200 * time.Millisecond
	}
	if opts.MaxDelay <= 0 {
		opts.MaxDelay = 30 * time.Second
	}
	if opts.Multiplier <= 0 {
		opts.Multiplier = 2.0
	}

	delay := opts.InitialDelay

	for attempt := 1; attempt <= opts.MaxAttempts; attempt++ {
		err := operation()
		if err == nil {
			return nil
		}

		if !IsRetryable(err) {
			return err
		}

		if attempt == opts.MaxAttempts {
			return fmt.Errorf("%w after %d attempts: %v", ErrMaxRetries, opts.MaxAttempts, err)
		}

		wait := delay + jitter(delay)

		slog.Warn("Operation failed, retrying",
			"attempt", attempt,
			"max_attempts", opts.MaxAttempts,
			"delay", wait,
			"error", err)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
			delay = time.Duration(float64(delay) * opts.Multiplier)
			if delay > opts.MaxDelay {
				delay = opts.MaxDelay
			}
		}
	}

	return ErrMaxRetries
}

// jitter returns a random duration in [0, d/2).
func jitter(d time.Duration) time.Duration {
	if d <= 1 {
		return 0
	}
	return time.Duration(rand.Int63n(int64(d / 2)))
}
