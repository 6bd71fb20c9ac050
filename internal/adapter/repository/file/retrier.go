package file

import (
	"context"
	"errors"
	"syscall"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"
)

// Retrier retries filesystem operations that fail with transient errors.
type Retrier struct {
	maxRetries      int
	initialInterval time.Duration
	maxInterval     time.Duration
	maxElapsedTime  time.Duration
	logger          zerolog.Logger
}

// NewRetrier creates a retrier that makes at most maxRetries extra attempts,
// starting interval apart and backing off exponentially.
func NewRetrier(maxRetries int, interval time.Duration, logger zerolog.Logger) *Retrier {
	return &Retrier{
		maxRetries:      maxRetries,
		initialInterval: interval,
		maxInterval:     1 * time.Second,
		maxElapsedTime:  10 * time.Second,
		logger:          logger,
	}
}

// Retry executes an operation with exponential backoff on retryable errors.
func (r *Retrier) Retry(ctx context.Context, operation func() error) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = r.initialInterval
	b.MaxInterval = r.maxInterval
	b.MaxElapsedTime = r.maxElapsedTime

	retryCount := 0

	return backoff.Retry(func() error {
		err := operation()
		if err == nil {
			return nil
		}

		if !isRetryableError(err) {
			return backoff.Permanent(err)
		}

		retryCount++
		if retryCount > r.maxRetries {
			return backoff.Permanent(err)
		}

		r.logger.Warn().
			Err(err).
			Int("retry", retryCount).
			Msg("transient filesystem error, retrying")

		return err
	}, backoff.WithContext(b, ctx))
}

// isRetryableError reports whether err is worth another attempt: the file is
// held open by another process or the call was interrupted.
func isRetryableError(err error) bool {
	return errors.Is(err, syscall.EBUSY) ||
		errors.Is(err, syscall.EAGAIN) ||
		errors.Is(err, syscall.ETXTBSY) ||
		errors.Is(err, syscall.EINTR)
}
