package httputil

import (
	"context"
	"errors"
	"time"
)

// RetryableError marks a failure as transient. Remote document fetches
// wrap network errors and 5xx responses with it; anything else (a 404,
// a parse failure) comes back unwrapped and fails the operation on the
// first attempt.
type RetryableError struct{ Err error }

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// Retry runs fn until it succeeds, fails permanently, or the attempt
// budget is spent. Only errors wrapped in [RetryableError] count as
// transient. The wait between attempts starts at delay and doubles
// each round; a cancelled context cuts the wait short and returns
// ctx.Err().
func Retry(ctx context.Context, attempts int, delay time.Duration, fn func() error) error {
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; ; attempt++ {
		lastErr = fn()
		if lastErr == nil {
			return nil
		}
		if !errors.As(lastErr, new(*RetryableError)) {
			return lastErr
		}
		if attempt >= attempts {
			return lastErr
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
	}
}

// RetryWithBackoff applies the client's standard policy: three
// attempts, half a second before the first retry.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	return Retry(ctx, 3, 500*time.Millisecond, fn)
}
