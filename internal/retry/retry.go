package retry

import (
	"context"
	"errors"
	"time"
)

// Policy describes a bounded retry loop: how many attempts to make and how
// long to wait between them. The zero value performs a single attempt.
type Policy struct {
	MaxAttempts int
	Backoff     func(attempt int) time.Duration
}

// Linear returns a backoff function that waits attempt*step between tries.
func Linear(step time.Duration) func(int) time.Duration {
	return func(attempt int) time.Duration {
		return time.Duration(attempt) * step
	}
}

type permanentError struct {
	err error
}

func (p *permanentError) Error() string { return p.err.Error() }
func (p *permanentError) Unwrap() error { return p.err }

// Permanent marks an error as non-retryable; Do stops immediately and
// returns the wrapped error.
func Permanent(err error) error {
	return &permanentError{err: err}
}

// Do runs op until it succeeds, the attempt budget is spent, op returns a
// Permanent error, or ctx is done. The last error is returned unwrapped.
func (p Policy) Do(ctx context.Context, op func() error) error {
	attempts := p.MaxAttempts
	if attempts <= 0 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		err := op()
		if err == nil {
			return nil
		}

		var perm *permanentError
		if errors.As(err, &perm) {
			return perm.err
		}

		lastErr = err
		if attempt == attempts {
			break
		}

		if p.Backoff != nil {
			timer := time.NewTimer(p.Backoff(attempt))
			select {
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			case <-timer.C:
			}
		}
	}
	return lastErr
}
