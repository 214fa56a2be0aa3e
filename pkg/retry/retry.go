// Package retry runs operations with capped exponential backoff.
package retry

import (
	"context"
	"errors"
	"math"
	"time"
)

type permanentError struct {
	err error
}

func (e *permanentError) Error() string { return e.err.Error() }
func (e *permanentError) Unwrap() error { return e.err }

// Permanent marks err as not worth retrying.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &permanentError{err: err}
}

// IsPermanent reports whether err was marked with Permanent.
func IsPermanent(err error) bool {
	var p *permanentError
	return errors.As(err, &p)
}

// Policy describes how many times and how patiently to retry.
type Policy struct {
	MaxRetries   int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}

// DefaultPolicy retries three times starting at 200ms.
func DefaultPolicy() Policy {
	return Policy{MaxRetries: 3, InitialDelay: 200 * time.Millisecond, MaxDelay: 5 * time.Second, Multiplier: 2}
}

// Backoff returns the delay before retry number attempt (1-based).
func (p Policy) Backoff(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	mult := p.Multiplier
	if mult < 1 {
		mult = 2
	}
	delay := float64(p.InitialDelay) * math.Pow(mult, float64(attempt-1))
	if p.MaxDelay > 0 && delay > float64(p.MaxDelay) {
		delay = float64(p.MaxDelay)
	}
	return time.Duration(delay)
}

// Do calls op until it succeeds, returns a permanent error, the retries are
// exhausted or ctx is done. The last error is returned with any permanent
// marker removed.
func Do(ctx context.Context, p Policy, op func(ctx context.Context) error) error {
	var err error
	for attempt := 0; ; attempt++ {
		err = op(ctx)
		if err == nil {
			return nil
		}
		var perm *permanentError
		if errors.As(err, &perm) {
			return perm.err
		}
		if attempt >= p.MaxRetries {
			return err
		}
		timer := time.NewTimer(p.Backoff(attempt + 1))
		select {
		case <-ctx.Done():
			timer.Stop()
			return err
		case <-timer.C:
		}
	}
}
