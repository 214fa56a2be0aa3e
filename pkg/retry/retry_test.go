package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func fastPolicy(retries int) Policy {
	return Policy{MaxRetries: retries, InitialDelay: time.Millisecond, MaxDelay: 2 * time.Millisecond, Multiplier: 2}
}

func TestDoRetriesUntilSuccess(t *testing.T) {
	calls := 0
	err := Do(context.Background(), fastPolicy(3), func(context.Context) error {
		calls++
		if calls < 3 {
			return errors.New("flaky")
		}
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestDoStopsAfterMaxRetries(t *testing.T) {
	calls := 0
	err := Do(context.Background(), fastPolicy(3), func(context.Context) error {
		calls++
		return errors.New("down")
	})
	assert.EqualError(t, err, "down")
	assert.Equal(t, 4, calls)
}

func TestDoPermanentShortCircuits(t *testing.T) {
	calls := 0
	sentinel := errors.New("bad request")
	err := Do(context.Background(), fastPolicy(3), func(context.Context) error {
		calls++
		return Permanent(sentinel)
	})
	assert.Same(t, sentinel, err)
	assert.Equal(t, 1, calls)
}

func TestDoHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	err := Do(ctx, Policy{MaxRetries: 5, InitialDelay: time.Hour}, func(context.Context) error {
		calls++
		cancel()
		return errors.New("down")
	})
	assert.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestBackoffIsCapped(t *testing.T) {
	p := Policy{InitialDelay: 100 * time.Millisecond, MaxDelay: 300 * time.Millisecond, Multiplier: 2}
	assert.Equal(t, 100*time.Millisecond, p.Backoff(1))
	assert.Equal(t, 200*time.Millisecond, p.Backoff(2))
	assert.Equal(t, 300*time.Millisecond, p.Backoff(3))
	assert.True(t, IsPermanent(Permanent(errors.New("x"))))
	assert.Nil(t, Permanent(nil))
}
