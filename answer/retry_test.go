package answer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingSleep returns a Sleep func that records requested waits without blocking.
func recordingSleep(waits *[]time.Duration) func(context.Context, time.Duration) error {
	return func(ctx context.Context, d time.Duration) error {
		*waits = append(*waits, d)
		return ctx.Err()
	}
}

func TestExponentialBackoff(t *testing.T) {
	backoff := ExponentialBackoff(time.Second)
	assert.Equal(t, time.Second, backoff(0))
	assert.Equal(t, 2*time.Second, backoff(1))
	assert.Equal(t, 4*time.Second, backoff(2))
	assert.Equal(t, time.Second, backoff(-1))
	assert.Positive(t, backoff(100))
}

func TestRetryPolicy_Success(t *testing.T) {
	var waits []time.Duration
	policy := RetryPolicy{MaxAttempts: 3, Backoff: ExponentialBackoff(time.Second), Sleep: recordingSleep(&waits)}

	attempts := 0
	err := policy.Do(context.Background(), func(attempt int) error {
		attempts++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, attempts, "should succeed on first try")
	assert.Empty(t, waits)
}

func TestRetryPolicy_EventualSuccess(t *testing.T) {
	var waits []time.Duration
	policy := RetryPolicy{MaxAttempts: 5, Backoff: ExponentialBackoff(time.Second), Sleep: recordingSleep(&waits)}

	var seen []int
	err := policy.Do(context.Background(), func(attempt int) error {
		seen = append(seen, attempt)
		if attempt < 2 {
			return errors.New("temporary error")
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2}, seen)
	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second}, waits)
}

func TestRetryPolicy_AllAttemptsFail(t *testing.T) {
	var waits []time.Duration
	policy := RetryPolicy{MaxAttempts: 3, Backoff: ExponentialBackoff(time.Second), Sleep: recordingSleep(&waits)}

	expectedErr := errors.New("persistent error")
	attempts := 0
	err := policy.Do(context.Background(), func(attempt int) error {
		attempts++
		return expectedErr
	})
	require.Error(t, err)
	assert.Equal(t, expectedErr, err, "should return the last error")
	assert.Equal(t, 3, attempts, "should attempt exactly MaxAttempts times")
	assert.Len(t, waits, 2, "no wait after the last attempt")
}

func TestRetryPolicy_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	policy := RetryPolicy{MaxAttempts: 10, Backoff: ExponentialBackoff(10 * time.Millisecond), Sleep: SleepContext}

	attempts := 0
	err := policy.Do(ctx, func(attempt int) error {
		attempts++
		if attempts == 2 {
			cancel()
		}
		return errors.New("error")
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 2, attempts, "should stop when context is canceled")
}

func TestRetryPolicy_RealBackoffTiming(t *testing.T) {
	policy := RetryPolicy{MaxAttempts: 2, Backoff: ExponentialBackoff(50 * time.Millisecond), Sleep: SleepContext}

	start := time.Now()
	err := policy.Do(context.Background(), func(attempt int) error {
		return errors.New("error")
	})
	elapsed := time.Since(start)

	require.Error(t, err)
	assert.GreaterOrEqual(t, elapsed, 50*time.Millisecond)
	assert.Less(t, elapsed, 2*time.Second)
}

func TestRetryPolicy_InvalidMaxAttempts(t *testing.T) {
	for _, n := range []int{0, -1} {
		attempts := 0
		err := RetryPolicy{MaxAttempts: n}.Do(context.Background(), func(int) error {
			attempts++
			return nil
		})
		assert.ErrorIs(t, err, ErrInvalidMaxAttempts)
		assert.Equal(t, 0, attempts, "should not attempt with maxAttempts=%d", n)
	}
}

func TestSleepContext(t *testing.T) {
	require.NoError(t, SleepContext(context.Background(), time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, SleepContext(ctx, time.Hour), context.Canceled)
}
