// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package answer

import (
	"context"
	"time"
)

// RetryPolicy bounds the attempts made for one answer.
type RetryPolicy struct {
	// MaxAttempts is the total number of calls, including the first.
	MaxAttempts int

	// Backoff returns the wait after failed attempt n (0-based).
	Backoff func(attempt int) time.Duration

	// Sleep waits for d or until ctx is done. Tests replace it to observe waits.
	Sleep func(ctx context.Context, d time.Duration) error
}

// DefaultRetryPolicy makes two attempts, waiting one second between them.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: 2,
		Backoff:     ExponentialBackoff(time.Second),
		Sleep:       SleepContext,
	}
}

// ExponentialBackoff returns base * 2^attempt.
func ExponentialBackoff(base time.Duration) func(attempt int) time.Duration {
	return func(attempt int) time.Duration {
		if attempt < 0 {
			attempt = 0
		}
		// Cap the shift so the duration cannot overflow
		if attempt > 30 {
			attempt = 30
		}
		return base << attempt
	}
}

// SleepContext waits for d, returning early with ctx.Err() if ctx is done.
func SleepContext(ctx context.Context, d time.Duration) error {
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

// Validate checks that the policy can run.
func (p RetryPolicy) Validate() error {
	if p.MaxAttempts <= 0 {
		return ErrInvalidMaxAttempts
	}
	return nil
}

// Do runs operation until it succeeds or MaxAttempts is reached, waiting
// Backoff(n) after each failed attempt except the last. The attempt number
// passed to operation is 0-based.
// Returns the error from the last attempt if all attempts fail, or ctx.Err()
// if the context ends first.
func (p RetryPolicy) Do(ctx context.Context, operation func(attempt int) error) error {
	if err := p.Validate(); err != nil {
		return err
	}

	backoff := p.Backoff
	if backoff == nil {
		backoff = ExponentialBackoff(time.Second)
	}
	sleep := p.Sleep
	if sleep == nil {
		sleep = SleepContext
	}

	var lastErr error
	for attempt := 0; attempt < p.MaxAttempts; attempt++ {
		// Check context before attempting
		if err := ctx.Err(); err != nil {
			return err
		}

		lastErr = operation(attempt)
		if lastErr == nil {
			return nil
		}

		// Don't sleep after the last attempt
		if attempt == p.MaxAttempts-1 {
			break
		}

		if err := sleep(ctx, backoff(attempt)); err != nil {
			return err
		}
	}

	return lastErr
}
