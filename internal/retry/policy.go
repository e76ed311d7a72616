// Package retry provides a small backoff policy for transient network
// failures during link checking.
package retry

import (
	"context"
	"time"
)

// BackoffMode selects how the delay grows between attempts.
type BackoffMode string

const (
	BackoffFixed       BackoffMode = "fixed"
	BackoffLinear      BackoffMode = "linear"
	BackoffExponential BackoffMode = "exponential"
)

// Policy encapsulates retry/backoff settings. Immutable after construction.
type Policy struct {
	Mode       BackoffMode
	Initial    time.Duration
	Max        time.Duration
	MaxRetries int
}

// DefaultPolicy retries once after a short fixed delay. Link validation is
// fail-fast; retries only paper over flaky CI networking, not real outages.
func DefaultPolicy() Policy {
	return Policy{Mode: BackoffFixed, Initial: 500 * time.Millisecond, Max: 5 * time.Second, MaxRetries: 1}
}

// Delay returns the backoff delay before the given retry (1-based).
func (p Policy) Delay(retryCount int) time.Duration {
	if retryCount <= 0 {
		return 0
	}
	var d time.Duration
	switch p.Mode {
	case BackoffFixed:
		d = p.Initial
	case BackoffExponential:
		d = p.Initial * (1 << (retryCount - 1))
	default:
		d = time.Duration(retryCount) * p.Initial
	}
	if p.Max > 0 && d > p.Max {
		return p.Max
	}
	return d
}

// Do runs fn up to 1+MaxRetries times, sleeping the policy delay between
// attempts. retryable decides whether a result is worth another attempt.
// Context cancellation stops the loop with the last result.
func Do[T any](ctx context.Context, p Policy, fn func() T, retryable func(T) bool) T {
	res := fn()
	for attempt := 1; attempt <= p.MaxRetries && retryable(res); attempt++ {
		select {
		case <-ctx.Done():
			return res
		case <-time.After(p.Delay(attempt)):
		}
		res = fn()
	}
	return res
}
