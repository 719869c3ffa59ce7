package ratelimit

import (
	"context"
	"time"
)

// Result is the outcome of one rate-limit check.
type Result struct {
	Allowed bool

	// Limit and Remaining feed the RateLimit-* response headers.
	Limit     int
	Remaining int

	// RetryAfter is the policy window in seconds; fixed windows report the
	// full window rather than the time left in it.
	RetryAfter int

	// Reset is the number of seconds until the current window ends.
	Reset int
}

// Limiter applies one Policy against one Store.
type Limiter struct {
	policy Policy
	store  Store
}

// NewLimiter creates a Limiter for the given policy and bucket store.
func NewLimiter(policy Policy, store Store) *Limiter {
	return &Limiter{policy: policy, store: store}
}

// Policy returns the limiter's policy.
func (l *Limiter) Policy() Policy {
	return l.policy
}

func (l *Limiter) key(clientKey string) string {
	return "ratelimit:" + l.policy.Name + ":" + clientKey
}

// Check counts one request for clientKey and reports whether it fits the
// budget. The request is counted even when denied; denied requests still
// burn quota for the rest of the window.
func (l *Limiter) Check(ctx context.Context, clientKey string) (Result, error) {
	count, resetAt, err := l.store.Increment(ctx, l.key(clientKey), l.policy.Window)
	if err != nil {
		return Result{}, err
	}

	remaining := l.policy.Max - int(count)
	if remaining < 0 {
		remaining = 0
	}

	reset := int(time.Until(resetAt).Round(time.Second) / time.Second)
	if reset < 0 {
		reset = 0
	}

	return Result{
		Allowed:    int(count) <= l.policy.Max,
		Limit:      l.policy.Max,
		Remaining:  remaining,
		RetryAfter: int(l.policy.Window / time.Second),
		Reset:      reset,
	}, nil
}

// Forgive un-counts one previously checked request. Only meaningful for
// policies with SkipSuccessful set.
func (l *Limiter) Forgive(ctx context.Context, clientKey string) error {
	return l.store.Decrement(ctx, l.key(clientKey))
}
