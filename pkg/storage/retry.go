package storage

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v5"
)

// RetryPolicy is an exponential schedule without jitter.
type RetryPolicy struct {
	MaxTries        uint
	InitialInterval time.Duration
	Multiplier      float64
}

// DefaultRetryPolicy waits 200ms, 400ms, 800ms and 1.6s between five tries.
var DefaultRetryPolicy = RetryPolicy{
	MaxTries:        5,
	InitialInterval: 200 * time.Millisecond,
	Multiplier:      2,
}

func (p RetryPolicy) backOff() *backoff.ExponentialBackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = p.InitialInterval
	b.Multiplier = p.Multiplier
	b.RandomizationFactor = 0
	return b
}

func retry[T any](ctx context.Context, policy RetryPolicy, op func() (T, error)) (T, error) {
	return backoff.Retry[T](ctx, op,
		backoff.WithBackOff(policy.backOff()),
		backoff.WithMaxTries(policy.MaxTries),
	)
}
