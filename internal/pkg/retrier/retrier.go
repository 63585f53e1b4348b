// Package retrier runs an operation again with exponential backoff until it succeeds,
// the elapsed time budget runs out or the context is done.
package retrier

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// ShouldRetryFunc reports whether err is worth another attempt.
type ShouldRetryFunc func(error) bool

type Config struct {
	InitialInterval time.Duration
	MaxInterval     time.Duration
	MaxElapsedTime  time.Duration
	Randomization   float64
	Multiplier      float64

	// nil retries every error.
	ShouldRetry ShouldRetryFunc
}

// DefaultConfig suits a broker publish: a handful of attempts within a few seconds,
// short enough to finish inside one relay tick.
func DefaultConfig() Config {
	return Config{
		InitialInterval: 100 * time.Millisecond,
		MaxInterval:     time.Second,
		MaxElapsedTime:  3 * time.Second,
		Randomization:   0.5,
		Multiplier:      2,
	}
}

type BackoffRetrier struct {
	config Config
}

func New(config Config) *BackoffRetrier {
	return &BackoffRetrier{config: config}
}

func (r *BackoffRetrier) ExecuteWithContext(ctx context.Context, fn func(context.Context) error) error {
	b := backoff.NewExponentialBackOff(
		backoff.WithInitialInterval(r.config.InitialInterval),
		backoff.WithMaxInterval(r.config.MaxInterval),
		backoff.WithMaxElapsedTime(r.config.MaxElapsedTime),
		backoff.WithRandomizationFactor(r.config.Randomization),
		backoff.WithMultiplier(r.config.Multiplier),
	)

	operation := func() error {
		err := fn(ctx)
		if err != nil && r.config.ShouldRetry != nil && !r.config.ShouldRetry(err) {
			return backoff.Permanent(err)
		}
		return err
	}

	return backoff.Retry(operation, backoff.WithContext(b, ctx))
}
