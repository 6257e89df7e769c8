package resilience

import (
	"context"
	"math"
	"math/rand"
	"time"

	"github.com/promptkit/bundle-pulse/internal/errors"
)

// RetryConfig holds configuration for retry behavior
type RetryConfig struct {
	MaxAttempts   int           `json:"max_attempts"`
	InitialDelay  time.Duration `json:"initial_delay"`
	MaxDelay      time.Duration `json:"max_delay"`
	BackoffFactor float64       `json:"backoff_factor"`
	JitterEnabled bool          `json:"jitter_enabled"`

	// Retryable decides whether an error is worth another attempt.
	Retryable func(error) bool `json:"-"`
}

// DefaultRetryConfig returns sensible defaults for upstream API calls
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:   3,
		InitialDelay:  100 * time.Millisecond,
		MaxDelay:      10 * time.Second,
		BackoffFactor: 2.0,
		JitterEnabled: true,
		Retryable:     errors.IsRetryableError,
	}
}

// Retry executes fn with exponential backoff until it succeeds, the
// error is not retryable, or attempts run out. Context cancellation
// stops the loop between attempts.
func Retry(ctx context.Context, config RetryConfig, fn func() error) error {
	if config.Retryable == nil {
		config.Retryable = errors.IsRetryableError
	}

	var lastErr error

	for attempt := 0; attempt < config.MaxAttempts; attempt++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		err := fn()
		if err == nil {
			return nil
		}
		lastErr = err

		if !config.Retryable(err) {
			break
		}

		if attempt == config.MaxAttempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoffDelay(config, attempt)):
		}
	}

	return lastErr
}

func backoffDelay(config RetryConfig, attempt int) time.Duration {
	delay := time.Duration(float64(config.InitialDelay) * math.Pow(config.BackoffFactor, float64(attempt)))

	if delay > config.MaxDelay {
		delay = config.MaxDelay
	}

	// Up to 10% jitter to avoid synchronized retries
	if config.JitterEnabled && delay > 10 {
		delay += time.Duration(rand.Int63n(int64(delay / 10)))
	}

	return delay
}
