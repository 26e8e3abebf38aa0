package retry

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/rs/zerolog/log"
)

type Config struct {
	MaxRetries int
	BaseDelay  time.Duration
	MaxDelay   time.Duration
	Timeout    time.Duration
}

// WithGuard runs operation under a per-attempt timeout, retrying up to
// MaxRetries times with exponential backoff. MaxRetries of 0 makes this a
// pure timeout guard: exactly one attempt, errors passed through.
func WithGuard[T any](ctx context.Context, config Config, operation func(context.Context) (T, error)) (T, error) {
	var zero T
	var lastErr error

	for attempt := 0; attempt <= config.MaxRetries; attempt++ {
		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		default:
		}

		opCtx, cancel := context.WithTimeout(ctx, config.Timeout)
		result, err := operation(opCtx)
		cancel()

		if err == nil {
			return result, nil
		}
		lastErr = err

		if attempt < config.MaxRetries {
			delay := backoffDelay(attempt, config.BaseDelay, config.MaxDelay)
			log.Debug().
				Err(err).
				Dur("delay", delay).
				Int("next_attempt", attempt+2).
				Msg("Operation failed, retrying after delay")

			select {
			case <-ctx.Done():
				return zero, ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	if config.MaxRetries == 0 {
		return zero, lastErr
	}
	return zero, fmt.Errorf("operation failed after %d attempts: %w", config.MaxRetries+1, lastErr)
}

func backoffDelay(attempt int, baseDelay, maxDelay time.Duration) time.Duration {
	// Cap attempt at 30 to prevent overflow
	safeAttempt := min(attempt, 30)
	delay := time.Duration(1<<safeAttempt) * baseDelay
	if delay > maxDelay {
		delay = maxDelay
	}

	// Jitter between 0.5x and 1.5x to avoid thundering herd
	delay = time.Duration(float64(delay) * (0.5 + rand.Float64()))
	if delay > maxDelay {
		delay = maxDelay
	}

	return delay
}
