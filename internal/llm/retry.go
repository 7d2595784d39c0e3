package llm

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"

	"quizforge/internal/logger"
)

// RetryProvider is a decorator that retries transient errors with
// exponential backoff and jitter. Permanent failures (schema violations,
// truncation, bad credentials surfaced as non-transient SDK errors)
// propagate immediately without consuming the attempt budget.
type RetryProvider struct {
	inner  Provider
	config RetryConfig
}

// WithRetry wraps a Provider with retry logic.
func WithRetry(p Provider, cfg RetryConfig) Provider {
	return &RetryProvider{inner: p, config: cfg}
}

func (r *RetryProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	log := logger.L()
	var lastErr error

	for attempt := 1; attempt <= r.config.MaxAttempts; attempt++ {
		resp, err := r.inner.Generate(ctx, req)
		if err == nil {
			if attempt > 1 {
				log.Info("generation succeeded after retry",
					zap.Int("attempt", attempt),
					zap.String("model", r.inner.ModelID()))
			}
			return resp, nil
		}
		lastErr = err

		if !IsTransient(err) {
			log.Warn("generation failed, not retryable",
				zap.Int("attempt", attempt),
				zap.String("model", r.inner.ModelID()),
				zap.Error(err))
			return nil, err
		}

		// Last attempt: don't sleep, just surface the error.
		if attempt == r.config.MaxAttempts {
			break
		}

		wait := r.backoff(attempt, err)
		log.Warn("generation attempt failed, retrying",
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", r.config.MaxAttempts),
			zap.Duration("backoff", wait),
			zap.Error(err))

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(wait):
		}
	}

	log.Error("generation failed, attempts exhausted",
		zap.Int("attempts", r.config.MaxAttempts),
		zap.String("model", r.inner.ModelID()),
		zap.Error(lastErr))
	return nil, lastErr
}

func (r *RetryProvider) ModelID() string {
	return r.inner.ModelID()
}

// IsTransient reports whether an error is worth retrying. Callers use it
// to distinguish an exhausted retry budget from a first-attempt failure.
func IsTransient(err error) bool {
	// Context errors are never retried.
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	// A truncated response would truncate again at the same limit.
	var maxTok *ErrMaxTokensExceeded
	if errors.As(err, &maxTok) {
		return false
	}

	// A schema violation is deterministic; retrying wastes quota.
	var invResp *ErrInvalidResponse
	if errors.As(err, &invResp) {
		return false
	}

	var rl *ErrRateLimit
	if errors.As(err, &rl) {
		return true
	}
	var unavail *ErrProviderUnavailable
	if errors.As(err, &unavail) {
		return true
	}

	// Unclassified errors (raw network failures, etc.) are treated as
	// transient.
	return true
}

// backoff computes the wait before the next attempt. attempt is 1-based.
func (r *RetryProvider) backoff(attempt int, err error) time.Duration {
	// Respect RetryAfter for rate limits.
	var rl *ErrRateLimit
	if errors.As(err, &rl) && rl.RetryAfter > 0 {
		return rl.RetryAfter
	}

	wait := float64(r.config.InitialWait) * math.Pow(r.config.Multiplier, float64(attempt-1))
	if wait > float64(r.config.MaxWait) {
		wait = float64(r.config.MaxWait)
	}

	// ±20% jitter.
	jitter := wait * 0.2 * (2*rand.Float64() - 1)
	wait += jitter

	if wait < 0 {
		wait = 0
	}
	return time.Duration(wait)
}
