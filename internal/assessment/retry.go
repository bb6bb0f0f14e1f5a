package assessment

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"time"
)

// RetryConfig controls the backoff behavior of the retry decorator.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultRetryConfig returns the standard retry policy for interactive use.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts: 3,
		InitialWait: 500 * time.Millisecond,
		MaxWait:     5 * time.Second,
		Multiplier:  2.0,
	}
}

// RetryClient is a decorator that retries transient errors with
// exponential backoff and jitter. Authorization, payload, and version
// errors are never retried; they need user action, not patience.
type RetryClient struct {
	inner  Client
	config RetryConfig
}

var _ Client = (*RetryClient)(nil)

// WithRetry wraps a Client with retry logic.
func WithRetry(c Client, cfg RetryConfig) *RetryClient {
	return &RetryClient{inner: c, config: cfg}
}

func (r *RetryClient) Login(ctx context.Context, username, password string) error {
	return r.retry(ctx, func() error {
		return r.inner.Login(ctx, username, password)
	})
}

func (r *RetryClient) Banks(ctx context.Context) ([]ItemBank, error) {
	var banks []ItemBank
	err := r.retry(ctx, func() error {
		var err error
		banks, err = r.inner.Banks(ctx)
		return err
	})
	return banks, err
}

func (r *RetryClient) Start(ctx context.Context, itemBank string) (*SessionState, error) {
	var state *SessionState
	err := r.retry(ctx, func() error {
		var err error
		state, err = r.inner.Start(ctx, itemBank)
		return err
	})
	return state, err
}

// Submit is deliberately not retried beyond rate limits: replaying an
// answer after an ambiguous network failure could double-submit it. The
// flow layer's sequence check catches stale replies instead.
func (r *RetryClient) Submit(ctx context.Context, sessionID, questionID, option string) (*SessionState, error) {
	state, err := r.inner.Submit(ctx, sessionID, questionID, option)
	var rl *ErrRateLimit
	if errors.As(err, &rl) {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(r.waitFor(rl)):
		}
		return r.inner.Submit(ctx, sessionID, questionID, option)
	}
	return state, err
}

func (r *RetryClient) Results(ctx context.Context, sessionID string) (*Results, error) {
	var results *Results
	err := r.retry(ctx, func() error {
		var err error
		results, err = r.inner.Results(ctx, sessionID)
		return err
	})
	return results, err
}

func (r *RetryClient) PeerSessions(ctx context.Context, itemBank string) ([]Session, error) {
	var sessions []Session
	err := r.retry(ctx, func() error {
		var err error
		sessions, err = r.inner.PeerSessions(ctx, itemBank)
		return err
	})
	return sessions, err
}

func (r *RetryClient) retry(ctx context.Context, op func() error) error {
	var lastErr error

	for attempt := range r.config.MaxAttempts {
		err := op()
		if err == nil {
			return nil
		}
		lastErr = err

		if !shouldRetry(err) {
			return err
		}

		// Last attempt — don't sleep, just return the error.
		if attempt == r.config.MaxAttempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(r.backoff(attempt, err)):
		}
	}

	return lastErr
}

// shouldRetry determines if an error is transient.
func shouldRetry(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var unauthorized *ErrUnauthorized
	if errors.As(err, &unauthorized) {
		return false
	}
	var payload *ErrInvalidPayload
	if errors.As(err, &payload) {
		return false
	}
	var version *ErrVersionMismatch
	if errors.As(err, &version) {
		return false
	}

	// Rate limits, unavailability, and plain network errors are transient.
	return true
}

// backoff computes the wait duration for the given attempt.
func (r *RetryClient) backoff(attempt int, err error) time.Duration {
	var rl *ErrRateLimit
	if errors.As(err, &rl) && rl.RetryAfter > 0 {
		return rl.RetryAfter
	}

	wait := float64(r.config.InitialWait) * math.Pow(r.config.Multiplier, float64(attempt))
	if wait > float64(r.config.MaxWait) {
		wait = float64(r.config.MaxWait)
	}

	// Add ±20% jitter.
	jitter := wait * 0.2 * (2*rand.Float64() - 1)
	wait += jitter

	if wait < 0 {
		wait = 0
	}
	return time.Duration(wait)
}

func (r *RetryClient) waitFor(rl *ErrRateLimit) time.Duration {
	if rl.RetryAfter > 0 {
		return rl.RetryAfter
	}
	return r.config.InitialWait
}
