package client

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"
)

// HTTPError carries the status code of a non-2xx response so retry decisions
// can distinguish client errors from transient ones.
type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("server returned status %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("server returned status %d", e.Status)
}

type RetryConfig struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxJitter   time.Duration
}

func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts: 3,
		BaseDelay:   time.Second,
		MaxJitter:   time.Second,
	}
}

// retryable decides whether a failed attempt is worth repeating. While the
// device is offline a repeat would fail the same way, so it is not. HTTP 4xx
// responses are permanent except 408 and 429.
func retryable(err error, online func() bool) bool {
	if online != nil && !online() {
		return false
	}
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		if httpErr.Status >= 400 && httpErr.Status < 500 {
			return httpErr.Status == 408 || httpErr.Status == 429
		}
		return true
	}
	// Transport-level failure.
	return true
}

// retryWithBackoff runs op until it succeeds or the attempt budget is spent,
// sleeping baseDelay*2^attempt plus jitter between attempts. The last error
// is returned on exhaustion.
func retryWithBackoff(ctx context.Context, cfg RetryConfig, online func() bool, op func(context.Context) error) error {
	var lastErr error
	for attempt := 0; attempt < cfg.MaxAttempts; attempt++ {
		if attempt > 0 {
			delay := cfg.BaseDelay * (1 << (attempt - 1))
			if cfg.MaxJitter > 0 {
				delay += time.Duration(rand.Int63n(int64(cfg.MaxJitter)))
			}
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}

		if lastErr = op(ctx); lastErr == nil {
			return nil
		}
		if !retryable(lastErr, online) {
			return lastErr
		}
	}
	return lastErr
}
