// Package reliability provides retry and circuit-breaking around the scoring
// backend.
package reliability

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net"
	"strings"
	"time"

	"github.com/fraudshield/go-fraud-screening-pipeline/internal/config"
	"github.com/fraudshield/go-fraud-screening-pipeline/internal/logger"
)

// TransientError marks an error as eligible for retry. Backend callers wrap
// timeouts and 5xx-class failures in it; validation and auth failures are
// never wrapped and therefore never retried.
type TransientError struct {
	Err error
}

func (e *TransientError) Error() string {
	return e.Err.Error()
}

func (e *TransientError) Unwrap() error {
	return e.Err
}

// MarkTransient wraps an error as transient
func MarkTransient(err error) error {
	if err == nil {
		return nil
	}
	return &TransientError{Err: err}
}

// retryablePatterns covers network failures that surface as plain errors
// without a usable type
var retryablePatterns = []string{
	"connection refused",
	"connection reset",
	"timeout",
	"temporary failure",
	"network is unreachable",
	"no such host",
	"i/o timeout",
	"broken pipe",
}

// IsTransient reports whether an error should trigger a retry
func IsTransient(err error) bool {
	if err == nil {
		return false
	}

	var transient *TransientError
	if errors.As(err, &transient) {
		return true
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	errStr := strings.ToLower(err.Error())
	for _, pattern := range retryablePatterns {
		if strings.Contains(errStr, pattern) {
			return true
		}
	}

	return false
}

// RetryExecutor handles retry logic with exponential backoff
type RetryExecutor struct {
	config config.RetryConfig
}

// NewRetryExecutor creates a retry executor with the given configuration
func NewRetryExecutor(cfg config.RetryConfig) *RetryExecutor {
	return &RetryExecutor{config: cfg}
}

// ExecuteWithRetry executes an operation, retrying transient failures up to
// the configured attempt ceiling with exponential backoff. Non-transient
// failures return immediately. Exhausting retries returns the last error
// wrapped with the attempt count.
func (r *RetryExecutor) ExecuteWithRetry(ctx context.Context, operation func() error) error {
	var lastErr error

	for attempt := 1; attempt <= r.config.MaxAttempts; attempt++ {
		err := operation()
		if err == nil {
			if attempt > 1 {
				logger.InfoCtx(ctx, "Operation succeeded after retry",
					"successful_attempt", attempt)
			}
			return nil
		}

		lastErr = err

		if !IsTransient(err) {
			logger.ErrorCtx(ctx, "Non-retryable error encountered",
				"attempt", attempt,
				"error", err)
			return err
		}

		if attempt >= r.config.MaxAttempts {
			logger.ErrorCtx(ctx, "Max retry attempts reached",
				"max_attempts", r.config.MaxAttempts,
				"error", err)
			break
		}

		delay := r.calculateBackoff(attempt)

		logger.WarnCtx(ctx, "Operation failed, retrying",
			"attempt", attempt,
			"max_attempts", r.config.MaxAttempts,
			"delay_ms", delay.Milliseconds(),
			"error", err)

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			logger.ErrorCtx(ctx, "Retry cancelled",
				"attempt", attempt,
				"error", ctx.Err())
			return ctx.Err()
		}
	}

	return fmt.Errorf("operation failed after %d attempts: %w", r.config.MaxAttempts, lastErr)
}

// calculateBackoff returns the delay before the next attempt:
// initialDelay * backoffFactor^(attempt-1), capped at MaxDelay
func (r *RetryExecutor) calculateBackoff(attempt int) time.Duration {
	delay := float64(r.config.InitialDelay) * math.Pow(r.config.BackoffFactor, float64(attempt-1))
	if time.Duration(delay) > r.config.MaxDelay {
		delay = float64(r.config.MaxDelay)
	}
	return time.Duration(delay)
}
