package reliability

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/fraudshield/go-fraud-screening-pipeline/internal/logger"
)

// CircuitState represents the state of a circuit breaker
type CircuitState int

const (
	// StateClosed - circuit is closed, requests are allowed
	StateClosed CircuitState = iota
	// StateOpen - circuit is open, requests are rejected
	StateOpen
	// StateHalfOpen - circuit is testing if the backend has recovered
	StateHalfOpen
)

func (s CircuitState) String() string {
	switch s {
	case StateClosed:
		return "CLOSED"
	case StateOpen:
		return "OPEN"
	case StateHalfOpen:
		return "HALF_OPEN"
	default:
		return "UNKNOWN"
	}
}

// CircuitBreakerConfig defines circuit breaker behavior
type CircuitBreakerConfig struct {
	Name         string
	MaxFailures  int
	ResetTimeout time.Duration
}

// DefaultCircuitBreakerConfig returns a sensible default configuration
func DefaultCircuitBreakerConfig(name string) CircuitBreakerConfig {
	return CircuitBreakerConfig{
		Name:         name,
		MaxFailures:  5,
		ResetTimeout: 30 * time.Second,
	}
}

// CircuitBreaker implements the circuit breaker pattern in front of the
// scoring backend. A tripped breaker fails fast with a transient error so
// the retry layer and the caller see it in the same taxonomy as any other
// backend outage.
type CircuitBreaker struct {
	config        CircuitBreakerConfig
	state         CircuitState
	failureCount  int
	nextRetryTime time.Time
	mutex         sync.Mutex
}

// NewCircuitBreaker creates a circuit breaker with the given configuration
func NewCircuitBreaker(config CircuitBreakerConfig) *CircuitBreaker {
	return &CircuitBreaker{
		config: config,
		state:  StateClosed,
	}
}

// Execute runs an operation through the circuit breaker
func (cb *CircuitBreaker) Execute(ctx context.Context, operation func() error) error {
	if err := cb.beforeCall(ctx); err != nil {
		return err
	}

	err := operation()
	cb.afterCall(ctx, err)
	return err
}

func (cb *CircuitBreaker) beforeCall(ctx context.Context) error {
	cb.mutex.Lock()
	defer cb.mutex.Unlock()

	switch cb.state {
	case StateClosed, StateHalfOpen:
		return nil

	case StateOpen:
		if time.Now().After(cb.nextRetryTime) {
			cb.state = StateHalfOpen
			logger.InfoCtx(ctx, "Circuit breaker transitioning to half-open",
				"circuit_name", cb.config.Name,
				"failure_count", cb.failureCount)
			return nil
		}

		logger.WarnCtx(ctx, "Circuit breaker rejecting call - circuit is open",
			"circuit_name", cb.config.Name,
			"next_retry", cb.nextRetryTime.Format(time.RFC3339))
		return MarkTransient(fmt.Errorf("circuit breaker %s is open", cb.config.Name))

	default:
		return fmt.Errorf("circuit breaker %s in unknown state", cb.config.Name)
	}
}

func (cb *CircuitBreaker) afterCall(ctx context.Context, err error) {
	cb.mutex.Lock()
	defer cb.mutex.Unlock()

	if err == nil {
		if cb.state == StateHalfOpen {
			cb.state = StateClosed
			logger.InfoCtx(ctx, "Circuit breaker closed",
				"circuit_name", cb.config.Name)
		}
		cb.failureCount = 0
		return
	}

	// Only transient failures count against the breaker; a validation error
	// says nothing about backend health
	if !IsTransient(err) {
		return
	}

	cb.failureCount++

	if cb.state == StateHalfOpen || cb.failureCount >= cb.config.MaxFailures {
		cb.state = StateOpen
		cb.nextRetryTime = time.Now().Add(cb.config.ResetTimeout)
		logger.ErrorCtx(ctx, "Circuit breaker opened",
			"circuit_name", cb.config.Name,
			"failure_count", cb.failureCount,
			"next_retry", cb.nextRetryTime.Format(time.RFC3339))
	}
}

// GetState returns the current state of the circuit breaker
func (cb *CircuitBreaker) GetState() CircuitState {
	cb.mutex.Lock()
	defer cb.mutex.Unlock()
	return cb.state
}

// Reset resets the circuit breaker to its initial state
func (cb *CircuitBreaker) Reset() {
	cb.mutex.Lock()
	defer cb.mutex.Unlock()
	cb.state = StateClosed
	cb.failureCount = 0
	cb.nextRetryTime = time.Time{}
}
