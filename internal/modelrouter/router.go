package modelrouter

import (
	"context"
	"fmt"

	"github.com/fraudshield/go-fraud-screening-pipeline/internal/backend"
	"github.com/fraudshield/go-fraud-screening-pipeline/internal/config"
	"github.com/fraudshield/go-fraud-screening-pipeline/internal/errors"
	"github.com/fraudshield/go-fraud-screening-pipeline/internal/imaging"
	"github.com/fraudshield/go-fraud-screening-pipeline/internal/logger"
	"github.com/fraudshield/go-fraud-screening-pipeline/internal/reliability"
)

// Dispatcher routes scoring calls to the backend behind a retry executor
// and a circuit breaker. A backend failure never produces a risk verdict;
// callers get a nil result and an error they must surface.
type Dispatcher struct {
	scorer   backend.Scorer
	resolver *Resolver
	retrier  *reliability.RetryExecutor
	breaker  *reliability.CircuitBreaker
	modelID  string
}

// NewDispatcher wires a dispatcher around a scorer
func NewDispatcher(scorer backend.Scorer, resolver *Resolver, retryCfg config.RetryConfig, modelID string) *Dispatcher {
	return &Dispatcher{
		scorer:   scorer,
		resolver: resolver,
		retrier:  reliability.NewRetryExecutor(retryCfg),
		breaker:  reliability.NewCircuitBreaker(reliability.DefaultCircuitBreakerConfig("scoring-backend")),
		modelID:  modelID,
	}
}

// Dispatch resolves the configured model's profile and scores the assembled
// content. Transient backend failures are retried; exhaustion or a fast-fail
// from the open breaker surfaces as a backend error, never as a result.
func (d *Dispatcher) Dispatch(ctx context.Context, content string, image *imaging.ImageData) (*backend.AnalysisResult, error) {
	profile := d.resolver.ResolveProfile(d.modelID)

	req := backend.ScoreRequest{
		Model:            d.modelID,
		MaxTokens:        profile.MaxTokens,
		StructuredOutput: profile.SupportsStructuredOutput,
		NativeJSONSchema: profile.SupportsNativeJSONSchema,
		Content:          content,
		Image:            image,
	}

	var result *backend.AnalysisResult
	err := d.retrier.ExecuteWithRetry(ctx, func() error {
		return d.breaker.Execute(ctx, func() error {
			scored, scoreErr := d.scorer.Score(ctx, req)
			if scoreErr != nil {
				return scoreErr
			}
			result = scored
			return nil
		})
	})
	if err != nil {
		logger.ErrorCtx(ctx, "Scoring dispatch failed",
			"model", d.modelID,
			"provider", profile.Provider,
			"error", err)
		return nil, errors.NewBackendError(fmt.Sprintf("scoring backend unavailable: %v", err))
	}
	return result, nil
}

// ExtractText runs OCR through the same retry and breaker policy
func (d *Dispatcher) ExtractText(ctx context.Context, image imaging.ImageData) (string, error) {
	var text string
	err := d.retrier.ExecuteWithRetry(ctx, func() error {
		return d.breaker.Execute(ctx, func() error {
			extracted, ocrErr := d.scorer.ExtractText(ctx, image)
			if ocrErr != nil {
				return ocrErr
			}
			text = extracted
			return nil
		})
	})
	if err != nil {
		return "", errors.NewBackendError(fmt.Sprintf("text extraction unavailable: %v", err))
	}
	return text, nil
}

// Probe checks backend reachability without retries; health checks want the
// current state, not an eventually successful one.
func (d *Dispatcher) Probe(ctx context.Context) error {
	return d.scorer.Probe(ctx)
}

// BreakerState exposes the circuit state for health reporting
func (d *Dispatcher) BreakerState() reliability.CircuitState {
	return d.breaker.GetState()
}
