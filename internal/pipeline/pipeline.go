// Package pipeline runs screening requests through admission, content
// hygiene, and backend scoring in a fixed stage order. Each stage either
// passes the request on or terminates the run with a non-allowed outcome.
package pipeline

import (
	"context"
	"time"

	"github.com/fraudshield/go-fraud-screening-pipeline/internal/backend"
	"github.com/fraudshield/go-fraud-screening-pipeline/internal/content"
	"github.com/fraudshield/go-fraud-screening-pipeline/internal/imaging"
	"github.com/fraudshield/go-fraud-screening-pipeline/internal/logger"
	"github.com/fraudshield/go-fraud-screening-pipeline/internal/ratelimit"
	"github.com/fraudshield/go-fraud-screening-pipeline/internal/sanitize"
)

// Dispatcher abstracts the model-routing layer for the pipeline
type Dispatcher interface {
	Dispatch(ctx context.Context, content string, image *imaging.ImageData) (*backend.AnalysisResult, error)
	ExtractText(ctx context.Context, image imaging.ImageData) (string, error)
}

// Auditor persists screening outcomes for later review. Implementations
// must not fail the request; persistence errors are the auditor's problem.
type Auditor interface {
	Record(ctx context.Context, entry AuditEntry)
}

// AuditEntry captures what a screening run decided and why
type AuditEntry struct {
	Key        string
	Status     Status
	Reason     string
	RiskScore  int
	RiskLevel  string
	HadImage   bool
	OccurredAt time.Time
}

// Request is a screening job after admission-key resolution
type Request struct {
	Key   string
	Text  string
	Image *imaging.ImageData
}

// Screener orchestrates the screening stages
type Screener struct {
	limiter    *ratelimit.Limiter
	validator  *sanitize.Validator
	sanitizer  *sanitize.Sanitizer
	normalizer *imaging.Normalizer
	heuristic  *content.Heuristic
	dispatcher Dispatcher
	auditor    Auditor
	now        func() time.Time
}

// NewScreener wires a screener from its stages. The auditor may be nil.
func NewScreener(
	limiter *ratelimit.Limiter,
	validator *sanitize.Validator,
	sanitizer *sanitize.Sanitizer,
	normalizer *imaging.Normalizer,
	heuristic *content.Heuristic,
	dispatcher Dispatcher,
	auditor Auditor,
) *Screener {
	return &Screener{
		limiter:    limiter,
		validator:  validator,
		sanitizer:  sanitizer,
		normalizer: normalizer,
		heuristic:  heuristic,
		dispatcher: dispatcher,
		auditor:    auditor,
		now:        time.Now,
	}
}

// Screen runs a request through every stage and returns the terminal
// outcome. The error return covers orchestration faults only; expected
// rejections (rate limits, blocked content) come back as outcomes.
func (s *Screener) Screen(ctx context.Context, req Request) (Outcome, error) {
	outcome := s.screen(ctx, req)
	s.audit(ctx, req, outcome)
	return outcome, nil
}

func (s *Screener) screen(ctx context.Context, req Request) Outcome {
	decision, err := s.limiter.CheckLimit(ctx, req.Key)
	if err != nil {
		// Counter store trouble must not take the service down with it;
		// admit and let the limiter catch up once the store recovers.
		logger.WarnCtx(ctx, "Rate limit check failed, admitting request",
			"key", req.Key,
			"error", err)
	} else if !decision.Allowed {
		return Outcome{
			Status:       StatusRateLimited,
			Reason:       decision.ViolatedTier.Message(),
			RetryAfter:   decision.RetryAfter(s.now()),
			ViolatedTier: decision.ViolatedTier,
		}
	}

	validation := s.validator.Validate(req.Text)
	if !validation.Valid {
		return Outcome{Status: StatusValidationFailed, Reason: validation.Reason}
	}

	sanitized := s.sanitizer.Sanitize(req.Text)
	if sanitized.Blocked {
		return Outcome{Status: StatusSanitizationBlocked, Reason: sanitized.Reason}
	}

	ocrText := ""
	var normalized *imaging.ImageData
	if req.Image != nil {
		if !s.normalizer.IsAcceptedUpload(req.Image.MimeType) {
			return Outcome{
				Status: StatusValidationFailed,
				Reason: "unsupported image type: " + req.Image.MimeType,
			}
		}
		if sizeErr := s.normalizer.ValidateSize(*req.Image); sizeErr != nil {
			return Outcome{Status: StatusValidationFailed, Reason: sizeErr.Error()}
		}

		img := s.normalizer.Normalize(ctx, *req.Image)
		normalized = &img

		extracted, ocrErr := s.dispatcher.ExtractText(ctx, img)
		if ocrErr != nil {
			return Outcome{Status: StatusBackendUnavailable, Reason: ocrErr.Error()}
		}

		// Extracted text gets the same hygiene as typed text; an image is
		// just another way to smuggle instructions in.
		ocrSanitized := s.sanitizer.Sanitize(extracted)
		if ocrSanitized.Blocked {
			return Outcome{Status: StatusSanitizationBlocked, Reason: ocrSanitized.Reason}
		}
		ocrText = ocrSanitized.SanitizedText
	}

	assembled := content.Assemble(sanitized.SanitizedText, ocrText)

	signal := s.heuristic.Score(assembled)
	if signal.HasMinimalContext {
		return Outcome{
			Status: StatusMoreContextNeeded,
			Reason: "message contains links but too little surrounding context to assess",
			Signal: &signal,
		}
	}

	result, dispatchErr := s.dispatcher.Dispatch(ctx, assembled, normalized)
	if dispatchErr != nil {
		return Outcome{Status: StatusBackendUnavailable, Reason: dispatchErr.Error()}
	}

	return Outcome{Status: StatusAllowed, Result: result, Signal: &signal}
}

func (s *Screener) audit(ctx context.Context, req Request, outcome Outcome) {
	if s.auditor == nil {
		return
	}
	entry := AuditEntry{
		Key:        req.Key,
		Status:     outcome.Status,
		Reason:     outcome.Reason,
		HadImage:   req.Image != nil,
		OccurredAt: s.now(),
	}
	if outcome.Result != nil {
		entry.RiskScore = outcome.Result.RiskScore
		entry.RiskLevel = string(outcome.Result.RiskLevel)
	}
	s.auditor.Record(ctx, entry)
}
