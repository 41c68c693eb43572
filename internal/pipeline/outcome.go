package pipeline

import (
	"github.com/fraudshield/go-fraud-screening-pipeline/internal/backend"
	"github.com/fraudshield/go-fraud-screening-pipeline/internal/content"
	"github.com/fraudshield/go-fraud-screening-pipeline/internal/ratelimit"
)

// Status tags the terminal state of a screening run
type Status string

const (
	StatusAllowed             Status = "allowed"
	StatusRateLimited         Status = "rate_limited"
	StatusValidationFailed    Status = "validation_failed"
	StatusSanitizationBlocked Status = "sanitization_blocked"
	StatusMoreContextNeeded   Status = "more_context_needed"
	StatusBackendUnavailable  Status = "backend_unavailable"
)

// Outcome is the result of running a request through the screening stages.
// Result is set only when Status is StatusAllowed; every other status means
// no verdict exists and the fields explain why.
type Outcome struct {
	Status       Status
	Result       *backend.AnalysisResult
	Reason       string
	RetryAfter   int
	ViolatedTier ratelimit.Tier
	Signal       *content.ContextSignal
}
