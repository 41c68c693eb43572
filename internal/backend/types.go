// Package backend talks to the risk-scoring service and its OCR capability.
package backend

import (
	"context"

	"github.com/fraudshield/go-fraud-screening-pipeline/internal/imaging"
)

// RiskLevel classifies a risk score
type RiskLevel string

const (
	RiskLevelLow    RiskLevel = "low"
	RiskLevelMedium RiskLevel = "medium"
	RiskLevelHigh   RiskLevel = "high"
)

// Trigger is one detected risk indicator
type Trigger struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	Severity    string `json:"severity,omitempty"`
}

// AnalysisResult is the verdict produced by the scoring backend. A result
// only exists for a call that succeeded; backend failure is reported as an
// error, never as a result with a low risk level.
type AnalysisResult struct {
	RiskScore       int       `json:"riskScore"`
	RiskLevel       RiskLevel `json:"riskLevel"`
	Triggers        []Trigger `json:"triggers"`
	Recommendations []string  `json:"recommendations"`
}

// ScoreRequest carries one scoring call's payload and the resolved request
// shape for the target model
type ScoreRequest struct {
	Model            string
	MaxTokens        int
	StructuredOutput bool
	NativeJSONSchema bool
	Content          string
	Image            *imaging.ImageData
}

// Scorer is the backend capability surface the pipeline depends on
type Scorer interface {
	// Score submits assembled content for risk analysis
	Score(ctx context.Context, req ScoreRequest) (*AnalysisResult, error)

	// ExtractText runs OCR over an image and returns the recovered text
	ExtractText(ctx context.Context, img imaging.ImageData) (string, error)

	// Probe performs a lightweight capability check against the backend
	Probe(ctx context.Context) error
}
