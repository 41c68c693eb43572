// Package sanitize validates and cleans free-text input before it can reach
// any downstream prompt.
package sanitize

import (
	"fmt"
	"strings"

	"github.com/fraudshield/go-fraud-screening-pipeline/internal/config"
)

// ValidationResult reports whether input text is acceptable for processing
type ValidationResult struct {
	Valid  bool
	Reason string
}

// Validator enforces the configured length bounds on input text
type Validator struct {
	minLength int
	maxLength int
}

// NewValidator creates a validator from text configuration
func NewValidator(cfg config.TextConfig) *Validator {
	return &Validator{
		minLength: cfg.MinLength,
		maxLength: cfg.MaxLength,
	}
}

// Validate checks the text against the configured bounds. Whitespace-only
// input is treated as empty.
func (v *Validator) Validate(text string) ValidationResult {
	trimmed := strings.TrimSpace(text)

	if len(trimmed) == 0 {
		return ValidationResult{
			Valid:  false,
			Reason: "Input text is empty",
		}
	}

	if len(trimmed) < v.minLength {
		return ValidationResult{
			Valid:  false,
			Reason: fmt.Sprintf("Input text is too short (minimum %d characters)", v.minLength),
		}
	}

	if len(trimmed) > v.maxLength {
		return ValidationResult{
			Valid:  false,
			Reason: fmt.Sprintf("Input text is too long (maximum %d characters)", v.maxLength),
		}
	}

	return ValidationResult{Valid: true}
}
