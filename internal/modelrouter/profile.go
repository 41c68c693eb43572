// Package modelrouter resolves which backend model handles a scoring call
// and with what request shape, and governs the call's retry policy.
package modelrouter

import (
	"strings"

	"github.com/fraudshield/go-fraud-screening-pipeline/internal/config"
)

// Token budgets. Models signaling a newer generation get the elevated budget.
const (
	DefaultMaxTokens  = 1024
	ElevatedMaxTokens = 4096
)

// nextGenMarkers identify model names that warrant the elevated token budget.
// This substring inference is a fallback for ids the capability table does
// not cover; known ids should be listed in the table instead.
var nextGenMarkers = []string{
	"gpt-5",
	"gpt-4.1",
	"o3",
	"o4",
	"gemini-2",
	"claude-4",
}

// structuredOutputProviders lists providers whose models are assumed to
// support structured output when the capability table has no entry
var structuredOutputProviders = map[string]bool{
	"openai":    true,
	"google":    true,
	"anthropic": true,
}

// ModelProfile describes the request shape for a backend model
type ModelProfile struct {
	Provider                 string `json:"provider"`
	Name                     string `json:"name"`
	SupportsStructuredOutput bool   `json:"supportsStructuredOutput"`
	SupportsNativeJSONSchema bool   `json:"supportsNativeJsonSchema"`
	MaxTokens                int    `json:"maxTokens"`
}

// Resolver turns model identifiers into profiles. The externally loaded
// capability table is authoritative; substring inference only fills gaps.
type Resolver struct {
	capabilities map[string]config.ModelCapability
}

// NewResolver creates a resolver over a capability table
func NewResolver(capabilities []config.ModelCapability) *Resolver {
	table := make(map[string]config.ModelCapability, len(capabilities))
	for _, cap := range capabilities {
		table[cap.ID] = cap
	}
	return &Resolver{capabilities: table}
}

// ResolveProfile derives a ModelProfile from an id of the form
// "provider/name". A missing separator yields provider "unknown" with the
// full id as the name.
func (r *Resolver) ResolveProfile(modelID string) ModelProfile {
	provider := "unknown"
	name := modelID
	if idx := strings.Index(modelID, "/"); idx >= 0 {
		provider = modelID[:idx]
		name = modelID[idx+1:]
	}

	profile := ModelProfile{
		Provider: provider,
		Name:     name,
	}

	if cap, ok := r.capabilities[modelID]; ok {
		profile.SupportsStructuredOutput = cap.SupportsStructuredOutput
		profile.SupportsNativeJSONSchema = cap.SupportsNativeJSONSchema
		profile.MaxTokens = cap.MaxTokens
		if profile.MaxTokens <= 0 {
			profile.MaxTokens = tokenBudgetFor(name)
		}
		return profile
	}

	// Fallback inference from the id
	profile.SupportsStructuredOutput = structuredOutputProviders[provider]
	profile.SupportsNativeJSONSchema = profile.SupportsStructuredOutput && isNextGeneration(name)
	profile.MaxTokens = tokenBudgetFor(name)
	return profile
}

func tokenBudgetFor(name string) int {
	if isNextGeneration(name) {
		return ElevatedMaxTokens
	}
	return DefaultMaxTokens
}

func isNextGeneration(name string) bool {
	lowered := strings.ToLower(name)
	for _, marker := range nextGenMarkers {
		if strings.Contains(lowered, marker) {
			return true
		}
	}
	return false
}
