package modelrouter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fraudshield/go-fraud-screening-pipeline/internal/config"
)

func TestResolveProfileSplitsProviderAndName(t *testing.T) {
	r := NewResolver(nil)

	profile := r.ResolveProfile("openai/gpt-4")
	assert.Equal(t, "openai", profile.Provider)
	assert.Equal(t, "gpt-4", profile.Name)
	assert.Equal(t, DefaultMaxTokens, profile.MaxTokens)
	assert.True(t, profile.SupportsStructuredOutput)
	assert.False(t, profile.SupportsNativeJSONSchema)
}

func TestResolveProfileMissingSeparator(t *testing.T) {
	r := NewResolver(nil)

	profile := r.ResolveProfile("mystery-model")
	assert.Equal(t, "unknown", profile.Provider)
	assert.Equal(t, "mystery-model", profile.Name)
	assert.False(t, profile.SupportsStructuredOutput)
	assert.Equal(t, DefaultMaxTokens, profile.MaxTokens)
}

func TestResolveProfileKeepsNameSlashesAfterFirst(t *testing.T) {
	r := NewResolver(nil)

	profile := r.ResolveProfile("openrouter/meta/llama-3")
	assert.Equal(t, "openrouter", profile.Provider)
	assert.Equal(t, "meta/llama-3", profile.Name)
}

func TestResolveProfileNextGenerationGetsElevatedBudget(t *testing.T) {
	r := NewResolver(nil)

	tests := []struct {
		modelID string
		budget  int
	}{
		{"openai/gpt-5-turbo", ElevatedMaxTokens},
		{"openai/gpt-4.1-mini", ElevatedMaxTokens},
		{"openai/o3-mini", ElevatedMaxTokens},
		{"google/gemini-2.0-flash", ElevatedMaxTokens},
		{"anthropic/claude-4-sonnet", ElevatedMaxTokens},
		{"openai/gpt-4", DefaultMaxTokens},
		{"google/gemini-1.5-pro", DefaultMaxTokens},
	}
	for _, tt := range tests {
		profile := r.ResolveProfile(tt.modelID)
		assert.Equal(t, tt.budget, profile.MaxTokens, "model %s", tt.modelID)
	}
}

func TestResolveProfileCapabilityTableWins(t *testing.T) {
	r := NewResolver([]config.ModelCapability{
		{
			ID:                       "acme/scorer-v1",
			SupportsStructuredOutput: true,
			SupportsNativeJSONSchema: true,
			MaxTokens:                2048,
		},
	})

	profile := r.ResolveProfile("acme/scorer-v1")
	assert.Equal(t, "acme", profile.Provider)
	assert.True(t, profile.SupportsStructuredOutput)
	assert.True(t, profile.SupportsNativeJSONSchema)
	assert.Equal(t, 2048, profile.MaxTokens)
}

func TestResolveProfileTableEntryWithoutBudgetFallsBack(t *testing.T) {
	r := NewResolver([]config.ModelCapability{
		{ID: "openai/gpt-5", SupportsStructuredOutput: true},
	})

	profile := r.ResolveProfile("openai/gpt-5")
	assert.Equal(t, ElevatedMaxTokens, profile.MaxTokens)
}
