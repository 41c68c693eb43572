package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fraudshield/go-fraud-screening-pipeline/internal/config"
	"github.com/fraudshield/go-fraud-screening-pipeline/internal/imaging"
	"github.com/fraudshield/go-fraud-screening-pipeline/internal/reliability"
)

func testBackendConfig(baseURL string) config.BackendConfig {
	return config.BackendConfig{
		APIKey:       "sk-test",
		BaseURL:      baseURL,
		Model:        "openai/gpt-4",
		CallTimeout:  5 * time.Second,
		OCRTimeout:   5 * time.Second,
		ProbeTimeout: 2 * time.Second,
	}
}

func TestScoreParsesAnalysisResult(t *testing.T) {
	var gotAuth, gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "openai/gpt-4", body["model"])
		assert.Equal(t, "suspicious invoice text", body["content"])

		json.NewEncoder(w).Encode(AnalysisResult{
			RiskScore: 65,
			RiskLevel: RiskLevelMedium,
			Triggers: []Trigger{
				{Type: "urgency", Description: "pressure to act immediately", Severity: "medium"},
			},
			Recommendations: []string{"verify the sender through another channel"},
		})
	}))
	defer server.Close()

	client := NewHTTPClient(testBackendConfig(server.URL))
	result, err := client.Score(context.Background(), ScoreRequest{
		Model:     "openai/gpt-4",
		MaxTokens: 1024,
		Content:   "suspicious invoice text",
	})

	require.NoError(t, err)
	assert.Equal(t, "/v1/analyze", gotPath)
	assert.Equal(t, "Bearer sk-test", gotAuth)
	assert.Equal(t, 65, result.RiskScore)
	assert.Equal(t, RiskLevelMedium, result.RiskLevel)
	require.Len(t, result.Triggers, 1)
	assert.Equal(t, "urgency", result.Triggers[0].Type)
}

func TestScoreRejectsUnknownRiskLevel(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"riskScore": 10, "riskLevel": "catastrophic"}`))
	}))
	defer server.Close()

	client := NewHTTPClient(testBackendConfig(server.URL))
	result, err := client.Score(context.Background(), ScoreRequest{Model: "openai/gpt-4"})

	require.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "unknown risk level")
}

func TestScoreClassifiesServerErrorsTransient(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewHTTPClient(testBackendConfig(server.URL))
	_, err := client.Score(context.Background(), ScoreRequest{Model: "openai/gpt-4"})

	require.Error(t, err)
	assert.True(t, reliability.IsTransient(err))
}

func TestScoreClassifiesClientErrorsPermanent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewHTTPClient(testBackendConfig(server.URL))
	_, err := client.Score(context.Background(), ScoreRequest{Model: "openai/gpt-4"})

	require.Error(t, err)
	assert.False(t, reliability.IsTransient(err))
}

func TestScoreConnectionFailureIsTransient(t *testing.T) {
	// Point at a server that is already closed
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewHTTPClient(testBackendConfig(server.URL))
	_, err := client.Score(context.Background(), ScoreRequest{Model: "openai/gpt-4"})

	require.Error(t, err)
	assert.True(t, reliability.IsTransient(err))
}

func TestExtractText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/ocr", r.URL.Path)

		var body ocrRequestBody
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "image/png", body.Image.MimeType)

		json.NewEncoder(w).Encode(ocrResponseBody{Text: "WIN A FREE CRUISE, call now"})
	}))
	defer server.Close()

	client := NewHTTPClient(testBackendConfig(server.URL))
	text, err := client.ExtractText(context.Background(), imaging.ImageData{
		Base64:   "aGVsbG8=",
		MimeType: "image/png",
	})

	require.NoError(t, err)
	assert.Equal(t, "WIN A FREE CRUISE, call now", text)
}

func TestProbe(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/v1/models", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewHTTPClient(testBackendConfig(server.URL))
	assert.NoError(t, client.Probe(context.Background()))
}

func TestProbeFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewHTTPClient(testBackendConfig(server.URL))
	err := client.Probe(context.Background())

	require.Error(t, err)
	assert.True(t, reliability.IsTransient(err))
}
