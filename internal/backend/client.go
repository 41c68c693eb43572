package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/fraudshield/go-fraud-screening-pipeline/internal/config"
	"github.com/fraudshield/go-fraud-screening-pipeline/internal/imaging"
	"github.com/fraudshield/go-fraud-screening-pipeline/internal/logger"
	"github.com/fraudshield/go-fraud-screening-pipeline/internal/reliability"
	"github.com/fraudshield/go-fraud-screening-pipeline/internal/utils"
)

// HTTPClient is the HTTP implementation of Scorer
type HTTPClient struct {
	httpClient *http.Client
	cfg        config.BackendConfig
}

// NewHTTPClient creates a backend client. Per-call deadlines come from
// context timeouts set here per operation type, not from a single
// client-wide timeout: OCR is allowed to run longer than a scoring call,
// and probes much shorter.
func NewHTTPClient(cfg config.BackendConfig) *HTTPClient {
	return &HTTPClient{
		httpClient: &http.Client{},
		cfg:        cfg,
	}
}

// scoreRequestBody is the wire shape of a scoring call
type scoreRequestBody struct {
	Model            string             `json:"model"`
	MaxTokens        int                `json:"max_tokens"`
	StructuredOutput bool               `json:"structured_output"`
	NativeJSONSchema bool               `json:"native_json_schema"`
	Content          string             `json:"content"`
	Image            *imaging.ImageData `json:"image,omitempty"`
}

// ocrRequestBody is the wire shape of an OCR call
type ocrRequestBody struct {
	Image imaging.ImageData `json:"image"`
}

// ocrResponseBody is the wire shape of an OCR response
type ocrResponseBody struct {
	Text string `json:"text"`
}

// Score implements Scorer
func (c *HTTPClient) Score(ctx context.Context, req ScoreRequest) (*AnalysisResult, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.CallTimeout)
	defer cancel()

	body := scoreRequestBody{
		Model:            req.Model,
		MaxTokens:        req.MaxTokens,
		StructuredOutput: req.StructuredOutput,
		NativeJSONSchema: req.NativeJSONSchema,
		Content:          req.Content,
		Image:            req.Image,
	}

	respBody, err := c.post(ctx, "/v1/analyze", body)
	if err != nil {
		return nil, err
	}

	var result AnalysisResult
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("failed to parse analysis result: %w", err)
	}

	if result.RiskLevel != RiskLevelLow && result.RiskLevel != RiskLevelMedium && result.RiskLevel != RiskLevelHigh {
		return nil, fmt.Errorf("backend returned unknown risk level %q", result.RiskLevel)
	}

	logger.DebugCtx(ctx, "Scoring call completed",
		"model", req.Model,
		"risk_score", result.RiskScore,
		"risk_level", string(result.RiskLevel),
		"trigger_count", len(result.Triggers),
	)

	return &result, nil
}

// ExtractText implements Scorer. OCR is CPU/IO heavier than a scoring call
// and gets the longer ceiling.
func (c *HTTPClient) ExtractText(ctx context.Context, img imaging.ImageData) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.OCRTimeout)
	defer cancel()

	respBody, err := c.post(ctx, "/v1/ocr", ocrRequestBody{Image: img})
	if err != nil {
		return "", err
	}

	var resp ocrResponseBody
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return "", fmt.Errorf("failed to parse ocr response: %w", err)
	}

	return resp.Text, nil
}

// Probe implements Scorer with the short probe ceiling
func (c *HTTPClient) Probe(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.ProbeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+"/v1/models", nil)
	if err != nil {
		return fmt.Errorf("failed to create probe request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return reliability.MarkTransient(fmt.Errorf("probe failed: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return classifyStatus(resp.StatusCode, "probe")
	}
	return nil
}

// post issues a JSON POST and returns the response body, classifying HTTP
// failures by retryability
func (c *HTTPClient) post(ctx context.Context, path string, payload interface{}) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+path, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Transport-level failures (dial errors, timeouts) are transient
		return nil, reliability.MarkTransient(fmt.Errorf("backend call failed: %w", err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, reliability.MarkTransient(fmt.Errorf("failed to read backend response: %w", err))
	}

	if resp.StatusCode != http.StatusOK {
		return nil, classifyStatus(resp.StatusCode, path)
	}

	return body, nil
}

func (c *HTTPClient) setHeaders(req *http.Request) {
	req.Header.Set(utils.HeaderContentType, utils.ContentTypeJSON)
	req.Header.Set(utils.HeaderUserAgent, utils.ServiceName)
	if c.cfg.APIKey != "" {
		req.Header.Set(utils.HeaderAuthorization, "Bearer "+c.cfg.APIKey)
	}
}

// classifyStatus maps an HTTP status to a transient or permanent error.
// Timeouts and 5xx-class responses are retryable; validation and auth
// failures are not.
func classifyStatus(statusCode int, operation string) error {
	err := fmt.Errorf("backend %s returned status %d", operation, statusCode)

	switch {
	case statusCode >= 500:
		return reliability.MarkTransient(err)
	case statusCode == http.StatusRequestTimeout, statusCode == http.StatusTooManyRequests:
		return reliability.MarkTransient(err)
	default:
		return err
	}
}
