package config

import (
	"fmt"
	"time"

	"github.com/fraudshield/go-fraud-screening-pipeline/internal/utils"
	"github.com/go-playground/validator/v10"
)

// Config holds all externally configurable parameters of the screening
// pipeline. Every ceiling and threshold used at a call site must come from
// here rather than being hard-coded.
type Config struct {
	Server    ServerConfig
	Backend   BackendConfig
	RateLimit RateLimitConfig
	Text      TextConfig
	Image     ImageConfig
	Retry     RetryConfig
	Heuristic HeuristicConfig
}

// ServerConfig holds HTTP server parameters
type ServerConfig struct {
	Host         string        `validate:"required"`
	Port         int           `validate:"min=1,max=65535"`
	ReadTimeout  time.Duration `validate:"min=1s"`
	WriteTimeout time.Duration `validate:"min=1s"`
	IdleTimeout  time.Duration `validate:"min=1s"`
}

// BackendConfig holds risk-scoring backend parameters
type BackendConfig struct {
	APIKey       string
	BaseURL      string        `validate:"required,url"`
	Model        string        `validate:"required"`
	CallTimeout  time.Duration `validate:"min=1s"`
	OCRTimeout   time.Duration `validate:"min=1s"`
	ProbeTimeout time.Duration `validate:"min=1s"`
}

// RateLimitConfig holds per-tier request ceilings
type RateLimitConfig struct {
	MinuteLimit int64 `validate:"min=1"`
	HourLimit   int64 `validate:"min=1"`
	DayLimit    int64 `validate:"min=1"`
}

// TextConfig holds text input bounds
type TextConfig struct {
	MinLength int `validate:"min=1"`
	MaxLength int `validate:"min=1,gtefield=MinLength"`
}

// ImageConfig holds image upload constraints
type ImageConfig struct {
	MaxSizeBytes         int64 `validate:"min=1"`
	CompressionThreshold int64 `validate:"min=1"`
	CompressionQuality   int   `validate:"min=1,max=100"`
}

// RetryConfig holds retry/backoff parameters for backend calls
type RetryConfig struct {
	MaxAttempts   int           `validate:"min=1"`
	InitialDelay  time.Duration `validate:"min=1ms"`
	MaxDelay      time.Duration `validate:"min=1ms"`
	BackoffFactor float64       `validate:"min=1"`
}

// HeuristicConfig holds URL-context heuristic thresholds.
// The defaults (10 words, 0.7 ratio) are empirically chosen product
// constants; do not change them without product sign-off.
type HeuristicConfig struct {
	MinContextWords   int     `validate:"min=1"`
	URLRatioThreshold float64 `validate:"gt=0,lte=1"`
}

// apiKeyPlaceholders are sentinel values that indicate the backend key was
// never actually configured.
var apiKeyPlaceholders = map[string]bool{
	"":                  true,
	"your-api-key":      true,
	"your-api-key-here": true,
	"changeme":          true,
}

// IsConfigured reports whether a usable backend API key is present
func (b BackendConfig) IsConfigured() bool {
	return !apiKeyPlaceholders[b.APIKey]
}

// Load builds the configuration from environment variables with defaults
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host:         utils.GetEnvString("SERVER_HOST", "0.0.0.0"),
			Port:         utils.GetEnvPort("SERVER_PORT", 8082),
			ReadTimeout:  utils.GetEnvDuration("SERVER_READ_TIMEOUT_SECONDS", 15*time.Second),
			WriteTimeout: utils.GetEnvDuration("SERVER_WRITE_TIMEOUT_SECONDS", 60*time.Second),
			IdleTimeout:  utils.GetEnvDuration("SERVER_IDLE_TIMEOUT_SECONDS", 60*time.Second),
		},
		Backend: BackendConfig{
			APIKey:       utils.GetEnvString("BACKEND_API_KEY", ""),
			BaseURL:      utils.GetEnvString("BACKEND_BASE_URL", "https://api.openai.com/v1"),
			Model:        utils.GetEnvString("BACKEND_MODEL", "openai/gpt-4"),
			CallTimeout:  utils.GetEnvDuration("BACKEND_CALL_TIMEOUT_SECONDS", 30*time.Second),
			OCRTimeout:   utils.GetEnvDuration("BACKEND_OCR_TIMEOUT_SECONDS", 60*time.Second),
			ProbeTimeout: utils.GetEnvDuration("BACKEND_PROBE_TIMEOUT_SECONDS", 5*time.Second),
		},
		RateLimit: RateLimitConfig{
			MinuteLimit: utils.GetEnvInt64("RATE_LIMIT_PER_MINUTE", 10),
			HourLimit:   utils.GetEnvInt64("RATE_LIMIT_PER_HOUR", 100),
			DayLimit:    utils.GetEnvInt64("RATE_LIMIT_PER_DAY", 500),
		},
		Text: TextConfig{
			MinLength: utils.GetEnvInt("TEXT_MIN_LENGTH", 3),
			MaxLength: utils.GetEnvInt("TEXT_MAX_LENGTH", 10000),
		},
		Image: ImageConfig{
			MaxSizeBytes:         utils.GetEnvInt64("IMAGE_MAX_SIZE_BYTES", 10*1024*1024),
			CompressionThreshold: utils.GetEnvInt64("IMAGE_COMPRESSION_THRESHOLD_BYTES", 1*1024*1024),
			CompressionQuality:   utils.GetEnvInt("IMAGE_COMPRESSION_QUALITY", 80),
		},
		Retry: RetryConfig{
			MaxAttempts:   utils.GetEnvInt("RETRY_MAX_ATTEMPTS", 3),
			InitialDelay:  utils.GetEnvDurationMillis("RETRY_INITIAL_DELAY_MS", 500*time.Millisecond),
			MaxDelay:      utils.GetEnvDurationMillis("RETRY_MAX_DELAY_MS", 8*time.Second),
			BackoffFactor: utils.GetEnvFloat64("RETRY_BACKOFF_FACTOR", 2.0),
		},
		Heuristic: HeuristicConfig{
			MinContextWords:   utils.GetEnvInt("HEURISTIC_MIN_CONTEXT_WORDS", 10),
			URLRatioThreshold: utils.GetEnvFloat64("HEURISTIC_URL_RATIO_THRESHOLD", 0.7),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the configuration against its struct constraints
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
