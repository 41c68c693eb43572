package logger

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/fraudshield/go-fraud-screening-pipeline/internal/utils"
)

// Logger levels
const (
	LevelDebug = slog.LevelDebug
	LevelInfo  = slog.LevelInfo
	LevelWarn  = slog.LevelWarn
	LevelError = slog.LevelError
)

// Context keys
type contextKey string

const (
	RequestIDKey     contextKey = "request_id"
	CorrelationIDKey contextKey = "correlation_id"
	AdmissionKeyKey  contextKey = "admission_key"
)

// Global logger instance
var Logger *slog.Logger

// Service configuration
var (
	ServiceName = "fraud-screening-pipeline"
	Environment = "development"
)

// Config holds logger configuration
type Config struct {
	Level       slog.Level
	Format      string // "json" or "text"
	Output      string // "stdout", "stderr", or file path
	ServiceName string
	Environment string
}

// DefaultConfig is used when no explicit configuration is provided
var DefaultConfig = Config{
	Level:       LevelInfo,
	Format:      "json",
	Output:      "stdout",
	ServiceName: "fraud-screening-pipeline",
	Environment: "development",
}

// StructuredLogEntry represents the emitted log structure
type StructuredLogEntry struct {
	Timestamp   string                 `json:"timestamp"`
	Level       string                 `json:"level"`
	Message     string                 `json:"message"`
	Service     string                 `json:"service"`
	Environment string                 `json:"environment"`
	Attributes  map[string]interface{} `json:"attributes,omitempty"`
	Error       map[string]interface{} `json:"error,omitempty"`
}

// Init initializes the global logger
func Init(config Config) error {
	var output *os.File
	var err error

	ServiceName = config.ServiceName
	Environment = config.Environment

	switch config.Output {
	case "stdout", "":
		output = os.Stdout
	case "stderr":
		output = os.Stderr
	default:
		output, err = os.OpenFile(config.Output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			return fmt.Errorf("failed to open log file %s: %w", config.Output, err)
		}
	}

	var handler slog.Handler
	switch config.Format {
	case "json":
		handler = &StructuredJSONHandler{
			writer:      output,
			level:       config.Level,
			serviceName: config.ServiceName,
			environment: config.Environment,
		}
	default:
		handler = slog.NewTextHandler(output, &slog.HandlerOptions{Level: config.Level})
	}

	Logger = slog.New(handler)
	return nil
}

// InitFromEnv initializes the logger from environment variables
func InitFromEnv() error {
	config := DefaultConfig

	if level := os.Getenv("LOG_LEVEL"); level != "" {
		switch strings.ToUpper(level) {
		case "DEBUG":
			config.Level = LevelDebug
		case "INFO":
			config.Level = LevelInfo
		case "WARN", "WARNING":
			config.Level = LevelWarn
		case "ERROR":
			config.Level = LevelError
		}
	}

	if format := os.Getenv("LOG_FORMAT"); format != "" {
		config.Format = format
	}
	if output := os.Getenv("LOG_OUTPUT"); output != "" {
		config.Output = output
	}
	if serviceName := os.Getenv("SERVICE_NAME"); serviceName != "" {
		config.ServiceName = serviceName
	}
	if environment := os.Getenv("ENVIRONMENT"); environment != "" {
		config.Environment = environment
	}

	return Init(config)
}

// StructuredJSONHandler implements a custom JSON handler for the structured format
type StructuredJSONHandler struct {
	writer      io.Writer
	level       slog.Level
	serviceName string
	environment string
}

func (h *StructuredJSONHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *StructuredJSONHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return h
}

func (h *StructuredJSONHandler) WithGroup(name string) slog.Handler {
	return h
}

func (h *StructuredJSONHandler) Handle(ctx context.Context, r slog.Record) error {
	entry := StructuredLogEntry{
		Timestamp:   r.Time.Format(time.RFC3339),
		Level:       r.Level.String(),
		Message:     r.Message,
		Service:     h.serviceName,
		Environment: h.environment,
		Attributes:  make(map[string]interface{}),
	}

	if ctx != nil {
		if requestID := ctx.Value(RequestIDKey); requestID != nil {
			entry.Attributes["request_id"] = requestID
		}
		if correlationID := ctx.Value(CorrelationIDKey); correlationID != nil {
			entry.Attributes["correlation_id"] = correlationID
		}
		if admissionKey := ctx.Value(AdmissionKeyKey); admissionKey != nil {
			entry.Attributes["admission_key"] = admissionKey
		}
	}

	r.Attrs(func(a slog.Attr) bool {
		key := a.Key
		value := a.Value.Any()

		if key == "error" {
			if entry.Error == nil {
				entry.Error = make(map[string]interface{})
			}
			if err, ok := value.(error); ok {
				entry.Error["message"] = err.Error()
				entry.Error["type"] = fmt.Sprintf("%T", err)
			} else {
				entry.Error["message"] = fmt.Sprintf("%v", value)
			}
			return true
		}

		entry.Attributes[key] = value
		return true
	})

	if len(entry.Attributes) == 0 {
		entry.Attributes = nil
	}

	// Image payloads must never reach the log stream untruncated
	if entry.Attributes != nil {
		entry.Attributes = utils.TruncateBase64InData(entry.Attributes).(map[string]interface{})
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(h.writer, string(data))
	return err
}

// WithAdmissionKey attaches the resolved admission key to the context so it
// shows up on every log line for the request.
func WithAdmissionKey(ctx context.Context, key string) context.Context {
	return context.WithValue(ctx, AdmissionKeyKey, key)
}

// WithContext returns the global logger, initializing defaults if needed
func WithContext(ctx context.Context) *slog.Logger {
	if Logger == nil {
		if err := Init(DefaultConfig); err != nil {
			fmt.Fprintf(os.Stderr, "FATAL: failed to initialize default logger: %v\n", err)
			return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: LevelDebug}))
		}
	}
	return Logger
}

// Convenience functions for different log levels

func Debug(msg string, args ...any) {
	if Logger != nil {
		Logger.Debug(msg, args...)
	}
}

func Info(msg string, args ...any) {
	if Logger != nil {
		Logger.Info(msg, args...)
	}
}

func Warn(msg string, args ...any) {
	if Logger != nil {
		Logger.Warn(msg, args...)
	}
}

func Error(msg string, args ...any) {
	if Logger != nil {
		Logger.Error(msg, args...)
	}
}

// Context-aware convenience functions

func DebugCtx(ctx context.Context, msg string, args ...any) {
	WithContext(ctx).DebugContext(ctx, msg, args...)
}

func InfoCtx(ctx context.Context, msg string, args ...any) {
	WithContext(ctx).InfoContext(ctx, msg, args...)
}

func WarnCtx(ctx context.Context, msg string, args ...any) {
	WithContext(ctx).WarnContext(ctx, msg, args...)
}

func ErrorCtx(ctx context.Context, msg string, args ...any) {
	WithContext(ctx).ErrorContext(ctx, msg, args...)
}
