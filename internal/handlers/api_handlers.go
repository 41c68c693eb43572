package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/fraudshield/go-fraud-screening-pipeline/internal/admission"
	"github.com/fraudshield/go-fraud-screening-pipeline/internal/backend"
	"github.com/fraudshield/go-fraud-screening-pipeline/internal/config"
	"github.com/fraudshield/go-fraud-screening-pipeline/internal/content"
	"github.com/fraudshield/go-fraud-screening-pipeline/internal/errors"
	"github.com/fraudshield/go-fraud-screening-pipeline/internal/imaging"
	"github.com/fraudshield/go-fraud-screening-pipeline/internal/logger"
	"github.com/fraudshield/go-fraud-screening-pipeline/internal/modelrouter"
	"github.com/fraudshield/go-fraud-screening-pipeline/internal/monitoring"
	"github.com/fraudshield/go-fraud-screening-pipeline/internal/pipeline"
	"github.com/fraudshield/go-fraud-screening-pipeline/internal/utils"
)

// startTime tracks when the application started
var startTime = time.Now()

// ScreenRequest is the body of a screening call
type ScreenRequest struct {
	Text  string             `json:"text" validate:"required"`
	Image *imaging.ImageData `json:"image,omitempty" validate:"omitempty"`
}

// ScreenResponse is returned for every screening outcome. Result is present
// only when the screening produced a verdict.
type ScreenResponse struct {
	Status     string                  `json:"status"`
	Result     *backend.AnalysisResult `json:"result,omitempty"`
	Reason     string                  `json:"reason,omitempty"`
	RetryAfter int                     `json:"retryAfter,omitempty"`
	Signal     *content.ContextSignal  `json:"signal,omitempty"`
}

// CapabilitiesResponse describes the service limits and the active model
type CapabilitiesResponse struct {
	Model      modelrouter.ModelProfile `json:"model"`
	RateLimits map[string]int64         `json:"rateLimits"`
	Text       TextCapabilities         `json:"text"`
	Image      ImageCapabilities        `json:"image"`
}

// TextCapabilities is the accepted text bounds
type TextCapabilities struct {
	MinLength int `json:"minLength"`
	MaxLength int `json:"maxLength"`
}

// ImageCapabilities is the accepted image constraints
type ImageCapabilities struct {
	MaxSizeBytes       int64    `json:"maxSizeBytes"`
	AcceptedMimeTypes  []string `json:"acceptedMimeTypes"`
	SupportedMimeTypes []string `json:"supportedMimeTypes"`
}

// HealthResponse represents the structured health check response
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	Services  map[string]string `json:"services"`
	Details   map[string]any    `json:"details"`
}

// HealthChecker reports whether a dependency currently answers
type HealthChecker interface {
	IsConnected() bool
}

// APIHandlers contains the dependencies needed for API handlers
type APIHandlers struct {
	Config    *config.Config
	Screener  *pipeline.Screener
	Resolver  *modelrouter.Resolver
	validate  *validator.Validate
	dbChecker HealthChecker
}

// NewAPIHandlers creates a new APIHandlers instance. dbChecker may be nil
// when the service runs without MongoDB.
func NewAPIHandlers(cfg *config.Config, screener *pipeline.Screener, resolver *modelrouter.Resolver, dbChecker HealthChecker) *APIHandlers {
	return &APIHandlers{
		Config:    cfg,
		Screener:  screener,
		Resolver:  resolver,
		validate:  validator.New(),
		dbChecker: dbChecker,
	}
}

// ScreenHandler handles the screening endpoint
// @Summary      Screen a message for fraud risk
// @Description  Runs text and an optional image through admission control, content hygiene, and the risk-scoring backend
// @Tags         screening
// @Accept       json
// @Produce      json
// @Param        request  body      handlers.ScreenRequest  true  "Message to screen"
// @Success      200      {object}  handlers.ScreenResponse  "Risk verdict"
// @Success      202      {object}  handlers.ScreenResponse  "More context needed before a verdict is possible"
// @Failure      400      {object}  errors.ErrorResponse     "Invalid input"
// @Failure      422      {object}  errors.ErrorResponse     "Content blocked by sanitization"
// @Failure      429      {object}  errors.ErrorResponse     "Rate limit exceeded"
// @Failure      502      {object}  errors.ErrorResponse     "Scoring backend unavailable"
// @Failure      503      {object}  errors.ErrorResponse     "Service not configured"
// @Router       /v1/screen [post]
func (h *APIHandlers) ScreenHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if !h.Config.Backend.IsConfigured() {
		errors.HandleError(w,
			errors.NewConfigurationError("Scoring backend API key is not configured"),
			http.StatusServiceUnavailable)
		return
	}

	var req ScreenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errors.HandleError(w,
			errors.NewValidationError("Request body is not valid JSON"),
			http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		errors.HandleError(w,
			errors.NewValidationError(fmt.Sprintf("Invalid request: %v", err)),
			http.StatusBadRequest)
		return
	}

	key := admission.ResolveKey(r)
	ctx = logger.WithAdmissionKey(ctx, key)

	outcome, err := h.Screener.Screen(ctx, pipeline.Request{
		Key:   key,
		Text:  req.Text,
		Image: req.Image,
	})
	if err != nil {
		errors.HandleError(w,
			errors.NewInternalError("Screening failed"),
			http.StatusInternalServerError)
		return
	}

	monitoring.GetMetrics().RecordOutcome(string(outcome.Status))

	switch outcome.Status {
	case pipeline.StatusAllowed:
		writeJSON(w, http.StatusOK, ScreenResponse{
			Status: string(outcome.Status),
			Result: outcome.Result,
			Signal: outcome.Signal,
		})
	case pipeline.StatusMoreContextNeeded:
		writeJSON(w, http.StatusAccepted, ScreenResponse{
			Status: string(outcome.Status),
			Reason: outcome.Reason,
			Signal: outcome.Signal,
		})
	case pipeline.StatusRateLimited:
		monitoring.GetMetrics().RecordTierViolation(string(outcome.ViolatedTier))
		w.Header().Set(utils.HeaderRetryAfter, strconv.Itoa(outcome.RetryAfter))
		errors.HandleError(w,
			errors.NewRateLimitError(outcome.Reason),
			http.StatusTooManyRequests)
	case pipeline.StatusValidationFailed:
		errors.HandleError(w,
			errors.NewValidationError(outcome.Reason),
			http.StatusBadRequest)
	case pipeline.StatusSanitizationBlocked:
		errors.HandleError(w,
			errors.NewSanitizationError(outcome.Reason),
			http.StatusUnprocessableEntity)
	case pipeline.StatusBackendUnavailable:
		errors.HandleError(w,
			errors.NewBackendError("Risk scoring is temporarily unavailable"),
			http.StatusBadGateway)
	default:
		errors.HandleError(w,
			errors.NewInternalError("Unknown screening outcome"),
			http.StatusInternalServerError)
	}
}

// CapabilitiesHandler handles the capabilities endpoint
// @Summary      Service capabilities
// @Description  Returns the active model profile and the service's input limits
// @Tags         screening
// @Produce      json
// @Success      200  {object}  handlers.CapabilitiesResponse  "Current capabilities"
// @Failure      503  {object}  errors.ErrorResponse           "Service not configured"
// @Router       /v1/capabilities [get]
func (h *APIHandlers) CapabilitiesHandler(w http.ResponseWriter, r *http.Request) {
	if !h.Config.Backend.IsConfigured() {
		errors.HandleError(w,
			errors.NewConfigurationError("Scoring backend API key is not configured"),
			http.StatusServiceUnavailable)
		return
	}

	response := CapabilitiesResponse{
		Model: h.Resolver.ResolveProfile(h.Config.Backend.Model),
		RateLimits: map[string]int64{
			"perMinute": h.Config.RateLimit.MinuteLimit,
			"perHour":   h.Config.RateLimit.HourLimit,
			"perDay":    h.Config.RateLimit.DayLimit,
		},
		Text: TextCapabilities{
			MinLength: h.Config.Text.MinLength,
			MaxLength: h.Config.Text.MaxLength,
		},
		Image: ImageCapabilities{
			MaxSizeBytes:       h.Config.Image.MaxSizeBytes,
			AcceptedMimeTypes:  imaging.AcceptedMimeTypes(),
			SupportedMimeTypes: imaging.SupportedMimeTypes(),
		},
	}

	writeJSON(w, http.StatusOK, response)
}

// HealthHandler handles the health check endpoint
// @Summary      Health check endpoint
// @Description  Returns structured health information including status, services, and version details
// @Tags         health
// @Produce      json
// @Success      200  {object}  handlers.HealthResponse  "Structured health response"
// @Router       /health [get]
func (h *APIHandlers) HealthHandler(w http.ResponseWriter, r *http.Request) {
	version := os.Getenv("VERSION")
	if version == "" {
		version = "unknown"
	}

	services := make(map[string]string)
	overallStatus := "healthy"

	if h.Screener != nil {
		services["pipeline"] = "up"
	} else {
		services["pipeline"] = "down"
		overallStatus = "unhealthy"
	}

	if h.Config.Backend.IsConfigured() {
		services["backend_config"] = "up"
	} else {
		services["backend_config"] = "down"
		overallStatus = "degraded"
	}

	if h.dbChecker != nil {
		if h.dbChecker.IsConnected() {
			services["database"] = "up"
		} else {
			services["database"] = "unhealthy"
			if overallStatus == "healthy" {
				overallStatus = "degraded"
			}
		}
	} else {
		services["database"] = "disabled"
	}

	statusCode := http.StatusOK
	if overallStatus == "unhealthy" {
		statusCode = http.StatusServiceUnavailable
	}

	writeJSON(w, statusCode, HealthResponse{
		Status:    overallStatus,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Services:  services,
		Details: map[string]any{
			"version": version,
			"uptime":  int64(time.Since(startTime).Seconds()),
		},
	})
}

func writeJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set(utils.HeaderContentType, utils.ContentTypeJSON)
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error("Failed to encode response", "error", err)
	}
}
