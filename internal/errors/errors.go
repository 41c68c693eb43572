package errors

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/fraudshield/go-fraud-screening-pipeline/internal/logger"
)

// ErrorType represents different types of errors in the screening pipeline
type ErrorType string

const (
	ErrorTypeRateLimit       ErrorType = "rate_limit_exceeded"
	ErrorTypeValidation      ErrorType = "validation_error"
	ErrorTypeSanitization    ErrorType = "sanitization_blocked"
	ErrorTypeImageConversion ErrorType = "image_conversion_error"
	ErrorTypeBackend         ErrorType = "backend_unavailable"
	ErrorTypeConfiguration   ErrorType = "configuration_error"
	ErrorTypeInternal        ErrorType = "internal_error"
)

// APIError represents a structured API error
type APIError struct {
	Type    ErrorType `json:"type"`
	Message string    `json:"message"`
	Details string    `json:"details,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return e.Message
}

// ErrorResponse represents the JSON error response format
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// NewAPIError creates a new APIError
func NewAPIError(errorType ErrorType, message string) *APIError {
	return &APIError{
		Type:    errorType,
		Message: message,
	}
}

// NewAPIErrorWithDetails creates a new APIError with details
func NewAPIErrorWithDetails(errorType ErrorType, message, details string) *APIError {
	return &APIError{
		Type:    errorType,
		Message: message,
		Details: details,
	}
}

// Common error constructors for convenience

// NewRateLimitError creates a rate limit error for the given tier message
func NewRateLimitError(message string) *APIError {
	return NewAPIError(ErrorTypeRateLimit, message)
}

// NewValidationError creates a validation error
func NewValidationError(message string) *APIError {
	return NewAPIError(ErrorTypeValidation, message)
}

// NewSanitizationError creates an error for content blocked by the sanitizer
func NewSanitizationError(message string) *APIError {
	return NewAPIError(ErrorTypeSanitization, message)
}

// NewBackendError creates an error for an unavailable scoring backend
func NewBackendError(message string) *APIError {
	return NewAPIError(ErrorTypeBackend, message)
}

// NewConfigurationError creates a configuration error
func NewConfigurationError(message string) *APIError {
	return NewAPIError(ErrorTypeConfiguration, message)
}

// NewInternalError creates an internal error
func NewInternalError(message string) *APIError {
	return NewAPIError(ErrorTypeInternal, message)
}

// HandleError writes a standardized error response to the HTTP response writer
func HandleError(w http.ResponseWriter, err error, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	var apiError *APIError
	if ae, ok := err.(*APIError); ok {
		apiError = ae
	} else {
		apiError = inferErrorType(err, statusCode)
	}

	response := ErrorResponse{Error: *apiError}

	if jsonBytes, jsonErr := json.Marshal(response); jsonErr == nil {
		w.Write(jsonBytes)
	} else {
		logger.Error("Error marshaling error response", "error", jsonErr)
		w.Write([]byte(`{"error":{"type":"internal_error","message":"Internal server error"}}`))
	}

	logger.Error("API Error",
		"status_code", statusCode,
		"error_type", string(apiError.Type),
		"message", apiError.Message,
	)
}

// StatusCode maps an error type to its HTTP status code
func StatusCode(errorType ErrorType) int {
	switch errorType {
	case ErrorTypeRateLimit:
		return http.StatusTooManyRequests
	case ErrorTypeValidation:
		return http.StatusBadRequest
	case ErrorTypeSanitization:
		return http.StatusUnprocessableEntity
	case ErrorTypeBackend:
		return http.StatusBadGateway
	case ErrorTypeConfiguration:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// inferErrorType attempts to infer the error type based on the status code
func inferErrorType(err error, statusCode int) *APIError {
	message := err.Error()

	switch statusCode {
	case http.StatusBadRequest:
		return NewAPIError(ErrorTypeValidation, message)
	case http.StatusTooManyRequests:
		return NewAPIError(ErrorTypeRateLimit, message)
	case http.StatusUnprocessableEntity:
		return NewAPIError(ErrorTypeSanitization, message)
	case http.StatusBadGateway, http.StatusGatewayTimeout:
		return NewAPIError(ErrorTypeBackend, message)
	case http.StatusServiceUnavailable:
		return NewAPIError(ErrorTypeConfiguration, message)
	default:
		return NewAPIError(ErrorTypeInternal, message)
	}
}

// ValidateRequired checks if a required field is present
func ValidateRequired(value, fieldName string) *APIError {
	if value == "" {
		return NewValidationError(fmt.Sprintf("Field '%s' is required", fieldName))
	}
	return nil
}
