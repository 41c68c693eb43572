// Package middleware holds the HTTP middleware chain: request correlation,
// session minting, security headers, and CORS.
package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/fraudshield/go-fraud-screening-pipeline/internal/logger"
	"github.com/fraudshield/go-fraud-screening-pipeline/internal/utils"
)

// RequestCorrelationMiddleware assigns request and correlation IDs, stores
// them in the request context for logging, and echoes them on the response.
// Client-provided IDs take priority so callers can trace across services.
func RequestCorrelationMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(utils.HeaderRequestID)
		if requestID == "" {
			requestID = utils.GenerateRequestID()
		}
		correlationID := r.Header.Get(utils.HeaderCorrelationID)
		if correlationID == "" {
			correlationID = requestID
		}

		w.Header().Set(utils.HeaderRequestID, requestID)
		w.Header().Set(utils.HeaderCorrelationID, correlationID)

		ctx := context.WithValue(r.Context(), logger.RequestIDKey, requestID)
		ctx = context.WithValue(ctx, logger.CorrelationIDKey, correlationID)

		start := time.Now()
		wrapper := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(wrapper, r.WithContext(ctx))

		// Health probes are noisy; only log them when they fail.
		if r.URL.Path == "/health" && wrapper.statusCode < 400 {
			return
		}
		logger.InfoCtx(ctx, "Request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"status", wrapper.statusCode,
			"duration_ms", time.Since(start).Milliseconds(),
			"client_ip", clientIP(r))
	})
}

// clientIP resolves the caller address, preferring proxy headers
func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get(utils.HeaderXForwardedFor); forwarded != "" {
		return strings.TrimSpace(strings.Split(forwarded, ",")[0])
	}
	if realIP := r.Header.Get(utils.HeaderXRealIP); realIP != "" {
		return realIP
	}
	return r.RemoteAddr
}

type statusRecorder struct {
	http.ResponseWriter
	statusCode  int
	wroteHeader bool
}

func (w *statusRecorder) WriteHeader(statusCode int) {
	if !w.wroteHeader {
		w.statusCode = statusCode
		w.wroteHeader = true
	}
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *statusRecorder) Write(data []byte) (int, error) {
	if !w.wroteHeader {
		w.wroteHeader = true
	}
	return w.ResponseWriter.Write(data)
}

func (w *statusRecorder) Flush() {
	if flusher, ok := w.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}
