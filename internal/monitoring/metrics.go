// Package monitoring collects in-process request and screening metrics and
// exposes them over HTTP alongside pprof.
package monitoring

import (
	"encoding/json"
	"net/http"
	"net/http/pprof"
	"sync"
	"time"

	"github.com/fraudshield/go-fraud-screening-pipeline/internal/utils"
)

// Metrics holds application metrics
type Metrics struct {
	mu               sync.RWMutex
	RequestCount     int64
	RequestDuration  time.Duration
	ErrorCount       int64
	OutcomeCounts    map[string]int64
	TierViolations   map[string]int64
	StatusCodeCounts map[int]int64
	StartTime        time.Time
}

var globalMetrics = newMetrics()

func newMetrics() *Metrics {
	return &Metrics{
		OutcomeCounts:    make(map[string]int64),
		TierViolations:   make(map[string]int64),
		StatusCodeCounts: make(map[int]int64),
		StartTime:        time.Now(),
	}
}

// GetMetrics returns the global metrics instance
func GetMetrics() *Metrics {
	return globalMetrics
}

// RecordRequest records one HTTP request
func (m *Metrics) RecordRequest(duration time.Duration, statusCode int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.RequestCount++
	m.RequestDuration += duration
	m.StatusCodeCounts[statusCode]++
	if statusCode >= 400 {
		m.ErrorCount++
	}
}

// RecordOutcome records the terminal status of a screening run
func (m *Metrics) RecordOutcome(status string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.OutcomeCounts[status]++
}

// RecordTierViolation records which rate-limit tier rejected a request
func (m *Metrics) RecordTierViolation(tier string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.TierViolations[tier]++
}

// Stats is the snapshot served by the metrics endpoint
type Stats struct {
	UptimeSeconds     float64          `json:"uptime_seconds"`
	TotalRequests     int64            `json:"total_requests"`
	TotalErrors       int64            `json:"total_errors"`
	AverageDurationMs int64            `json:"average_duration_ms"`
	RequestsPerSecond float64          `json:"requests_per_second"`
	ErrorRate         float64          `json:"error_rate"`
	OutcomeCounts     map[string]int64 `json:"outcome_counts"`
	TierViolations    map[string]int64 `json:"tier_violations"`
	StatusCodeCounts  map[int]int64    `json:"status_code_counts"`
	StartTime         string           `json:"start_time"`
}

// GetStats returns a copy of the current statistics
func (m *Metrics) GetStats() Stats {
	m.mu.RLock()
	defer m.mu.RUnlock()

	uptime := time.Since(m.StartTime)
	avgDuration := time.Duration(0)
	errorRate := 0.0
	if m.RequestCount > 0 {
		avgDuration = m.RequestDuration / time.Duration(m.RequestCount)
		errorRate = float64(m.ErrorCount) / float64(m.RequestCount)
	}

	outcomes := make(map[string]int64, len(m.OutcomeCounts))
	for k, v := range m.OutcomeCounts {
		outcomes[k] = v
	}
	tiers := make(map[string]int64, len(m.TierViolations))
	for k, v := range m.TierViolations {
		tiers[k] = v
	}
	statuses := make(map[int]int64, len(m.StatusCodeCounts))
	for k, v := range m.StatusCodeCounts {
		statuses[k] = v
	}

	return Stats{
		UptimeSeconds:     uptime.Seconds(),
		TotalRequests:     m.RequestCount,
		TotalErrors:       m.ErrorCount,
		AverageDurationMs: avgDuration.Milliseconds(),
		RequestsPerSecond: float64(m.RequestCount) / uptime.Seconds(),
		ErrorRate:         errorRate,
		OutcomeCounts:     outcomes,
		TierViolations:    tiers,
		StatusCodeCounts:  statuses,
		StartTime:         m.StartTime.Format(time.RFC3339),
	}
}

// Reset clears all metrics (useful for testing)
func (m *Metrics) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.RequestCount = 0
	m.RequestDuration = 0
	m.ErrorCount = 0
	m.OutcomeCounts = make(map[string]int64)
	m.TierViolations = make(map[string]int64)
	m.StatusCodeCounts = make(map[int]int64)
	m.StartTime = time.Now()
}

// MetricsMiddleware wraps HTTP handlers to collect request metrics
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		wrapper := &responseWriterWrapper{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(wrapper, r)

		globalMetrics.RecordRequest(time.Since(start), wrapper.statusCode)
	})
}

type responseWriterWrapper struct {
	http.ResponseWriter
	statusCode int
}

func (w *responseWriterWrapper) WriteHeader(statusCode int) {
	w.statusCode = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *responseWriterWrapper) Flush() {
	if flusher, ok := w.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}

// SetupPprofRoutes adds pprof endpoints to the router
func SetupPprofRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	mux.Handle("/debug/pprof/goroutine", pprof.Handler("goroutine"))
	mux.Handle("/debug/pprof/heap", pprof.Handler("heap"))
	mux.Handle("/debug/pprof/threadcreate", pprof.Handler("threadcreate"))
	mux.Handle("/debug/pprof/block", pprof.Handler("block"))
}

// MetricsHandler returns current metrics as JSON
func MetricsHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set(utils.HeaderContentType, utils.ContentTypeJSON)

	if err := json.NewEncoder(w).Encode(globalMetrics.GetStats()); err != nil {
		http.Error(w, "failed to encode metrics", http.StatusInternalServerError)
	}
}
