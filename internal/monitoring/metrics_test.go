package monitoring

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordRequest(t *testing.T) {
	m := newMetrics()

	m.RecordRequest(100*time.Millisecond, http.StatusOK)
	m.RecordRequest(300*time.Millisecond, http.StatusTooManyRequests)

	stats := m.GetStats()
	assert.Equal(t, int64(2), stats.TotalRequests)
	assert.Equal(t, int64(1), stats.TotalErrors)
	assert.Equal(t, int64(200), stats.AverageDurationMs)
	assert.Equal(t, 0.5, stats.ErrorRate)
	assert.Equal(t, int64(1), stats.StatusCodeCounts[http.StatusOK])
	assert.Equal(t, int64(1), stats.StatusCodeCounts[http.StatusTooManyRequests])
}

func TestRecordOutcomeAndTierViolation(t *testing.T) {
	m := newMetrics()

	m.RecordOutcome("allowed")
	m.RecordOutcome("allowed")
	m.RecordOutcome("rate_limited")
	m.RecordTierViolation("minute")

	stats := m.GetStats()
	assert.Equal(t, int64(2), stats.OutcomeCounts["allowed"])
	assert.Equal(t, int64(1), stats.OutcomeCounts["rate_limited"])
	assert.Equal(t, int64(1), stats.TierViolations["minute"])
}

func TestReset(t *testing.T) {
	m := newMetrics()
	m.RecordRequest(time.Millisecond, http.StatusOK)
	m.RecordOutcome("allowed")

	m.Reset()

	stats := m.GetStats()
	assert.Equal(t, int64(0), stats.TotalRequests)
	assert.Empty(t, stats.OutcomeCounts)
}

func TestMetricsMiddlewareCapturesStatus(t *testing.T) {
	globalMetrics.Reset()

	handler := MetricsMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/screen", nil))

	stats := globalMetrics.GetStats()
	assert.Equal(t, int64(1), stats.TotalRequests)
	assert.Equal(t, int64(1), stats.StatusCodeCounts[http.StatusUnprocessableEntity])
}

func TestMetricsHandlerServesJSON(t *testing.T) {
	globalMetrics.Reset()
	globalMetrics.RecordOutcome("allowed")

	rec := httptest.NewRecorder()
	MetricsHandler(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")

	var stats Stats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, int64(1), stats.OutcomeCounts["allowed"])
}
