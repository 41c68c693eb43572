package ratelimit

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/fraudshield/go-fraud-screening-pipeline/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLimits() config.RateLimitConfig {
	return config.RateLimitConfig{
		MinuteLimit: 5,
		HourLimit:   20,
		DayLimit:    50,
	}
}

func newTestLimiter(t *testing.T, limits config.RateLimitConfig) (*Limiter, *MemoryStore, *time.Time) {
	t.Helper()
	store := NewMemoryStore()
	limiter := NewLimiter(store, limits)

	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }
	return limiter, store, &now
}

func TestCheckLimitAllowsUpToCeiling(t *testing.T) {
	limiter, _, _ := newTestLimiter(t, testLimits())
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		decision, err := limiter.CheckLimit(ctx, "session:alice")
		require.NoError(t, err)
		assert.True(t, decision.Allowed, "request %d should be allowed", i+1)
		assert.Equal(t, TierNone, decision.ViolatedTier)
	}

	decision, err := limiter.CheckLimit(ctx, "session:alice")
	require.NoError(t, err)
	assert.False(t, decision.Allowed)
	assert.Equal(t, TierMinute, decision.ViolatedTier)
}

func TestCheckLimitResetTimeAndRetryAfter(t *testing.T) {
	limiter, _, nowPtr := newTestLimiter(t, testLimits())
	ctx := context.Background()

	var decision Decision
	var err error
	for i := 0; i < 6; i++ {
		decision, err = limiter.CheckLimit(ctx, "session:bob")
		require.NoError(t, err)
	}

	require.False(t, decision.Allowed)
	require.Equal(t, TierMinute, decision.ViolatedTier)

	resetAt := decision.ResetTimes[TierMinute]
	assert.True(t, resetAt.After(*nowPtr), "minute reset time must be in the future at violation time")

	retryAfter := decision.RetryAfter(*nowPtr)
	assert.Greater(t, retryAfter, 0)
	assert.LessOrEqual(t, retryAfter, 60)
}

func TestMinuteResetDoesNotAffectHourOrDay(t *testing.T) {
	limiter, store, nowPtr := newTestLimiter(t, config.RateLimitConfig{
		MinuteLimit: 2,
		HourLimit:   100,
		DayLimit:    1000,
	})
	ctx := context.Background()

	// Exhaust the minute tier twice across two windows
	for i := 0; i < 2; i++ {
		_, err := limiter.CheckLimit(ctx, "session:carol")
		require.NoError(t, err)
	}

	*nowPtr = nowPtr.Add(61 * time.Second)

	for i := 0; i < 2; i++ {
		_, err := limiter.CheckLimit(ctx, "session:carol")
		require.NoError(t, err)
	}

	// The hour counter saw all four attempts even though the minute window reset
	hourCount, err := store.Increment(ctx, "session:carol", TierHour, *nowPtr)
	require.NoError(t, err)
	assert.Equal(t, int64(5), hourCount.Count)

	dayCount, err := store.Increment(ctx, "session:carol", TierDay, *nowPtr)
	require.NoError(t, err)
	assert.Equal(t, int64(5), dayCount.Count)
}

func TestRejectedAttemptsStillCount(t *testing.T) {
	limiter, store, nowPtr := newTestLimiter(t, config.RateLimitConfig{
		MinuteLimit: 2,
		HourLimit:   100,
		DayLimit:    1000,
	})
	ctx := context.Background()

	// Five attempts: two admitted, three rejected
	for i := 0; i < 5; i++ {
		_, err := limiter.CheckLimit(ctx, "ip:1.2.3.4")
		require.NoError(t, err)
	}

	tc, err := store.Increment(ctx, "ip:1.2.3.4", TierMinute, *nowPtr)
	require.NoError(t, err)
	assert.Equal(t, int64(6), tc.Count, "rejected attempts must be counted")
}

func TestMinuteViolationReportedBeforeHour(t *testing.T) {
	limiter, _, _ := newTestLimiter(t, config.RateLimitConfig{
		MinuteLimit: 1,
		HourLimit:   1,
		DayLimit:    1,
	})
	ctx := context.Background()

	_, err := limiter.CheckLimit(ctx, "session:dave")
	require.NoError(t, err)

	decision, err := limiter.CheckLimit(ctx, "session:dave")
	require.NoError(t, err)
	assert.False(t, decision.Allowed)
	assert.Equal(t, TierMinute, decision.ViolatedTier, "tightest tier reported first")
}

func TestCheckLimitConcurrentNeverOverAdmits(t *testing.T) {
	store := NewMemoryStore()
	limiter := NewLimiter(store, config.RateLimitConfig{
		MinuteLimit: 10,
		HourLimit:   1000,
		DayLimit:    10000,
	})
	ctx := context.Background()

	const attempts = 50
	var wg sync.WaitGroup
	allowed := make(chan bool, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			decision, err := limiter.CheckLimit(ctx, "session:burst")
			assert.NoError(t, err)
			allowed <- decision.Allowed
		}()
	}

	wg.Wait()
	close(allowed)

	admitted := 0
	for ok := range allowed {
		if ok {
			admitted++
		}
	}
	assert.Equal(t, 10, admitted, "exactly the ceiling may be admitted under concurrency")
}

func TestMemoryStoreSweepEvictsStaleKeys(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	_, err := store.Increment(ctx, "ip:stale", TierMinute, now)
	require.NoError(t, err)
	assert.Equal(t, 1, store.Len())

	// All windows for the key are past once a day has elapsed
	later := now.Add(25 * time.Hour)
	store.mu.Lock()
	store.sweepLocked(later)
	store.mu.Unlock()

	assert.Equal(t, 0, store.Len())
}

func TestRetryAfterZeroWhenAllowed(t *testing.T) {
	decision := Decision{Allowed: true, ViolatedTier: TierNone}
	assert.Equal(t, 0, decision.RetryAfter(time.Now()))
}

func TestTierMessages(t *testing.T) {
	assert.Contains(t, TierMinute.Message(), "minute")
	assert.Contains(t, TierHour.Message(), "Hourly")
	assert.Contains(t, TierDay.Message(), "Daily")
}
