package ratelimit

import (
	"context"
	"time"

	"github.com/fraudshield/go-fraud-screening-pipeline/internal/config"
	"github.com/fraudshield/go-fraud-screening-pipeline/internal/logger"
)

// Decision is the outcome of a limit check
type Decision struct {
	Allowed      bool
	ViolatedTier Tier
	ResetTimes   map[Tier]time.Time
}

// RetryAfter returns the whole seconds a caller must wait before the violated
// tier's window resets. Always at least 1 when a tier was violated.
func (d Decision) RetryAfter(now time.Time) int {
	if d.Allowed || d.ViolatedTier == TierNone {
		return 0
	}
	resetAt, ok := d.ResetTimes[d.ViolatedTier]
	if !ok {
		return 0
	}
	seconds := int((resetAt.Sub(now) + time.Second - 1) / time.Second)
	if seconds < 1 {
		seconds = 1
	}
	return seconds
}

// Limiter enforces the configured multi-tier budgets against a counter store
type Limiter struct {
	store  CounterStore
	limits config.RateLimitConfig
	now    func() time.Time
}

// NewLimiter creates a limiter over the given store
func NewLimiter(store CounterStore, limits config.RateLimitConfig) *Limiter {
	return &Limiter{
		store:  store,
		limits: limits,
		now:    time.Now,
	}
}

// ceiling returns the configured ceiling for a tier
func (l *Limiter) ceiling(tier Tier) int64 {
	switch tier {
	case TierMinute:
		return l.limits.MinuteLimit
	case TierHour:
		return l.limits.HourLimit
	case TierDay:
		return l.limits.DayLimit
	default:
		return 0
	}
}

// CheckLimit records one attempt for the key and reports whether it is
// admitted. Rejected attempts still count: the increment happens before the
// ceiling comparison, so retry storms at the window edge cannot sneak through.
// Tiers are checked minute first, then hour, then day; evaluation stops at
// the first exceeded tier and that tier is the one reported.
func (l *Limiter) CheckLimit(ctx context.Context, key string) (Decision, error) {
	now := l.now()
	decision := Decision{
		Allowed:      true,
		ViolatedTier: TierNone,
		ResetTimes:   make(map[Tier]time.Time, len(Tiers)),
	}

	for _, tier := range Tiers {
		tc, err := l.store.Increment(ctx, key, tier, now)
		if err != nil {
			return Decision{}, err
		}

		decision.ResetTimes[tier] = tc.ResetAt

		if tc.Count > l.ceiling(tier) {
			decision.Allowed = false
			decision.ViolatedTier = tier

			logger.WarnCtx(ctx, "Rate limit exceeded",
				"key", key,
				"tier", string(tier),
				"count", tc.Count,
				"ceiling", l.ceiling(tier),
				"reset_at", tc.ResetAt.Format(time.RFC3339),
			)
			break
		}
	}

	return decision, nil
}
