// Package ratelimit enforces per-minute/hour/day request budgets keyed by
// admission identity.
package ratelimit

import "time"

// Tier is one of the independent rate-limit windows
type Tier string

const (
	TierMinute Tier = "minute"
	TierHour   Tier = "hour"
	TierDay    Tier = "day"
	TierNone   Tier = "none"
)

// Tiers lists the enforced tiers in check order. The order is a contract:
// the first exceeded tier is the one reported, so the tightest window wins.
var Tiers = []Tier{TierMinute, TierHour, TierDay}

// Duration returns the window length for a tier
func (t Tier) Duration() time.Duration {
	switch t {
	case TierMinute:
		return time.Minute
	case TierHour:
		return time.Hour
	case TierDay:
		return 24 * time.Hour
	default:
		return 0
	}
}

// Message returns the fixed user-facing message for a violated tier
func (t Tier) Message() string {
	switch t {
	case TierMinute:
		return "Too many requests. Please wait a minute before trying again."
	case TierHour:
		return "Hourly request limit reached. Please try again later."
	case TierDay:
		return "Daily request limit reached. Please try again tomorrow."
	default:
		return "Request limit reached."
	}
}
