package ratelimit

import (
	"context"
	"sync"
	"time"
)

// TierCount is a tier's counter state after an increment
type TierCount struct {
	Count   int64
	ResetAt time.Time
}

// CounterStore provides atomic increment-with-window semantics per key and
// tier. Implementations must make the read-modify-write linearizable: two
// concurrent increments for the same key must never both observe the same
// pre-increment count. The store is injected into the limiter so deployments
// spanning multiple instances can share counters.
type CounterStore interface {
	// Increment resets the counter to zero first if now is past its window
	// reset time, then increments it. It returns the post-increment count and
	// the reset time of the window the count belongs to.
	Increment(ctx context.Context, key string, tier Tier, now time.Time) (TierCount, error)
}

// memoryRecord holds one key's counters across all tiers
type memoryRecord struct {
	counts map[Tier]*TierCount
}

// MemoryStore is a mutex-guarded in-process CounterStore. It is only safe to
// use when the deployment is guaranteed single-instance; multi-instance
// deployments must use the Mongo-backed store.
type MemoryStore struct {
	mu      sync.Mutex
	records map[string]*memoryRecord
	ops     int
}

// sweepInterval controls how many increments pass between stale-key sweeps
const sweepInterval = 1024

// NewMemoryStore creates an in-memory counter store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make(map[string]*memoryRecord),
	}
}

// Increment implements CounterStore
func (s *MemoryStore) Increment(ctx context.Context, key string, tier Tier, now time.Time) (TierCount, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[key]
	if !ok {
		rec = &memoryRecord{counts: make(map[Tier]*TierCount)}
		s.records[key] = rec
	}

	tc, ok := rec.counts[tier]
	if !ok {
		tc = &TierCount{Count: 0, ResetAt: now.Add(tier.Duration())}
		rec.counts[tier] = tc
	}

	if !now.Before(tc.ResetAt) {
		tc.Count = 0
		tc.ResetAt = now.Add(tier.Duration())
	}

	tc.Count++

	s.ops++
	if s.ops%sweepInterval == 0 {
		s.sweepLocked(now)
	}

	return *tc, nil
}

// sweepLocked evicts keys whose windows have all passed. Counts in expired
// windows are semantically zero, so dropping the record loses nothing.
func (s *MemoryStore) sweepLocked(now time.Time) {
	for key, rec := range s.records {
		stale := true
		for _, tc := range rec.counts {
			if now.Before(tc.ResetAt) {
				stale = false
				break
			}
		}
		if stale {
			delete(s.records, key)
		}
	}
}

// Len returns the number of tracked keys (test helper)
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}
