package cache

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"
)

// evictShare is the fraction of entries removed, oldest first, when the
// store grows past its capacity.
const evictShare = 0.2

type entry struct {
	value      any
	insertedAt time.Time
}

// Store is an in-process memo store with per-read TTL validation and a
// size-triggered eviction sweep. All callers share one Store; keys must be
// globally unique per (subject, year, query kind).
type Store struct {
	mu       sync.Mutex
	entries  map[string]entry
	capacity int
	now      func() time.Time
}

type StoreOption func(*Store)

// WithClock injects the time source, so TTL and eviction behavior can be
// tested without real delays.
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) {
		s.now = now
	}
}

// NewStore creates a Store that starts evicting once it holds more than
// capacity entries. A capacity of 0 or less disables eviction.
func NewStore(capacity int, opts ...StoreOption) *Store {
	s := &Store{
		entries:  make(map[string]entry),
		capacity: capacity,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get returns the cached value for key if it was inserted less than ttl ago.
// An entry at or past its ttl is treated as absent.
func (s *Store) Get(key string, ttl time.Duration) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		return nil, false
	}
	if s.now().Sub(e.insertedAt) >= ttl {
		return nil, false
	}
	return e.value, true
}

// Set inserts or overwrites key, resetting its insertion time, then sweeps
// the oldest entries if the store has outgrown its capacity.
func (s *Store) Set(key string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = entry{value: value, insertedAt: s.now()}
	s.evictLocked()
}

func (s *Store) evictLocked() {
	if s.capacity <= 0 || len(s.entries) <= s.capacity {
		return
	}

	type aged struct {
		key string
		at  time.Time
	}
	all := make([]aged, 0, len(s.entries))
	for k, e := range s.entries {
		all = append(all, aged{key: k, at: e.insertedAt})
	}
	sort.Slice(all, func(i, j int) bool { return all[i].at.Before(all[j].at) })

	n := int(float64(len(all)) * evictShare)
	if n < 1 {
		n = 1
	}
	for _, a := range all[:n] {
		delete(s.entries, a.key)
	}
}

// Invalidate removes every entry whose key starts with prefix. An empty
// prefix clears the whole store. Returns the number of entries removed.
func (s *Store) Invalidate(prefix string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for k := range s.entries {
		if prefix == "" || strings.HasPrefix(k, prefix) {
			delete(s.entries, k)
			removed++
		}
	}
	return removed
}

// Stats describes the store's current occupancy.
type Stats struct {
	Entries   int           `json:"entries"`
	OldestAge time.Duration `json:"oldest_age_ns"`
}

// Stats returns the entry count and the age of the oldest entry.
func (s *Store) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := Stats{Entries: len(s.entries)}
	now := s.now()
	for _, e := range s.entries {
		if age := now.Sub(e.insertedAt); age > st.OldestAge {
			st.OldestAge = age
		}
	}
	return st
}

// GetOrFetch returns the cached value for key when it is still within ttl,
// otherwise runs producer and caches its result. Producer errors are
// returned as-is and never cached. The producer runs outside the store
// lock; concurrent misses for the same key may race to produce, callers
// needing request coalescing layer singleflight on top.
func GetOrFetch[T any](ctx context.Context, s *Store, key string, ttl time.Duration, producer func(context.Context) (T, error)) (T, error) {
	if v, ok := s.Get(key, ttl); ok {
		if typed, ok := v.(T); ok {
			return typed, nil
		}
	}

	var zero T
	value, err := producer(ctx)
	if err != nil {
		return zero, err
	}
	s.Set(key, value)
	return value, nil
}
