package cache

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

func newTestStore(capacity int) (*Store, *fakeClock) {
	clock := &fakeClock{now: time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC)}
	return NewStore(capacity, WithClock(clock.Now)), clock
}

func TestStoreTTLBoundary(t *testing.T) {
	store, clock := newTestStore(100)
	ttl := 10 * time.Minute

	store.Set("k", "v")

	t.Run("servable until just before ttl", func(t *testing.T) {
		clock.Advance(ttl - time.Nanosecond)
		v, ok := store.Get("k", ttl)
		require.True(t, ok)
		assert.Equal(t, "v", v)
	})

	t.Run("absent at ttl", func(t *testing.T) {
		clock.Advance(time.Nanosecond)
		_, ok := store.Get("k", ttl)
		assert.False(t, ok)
	})
}

func TestStoreSetResetsInsertionTime(t *testing.T) {
	store, clock := newTestStore(100)
	ttl := time.Minute

	store.Set("k", 1)
	clock.Advance(50 * time.Second)
	store.Set("k", 2)
	clock.Advance(30 * time.Second)

	v, ok := store.Get("k", ttl)
	require.True(t, ok)
	assert.Equal(t, 2, v)
}

func TestStoreEvictsOldestFifth(t *testing.T) {
	store, clock := newTestStore(10)

	// Insert 10 entries one second apart, then one more to cross the
	// ceiling. The sweep must remove the oldest 20% (2 of 11).
	for i := 0; i < 10; i++ {
		store.Set(fmt.Sprintf("k%d", i), i)
		clock.Advance(time.Second)
	}
	store.Set("k10", 10)

	stats := store.Stats()
	assert.Equal(t, 9, stats.Entries)

	_, ok := store.Get("k0", time.Hour)
	assert.False(t, ok, "oldest entry must be evicted")
	_, ok = store.Get("k1", time.Hour)
	assert.False(t, ok, "second-oldest entry must be evicted")
	_, ok = store.Get("k2", time.Hour)
	assert.True(t, ok)
	_, ok = store.Get("k10", time.Hour)
	assert.True(t, ok)
}

func TestStoreInvalidate(t *testing.T) {
	store, _ := newTestStore(100)
	store.Set("grade_stats:g1:2024", 1)
	store.Set("grade_stats:g1:2025", 2)
	store.Set("student_history:s9", 3)

	t.Run("by prefix", func(t *testing.T) {
		removed := store.Invalidate("grade_stats:")
		assert.Equal(t, 2, removed)
		assert.Equal(t, 1, store.Stats().Entries)
	})

	t.Run("everything", func(t *testing.T) {
		removed := store.Invalidate("")
		assert.Equal(t, 1, removed)
		assert.Equal(t, 0, store.Stats().Entries)
	})
}

func TestStoreStatsOldestAge(t *testing.T) {
	store, clock := newTestStore(100)

	store.Set("old", 1)
	clock.Advance(3 * time.Minute)
	store.Set("new", 2)
	clock.Advance(time.Minute)

	stats := store.Stats()
	assert.Equal(t, 2, stats.Entries)
	assert.Equal(t, 4*time.Minute, stats.OldestAge)
}

func TestGetOrFetch(t *testing.T) {
	ctx := context.Background()

	t.Run("caches the produced value", func(t *testing.T) {
		store, _ := newTestStore(100)
		calls := 0
		producer := func(context.Context) (int, error) {
			calls++
			return 42, nil
		}

		v, err := GetOrFetch(ctx, store, "k", time.Minute, producer)
		require.NoError(t, err)
		assert.Equal(t, 42, v)

		v, err = GetOrFetch(ctx, store, "k", time.Minute, producer)
		require.NoError(t, err)
		assert.Equal(t, 42, v)
		assert.Equal(t, 1, calls)
	})

	t.Run("expired entry forces recompute", func(t *testing.T) {
		store, clock := newTestStore(100)
		calls := 0
		producer := func(context.Context) (string, error) {
			calls++
			return fmt.Sprintf("v%d", calls), nil
		}

		first, err := GetOrFetch(ctx, store, "k", time.Minute, producer)
		require.NoError(t, err)
		assert.Equal(t, "v1", first)

		clock.Advance(time.Minute + time.Millisecond)

		second, err := GetOrFetch(ctx, store, "k", time.Minute, producer)
		require.NoError(t, err)
		assert.Equal(t, "v2", second)
		assert.Equal(t, 2, calls)
	})

	t.Run("errors are not cached", func(t *testing.T) {
		store, _ := newTestStore(100)
		boom := errors.New("provider down")
		calls := 0

		_, err := GetOrFetch(ctx, store, "k", time.Minute, func(context.Context) (int, error) {
			calls++
			return 0, boom
		})
		assert.ErrorIs(t, err, boom)

		v, err := GetOrFetch(ctx, store, "k", time.Minute, func(context.Context) (int, error) {
			calls++
			return 7, nil
		})
		require.NoError(t, err)
		assert.Equal(t, 7, v)
		assert.Equal(t, 2, calls)
	})
}
