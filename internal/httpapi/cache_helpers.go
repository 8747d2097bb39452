package httpapi

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

type fetchFunc[T any] func(ctx context.Context) (T, error)

const cacheSetTimeout = 5 * time.Second

// jitterTTL spreads expirations by up to ±10% so keys written together
// do not all expire in the same instant.
func jitterTTL(ttl time.Duration) time.Duration {
	if ttl <= 0 {
		return ttl
	}
	spread := int64(ttl) / 10
	if spread == 0 {
		return ttl
	}
	return ttl + time.Duration(rand.Int63n(2*spread)-spread)
}

// findAndCache is a read-through helper over the response cache. Concurrent
// misses on the same key collapse into a single fetch via singleflight, and
// the cache write happens off the request path.
func findAndCache[T any](
	ctx context.Context,
	c Cacher,
	sf *singleflight.Group,
	key string,
	ttl time.Duration,
	logger *zap.Logger,
	onHit, onMiss func(),
	fn fetchFunc[T],
) (T, error) {
	var zero T
	if logger == nil {
		logger = zap.NewNop()
	}

	var cached T
	err := c.Get(ctx, key, &cached)
	switch {
	case err == nil:
		onHit()
		logger.Debug("response cache hit", zap.String("key", key))
		return cached, nil

	case errors.Is(err, redis.Nil):
		onMiss()
		logger.Debug("response cache miss", zap.String("key", key))

	default:
		onMiss()
		logger.Warn("response cache get failed, treating as miss",
			zap.String("key", key), zap.Error(err))
	}

	v, err, shared := sf.Do(key, func() (any, error) {
		value, err := fn(ctx)
		if err != nil {
			return nil, err
		}

		go func(v T) {
			setCtx, cancel := context.WithTimeout(context.Background(), cacheSetTimeout)
			defer cancel()

			if err := c.Set(setCtx, key, v, jitterTTL(ttl)); err != nil {
				logger.Warn("response cache set failed",
					zap.String("key", key), zap.Error(err))
			}
		}(value)

		return value, nil
	})
	if err != nil {
		return zero, err
	}

	value, ok := v.(T)
	if !ok {
		logger.Error("singleflight type mismatch", zap.String("key", key))
		return zero, fmt.Errorf("unexpected cached type for key %q", key)
	}

	if shared {
		logger.Debug("singleflight shared result", zap.String("key", key))
	}

	return value, nil
}
