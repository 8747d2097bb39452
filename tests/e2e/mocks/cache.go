package mocks

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// MissCache always misses, so every request exercises the full stack.
type MissCache struct{}

func (c *MissCache) Get(ctx context.Context, key string, dest any) error {
	return redis.Nil
}

func (c *MissCache) Set(ctx context.Context, key string, value any, exp time.Duration) error {
	return nil
}

func (c *MissCache) Close() error {
	return nil
}

// TrackingCache counts calls so tests can assert on cache traffic.
type TrackingCache struct {
	GetCalls int
	SetCalls int
}

func (c *TrackingCache) Get(ctx context.Context, key string, dest any) error {
	c.GetCalls++
	return redis.Nil
}

func (c *TrackingCache) Set(ctx context.Context, key string, value any, exp time.Duration) error {
	c.SetCalls++
	return nil
}

func (c *TrackingCache) Close() error {
	return nil
}
