package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrMiss is returned when a section is not present in the cache.
var ErrMiss = errors.New("section cache miss")

// SectionCache stores rendered marketing-section payloads in Redis so the
// storefront can serve the new-arrivals and category-grid sections without
// hitting the product source on every page view.
type SectionCache struct {
	redis *RedisClient
	ttl   time.Duration
}

// NewSectionCache creates a SectionCache with the given freshness TTL.
func NewSectionCache(redis *RedisClient, ttl time.Duration) *SectionCache {
	return &SectionCache{redis: redis, ttl: ttl}
}

func (c *SectionCache) key(name string) string {
	return fmt.Sprintf("section:%s", name)
}

// Set serializes and stores a section payload under its name.
func (c *SectionCache) Set(ctx context.Context, name string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal section payload: %w", err)
	}
	if err := c.redis.Set(ctx, c.key(name), string(data), c.ttl); err != nil {
		return fmt.Errorf("failed to store section: %w", err)
	}
	return nil
}

// Get loads a section payload into out. Returns ErrMiss when absent.
func (c *SectionCache) Get(ctx context.Context, name string, out any) error {
	data, err := c.redis.Get(ctx, c.key(name))
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrMiss
		}
		return err
	}
	if err := json.Unmarshal([]byte(data), out); err != nil {
		return fmt.Errorf("failed to unmarshal section payload: %w", err)
	}
	return nil
}
