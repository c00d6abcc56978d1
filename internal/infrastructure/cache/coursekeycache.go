// Package cache contains redis-backed caches in front of the mapping tables.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"spyglass/internal/domain/tenant"
	"spyglass/internal/shared/logger"
)

const (
	courseKeyPrefix = "tenant:coursekeys:"
)

// RedisCourseKeyCache implements tenant.CourseKeyCache using Redis. The
// tenant course set changes rarely but is read on every aggregation unit, so
// a short TTL in front of the mapping tables removes the join from the hot
// path while keeping staleness bounded.
type RedisCourseKeyCache struct {
	client *redis.Client
	ttl    time.Duration
	logger logger.Interface
}

// NewRedisCourseKeyCache creates a new Redis-based course key cache.
func NewRedisCourseKeyCache(client *redis.Client, ttl time.Duration, logger logger.Interface) tenant.CourseKeyCache {
	return &RedisCourseKeyCache{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

func (c *RedisCourseKeyCache) key(tenantID uint) string {
	return fmt.Sprintf("%s%d", courseKeyPrefix, tenantID)
}

// Get retrieves the cached course key set. The second return value is false
// on a cache miss.
func (c *RedisCourseKeyCache) Get(ctx context.Context, tenantID uint) ([]string, bool, error) {
	data, err := c.client.Get(ctx, c.key(tenantID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to get course keys from cache: %w", err)
	}

	var keys []string
	if err := json.Unmarshal(data, &keys); err != nil {
		// Corrupt entry: treat as a miss so the store refreshes it.
		c.logger.Warnw("corrupt course key cache entry", "tenant_id", tenantID, "error", err)
		return nil, false, nil
	}

	return keys, true, nil
}

// Set stores the course key set with the configured TTL.
func (c *RedisCourseKeyCache) Set(ctx context.Context, tenantID uint, courseKeys []string) error {
	data, err := json.Marshal(courseKeys)
	if err != nil {
		return fmt.Errorf("failed to marshal course keys: %w", err)
	}

	if err := c.client.Set(ctx, c.key(tenantID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set course keys in cache: %w", err)
	}

	return nil
}

// Invalidate drops the cached set for a tenant.
func (c *RedisCourseKeyCache) Invalidate(ctx context.Context, tenantID uint) error {
	if err := c.client.Del(ctx, c.key(tenantID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate course key cache: %w", err)
	}

	return nil
}
