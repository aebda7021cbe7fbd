// Package cache implements the application cache adapters on Redis.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/paytrack/backend/internal/application/adapter"
)

// scanBatchSize bounds how many keys one SCAN iteration may return.
const scanBatchSize = 100

// reportCache implements adapter.ReportCache on a Redis client.
type reportCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewReportCache creates a Redis-backed report cache. Entries expire
// after the given TTL.
func NewReportCache(client *redis.Client, ttl time.Duration) adapter.ReportCache {
	return &reportCache{
		client: client,
		ttl:    ttl,
	}
}

// Get returns the cached payload for the key, or nil when absent.
func (c *reportCache) Get(ctx context.Context, key string) ([]byte, error) {
	payload, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get cached report: %w", err)
	}

	return payload, nil
}

// Set stores the payload under the key with the configured TTL.
func (c *reportCache) Set(ctx context.Context, key string, payload []byte) error {
	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache report: %w", err)
	}

	return nil
}

// InvalidateUser removes every cached report belonging to the user.
// Keys are discovered with SCAN so a large keyspace never blocks Redis.
func (c *reportCache) InvalidateUser(ctx context.Context, userID uuid.UUID) error {
	pattern := adapter.ReportCacheUserPattern(userID)

	var cursor uint64
	for {
		keys, next, err := c.client.Scan(ctx, cursor, pattern, scanBatchSize).Result()
		if err != nil {
			return fmt.Errorf("failed to scan cached reports: %w", err)
		}

		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("failed to delete cached reports: %w", err)
			}
		}

		cursor = next
		if cursor == 0 {
			break
		}
	}

	return nil
}
