package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisSummaryCache caches serialized compliance summaries in Redis.
// Keys carry the tenant ID, so a tenant invalidation can scan its
// own keys without touching other tenants.
type RedisSummaryCache struct {
	client *redis.Client
	ttl    time.Duration
}

// RedisConfig holds Redis connection settings for the cache
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// NewRedisSummaryCache creates a Redis-backed summary cache and verifies
// connectivity
func NewRedisSummaryCache(cfg RedisConfig, ttl time.Duration) (*RedisSummaryCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisSummaryCache{client: client, ttl: ttl}, nil
}

// Get retrieves a cached summary. The second return value reports whether
// the key was present.
func (c *RedisSummaryCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return raw, true, nil
}

// Set stores a serialized summary with the configured TTL
func (c *RedisSummaryCache) Set(ctx context.Context, key string, value []byte) error {
	return c.client.Set(ctx, key, value, c.ttl).Err()
}

// InvalidateTenant removes all cached summaries of the tenant
func (c *RedisSummaryCache) InvalidateTenant(ctx context.Context, tenantID uuid.UUID) error {
	pattern := fmt.Sprintf("compliance:summary:%s:*", tenantID)
	iter := c.client.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

// Close releases the Redis connection
func (c *RedisSummaryCache) Close() error {
	return c.client.Close()
}
