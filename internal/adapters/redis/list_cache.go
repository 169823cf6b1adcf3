package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ListCache caches serialized list payloads keyed by user and collection so
// read paths can fall back to recent data when the backend is down.
type ListCache struct {
	client redis.UniversalClient
	prefix string
}

// NewListCache creates a Redis-backed list cache.
func NewListCache(client redis.UniversalClient) *ListCache {
	return &ListCache{
		client: client,
		prefix: "list:",
	}
}

func (c *ListCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if key == "" {
		return errors.New("cache key cannot be empty")
	}
	return c.client.Set(ctx, c.prefix+key, value, ttl).Err()
}

func (c *ListCache) Get(ctx context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, nil
	}
	data, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("redis get: %w", err)
	}
	return data, nil
}

func (c *ListCache) Delete(ctx context.Context, key string) (bool, error) {
	if key == "" {
		return false, nil
	}
	n, err := c.client.Del(ctx, c.prefix+key).Result()
	if err != nil {
		return false, fmt.Errorf("redis del: %w", err)
	}
	return n > 0, nil
}
