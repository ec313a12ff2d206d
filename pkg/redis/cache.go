package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache provides string caching with TTL semantics.
// The assessment pipeline caches Comtrade reference documents here so that
// repeated calculations do not re-fetch the area lists.
type Cache struct {
	client *Client
	prefix string
}

// NewCache creates a new cache helper
func NewCache(client *Client, prefix string) *Cache {
	return &Cache{
		client: client,
		prefix: prefix,
	}
}

// Get retrieves a cached value. The second return value reports whether the
// key was present.
func (c *Cache) Get(ctx context.Context, key string) (string, bool, error) {
	if !c.client.Enabled() {
		return "", false, nil
	}

	value, err := c.client.Redis().Get(ctx, c.fullKey(key)).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("cache get failed: %w", err)
	}

	return value, true, nil
}

// Set stores a value in cache with TTL
func (c *Cache) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	if !c.client.Enabled() {
		return nil
	}

	return c.client.Redis().Set(ctx, c.fullKey(key), value, ttl).Err()
}

// Delete removes a cached value
func (c *Cache) Delete(ctx context.Context, key string) error {
	if !c.client.Enabled() {
		return nil
	}

	return c.client.Redis().Del(ctx, c.fullKey(key)).Err()
}

func (c *Cache) fullKey(key string) string {
	if c.prefix == "" {
		return key
	}
	return fmt.Sprintf("%s:%s", c.prefix, key)
}

// Predefined TTLs
const (
	TTLShort     = 1 * time.Minute
	TTLMedium    = 10 * time.Minute
	TTLReference = 2 * time.Hour // Comtrade area lists
	TTLDaily     = 24 * time.Hour
)
