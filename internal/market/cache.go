package market

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache is a read-through TTL cache for upstream responses, keyed by the
// request that produced them. All methods are best-effort: a cache failure
// is never surfaced to the caller.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCache wraps a redis client with a fixed TTL
func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

// Get returns the cached payload for key, or nil on miss or error
func (c *Cache) Get(ctx context.Context, key string) []byte {
	if c == nil || c.client == nil {
		return nil
	}
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return nil
	}
	return data
}

// Set stores a payload under key for the configured TTL
func (c *Cache) Set(ctx context.Context, key string, data []byte) {
	if c == nil || c.client == nil {
		return
	}
	c.client.Set(ctx, key, data, c.ttl)
}
