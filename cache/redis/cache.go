package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mathiasquintero/Vaporized/cache"
)

// Cache implements cache.Cache backed by Redis.
type Cache struct {
	client *redis.Client
	prefix string
}

// New creates a Cache on an existing Redis client. The prefix namespaces
// every key so several services can share one Redis instance.
func New(client *redis.Client, prefix string) *Cache {
	return &Cache{
		client: client,
		prefix: prefix,
	}
}

// NewFromURL connects to Redis at the given URL (for example
// redis://:pass@host:6379/0) and pings it, failing fast on an
// unreachable server.
func NewFromURL(ctx context.Context, redisURL, prefix string) (*Cache, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}

	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return New(client, prefix), nil
}

func (c *Cache) key(k string) string {
	return fmt.Sprintf("%s:token:%s", c.prefix, k)
}

// Get implements cache.Cache.Get.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := c.client.Get(ctx, c.key(key)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get: %w", err)
	}
	return val, true, nil
}

// Set implements cache.Cache.Set. A zero ttl stores the key without
// Redis-side expiry.
func (c *Cache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl < 0 {
		ttl = 0
	}
	if err := c.client.Set(ctx, c.key(key), value, ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Delete implements cache.Cache.Delete.
func (c *Cache) Delete(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, c.key(key)).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

// Close closes the underlying client.
func (c *Cache) Close() error {
	return c.client.Close()
}

var _ cache.Cache = (*Cache)(nil)
