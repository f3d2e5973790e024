package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/microshop-io/microshop/internal/port"
)

// RedisCache is an EntityCache whose entries live in Redis instead of the
// process heap, so several replicas of a service share one cache. Values
// are JSON-encoded under prefix:key. The same cache-aside discipline as the
// in-memory store applies: read-through on miss with absence not cached,
// backing store written before the cache entry, backing delete before the
// eviction.
type RedisCache[V any] struct {
	client  *redis.Client
	prefix  string
	backing port.CacheBacking[V]
	ttl     time.Duration
}

func NewRedisCache[V any](client *redis.Client, prefix string, backing port.CacheBacking[V], ttl time.Duration) *RedisCache[V] {
	return &RedisCache[V]{client: client, prefix: prefix, backing: backing, ttl: ttl}
}

func (c *RedisCache[V]) Get(ctx context.Context, key string) (V, bool, error) {
	var zero V

	raw, err := c.client.Get(ctx, c.key(key)).Bytes()
	switch {
	case err == nil:
		var value V
		if err := json.Unmarshal(raw, &value); err != nil {
			return zero, false, fmt.Errorf("decode cached %s: %w", c.prefix, err)
		}
		return value, true, nil
	case !errors.Is(err, redis.Nil):
		return zero, false, fmt.Errorf("cache read: %w", err)
	}

	value, found, err := c.backing.Load(ctx, key)
	if err != nil || !found {
		return zero, false, err
	}
	if err := c.set(ctx, key, value); err != nil {
		return zero, false, err
	}
	return value, true, nil
}

func (c *RedisCache[V]) Put(ctx context.Context, key string, value V) error {
	if err := c.backing.Store(ctx, key, value); err != nil {
		return err
	}
	return c.set(ctx, key, value)
}

func (c *RedisCache[V]) Invalidate(ctx context.Context, key string) error {
	if err := c.backing.Delete(ctx, key); err != nil {
		return err
	}
	if err := c.client.Del(ctx, c.key(key)).Err(); err != nil {
		return fmt.Errorf("cache evict: %w", err)
	}
	return nil
}

func (c *RedisCache[V]) set(ctx context.Context, key string, value V) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode cached %s: %w", c.prefix, err)
	}
	if err := c.client.Set(ctx, c.key(key), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache write: %w", err)
	}
	return nil
}

func (c *RedisCache[V]) key(key string) string {
	return c.prefix + ":" + key
}
