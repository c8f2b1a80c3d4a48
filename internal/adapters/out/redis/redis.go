// Package redis caches public tracking views in Redis.
package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// KeyPrefix namespaces every tracking view key.
const KeyPrefix = "tracking:"

type Config struct {
	Addr     string
	Username string
	Password string
	DB       int
}

// Cache implements ports.TrackingCache.
type Cache struct {
	client *redis.Client
}

func NewCache(cfg Config) *Cache {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Username: cfg.Username,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	return &Cache{client: client}
}

func key(trackingNumber string) string {
	return KeyPrefix + trackingNumber
}

func (c *Cache) Get(ctx context.Context, trackingNumber string) ([]byte, bool, error) {
	payload, err := c.client.Get(ctx, key(trackingNumber)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return payload, true, nil
}

func (c *Cache) Set(ctx context.Context, trackingNumber string, payload []byte, ttl time.Duration) error {
	return c.client.Set(ctx, key(trackingNumber), payload, ttl).Err()
}

func (c *Cache) Invalidate(ctx context.Context, trackingNumbers ...string) error {
	if len(trackingNumbers) == 0 {
		return nil
	}
	keys := make([]string, 0, len(trackingNumbers))
	for _, n := range trackingNumbers {
		keys = append(keys, key(n))
	}
	return c.client.Del(ctx, keys...).Err()
}

// InvalidateAll drops every tracking view.
func (c *Cache) InvalidateAll(ctx context.Context) error {
	return c.DeleteByPrefix(ctx, KeyPrefix)
}

func (c *Cache) DeleteByPrefix(ctx context.Context, prefix string) error {
	iter := c.client.Scan(ctx, 0, prefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *Cache) Close() error {
	return c.client.Close()
}

// NoopCache is used when no Redis address is configured: every lookup misses.
type NoopCache struct{}

func (NoopCache) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, nil
}

func (NoopCache) Set(context.Context, string, []byte, time.Duration) error {
	return nil
}

func (NoopCache) Invalidate(context.Context, ...string) error {
	return nil
}

func (NoopCache) InvalidateAll(context.Context) error {
	return nil
}
