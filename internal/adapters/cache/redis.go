package cache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Connect initializes a Redis client from URL or host:port input.
// Supporting both formats keeps local/dev and container config paths simple.
func Connect(_ context.Context, redisURL string) (*redis.Client, error) {
	if strings.HasPrefix(redisURL, "redis://") {
		opt, parseErr := redis.ParseURL(redisURL)
		if parseErr != nil {
			return nil, fmt.Errorf("parse redis url: %w", parseErr)
		}
		return redis.NewClient(opt), nil
	}
	return redis.NewClient(&redis.Options{Addr: redisURL}), nil
}

// RedisTrackingCache caches rendered public tracking views keyed by
// tracking number.
type RedisTrackingCache struct {
	client *redis.Client
}

func NewRedisTrackingCache(client *redis.Client) *RedisTrackingCache {
	return &RedisTrackingCache{client: client}
}

func trackingKey(trackingNumber string) string {
	return "tracking:view:" + trackingNumber
}

func (c *RedisTrackingCache) Get(ctx context.Context, trackingNumber string) ([]byte, bool, error) {
	raw, err := c.client.Get(ctx, trackingKey(trackingNumber)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return raw, true, nil
}

func (c *RedisTrackingCache) Set(ctx context.Context, trackingNumber string, payload []byte, ttl time.Duration) error {
	return c.client.Set(ctx, trackingKey(trackingNumber), payload, ttl).Err()
}

func (c *RedisTrackingCache) Invalidate(ctx context.Context, trackingNumber string) error {
	return c.client.Del(ctx, trackingKey(trackingNumber)).Err()
}
