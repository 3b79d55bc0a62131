package stats

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const cacheKey = "relief:stats:overview"

// Cache holds the serialized overview in Redis with a short TTL. A miss
// just means the caller recomputes; Redis being down degrades to that too.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

func (c *Cache) Get(ctx context.Context) (*Overview, error) {
	data, err := c.client.Get(ctx, cacheKey).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("stats cache get: %w", err)
	}

	var o Overview
	if err := json.Unmarshal([]byte(data), &o); err != nil {
		return nil, fmt.Errorf("stats cache decode: %w", err)
	}
	return &o, nil
}

func (c *Cache) Set(ctx context.Context, o *Overview) error {
	data, err := json.Marshal(o)
	if err != nil {
		return fmt.Errorf("stats cache encode: %w", err)
	}
	if err := c.client.Set(ctx, cacheKey, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("stats cache set: %w", err)
	}
	return nil
}
