// Package cache keeps short-lived copies of public catalogue reads in Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/yatra/backend/internal/domain"
)

// RedisCache stores destination summaries as JSON with a fixed TTL.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache connects lazily; the first command dials.
func NewRedisCache(addr, password string, db int, ttl time.Duration) *RedisCache {
	return &RedisCache{
		client: redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db}),
		ttl:    ttl,
	}
}

// GetDestination returns nil, nil on a miss.
func (c *RedisCache) GetDestination(ctx context.Context, id string) (*domain.DestinationSummary, error) {
	data, err := c.client.Get(ctx, destinationKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var summary domain.DestinationSummary
	if err := json.Unmarshal(data, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

// SetDestination stores summary under its destination ID.
func (c *RedisCache) SetDestination(ctx context.Context, summary *domain.DestinationSummary) error {
	if summary == nil || summary.Destination == nil {
		return nil
	}
	payload, err := json.Marshal(summary)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, destinationKey(summary.Destination.ID), payload, c.ttl).Err()
}

// DeleteDestination drops the cached summary of a destination.
func (c *RedisCache) DeleteDestination(ctx context.Context, id string) error {
	return c.client.Del(ctx, destinationKey(id)).Err()
}

// Ping checks the connection.
func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close releases the connection pool.
func (c *RedisCache) Close() error {
	return c.client.Close()
}

func destinationKey(id string) string {
	return "cache:destination:" + id
}
