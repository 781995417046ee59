// Package cache stores computed KPI comparisons in Redis, keyed by user and window.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/blaisecz/nightlog/internal/domain"
	"github.com/blaisecz/nightlog/internal/kpi"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "kpi:"

// KPICache stores KPI comparisons. Get returns nil, nil on a miss.
type KPICache interface {
	Get(ctx context.Context, key string) (*domain.KPIComparison, error)
	Set(ctx context.Context, key string, cmp *domain.KPIComparison) error
	// InvalidateUser drops every cached comparison of the user.
	InvalidateUser(ctx context.Context, userID uuid.UUID) error
	Close() error
}

// Key identifies the comparison of one user for one current window.
func Key(userID uuid.UUID, w kpi.Window) string {
	return fmt.Sprintf("%s%s:%s:%s", keyPrefix, userID, w.From.Format("20060102"), w.To.Format("20060102"))
}

func userPattern(userID uuid.UUID) string {
	return keyPrefix + userID.String() + ":*"
}

type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(addr, password string, db int, ttl time.Duration) *RedisCache {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &RedisCache{client: client, ttl: ttl}
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

func (c *RedisCache) Get(ctx context.Context, key string) (*domain.KPIComparison, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("redis get: %w", err)
	}

	var cmp domain.KPIComparison
	if err := json.Unmarshal(data, &cmp); err != nil {
		return nil, fmt.Errorf("unmarshal kpi: %w", err)
	}
	return &cmp, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, cmp *domain.KPIComparison) error {
	payload, err := json.Marshal(cmp)
	if err != nil {
		return fmt.Errorf("marshal kpi: %w", err)
	}
	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (c *RedisCache) InvalidateUser(ctx context.Context, userID uuid.UUID) error {
	iter := c.client.Scan(ctx, 0, userPattern(userID), 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("redis scan: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

// Noop is used when Redis is not configured; every lookup misses.
type Noop struct{}

func (Noop) Get(context.Context, string) (*domain.KPIComparison, error) { return nil, nil }
func (Noop) Set(context.Context, string, *domain.KPIComparison) error { return nil }
func (Noop) InvalidateUser(context.Context, uuid.UUID) error { return nil }
func (Noop) Close() error { return nil }
