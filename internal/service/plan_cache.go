package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/pageza/nutrichat/backend/internal/diet"
)

const planCacheKey = "plan:chat:%s"

// PlanCache keeps completed plans close to the API. The database stays the
// source of truth; a cache miss or failure falls back to it.
type PlanCache interface {
	Get(ctx context.Context, chatID string) (*diet.Plan, bool, error)
	Set(ctx context.Context, chatID string, plan *diet.Plan) error
	Delete(ctx context.Context, chatID string) error
}

// RedisPlanCache stores plans as JSON strings with a TTL
type RedisPlanCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

func NewRedisPlanCache(client redis.Cmdable, ttl time.Duration) *RedisPlanCache {
	return &RedisPlanCache{client: client, ttl: ttl}
}

func (c *RedisPlanCache) Get(ctx context.Context, chatID string) (*diet.Plan, bool, error) {
	raw, err := c.client.Get(ctx, fmt.Sprintf(planCacheKey, chatID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read cached plan: %w", err)
	}

	var plan diet.Plan
	if err := json.Unmarshal(raw, &plan); err != nil {
		return nil, false, fmt.Errorf("failed to decode cached plan: %w", err)
	}
	return &plan, true, nil
}

func (c *RedisPlanCache) Set(ctx context.Context, chatID string, plan *diet.Plan) error {
	raw, err := json.Marshal(plan)
	if err != nil {
		return fmt.Errorf("failed to encode plan: %w", err)
	}
	if err := c.client.Set(ctx, fmt.Sprintf(planCacheKey, chatID), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache plan: %w", err)
	}
	return nil
}

func (c *RedisPlanCache) Delete(ctx context.Context, chatID string) error {
	if err := c.client.Del(ctx, fmt.Sprintf(planCacheKey, chatID)).Err(); err != nil {
		return fmt.Errorf("failed to evict cached plan: %w", err)
	}
	return nil
}
