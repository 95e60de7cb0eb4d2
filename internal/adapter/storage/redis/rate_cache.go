package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"crossborder-remit/internal/core/domain"

	goredis "github.com/redis/go-redis/v9"
)

// RateCache implements ports.RateCache. The snapshot is stored in its
// row shape so a cached value goes through the same Parse boundary.
type RateCache struct {
	client *goredis.Client
	prefix string
}

// NewRateCache creates a new Redis-backed rate cache.
func NewRateCache(client *goredis.Client) *RateCache {
	return &RateCache{
		client: client,
		prefix: "rate:latest:",
	}
}

// Get returns the cached snapshot for pair, or nil, nil on a miss.
func (c *RateCache) Get(ctx context.Context, pair string) (*domain.ExchangeRate, error) {
	val, err := c.client.Get(ctx, c.prefix+pair).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("redis rate cache get: %w", err)
	}

	var rec domain.ExchangeRateRecord
	if err := json.Unmarshal(val, &rec); err != nil {
		return nil, fmt.Errorf("redis rate cache decode: %w", err)
	}
	return rec.Parse()
}

// Set stores the snapshot with TTL.
func (c *RateCache) Set(ctx context.Context, rate *domain.ExchangeRate, ttl time.Duration) error {
	val, err := json.Marshal(rate.Record())
	if err != nil {
		return fmt.Errorf("redis rate cache encode: %w", err)
	}
	if err := c.client.Set(ctx, c.prefix+rate.CurrencyPair, val, ttl).Err(); err != nil {
		return fmt.Errorf("redis rate cache set: %w", err)
	}
	return nil
}

// Delete drops the cached snapshot for pair.
func (c *RateCache) Delete(ctx context.Context, pair string) error {
	if err := c.client.Del(ctx, c.prefix+pair).Err(); err != nil {
		return fmt.Errorf("redis rate cache delete: %w", err)
	}
	return nil
}
