package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/kislikjeka/moonwallet/pkg/logger"
)

const (
	// DefaultTTL keeps a cached balance fresh enough between polls
	DefaultTTL = 30 * time.Second

	// KeyPrefix is the prefix for balance cache keys
	KeyPrefix = "balance:"
)

// BalanceCache is a Redis-backed cache of per-address balances
type BalanceCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *logger.Logger
}

// NewBalanceCache creates a new balance cache with the default TTL
func NewBalanceCache(client *redis.Client, log *logger.Logger) *BalanceCache {
	return NewBalanceCacheWithTTL(client, DefaultTTL, log)
}

// NewBalanceCacheWithTTL creates a new balance cache with a custom TTL
func NewBalanceCacheWithTTL(client *redis.Client, ttl time.Duration, log *logger.Logger) *BalanceCache {
	return &BalanceCache{
		client: client,
		ttl:    ttl,
		logger: log.WithField("component", "cache"),
	}
}

type cachedBalance struct {
	Address   string    `json:"address"`
	Balance   int64     `json:"balance"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Get retrieves the cached balance for an address. The second return
// value reports whether a fresh entry was found.
func (c *BalanceCache) Get(ctx context.Context, address string) (int64, bool, error) {
	key := KeyPrefix + address

	val, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		c.logger.Debug("cache miss", "address", address)
		return 0, false, nil
	}
	if err != nil {
		c.logger.Error("cache error", "operation", "get", "address", address, "error", err)
		return 0, false, fmt.Errorf("failed to get cached balance: %w", err)
	}

	var cached cachedBalance
	if err := json.Unmarshal([]byte(val), &cached); err != nil {
		return 0, false, fmt.Errorf("failed to unmarshal cached balance: %w", err)
	}

	c.logger.Debug("cache hit", "address", address)
	return cached.Balance, true, nil
}

// Set stores a balance in the cache
func (c *BalanceCache) Set(ctx context.Context, address string, balance int64) error {
	key := KeyPrefix + address

	cached := cachedBalance{
		Address:   address,
		Balance:   balance,
		UpdatedAt: time.Now().UTC(),
	}

	data, err := json.Marshal(cached)
	if err != nil {
		return fmt.Errorf("failed to marshal balance: %w", err)
	}

	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.logger.Error("cache error", "operation", "set", "address", address, "error", err)
		return fmt.Errorf("failed to set cached balance: %w", err)
	}
	return nil
}

// Delete removes a cached balance
func (c *BalanceCache) Delete(ctx context.Context, address string) error {
	return c.client.Del(ctx, KeyPrefix+address).Err()
}
