package services

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/MonkyMars/gecho"
	"github.com/mateng0/shopkeeper-station/config"
	"github.com/mateng0/shopkeeper-station/database"
	"github.com/mateng0/shopkeeper-station/structs"
	"github.com/mateng0/shopkeeper-station/structs/tables"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var (
	redisClient *redis.Client
	redisOnce   sync.Once
	redisCtx    = context.Background()
)

// CacheService provides Redis caching with connection pooling and retry logic.
type CacheService struct {
	logger *gecho.Logger
	config *structs.Config
	client *redis.Client
}

func NewCacheService(logger *gecho.Logger, cfg *structs.Config) *CacheService {
	return &CacheService{
		logger: logger,
		config: cfg,
		client: getRedisClient(),
	}
}

// getRedisClient returns a singleton Redis client with connection pooling.
func getRedisClient() *redis.Client {
	redisOnce.Do(func() {
		cfg := config.GetConfig()
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Cache.Address,
			Username: cfg.Cache.Username,
			Password: cfg.Cache.Password,
			DB:       cfg.Cache.DB,

			PoolSize:        cfg.Cache.PoolSize,
			MinIdleConns:    cfg.Cache.MinIdleConns,
			MaxIdleConns:    cfg.Cache.MaxIdleConns,
			PoolTimeout:     cfg.Cache.PoolTimeout,
			ConnMaxIdleTime: cfg.Cache.IdleTimeout,

			DialTimeout:  cfg.Cache.DialTimeout,
			ReadTimeout:  cfg.Cache.ReadTimeout,
			WriteTimeout: cfg.Cache.WriteTimeout,

			MaxRetries:      cfg.Cache.MaxRetries,
			MinRetryBackoff: cfg.Cache.MinRetryBackoff,
			MaxRetryBackoff: cfg.Cache.MaxRetryBackoff,
		})
	})
	return redisClient
}

// Close closes the Redis connection pool.
func (cs *CacheService) Close() error {
	if redisClient != nil {
		return redisClient.Close()
	}
	return nil
}

// withRetry executes a Redis operation with exponential backoff retry logic.
func (cs *CacheService) withRetry(operation func() error, maxRetries int) error {
	var lastErr error

	for attempt := 0; attempt <= maxRetries; attempt++ {
		err := operation()
		if err == nil {
			return nil
		}

		lastErr = err

		if attempt == maxRetries {
			break
		}

		// Only retry on network/connection errors, not on logical errors like key not found
		if !isRetryableCacheError(err) {
			return err
		}

		maxBackoff := 2000 // max 2000ms = 2s
		base := 100        // 100ms base

		backoff := base * (1 << attempt)
		backoff = min(backoff, maxBackoff)

		// add jitter ±50%
		jitterBytes := make([]byte, 4)
		_, err = rand.Read(jitterBytes)
		if err != nil {
			time.Sleep(time.Duration(backoff) * time.Millisecond)
			continue
		}
		jitter := int(uint32(jitterBytes[0])<<24 | uint32(jitterBytes[1])<<16 | uint32(jitterBytes[2])<<8 | uint32(jitterBytes[3]))
		jitter = jitter % (backoff/2 + 1)
		backoffWithJitter := backoff/2 + jitter

		time.Sleep(time.Duration(backoffWithJitter) * time.Millisecond)
	}

	return fmt.Errorf("redis operation failed after %d retries: %w", maxRetries, lastErr)
}

// isRetryableCacheError determines if an error is worth retrying.
func isRetryableCacheError(err error) bool {
	if err == nil {
		return false
	}

	// Don't retry on nil results (key not found)
	if err == redis.Nil {
		return false
	}

	errStr := err.Error()
	retryableErrors := []string{
		"connection refused",
		"connection reset",
		"timeout",
		"broken pipe",
		"no such host",
		"network is unreachable",
	}

	for _, retryableErr := range retryableErrors {
		if strings.Contains(errStr, retryableErr) {
			return true
		}
	}

	return false
}

// Set sets a key with TTL and automatic retry logic.
func (cs *CacheService) Set(key string, value any, ttl time.Duration) error {
	return cs.withRetry(func() error {
		return cs.client.Set(redisCtx, key, value, ttl).Err()
	}, 3)
}

// Get retrieves a key with automatic retry logic. Missing keys return "" without error.
func (cs *CacheService) Get(key string) (string, error) {
	var result string

	err := cs.withRetry(func() error {
		val, err := cs.client.Get(redisCtx, key).Result()
		if err == redis.Nil {
			result = ""
			return nil
		}
		if err != nil {
			return err
		}
		result = val
		return nil
	}, 3)

	return result, err
}

// Delete removes a key with automatic retry logic.
func (cs *CacheService) Delete(key string) error {
	return cs.withRetry(func() error {
		return cs.client.Del(redisCtx, key).Err()
	}, 3)
}

// Exists checks whether a key exists.
func (cs *CacheService) Exists(key string) (bool, error) {
	var exists bool

	err := cs.withRetry(func() error {
		count, err := cs.client.Exists(redisCtx, key).Result()
		if err != nil {
			return err
		}
		exists = count > 0
		return nil
	}, 3)

	return exists, err
}

// BlacklistToken marks a token id as revoked until the token would have expired.
func (cs *CacheService) BlacklistToken(jti string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		// Already expired, nothing to blacklist
		return nil
	}
	if ttl > cs.config.Cache.BlacklistTTL {
		ttl = cs.config.Cache.BlacklistTTL
	}

	key := fmt.Sprintf("blacklist:%s", jti)
	return cs.Set(key, "revoked", ttl)
}

// IsTokenBlacklisted checks whether a token id has been revoked.
func (cs *CacheService) IsTokenBlacklisted(jti string) (bool, error) {
	key := fmt.Sprintf("blacklist:%s", jti)
	return cs.Exists(key)
}

// GetUserFromCache retrieves a cached user by id.
func (cs *CacheService) GetUserFromCache(userID uuid.UUID) (*tables.User, error) {
	key := fmt.Sprintf("user:%s", userID)
	return getJSON[tables.User](cs, key)
}

// SetUserInCache caches a user by id.
func (cs *CacheService) SetUserInCache(user *tables.User) error {
	key := fmt.Sprintf("user:%s", user.Id)
	return setJSON(cs, key, user, cs.config.Cache.UserTTL)
}

// DeleteUserFromCache evicts a cached user.
func (cs *CacheService) DeleteUserFromCache(userID uuid.UUID) error {
	key := fmt.Sprintf("user:%s", userID)
	return cs.Delete(key)
}

type cachedProductList struct {
	Products   []tables.Product    `json:"products"`
	Pagination database.Pagination `json:"pagination"`
}

// GetProductListFromCache retrieves a cached storefront page together with
// the pagination metadata it was stored with, so a cache hit reports the
// same totals as the query it replaced.
func (cs *CacheService) GetProductListFromCache(page, pageSize int, sortBy, sortDirection string) ([]tables.Product, *database.Pagination, error) {
	key := productListKey(page, pageSize, sortBy, sortDirection)
	cached, err := getJSON[cachedProductList](cs, key)
	if err != nil || cached == nil {
		return nil, nil, err
	}
	return cached.Products, &cached.Pagination, nil
}

// SetProductListInCache caches a storefront page with its pagination metadata.
func (cs *CacheService) SetProductListInCache(page, pageSize int, sortBy, sortDirection string, products []tables.Product, pagination database.Pagination) error {
	key := productListKey(page, pageSize, sortBy, sortDirection)
	entry := cachedProductList{Products: products, Pagination: pagination}
	return setJSON(cs, key, entry, cs.config.Cache.ProductTTL)
}

// InvalidateProductCaches drops all cached product list pages after a write.
func (cs *CacheService) InvalidateProductCaches() error {
	return cs.withRetry(func() error {
		iter := cs.client.Scan(redisCtx, 0, "products:list:*", 100).Iterator()
		var keys []string
		for iter.Next(redisCtx) {
			keys = append(keys, iter.Val())
		}
		if err := iter.Err(); err != nil {
			return err
		}
		if len(keys) == 0 {
			return nil
		}
		return cs.client.Del(redisCtx, keys...).Err()
	}, 3)
}

func productListKey(page, pageSize int, sortBy, sortDirection string) string {
	return fmt.Sprintf("products:list:page:%d:size:%d:sort:%s:%s", page, pageSize, sortBy, sortDirection)
}

// IncrementRateLimit increments a rate limit counter, setting the window TTL on first hit.
func (cs *CacheService) IncrementRateLimit(scope, identifier string, window time.Duration) (int64, error) {
	key := fmt.Sprintf("ratelimit:%s:%s", scope, identifier)
	var count int64

	err := cs.withRetry(func() error {
		val, err := cs.client.Incr(redisCtx, key).Result()
		if err != nil {
			return err
		}
		count = val

		if val == 1 {
			if err := cs.client.Expire(redisCtx, key, window).Err(); err != nil {
				return err
			}
		}
		return nil
	}, 3)

	return count, err
}

// Ping verifies the Redis connection.
func (cs *CacheService) Ping() error {
	return cs.withRetry(func() error {
		return cs.client.Ping(redisCtx).Err()
	}, 3)
}

// GetConnectionStats returns Redis pool statistics for health reporting.
func (cs *CacheService) GetConnectionStats() map[string]any {
	stats := cs.client.PoolStats()
	return map[string]any{
		"hits":        stats.Hits,
		"misses":      stats.Misses,
		"timeouts":    stats.Timeouts,
		"total_conns": stats.TotalConns,
		"idle_conns":  stats.IdleConns,
		"stale_conns": stats.StaleConns,
	}
}

// getJSON fetches and unmarshals a cached JSON value. Missing keys return (nil, nil).
func getJSON[T any](cs *CacheService, key string) (*T, error) {
	raw, err := cs.Get(key)
	if err != nil {
		return nil, err
	}
	if raw == "" {
		return nil, nil
	}

	var value T
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		// Corrupt entry, drop it so the next read repopulates
		_ = cs.Delete(key)
		return nil, nil
	}
	return &value, nil
}

// setJSON marshals and caches a JSON value.
func setJSON[T any](cs *CacheService, key string, value T, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache value for %s: %w", key, err)
	}
	return cs.Set(key, string(raw), ttl)
}
