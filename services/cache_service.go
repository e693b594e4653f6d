package services

import (
	"context"
	"encoding/json"
	"fmt"
	"stockmate_server/config"
	"stockmate_server/structs"
	"strings"
	"sync"
	"time"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var (
	redisClient *redis.Client
	redisOnce   sync.Once
	redisCtx    = context.Background()
)

// CacheService provides Redis caching functionality with connection pooling and retry logic
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

func getRedisClient() *redis.Client {
	redisOnce.Do(func() {
		cfg := config.GetConfig()
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Cache.Address,
			Username: cfg.Cache.Username,
			Password: cfg.Cache.Password,
			DB:       cfg.Cache.DB,

			PoolSize:     cfg.Cache.PoolSize,
			MinIdleConns: cfg.Cache.MinIdleConns,

			DialTimeout:  cfg.Cache.DialTimeout,
			ReadTimeout:  cfg.Cache.ReadTimeout,
			WriteTimeout: cfg.Cache.WriteTimeout,

			MaxRetries: cfg.Cache.MaxRetries,
		})
	})
	return redisClient
}

// Close closes the Redis connection pool
func (cs *CacheService) Close() error {
	if redisClient != nil {
		return redisClient.Close()
	}
	return nil
}

// withRetry executes a Redis operation with fixed backoff retry logic
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

		// Only retry on network errors, not on logical errors like key not found
		if !isRetryableCacheError(err) {
			return err
		}

		time.Sleep(time.Duration(100*(attempt+1)) * time.Millisecond)
	}

	return lastErr
}

func isRetryableCacheError(err error) bool {
	if err == nil || err == redis.Nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "connection reset") ||
		strings.Contains(msg, "broken pipe") ||
		strings.Contains(msg, "i/o timeout") ||
		strings.Contains(msg, "eof")
}

// ============================================================================
// Low-level operations
// ============================================================================

func (cs *CacheService) Get(key string) (string, error) {
	var val string
	err := cs.withRetry(func() error {
		var err error
		val, err = cs.client.Get(redisCtx, key).Result()
		if err == redis.Nil {
			val = ""
			return nil // cache miss, not an error
		}
		return err
	}, cs.config.Cache.MaxRetries)
	return val, err
}

func (cs *CacheService) Set(key string, value []byte, ttl time.Duration) error {
	return cs.withRetry(func() error {
		return cs.client.Set(redisCtx, key, value, ttl).Err()
	}, cs.config.Cache.MaxRetries)
}

func (cs *CacheService) Delete(keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return cs.withRetry(func() error {
		return cs.client.Del(redisCtx, keys...).Err()
	}, cs.config.Cache.MaxRetries)
}

// DeletePattern removes all keys matching a pattern using SCAN
func (cs *CacheService) DeletePattern(pattern string) error {
	return cs.withRetry(func() error {
		var cursor uint64

		for {
			keys, nextCursor, err := cs.client.Scan(redisCtx, cursor, pattern, 100).Result()
			if err != nil {
				return fmt.Errorf("scan failed: %w", err)
			}

			if len(keys) > 0 {
				if err := cs.client.Del(redisCtx, keys...).Err(); err != nil {
					return fmt.Errorf("delete failed: %w", err)
				}
			}

			cursor = nextCursor
			if cursor == 0 {
				break
			}
		}

		return nil
	}, cs.config.Cache.MaxRetries)
}

func setJSON[T any](cs *CacheService, key string, value T, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return cs.Set(key, data, ttl)
}

func getJSON[T any](cs *CacheService, key string) (*T, error) {
	val, err := cs.Get(key)
	if err != nil {
		return nil, err
	}

	if val == "" {
		return nil, nil // not found in cache
	}

	var result T
	err = json.Unmarshal([]byte(val), &result)
	if err != nil {
		return nil, err
	}

	return &result, nil
}

// ============================================================================
// Typed cache accessors
// ============================================================================

// GetCachedList retrieves a cached slice of any type under the given key
func GetCachedList[T any](cs *CacheService, key string) ([]T, error) {
	list, err := getJSON[[]T](cs, key)
	if err != nil || list == nil {
		return nil, err
	}
	return *list, nil
}

// SetCachedList caches a slice of any type under the given key
func SetCachedList[T any](cs *CacheService, key string, list []T, ttl time.Duration) error {
	return setJSON(cs, key, list, ttl)
}

func (cs *CacheService) CategoryListTTL() time.Duration {
	if cs.config.Cache.CategoryListTTL > 0 {
		return cs.config.Cache.CategoryListTTL
	}
	return 5 * time.Minute
}

func (cs *CacheService) ProductListTTL() time.Duration {
	if cs.config.Cache.ProductListTTL > 0 {
		return cs.config.Cache.ProductListTTL
	}
	return 5 * time.Minute
}

func (cs *CacheService) SalesSummaryTTL() time.Duration {
	if cs.config.Cache.SalesSummaryTTL > 0 {
		return cs.config.Cache.SalesSummaryTTL
	}
	return 1 * time.Minute
}

// ============================================================================
// Cache invalidation
// ============================================================================

// InvalidateCategoryCaches removes category list caches. Product lists carry
// category annotations, so they go too.
func (cs *CacheService) InvalidateCategoryCaches() error {
	for _, pattern := range []string{"categories:*", "products:*"} {
		if err := cs.DeletePattern(pattern); err != nil {
			cs.logger.Warn("Failed to delete cache pattern", gecho.Field("pattern", pattern), gecho.Field("error", err))
			return err
		}
	}
	return nil
}

// InvalidateProductCaches removes all product-related caches.
// This is the invalidation signal sent after any product mutation.
func (cs *CacheService) InvalidateProductCaches(productID uuid.UUID) error {
	cs.logger.Debug("Invalidating product caches", gecho.Field("product_id", productID))

	for _, pattern := range []string{fmt.Sprintf("product:id:%s", productID.String()), "products:*", "categories:*"} {
		if err := cs.DeletePattern(pattern); err != nil {
			cs.logger.Warn("Failed to delete cache pattern", gecho.Field("pattern", pattern), gecho.Field("error", err))
			return err
		}
	}
	return nil
}

// InvalidateSalesCaches removes sales dashboard caches after a recorded sale.
func (cs *CacheService) InvalidateSalesCaches() error {
	return cs.DeletePattern("sales:*")
}

// ============================================================================
// Session token blacklist
// ============================================================================

// BlacklistToken marks a session token id as revoked until its natural expiry.
func (cs *CacheService) BlacklistToken(jti uuid.UUID, exp time.Time) error {
	ttl := time.Until(exp)
	if ttl <= 0 {
		return nil // already expired
	}
	key := fmt.Sprintf("auth:blacklist:%s", jti.String())
	return cs.Set(key, []byte("1"), ttl)
}

// IsTokenBlacklisted reports whether a session token id has been revoked.
func (cs *CacheService) IsTokenBlacklisted(jti uuid.UUID) (bool, error) {
	key := fmt.Sprintf("auth:blacklist:%s", jti.String())
	val, err := cs.Get(key)
	if err != nil {
		return false, err
	}
	return val != "", nil
}

// ============================================================================
// Rate limiting
// ============================================================================

// IncrementRateLimit bumps the sliding-window counter for ip+endpoint and
// returns the current count within the window.
func (cs *CacheService) IncrementRateLimit(ip, endpoint string, window time.Duration) (int, error) {
	key := fmt.Sprintf("ratelimit:%s:%s", ip, endpoint)

	var count int64
	err := cs.withRetry(func() error {
		var err error
		count, err = cs.client.Incr(redisCtx, key).Result()
		if err != nil {
			return err
		}
		if count == 1 {
			return cs.client.Expire(redisCtx, key, window).Err()
		}
		return nil
	}, cs.config.Cache.MaxRetries)

	return int(count), err
}
