package results

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"

	"github.com/urolinq-questionnaire-engine/internal/domain"
)

const redisKeyPrefix = "urolinq:result:"

// redisClient is the subset of *redis.Client the cache uses.
type redisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	Close() error
}

// RedisCacheConfig configures the shared result cache.
type RedisCacheConfig struct {
	URL         string
	TTL         time.Duration
	PoolSize    int
	PoolTimeout time.Duration
}

// RedisCache is a shared second-tier cache of archived results. Calls go
// through a circuit breaker; an unavailable Redis degrades to cache misses.
type RedisCache struct {
	client  redisClient
	ttl     time.Duration
	breaker *gobreaker.CircuitBreaker
	logger  *logrus.Logger
}

// NewRedisCache connects to Redis and verifies the connection.
func NewRedisCache(config RedisCacheConfig, logger *logrus.Logger) (*RedisCache, error) {
	opts, err := redis.ParseURL(config.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}
	if config.PoolSize > 0 {
		opts.PoolSize = config.PoolSize
	}
	if config.PoolTimeout > 0 {
		opts.PoolTimeout = config.PoolTimeout
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return newRedisCache(client, config.TTL, logger), nil
}

func newRedisCache(client redisClient, ttl time.Duration, logger *logrus.Logger) *RedisCache {
	if ttl == 0 {
		ttl = 24 * time.Hour
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "redis-result-cache",
		MaxRequests: 1,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.WithFields(logrus.Fields{
				"breaker": name,
				"from":    from.String(),
				"to":      to.String(),
			}).Warn("Cache circuit breaker state changed")
		},
	})

	return &RedisCache{
		client:  client,
		ttl:     ttl,
		breaker: breaker,
		logger:  logger,
	}
}

func redisKey(id string) string {
	return redisKeyPrefix + id
}

// Get returns the cached result for id. Misses, corrupt entries and Redis
// failures all report ok == false.
func (c *RedisCache) Get(ctx context.Context, id string) (*domain.Result, bool) {
	val, err := c.breaker.Execute(func() (interface{}, error) {
		b, err := c.client.Get(ctx, redisKey(id)).Bytes()
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return b, err
	})
	if err != nil {
		c.logger.WithError(err).WithField("result_id", id).Debug("Redis cache read failed")
		return nil, false
	}
	if val == nil {
		return nil, false
	}

	var r domain.Result
	if err := json.Unmarshal(val.([]byte), &r); err != nil {
		// Remove corrupted cache entry
		c.client.Del(ctx, redisKey(id))
		return nil, false
	}
	return &r, true
}

// Set caches result.
func (c *RedisCache) Set(ctx context.Context, result *domain.Result) {
	data, err := json.Marshal(result)
	if err != nil {
		c.logger.WithError(err).WithField("result_id", result.ID).Warn("Failed to encode result for cache")
		return
	}

	_, err = c.breaker.Execute(func() (interface{}, error) {
		return nil, c.client.Set(ctx, redisKey(result.ID), data, c.ttl).Err()
	})
	if err != nil {
		c.logger.WithError(err).WithField("result_id", result.ID).Debug("Redis cache write failed")
	}
}

// Delete evicts id.
func (c *RedisCache) Delete(ctx context.Context, id string) {
	_, err := c.breaker.Execute(func() (interface{}, error) {
		return nil, c.client.Del(ctx, redisKey(id)).Err()
	})
	if err != nil {
		c.logger.WithError(err).WithField("result_id", id).Debug("Redis cache delete failed")
	}
}

// Close closes the Redis client.
func (c *RedisCache) Close() error {
	return c.client.Close()
}
