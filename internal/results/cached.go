package results

import (
	"context"
	"fmt"
	"sync"

	lru "github.com/hashicorp/golang-lru"
	"github.com/sirupsen/logrus"

	"github.com/urolinq-questionnaire-engine/internal/domain"
)

// DefaultCacheSize is the number of results kept in memory.
const DefaultCacheSize = 256

// CacheStats represents cache performance statistics
type CacheStats struct {
	MemoryHits   int64 `json:"memory_hits"`
	MemoryMisses int64 `json:"memory_misses"`
	RedisHits    int64 `json:"redis_hits"`
	RedisMisses  int64 `json:"redis_misses"`
	StoreReads   int64 `json:"store_reads"`
}

// CachedStore fronts a Store with an in-memory LRU and, optionally, a shared
// Redis tier. Archived results never change, so entries need no expiry beyond
// eviction.
type CachedStore struct {
	Store

	memory *lru.Cache
	redis  *RedisCache
	logger *logrus.Logger

	statsMu sync.Mutex
	stats   CacheStats
}

// NewCachedStore wraps store. redis may be nil.
func NewCachedStore(store Store, size int, redis *RedisCache, logger *logrus.Logger) (*CachedStore, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}

	memory, err := lru.New(size)
	if err != nil {
		return nil, fmt.Errorf("failed to create memory cache: %w", err)
	}

	return &CachedStore{
		Store:  store,
		memory: memory,
		redis:  redis,
		logger: logger,
	}, nil
}

// Save stores the result and caches it.
func (c *CachedStore) Save(ctx context.Context, result *domain.Result) error {
	if err := c.Store.Save(ctx, result); err != nil {
		return err
	}
	c.memory.Add(result.ID, result)
	if c.redis != nil {
		c.redis.Set(ctx, result)
	}
	return nil
}

// Get looks in memory, then Redis, then the underlying store.
func (c *CachedStore) Get(ctx context.Context, id string) (*domain.Result, error) {
	if v, ok := c.memory.Get(id); ok {
		c.record(func(s *CacheStats) { s.MemoryHits++ })
		c.logger.WithFields(logrus.Fields{"result_id": id, "cache_tier": "memory"}).Debug("Cache hit")
		return v.(*domain.Result), nil
	}
	c.record(func(s *CacheStats) { s.MemoryMisses++ })

	if c.redis != nil {
		if r, ok := c.redis.Get(ctx, id); ok {
			c.record(func(s *CacheStats) { s.RedisHits++ })
			c.logger.WithFields(logrus.Fields{"result_id": id, "cache_tier": "redis"}).Debug("Cache hit")
			c.memory.Add(id, r)
			return r, nil
		}
		c.record(func(s *CacheStats) { s.RedisMisses++ })
	}

	c.record(func(s *CacheStats) { s.StoreReads++ })
	r, err := c.Store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	c.memory.Add(id, r)
	if c.redis != nil {
		c.redis.Set(ctx, r)
	}
	return r, nil
}

// Delete removes the result from the store and every cache tier.
func (c *CachedStore) Delete(ctx context.Context, id string) error {
	c.memory.Remove(id)
	if c.redis != nil {
		c.redis.Delete(ctx, id)
	}
	return c.Store.Delete(ctx, id)
}

// Stats returns a snapshot of cache statistics.
func (c *CachedStore) Stats() CacheStats {
	c.statsMu.Lock()
	defer c.statsMu.Unlock()
	return c.stats
}

func (c *CachedStore) record(update func(*CacheStats)) {
	c.statsMu.Lock()
	update(&c.stats)
	c.statsMu.Unlock()
}

// Close closes the Redis tier and the underlying store.
func (c *CachedStore) Close() error {
	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			c.logger.WithError(err).Warn("Failed to close Redis cache")
		}
	}
	return c.Store.Close()
}
