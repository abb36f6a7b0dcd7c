package cli

import (
	"fmt"

	"github.com/urolinq-questionnaire-engine/internal/config"
	"github.com/urolinq-questionnaire-engine/internal/results"
)

// openArchive opens the configured result store behind the read cache. A
// configured but unreachable Redis tier is logged and skipped.
func (rt *runtime) openArchive() (*results.CachedStore, error) {
	var (
		store results.Store
		err   error
	)

	switch rt.cfg.Archive.Driver {
	case config.DriverPostgres:
		store, err = results.NewPostgresStoreFromURL(rt.cfg.Archive.DatabaseURL)
	default:
		if err := rt.cfg.EnsureDataDir(); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
		store, err = results.NewSQLiteStore(rt.cfg.ResultsDBPath())
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open result archive: %w", err)
	}

	var redisTier *results.RedisCache
	if rt.cfg.Cache.RedisURL != "" {
		redisTier, err = results.NewRedisCache(results.RedisCacheConfig{
			URL:         rt.cfg.Cache.RedisURL,
			TTL:         rt.cfg.Cache.TTL,
			PoolSize:    rt.cfg.Cache.PoolSize,
			PoolTimeout: rt.cfg.Cache.PoolTimeout,
		}, rt.logger)
		if err != nil {
			rt.logger.WithError(err).Warn("Redis cache unavailable, continuing without it")
			redisTier = nil
		}
	}

	cached, err := results.NewCachedStore(store, rt.cfg.Cache.MaxItems, redisTier, rt.logger)
	if err != nil {
		store.Close()
		return nil, err
	}

	rt.logger.WithField("driver", rt.cfg.Archive.Driver).Debug("Result archive opened")
	return cached, nil
}

// optionalArchive opens the archive unless archiving is disabled or skip is
// set. The returned store is nil in that case.
func (rt *runtime) optionalArchive(skip bool) (results.Store, error) {
	if skip || !rt.cfg.Archive.Enabled {
		return nil, nil
	}
	store, err := rt.openArchive()
	if err != nil {
		return nil, err
	}
	return store, nil
}
