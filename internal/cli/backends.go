package cli

import (
	"context"

	"github.com/matzehuels/edgecross/pkg/cache"
	"github.com/matzehuels/edgecross/pkg/config"
	errs "github.com/matzehuels/edgecross/pkg/errors"
	"github.com/matzehuels/edgecross/pkg/pipeline"
	"github.com/matzehuels/edgecross/pkg/store"
)

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner with the configured backends.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	cc := c.cfg.Cache
	if noCache {
		cc.Backend = config.CacheNone
	}
	backend, keyer, err := openCache(ctx, cc)
	if err != nil {
		return nil, err
	}

	s, err := openStore(ctx, c.cfg.Store)
	if err != nil {
		_ = backend.Close()
		return nil, err
	}

	r := pipeline.NewRunner(backend, keyer, c.Logger)
	r.Store = s
	if cc.TTL > 0 {
		r.TTL = cc.TTL
	}
	c.Logger.Debug("opened backends", "cache", cc.Backend, "store", c.cfg.Store.Backend)
	return r, nil
}

// openCache creates the cache selected by cfg. Redis keys are scoped so the
// instance can be shared with other tools.
func openCache(ctx context.Context, cfg config.CacheConfig) (cache.Cache, cache.Keyer, error) {
	switch cfg.Backend {
	case config.CacheNone, "":
		return cache.NewNullCache(), nil, nil
	case config.CacheFile:
		fc, err := cache.NewFileCache(cfg.Dir)
		if err != nil {
			return nil, nil, errs.Wrap(errs.ErrCodeInvalidConfig, err, "open file cache")
		}
		return fc, nil, nil
	case config.CacheMemory:
		return cache.NewMemoryCache(cfg.MemoryMB), nil, nil
	case config.CacheRedis:
		rc, err := cache.NewRedisCache(ctx, cfg.RedisAddr)
		if err != nil {
			return nil, nil, errs.Wrap(errs.ErrCodeNetwork, err, "connect to redis at %s", cfg.RedisAddr)
		}
		return rc, cache.NewScopedKeyer(nil, redisKeyPrefix), nil
	}
	return nil, nil, errs.New(errs.ErrCodeInvalidConfig, "unknown cache backend %q", cfg.Backend)
}

// openStore creates the result store selected by cfg. The none backend
// returns a nil store.
func openStore(ctx context.Context, cfg config.StoreConfig) (store.Store, error) {
	switch cfg.Backend {
	case config.StoreNone, "":
		return nil, nil
	case config.StoreMemory:
		return store.NewMemoryStore(), nil
	case config.StoreMongo:
		ms, err := store.NewMongoStore(ctx, store.MongoOptions{
			URI:        cfg.MongoURI,
			Database:   cfg.Database,
			Collection: cfg.Collection,
		})
		if err != nil {
			return nil, errs.Wrap(errs.ErrCodeNetwork, err, "connect to mongo")
		}
		return ms, nil
	}
	return nil, errs.New(errs.ErrCodeInvalidConfig, "unknown store backend %q", cfg.Backend)
}
