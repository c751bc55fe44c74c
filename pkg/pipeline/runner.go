package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/edgecross/pkg/cache"
	ecio "github.com/matzehuels/edgecross/pkg/io"
	"github.com/matzehuels/edgecross/pkg/metric"
	"github.com/matzehuels/edgecross/pkg/observability"
	"github.com/matzehuels/edgecross/pkg/store"
)

// Cache key types reported to the cache hooks.
const (
	keyTypeMetric = "metric"
	keyTypeLocal  = "local"
)

// Runner encapsulates metric execution with caching and storage.
// Both CLI and API use it to avoid duplicating caching logic.
//
// The Runner is stateless except for its backends and logger. Multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Store  store.Store // optional; nil disables result storage
	TTL    time.Duration
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		TTL:    DefaultTTL,
		Logger: logger,
	}
}

// Execute computes the metric for doc, consulting the cache first unless
// opts.Refresh is set. When the runner has a store, the result is saved and
// its id returned in Result.ID.
func (r *Runner) Execute(ctx context.Context, doc *ecio.Document, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	start := time.Now()

	docHash, err := DocumentHash(doc)
	if err != nil {
		return nil, Classify(err)
	}
	key := r.Keyer.MetricKey(docHash, opts.MetricKeyOpts())
	result := &Result{DocHash: docHash}

	if !opts.Refresh {
		if res, ok := r.lookupMetric(ctx, key); ok {
			result.Metric = res
			result.CacheHit = true
		}
	}

	if result.Metric == nil {
		snap, emb, err := doc.Build()
		if err != nil {
			return nil, Classify(err)
		}
		res, err := metric.New(opts.CrossingOptions(), opts.Logger).Compute(ctx, snap, emb)
		if err != nil {
			return nil, Classify(err)
		}
		result.Metric = res
		r.storeCached(ctx, key, keyTypeMetric, res)
	}

	if r.Store != nil {
		rec := store.NewRecord(docHash, result.Metric)
		if err := r.Store.Save(ctx, rec); err != nil {
			return nil, Classify(err)
		}
		result.ID = rec.ID
	}
	result.Elapsed = time.Since(start)

	r.Logger.Info("computed edge crossings",
		"edges", result.Metric.Edges,
		"crossings", result.Metric.Total,
		"strategy", result.Metric.Strategy,
		"cached", result.CacheHit,
		"duration", result.Elapsed)
	return result, nil
}

// ExecuteBatch runs Execute for every document with bounded parallelism.
// Results are returned in input order. The first failure cancels the
// remaining runs.
func (r *Runner) ExecuteBatch(ctx context.Context, docs []*ecio.Document, opts Options) ([]*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	results := make([]*Result, len(docs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(DefaultBatchParallelism)
	for i, doc := range docs {
		g.Go(func() error {
			res, err := r.Execute(ctx, doc, opts)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Local counts the crossings of node's incident edges against the whole graph.
func (r *Runner) Local(ctx context.Context, doc *ecio.Document, node int64, opts Options) (*metric.LocalResult, error) {
	return r.local(ctx, doc, cache.LocalKeyOpts{Node: node, Strict: opts.Strict}, opts)
}

// Between counts the crossings between the incident edges of a and b.
func (r *Runner) Between(ctx context.Context, doc *ecio.Document, a, b int64, opts Options) (*metric.LocalResult, error) {
	return r.local(ctx, doc, cache.LocalKeyOpts{Node: a, Other: &b, Strict: opts.Strict}, opts)
}

func (r *Runner) local(ctx context.Context, doc *ecio.Document, keyOpts cache.LocalKeyOpts, opts Options) (*metric.LocalResult, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	docHash, err := DocumentHash(doc)
	if err != nil {
		return nil, Classify(err)
	}
	key := r.Keyer.LocalKey(docHash, keyOpts)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			var cached metric.LocalResult
			if json.Unmarshal(data, &cached) == nil {
				observability.Cache().OnCacheHit(ctx, keyTypeLocal)
				return &cached, nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, keyTypeLocal)
	}

	snap, emb, err := doc.Build()
	if err != nil {
		return nil, Classify(err)
	}
	m := metric.New(opts.CrossingOptions(), opts.Logger)
	var res *metric.LocalResult
	if keyOpts.Other != nil {
		res, err = m.NodeCrossings(snap, emb, keyOpts.Node, *keyOpts.Other)
	} else {
		res, err = m.LocalCrossings(snap, emb, keyOpts.Node)
	}
	if err != nil {
		return nil, Classify(err)
	}
	r.storeCached(ctx, key, keyTypeLocal, res)
	return res, nil
}

// lookupMetric returns the cached metric result for key. Undecodable
// entries are treated as misses and recomputed.
func (r *Runner) lookupMetric(ctx context.Context, key string) (*metric.Result, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache lookup failed", "error", err)
	}
	if err == nil && hit {
		var res metric.Result
		if err := json.Unmarshal(data, &res); err == nil && res.Distribution != nil {
			observability.Cache().OnCacheHit(ctx, keyTypeMetric)
			return &res, true
		}
	}
	observability.Cache().OnCacheMiss(ctx, keyTypeMetric)
	return nil, false
}

// storeCached writes v to the cache. Cache failures are logged, never fatal.
func (r *Runner) storeCached(ctx context.Context, key, keyType string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := r.Cache.Set(ctx, key, data, r.TTL); err != nil {
		r.Logger.Warn("cache write failed", "error", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}

// DocumentHash returns the content hash used in cache keys and records.
func DocumentHash(doc *ecio.Document) (string, error) {
	data, err := doc.Canonical()
	if err != nil {
		return "", err
	}
	return cache.Hash(data), nil
}

// Close releases resources held by the runner.
func (r *Runner) Close(ctx context.Context) error {
	var err error
	if r.Cache != nil {
		err = r.Cache.Close()
	}
	if r.Store != nil {
		if serr := r.Store.Close(ctx); err == nil {
			err = serr
		}
	}
	return err
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
