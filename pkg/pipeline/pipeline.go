// Package pipeline runs the edge-crossings metric with caching and result
// storage.
//
// This package implements the load → compute → cache → store sequence shared
// by the CLI and the HTTP API. By centralizing it, both entry points apply
// the same defaults, cache keys and error mapping.
//
// # Usage
//
// Create a Runner and execute the metric on a document:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, doc, pipeline.Options{Strategy: "sweep"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Metric.Total)
//
// Restricted counts around single nodes:
//
//	local, err := runner.Local(ctx, doc, 3, opts)
//	between, err := runner.Between(ctx, doc, 3, 7, opts)
package pipeline

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/edgecross/pkg/cache"
	"github.com/matzehuels/edgecross/pkg/crossings"
	"github.com/matzehuels/edgecross/pkg/distribution"
	errs "github.com/matzehuels/edgecross/pkg/errors"
	"github.com/matzehuels/edgecross/pkg/graph"
	"github.com/matzehuels/edgecross/pkg/idspace"
	"github.com/matzehuels/edgecross/pkg/metric"
	"github.com/matzehuels/edgecross/pkg/store"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultMaxNaiveEdges caps pairwise counting. Ring embeddings use the
	// sweep and are not affected under the auto strategy.
	DefaultMaxNaiveEdges = 20000

	// DefaultTTL is how long computed results stay cached.
	DefaultTTL = 24 * time.Hour

	// DefaultBatchParallelism bounds concurrent computations in ExecuteBatch.
	DefaultBatchParallelism = 4
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains the configuration of one metric run.
// This struct supports JSON serialization for API requests.
type Options struct {
	Strategy string `json:"strategy,omitempty"`
	Strict   bool   `json:"strict,omitempty"`

	// MaxNaiveEdges caps pairwise counting. Zero selects
	// DefaultMaxNaiveEdges; a negative value disables the ceiling.
	MaxNaiveEdges int `json:"max_naive_edges,omitempty"`

	// Refresh bypasses the cache lookup. The fresh result is still cached.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// ID is the stored record id, empty when the runner has no store.
	ID string `json:"id,omitempty"`

	// DocHash is the content hash of the input document.
	DocHash string `json:"doc_hash"`

	// Metric is the computed metric.
	Metric *metric.Result `json:"metric"`

	// CacheHit reports whether Metric came from the cache.
	CacheHit bool `json:"cache_hit"`

	// Elapsed is the wall time of the run, including cache access.
	Elapsed time.Duration `json:"elapsed_ns"`
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks the options and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	s, err := crossings.ParseStrategy(o.Strategy)
	if err != nil {
		return errs.Wrap(errs.ErrCodeInvalidStrategy, err, "invalid options")
	}
	o.Strategy = string(s)
	if o.MaxNaiveEdges == 0 {
		o.MaxNaiveEdges = DefaultMaxNaiveEdges
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// CrossingOptions converts the options into counting options.
func (o *Options) CrossingOptions() crossings.Options {
	return crossings.Options{
		Strategy:      crossings.Strategy(o.Strategy),
		Strict:        o.Strict,
		MaxNaiveEdges: max(o.MaxNaiveEdges, 0),
	}
}

// MetricKeyOpts returns the options that are part of the cache key.
func (o *Options) MetricKeyOpts() cache.MetricKeyOpts {
	return cache.MetricKeyOpts{
		Strategy:      o.Strategy,
		Strict:        o.Strict,
		MaxNaiveEdges: o.MaxNaiveEdges,
	}
}

// =============================================================================
// Error Mapping
// =============================================================================

// Classify maps domain errors onto [errs.Error] codes so the CLI and the API
// report them consistently. Errors that already carry a code are returned
// unchanged.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	var e *errs.Error
	if errors.As(err, &e) {
		return err
	}

	code := errs.ErrCodeInternal
	switch {
	case errors.Is(err, crossings.ErrUnsupportedEmbedding):
		code = errs.ErrCodeUnsupported
	case errors.Is(err, crossings.ErrAmbiguousCrossing):
		code = errs.ErrCodeAmbiguous
	case errors.Is(err, crossings.ErrTooManyEdges):
		code = errs.ErrCodeTooLarge
	case errors.Is(err, crossings.ErrInvalidStrategy):
		code = errs.ErrCodeInvalidStrategy
	case errors.Is(err, idspace.ErrInvalidEmbedding):
		code = errs.ErrCodeInvalidEmbedding
	case errors.Is(err, idspace.ErrUnknownNode), errors.Is(err, store.ErrNotFound):
		code = errs.ErrCodeNotFound
	case errors.Is(err, graph.ErrSelfLoop), errors.Is(err, graph.ErrNegativeNodeID):
		code = errs.ErrCodeInvalidInput
	case errors.Is(err, distribution.ErrInvalidCounts):
		code = errs.ErrCodeInternal
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		code = errs.ErrCodeTimeout
	case errors.Is(err, cache.ErrNetwork):
		code = errs.ErrCodeNetwork
	}
	return errs.Wrap(code, err, "edge crossings")
}
