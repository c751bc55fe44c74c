package crossings

import (
	"fmt"

	"github.com/matzehuels/edgecross/pkg/graph"
	"github.com/matzehuels/edgecross/pkg/idspace"
)

// Strategy selects the counting algorithm used by [Count].
type Strategy string

const (
	// StrategyAuto sweeps ring embeddings and counts everything else pairwise.
	StrategyAuto Strategy = "auto"
	// StrategyNaive compares all pairs. It works for every supported embedding.
	StrategyNaive Strategy = "naive"
	// StrategySweep runs [SweepRing]. It only accepts ring embeddings.
	StrategySweep Strategy = "sweep"
)

// ParseStrategy converts a name into a Strategy. The empty string is
// [StrategyAuto].
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case "", StrategyAuto:
		return StrategyAuto, nil
	case StrategyNaive:
		return StrategyNaive, nil
	case StrategySweep:
		return StrategySweep, nil
	}
	return "", fmt.Errorf("%w: %q (must be one of: auto, naive, sweep)", ErrInvalidStrategy, s)
}

// Options configures a counting call. The zero value selects [StrategyAuto],
// a non-strict pass and no edge ceiling.
type Options struct {
	// Strategy selects the counter used by [Count].
	Strategy Strategy

	// Strict aborts the call on the first [AmbiguousCrossingError] instead of
	// collecting the pair in Result.Ambiguous.
	Strict bool

	// MaxNaiveEdges refuses pairwise counting above this many edges.
	// Zero disables the ceiling.
	MaxNaiveEdges int
}

// Result holds the outcome of a full counting pass.
type Result struct {
	// Total is the number of crossing edge pairs.
	Total int

	// Edges lists the edges PerEdge is indexed by. For the sweep these are the
	// deduplicated ring edges in sweep order.
	Edges []graph.Edge

	// PerEdge[i] is the local crossing count of Edges[i].
	PerEdge []int

	// MaxLocal is the largest value in PerEdge.
	MaxLocal int

	// Ambiguous lists pairs that could not be classified.
	Ambiguous []AmbiguousPair

	// Strategy is the counter that produced the result (naive or sweep).
	Strategy Strategy
}

func (r *Result) finish() {
	r.MaxLocal = 0
	for _, c := range r.PerEdge {
		r.MaxLocal = max(r.MaxLocal, c)
	}
}

// Count computes the crossings of edges along emb with the counter selected
// by opts.Strategy.
func Count(edges []graph.Edge, emb idspace.Embedding, opts Options) (*Result, error) {
	strategy, err := ParseStrategy(string(opts.Strategy))
	if err != nil {
		return nil, err
	}
	if err := checkSupported(emb); err != nil {
		return nil, err
	}

	if strategy == StrategyAuto {
		strategy = StrategyNaive
		if emb.Kind() == idspace.KindRing {
			strategy = StrategySweep
		}
	}

	switch strategy {
	case StrategySweep:
		ring, ok := emb.(idspace.RingSpace)
		if !ok || emb.Kind() != idspace.KindRing {
			return nil, &UnsupportedEmbeddingError{Kind: emb.Kind(), Dim: emb.Dimensions()}
		}
		return SweepRing(edges, ring, opts)
	default:
		if opts.MaxNaiveEdges > 0 && len(edges) > opts.MaxNaiveEdges {
			return nil, fmt.Errorf("%w: %d edges (limit %d)", ErrTooManyEdges, len(edges), opts.MaxNaiveEdges)
		}
		return CountAll(edges, emb, opts)
	}
}
