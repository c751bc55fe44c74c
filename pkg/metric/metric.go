// Package metric computes the edge-crossings metric of an embedded graph.
//
// [EdgeCrossings] runs a crossing count over a graph snapshot and turns the
// per-edge counts into the crossing distribution. Results expose one scalar,
// EC_AVG, and two indexed series, EC_DISTRIBUTION and EC_DISTRIBUTION_CDF.
//
// A graph without any crossing has no distribution to normalize. Compute
// reports it as the all-zero distribution and sets [Result.Trivial].
package metric

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/edgecross/pkg/crossings"
	"github.com/matzehuels/edgecross/pkg/distribution"
	"github.com/matzehuels/edgecross/pkg/graph"
	"github.com/matzehuels/edgecross/pkg/idspace"
	"github.com/matzehuels/edgecross/pkg/observability"
)

// Metric output names.
const (
	NameAverage      = "EC_AVG"
	NameDistribution = "EC_DISTRIBUTION"
	NameCDF          = "EC_DISTRIBUTION_CDF"
)

// Value is a named scalar output.
type Value struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// Row is one (index, value) entry of an indexed series.
type Row struct {
	Index int     `json:"index"`
	Value float64 `json:"value"`
}

// Series is a named indexed output in ascending index order.
type Series struct {
	Name string `json:"name"`
	Rows []Row  `json:"rows"`
}

// EdgeCount pairs an edge with its local crossing count.
type EdgeCount struct {
	Edge      graph.Edge `json:"edge"`
	Crossings int        `json:"crossings"`
}

// Result is the outcome of [EdgeCrossings.Compute].
type Result struct {
	Nodes        int                        `json:"nodes"`
	Edges        int                        `json:"edges"`
	Kind         string                     `json:"kind"`
	Strategy     crossings.Strategy         `json:"strategy"`
	Total        int                        `json:"total"`
	MaxLocal     int                        `json:"max_local"`
	PerEdge      []EdgeCount                `json:"per_edge,omitempty"`
	Ambiguous    []crossings.AmbiguousPair  `json:"ambiguous,omitempty"`
	Distribution *distribution.Distribution `json:"distribution"`
	Trivial      bool                       `json:"trivial"`
	Duration     time.Duration              `json:"duration_ns"`
}

// Values returns the scalar outputs.
func (r *Result) Values() []Value {
	return []Value{{Name: NameAverage, Value: r.Distribution.Average}}
}

// Series returns the distribution and its CDF as indexed series.
func (r *Result) Series() []Series {
	return []Series{
		{Name: NameDistribution, Rows: rows(r.Distribution.Values)},
		{Name: NameCDF, Rows: rows(r.Distribution.CDF)},
	}
}

func rows(values []float64) []Row {
	out := make([]Row, len(values))
	for k, v := range values {
		out[k] = Row{Index: k, Value: v}
	}
	return out
}

// LocalResult is the outcome of a restricted count around one or two nodes.
type LocalResult struct {
	Node      int64                     `json:"node"`
	Other     *int64                    `json:"other,omitempty"`
	Crossings int                       `json:"crossings"`
	Ambiguous []crossings.AmbiguousPair `json:"ambiguous,omitempty"`
}

// EdgeCrossings computes the edge-crossings metric.
//
// The zero value is usable: it counts with [crossings.StrategyAuto] and logs
// nowhere. An EdgeCrossings holds no per-call state, so one value may serve
// concurrent computations.
type EdgeCrossings struct {
	Options crossings.Options
	Logger  *log.Logger
}

// New creates the metric with the given counting options and logger.
// A nil logger discards output.
func New(opts crossings.Options, logger *log.Logger) *EdgeCrossings {
	return &EdgeCrossings{Options: opts, Logger: logger}
}

func (m *EdgeCrossings) logger() *log.Logger {
	if m.Logger == nil {
		return log.New(io.Discard)
	}
	return m.Logger
}

// Compute counts the crossings of snap's edges along emb and builds the
// crossing distribution.
func (m *EdgeCrossings) Compute(ctx context.Context, snap *graph.Snapshot, emb idspace.Embedding) (*Result, error) {
	if err := emb.Validate(); err != nil {
		return nil, err
	}

	edges := snap.Edges()
	kind := emb.Kind().String()
	hooks := observability.Metric()
	hooks.OnCountStart(ctx, kind, len(edges))

	start := time.Now()
	cr, err := crossings.Count(edges, emb, m.Options)
	if err != nil {
		hooks.OnCountComplete(ctx, kind, string(m.Options.Strategy), 0, time.Since(start), err)
		return nil, fmt.Errorf("count crossings: %w", err)
	}

	dist, trivial, err := distribution.BuildOrTrivial(cr.PerEdge, cr.MaxLocal)
	if err != nil {
		hooks.OnCountComplete(ctx, kind, string(cr.Strategy), cr.Total, time.Since(start), err)
		return nil, fmt.Errorf("build distribution: %w", err)
	}
	elapsed := time.Since(start)

	m.logger().Debug("computed crossings",
		"edges", len(edges),
		"strategy", cr.Strategy,
		"crossings", cr.Total,
		"duration", elapsed)
	if trivial {
		m.logger().Debug("no crossings, reporting trivial distribution")
	}
	hooks.OnCountComplete(ctx, kind, string(cr.Strategy), cr.Total, elapsed, nil)

	res := &Result{
		Nodes:        snap.NodeCount(),
		Edges:        len(edges),
		Kind:         kind,
		Strategy:     cr.Strategy,
		Total:        cr.Total,
		MaxLocal:     cr.MaxLocal,
		PerEdge:      make([]EdgeCount, len(cr.Edges)),
		Ambiguous:    cr.Ambiguous,
		Distribution: dist,
		Trivial:      trivial,
		Duration:     elapsed,
	}
	for i, e := range cr.Edges {
		res.PerEdge[i] = EdgeCount{Edge: e, Crossings: cr.PerEdge[i]}
	}
	return res, nil
}

// LocalCrossings counts how often the edges incident to node cross any edge
// of snap.
func (m *EdgeCrossings) LocalCrossings(snap *graph.Snapshot, emb idspace.Embedding, node int64) (*LocalResult, error) {
	if !snap.HasNode(node) {
		return nil, fmt.Errorf("%w: %d", idspace.ErrUnknownNode, node)
	}
	n, ambiguous, err := crossings.CountEdgesAgainstGraph(snap.NodeEdges(node), snap.Edges(), emb, m.Options)
	if err != nil {
		return nil, err
	}
	return &LocalResult{Node: node, Crossings: n, Ambiguous: ambiguous}, nil
}

// NodeCrossings counts the crossings between the edges incident to a and the
// edges incident to b.
func (m *EdgeCrossings) NodeCrossings(snap *graph.Snapshot, emb idspace.Embedding, a, b int64) (*LocalResult, error) {
	for _, id := range []int64{a, b} {
		if !snap.HasNode(id) {
			return nil, fmt.Errorf("%w: %d", idspace.ErrUnknownNode, id)
		}
	}
	n, ambiguous, err := crossings.CountBetweenNodes(snap.NodeEdges(a), snap.NodeEdges(b), emb, m.Options)
	if err != nil {
		return nil, err
	}
	return &LocalResult{Node: a, Other: &b, Crossings: n, Ambiguous: ambiguous}, nil
}
