package crossings

import (
	"fmt"
	"maps"
	"slices"

	"github.com/matzehuels/edgecross/pkg/graph"
	"github.com/matzehuels/edgecross/pkg/idspace"
)

// SweepRing counts ring crossings with the Six–Tollis sweep.
//
// Anchors (the ring's partition boundaries plus every edge endpoint) are
// visited in ascending order. At each anchor, edges ending there leave the
// open set first; each of them then crosses every open edge that started
// strictly after it. Edges starting at the anchor are opened last, so two
// edges meeting at a boundary are never open together.
//
// The open set is a Fenwick tree over anchor ranks, which makes the sweep
// O((V+E) log V). A mirrored second sweep attributes every crossing to its
// other participant too, so Result.PerEdge holds full local crossing counts
// indexed like Result.Edges.
//
// Non-adjacent edges whose intervals share an endpoint position cannot be
// classified. They are collected in Result.Ambiguous, or abort the call with
// an [AmbiguousCrossingError] when opts.Strict is set.
func SweepRing(edges []graph.Edge, ring idspace.RingSpace, opts Options) (*Result, error) {
	ambiguous, err := coincidences(edges, ring, opts.Strict)
	if err != nil {
		return nil, err
	}
	ringEdges, err := RingEdges(edges, ring)
	if err != nil {
		return nil, err
	}

	anchors := ring.Boundaries()
	for _, re := range ringEdges {
		anchors = append(anchors, re.Start, re.End)
	}
	slices.Sort(anchors)
	anchors = slices.Compact(anchors)

	rank := make(map[float64]int, len(anchors))
	for i, a := range anchors {
		rank[a] = i
	}
	spans := make([]span, len(ringEdges))
	for i, re := range ringEdges {
		spans[i] = span{start: rank[re.Start], end: rank[re.End]}
	}

	forward, total := sweep(spans, len(anchors))

	n := len(anchors)
	mirrored := make([]span, len(spans))
	for i, s := range spans {
		mirrored[i] = span{start: n - 1 - s.end, end: n - 1 - s.start}
	}
	backward, _ := sweep(mirrored, n)

	res := &Result{
		Total:     total,
		Edges:     make([]graph.Edge, len(ringEdges)),
		PerEdge:   make([]int, len(ringEdges)),
		Ambiguous: ambiguous,
		Strategy:  StrategySweep,
	}
	for i, re := range ringEdges {
		res.Edges[i] = re.Edge()
		res.PerEdge[i] = forward[i] + backward[i]
	}
	res.finish()
	return res, nil
}

// coincidences returns the pairs of non-adjacent edges that have an endpoint
// position in common, degenerate edges included. Pairs covering the same two
// intervals as an earlier pair are reported once. Positions held by a single
// node are skipped.
func coincidences(edges []graph.Edge, ring idspace.RingSpace, strict bool) ([]AmbiguousPair, error) {
	type touch struct {
		node int64
		edge int
	}
	keys := make([]string, len(edges))
	at := make(map[float64][]touch)
	for i, e := range edges {
		start, end, err := interval(e, ring)
		if err != nil {
			return nil, err
		}
		keys[i] = intervalKey(start, end)
		for _, n := range [2]int64{e.U, e.V} {
			p, err := ring.Position(n)
			if err != nil {
				return nil, fmt.Errorf("edge %s: %w", e, err)
			}
			at[p] = append(at[p], touch{node: n, edge: i})
		}
	}

	var pairs []AmbiguousPair
	seen := NewSeenSet()
	for _, p := range slices.Sorted(maps.Keys(at)) {
		ts := at[p]
		if !slices.ContainsFunc(ts, func(t touch) bool { return t.node != ts[0].node }) {
			continue
		}
		for i := range ts {
			for j := i + 1; j < len(ts); j++ {
				if ts[i].node == ts[j].node {
					continue
				}
				x, y := min(ts[i].edge, ts[j].edge), max(ts[i].edge, ts[j].edge)
				a, b := edges[x], edges[y]
				if a == b || a.SharesEndpoint(b) {
					continue
				}
				if !seen.Visit(pairKey(keys[x], keys[y])) {
					continue
				}
				if strict {
					return nil, &AmbiguousCrossingError{A: a, B: b}
				}
				pairs = append(pairs, AmbiguousPair{A: a, B: b})
			}
		}
	}
	return pairs, nil
}

// span is a ring edge expressed in anchor ranks.
type span struct{ start, end int }

// sweep returns, per span, the number of open spans that started strictly
// after it when it closes, and the sum of those counts.
func sweep(spans []span, anchors int) ([]int, int) {
	starting := make([][]int, anchors)
	ending := make([][]int, anchors)
	for i, s := range spans {
		starting[s.start] = append(starting[s.start], i)
		ending[s.end] = append(ending[s.end], i)
	}

	counts := make([]int, len(spans))
	open := newFenwick(anchors)
	total := 0
	for a := 0; a < anchors; a++ {
		for _, i := range ending[a] {
			open.add(spans[i].start, -1)
		}
		for _, i := range ending[a] {
			// Open spans with start rank > spans[i].start.
			c := open.total() - open.prefix(spans[i].start)
			counts[i] = c
			total += c
		}
		for _, i := range starting[a] {
			open.add(spans[i].start, 1)
		}
	}
	return counts, total
}

// fenwick is a binary indexed tree over ranks [0, n).
type fenwick struct {
	tree []int
	sum  int
}

func newFenwick(n int) *fenwick {
	return &fenwick{tree: make([]int, n+1)}
}

func (f *fenwick) add(rank, delta int) {
	f.sum += delta
	for i := rank + 1; i < len(f.tree); i += i & (-i) {
		f.tree[i] += delta
	}
}

// prefix returns the number of entries with rank <= r.
func (f *fenwick) prefix(r int) int {
	s := 0
	for i := r + 1; i > 0; i -= i & (-i) {
		s += f.tree[i]
	}
	return s
}

func (f *fenwick) total() int {
	return f.sum
}
