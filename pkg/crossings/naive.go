package crossings

import (
	"errors"

	"github.com/matzehuels/edgecross/pkg/graph"
	"github.com/matzehuels/edgecross/pkg/idspace"
)

// CountAll compares every unordered pair of edges and returns the total
// together with each edge's local crossing count. It runs in O(E²) and
// accepts every supported embedding.
//
// Ambiguous pairs are collected in Result.Ambiguous unless opts.Strict is set.
func CountAll(edges []graph.Edge, emb idspace.Embedding, opts Options) (*Result, error) {
	if err := checkSupported(emb); err != nil {
		return nil, err
	}

	res := &Result{
		Edges:    edges,
		PerEdge:  make([]int, len(edges)),
		Strategy: StrategyNaive,
	}
	seen := NewSeenSet()
	for i := range edges {
		for j := i + 1; j < len(edges); j++ {
			ok, err := crossesCollect(edges[i], edges[j], emb, seen, opts, &res.Ambiguous)
			if err != nil {
				return nil, err
			}
			if ok {
				res.Total++
				res.PerEdge[i]++
				res.PerEdge[j]++
			}
		}
	}
	res.finish()
	return res, nil
}

// CountEdgesAgainstGraph counts crossings between the edges incident to one
// node and every edge of the graph. Pairs visited twice by the nested loops
// are scored once.
func CountEdgesAgainstGraph(nodeEdges, graphEdges []graph.Edge, emb idspace.Embedding, opts Options) (int, []AmbiguousPair, error) {
	return countCross(nodeEdges, graphEdges, emb, opts)
}

// CountBetweenNodes counts crossings between the incident edges of two nodes.
func CountBetweenNodes(edgesOfA, edgesOfB []graph.Edge, emb idspace.Embedding, opts Options) (int, []AmbiguousPair, error) {
	return countCross(edgesOfA, edgesOfB, emb, opts)
}

func countCross(xs, ys []graph.Edge, emb idspace.Embedding, opts Options) (int, []AmbiguousPair, error) {
	if err := checkSupported(emb); err != nil {
		return 0, nil, err
	}
	var (
		total     int
		ambiguous []AmbiguousPair
	)
	seen := NewSeenSet()
	for _, x := range xs {
		for _, y := range ys {
			ok, err := crossesCollect(x, y, emb, seen, opts, &ambiguous)
			if err != nil {
				return 0, nil, err
			}
			if ok {
				total++
			}
		}
	}
	return total, ambiguous, nil
}

// crossesCollect runs [Crosses] and, for non-strict passes, turns an
// ambiguous classification into an entry of *ambiguous.
func crossesCollect(a, b graph.Edge, emb idspace.Embedding, seen *SeenSet, opts Options, ambiguous *[]AmbiguousPair) (bool, error) {
	ok, err := Crosses(a, b, emb, seen)
	if err == nil {
		return ok, nil
	}
	var amb *AmbiguousCrossingError
	if !opts.Strict && errors.As(err, &amb) {
		*ambiguous = append(*ambiguous, AmbiguousPair{A: amb.A, B: amb.B})
		return false, nil
	}
	return false, err
}
