package crossings

import (
	"cmp"
	"slices"

	"github.com/matzehuels/edgecross/pkg/graph"
	"github.com/matzehuels/edgecross/pkg/idspace"
)

// RingEdge is an edge mapped onto the ring interval [Start, End].
// Src and Dst keep the graph endpoints the interval came from.
type RingEdge struct {
	Start, End float64
	Src, Dst   int64
}

// Equal reports whether r and o cover the same interval. Endpoints are not
// compared.
func (r RingEdge) Equal(o RingEdge) bool {
	return r.Start == o.Start && r.End == o.End
}

// Edge returns the graph edge the interval was built from.
func (r RingEdge) Edge() graph.Edge {
	return graph.NewEdge(r.Src, r.Dst)
}

// String returns the interval as "start->end".
func (r RingEdge) String() string {
	return intervalKey(r.Start, r.End)
}

func compareRingEdges(a, b RingEdge) int {
	return cmp.Or(
		cmp.Compare(a.Start, b.Start),
		cmp.Compare(a.End, b.End),
		cmp.Compare(a.Src, b.Src),
		cmp.Compare(a.Dst, b.Dst),
	)
}

// RingEdges maps edges onto ring intervals sorted by (Start, End). An edge is
// dropped only if it covers the same interval as the edge right before it in
// that order. Degenerate intervals (Start == End) cannot cross anything and
// are dropped as well; [SweepRing] reports their boundary coincidences
// separately.
func RingEdges(edges []graph.Edge, ring idspace.RingSpace) ([]RingEdge, error) {
	mapped := make([]RingEdge, 0, len(edges))
	for _, e := range edges {
		start, end, err := interval(e, ring)
		if err != nil {
			return nil, err
		}
		if start == end {
			continue
		}
		mapped = append(mapped, RingEdge{Start: start, End: end, Src: e.U, Dst: e.V})
	}
	slices.SortFunc(mapped, compareRingEdges)

	out := make([]RingEdge, 0, len(mapped))
	for _, re := range mapped {
		if len(out) > 0 && re.Equal(out[len(out)-1]) {
			continue
		}
		out = append(out, re)
	}
	return out, nil
}
