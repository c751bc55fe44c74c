package crossings

import (
	"fmt"

	"github.com/matzehuels/edgecross/pkg/graph"
	"github.com/matzehuels/edgecross/pkg/idspace"
)

// Crosses reports whether edges a and b cross when drawn along emb.
//
// Identical edges and edges sharing an endpoint never cross. If seen is
// non-nil, a pair that was already scored through the same set reports false;
// pass nil to test a pair in isolation.
//
// Errors:
//   - [UnsupportedEmbeddingError] for spaces without a planar drawing.
//   - [AmbiguousCrossingError] when the drawings meet at a boundary coincidence.
//   - an error wrapping [idspace.ErrUnknownNode] for nodes without a position.
//
// Crosses is symmetric: Crosses(a, b, ...) == Crosses(b, a, ...).
func Crosses(a, b graph.Edge, emb idspace.Embedding, seen *SeenSet) (bool, error) {
	if err := checkSupported(emb); err != nil {
		return false, err
	}
	if a == b || a.SharesEndpoint(b) {
		return false, nil
	}

	switch emb.Kind() {
	case idspace.KindRing:
		ring, ok := emb.(idspace.RingSpace)
		if !ok {
			return false, &UnsupportedEmbeddingError{Kind: emb.Kind(), Dim: emb.Dimensions()}
		}
		return ringCrossing(a, b, ring, seen)
	case idspace.KindPlane, idspace.KindMultiDimensional:
		space, ok := emb.(idspace.PointSpace)
		if !ok {
			return false, &UnsupportedEmbeddingError{Kind: emb.Kind(), Dim: emb.Dimensions()}
		}
		return planeCrossing(a, b, space, seen)
	default:
		return false, &UnsupportedEmbeddingError{Kind: emb.Kind(), Dim: emb.Dimensions()}
	}
}

// checkSupported rejects embeddings that have no crossing definition.
func checkSupported(emb idspace.Embedding) error {
	switch emb.Kind() {
	case idspace.KindRing:
		return nil
	case idspace.KindPlane, idspace.KindMultiDimensional:
		if emb.Dimensions() == 2 {
			return nil
		}
	}
	return &UnsupportedEmbeddingError{Kind: emb.Kind(), Dim: emb.Dimensions()}
}

// =============================================================================
// Ring
// =============================================================================

// interval returns the ring interval [start, end] that e is drawn on.
func interval(e graph.Edge, ring idspace.RingSpace) (start, end float64, err error) {
	pu, err := ring.Position(e.U)
	if err != nil {
		return 0, 0, fmt.Errorf("edge %s: %w", e, err)
	}
	pv, err := ring.Position(e.V)
	if err != nil {
		return 0, 0, fmt.Errorf("edge %s: %w", e, err)
	}
	return min(pu, pv), max(pu, pv), nil
}

func ringCrossing(a, b graph.Edge, ring idspace.RingSpace, seen *SeenSet) (bool, error) {
	as, ae, err := interval(a, ring)
	if err != nil {
		return false, err
	}
	bs, be, err := interval(b, ring)
	if err != nil {
		return false, err
	}

	if seen != nil && !seen.Visit(pairKey(intervalKey(as, ae), intervalKey(bs, be))) {
		return false, nil
	}

	switch {
	case (as < bs && ae > be) || (bs < as && be > ae):
		// nested
		return false, nil
	case bs > ae || as > be:
		// disjoint
		return false, nil
	case (as < bs && bs < ae && ae < be) || (bs < as && as < be && be < ae):
		return true, nil
	}
	return false, &AmbiguousCrossingError{A: a, B: b}
}

// =============================================================================
// Plane
// =============================================================================

type point struct{ x, y float64 }

func segment(e graph.Edge, space idspace.PointSpace) (p, q point, err error) {
	u, err := space.Point(e.U)
	if err != nil {
		return p, q, fmt.Errorf("edge %s: %w", e, err)
	}
	v, err := space.Point(e.V)
	if err != nil {
		return p, q, fmt.Errorf("edge %s: %w", e, err)
	}
	if len(u) < 2 || len(v) < 2 {
		return p, q, fmt.Errorf("edge %s: %w: need 2 coordinates", e, idspace.ErrInvalidEmbedding)
	}
	return point{u[0], u[1]}, point{v[0], v[1]}, nil
}

// orientation is the signed area of the triangle (a, b, c): positive for a
// counter-clockwise turn, negative for clockwise, zero when collinear.
func orientation(a, b, c point) float64 {
	return (b.x-a.x)*(c.y-a.y) - (b.y-a.y)*(c.x-a.x)
}

// onSegment reports whether c, known to be collinear with a and b, lies
// within their bounding box.
func onSegment(a, b, c point) bool {
	return min(a.x, b.x) <= c.x && c.x <= max(a.x, b.x) &&
		min(a.y, b.y) <= c.y && c.y <= max(a.y, b.y)
}

func planeCrossing(a, b graph.Edge, space idspace.PointSpace, seen *SeenSet) (bool, error) {
	p1, p2, err := segment(a, space)
	if err != nil {
		return false, err
	}
	p3, p4, err := segment(b, space)
	if err != nil {
		return false, err
	}

	if seen != nil && !seen.Visit(edgePairKey(a, b)) {
		return false, nil
	}

	d1 := orientation(p3, p4, p1)
	d2 := orientation(p3, p4, p2)
	d3 := orientation(p1, p2, p3)
	d4 := orientation(p1, p2, p4)

	if ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0)) {
		return true, nil
	}

	// The segments touch without properly crossing.
	if (d1 == 0 && onSegment(p3, p4, p1)) ||
		(d2 == 0 && onSegment(p3, p4, p2)) ||
		(d3 == 0 && onSegment(p1, p2, p3)) ||
		(d4 == 0 && onSegment(p1, p2, p4)) {
		return false, &AmbiguousCrossingError{A: a, B: b}
	}
	return false, nil
}
