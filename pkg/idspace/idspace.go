// Package idspace adapts identifier-space embeddings for crossing computations.
//
// An embedding assigns every node a position: a scalar on a ring, or a
// coordinate vector in the plane or a d-dimensional space. This package does
// not decide where nodes go; it only exposes already-assigned positions behind
// the small [Embedding] interface the crossing counters consume.
//
// Two concrete embeddings exist:
//
//   - [Ring]: a one-dimensional circular space. Edges are drawn as chords.
//   - [Coordinates]: a plane ([KindPlane], two dimensions) or a [KindMultiDimensional]
//     space of any dimensionality.
//
// Callers dispatch on [Embedding.Kind] with an exhaustive switch.
package idspace

import (
	"errors"
	"fmt"
	"math"
	"slices"
)

// ErrUnknownNode is returned when a node has no assigned position.
var ErrUnknownNode = errors.New("node has no position in identifier space")

// ErrInvalidEmbedding is returned by Validate for malformed embeddings.
var ErrInvalidEmbedding = errors.New("invalid embedding")

// Kind identifies the shape of an identifier space.
type Kind int

const (
	// KindRing is a circular one-dimensional space.
	KindRing Kind = iota + 1
	// KindPlane is a two-dimensional Euclidean space.
	KindPlane
	// KindMultiDimensional is a Euclidean space of arbitrary dimensionality.
	KindMultiDimensional
)

// String returns the wire name of the kind ("ring", "plane", "md").
func (k Kind) String() string {
	switch k {
	case KindRing:
		return "ring"
	case KindPlane:
		return "plane"
	case KindMultiDimensional:
		return "md"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ParseKind converts a wire name into a Kind.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "ring":
		return KindRing, nil
	case "plane":
		return KindPlane, nil
	case "md", "multidimensional":
		return KindMultiDimensional, nil
	}
	return 0, fmt.Errorf("%w: unknown kind %q", ErrInvalidEmbedding, s)
}

// Embedding is the read-only view of an identifier space.
type Embedding interface {
	// Kind reports the shape of the space.
	Kind() Kind
	// Dimensions reports the dimensionality: 1 for rings, 2 for planes.
	Dimensions() int
	// Size reports how many nodes have positions.
	Size() int
	// Validate checks that all positions are finite and well formed.
	Validate() error
}

// =============================================================================
// Ring
// =============================================================================

// Ring is a ring identifier space. Positions[i] is the start of node i's
// partition, a value in [0, Modulus).
type Ring struct {
	Modulus   float64
	Positions []float64
}

// NewRing creates a ring with the given modulus and per-node positions.
// A non-positive modulus defaults to 1.
func NewRing(modulus float64, positions []float64) *Ring {
	if modulus <= 0 {
		modulus = 1
	}
	return &Ring{Modulus: modulus, Positions: positions}
}

// Kind returns [KindRing].
func (r *Ring) Kind() Kind { return KindRing }

// Dimensions returns 1.
func (r *Ring) Dimensions() int { return 1 }

// Size returns the number of positioned nodes.
func (r *Ring) Size() int { return len(r.Positions) }

// Position returns the linear position of node id on the ring.
func (r *Ring) Position(id int64) (float64, error) {
	if id < 0 || id >= int64(len(r.Positions)) {
		return 0, fmt.Errorf("%w: %d", ErrUnknownNode, id)
	}
	return r.Positions[id], nil
}

// Boundaries returns the distinct partition start positions in ascending
// order. These are the legal anchor points of a ring drawing.
func (r *Ring) Boundaries() []float64 {
	b := slices.Clone(r.Positions)
	slices.Sort(b)
	return slices.Compact(b)
}

// Validate checks that every position is finite and lies in [0, Modulus).
func (r *Ring) Validate() error {
	if r.Modulus <= 0 || math.IsNaN(r.Modulus) || math.IsInf(r.Modulus, 0) {
		return fmt.Errorf("%w: modulus %v", ErrInvalidEmbedding, r.Modulus)
	}
	for i, p := range r.Positions {
		if math.IsNaN(p) || math.IsInf(p, 0) || p < 0 || p >= r.Modulus {
			return fmt.Errorf("%w: node %d position %v outside [0, %v)", ErrInvalidEmbedding, i, p, r.Modulus)
		}
	}
	return nil
}

// =============================================================================
// Coordinates
// =============================================================================

// Coordinates is a Euclidean identifier space. Points[i] holds node i's
// coordinate vector of length Dim.
type Coordinates struct {
	Dim    int
	Points [][]float64
	plane  bool
}

// NewPlane creates a two-dimensional space of kind [KindPlane].
func NewPlane(points [][]float64) *Coordinates {
	return &Coordinates{Dim: 2, Points: points, plane: true}
}

// NewMultiDimensional creates a space of kind [KindMultiDimensional].
func NewMultiDimensional(dim int, points [][]float64) *Coordinates {
	return &Coordinates{Dim: dim, Points: points}
}

// Kind returns [KindPlane] for spaces built with [NewPlane], otherwise [KindMultiDimensional].
func (c *Coordinates) Kind() Kind {
	if c.plane {
		return KindPlane
	}
	return KindMultiDimensional
}

// Dimensions returns the dimensionality.
func (c *Coordinates) Dimensions() int { return c.Dim }

// Size returns the number of positioned nodes.
func (c *Coordinates) Size() int { return len(c.Points) }

// Point returns the coordinate vector of node id.
func (c *Coordinates) Point(id int64) ([]float64, error) {
	if id < 0 || id >= int64(len(c.Points)) {
		return nil, fmt.Errorf("%w: %d", ErrUnknownNode, id)
	}
	return c.Points[id], nil
}

// Validate checks that every point has Dim finite components.
func (c *Coordinates) Validate() error {
	if c.Dim < 1 {
		return fmt.Errorf("%w: dimensions %d", ErrInvalidEmbedding, c.Dim)
	}
	if c.plane && c.Dim != 2 {
		return fmt.Errorf("%w: plane with %d dimensions", ErrInvalidEmbedding, c.Dim)
	}
	for i, p := range c.Points {
		if len(p) != c.Dim {
			return fmt.Errorf("%w: node %d has %d coordinates, want %d", ErrInvalidEmbedding, i, len(p), c.Dim)
		}
		for _, v := range p {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("%w: node %d has non-finite coordinate", ErrInvalidEmbedding, i)
			}
		}
	}
	return nil
}

// RingSpace is an [Embedding] that exposes ring positions.
type RingSpace interface {
	Embedding
	Position(id int64) (float64, error)
	Boundaries() []float64
}

// PointSpace is an [Embedding] that exposes coordinate vectors.
type PointSpace interface {
	Embedding
	Point(id int64) ([]float64, error)
}

var (
	_ RingSpace  = (*Ring)(nil)
	_ PointSpace = (*Coordinates)(nil)
)
