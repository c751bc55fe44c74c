package crossings

import (
	"errors"
	"fmt"

	"github.com/matzehuels/edgecross/pkg/graph"
	"github.com/matzehuels/edgecross/pkg/idspace"
)

var (
	// ErrUnsupportedEmbedding matches every [UnsupportedEmbeddingError].
	ErrUnsupportedEmbedding = errors.New("unsupported embedding")

	// ErrAmbiguousCrossing matches every [AmbiguousCrossingError].
	ErrAmbiguousCrossing = errors.New("ambiguous crossing")

	// ErrTooManyEdges is returned by [Count] when the naive counter would run
	// on more edges than Options.MaxNaiveEdges allows.
	ErrTooManyEdges = errors.New("too many edges for pairwise counting")

	// ErrInvalidStrategy is returned for an unknown [Strategy].
	ErrInvalidStrategy = errors.New("invalid strategy")
)

// UnsupportedEmbeddingError reports an embedding that has no planar drawing,
// or that a counter cannot handle.
type UnsupportedEmbeddingError struct {
	Kind idspace.Kind
	Dim  int
}

// Error implements the error interface.
func (e *UnsupportedEmbeddingError) Error() string {
	return fmt.Sprintf("cannot calculate crossings in %s space with %d dimensions", e.Kind, e.Dim)
}

// Is makes errors.Is(err, ErrUnsupportedEmbedding) succeed.
func (e *UnsupportedEmbeddingError) Is(target error) bool {
	return target == ErrUnsupportedEmbedding
}

// AmbiguousCrossingError reports a pair of edges whose drawings meet at a
// boundary coincidence, so neither "crossing" nor "no crossing" is correct.
type AmbiguousCrossingError struct {
	A, B graph.Edge
}

// Error implements the error interface.
func (e *AmbiguousCrossingError) Error() string {
	return fmt.Sprintf("ambiguous crossing between %s and %s", e.A, e.B)
}

// Is makes errors.Is(err, ErrAmbiguousCrossing) succeed.
func (e *AmbiguousCrossingError) Is(target error) bool {
	return target == ErrAmbiguousCrossing
}

// AmbiguousPair is an edge pair that could not be classified during a
// non-strict counting pass.
type AmbiguousPair struct {
	A graph.Edge `json:"a"`
	B graph.Edge `json:"b"`
}
