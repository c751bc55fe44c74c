package graph

import (
	"errors"
	"fmt"
	"slices"

	gonum "gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
)

var (
	// ErrSelfLoop is returned by [Snapshot.AddEdge] when both endpoints are the
	// same node. Self loops are never drawn as crossing chords.
	ErrSelfLoop = errors.New("self loop")

	// ErrNegativeNodeID is returned when a node identifier is negative.
	// Identifier spaces index their positions by node ID.
	ErrNegativeNodeID = errors.New("node ID must not be negative")
)

// Edge is an unordered pair of node identifiers in canonical form (U <= V).
type Edge struct {
	U int64 `json:"u"`
	V int64 `json:"v"`
}

// NewEdge returns the canonical edge between a and b.
func NewEdge(a, b int64) Edge {
	if a > b {
		a, b = b, a
	}
	return Edge{U: a, V: b}
}

// SharesEndpoint reports whether e and o have at least one node in common.
func (e Edge) SharesEndpoint(o Edge) bool {
	return e.U == o.U || e.U == o.V || e.V == o.U || e.V == o.V
}

// String returns the edge as "u-v".
func (e Edge) String() string {
	return fmt.Sprintf("%d-%d", e.U, e.V)
}

// Compare orders edges by U, then V. It is suitable for [slices.SortFunc].
func Compare(a, b Edge) int {
	if a.U != b.U {
		if a.U < b.U {
			return -1
		}
		return 1
	}
	switch {
	case a.V < b.V:
		return -1
	case a.V > b.V:
		return 1
	}
	return 0
}

// Snapshot is an immutable-by-convention undirected graph used as input to
// crossing computations.
//
// The zero value is not usable; create snapshots with [New] or [FromEdges].
type Snapshot struct {
	g *simple.UndirectedGraph
}

// New creates an empty snapshot.
func New() *Snapshot {
	return &Snapshot{g: simple.NewUndirectedGraph()}
}

// FromEdges builds a snapshot from a list of endpoint pairs.
// It fails on the first self loop or negative identifier.
func FromEdges(pairs [][2]int64) (*Snapshot, error) {
	s := New()
	for _, p := range pairs {
		if err := s.AddEdge(p[0], p[1]); err != nil {
			return nil, fmt.Errorf("edge %d-%d: %w", p[0], p[1], err)
		}
	}
	return s, nil
}

// AddNode adds an isolated node. Adding an existing node is a no-op.
func (s *Snapshot) AddNode(id int64) error {
	if id < 0 {
		return ErrNegativeNodeID
	}
	if s.g.Node(id) == nil {
		s.g.AddNode(simple.Node(id))
	}
	return nil
}

// AddEdge adds the undirected edge a-b, creating missing endpoints.
// Adding an edge twice (in either direction) leaves a single edge.
func (s *Snapshot) AddEdge(a, b int64) error {
	if a == b {
		return ErrSelfLoop
	}
	if err := s.AddNode(a); err != nil {
		return err
	}
	if err := s.AddNode(b); err != nil {
		return err
	}
	s.g.SetEdge(s.g.NewEdge(simple.Node(a), simple.Node(b)))
	return nil
}

// NodeCount returns the number of nodes.
func (s *Snapshot) NodeCount() int {
	return s.g.Nodes().Len()
}

// EdgeCount returns the number of distinct undirected edges.
func (s *Snapshot) EdgeCount() int {
	return len(s.Edges())
}

// HasNode reports whether id is part of the snapshot.
func (s *Snapshot) HasNode(id int64) bool {
	return s.g.Node(id) != nil
}

// Nodes returns all node IDs in ascending order.
func (s *Snapshot) Nodes() []int64 {
	ids := make([]int64, 0, s.g.Nodes().Len())
	for _, n := range gonum.NodesOf(s.g.Nodes()) {
		ids = append(ids, n.ID())
	}
	slices.Sort(ids)
	return ids
}

// MaxNodeID returns the largest node ID, or -1 for an empty snapshot.
func (s *Snapshot) MaxNodeID() int64 {
	ids := s.Nodes()
	if len(ids) == 0 {
		return -1
	}
	return ids[len(ids)-1]
}

// Edges returns every edge once, in canonical form, sorted by [Compare].
func (s *Snapshot) Edges() []Edge {
	it := s.g.Edges()
	edges := make([]Edge, 0, it.Len())
	for it.Next() {
		e := it.Edge()
		edges = append(edges, NewEdge(e.From().ID(), e.To().ID()))
	}
	slices.SortFunc(edges, Compare)
	return slices.Compact(edges)
}

// NodeEdges returns the edges incident to id, sorted by [Compare].
// Unknown nodes have no edges.
func (s *Snapshot) NodeEdges(id int64) []Edge {
	if s.g.Node(id) == nil {
		return nil
	}
	var edges []Edge
	for _, n := range gonum.NodesOf(s.g.From(id)) {
		edges = append(edges, NewEdge(id, n.ID()))
	}
	slices.SortFunc(edges, Compare)
	return edges
}

// Degree returns the number of edges incident to id.
func (s *Snapshot) Degree(id int64) int {
	if s.g.Node(id) == nil {
		return 0
	}
	return s.g.From(id).Len()
}
