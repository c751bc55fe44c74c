// Package graph provides the undirected graph snapshot that crossing metrics
// are computed on.
//
// # Overview
//
// Crossing counters only need two things from a network: its edge set and,
// for local queries, the edges incident to a single node. [Snapshot] exposes
// exactly that on top of a gonum simple undirected graph, so node adjacency
// and edge deduplication follow gonum's semantics.
//
// # Edges
//
// An [Edge] is an unordered pair of integer node identifiers. [NewEdge]
// returns the canonical form (U <= V), which makes two edges with the same
// endpoints compare equal with ==:
//
//	graph.NewEdge(3, 1) == graph.NewEdge(1, 3) // true
//
// # Building a Snapshot
//
//	s := graph.New()
//	s.AddEdge(0, 2)
//	s.AddEdge(1, 3)
//	edges := s.Edges() // [{0 2} {1 3}]
//
// Self loops are rejected with [ErrSelfLoop]; repeated edges collapse into one.
// A Snapshot is not safe for concurrent mutation, but concurrent readers are fine
// once construction is finished.
package graph
