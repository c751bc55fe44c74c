// Package crossings counts edge crossings of a graph drawn along an
// identifier-space embedding.
//
// # Overview
//
// Two edges cross when their drawings intersect at a point that is not a
// shared endpoint. Edges that share a node never cross, regardless of the
// geometry. The package offers three layers:
//
//   - [Crosses]: the pairwise test for one pair of edges.
//   - [CountAll], [CountEdgesAgainstGraph], [CountBetweenNodes]: naive
//     all-pairs counters that work for every supported embedding in O(n·m).
//   - [SweepRing]: the Six–Tollis sweep for ring embeddings, which runs in
//     O((V+E) log V) using a Fenwick tree as the set of open edges.
//
// [Count] picks the right counter for an embedding.
//
// # Ring Drawings
//
// On a ring, an edge is mapped onto the interval [start, end] between the
// linear positions of its endpoints. Two intervals with four distinct
// endpoints are either nested, disjoint, or interleaved; only interleaved
// intervals cross. Boundary coincidences (two nodes on the same position)
// cannot be classified and are reported as [AmbiguousCrossingError].
//
// # Plane Drawings
//
// In the plane and in two-dimensional spaces, edges are straight segments and
// the test is the orientation (cross product) method. Segments that merely
// touch, or overlap collinearly, are ambiguous. Spaces with any other
// dimensionality have no planar drawing and fail with
// [UnsupportedEmbeddingError].
//
// # Scratch State
//
// Every top-level counting call creates its own [SeenSet] and working arrays,
// so independent computations can run on separate goroutines without locking.
//
// # Example
//
//	ring := idspace.NewRing(1, []float64{0, 0.25, 0.5, 0.75})
//	edges := []graph.Edge{graph.NewEdge(0, 2), graph.NewEdge(1, 3)}
//	res, err := crossings.Count(edges, ring, crossings.Options{})
//	// res.Total == 1
package crossings
