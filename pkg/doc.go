// Package pkg holds the libraries behind edgecross, a tool that counts how
// often the edges of a graph cross when its nodes are embedded in an
// identifier space.
//
// # Overview
//
// A graph snapshot is paired with an embedding that gives every node a
// position, either on a ring of circumference M or at a point in the plane.
// Two edges cross when the straight lines between their endpoints intersect.
// Counting those crossings per edge yields a crossing distribution and the
// average number of crossings per edge (EC_AVG).
//
// # Architecture
//
// A document moves through these packages:
//
//	JSON document (file, URL or HTTP request body)
//	         ↓
//	    [io] package (decode + validate)
//	         ↓
//	    [graph] + [idspace] packages (snapshot + embedding)
//	         ↓
//	    [crossings] package (pairwise test, naive count, ring sweep)
//	         ↓
//	    [distribution] package (incidence weighted distribution)
//	         ↓
//	    [metric] package (EC_AVG + series)
//	         ↓
//	    JSON result, series files, DOT/SVG/PDF/PNG drawing
//
// # Quick Start
//
//	snap, _ := graph.FromEdges([][2]int64{{0, 2}, {1, 3}, {0, 1}})
//	ring := idspace.NewRing(1, []float64{0, 0.25, 0.5, 0.75})
//
//	m := metric.New(crossings.Options{}, nil)
//	res, _ := m.Compute(context.Background(), snap, ring)
//	fmt.Println(res.Distribution.Average) // 1
//
// # Main Packages
//
// [crossings] - The crossing test for ring and plane embeddings, the O(m²)
// pairwise counter and the O(m log m) sweep for rings.
//
// [distribution] - Turns per edge crossing counts into the distribution of
// how many crossings an incidence falls on.
//
// [metric] - The edge crossings metric. Wraps counting and the distribution
// and emits hooks from [observability].
//
// [pipeline] - Document in, result out. Used by the CLI and the HTTP server so
// both cache, store and classify errors the same way.
//
// [cache] and [store] - Result caching (file, memory, Redis) and the result
// history (memory, MongoDB).
//
// [render] and [render/ringdot] - Drawings of an embedded graph through
// Graphviz, with crossed edges highlighted.
//
// [server] - The HTTP API.
//
// [crossings]: https://pkg.go.dev/github.com/matzehuels/edgecross/pkg/crossings
// [distribution]: https://pkg.go.dev/github.com/matzehuels/edgecross/pkg/distribution
// [metric]: https://pkg.go.dev/github.com/matzehuels/edgecross/pkg/metric
// [observability]: https://pkg.go.dev/github.com/matzehuels/edgecross/pkg/observability
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/edgecross/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/edgecross/pkg/cache
// [store]: https://pkg.go.dev/github.com/matzehuels/edgecross/pkg/store
// [render]: https://pkg.go.dev/github.com/matzehuels/edgecross/pkg/render
// [render/ringdot]: https://pkg.go.dev/github.com/matzehuels/edgecross/pkg/render/ringdot
// [server]: https://pkg.go.dev/github.com/matzehuels/edgecross/pkg/server
// [io]: https://pkg.go.dev/github.com/matzehuels/edgecross/pkg/io
// [graph]: https://pkg.go.dev/github.com/matzehuels/edgecross/pkg/graph
// [idspace]: https://pkg.go.dev/github.com/matzehuels/edgecross/pkg/idspace
package pkg
