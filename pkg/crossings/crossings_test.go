package crossings

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/matzehuels/edgecross/pkg/graph"
	"github.com/matzehuels/edgecross/pkg/idspace"
)

func square() *idspace.Ring {
	return idspace.NewRing(1, []float64{0, 0.25, 0.5, 0.75})
}

func TestCrossesRingScenarios(t *testing.T) {
	tests := []struct {
		name string
		a, b graph.Edge
		want bool
	}{
		{"diagonals", graph.NewEdge(0, 2), graph.NewEdge(1, 3), true},
		{"disjoint arcs", graph.NewEdge(0, 1), graph.NewEdge(2, 3), false},
		{"shared endpoint", graph.NewEdge(0, 2), graph.NewEdge(0, 1), false},
		{"nested", graph.NewEdge(0, 3), graph.NewEdge(1, 2), false},
		{"identical", graph.NewEdge(0, 2), graph.NewEdge(2, 0), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Crosses(tt.a, tt.b, square(), NewSeenSet())
			if err != nil {
				t.Fatalf("Crosses error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Crosses(%s, %s) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestCountAllRingScenarios(t *testing.T) {
	tests := []struct {
		name  string
		edges []graph.Edge
		want  int
	}{
		{"diagonals", []graph.Edge{graph.NewEdge(0, 2), graph.NewEdge(1, 3)}, 1},
		{"disjoint", []graph.Edge{graph.NewEdge(0, 1), graph.NewEdge(2, 3)}, 0},
		{"adjacent", []graph.Edge{graph.NewEdge(0, 2), graph.NewEdge(0, 1)}, 0},
		{"empty", nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			naive, err := CountAll(tt.edges, square(), Options{})
			if err != nil {
				t.Fatalf("CountAll error: %v", err)
			}
			if naive.Total != tt.want {
				t.Errorf("CountAll total = %d, want %d", naive.Total, tt.want)
			}
			swept, err := SweepRing(tt.edges, square(), Options{})
			if err != nil {
				t.Fatalf("SweepRing error: %v", err)
			}
			if swept.Total != tt.want {
				t.Errorf("SweepRing total = %d, want %d", swept.Total, tt.want)
			}
		})
	}
}

func TestCrossesSeenSet(t *testing.T) {
	seen := NewSeenSet()
	a, b := graph.NewEdge(0, 2), graph.NewEdge(1, 3)

	first, err := Crosses(a, b, square(), seen)
	if err != nil || !first {
		t.Fatalf("first Crosses = %v, %v; want true, nil", first, err)
	}
	second, err := Crosses(b, a, square(), seen)
	if err != nil {
		t.Fatalf("second Crosses error: %v", err)
	}
	if second {
		t.Error("pair already scored through the same set should report false")
	}
	if seen.Len() != 1 {
		t.Errorf("seen.Len() = %d, want 1", seen.Len())
	}
}

func TestCrossesAmbiguousRing(t *testing.T) {
	// Nodes 1 and 2 share position 0.5, so the intervals touch.
	ring := idspace.NewRing(1, []float64{0, 0.5, 0.5, 0.75})
	_, err := Crosses(graph.NewEdge(0, 1), graph.NewEdge(2, 3), ring, nil)

	var amb *AmbiguousCrossingError
	if !errors.As(err, &amb) {
		t.Fatalf("err = %v, want AmbiguousCrossingError", err)
	}
	if !errors.Is(err, ErrAmbiguousCrossing) {
		t.Error("errors.Is(err, ErrAmbiguousCrossing) = false")
	}
	if amb.A != graph.NewEdge(0, 1) || amb.B != graph.NewEdge(2, 3) {
		t.Errorf("ambiguous pair = %s, %s", amb.A, amb.B)
	}
}

func TestCountAllAmbiguousCollected(t *testing.T) {
	ring := idspace.NewRing(1, []float64{0, 0.5, 0.5, 0.75})
	edges := []graph.Edge{graph.NewEdge(0, 1), graph.NewEdge(2, 3)}

	res, err := CountAll(edges, ring, Options{})
	if err != nil {
		t.Fatalf("non-strict CountAll error: %v", err)
	}
	if len(res.Ambiguous) != 1 {
		t.Errorf("len(Ambiguous) = %d, want 1", len(res.Ambiguous))
	}
	if res.Total != 0 {
		t.Errorf("Total = %d, want 0", res.Total)
	}

	if _, err := CountAll(edges, ring, Options{Strict: true}); !errors.Is(err, ErrAmbiguousCrossing) {
		t.Errorf("strict CountAll error = %v, want ErrAmbiguousCrossing", err)
	}
}

func TestCrossesUnsupportedEmbedding(t *testing.T) {
	md := idspace.NewMultiDimensional(3, [][]float64{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {0, 0, 1}})
	_, err := Crosses(graph.NewEdge(0, 1), graph.NewEdge(2, 3), md, nil)

	var ue *UnsupportedEmbeddingError
	if !errors.As(err, &ue) {
		t.Fatalf("err = %v, want UnsupportedEmbeddingError", err)
	}
	if ue.Dim != 3 {
		t.Errorf("Dim = %d, want 3", ue.Dim)
	}
	if !errors.Is(err, ErrUnsupportedEmbedding) {
		t.Error("errors.Is(err, ErrUnsupportedEmbedding) = false")
	}

	// Fatal for the whole call, even without pairs to compare.
	if _, err := CountAll([]graph.Edge{graph.NewEdge(0, 1)}, md, Options{}); !errors.Is(err, ErrUnsupportedEmbedding) {
		t.Errorf("CountAll error = %v, want ErrUnsupportedEmbedding", err)
	}
}

func TestCrossesUnknownNode(t *testing.T) {
	_, err := Crosses(graph.NewEdge(0, 7), graph.NewEdge(1, 2), square(), nil)
	if !errors.Is(err, idspace.ErrUnknownNode) {
		t.Errorf("err = %v, want ErrUnknownNode", err)
	}
}

func TestCrossesPlane(t *testing.T) {
	plane := idspace.NewPlane([][]float64{
		{0, 0}, {1, 1}, {0, 1}, {1, 0}, // square corners
		{2, 0}, {1, 0.5}, {3, 3}, {4, 3},
	})
	tests := []struct {
		name      string
		a, b      graph.Edge
		want      bool
		ambiguous bool
	}{
		{"diagonals cross", graph.NewEdge(0, 1), graph.NewEdge(2, 3), true, false},
		{"sides parallel", graph.NewEdge(0, 2), graph.NewEdge(3, 1), false, false},
		{"far apart", graph.NewEdge(0, 2), graph.NewEdge(6, 7), false, false},
		{"shared endpoint", graph.NewEdge(0, 1), graph.NewEdge(1, 2), false, false},
		{"t-junction", graph.NewEdge(0, 4), graph.NewEdge(3, 5), false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Crosses(tt.a, tt.b, plane, nil)
			if tt.ambiguous {
				if !errors.Is(err, ErrAmbiguousCrossing) {
					t.Fatalf("err = %v, want ErrAmbiguousCrossing", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Crosses error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Crosses(%s, %s) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestCrossesTwoDimensionalSpace(t *testing.T) {
	md := idspace.NewMultiDimensional(2, [][]float64{{0, 0}, {1, 1}, {0, 1}, {1, 0}})
	got, err := Crosses(graph.NewEdge(0, 1), graph.NewEdge(2, 3), md, nil)
	if err != nil {
		t.Fatalf("Crosses error: %v", err)
	}
	if !got {
		t.Error("diagonals in a 2-dimensional space should cross")
	}
}

func TestCrossesSymmetry(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	for trial := 0; trial < 50; trial++ {
		n := 4 + rng.IntN(10)
		edges := randomEdges(rng, n, 0.5)
		spaces := []idspace.Embedding{randomRing(rng, n), randomPlane(rng, n)}
		for _, emb := range spaces {
			for _, a := range edges {
				for _, b := range edges {
					ab, errAB := Crosses(a, b, emb, nil)
					ba, errBA := Crosses(b, a, emb, nil)
					if (errAB == nil) != (errBA == nil) {
						t.Fatalf("%v: error asymmetry for %s, %s: %v vs %v", emb.Kind(), a, b, errAB, errBA)
					}
					if ab != ba {
						t.Fatalf("%v: Crosses(%s, %s) = %v but Crosses(%s, %s) = %v", emb.Kind(), a, b, ab, b, a, ba)
					}
				}
			}
		}
	}
}

func TestNoAdjacentCrossing(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 5))
	for trial := 0; trial < 50; trial++ {
		n := 4 + rng.IntN(10)
		emb := randomRing(rng, n)
		edges := randomEdges(rng, n, 0.6)
		for _, a := range edges {
			for _, b := range edges {
				if !a.SharesEndpoint(b) {
					continue
				}
				got, err := Crosses(a, b, emb, nil)
				if err != nil || got {
					t.Fatalf("Crosses(%s, %s) = %v, %v; want false, nil", a, b, got, err)
				}
			}
		}
	}
}

func TestNaiveSweepAgreement(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for trial := 0; trial < 300; trial++ {
		n := 4 + rng.IntN(17)
		edges := randomEdges(rng, n, 0.2+0.6*rng.Float64())
		ring := randomRing(rng, n)

		naive, err := CountAll(edges, ring, Options{Strict: true})
		if err != nil {
			t.Fatalf("trial %d: CountAll error: %v", trial, err)
		}
		swept, err := SweepRing(edges, ring, Options{})
		if err != nil {
			t.Fatalf("trial %d: SweepRing error: %v", trial, err)
		}
		if naive.Total != swept.Total {
			t.Fatalf("trial %d (n=%d, e=%d): naive total %d, sweep total %d", trial, n, len(edges), naive.Total, swept.Total)
		}

		local := make(map[graph.Edge]int, len(naive.Edges))
		for i, e := range naive.Edges {
			local[e] = naive.PerEdge[i]
		}
		sum := 0
		for i, e := range swept.Edges {
			sum += swept.PerEdge[i]
			if local[e] != swept.PerEdge[i] {
				t.Fatalf("trial %d: edge %s naive local %d, sweep local %d", trial, e, local[e], swept.PerEdge[i])
			}
		}
		if sum != 2*swept.Total {
			t.Fatalf("trial %d: sum of local counts %d, want %d", trial, sum, 2*swept.Total)
		}
		if naive.MaxLocal != swept.MaxLocal {
			t.Fatalf("trial %d: MaxLocal naive %d, sweep %d", trial, naive.MaxLocal, swept.MaxLocal)
		}
	}
}

func TestCountCoincidentPositions(t *testing.T) {
	// Nodes 0 and 1 share position 0, so 0-2 and 1-3 meet at a boundary.
	ring := idspace.NewRing(1, []float64{0, 0, 0.5, 0.75})
	edges := []graph.Edge{graph.NewEdge(0, 2), graph.NewEdge(1, 3)}

	for _, strategy := range []Strategy{StrategyAuto, StrategyNaive, StrategySweep} {
		t.Run(string(strategy), func(t *testing.T) {
			res, err := Count(edges, ring, Options{Strategy: strategy})
			if err != nil {
				t.Fatalf("Count error: %v", err)
			}
			if res.Total != 0 || len(res.Ambiguous) != 1 {
				t.Errorf("total = %d, ambiguous = %v; want 0 and one pair", res.Total, res.Ambiguous)
			}

			_, err = Count(edges, ring, Options{Strategy: strategy, Strict: true})
			var ambErr *AmbiguousCrossingError
			if !errors.As(err, &ambErr) {
				t.Fatalf("strict error = %v, want AmbiguousCrossingError", err)
			}
			if ambErr.A != edges[0] || ambErr.B != edges[1] {
				t.Errorf("ambiguous pair = %s, %s", ambErr.A, ambErr.B)
			}
		})
	}
}

func TestSweepDegenerateEdgeAmbiguous(t *testing.T) {
	// 0-1 collapses onto position 0.2, where 2-3 and 2-4 start.
	ring := idspace.NewRing(1, []float64{0.2, 0.2, 0.2, 0.7, 0.5})
	edges := []graph.Edge{graph.NewEdge(0, 1), graph.NewEdge(2, 3), graph.NewEdge(2, 4)}

	res, err := SweepRing(edges, ring, Options{})
	if err != nil {
		t.Fatalf("SweepRing error: %v", err)
	}
	// 0-1 x 2-3 and 0-1 x 2-4 are ambiguous; 2-3 and 2-4 share node 2.
	if len(res.Ambiguous) != 2 {
		t.Errorf("ambiguous = %v, want 2 pairs", res.Ambiguous)
	}
	naive, err := CountAll(edges, ring, Options{})
	if err != nil {
		t.Fatalf("CountAll error: %v", err)
	}
	if len(naive.Ambiguous) != len(res.Ambiguous) {
		t.Errorf("naive ambiguous = %v, sweep ambiguous = %v", naive.Ambiguous, res.Ambiguous)
	}
}

func TestNaiveSweepAgreementWithCoincidences(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))
	slots := []float64{0, 0.25, 0.5, 0.75}
	for trial := 0; trial < 200; trial++ {
		n := 4 + rng.IntN(9)
		edges := randomEdges(rng, n, 0.3+0.5*rng.Float64())
		positions := make([]float64, n)
		for i := range positions {
			positions[i] = slots[rng.IntN(len(slots))]
		}
		ring := idspace.NewRing(1, positions)

		naive, err := CountAll(edges, ring, Options{})
		if err != nil {
			t.Fatalf("trial %d: CountAll error: %v", trial, err)
		}
		swept, err := SweepRing(edges, ring, Options{})
		if err != nil {
			t.Fatalf("trial %d: SweepRing error: %v", trial, err)
		}
		if naive.Total != swept.Total {
			t.Fatalf("trial %d: naive total %d, sweep total %d", trial, naive.Total, swept.Total)
		}
		if len(naive.Ambiguous) != len(swept.Ambiguous) {
			t.Fatalf("trial %d: naive ambiguous %d, sweep ambiguous %d", trial, len(naive.Ambiguous), len(swept.Ambiguous))
		}

		_, naiveErr := CountAll(edges, ring, Options{Strict: true})
		_, sweptErr := SweepRing(edges, ring, Options{Strict: true})
		if errors.Is(naiveErr, ErrAmbiguousCrossing) != errors.Is(sweptErr, ErrAmbiguousCrossing) {
			t.Fatalf("trial %d: strict naive %v, strict sweep %v", trial, naiveErr, sweptErr)
		}
	}
}

func TestCountAllIdempotent(t *testing.T) {
	rng := rand.New(rand.NewPCG(9, 9))
	edges := randomEdges(rng, 12, 0.5)
	ring := randomRing(rng, 12)

	first, err := CountAll(edges, ring, Options{})
	if err != nil {
		t.Fatalf("CountAll error: %v", err)
	}
	for i := 0; i < 5; i++ {
		again, err := CountAll(edges, ring, Options{})
		if err != nil {
			t.Fatalf("CountAll error: %v", err)
		}
		if again.Total != first.Total {
			t.Fatalf("call %d: total %d, first call %d", i, again.Total, first.Total)
		}
	}
}

func TestCountLocalVariants(t *testing.T) {
	s := completeGraph(t, 4)
	ring := square()

	total, amb, err := CountEdgesAgainstGraph(s.NodeEdges(0), s.Edges(), ring, Options{})
	if err != nil {
		t.Fatalf("CountEdgesAgainstGraph error: %v", err)
	}
	if total != 1 || len(amb) != 0 {
		t.Errorf("node 0 against graph = %d (%d ambiguous), want 1", total, len(amb))
	}

	// Node 2 owns 0-2, the other half of the only crossing.
	total, _, err = CountEdgesAgainstGraph(s.NodeEdges(2), s.Edges(), ring, Options{})
	if err != nil {
		t.Fatalf("CountEdgesAgainstGraph error: %v", err)
	}
	if total != 1 {
		t.Errorf("node 2 against graph = %d, want 1", total)
	}

	between, _, err := CountBetweenNodes(s.NodeEdges(0), s.NodeEdges(1), ring, Options{})
	if err != nil {
		t.Fatalf("CountBetweenNodes error: %v", err)
	}
	if between != 1 {
		t.Errorf("between 0 and 1 = %d, want 1", between)
	}

	between, _, err = CountBetweenNodes(s.NodeEdges(0), s.NodeEdges(2), ring, Options{})
	if err != nil {
		t.Fatalf("CountBetweenNodes error: %v", err)
	}
	if between != 0 {
		t.Errorf("between 0 and 2 = %d, want 0", between)
	}
}

func TestCountStrategies(t *testing.T) {
	s := completeGraph(t, 6)
	ring := idspace.NewRing(1, []float64{0, 1.0 / 6, 2.0 / 6, 3.0 / 6, 4.0 / 6, 5.0 / 6})

	// Convex K6 has C(6,4) = 15 crossings.
	for _, strategy := range []Strategy{"", StrategyAuto, StrategyNaive, StrategySweep} {
		res, err := Count(s.Edges(), ring, Options{Strategy: strategy})
		if err != nil {
			t.Fatalf("strategy %q: %v", strategy, err)
		}
		if res.Total != 15 {
			t.Errorf("strategy %q: total = %d, want 15", strategy, res.Total)
		}
	}

	auto, _ := Count(s.Edges(), ring, Options{})
	if auto.Strategy != StrategySweep {
		t.Errorf("auto on ring used %q, want sweep", auto.Strategy)
	}

	plane := idspace.NewPlane([][]float64{{0, 0}, {1, 1}, {0, 1}, {1, 0}})
	if _, err := Count([]graph.Edge{graph.NewEdge(0, 1)}, plane, Options{Strategy: StrategySweep}); !errors.Is(err, ErrUnsupportedEmbedding) {
		t.Errorf("sweep on plane error = %v, want ErrUnsupportedEmbedding", err)
	}
	res, err := Count([]graph.Edge{graph.NewEdge(0, 1), graph.NewEdge(2, 3)}, plane, Options{})
	if err != nil {
		t.Fatalf("auto on plane: %v", err)
	}
	if res.Strategy != StrategyNaive || res.Total != 1 {
		t.Errorf("auto on plane = %q/%d, want naive/1", res.Strategy, res.Total)
	}

	if _, err := Count(s.Edges(), ring, Options{Strategy: "magic"}); !errors.Is(err, ErrInvalidStrategy) {
		t.Errorf("unknown strategy error = %v, want ErrInvalidStrategy", err)
	}
}

func TestCountMaxNaiveEdges(t *testing.T) {
	s := completeGraph(t, 5)
	ring := idspace.NewRing(1, []float64{0, 0.2, 0.4, 0.6, 0.8})

	_, err := Count(s.Edges(), ring, Options{Strategy: StrategyNaive, MaxNaiveEdges: 5})
	if !errors.Is(err, ErrTooManyEdges) {
		t.Errorf("err = %v, want ErrTooManyEdges", err)
	}

	// The ceiling only applies to pairwise counting.
	res, err := Count(s.Edges(), ring, Options{MaxNaiveEdges: 5})
	if err != nil {
		t.Fatalf("sweep with ceiling: %v", err)
	}
	if res.Total != 5 {
		t.Errorf("convex K5 total = %d, want 5", res.Total)
	}
}

func TestRingEdges(t *testing.T) {
	ring := idspace.NewRing(1, []float64{0.1, 0.1, 0.6, 0.3})
	edges := []graph.Edge{
		graph.NewEdge(1, 2), // [0.1, 0.6]
		graph.NewEdge(0, 2), // [0.1, 0.6] duplicate interval
		graph.NewEdge(0, 1), // degenerate
		graph.NewEdge(2, 3), // [0.3, 0.6]
	}
	got, err := RingEdges(edges, ring)
	if err != nil {
		t.Fatalf("RingEdges error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2: %v", len(got), got)
	}
	if got[0].Start != 0.1 || got[0].End != 0.6 || got[0].Edge() != graph.NewEdge(0, 2) {
		t.Errorf("got[0] = %+v", got[0])
	}
	if got[1].Start != 0.3 || got[1].End != 0.6 {
		t.Errorf("got[1] = %+v", got[1])
	}
	if !got[0].Equal(RingEdge{Start: 0.1, End: 0.6, Src: 9, Dst: 9}) {
		t.Error("Equal should ignore endpoints")
	}
}

func TestSweepBoundaryOrdering(t *testing.T) {
	// 0-1 ends exactly where 1-2 starts: shared anchor, no crossing.
	ring := idspace.NewRing(1, []float64{0, 0.3, 0.6, 0.9})
	edges := []graph.Edge{graph.NewEdge(0, 1), graph.NewEdge(1, 2), graph.NewEdge(2, 3), graph.NewEdge(0, 2), graph.NewEdge(1, 3)}
	res, err := SweepRing(edges, ring, Options{})
	if err != nil {
		t.Fatalf("SweepRing error: %v", err)
	}
	if res.Total != 1 {
		t.Errorf("total = %d, want 1 (0-2 x 1-3)", res.Total)
	}
}

// =============================================================================
// Helpers
// =============================================================================

func completeGraph(t *testing.T, n int64) *graph.Snapshot {
	t.Helper()
	s := graph.New()
	for i := int64(0); i < n; i++ {
		for j := i + 1; j < n; j++ {
			if err := s.AddEdge(i, j); err != nil {
				t.Fatalf("AddEdge: %v", err)
			}
		}
	}
	return s
}

func randomEdges(rng *rand.Rand, n int, p float64) []graph.Edge {
	var edges []graph.Edge
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if rng.Float64() < p {
				edges = append(edges, graph.NewEdge(int64(i), int64(j)))
			}
		}
	}
	return edges
}

// randomRing places n nodes on distinct positions in random order.
func randomRing(rng *rand.Rand, n int) *idspace.Ring {
	positions := make([]float64, n)
	for i, slot := range rng.Perm(n) {
		positions[i] = float64(slot) / float64(n)
	}
	return idspace.NewRing(1, positions)
}

func randomPlane(rng *rand.Rand, n int) *idspace.Coordinates {
	points := make([][]float64, n)
	for i := range points {
		points[i] = []float64{rng.Float64(), rng.Float64()}
	}
	return idspace.NewPlane(points)
}
