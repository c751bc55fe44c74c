package crossings_test

import (
	"fmt"

	"github.com/matzehuels/edgecross/pkg/crossings"
	"github.com/matzehuels/edgecross/pkg/graph"
	"github.com/matzehuels/edgecross/pkg/idspace"
)

func ExampleCount() {
	ring := idspace.NewRing(1, []float64{0, 0.25, 0.5, 0.75})
	edges := []graph.Edge{
		graph.NewEdge(0, 2),
		graph.NewEdge(1, 3),
		graph.NewEdge(0, 1),
	}

	res, err := crossings.Count(edges, ring, crossings.Options{})
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println("strategy:", res.Strategy)
	fmt.Println("crossings:", res.Total)
	// Output:
	// strategy: sweep
	// crossings: 1
}

func ExampleCrosses() {
	plane := idspace.NewPlane([][]float64{{0, 0}, {1, 1}, {0, 1}, {1, 0}})

	ok, _ := crossings.Crosses(graph.NewEdge(0, 1), graph.NewEdge(2, 3), plane, nil)
	fmt.Println("diagonals cross:", ok)

	ok, _ = crossings.Crosses(graph.NewEdge(0, 1), graph.NewEdge(1, 2), plane, nil)
	fmt.Println("adjacent edges cross:", ok)
	// Output:
	// diagonals cross: true
	// adjacent edges cross: false
}
