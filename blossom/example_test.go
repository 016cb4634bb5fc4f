package blossom_test

import (
	"fmt"

	"github.com/matchkit/blossomv/blossom"
	"github.com/matchkit/blossomv/graph"
)

// ExampleSolve computes a minimum-weight perfect matching over a small
// weighted graph.
func ExampleSolve() {
	g := graph.NewSimpleGraph()
	for _, id := range []string{"a", "b", "c", "d"} {
		g.AddVertex(id)
	}
	w := graph.NewWeightedView(g, nil)
	ab, _ := g.AddEdge("a", "b")
	w.SetWeight(ab, 1)
	bc, _ := g.AddEdge("b", "c")
	w.SetWeight(bc, 2)
	cd, _ := g.AddEdge("c", "d")
	w.SetWeight(cd, 100)
	da, _ := g.AddEdge("d", "a")
	w.SetWeight(da, 1)

	m, err := blossom.Solve(w)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(m.Weight)
	// Output: 3
}

// ExampleSolve_maximize finds the maximum-weight perfect matching by
// passing WithObjective.
func ExampleSolve_maximize() {
	g := graph.NewSimpleGraph()
	for _, id := range []string{"a", "b", "c", "d"} {
		g.AddVertex(id)
	}
	w := graph.NewWeightedView(g, nil)
	ab, _ := g.AddEdge("a", "b")
	w.SetWeight(ab, 1)
	bc, _ := g.AddEdge("b", "c")
	w.SetWeight(bc, 2)
	cd, _ := g.AddEdge("c", "d")
	w.SetWeight(cd, 100)
	da, _ := g.AddEdge("d", "a")
	w.SetWeight(da, 1)

	m, err := blossom.Solve(w, blossom.WithObjective(blossom.Maximize))
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(m.Weight)
	// Output: 101
}
