// Package dijkstra_test provides examples demonstrating how to use the Dijkstra algorithm.
package dijkstra_test

import (
	"fmt"

	"github.com/uinsaizu/rute/core"
	"github.com/uinsaizu/rute/dijkstra"
)

// ExampleDijkstra demonstrates computing shortest paths on a simple triangle graph.
func ExampleDijkstra() {
	// 1) Create a new weighted graph.
	g := core.NewGraph(core.WithWeighted())
	// 2) Add undirected edges A-B(1), B-C(2), A-C(5).
	_, _ = g.AddEdge("A", "B", 1)
	_, _ = g.AddEdge("B", "C", 2)
	_, _ = g.AddEdge("A", "C", 5)

	// 3) Compute Dijkstra from source "A".
	dist, _, err := dijkstra.Dijkstra(g, dijkstra.Source("A"))
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Printf("dist[A]=%g, dist[B]=%g, dist[C]=%g\n", dist["A"], dist["B"], dist["C"])
	// Output: dist[A]=0, dist[B]=1, dist[C]=3
}

// ExampleShortestPath finds a route across a small street network where
// one street is one-way.
func ExampleShortestPath() {
	g := core.NewGraph(core.WithWeighted(), core.WithMultiEdges())
	_, _ = g.AddEdge("Kampus1", "Pasar", 2400)
	_, _ = g.AddEdge("Pasar", "Alun", 1800, core.WithEdgeDirected(true))
	_, _ = g.AddEdge("Kampus1", "Alun", 5000)
	_, _ = g.AddEdge("Alun", "Kampus2", 3100)

	res, err := dijkstra.ShortestPath(g, "Kampus1", "Kampus2")
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(res.Path)
	fmt.Printf("%.2f km\n", res.Distance/1000)
	// Output:
	// [Kampus1 Pasar Alun Kampus2]
	// 7.30 km
}
