// Package core provides a thread-safe in-memory Graph used by both the
// road router and the grid visualizer.
//
// The Graph G = (V,E) supports:
//
//   - Directed vs. undirected edges (WithDirected), with per-edge overrides
//     (WithEdgeDirected) so one-way and two-way streets share a graph
//   - Weighted vs. unweighted edges (WithWeighted); weights are float64
//   - Parallel edges (WithMultiEdges) and self-loops (WithLoops)
//   - Deterministic neighbour order: Neighbors returns edges in insertion order
//   - Separate sync.RWMutex for vertices (muVert) and edges+adjacency (muEdgeAdj)
//
// Core Methods:
//
//	AddVertex(id string) error                                     // O(1)
//	HasVertex(id string) bool                                      // O(1)
//	Vertex(id string) (*Vertex, error)                             // O(1)
//	SetMetadata(id, key string, value interface{}) error           // O(1)
//	AddEdge(from, to string, w float64, opts ...EdgeOption) (string, error) // O(1)†
//	HasEdge(from, to string) bool                                  // O(1)
//	Neighbors(id string) ([]*Edge, error)                          // O(d)
//	NeighborIDs(id string) ([]string, error)                       // O(d log d)
//	Vertices() []string                                            // O(V log V)
//	Edges() []*Edge                                                // O(E log E)
//	VertexCount(), EdgeCount() int                                 // O(1)
//	Stats() *GraphStats                                            // O(V+E)
//
// † amortized: ID generation + map/slice insertion.
package core
