// Package dijkstra provides Dijkstra's shortest-path algorithm on weighted
// core.Graph values with non-negative float64 edge weights.
//
// Overview:
//
//   - Dijkstra computes the minimum-cost path from a single source vertex to all
//     reachable vertices in O((V + E) log V) time.
//   - It relies on a min-heap (priority queue) to always expand the next-closest vertex;
//     ties are broken by insertion order.
//   - Supports path reconstruction, early exit at a target, distance caps,
//     “impassable” edge thresholds, cancellation and observation hooks.
//
// Two callers drive it in this module:
//
//   - the road router, on a graph whose weights are street lengths in metres;
//   - the grid visualizer, on a unit-weight grid, where OnEnqueue/OnVisit feed the
//     open/closed animation.
//
// API reference:
//
//	func Dijkstra(g *core.Graph, opts ...Option) (dist map[string]float64, prev map[string]string, err error)
//	func ShortestPath(g *core.Graph, source, target string, opts ...Option) (*Result, error)
//	func PathTo(prev map[string]string, source, target string) ([]string, error)
//
// Thread safety:
//
//   - Dijkstra only reads g. Concurrent reads are safe; concurrent mutation of the
//     same graph during a search yields unspecified (but race-free) results.
package dijkstra
