// Package dijkstra implements Dijkstra's shortest-path algorithm on weighted graphs.
//
// Complexity:
//
//   - Time:  O((V + E) log V)
//   - Space: O(V + E), O(E) worst-case heap entries under lazy decrease-key.
//
// Notes on implementation choices:
//
//   - We perform an upfront scan of all edges (O(E)) to detect negative weights and fail fast.
//   - We treat any edge with weight ≥ InfEdgeThreshold as an impassable “wall”.
//   - We stop exploring once the minimum distance in the heap exceeds MaxDistance,
//     or once Target has been settled.
//   - Heap entries carry an insertion counter: equal distances pop first-in first-out,
//     which makes unit-weight searches expand like breadth-first search.
package dijkstra

import (
	"container/heap"
	"context"
	"fmt"
	"math"

	"github.com/uinsaizu/rute/core"
)

// Dijkstra computes shortest distances from the source vertex (Options.Source)
// to all other vertices in the weighted graph g.
//
// Returns:
//
//   - dist: map from vertex ID to minimum distance (+Inf if unreachable or not settled
//     before the search stopped; tentative distances are never reported).
//   - prev: predecessor map if ReturnPath=true (nil otherwise).
//     prev[v] == u means the shortest path to v goes through u; "" for source/unreachable.
//   - err:  error if inputs are invalid, a negative weight is detected, or the
//     context is cancelled.
//
// Preconditions and validation (in order):
//  1. Source string must be non-empty (ErrEmptySource).
//  2. g must be non-nil (ErrNilGraph).
//  3. g must be weighted (ErrUnweightedGraph).
//  4. g must contain Source (ErrVertexNotFound) and Target if set (ErrTargetNotFound).
//  5. MaxDistance ≥ 0 (ErrBadMaxDistance), InfEdgeThreshold > 0 (ErrBadInfThreshold).
//  6. No edge in g can have negative weight (ErrNegativeWeight).
func Dijkstra(g *core.Graph, opts ...Option) (map[string]float64, map[string]string, error) {
	// 1) Build Options
	cfg := DefaultOptions("")
	var opt Option
	for _, opt = range opts {
		opt(&cfg)
	}
	if cfg.Context == nil {
		cfg.Context = context.Background()
	}

	// 2) Validate inputs
	if err := validate(g, cfg); err != nil {
		return nil, nil, err
	}

	// 3) Pre-scan all edges to detect negative weights.
	var e *core.Edge
	for _, e = range g.Edges() {
		if e.Weight < 0 {
			return nil, nil, fmt.Errorf("%w: edge %s→%s weight=%g", ErrNegativeWeight, e.From, e.To, e.Weight)
		}
	}

	// 4) Prepare data structures for the algorithm.
	V := g.VertexCount()
	r := &runner{
		g:       g,
		options: cfg,
		dist:    make(map[string]float64, V),
		prev:    make(map[string]string, V),
		visited: make(map[string]bool, V),
		pq:      make(nodePQ, 0, V),
	}

	// 5) Initialize algorithm state and run main loop.
	r.init()
	if err := r.process(); err != nil {
		return nil, nil, err
	}
	r.dropUnsettled()

	if !cfg.ReturnPath {
		return r.dist, nil, nil
	}

	return r.dist, r.prev, nil
}

// validate applies the documented precondition order.
func validate(g *core.Graph, cfg Options) error {
	if cfg.Source == "" {
		return ErrEmptySource
	}
	if g == nil {
		return ErrNilGraph
	}
	if !g.Weighted() {
		return ErrUnweightedGraph
	}
	if !g.HasVertex(cfg.Source) {
		return ErrVertexNotFound
	}
	if cfg.Target != "" && !g.HasVertex(cfg.Target) {
		return ErrTargetNotFound
	}
	if math.IsNaN(cfg.MaxDistance) || cfg.MaxDistance < 0 {
		return ErrBadMaxDistance
	}
	if math.IsNaN(cfg.InfEdgeThreshold) || cfg.InfEdgeThreshold <= 0 {
		return ErrBadInfThreshold
	}

	return nil
}

// ShortestPath runs Dijkstra from source and stops at target, returning the
// reconstructed path and its total weight. Extra options (hooks, context,
// thresholds) are applied after source/target are set.
func ShortestPath(g *core.Graph, source, target string, opts ...Option) (*Result, error) {
	all := make([]Option, 0, len(opts)+3)
	all = append(all, Source(source), Target(target), WithReturnPath())
	all = append(all, opts...)

	dist, prev, err := Dijkstra(g, all...)
	if err != nil {
		return nil, err
	}
	path, err := PathTo(prev, source, target)
	if err != nil {
		return nil, err
	}

	return &Result{Path: path, Distance: dist[target]}, nil
}

// runner holds the mutable state for a single Dijkstra execution.
type runner struct {
	g       *core.Graph        // The input graph; read-only within Dijkstra.
	options Options            // Configuration options (Source, thresholds, etc.).
	dist    map[string]float64 // Maps vertex ID → current best distance from Source.
	prev    map[string]string  // Maps vertex ID → predecessor on the shortest path.
	visited map[string]bool    // Tracks if a vertex's distance is finalized.
	pq      nodePQ             // Min-heap of *nodeItem for lazy priority queue.
	seq     uint64             // Insertion counter for FIFO tie-breaking.
}

// init sets up initial distances and pushes Source=0 into the heap.
func (r *runner) init() {
	for _, v := range r.g.Vertices() {
		r.dist[v] = math.Inf(1)
		r.prev[v] = ""
	}
	r.dist[r.options.Source] = 0

	heap.Init(&r.pq)
	r.push(r.options.Source, 0)
}

// push adds a heap entry stamped with the next insertion counter.
func (r *runner) push(id string, d float64) {
	r.seq++
	heap.Push(&r.pq, &nodeItem{id: id, dist: d, seq: r.seq})
}

// process is the core loop of Dijkstra's algorithm.
//
// Loop termination conditions:
//
//   - The heap becomes empty (all reachable vertices processed).
//   - The minimum distance in the heap exceeds MaxDistance.
//   - Target has been settled.
//   - The context is done.
func (r *runner) process() error {
	cfg := r.options
	ctx := cfg.Context
	var u string
	var d float64
	for r.pq.Len() > 0 {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("dijkstra: search aborted: %w", err)
		}

		// 1) Pop the smallest-distance item from the heap.
		item := heap.Pop(&r.pq).(*nodeItem)
		u = item.id
		d = item.dist

		// 2) Skip stale heap entries.
		if r.visited[u] {
			continue
		}

		// 3) Nothing closer than MaxDistance remains.
		if d > cfg.MaxDistance {
			break
		}

		// 4) u is final.
		r.visited[u] = true
		if cfg.OnVisit != nil {
			cfg.OnVisit(u, d)
		}
		if cfg.Target != "" && u == cfg.Target {
			break
		}

		// 5) Relax all outgoing edges from u.
		if err := r.relax(u); err != nil {
			return err
		}
	}

	return nil
}

// dropUnsettled resets vertices still holding a tentative distance when the
// search stopped early, so dist and prev only report final values.
func (r *runner) dropUnsettled() {
	for v := range r.dist {
		if !r.visited[v] {
			r.dist[v] = math.Inf(1)
			r.prev[v] = ""
		}
	}
}

// relax examines each edge traversable from u and attempts to improve distances to its neighbors.
// Edges with weight ≥ InfEdgeThreshold are ignored.
func (r *runner) relax(u string) error {
	neighbors, err := r.g.Neighbors(u)
	if err != nil {
		return fmt.Errorf("dijkstra: failed to get neighbors of %q: %w", u, err)
	}

	var e *core.Edge
	var v string
	var w, newDist float64
	for _, e = range neighbors {
		v = e.Other(u)
		w = e.Weight

		if w >= r.options.InfEdgeThreshold {
			continue
		}
		if r.visited[v] {
			continue
		}

		newDist = r.dist[u] + w
		if newDist > r.options.MaxDistance {
			continue
		}
		// Strictly better only; equal distances keep the first predecessor found.
		if newDist >= r.dist[v] {
			continue
		}

		r.dist[v] = newDist
		r.prev[v] = u
		if r.options.OnEnqueue != nil {
			r.options.OnEnqueue(v, newDist)
		}
		r.push(v, newDist)
	}

	return nil
}

// nodeItem represents a vertex and its tentative distance from the source.
type nodeItem struct {
	id   string  // vertex ID
	dist float64 // distance from source
	seq  uint64  // insertion counter
}

// nodePQ is a min-heap of *nodeItem ordered by (dist, seq).
type nodePQ []*nodeItem

// Len returns the number of items in the heap.
func (pq nodePQ) Len() int { return len(pq) }

// Less orders by distance, then by insertion order.
func (pq nodePQ) Less(i, j int) bool {
	if pq[i].dist != pq[j].dist {
		return pq[i].dist < pq[j].dist
	}

	return pq[i].seq < pq[j].seq
}

// Swap swaps two elements in the heap.
func (pq nodePQ) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

// Push adds a new element x onto the heap.
func (pq *nodePQ) Push(x interface{}) { *pq = append(*pq, x.(*nodeItem)) }

// Pop removes and returns the last element; heap.Pop moves the minimum there first.
func (pq *nodePQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*pq = old[:n-1]

	return item
}
