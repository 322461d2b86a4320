// Package bfs provides breadth-first search over a core.Graph and the
// connected-component split of a road network built on top of it.
//
// What
//
//   - BFS explores vertices in non-decreasing hop count from a start vertex and
//     returns a BFSResult (Order, Depth, Parent). Weights are ignored.
//   - Directed edges are followed forward only, unless WithUndirected is given.
//   - Components splits a graph into weakly connected components, largest first.
//     With retain_all style downloads a road graph often holds a few detached
//     pieces; a start and end in different pieces can never be routed.
//
// Determinism
//
//	core.NeighborIDs is sorted and reverse links follow edge insertion order,
//	so the visit sequence is reproducible.
//
// Complexity (V = |Vertices|, E = |Edges|)
//
//   - BFS:        O(V + E) time, O(V) memory.
//   - Components: O(V log V + E) time, O(V + E) memory.
//
// Options
//
//   - WithContext(ctx):   cancellation.
//   - WithMaxDepth(d):    stop exploring beyond depth d (>0).
//   - WithUndirected():   ignore edge direction.
//   - WithOnVisit(fn):    hook during visit; returning an error aborts BFS.
//
// Errors
//
//   - ErrGraphNil, ErrStartVertexNotFound, ErrOptionViolation, ErrNeighbors.
//   - Wrapped OnVisit errors and context errors.
package bfs
