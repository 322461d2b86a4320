// Package bfs provides breadth-first search over a core.Graph,
// returning hop distances, parent links, and visit order, plus a
// connected-components helper built on it.
package bfs

import (
	"context"
	"fmt"

	"github.com/uinsaizu/rute/core"
)

// queueItem pairs a vertex ID with its BFS depth.
type queueItem struct {
	id    string
	depth int
}

// walker encapsulates mutable BFS state.
type walker struct {
	graph   *core.Graph
	opts    BFSOptions
	ctx     context.Context
	reverse map[string][]string // incoming neighbours, only when Undirected
	queue   []queueItem
	visited map[string]bool
	res     *BFSResult
}

// BFS runs breadth-first search on g starting from startID. Edge weights are
// ignored; depth counts edges.
// Returns ErrGraphNil or ErrStartVertexNotFound for invalid input,
// ErrOptionViolation for bad options, ErrNeighbors for graph failures,
// the context error, or any OnVisit error.
func BFS(g *core.Graph, startID string, opts ...Option) (*BFSResult, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	if !g.HasVertex(startID) {
		return nil, fmt.Errorf("%w: %q", ErrStartVertexNotFound, startID)
	}

	n := g.VertexCount()
	w := newWalker(g, o, nil, make(map[string]bool, n), n)
	if o.Undirected {
		w.reverse = reverseAdjacency(g)
	}
	w.enqueue(startID, 0, "")

	return w.res, w.loop()
}

// newWalker returns a walker marking vertices in visited, which may be shared
// between walks. sizeHint preallocates the per-walk state; pass 0 when the
// walk is expected to touch only a small part of the graph.
func newWalker(g *core.Graph, o BFSOptions, reverse map[string][]string, visited map[string]bool, sizeHint int) *walker {
	n := sizeHint

	return &walker{
		graph:   g,
		opts:    o,
		ctx:     o.Ctx,
		reverse: reverse,
		queue:   make([]queueItem, 0, n),
		visited: visited,
		res: &BFSResult{
			Order:  make([]string, 0, n),
			Depth:  make(map[string]int, n),
			Parent: make(map[string]string, n),
		},
	}
}

// reverseAdjacency lists, for every vertex, the sources of directed edges
// pointing at it, in edge insertion order.
func reverseAdjacency(g *core.Graph) map[string][]string {
	rev := make(map[string][]string)
	for _, e := range g.Edges() {
		if e.Directed {
			rev[e.To] = append(rev[e.To], e.From)
		}
	}

	return rev
}

// enqueue marks id visited at depth d, records its parent, and queues it.
func (w *walker) enqueue(id string, d int, parent string) {
	w.visited[id] = true
	w.res.Depth[id] = d
	if parent != "" {
		w.res.Parent[id] = parent
	}
	w.queue = append(w.queue, queueItem{id: id, depth: d})
}

// loop processes the queue until empty, error, or cancellation.
func (w *walker) loop() error {
	for len(w.queue) > 0 {
		if err := w.ctx.Err(); err != nil {
			return err
		}

		item := w.queue[0]
		w.queue = w.queue[1:]

		w.res.Order = append(w.res.Order, item.id)
		if err := w.opts.OnVisit(item.id, item.depth); err != nil {
			return fmt.Errorf("bfs: OnVisit error at %q: %w", item.id, err)
		}
		if err := w.enqueueNeighbors(item); err != nil {
			return err
		}
	}

	return nil
}

// enqueueNeighbors queues each unseen neighbour within MaxDepth.
func (w *walker) enqueueNeighbors(item queueItem) error {
	next := item.depth + 1
	if w.opts.MaxDepth > 0 && next > w.opts.MaxDepth {
		return nil
	}

	neighbors, err := w.graph.NeighborIDs(item.id)
	if err != nil {
		return fmt.Errorf("%w: failed to get neighbors of %q: %v", ErrNeighbors, item.id, err)
	}
	neighbors = append(neighbors, w.reverse[item.id]...)

	for _, nbr := range neighbors {
		if !w.visited[nbr] {
			w.enqueue(nbr, next, item.id)
		}
	}

	return nil
}
