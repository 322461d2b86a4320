package bfs

import (
	"context"
	"sort"

	"github.com/uinsaizu/rute/core"
)

// Components groups the vertices of g into weakly connected components
// (edge direction ignored). Components are ordered by size, largest first,
// ties by their smallest vertex ID; vertices inside a component are sorted.
// Complexity: O(V log V + E).
func Components(ctx context.Context, g *core.Graph) ([][]string, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	o := DefaultOptions()
	o.Ctx = ctx
	o.Undirected = true

	rev := reverseAdjacency(g)
	seen := make(map[string]bool, g.VertexCount())
	var comps [][]string

	for _, v := range g.Vertices() {
		if seen[v] {
			continue
		}
		w := newWalker(g, o, rev, seen, 0)
		w.enqueue(v, 0, "")
		if err := w.loop(); err != nil {
			return nil, err
		}
		comp := w.res.Order
		sort.Strings(comp)
		comps = append(comps, comp)
	}

	sort.SliceStable(comps, func(i, j int) bool {
		return len(comps[i]) > len(comps[j])
	})

	return comps, nil
}

// ComponentIndex maps every vertex ID to the index of its component.
func ComponentIndex(comps [][]string) map[string]int {
	idx := make(map[string]int)
	for i, comp := range comps {
		for _, id := range comp {
			idx[id] = i
		}
	}

	return idx
}
