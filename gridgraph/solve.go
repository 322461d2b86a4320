package gridgraph

import (
	"context"
	"math"

	"github.com/uinsaizu/rute/dijkstra"
)

// Solve clears the marks of any previous search, then runs Dijkstra from the
// start cell to the end cell and records what an animated search shows:
//
//  1. every neighbour whose distance improves → StepOpen;
//  2. every settled cell, after its neighbours → StepClosed;
//  3. if the end is reached, the cells from the end's predecessor back to the
//     start's successor → StepPath.
//
// Start and end cells never appear in the trace. The board itself is only
// modified by the reset; apply the returned steps with Apply.
//
// Returns ErrNoStart, ErrNoEnd, or the context error wrapped by dijkstra.
// Complexity: O(Rows² log Rows) time, O(Rows²) memory.
func (b *Board) Solve(ctx context.Context) (*Trace, error) {
	// 1) Both ends must be placed.
	if !b.hasStart {
		return nil, ErrNoStart
	}
	if !b.hasEnd {
		return nil, ErrNoEnd
	}
	b.ResetSearch()

	src, dst := b.start.String(), b.end.String()
	trace := &Trace{}
	record := func(kind StepKind, id string) {
		if id == src || id == dst {
			return
		}
		c, err := parseCell(id)
		if err != nil {
			return
		}
		trace.Steps = append(trace.Steps, Step{Kind: kind, Cell: c})
	}

	// 2) A settled cell turns closed only once its neighbours have been opened,
	//    so hold it back until the next cell settles or the search stops.
	pending := ""
	flush := func() {
		if pending != "" {
			record(StepClosed, pending)
			pending = ""
		}
	}

	dist, prev, err := dijkstra.Dijkstra(b.ToCoreGraph(),
		dijkstra.Source(src),
		dijkstra.Target(dst),
		dijkstra.WithReturnPath(),
		dijkstra.WithContext(ctx),
		dijkstra.WithOnEnqueue(func(id string, _ float64) {
			record(StepOpen, id)
		}),
		dijkstra.WithOnVisit(func(id string, _ float64) {
			flush()
			if id != dst {
				pending = id
			}
		}),
	)
	if err != nil {
		return nil, err
	}
	flush()

	// 3) Walk predecessors back from the end.
	if d, ok := dist[dst]; !ok || math.IsInf(d, 1) {
		return trace, nil
	}
	trace.Found = true
	trace.Length = int(dist[dst])
	for cur := prev[dst]; cur != "" && cur != src; cur = prev[cur] {
		record(StepPath, cur)
	}

	return trace, nil
}

// Play applies every step of t to the board at once.
func (b *Board) Play(t *Trace) error {
	for _, s := range t.Steps {
		if err := b.Apply(s); err != nil {
			return err
		}
	}

	return nil
}
