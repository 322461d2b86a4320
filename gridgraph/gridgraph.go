package gridgraph

import (
	"fmt"

	"github.com/uinsaizu/rute/core"
)

// Board is a square grid of cells with at most one start and one end.
// It is not safe for concurrent use.
type Board struct {
	rows  int
	cells []CellState // row-major: y*rows + x

	start, end       Cell
	hasStart, hasEnd bool
}

// NewBoard creates an empty rows×rows board.
// Returns ErrBadSize if rows < 1.
func NewBoard(rows int) (*Board, error) {
	if rows < 1 {
		return nil, fmt.Errorf("%w: rows=%d", ErrBadSize, rows)
	}

	return &Board{rows: rows, cells: make([]CellState, rows*rows)}, nil
}

// Rows returns the number of cells per side.
func (b *Board) Rows() int {
	return b.rows
}

// InBounds reports whether c lies on the board.
func (b *Board) InBounds(c Cell) bool {
	return c.X >= 0 && c.X < b.rows && c.Y >= 0 && c.Y < b.rows
}

func (b *Board) index(c Cell) int {
	return c.Y*b.rows + c.X
}

func (b *Board) check(c Cell) error {
	if !b.InBounds(c) {
		return fmt.Errorf("%w: %s on %dx%d board", ErrOutOfBounds, c, b.rows, b.rows)
	}

	return nil
}

// State returns the state of c.
func (b *Board) State(c Cell) (CellState, error) {
	if err := b.check(c); err != nil {
		return Empty, err
	}

	return b.cells[b.index(c)], nil
}

// Start returns the start cell, if placed.
func (b *Board) Start() (Cell, bool) {
	return b.start, b.hasStart
}

// End returns the end cell, if placed.
func (b *Board) End() (Cell, bool) {
	return b.end, b.hasEnd
}

func (b *Board) isStart(c Cell) bool { return b.hasStart && b.start == c }
func (b *Board) isEnd(c Cell) bool   { return b.hasEnd && b.end == c }

// Paint applies a left click to c and returns the state it ends up with:
//
//  1. no start yet and c is not the end → c becomes the start;
//  2. else no end yet and c is not the start → c becomes the end;
//  3. else c becomes a wall unless it is the start or the end.
func (b *Board) Paint(c Cell) (CellState, error) {
	if err := b.check(c); err != nil {
		return Empty, err
	}
	i := b.index(c)

	switch {
	case !b.hasStart && !b.isEnd(c):
		b.start, b.hasStart = c, true
		b.cells[i] = Start
	case !b.hasEnd && !b.isStart(c):
		b.end, b.hasEnd = c, true
		b.cells[i] = End
	case !b.isStart(c) && !b.isEnd(c):
		b.cells[i] = Wall
	}

	return b.cells[i], nil
}

// Erase applies a right click to c: the cell becomes empty and, if it was the
// start or the end, that role is freed.
func (b *Board) Erase(c Cell) error {
	if err := b.check(c); err != nil {
		return err
	}
	b.cells[b.index(c)] = Empty
	if b.isStart(c) {
		b.hasStart = false
	} else if b.isEnd(c) {
		b.hasEnd = false
	}

	return nil
}

// Clear empties every cell and forgets start and end.
func (b *Board) Clear() {
	b.cells = make([]CellState, b.rows*b.rows)
	b.hasStart, b.hasEnd = false, false
}

// ResetSearch turns every open, closed or path cell back into an empty one.
// Walls, start and end are kept.
func (b *Board) ResetSearch() {
	for i, s := range b.cells {
		if s.searchMark() {
			b.cells[i] = Empty
		}
	}
}

// Apply paints one search step. The start and end cells are never recoloured.
func (b *Board) Apply(s Step) error {
	if err := b.check(s.Cell); err != nil {
		return err
	}
	if b.isStart(s.Cell) || b.isEnd(s.Cell) {
		return nil
	}
	b.cells[b.index(s.Cell)] = s.Kind.State()

	return nil
}

// Neighbors returns the non-wall orthogonal neighbours of c in the order
// +X, -X, +Y, -Y.
func (b *Board) Neighbors(c Cell) []Cell {
	out := make([]Cell, 0, len(neighborOffsets))
	for _, d := range neighborOffsets {
		n := Cell{X: c.X + d[0], Y: c.Y + d[1]}
		if !b.InBounds(n) || b.cells[b.index(n)] == Wall {
			continue
		}
		out = append(out, n)
	}

	return out
}

// ToCoreGraph converts the board into a weighted, directed *core.Graph.
// Every non-wall cell becomes a vertex "x,y" with metadata {x, y}; each
// becomes linked to its Neighbors by unit-weight edges added in neighbour
// order, so traversal order on the graph matches Neighbors.
// Complexity: O(Rows²) time and memory.
func (b *Board) ToCoreGraph() *core.Graph {
	g := core.NewGraph(core.WithDirected(true), core.WithWeighted())

	for y := 0; y < b.rows; y++ {
		for x := 0; x < b.rows; x++ {
			c := Cell{X: x, Y: y}
			if b.cells[b.index(c)] == Wall {
				continue
			}
			id := c.String()
			_ = g.SetMetadata(id, "x", x)
			_ = g.SetMetadata(id, "y", y)
		}
	}
	for y := 0; y < b.rows; y++ {
		for x := 0; x < b.rows; x++ {
			c := Cell{X: x, Y: y}
			if b.cells[b.index(c)] == Wall {
				continue
			}
			for _, n := range b.Neighbors(c) {
				_, _ = g.AddEdge(c.String(), n.String(), 1)
			}
		}
	}

	return g
}
