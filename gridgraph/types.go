package gridgraph

import (
	"fmt"
	"strconv"
	"strings"
)

// Defaults of the visualizer window: a 600 px square split into 30×30 cells.
const (
	DefaultRows  = 30
	DefaultWidth = 600
)

// CellState is what a cell currently shows.
type CellState uint8

const (
	Empty CellState = iota
	Wall
	Start
	End
	Open   // discovered by the search, not yet settled
	Closed // settled by the search
	Path   // on the final shortest path
)

var stateNames = [...]string{"empty", "wall", "start", "end", "open", "closed", "path"}

// String returns the lower-case state name.
func (s CellState) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}

	return fmt.Sprintf("CellState(%d)", s)
}

// searchMark reports whether s is left behind by a search.
func (s CellState) searchMark() bool {
	return s == Open || s == Closed || s == Path
}

// Cell addresses one square. X grows to the right, Y grows downwards.
type Cell struct {
	X, Y int
}

// String formats c as "x,y", which is also its vertex ID in ToCoreGraph.
func (c Cell) String() string {
	return strconv.Itoa(c.X) + "," + strconv.Itoa(c.Y)
}

// parseCell reverses Cell.String.
func parseCell(id string) (Cell, error) {
	xs, ys, ok := strings.Cut(id, ",")
	if !ok {
		return Cell{}, fmt.Errorf("gridgraph: malformed cell id %q", id)
	}
	x, err := strconv.Atoi(xs)
	if err != nil {
		return Cell{}, fmt.Errorf("gridgraph: malformed cell id %q: %w", id, err)
	}
	y, err := strconv.Atoi(ys)
	if err != nil {
		return Cell{}, fmt.Errorf("gridgraph: malformed cell id %q: %w", id, err)
	}

	return Cell{X: x, Y: y}, nil
}

// neighborOffsets lists the orthogonal moves in exploration order: +X, -X, +Y, -Y.
// The order decides which of several equal-length paths the search reports.
var neighborOffsets = [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

// StepKind is the mark a search Step leaves on a cell.
type StepKind uint8

const (
	StepOpen StepKind = iota
	StepClosed
	StepPath
)

// State is the CellState a step of this kind paints.
func (k StepKind) State() CellState {
	switch k {
	case StepOpen:
		return Open
	case StepClosed:
		return Closed
	default:
		return Path
	}
}

// Step is one frame of a search animation.
type Step struct {
	Kind StepKind
	Cell Cell
}

// Trace is the recorded progress of a search, in display order.
type Trace struct {
	Steps []Step
	// Found tells whether the end cell was reached.
	Found bool
	// Length is the number of moves on the shortest path (0 when not found).
	Length int
}

// Geometry maps window pixels onto board cells.
type Geometry struct {
	Width int // window side in pixels
	Rows  int // cells per side
}

// DefaultGeometry is the 600 px, 30 row window.
func DefaultGeometry() Geometry {
	return Geometry{Width: DefaultWidth, Rows: DefaultRows}
}

// CellSize is the side of one cell in pixels (integer division, as drawn).
func (g Geometry) CellSize() int {
	if g.Rows <= 0 {
		return 0
	}

	return g.Width / g.Rows
}

// Validate reports ErrBadSize when no cell would be at least one pixel wide.
func (g Geometry) Validate() error {
	if g.Rows <= 0 || g.CellSize() == 0 {
		return fmt.Errorf("%w: width=%d rows=%d", ErrBadSize, g.Width, g.Rows)
	}

	return nil
}

// CellAt converts a pixel position to the cell under it.
// ok is false for positions outside the Rows×Rows board.
func (g Geometry) CellAt(px, py int) (Cell, bool) {
	size := g.CellSize()
	if size == 0 || px < 0 || py < 0 {
		return Cell{}, false
	}
	c := Cell{X: px / size, Y: py / size}
	if c.X >= g.Rows || c.Y >= g.Rows {
		return Cell{}, false
	}

	return c, true
}
