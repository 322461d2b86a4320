package gridgraph

import "errors"

var (
	// ErrBadSize indicates a board or geometry with no rows or a width too small for them.
	ErrBadSize = errors.New("gridgraph: board must have at least one row and one pixel per cell")
	// ErrOutOfBounds indicates a cell outside the board.
	ErrOutOfBounds = errors.New("gridgraph: cell out of bounds")
	// ErrNoStart indicates a search was requested before a start cell was placed.
	ErrNoStart = errors.New("gridgraph: no start cell")
	// ErrNoEnd indicates a search was requested before an end cell was placed.
	ErrNoEnd = errors.New("gridgraph: no end cell")
)
