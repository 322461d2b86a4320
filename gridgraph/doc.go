// Package gridgraph models the paintable square grid of the shortest-path
// visualizer and records an animated Dijkstra search over it.
//
// What:
//
//   - Board holds Rows×Rows cells; Paint and Erase follow left/right mouse clicks
//     (first click places the start, second the end, later ones walls).
//   - Geometry converts window pixels to cells (600 px / 30 rows = 20 px cells).
//   - ToCoreGraph exposes the non-wall cells as a unit-weight *core.Graph.
//   - Solve runs dijkstra from start to end and returns a Trace of open, closed
//     and path marks in the order they should be drawn; Apply/Play paint them.
//
// Complexity:
//
//   - ToCoreGraph: O(Rows²) time and memory.
//   - Solve:       O(Rows² log Rows) time, O(Rows²) memory.
//
// Errors:
//
//   - ErrBadSize: zero rows, or cells narrower than a pixel.
//   - ErrOutOfBounds: cell outside the board.
//   - ErrNoStart, ErrNoEnd: Solve before both ends are placed.
package gridgraph
