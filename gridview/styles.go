package gridview

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/uinsaizu/rute/gridgraph"
)

// Cell colours, as hex RGB.
var (
	colorOpen   = lipgloss.Color("#00FF00")
	colorClosed = lipgloss.Color("#FF0000")
	colorEmpty  = lipgloss.Color("#FFFFFF")
	colorWall   = lipgloss.Color("#000000")
	colorPath   = lipgloss.Color("#800080")
	colorStart  = lipgloss.Color("#FFA500")
	colorEnd    = lipgloss.Color("#40E0D0")
	colorGrid   = lipgloss.Color("#808080")
)

var stateColors = map[gridgraph.CellState]lipgloss.Color{
	gridgraph.Empty:  colorEmpty,
	gridgraph.Wall:   colorWall,
	gridgraph.Start:  colorStart,
	gridgraph.End:    colorEnd,
	gridgraph.Open:   colorOpen,
	gridgraph.Closed: colorClosed,
	gridgraph.Path:   colorPath,
}

var (
	boardStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(colorGrid)

	helpStyle = lipgloss.NewStyle().
			Foreground(colorGrid)

	statusStyle = lipgloss.NewStyle().
			Bold(true)
)

// blocks pre-renders one cell of every state, width columns wide.
func blocks(width int) map[gridgraph.CellState]string {
	pad := strings.Repeat(" ", width)
	out := make(map[gridgraph.CellState]string, len(stateColors))
	for s, c := range stateColors {
		out[s] = lipgloss.NewStyle().Background(c).Render(pad)
	}

	return out
}
