// Package gridview is the interactive terminal front end of the grid
// shortest-path visualizer.
package gridview

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/uinsaizu/rute/gridgraph"
)

// Options tunes the visualizer.
type Options struct {
	Rows      int           // cells per side
	CellWidth int           // terminal columns per cell; rows are one line tall
	Delay     time.Duration // pause between animation frames; 0 shows the result at once
	PerFrame  int           // search steps applied per frame
}

// DefaultOptions returns a 30×30 board with two-column cells and a short
// animation delay.
func DefaultOptions() Options {
	return Options{
		Rows:      gridgraph.DefaultRows,
		CellWidth: 2,
		Delay:     15 * time.Millisecond,
		PerFrame:  1,
	}
}

// frameMsg advances the search animation.
type frameMsg struct{}

// Model is the bubbletea model of the visualizer.
type Model struct {
	ctx    context.Context
	cancel context.CancelFunc
	opts   Options

	board *gridgraph.Board
	geom  gridgraph.Geometry
	cells map[gridgraph.CellState]string

	trace     *gridgraph.Trace
	next      int // index of the next step to draw
	animating bool
	status    string
}

// New builds a model over an empty board. Invalid option values fall back to
// DefaultOptions.
func New(ctx context.Context, opts Options) Model {
	def := DefaultOptions()
	if opts.Rows < 1 {
		opts.Rows = def.Rows
	}
	if opts.CellWidth < 1 {
		opts.CellWidth = def.CellWidth
	}
	if opts.PerFrame < 1 {
		opts.PerFrame = def.PerFrame
	}
	if opts.Delay < 0 {
		opts.Delay = 0
	}
	board, _ := gridgraph.NewBoard(opts.Rows)
	ctx, cancel := context.WithCancel(ctx)

	return Model{
		ctx:    ctx,
		cancel: cancel,
		opts:   opts,
		board:  board,
		// Terminal rows are scaled by CellWidth so cells are square for CellAt.
		geom:   gridgraph.Geometry{Width: opts.Rows * opts.CellWidth, Rows: opts.Rows},
		cells:  blocks(opts.CellWidth),
		status: "Letakkan titik awal dan tujuan, lalu tekan spasi.",
	}
}

// Board exposes the underlying board.
func (m Model) Board() *gridgraph.Board { return m.board }

// Animating reports whether a search is being played back.
func (m Model) Animating() bool { return m.animating }

// Status returns the current status line.
func (m Model) Status() string { return m.status }

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg), nil
	case frameMsg:
		return m.advance()
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.cancel()
		return m, tea.Quit
	}
	if m.animating {
		return m, nil
	}

	switch msg.String() {
	case " ", "space":
		return m.startSearch()
	case "c":
		m.board.Clear()
		m.trace = nil
		m.status = "Papan dibersihkan."
	}

	return m, nil
}

// handleMouse paints with the left button and erases with the right one,
// on press and while dragging.
func (m Model) handleMouse(msg tea.MouseMsg) Model {
	if m.animating {
		return m
	}
	if msg.Action != tea.MouseActionPress && msg.Action != tea.MouseActionMotion {
		return m
	}
	// One border column and line sit before the first cell.
	c, ok := m.geom.CellAt(msg.X-1, (msg.Y-1)*m.opts.CellWidth)
	if !ok {
		return m
	}

	switch msg.Button {
	case tea.MouseButtonLeft:
		_, _ = m.board.Paint(c)
	case tea.MouseButtonRight:
		_ = m.board.Erase(c)
	}

	return m
}

func (m Model) startSearch() (tea.Model, tea.Cmd) {
	trace, err := m.board.Solve(m.ctx)
	switch {
	case errors.Is(err, gridgraph.ErrNoStart), errors.Is(err, gridgraph.ErrNoEnd):
		m.status = "Titik awal dan tujuan harus diletakkan dulu."
		return m, nil
	case err != nil:
		m.status = fmt.Sprintf("Pencarian gagal: %s", err)
		return m, nil
	}

	m.trace = trace
	m.next = 0
	m.animating = true
	m.status = "Mencari..."
	if m.opts.Delay == 0 {
		return m.advance()
	}

	return m, m.frame()
}

func (m Model) frame() tea.Cmd {
	return tea.Tick(m.opts.Delay, func(time.Time) tea.Msg {
		return frameMsg{}
	})
}

// advance draws the next PerFrame steps, or all of them when Delay is 0.
func (m Model) advance() (tea.Model, tea.Cmd) {
	if !m.animating || m.trace == nil {
		return m, nil
	}
	n := m.opts.PerFrame
	if m.opts.Delay == 0 {
		n = len(m.trace.Steps)
	}
	for ; n > 0 && m.next < len(m.trace.Steps); n-- {
		_ = m.board.Apply(m.trace.Steps[m.next])
		m.next++
	}
	if m.next < len(m.trace.Steps) {
		return m, m.frame()
	}

	m.animating = false
	if m.trace.Found {
		m.status = fmt.Sprintf("Jalur ditemukan: %d langkah.", m.trace.Length)
	} else {
		m.status = "Jalur tidak ditemukan."
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	var sb strings.Builder
	rows := m.board.Rows()
	for y := 0; y < rows; y++ {
		for x := 0; x < rows; x++ {
			s, _ := m.board.State(gridgraph.Cell{X: x, Y: y})
			sb.WriteString(m.cells[s])
		}
		if y < rows-1 {
			sb.WriteByte('\n')
		}
	}

	return boardStyle.Render(sb.String()) + "\n" +
		statusStyle.Render(m.status) + "\n" +
		helpStyle.Render("klik kiri: awal/tujuan/dinding • klik kanan: hapus • spasi: jalankan • c: bersihkan • q: keluar")
}

// Run opens the visualizer full screen and blocks until the user quits or ctx ends.
func Run(ctx context.Context, opts Options) error {
	p := tea.NewProgram(New(ctx, opts),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return ctx.Err()
	}

	return err
}
