package gridview

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uinsaizu/rute/gridgraph"
)

// click returns a mouse event over board cell (x, y), accounting for the
// border and two-column cells.
func click(x, y int, button tea.MouseButton, action tea.MouseAction) tea.MouseMsg {
	return tea.MouseMsg{X: 1 + x*2, Y: 1 + y, Button: button, Action: action}
}

func press(x, y int) tea.MouseMsg {
	return click(x, y, tea.MouseButtonLeft, tea.MouseActionPress)
}

func key(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

var space = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)

	return out, cmd
}

func stateAt(t *testing.T, m Model, x, y int) gridgraph.CellState {
	t.Helper()
	s, err := m.Board().State(gridgraph.Cell{X: x, Y: y})
	require.NoError(t, err)

	return s
}

func TestNew_Defaults(t *testing.T) {
	m := New(context.Background(), Options{})
	assert.Equal(t, gridgraph.DefaultRows, m.Board().Rows())
	assert.Equal(t, 2, m.opts.CellWidth)
	assert.Equal(t, 1, m.opts.PerFrame)
	assert.Nil(t, m.Init())
}

func TestMouse_PaintAndErase(t *testing.T) {
	m := New(context.Background(), Options{Rows: 5, Delay: 0})

	m, _ = update(t, m, press(0, 0))
	m, _ = update(t, m, press(3, 2))
	m, _ = update(t, m, click(2, 0, tea.MouseButtonLeft, tea.MouseActionMotion))
	m, _ = update(t, m, click(2, 1, tea.MouseButtonLeft, tea.MouseActionRelease))

	assert.Equal(t, gridgraph.Start, stateAt(t, m, 0, 0))
	assert.Equal(t, gridgraph.End, stateAt(t, m, 3, 2))
	assert.Equal(t, gridgraph.Wall, stateAt(t, m, 2, 0), "dragging paints walls")
	assert.Equal(t, gridgraph.Empty, stateAt(t, m, 2, 1), "release does not paint")

	m, _ = update(t, m, click(0, 0, tea.MouseButtonRight, tea.MouseActionPress))
	assert.Equal(t, gridgraph.Empty, stateAt(t, m, 0, 0))
	_, ok := m.Board().Start()
	assert.False(t, ok)

	// Border and outside clicks are ignored.
	m, _ = update(t, m, tea.MouseMsg{X: 0, Y: 0, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	m, _ = update(t, m, tea.MouseMsg{X: 40, Y: 3, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	_, ok = m.Board().Start()
	assert.False(t, ok)
}

func TestSearch_Immediate(t *testing.T) {
	m := New(context.Background(), Options{Rows: 3, Delay: 0})

	m, _ = update(t, m, space)
	assert.Contains(t, m.Status(), "harus")

	m, _ = update(t, m, press(0, 0))
	m, _ = update(t, m, press(2, 0))
	m, cmd := update(t, m, space)
	assert.Nil(t, cmd)
	assert.False(t, m.Animating())
	assert.Equal(t, gridgraph.Path, stateAt(t, m, 1, 0))
	assert.Contains(t, m.Status(), "ditemukan: 2")
}

func TestSearch_Animated(t *testing.T) {
	m := New(context.Background(), Options{Rows: 3, Delay: time.Millisecond, PerFrame: 2})
	m, _ = update(t, m, press(0, 0))
	m, _ = update(t, m, press(2, 0))

	m, cmd := update(t, m, space)
	require.NotNil(t, cmd)
	assert.True(t, m.Animating())
	assert.Equal(t, "Mencari...", m.Status())

	// Input other than quitting is ignored while animating.
	m, _ = update(t, m, press(1, 1))
	assert.NotEqual(t, gridgraph.Wall, stateAt(t, m, 1, 1))
	m, _ = update(t, m, key('c'))
	_, ok := m.Board().Start()
	assert.True(t, ok)

	frames := 0
	for m.Animating() {
		m, cmd = update(t, m, frameMsg{})
		frames++
		require.Less(t, frames, 100)
	}
	assert.Nil(t, cmd)
	assert.Equal(t, 4, frames, "7 steps at 2 per frame")
	assert.Equal(t, gridgraph.Path, stateAt(t, m, 1, 0))
	assert.Equal(t, gridgraph.Closed, stateAt(t, m, 0, 1))

	// Stray frames after the animation are harmless.
	m, cmd = update(t, m, frameMsg{})
	assert.Nil(t, cmd)
}

func TestSearch_NoPath(t *testing.T) {
	m := New(context.Background(), Options{Rows: 3, Delay: 0})
	m, _ = update(t, m, press(0, 0))
	m, _ = update(t, m, press(2, 0))
	for y := 0; y < 3; y++ {
		m, _ = update(t, m, press(1, y))
	}
	m, _ = update(t, m, space)
	assert.Equal(t, "Jalur tidak ditemukan.", m.Status())
}

func TestKeys_ClearAndQuit(t *testing.T) {
	m := New(context.Background(), Options{Rows: 3, Delay: 0})
	m, _ = update(t, m, press(0, 0))
	m, _ = update(t, m, key('c'))
	assert.Equal(t, gridgraph.Empty, stateAt(t, m, 0, 0))
	_, ok := m.Board().Start()
	assert.False(t, ok)

	m, cmd := update(t, m, key('q'))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
	assert.ErrorIs(t, m.ctx.Err(), context.Canceled)

	m = New(context.Background(), Options{Rows: 3})
	_, cmd = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestView(t *testing.T) {
	m := New(context.Background(), Options{Rows: 4})
	v := m.View()
	lines := strings.Split(v, "\n")
	assert.Len(t, lines, 4+2+2, "bordered board, status and help")
	assert.Contains(t, v, "Letakkan titik awal")
	assert.Contains(t, v, "spasi: jalankan")
}
