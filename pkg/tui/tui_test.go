package tui

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/DrSkyle/roadmap/pkg/config"
	"github.com/DrSkyle/roadmap/pkg/editor"
	"github.com/DrSkyle/roadmap/pkg/graph"
	"github.com/DrSkyle/roadmap/pkg/snapshot"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPersister struct{ saves int }

func (p *recordingPersister) Save(context.Context, snapshot.Record) error {
	p.saves++
	return nil
}

func newSeeded(t *testing.T, opts Options) (Model, *graph.MemoryStore, *recordingPersister) {
	t.Helper()
	s := graph.NewMemoryStore()
	require.NoError(t, graph.Seed(s))
	p := &recordingPersister{}
	opts.Persister = p
	return NewModel(context.Background(), s, opts), s, p
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func cursorOn(t *testing.T, m Model, s graph.Store, name string) Model {
	t.Helper()
	n, ok := s.FindNode(name)
	require.True(t, ok, "city %s", name)
	m.cursor = cellOf(n.X, n.Y, m.opts.Canvas.ScaleX, m.opts.Canvas.ScaleY)
	return m
}

func TestTUI_AddCity(t *testing.T) {
	m, s, p := newSeeded(t, Options{})

	m = press(t, m, "enter")
	require.NotNil(t, m.prompt)
	assert.Contains(t, m.View(), "City name")

	m = press(t, m, "Yangon", "enter")
	assert.Nil(t, m.prompt)
	n, ok := s.FindNode("Yangon")
	require.True(t, ok)
	assert.Equal(t, 0.0, n.X)
	assert.Equal(t, 1, p.saves)
}

func TestTUI_AddCity_DefaultAndCancel(t *testing.T) {
	m, s, _ := newSeeded(t, Options{})

	m = press(t, m, "enter", "esc")
	assert.Nil(t, m.prompt)
	assert.Equal(t, 5, s.NodeCount())

	m = press(t, m, "enter", "enter")
	_, ok := s.FindNode("City 12")
	assert.True(t, ok)
}

func TestTUI_ConnectCities(t *testing.T) {
	m, s, _ := newSeeded(t, Options{})

	m = press(t, m, "c")
	m = cursorOn(t, m, s, "A")
	m = press(t, m, "enter")
	pending, ok := m.Editor().Pending()
	require.True(t, ok)

	m = cursorOn(t, m, s, "E")
	m = press(t, m, "enter")
	require.NotNil(t, m.prompt)
	assert.Contains(t, m.View(), "Road weight")

	m = press(t, m, "9", "enter")
	e, ok := s.EdgeBetween(pending, 5)
	require.True(t, ok)
	assert.Equal(t, 9.0, e.W)
}

func TestTUI_ConnectInvalidWeight(t *testing.T) {
	m, s, _ := newSeeded(t, Options{})

	m = press(t, m, "c")
	m = cursorOn(t, m, s, "A")
	m = press(t, m, "enter")
	m = cursorOn(t, m, s, "E")
	m = press(t, m, "enter", "abc", "enter")

	assert.Equal(t, 6, s.EdgeCount())
	assert.Contains(t, m.View(), "Weight must be a positive finite number.")
}

func TestTUI_ShortestPath(t *testing.T) {
	m, s, _ := newSeeded(t, Options{})

	m = cursorOn(t, m, s, "A")
	m = press(t, m, "1")
	m = cursorOn(t, m, s, "C")
	m = press(t, m, "2", "r")

	view := m.View()
	assert.Contains(t, view, "Shortest distance: 14")
	assert.Contains(t, view, "A → B → C (14)")

	m = press(t, m, "z")
	_, ok := m.Editor().Path()
	assert.False(t, ok)
}

func TestTUI_PathNeedsDistinctCities(t *testing.T) {
	m, _, _ := newSeeded(t, Options{})
	m = press(t, m, "r")
	assert.Contains(t, m.View(), editor.MsgDistinctCities)
}

func TestTUI_DeleteSelected(t *testing.T) {
	m, s, p := newSeeded(t, Options{})

	m = press(t, m, "x")
	assert.Nil(t, m.confirm)
	assert.Contains(t, m.View(), editor.MsgSelectFirst)

	m = press(t, m, "s")
	m = cursorOn(t, m, s, "B")
	m = press(t, m, "enter", "x")
	require.NotNil(t, m.confirm)
	assert.Contains(t, m.View(), `Delete city "B" and its 3 road(s)?`)

	m = press(t, m, "y")
	assert.Equal(t, 4, s.NodeCount())
	assert.Equal(t, 3, s.EdgeCount())
	assert.Equal(t, 1, p.saves)
}

func TestTUI_EditRoad(t *testing.T) {
	m, s, _ := newSeeded(t, Options{})

	l := m.layout()
	var target cell
	found := false
	for c, id := range l.roads {
		if _, onCity := l.nodes[c]; id == 6 && !onCity {
			target, found = c, true
			break
		}
	}
	require.True(t, found)

	m.cursor = target
	m = press(t, m, "enter")
	require.NotNil(t, m.prompt)
	assert.Contains(t, m.View(), "Edit road A—B")

	m = press(t, m, "delete", "enter")
	assert.Equal(t, 5, s.EdgeCount())
	_, ok := s.Edge(6)
	assert.False(t, ok)
}

func TestTUI_DragCity(t *testing.T) {
	m, s, p := newSeeded(t, Options{})

	m = press(t, m, "g")
	assert.False(t, m.grabbing)
	assert.Contains(t, m.View(), "Switch to select mode")

	m = press(t, m, "s")
	m = cursorOn(t, m, s, "D")
	m = press(t, m, "g")
	require.True(t, m.grabbing)
	assert.Contains(t, m.View(), "[MOVING]")

	m = press(t, m, "l", "l", "g")
	assert.False(t, m.grabbing)

	d, _ := s.FindNode("D")
	assert.Equal(t, 440.0, d.X)
	assert.Equal(t, 460.0, d.Y)
	assert.Equal(t, 1, p.saves)
}

func TestTUI_ClearAllConfirm(t *testing.T) {
	m, s, _ := newSeeded(t, Options{})

	m = press(t, m, "C", "n")
	assert.Equal(t, 5, s.NodeCount())

	m = press(t, m, "C", "y")
	assert.Equal(t, 0, s.NodeCount())
	assert.Equal(t, 1, s.NextID())
	assert.Contains(t, m.View(), "Empty map")

	m = press(t, m, "S")
	assert.Equal(t, 5, s.NodeCount())
}

func TestTUI_Export(t *testing.T) {
	dir := t.TempDir()
	m, _, _ := newSeeded(t, Options{ExportDir: dir})

	m = press(t, m, "E")
	assert.Contains(t, m.View(), "Exported to")

	data, err := os.ReadFile(filepath.Join(dir, "city-road-map.json"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "{"))
}

func TestTUI_Quit(t *testing.T) {
	m, _, _ := newSeeded(t, Options{})
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	assert.NotNil(t, cmd)
	assert.Empty(t, next.View())
}

func TestTUI_CursorClamped(t *testing.T) {
	m, _, _ := newSeeded(t, Options{})
	m = press(t, m, "h", "k")
	assert.Equal(t, cell{0, 0}, m.cursor)
}

func TestLayout_Golden(t *testing.T) {
	canvas := config.CanvasConfig{Width: 1000, Height: 700, ScaleX: 20, ScaleY: 35}
	m, _, _ := newSeeded(t, Options{Canvas: canvas})
	require.NoError(t, m.Editor().Dispatch(context.Background(), editor.RunShortestPath{Start: 1, End: 3}))

	l := m.layout()
	assert.Equal(t, 50, l.cols)
	assert.Equal(t, 20, l.rows)

	g := goldie.New(t)
	g.Assert(t, "seed_path", []byte(strings.Join(l.lines(), "\n")+"\n"))
}

func TestBresenham(t *testing.T) {
	got := bresenham(cell{0, 0}, cell{3, 1})
	assert.Equal(t, []cell{{0, 0}, {1, 0}, {2, 1}, {3, 1}}, got)
	assert.Equal(t, []cell{{2, 2}}, bresenham(cell{2, 2}, cell{2, 2}))
}
