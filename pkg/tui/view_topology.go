package tui

import (
	"math"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/DrSkyle/roadmap/pkg/editor"
	"github.com/DrSkyle/roadmap/pkg/graph"
	"github.com/charmbracelet/lipgloss"
)

const (
	glyphEmpty  = ' '
	glyphRoad   = '·'
	glyphPath   = '•'
	glyphCursor = '+'
)

type cell struct{ x, y int }

// layout is the map rasterised onto terminal cells.
type layout struct {
	cols, rows int
	grid       [][]rune
	nodes      map[cell]graph.NodeID
	roads      map[cell]graph.EdgeID
	path       map[cell]bool
}

// cellOf maps graph coordinates onto the grid.
func cellOf(x, y float64, scaleX, scaleY int) cell {
	return cell{
		x: int(math.Floor(x / float64(scaleX))),
		y: int(math.Floor(y / float64(scaleY))),
	}
}

func buildLayout(v editor.View, cols, rows, scaleX, scaleY int) layout {
	l := layout{
		cols:  cols,
		rows:  rows,
		grid:  make([][]rune, rows),
		nodes: make(map[cell]graph.NodeID),
		roads: make(map[cell]graph.EdgeID),
		path:  make(map[cell]bool),
	}
	for y := range l.grid {
		l.grid[y] = []rune(strings.Repeat(string(glyphEmpty), cols))
	}

	at := make(map[graph.NodeID]cell, len(v.Nodes))
	for _, n := range v.Nodes {
		at[n.ID] = cellOf(n.X, n.Y, scaleX, scaleY)
	}

	for _, e := range v.Edges {
		a, okA := at[e.A]
		b, okB := at[e.B]
		if !okA || !okB {
			continue
		}
		onPath := v.OnPath(e.ID)
		for _, c := range bresenham(a, b) {
			if c == a || c == b || !l.inside(c) {
				continue
			}
			l.roads[c] = e.ID
			if onPath {
				l.path[c] = true
				l.grid[c.y][c.x] = glyphPath
			} else if !l.path[c] {
				l.grid[c.y][c.x] = glyphRoad
			}
		}
	}

	for _, n := range v.Nodes {
		c := at[n.ID]
		if !l.inside(c) {
			continue
		}
		l.nodes[c] = n.ID
		l.grid[c.y][c.x] = initial(n.Name)
	}
	return l
}

func (l layout) inside(c cell) bool {
	return c.x >= 0 && c.y >= 0 && c.x < l.cols && c.y < l.rows
}

func (l layout) nodeAt(c cell) (graph.NodeID, bool) {
	id, ok := l.nodes[c]
	return id, ok
}

func (l layout) roadAt(c cell) (graph.EdgeID, bool) {
	id, ok := l.roads[c]
	return id, ok
}

// lines returns the unstyled grid.
func (l layout) lines() []string {
	out := make([]string, len(l.grid))
	for i, row := range l.grid {
		out[i] = string(row)
	}
	return out
}

func initial(name string) rune {
	r, _ := utf8.DecodeRuneInString(strings.TrimSpace(name))
	if r == utf8.RuneError {
		return '?'
	}
	return unicode.ToUpper(r)
}

// bresenham returns every cell on the segment a-b, endpoints included.
func bresenham(a, b cell) []cell {
	dx := abs(b.x - a.x)
	dy := -abs(b.y - a.y)
	sx, sy := 1, 1
	if a.x > b.x {
		sx = -1
	}
	if a.y > b.y {
		sy = -1
	}

	var out []cell
	x, y := a.x, a.y
	errAcc := dx + dy
	for {
		out = append(out, cell{x, y})
		if x == b.x && y == b.y {
			return out
		}
		e2 := 2 * errAcc
		if e2 >= dy {
			errAcc += dy
			x += sx
		}
		if e2 <= dx {
			errAcc += dx
			y += sy
		}
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// viewTopology renders the styled canvas with the cursor on top.
func (m Model) viewTopology(v editor.View, l layout) string {
	var b strings.Builder
	for y, row := range l.grid {
		for x, r := range row {
			c := cell{x, y}
			style, styled := m.cellStyle(v, l, c)
			if c == m.cursor {
				if r == glyphEmpty {
					r = glyphCursor
				}
				style, styled = cursorStyle, true
			}
			if !styled {
				b.WriteRune(r)
				continue
			}
			b.WriteString(style.Render(string(r)))
		}
		if y < len(l.grid)-1 {
			b.WriteByte('\n')
		}
	}
	return canvasStyle.Render(b.String())
}

func (m Model) cellStyle(v editor.View, l layout, c cell) (lipgloss.Style, bool) {
	if id, ok := l.nodeAt(c); ok {
		switch id {
		case v.Pending:
			return pendingStyle, true
		case v.Selected:
			return selectedStyle, true
		}
		return cityStyle, true
	}
	if l.path[c] {
		return pathStyle, true
	}
	if _, ok := l.roadAt(c); ok {
		return roadStyle, true
	}
	return lipgloss.Style{}, false
}
