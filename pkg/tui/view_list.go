package tui

import (
	"fmt"
	"strings"

	"github.com/DrSkyle/roadmap/pkg/editor"
	"github.com/DrSkyle/roadmap/pkg/graph"
	"github.com/DrSkyle/roadmap/pkg/report"
)

// viewList renders the sidebar: cities, roads, the current route and
// map statistics.
func (m Model) viewList(v editor.View) string {
	var s strings.Builder
	names := make(map[graph.NodeID]string, len(v.Nodes))
	for _, n := range v.Nodes {
		names[n.ID] = n.Name
	}

	s.WriteString(sectionStyle.Render(fmt.Sprintf("CITIES (%d)", len(v.Nodes))) + "\n")
	if len(v.Nodes) == 0 {
		s.WriteString(subtle.Render("  Empty map. Press S for a sample.") + "\n")
	}
	focus := 0
	for i, n := range v.Nodes {
		if n.ID == v.Selected {
			focus = i
		}
	}
	start, end := m.calculateWindow(len(v.Nodes), focus)
	for _, n := range v.Nodes[start:end] {
		line := fmt.Sprintf("%s %-12s (%s, %s)%s", marker(n.ID == v.Selected), truncate(n.Name, 12),
			graph.FormatWeight(n.X), graph.FormatWeight(n.Y), m.tags(n.ID))
		if n.ID == v.Selected {
			line = listSelectedStyle.Render(line)
		}
		s.WriteString(line + "\n")
	}
	if hidden := len(v.Nodes) - (end - start); hidden > 0 {
		s.WriteString(subtle.Render(fmt.Sprintf("  … %d more", hidden)) + "\n")
	}

	s.WriteString("\n" + sectionStyle.Render(fmt.Sprintf("ROADS (%d)", len(v.Edges))) + "\n")
	start, end = m.calculateWindow(len(v.Edges), 0)
	for _, e := range v.Edges[start:end] {
		line := fmt.Sprintf("  %s—%s %s", truncate(names[e.A], 8), truncate(names[e.B], 8), graph.FormatWeight(e.W))
		if v.OnPath(e.ID) {
			line = pathStyle.Render(line + " *")
		}
		s.WriteString(line + "\n")
	}
	if hidden := len(v.Edges) - (end - start); hidden > 0 {
		s.WriteString(subtle.Render(fmt.Sprintf("  … %d more", hidden)) + "\n")
	}

	s.WriteString("\n" + sectionStyle.Render("PATH") + "\n")
	switch {
	case !v.HasPath:
		s.WriteString(subtle.Render("  none (1/2 pick, r runs)") + "\n")
	case !v.Path.Found():
		s.WriteString(warning.Render("  no path") + "\n")
	default:
		route := report.Describe(m.editor.Store(), m.pathStart, v.Path)
		s.WriteString(pathStyle.Render("  "+route.String()) + "\n")
	}

	st := graph.Analyze(m.editor.Store())
	s.WriteString("\n" + sectionStyle.Render("STATS") + "\n")
	s.WriteString(fmt.Sprintf("  %d cities · %d roads · %d component(s)", st.Cities, st.Roads, st.Components))
	if len(st.Isolated) > 0 {
		s.WriteString(warning.Render(fmt.Sprintf("\n  %d isolated", len(st.Isolated))))
	}
	return s.String()
}

func (m Model) tags(id graph.NodeID) string {
	var t string
	if id == m.start {
		t += " [start]"
	}
	if id == m.end {
		t += " [end]"
	}
	return t
}

// calculateWindow picks the slice of a list to show around focus.
func (m Model) calculateWindow(total, focus int) (int, int) {
	windowSize := m.rows / 3
	if windowSize < 5 {
		windowSize = 5
	}

	start := focus - (windowSize / 2)
	if start < 0 {
		start = 0
	}

	end := start + windowSize
	if end > total {
		end = total
		start = end - windowSize
		if start < 0 {
			start = 0
		}
	}
	return start, end
}

func marker(on bool) string {
	if on {
		return ">"
	}
	return " "
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
