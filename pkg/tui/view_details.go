package tui

import (
	"fmt"
	"strings"

	"github.com/DrSkyle/roadmap/pkg/editor"
	"github.com/DrSkyle/roadmap/pkg/graph"
)

// viewDetails describes the selected city and its roads.
func (m Model) viewDetails(v editor.View) string {
	if v.Selected == 0 {
		return ""
	}
	store := m.editor.Store()
	n, ok := store.Node(v.Selected)
	if !ok {
		return ""
	}

	var s strings.Builder
	s.WriteString("\n" + highlight.Render(fmt.Sprintf("%s  #%d", n.Name, n.ID)) + "\n")
	s.WriteString(fmt.Sprintf("  position  %s, %s\n", graph.FormatWeight(n.X), graph.FormatWeight(n.Y)))

	roads := store.Neighbors(n.ID)
	if len(roads) == 0 {
		s.WriteString(warning.Render("  no roads"))
		return s.String()
	}
	for _, r := range roads {
		other, _ := store.Node(r.Node)
		s.WriteString(fmt.Sprintf("  → %-10s %s\n", truncate(other.Name, 10), graph.FormatWeight(r.Weight)))
	}
	if v.Pending == n.ID {
		s.WriteString(special.Render("  pick a second city to connect"))
	}
	return strings.TrimRight(s.String(), "\n")
}
