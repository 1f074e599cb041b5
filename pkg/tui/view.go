package tui

import (
	"fmt"
	"strings"

	"github.com/DrSkyle/roadmap/pkg/editor"
	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	v := m.editor.View()
	l := buildLayout(v, m.cols, m.rows, m.opts.Canvas.ScaleX, m.opts.Canvas.ScaleY)

	header := titleStyle.Render("ROADMAP") + subtle.Render(fmt.Sprintf("mode: %s  cursor: %d,%d", v.Mode, m.cursor.x, m.cursor.y))
	if m.grabbing {
		header += "  " + warning.Render("[MOVING]")
	}

	side := m.viewList(v)
	if details := m.viewDetails(v); details != "" {
		side = lipgloss.JoinVertical(lipgloss.Left, side, details)
	}
	body := lipgloss.JoinHorizontal(lipgloss.Top, m.viewTopology(v, l), sidebarStyle.Render(side))

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		body,
		m.viewFooter(),
		m.help.View(m.keys),
	)
}

func (m Model) viewFooter() string {
	switch {
	case m.prompt != nil:
		return modalStyle.Render(m.prompt.prompt.Message + "\n" + m.input.View())
	case m.confirm != nil:
		return modalStyle.Render(danger.Render(m.confirm.question) + subtle.Render("  (y/n)"))
	}
	return m.viewStatus()
}

func (m Model) viewStatus() string {
	n := m.notices.last
	if n.Message == "" {
		return subtle.Render(" Ready.")
	}
	msg := " " + strings.ReplaceAll(n.Message, "\n", " ")
	switch n.Kind {
	case editor.NoticeError:
		return danger.Render(msg)
	case editor.NoticeWarning:
		return warning.Render(msg)
	}
	return special.Render(msg)
}
