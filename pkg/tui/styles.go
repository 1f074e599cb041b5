package tui

import "github.com/charmbracelet/lipgloss"

var (
	// Future-Glass palette
	colorNeonGreen  = lipgloss.Color("#00FF99")
	colorNeonPurple = lipgloss.Color("#874BFD")
	colorTextMain   = lipgloss.Color("#E2E8F0")
	colorTextSub    = lipgloss.Color("#64748B")
	colorDanger     = lipgloss.Color("#FF0055")
	colorWarning    = lipgloss.Color("#F59E0B")

	subtle    = lipgloss.NewStyle().Foreground(colorTextSub)
	highlight = lipgloss.NewStyle().Foreground(colorNeonPurple).Bold(true)
	special   = lipgloss.NewStyle().Foreground(colorNeonGreen).Bold(true)
	danger    = lipgloss.NewStyle().Foreground(colorDanger).Bold(true)
	warning   = lipgloss.NewStyle().Foreground(colorWarning)

	titleStyle = lipgloss.NewStyle().
			Foreground(colorNeonPurple).
			Bold(true).
			Padding(0, 1)

	canvasStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorTextSub)

	sidebarStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorNeonPurple).
			Padding(0, 1).
			Foreground(colorTextMain)

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(colorNeonGreen).
			Padding(0, 2)

	sectionStyle = lipgloss.NewStyle().
			Foreground(colorTextSub).
			Bold(true)

	// Canvas cells
	roadStyle     = subtle
	pathStyle     = special
	cityStyle     = lipgloss.NewStyle().Foreground(colorTextMain).Bold(true)
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#331832")).Background(colorNeonGreen).Bold(true)
	pendingStyle  = lipgloss.NewStyle().Foreground(colorTextMain).Background(colorNeonPurple).Bold(true)
	cursorStyle   = lipgloss.NewStyle().Reverse(true)

	listSelectedStyle = lipgloss.NewStyle().
				Foreground(colorTextMain).
				Background(lipgloss.Color("#331832")).
				Bold(true)
)
