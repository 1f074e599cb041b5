package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up, Down, Left, Right key.Binding

	AddMode, ConnectMode, SelectMode key.Binding

	Click  key.Binding
	Grab   key.Binding
	Delete key.Binding
	Start  key.Binding
	End    key.Binding
	Run    key.Binding

	ClearPath key.Binding
	Seed      key.Binding
	ClearAll  key.Binding
	Export    key.Binding
	Reset     key.Binding
	Help      key.Binding
	Quit      key.Binding

	// Modal keys
	Submit  key.Binding
	Cancel  key.Binding
	Confirm key.Binding
	Deny    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:    key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:  key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Left:  key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
		Right: key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),

		AddMode:     key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		ConnectMode: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "connect")),
		SelectMode:  key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "select")),

		Click:  key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "click")),
		Grab:   key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "grab/drop")),
		Delete: key.NewBinding(key.WithKeys("x", "delete"), key.WithHelp("x", "delete city")),
		Start:  key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "start")),
		End:    key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "end")),
		Run:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "shortest path")),

		ClearPath: key.NewBinding(key.WithKeys("z"), key.WithHelp("z", "clear path")),
		Seed:      key.NewBinding(key.WithKeys("S"), key.WithHelp("S", "sample map")),
		ClearAll:  key.NewBinding(key.WithKeys("C"), key.WithHelp("C", "clear all")),
		Export:    key.NewBinding(key.WithKeys("E"), key.WithHelp("E", "export")),
		Reset:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "reset view")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),

		Submit:  key.NewBinding(key.WithKeys("enter")),
		Cancel:  key.NewBinding(key.WithKeys("esc")),
		Confirm: key.NewBinding(key.WithKeys("y", "Y", "enter")),
		Deny:    key.NewBinding(key.WithKeys("n", "N", "esc")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.AddMode, k.ConnectMode, k.SelectMode, k.Click, k.Run, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.AddMode, k.ConnectMode, k.SelectMode, k.Click, k.Grab},
		{k.Delete, k.Start, k.End, k.Run, k.ClearPath},
		{k.Seed, k.ClearAll, k.Export, k.Reset, k.Quit},
	}
}
