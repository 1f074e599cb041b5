// Package tui is the interactive terminal editor for road maps.
package tui

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/DrSkyle/roadmap/pkg/config"
	"github.com/DrSkyle/roadmap/pkg/editor"
	"github.com/DrSkyle/roadmap/pkg/graph"
	"github.com/DrSkyle/roadmap/pkg/report"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Options configures the editor session.
type Options struct {
	Canvas       config.CanvasConfig
	ExportDir    string
	ExportFormat report.Format
	Persister    editor.Persister
	Logger       *slog.Logger
	// EditorOptions are appended after the TUI's own collaborators.
	EditorOptions []editor.Option
}

type Model struct {
	ctx    context.Context
	editor *editor.Editor
	opts   Options
	logger *slog.Logger

	keys  keyMap
	help  help.Model
	input textinput.Model

	replay  *replayPrompter
	notices *noticeBuffer

	cols, rows int
	cursor     cell
	grabbing   bool

	prompt  *pendingPrompt
	confirm *pendingConfirm

	// start and end feed RunShortestPath; pathStart is the start of the
	// last run, used to list the route.
	start, end graph.NodeID
	pathStart  graph.NodeID

	width, height int
	quitting      bool
}

func NewModel(ctx context.Context, store graph.Store, opts Options) Model {
	def := config.Default()
	if opts.Canvas.ScaleX < 1 || opts.Canvas.ScaleY < 1 || opts.Canvas.Width <= 0 || opts.Canvas.Height <= 0 {
		opts.Canvas = def.Canvas
	}
	if opts.ExportDir == "" {
		opts.ExportDir = def.Export.Dir
	}
	if opts.ExportFormat == "" {
		opts.ExportFormat = report.FormatJSON
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	replay := &replayPrompter{}
	notices := &noticeBuffer{}
	edOpts := []editor.Option{
		editor.WithPrompter(replay),
		editor.WithNotifier(notices),
		editor.WithLogger(logger),
	}
	if opts.Persister != nil {
		edOpts = append(edOpts, editor.WithPersister(opts.Persister))
	}
	edOpts = append(edOpts, opts.EditorOptions...)

	ti := textinput.New()
	ti.CharLimit = 64
	ti.Prompt = "> "

	return Model{
		ctx:     ctx,
		editor:  editor.New(store, edOpts...),
		opts:    opts,
		logger:  logger,
		keys:    defaultKeyMap(),
		help:    help.New(),
		input:   ti,
		replay:  replay,
		notices: notices,
		cols:    max(1, int(opts.Canvas.Width)/opts.Canvas.ScaleX),
		rows:    max(1, int(opts.Canvas.Height)/opts.Canvas.ScaleY),
	}
}

// Editor exposes the state machine behind the UI.
func (m Model) Editor() *editor.Editor { return m.editor }

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case m.prompt != nil:
			return m.updatePrompt(msg)
		case m.confirm != nil:
			m.updateConfirm(msg)
			return m, nil
		}
		return m.updateCanvas(msg)
	}
	return m, nil
}

func (m Model) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Submit):
		answer := m.input.Value()
		if answer == "" {
			answer = m.prompt.prompt.Default
		}
		act := m.prompt.action
		m.closePrompt()
		m.replay.arm(answer, true)
		m.dispatch(act)
		return m, nil

	case key.Matches(msg, m.keys.Cancel):
		act := m.prompt.action
		m.closePrompt()
		m.replay.arm("", false)
		m.dispatch(act)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) updateConfirm(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		act := m.confirm.action
		m.confirm = nil
		m.dispatch(act)
	case key.Matches(msg, m.keys.Deny):
		m.confirm = nil
	}
}

func (m Model) updateCanvas(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		m.moveCursor(0, -1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(0, 1)
	case key.Matches(msg, m.keys.Left):
		m.moveCursor(-1, 0)
	case key.Matches(msg, m.keys.Right):
		m.moveCursor(1, 0)

	case key.Matches(msg, m.keys.AddMode):
		m.dispatch(editor.SetMode{Mode: editor.ModeAdd})
	case key.Matches(msg, m.keys.ConnectMode):
		m.dispatch(editor.SetMode{Mode: editor.ModeConnect})
	case key.Matches(msg, m.keys.SelectMode):
		m.dispatch(editor.SetMode{Mode: editor.ModeSelect})

	case key.Matches(msg, m.keys.Click):
		cmd := m.click()
		return m, cmd
	case key.Matches(msg, m.keys.Grab):
		m.toggleGrab()

	case key.Matches(msg, m.keys.Delete):
		if q, ok := m.editor.DeleteConfirmation(); ok {
			m.confirm = &pendingConfirm{action: editor.DeleteSelected{}, question: q}
		} else {
			m.dispatch(editor.DeleteSelected{})
		}

	case key.Matches(msg, m.keys.Start):
		m.pick(&m.start, "Start")
	case key.Matches(msg, m.keys.End):
		m.pick(&m.end, "End")
	case key.Matches(msg, m.keys.Run):
		m.pathStart = m.start
		m.dispatch(editor.RunShortestPath{Start: m.start, End: m.end})
	case key.Matches(msg, m.keys.ClearPath):
		m.dispatch(editor.ClearPath{})

	case key.Matches(msg, m.keys.Seed):
		m.start, m.end = 0, 0
		m.dispatch(editor.LoadSeed{})
	case key.Matches(msg, m.keys.ClearAll):
		m.confirm = &pendingConfirm{action: editor.ClearAll{}, question: "Clear every city and road?"}
	case key.Matches(msg, m.keys.Export):
		m.export()
	case key.Matches(msg, m.keys.Reset):
		m.dispatch(editor.ResetView{})
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

func (m *Model) moveCursor(dx, dy int) {
	m.cursor.x = min(max(m.cursor.x+dx, 0), m.cols-1)
	m.cursor.y = min(max(m.cursor.y+dy, 0), m.rows-1)
	if m.grabbing {
		x, y := m.cursorPoint()
		m.dispatch(editor.DragMove{X: x, Y: y})
	}
}

// cursorPoint is the graph coordinate of the cursor cell's corner.
func (m Model) cursorPoint() (float64, float64) {
	return float64(m.cursor.x * m.opts.Canvas.ScaleX), float64(m.cursor.y * m.opts.Canvas.ScaleY)
}

func (m Model) layout() layout {
	return buildLayout(m.editor.View(), m.cols, m.rows, m.opts.Canvas.ScaleX, m.opts.Canvas.ScaleY)
}

// target resolves what the cursor points at: a city, then a road, then
// empty canvas.
func (m Model) target() editor.Action {
	l := m.layout()
	if id, ok := l.nodeAt(m.cursor); ok {
		return editor.ClickNode{Node: id}
	}
	if id, ok := l.roadAt(m.cursor); ok {
		return editor.ClickEdge{Edge: id}
	}
	x, y := m.cursorPoint()
	return editor.ClickCanvas{X: x, Y: y}
}

func (m *Model) click() tea.Cmd {
	act := m.target()
	if p, ok := m.editor.PromptFor(act); ok {
		m.prompt = &pendingPrompt{action: act, prompt: p}
		m.input.Reset()
		m.input.Placeholder = p.Default
		return m.input.Focus()
	}
	m.dispatch(act)
	return nil
}

func (m *Model) closePrompt() {
	m.prompt = nil
	m.input.Blur()
	m.input.Reset()
}

func (m *Model) toggleGrab() {
	if m.grabbing {
		m.grabbing = false
		m.dispatch(editor.DragEnd{})
		return
	}
	if m.editor.Mode() != editor.ModeSelect {
		m.notices.post(editor.NoticeWarning, "Switch to select mode (s) to move cities.")
		return
	}
	id, ok := m.layout().nodeAt(m.cursor)
	if !ok {
		m.notices.post(editor.NoticeWarning, "Move the cursor onto a city to grab it.")
		return
	}
	n, _ := m.editor.Store().Node(id)
	m.dispatch(editor.DragStart{Node: id, X: n.X, Y: n.Y})
	_, m.grabbing = m.editor.Dragging()
}

func (m *Model) pick(dst *graph.NodeID, label string) {
	id, ok := m.layout().nodeAt(m.cursor)
	if !ok {
		m.notices.post(editor.NoticeWarning, "Move the cursor onto a city first.")
		return
	}
	*dst = id
	n, _ := m.editor.Store().Node(id)
	m.notices.post(editor.NoticeInfo, fmt.Sprintf("%s: %s", label, n.Name))
}

func (m *Model) export() {
	path, err := report.WriteFile(m.opts.ExportDir, m.editor.Snapshot(), m.opts.ExportFormat)
	if err != nil {
		m.logger.Error("Export failed", "error", err)
		m.notices.post(editor.NoticeError, "Export failed: "+err.Error())
		return
	}
	m.logger.Info("Map exported", "path", path, "format", m.opts.ExportFormat)
	m.notices.post(editor.NoticeInfo, "Exported to "+path)
}

// dispatch runs an action and surfaces errors the editor did not
// already report.
func (m *Model) dispatch(act editor.Action) {
	before := m.notices.seq
	err := m.editor.Dispatch(m.ctx, act)
	m.replay.armed = false
	if err != nil {
		m.logger.Debug("Action failed", "error", err)
		if m.notices.seq == before {
			m.notices.post(editor.NoticeError, err.Error())
		}
	}
	if _, dragging := m.editor.Dragging(); !dragging {
		m.grabbing = false
	}
}
