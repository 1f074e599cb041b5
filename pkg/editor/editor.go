// Package editor turns user gestures into road map mutations.
//
// The Editor owns the interaction mode, the selected city, the pending
// source of a road being drawn and the last shortest-path result. Every
// gesture arrives as an Action value through Dispatch and is processed to
// completion before the next one; prompts, notices, persistence and
// drawing go through the collaborator interfaces.
package editor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/DrSkyle/roadmap/pkg/graph"
	"github.com/DrSkyle/roadmap/pkg/pathfinder"
	"github.com/DrSkyle/roadmap/pkg/snapshot"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
)

// ErrSameEndpoints is returned when a path is requested from a city to itself.
var ErrSameEndpoints = errors.New("start and end must be distinct cities")

// User-facing notice texts.
const (
	MsgRoadExists     = "Road already exists between these cities."
	MsgSelectFirst    = "Select a city first (Select mode), then delete."
	MsgDistinctCities = "Choose distinct Start and End cities."
	MsgNoPath         = "No path exists between selected cities."
)

type dragState struct {
	node       graph.NodeID
	offX, offY float64
}

// Editor is the interaction state machine over a graph.Store.
type Editor struct {
	store graph.Store

	mode     Mode
	selected graph.NodeID
	pending  graph.NodeID
	path     *pathfinder.Result
	drag     *dragState

	prompter  Prompter
	notifier  Notifier
	persister Persister
	renderer  Renderer

	logger  *slog.Logger
	tracer  trace.Tracer
	actions metric.Int64Counter
}

// Option defines a functional configuration override.
type Option func(*Editor)

func WithPrompter(p Prompter) Option   { return func(e *Editor) { e.prompter = p } }
func WithNotifier(n Notifier) Option   { return func(e *Editor) { e.notifier = n } }
func WithPersister(p Persister) Option { return func(e *Editor) { e.persister = p } }
func WithRenderer(r Renderer) Option   { return func(e *Editor) { e.renderer = r } }
func WithLogger(l *slog.Logger) Option { return func(e *Editor) { e.logger = l } }
func WithTracer(t trace.Tracer) Option { return func(e *Editor) { e.tracer = t } }

// WithMeter counts dispatched actions on the given meter.
func WithMeter(m metric.Meter) Option {
	return func(e *Editor) {
		c, err := m.Int64Counter("editor.actions",
			metric.WithDescription("Number of dispatched editor actions"),
		)
		if err == nil {
			e.actions = c
		}
	}
}

// New returns an Editor in add mode over store.
func New(store graph.Store, opts ...Option) *Editor {
	e := &Editor{
		store:    store,
		mode:     ModeAdd,
		prompter: cancelPrompter{},
		notifier: nopNotifier{},
		renderer: nopRenderer{},
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		tracer:   otel.Tracer("roadmap/editor"),
		actions:  noop.Int64Counter{},
	}
	WithMeter(otel.Meter("roadmap/editor"))(e)
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Editor) Store() graph.Store { return e.store }
func (e *Editor) Mode() Mode         { return e.mode }

func (e *Editor) Selected() (graph.NodeID, bool) { return e.selected, e.selected != 0 }
func (e *Editor) Pending() (graph.NodeID, bool)  { return e.pending, e.pending != 0 }

// Dragging reports the city currently being moved.
func (e *Editor) Dragging() (graph.NodeID, bool) {
	if e.drag == nil {
		return 0, false
	}
	return e.drag.node, true
}

// Path returns the last shortest-path result.
func (e *Editor) Path() (pathfinder.Result, bool) {
	if e.path == nil {
		return pathfinder.Result{}, false
	}
	return *e.path, true
}

// Snapshot captures the persisted form of the current map.
func (e *Editor) Snapshot() snapshot.Record {
	return snapshot.Capture(e.store)
}

// View assembles the render input. Path roads that no longer exist are
// skipped.
func (e *Editor) View() View {
	v := View{
		Mode:      e.mode,
		Nodes:     e.store.Nodes(),
		Edges:     e.store.Edges(),
		PathEdges: map[graph.EdgeID]bool{},
		Selected:  e.selected,
		Pending:   e.pending,
	}
	if e.path != nil {
		v.Path = *e.path
		v.HasPath = true
		for _, id := range e.path.Edges {
			if _, ok := e.store.Edge(id); ok {
				v.PathEdges[id] = true
			}
		}
	}
	return v
}

// PromptFor previews the prompt an action would issue in the current
// state, so a UI can collect the answer before dispatching.
func (e *Editor) PromptFor(a Action) (Prompt, bool) {
	switch act := a.(type) {
	case ClickCanvas:
		if e.mode != ModeAdd {
			return Prompt{}, false
		}
		return Prompt{
			Kind:    PromptCityName,
			Message: "City name (e.g., A, B, Yangon)…",
			Default: fmt.Sprintf("City %d", e.store.NextID()),
		}, true

	case ClickNode:
		if e.mode != ModeConnect || e.pending == 0 || e.pending == act.Node {
			return Prompt{}, false
		}
		if _, ok := e.store.Node(act.Node); !ok {
			return Prompt{}, false
		}
		if _, ok := e.store.EdgeBetween(e.pending, act.Node); ok {
			return Prompt{}, false
		}
		return Prompt{
			Kind:    PromptRoadWeight,
			Message: "Road weight (distance/cost):",
			Default: "10",
		}, true

	case ClickEdge:
		edge, ok := e.store.Edge(act.Edge)
		if !ok {
			return Prompt{}, false
		}
		return Prompt{
			Kind:    PromptEditRoad,
			Message: fmt.Sprintf("Edit road %s—%s\nEnter new weight, or type %q to remove:", e.nodeName(edge.A, "A"), e.nodeName(edge.B, "B"), DeleteKeyword),
			Default: graph.FormatWeight(edge.W),
		}, true
	}
	return Prompt{}, false
}

// DeleteConfirmation returns the question to ask before DeleteSelected.
func (e *Editor) DeleteConfirmation() (string, bool) {
	if e.selected == 0 {
		return "", false
	}
	roads := len(e.store.Neighbors(e.selected))
	return fmt.Sprintf("Delete city %q and its %d road(s)?", e.nodeName(e.selected, fmt.Sprint(e.selected)), roads), true
}

// Dispatch applies one action.
func (e *Editor) Dispatch(ctx context.Context, a Action) error {
	if a == nil {
		return fmt.Errorf("nil action")
	}
	name := a.actionName()
	ctx, span := e.tracer.Start(ctx, "editor."+name, trace.WithAttributes(
		attribute.String("mode", e.mode.String()),
	))
	defer span.End()
	e.actions.Add(ctx, 1, metric.WithAttributes(attribute.String("action", name)))

	var err error
	switch act := a.(type) {
	case SetMode:
		err = e.setMode(ctx, act.Mode)
	case ClickCanvas:
		err = e.clickCanvas(ctx, act)
	case ClickNode:
		err = e.clickNode(ctx, act.Node)
	case ClickEdge:
		err = e.clickEdge(ctx, act.Edge)
	case DragStart:
		err = e.dragStart(ctx, act)
	case DragMove:
		err = e.dragMove(act)
	case DragEnd:
		err = e.dragEnd(ctx)
	case DeleteSelected:
		err = e.deleteSelected(ctx)
	case RunShortestPath:
		err = e.runShortestPath(act.Start, act.End)
	case ClearPath:
		e.path = nil
		e.render()
	case ClearAll:
		e.store.Reset()
		e.clearTransient()
		err = e.commit(ctx)
	case LoadSeed:
		e.store.Reset()
		e.clearTransient()
		if err = graph.Seed(e.store); err == nil {
			err = e.commit(ctx)
		}
	case ResetView:
		e.selected, e.pending = 0, 0
		e.render()
	default:
		err = fmt.Errorf("unsupported action %T", a)
	}

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		e.logger.Debug("Action rejected", "action", name, "error", err)
	}
	return err
}

func (e *Editor) setMode(ctx context.Context, m Mode) error {
	if !m.valid() {
		return fmt.Errorf("set mode: unknown mode %d", int(m))
	}
	err := e.dragEnd(ctx)
	e.mode = m
	e.selected, e.pending = 0, 0
	e.render()
	return err
}

func (e *Editor) clickCanvas(ctx context.Context, act ClickCanvas) error {
	p, ok := e.PromptFor(act)
	if !ok {
		return nil
	}
	answer, ok := e.prompter.Prompt(p)
	name := strings.TrimSpace(answer)
	if !ok || name == "" {
		return nil
	}

	id := e.store.AddNode(name, act.X, act.Y)
	e.logger.Info("City added", "node_id", id, "name", name, "x", act.X, "y", act.Y)
	return e.commit(ctx)
}

func (e *Editor) clickNode(ctx context.Context, id graph.NodeID) error {
	if _, ok := e.store.Node(id); !ok {
		return nil
	}
	if e.mode != ModeConnect {
		e.selected = id
		e.render()
		return nil
	}

	switch {
	case e.pending == 0:
		e.pending, e.selected = id, id
		e.render()
		return nil
	case e.pending == id:
		return nil
	}

	source := e.pending
	if _, exists := e.store.EdgeBetween(source, id); exists {
		e.notify(NoticeWarning, MsgRoadExists)
		e.pending, e.selected = 0, 0
		e.render()
		return nil
	}

	p, _ := e.PromptFor(ClickNode{Node: id})
	answer, ok := e.prompter.Prompt(p)
	e.pending, e.selected = 0, 0

	var addErr error
	if ok {
		w, err := graph.ParseWeight(answer)
		if err == nil {
			var edgeID graph.EdgeID
			edgeID, err = e.store.AddEdge(source, id, w)
			if err == nil {
				e.logger.Info("Road added", "edge_id", edgeID, "a", source, "b", id, "weight", w)
			}
		}
		if err != nil {
			e.notify(NoticeError, userMessage(err))
			addErr = err
		}
	}

	if err := e.commit(ctx); err != nil {
		return errors.Join(addErr, err)
	}
	return addErr
}

func (e *Editor) clickEdge(ctx context.Context, id graph.EdgeID) error {
	p, ok := e.PromptFor(ClickEdge{Edge: id})
	if !ok {
		return nil
	}

	answer, ok := e.prompter.Prompt(p)
	var editErr error
	if ok {
		choice := strings.TrimSpace(answer)
		if strings.EqualFold(choice, DeleteKeyword) {
			e.store.RemoveEdge(id)
			if e.path != nil && e.path.Contains(id) {
				e.path = nil
			}
			e.logger.Info("Road removed", "edge_id", id)
		} else if w, err := graph.ParseWeight(choice); err == nil {
			if editErr = e.store.SetEdgeWeight(id, w); editErr == nil {
				e.logger.Info("Road weight changed", "edge_id", id, "weight", w)
			}
		}
	}

	if err := e.commit(ctx); err != nil {
		return errors.Join(editErr, err)
	}
	return editErr
}

// dragStart finishes any drag still in flight before grabbing the new node.
func (e *Editor) dragStart(ctx context.Context, act DragStart) error {
	if e.mode != ModeSelect {
		return nil
	}
	n, ok := e.store.Node(act.Node)
	if !ok {
		return nil
	}
	err := e.dragEnd(ctx)
	e.drag = &dragState{node: n.ID, offX: n.X - act.X, offY: n.Y - act.Y}
	return err
}

func (e *Editor) dragMove(act DragMove) error {
	if e.drag == nil {
		return nil
	}
	if err := e.store.UpdateNodePosition(e.drag.node, act.X+e.drag.offX, act.Y+e.drag.offY); err != nil {
		e.drag = nil
		return err
	}
	e.render()
	return nil
}

func (e *Editor) dragEnd(ctx context.Context) error {
	if e.drag == nil {
		return nil
	}
	e.drag = nil
	return e.persist(ctx)
}

func (e *Editor) deleteSelected(ctx context.Context) error {
	if e.selected == 0 {
		e.notify(NoticeWarning, MsgSelectFirst)
		return nil
	}

	id := e.selected
	removed := e.store.RemoveNode(id)
	e.logger.Info("City removed", "node_id", id, "roads_removed", len(removed))

	e.path = nil
	e.selected = 0
	if e.pending == id {
		e.pending = 0
	}
	if e.drag != nil && e.drag.node == id {
		e.drag = nil
	}
	return e.commit(ctx)
}

func (e *Editor) runShortestPath(start, end graph.NodeID) error {
	_, okStart := e.store.Node(start)
	_, okEnd := e.store.Node(end)
	if !okStart || !okEnd || start == end {
		e.notify(NoticeWarning, MsgDistinctCities)
		if start == end && okStart {
			return ErrSameEndpoints
		}
		return fmt.Errorf("shortest path %d->%d: %w", start, end, graph.ErrUnknownEntity)
	}

	res := pathfinder.Find(e.store, start, end)
	e.path = &res
	e.render()

	if !res.Found() {
		e.notify(NoticeInfo, MsgNoPath)
		return nil
	}
	e.notify(NoticeInfo, "Shortest distance: "+graph.FormatWeight(res.Distance))
	return nil
}

func (e *Editor) clearTransient() {
	e.path = nil
	e.selected, e.pending = 0, 0
	e.drag = nil
}

// commit persists the map and redraws it.
func (e *Editor) commit(ctx context.Context) error {
	err := e.persist(ctx)
	e.render()
	return err
}

func (e *Editor) persist(ctx context.Context) error {
	if e.persister == nil {
		return nil
	}
	if err := e.persister.Save(ctx, e.Snapshot()); err != nil {
		e.logger.Error("Failed to save map", "error", err)
		e.notify(NoticeError, "Could not save map: "+err.Error())
		return fmt.Errorf("persist: %w", err)
	}
	return nil
}

func (e *Editor) render() {
	e.renderer.Render(e.View())
}

func (e *Editor) notify(kind NoticeKind, msg string) {
	e.notifier.Notify(Notice{Kind: kind, Message: msg})
}

func (e *Editor) nodeName(id graph.NodeID, fallback string) string {
	if n, ok := e.store.Node(id); ok {
		return n.Name
	}
	return fallback
}

// userMessage turns a wrapped graph sentinel into a sentence.
func userMessage(err error) string {
	for _, sentinel := range []error{
		graph.ErrInvalidWeight,
		graph.ErrDuplicateEdge,
		graph.ErrSelfLoop,
		graph.ErrUnknownEntity,
	} {
		if errors.Is(err, sentinel) {
			msg := sentinel.Error()
			return strings.ToUpper(msg[:1]) + msg[1:] + "."
		}
	}
	return err.Error()
}
