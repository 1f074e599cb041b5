package editor

import (
	"context"

	"github.com/DrSkyle/roadmap/pkg/graph"
	"github.com/DrSkyle/roadmap/pkg/pathfinder"
	"github.com/DrSkyle/roadmap/pkg/snapshot"
)

// DeleteKeyword removes a road from the edit-road prompt.
const DeleteKeyword = "delete"

type PromptKind int

const (
	PromptCityName PromptKind = iota
	PromptRoadWeight
	PromptEditRoad
)

// Prompt is a text question for the user.
type Prompt struct {
	Kind    PromptKind
	Message string
	Default string
}

// Prompter answers prompts. ok is false when the user cancelled.
type Prompter interface {
	Prompt(p Prompt) (answer string, ok bool)
}

type PrompterFunc func(Prompt) (string, bool)

func (f PrompterFunc) Prompt(p Prompt) (string, bool) { return f(p) }

type NoticeKind int

const (
	NoticeInfo NoticeKind = iota
	NoticeWarning
	NoticeError
)

// Notice is a message surfaced to the user.
type Notice struct {
	Kind    NoticeKind
	Message string
}

type Notifier interface {
	Notify(n Notice)
}

type NotifierFunc func(Notice)

func (f NotifierFunc) Notify(n Notice) { f(n) }

// Persister stores the map after a committed change.
type Persister interface {
	Save(ctx context.Context, rec snapshot.Record) error
}

// Renderer draws a View.
type Renderer interface {
	Render(v View)
}

type RendererFunc func(View)

func (f RendererFunc) Render(v View) { f(v) }

// View is everything a renderer needs. Zero ids mean "none".
type View struct {
	Mode      Mode
	Nodes     []graph.Node
	Edges     []graph.Edge
	PathEdges map[graph.EdgeID]bool
	Path      pathfinder.Result
	HasPath   bool
	Selected  graph.NodeID
	Pending   graph.NodeID
}

// OnPath reports whether the road is highlighted.
func (v View) OnPath(id graph.EdgeID) bool {
	return v.PathEdges[id]
}

type cancelPrompter struct{}

func (cancelPrompter) Prompt(Prompt) (string, bool) { return "", false }

type nopNotifier struct{}

func (nopNotifier) Notify(Notice) {}

type nopRenderer struct{}

func (nopRenderer) Render(View) {}
