package editor

import "github.com/DrSkyle/roadmap/pkg/graph"

// Action is one discrete user gesture fed to Dispatch.
type Action interface {
	actionName() string
}

type (
	// SetMode switches the interaction mode.
	SetMode struct{ Mode Mode }

	// ClickCanvas is a click on empty space at graph coordinates.
	ClickCanvas struct{ X, Y float64 }

	ClickNode struct{ Node graph.NodeID }
	ClickEdge struct{ Edge graph.EdgeID }

	// DragStart presses on a city; X, Y is the pointer position.
	DragStart struct {
		Node graph.NodeID
		X, Y float64
	}
	DragMove struct{ X, Y float64 }
	DragEnd  struct{}

	DeleteSelected  struct{}
	RunShortestPath struct{ Start, End graph.NodeID }
	ClearPath       struct{}
	ClearAll        struct{}
	LoadSeed        struct{}

	// ResetView drops the selection and any half-finished road.
	ResetView struct{}
)

func (SetMode) actionName() string         { return "SetMode" }
func (ClickCanvas) actionName() string     { return "ClickCanvas" }
func (ClickNode) actionName() string       { return "ClickNode" }
func (ClickEdge) actionName() string       { return "ClickEdge" }
func (DragStart) actionName() string       { return "DragStart" }
func (DragMove) actionName() string        { return "DragMove" }
func (DragEnd) actionName() string         { return "DragEnd" }
func (DeleteSelected) actionName() string  { return "DeleteSelected" }
func (RunShortestPath) actionName() string { return "RunShortestPath" }
func (ClearPath) actionName() string       { return "ClearPath" }
func (ClearAll) actionName() string        { return "ClearAll" }
func (LoadSeed) actionName() string        { return "LoadSeed" }
func (ResetView) actionName() string       { return "ResetView" }
