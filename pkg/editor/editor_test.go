package editor

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/DrSkyle/roadmap/pkg/graph"
	"github.com/DrSkyle/roadmap/pkg/snapshot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type answer struct {
	text string
	ok   bool
}

// harness wires an Editor to recording collaborators.
type harness struct {
	t       *testing.T
	ed      *Editor
	store   *graph.MemoryStore
	answers []answer
	prompts []Prompt
	notices []Notice
	renders int
	saves   []snapshot.Record
	saveErr error
}

func newHarness(t *testing.T, seed bool) *harness {
	t.Helper()
	h := &harness{t: t, store: graph.NewMemoryStore()}
	if seed {
		require.NoError(t, graph.Seed(h.store))
	}
	h.ed = New(h.store,
		WithPrompter(PrompterFunc(func(p Prompt) (string, bool) {
			h.prompts = append(h.prompts, p)
			if len(h.answers) == 0 {
				return "", false
			}
			a := h.answers[0]
			h.answers = h.answers[1:]
			return a.text, a.ok
		})),
		WithNotifier(NotifierFunc(func(n Notice) { h.notices = append(h.notices, n) })),
		WithRenderer(RendererFunc(func(View) { h.renders++ })),
		WithPersister(h),
	)
	return h
}

func (h *harness) Save(_ context.Context, rec snapshot.Record) error {
	if h.saveErr != nil {
		return h.saveErr
	}
	h.saves = append(h.saves, rec)
	return nil
}

func (h *harness) answer(text string) { h.answers = append(h.answers, answer{text, true}) }
func (h *harness) cancel()            { h.answers = append(h.answers, answer{"", false}) }

func (h *harness) do(a Action) error {
	h.t.Helper()
	return h.ed.Dispatch(context.Background(), a)
}

func (h *harness) city(name string) graph.NodeID {
	h.t.Helper()
	n, ok := h.store.FindNode(name)
	require.True(h.t, ok, name)
	return n.ID
}

func (h *harness) lastNotice() string {
	if len(h.notices) == 0 {
		return ""
	}
	return h.notices[len(h.notices)-1].Message
}

func TestEditor_AddCity(t *testing.T) {
	h := newHarness(t, false)
	assert.Equal(t, ModeAdd, h.ed.Mode())

	h.answer("  Yangon  ")
	require.NoError(t, h.do(ClickCanvas{X: 12, Y: 34}))

	require.Len(t, h.prompts, 1)
	assert.Equal(t, PromptCityName, h.prompts[0].Kind)
	assert.Equal(t, "City 1", h.prompts[0].Default)

	n, ok := h.store.FindNode("Yangon")
	require.True(t, ok)
	assert.Equal(t, 12.0, n.X)
	assert.Equal(t, 34.0, n.Y)
	assert.Len(t, h.saves, 1)
	assert.Equal(t, 1, h.renders)
}

func TestEditor_AddCityCancelledOrBlank(t *testing.T) {
	h := newHarness(t, false)

	h.cancel()
	require.NoError(t, h.do(ClickCanvas{}))
	h.answer("   ")
	require.NoError(t, h.do(ClickCanvas{}))

	assert.Zero(t, h.store.NodeCount())
	assert.Empty(t, h.saves)
	assert.Zero(t, h.renders)
}

func TestEditor_CanvasClickOutsideAddMode(t *testing.T) {
	h := newHarness(t, false)
	require.NoError(t, h.do(SetMode{Mode: ModeSelect}))
	h.answer("Ghost")
	require.NoError(t, h.do(ClickCanvas{}))
	assert.Empty(t, h.prompts)
	assert.Zero(t, h.store.NodeCount())
}

func TestEditor_ConnectFlow(t *testing.T) {
	h := newHarness(t, false)
	a := h.store.AddNode("A", 0, 0)
	b := h.store.AddNode("B", 10, 0)

	require.NoError(t, h.do(SetMode{Mode: ModeConnect}))
	require.NoError(t, h.do(ClickNode{Node: a}))

	pending, ok := h.ed.Pending()
	require.True(t, ok)
	assert.Equal(t, a, pending)
	sel, _ := h.ed.Selected()
	assert.Equal(t, a, sel)

	// Same city again keeps the source.
	require.NoError(t, h.do(ClickNode{Node: a}))
	pending, ok = h.ed.Pending()
	assert.True(t, ok)
	assert.Equal(t, a, pending)
	assert.Empty(t, h.prompts)

	h.answer("12.5")
	require.NoError(t, h.do(ClickNode{Node: b}))

	require.Len(t, h.prompts, 1)
	assert.Equal(t, PromptRoadWeight, h.prompts[0].Kind)
	assert.Equal(t, "10", h.prompts[0].Default)

	e, ok := h.store.EdgeBetween(b, a)
	require.True(t, ok)
	assert.Equal(t, 12.5, e.W)

	_, ok = h.ed.Pending()
	assert.False(t, ok)
	_, ok = h.ed.Selected()
	assert.False(t, ok)
	assert.Len(t, h.saves, 1)
}

func TestEditor_ConnectExistingRoad(t *testing.T) {
	h := newHarness(t, true)
	require.NoError(t, h.do(SetMode{Mode: ModeConnect}))
	require.NoError(t, h.do(ClickNode{Node: h.city("A")}))
	require.NoError(t, h.do(ClickNode{Node: h.city("B")}))

	assert.Equal(t, MsgRoadExists, h.lastNotice())
	assert.Empty(t, h.prompts)
	_, ok := h.ed.Pending()
	assert.False(t, ok)
	_, ok = h.ed.Selected()
	assert.False(t, ok)
	assert.Equal(t, 6, h.store.EdgeCount())
	assert.Empty(t, h.saves)
}

func TestEditor_ConnectInvalidWeightStillClearsSource(t *testing.T) {
	h := newHarness(t, false)
	a := h.store.AddNode("A", 0, 0)
	b := h.store.AddNode("B", 0, 0)

	require.NoError(t, h.do(SetMode{Mode: ModeConnect}))
	require.NoError(t, h.do(ClickNode{Node: a}))

	h.answer("-3")
	err := h.do(ClickNode{Node: b})
	assert.ErrorIs(t, err, graph.ErrInvalidWeight)
	assert.Equal(t, "Weight must be a positive finite number.", h.lastNotice())

	assert.Zero(t, h.store.EdgeCount())
	_, ok := h.ed.Pending()
	assert.False(t, ok)
	assert.Len(t, h.saves, 1)

	// Cancelling the weight prompt aborts quietly.
	require.NoError(t, h.do(ClickNode{Node: a}))
	h.cancel()
	require.NoError(t, h.do(ClickNode{Node: b}))
	assert.Zero(t, h.store.EdgeCount())
	_, ok = h.ed.Pending()
	assert.False(t, ok)
}

func TestEditor_SetModeClearsSelection(t *testing.T) {
	h := newHarness(t, true)
	require.NoError(t, h.do(RunShortestPath{Start: h.city("A"), End: h.city("C")}))
	require.NoError(t, h.do(SetMode{Mode: ModeConnect}))
	require.NoError(t, h.do(ClickNode{Node: h.city("A")}))

	require.NoError(t, h.do(SetMode{Mode: ModeSelect}))
	_, ok := h.ed.Pending()
	assert.False(t, ok)
	_, ok = h.ed.Selected()
	assert.False(t, ok)
	_, ok = h.ed.Path()
	assert.True(t, ok, "mode switch keeps the path")

	assert.Error(t, h.do(SetMode{Mode: Mode(42)}))
}

func TestEditor_SelectAndDrag(t *testing.T) {
	h := newHarness(t, true)
	b := h.city("B")

	// Drag is ignored outside select mode.
	require.NoError(t, h.do(DragStart{Node: b, X: 520, Y: 180}))
	_, dragging := h.ed.Dragging()
	assert.False(t, dragging)

	require.NoError(t, h.do(SetMode{Mode: ModeSelect}))
	require.NoError(t, h.do(ClickNode{Node: b}))
	sel, _ := h.ed.Selected()
	assert.Equal(t, b, sel)

	rendersBefore := h.renders
	require.NoError(t, h.do(DragStart{Node: b, X: 525, Y: 185}))
	require.NoError(t, h.do(DragMove{X: 600, Y: 300}))
	require.NoError(t, h.do(DragMove{X: 605, Y: 305}))
	assert.Equal(t, rendersBefore+2, h.renders)
	assert.Empty(t, h.saves, "moves are not persisted")

	n, _ := h.store.Node(b)
	assert.Equal(t, 600.0, n.X)
	assert.Equal(t, 300.0, n.Y)

	require.NoError(t, h.do(DragEnd{}))
	assert.Len(t, h.saves, 1)
	require.NoError(t, h.do(DragEnd{}))
	assert.Len(t, h.saves, 1)

	// Leaving select mode mid-drag still saves the moved city, once.
	a := h.city("A")
	require.NoError(t, h.do(DragStart{Node: a, X: 250, Y: 220}))
	require.NoError(t, h.do(DragMove{X: 300, Y: 400}))
	require.NoError(t, h.do(SetMode{Mode: ModeAdd}))
	require.NoError(t, h.do(DragEnd{}))
	require.Len(t, h.saves, 2)
	_, dragging = h.ed.Dragging()
	assert.False(t, dragging)
	saved := h.saves[1].Nodes[0]
	assert.Equal(t, int(a), saved.ID)
	assert.Equal(t, 300.0, saved.X)
	assert.Equal(t, 400.0, saved.Y)

	// Grabbing another city finishes the previous drag first.
	require.NoError(t, h.do(SetMode{Mode: ModeSelect}))
	require.NoError(t, h.do(DragStart{Node: a, X: 300, Y: 400}))
	require.NoError(t, h.do(DragMove{X: 310, Y: 410}))
	require.NoError(t, h.do(DragStart{Node: b, X: 600, Y: 300}))
	require.Len(t, h.saves, 3)
	assert.Equal(t, 310.0, h.saves[2].Nodes[0].X)
	held, dragging := h.ed.Dragging()
	assert.True(t, dragging)
	assert.Equal(t, b, held)
	require.NoError(t, h.do(DragEnd{}))
	assert.Len(t, h.saves, 4)
}

func TestEditor_EditRoad(t *testing.T) {
	h := newHarness(t, true)
	ab, _ := h.store.EdgeBetween(h.city("A"), h.city("B"))

	h.answer("2")
	require.NoError(t, h.do(ClickEdge{Edge: ab.ID}))
	require.Len(t, h.prompts, 1)
	assert.Equal(t, PromptEditRoad, h.prompts[0].Kind)
	assert.Equal(t, "8", h.prompts[0].Default)
	assert.Contains(t, h.prompts[0].Message, "Edit road A—B")

	got, _ := h.store.Edge(ab.ID)
	assert.Equal(t, 2.0, got.W)

	// Garbage and cancel leave the weight alone but still save.
	h.answer("lots")
	require.NoError(t, h.do(ClickEdge{Edge: ab.ID}))
	h.cancel()
	require.NoError(t, h.do(ClickEdge{Edge: ab.ID}))
	got, _ = h.store.Edge(ab.ID)
	assert.Equal(t, 2.0, got.W)
	assert.Len(t, h.saves, 3)

	// Unknown road is ignored.
	require.NoError(t, h.do(ClickEdge{Edge: 999}))
	assert.Len(t, h.prompts, 3)
}

// stuckStore refuses every weight change.
type stuckStore struct {
	*graph.MemoryStore
}

func (stuckStore) SetEdgeWeight(graph.EdgeID, float64) error {
	return errors.New("store is read-only")
}

func TestEditor_EditRoadFailureIsNotLoggedAsChange(t *testing.T) {
	mem := graph.NewMemoryStore()
	require.NoError(t, graph.Seed(mem))
	var logs bytes.Buffer
	ed := New(stuckStore{mem},
		WithPrompter(PrompterFunc(func(Prompt) (string, bool) { return "3", true })),
		WithLogger(slog.New(slog.NewTextHandler(&logs, nil))),
	)

	ab, _ := mem.EdgeBetween(1, 2)
	err := ed.Dispatch(context.Background(), ClickEdge{Edge: ab.ID})
	assert.EqualError(t, err, "store is read-only")
	assert.NotContains(t, logs.String(), "Road weight changed")

	got, _ := mem.Edge(ab.ID)
	assert.Equal(t, 8.0, got.W)
}

func TestEditor_DeleteRoadClearsPathOnlyWhenUsed(t *testing.T) {
	h := newHarness(t, true)
	a, c := h.city("A"), h.city("C")
	require.NoError(t, h.do(RunShortestPath{Start: a, End: c}))

	de, _ := h.store.EdgeBetween(h.city("D"), h.city("E"))
	h.answer("delete")
	require.NoError(t, h.do(ClickEdge{Edge: de.ID}))
	_, ok := h.ed.Path()
	assert.True(t, ok, "road off the path keeps the result")

	bc, _ := h.store.EdgeBetween(h.city("B"), c)
	h.answer(" DELETE ")
	require.NoError(t, h.do(ClickEdge{Edge: bc.ID}))
	_, ok = h.ed.Path()
	assert.False(t, ok)
	_, ok = h.store.Edge(bc.ID)
	assert.False(t, ok)
}

func TestEditor_DeleteSelected(t *testing.T) {
	h := newHarness(t, true)

	require.NoError(t, h.do(DeleteSelected{}))
	assert.Equal(t, "Select a city first (Select mode), then delete.", h.lastNotice())

	require.NoError(t, h.do(RunShortestPath{Start: h.city("A"), End: h.city("E")}))
	require.NoError(t, h.do(SetMode{Mode: ModeSelect}))
	require.NoError(t, h.do(ClickNode{Node: h.city("B")}))

	msg, ok := h.ed.DeleteConfirmation()
	require.True(t, ok)
	assert.Equal(t, `Delete city "B" and its 3 road(s)?`, msg)

	require.NoError(t, h.do(DeleteSelected{}))
	assert.Equal(t, 4, h.store.NodeCount())
	assert.Equal(t, 3, h.store.EdgeCount())
	_, ok = h.ed.Selected()
	assert.False(t, ok)
	_, ok = h.ed.Path()
	assert.False(t, ok)
	assert.Len(t, h.saves, 1)
}

func TestEditor_RunShortestPath(t *testing.T) {
	h := newHarness(t, true)
	a, c := h.city("A"), h.city("C")

	require.NoError(t, h.do(RunShortestPath{Start: a, End: c}))
	res, ok := h.ed.Path()
	require.True(t, ok)
	assert.Equal(t, 14.0, res.Distance)
	assert.Equal(t, "Shortest distance: 14", h.lastNotice())

	v := h.ed.View()
	ab, _ := h.store.EdgeBetween(a, h.city("B"))
	assert.True(t, v.OnPath(ab.ID))
	assert.Len(t, v.PathEdges, 2)

	err := h.do(RunShortestPath{Start: a, End: a})
	assert.ErrorIs(t, err, ErrSameEndpoints)
	assert.Equal(t, MsgDistinctCities, h.lastNotice())

	err = h.do(RunShortestPath{Start: a, End: 404})
	assert.ErrorIs(t, err, graph.ErrUnknownEntity)

	island := h.store.AddNode("Island", 0, 0)
	require.NoError(t, h.do(RunShortestPath{Start: a, End: island}))
	assert.Equal(t, "No path exists between selected cities.", h.lastNotice())
	res, ok = h.ed.Path()
	require.True(t, ok)
	assert.False(t, res.Found())
	assert.Empty(t, h.ed.View().PathEdges)
}

func TestEditor_ViewSkipsStalePathRoads(t *testing.T) {
	h := newHarness(t, true)
	a, c := h.city("A"), h.city("C")
	require.NoError(t, h.do(RunShortestPath{Start: a, End: c}))

	// Mutating the store behind the editor leaves a stale id in the result.
	bc, _ := h.store.EdgeBetween(h.city("B"), c)
	h.store.RemoveEdge(bc.ID)

	v := h.ed.View()
	assert.Len(t, v.PathEdges, 1)
	assert.False(t, v.OnPath(bc.ID))
}

func TestEditor_ClearPathResetViewClearAll(t *testing.T) {
	h := newHarness(t, true)
	require.NoError(t, h.do(RunShortestPath{Start: h.city("A"), End: h.city("C")}))
	require.NoError(t, h.do(ClickNode{Node: h.city("D")}))

	require.NoError(t, h.do(ResetView{}))
	_, ok := h.ed.Selected()
	assert.False(t, ok)
	_, ok = h.ed.Path()
	assert.True(t, ok)

	require.NoError(t, h.do(ClearPath{}))
	_, ok = h.ed.Path()
	assert.False(t, ok)

	require.NoError(t, h.do(ClearAll{}))
	assert.Zero(t, h.store.NodeCount())
	assert.Equal(t, 1, h.store.NextID())
	require.Len(t, h.saves, 1)
	assert.Equal(t, 1, h.saves[0].NextID)
}

func TestEditor_LoadSeed(t *testing.T) {
	h := newHarness(t, false)
	h.store.AddNode("Old", 0, 0)

	require.NoError(t, h.do(LoadSeed{}))
	assert.Equal(t, 5, h.store.NodeCount())
	assert.Equal(t, 6, h.store.EdgeCount())
	assert.Equal(t, 12, h.store.NextID())
	require.Len(t, h.saves, 1)
	assert.Len(t, h.saves[0].Nodes, 5)
}

func TestEditor_PersistFailureIsReported(t *testing.T) {
	h := newHarness(t, false)
	h.saveErr = errors.New("bucket gone")

	h.answer("A")
	err := h.do(ClickCanvas{})
	assert.ErrorIs(t, err, h.saveErr)
	assert.Equal(t, "Could not save map: bucket gone", h.lastNotice())
	assert.Equal(t, 1, h.store.NodeCount(), "the city stays in memory")
	assert.Equal(t, 1, h.renders)
}

func TestEditor_NoCollaborators(t *testing.T) {
	ed := New(graph.NewMemoryStore())
	require.NoError(t, ed.Dispatch(context.Background(), ClickCanvas{X: 1, Y: 1}))
	require.NoError(t, ed.Dispatch(context.Background(), LoadSeed{}))
	assert.Equal(t, 5, ed.Store().NodeCount())
}

func TestParseMode(t *testing.T) {
	for in, want := range map[string]Mode{"add": ModeAdd, " Connect ": ModeConnect, "move": ModeSelect} {
		got, err := ParseMode(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseMode("paint")
	assert.Error(t, err)
	assert.Equal(t, "select", ModeSelect.String())
}
