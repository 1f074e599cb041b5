package graph

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
)

// MemoryStore is an in-memory, insertion-ordered city/road store.
type MemoryStore struct {
	mu      sync.RWMutex
	nodes   []Node
	edges   []Edge
	nodeIdx map[NodeID]int // ID -> position in nodes
	edgeIdx map[EdgeID]int // ID -> position in edges
	nextID  int
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	s := &MemoryStore{}
	s.resetLocked()
	return s
}

func (s *MemoryStore) resetLocked() {
	s.nodes = make([]Node, 0, 16)
	s.edges = make([]Edge, 0, 32)
	s.nodeIdx = make(map[NodeID]int)
	s.edgeIdx = make(map[EdgeID]int)
	s.nextID = 1
}

func (s *MemoryStore) allocLocked() int {
	id := s.nextID
	s.nextID++
	return id
}

// reindexLocked rebuilds both position maps after a removal.
func (s *MemoryStore) reindexLocked() {
	clear(s.nodeIdx)
	for i, n := range s.nodes {
		s.nodeIdx[n.ID] = i
	}
	clear(s.edgeIdx)
	for i, e := range s.edges {
		s.edgeIdx[e.ID] = i
	}
}

func (s *MemoryStore) AddNode(name string, x, y float64) NodeID {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := NodeID(s.allocLocked())
	s.nodeIdx[id] = len(s.nodes)
	s.nodes = append(s.nodes, Node{ID: id, Name: name, X: x, Y: y})
	return id
}

// RemoveNode deletes the city and every road touching it.
// Returns the removed road ids; unknown ids are a no-op.
func (s *MemoryStore) RemoveNode(id NodeID) []EdgeID {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, ok := s.nodeIdx[id]
	if !ok {
		return nil
	}
	s.nodes = append(s.nodes[:idx], s.nodes[idx+1:]...)

	var removed []EdgeID
	kept := s.edges[:0]
	for _, e := range s.edges {
		if e.Touches(id) {
			removed = append(removed, e.ID)
			continue
		}
		kept = append(kept, e)
	}
	s.edges = kept

	s.reindexLocked()
	return removed
}

func (s *MemoryStore) UpdateNodePosition(id NodeID, x, y float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, ok := s.nodeIdx[id]
	if !ok {
		return fmt.Errorf("move city %d: %w", id, ErrUnknownEntity)
	}
	s.nodes[idx].X = x
	s.nodes[idx].Y = y
	return nil
}

func (s *MemoryStore) Node(id NodeID) (Node, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if idx, ok := s.nodeIdx[id]; ok {
		return s.nodes[idx], true
	}
	return Node{}, false
}

// FindNode resolves a city by exact name, falling back to its numeric id.
func (s *MemoryStore) FindNode(ref string) (Node, bool) {
	ref = strings.TrimSpace(ref)
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, n := range s.nodes {
		if n.Name == ref {
			return n, true
		}
	}
	if id, err := strconv.Atoi(ref); err == nil {
		if idx, ok := s.nodeIdx[NodeID(id)]; ok {
			return s.nodes[idx], true
		}
	}
	return Node{}, false
}

func (s *MemoryStore) Nodes() []Node {
	s.mu.RLock()
	defer s.mu.RUnlock()
	// Return copy.
	out := make([]Node, len(s.nodes))
	copy(out, s.nodes)
	return out
}

func (s *MemoryStore) NodeCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.nodes)
}

// AddEdge stores a road between a and b. Nothing is mutated on error.
func (s *MemoryStore) AddEdge(a, b NodeID, w float64) (EdgeID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.nodeIdx[a]; !ok {
		return 0, fmt.Errorf("add road from city %d: %w", a, ErrUnknownEntity)
	}
	if _, ok := s.nodeIdx[b]; !ok {
		return 0, fmt.Errorf("add road to city %d: %w", b, ErrUnknownEntity)
	}
	if a == b {
		return 0, fmt.Errorf("add road %d-%d: %w", a, b, ErrSelfLoop)
	}
	if _, ok := s.edgeBetweenLocked(a, b); ok {
		return 0, fmt.Errorf("add road %d-%d: %w", a, b, ErrDuplicateEdge)
	}
	if !ValidWeight(w) {
		return 0, fmt.Errorf("add road %d-%d (weight %v): %w", a, b, w, ErrInvalidWeight)
	}

	id := EdgeID(s.allocLocked())
	s.edgeIdx[id] = len(s.edges)
	s.edges = append(s.edges, Edge{ID: id, A: a, B: b, W: w})
	return id, nil
}

func (s *MemoryStore) RemoveEdge(id EdgeID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, ok := s.edgeIdx[id]
	if !ok {
		return false
	}
	s.edges = append(s.edges[:idx], s.edges[idx+1:]...)
	s.reindexLocked()
	return true
}

func (s *MemoryStore) SetEdgeWeight(id EdgeID, w float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, ok := s.edgeIdx[id]
	if !ok {
		return fmt.Errorf("set weight of road %d: %w", id, ErrUnknownEntity)
	}
	if !ValidWeight(w) {
		return fmt.Errorf("set weight of road %d to %v: %w", id, w, ErrInvalidWeight)
	}
	s.edges[idx].W = w
	return nil
}

func (s *MemoryStore) Edge(id EdgeID) (Edge, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if idx, ok := s.edgeIdx[id]; ok {
		return s.edges[idx], true
	}
	return Edge{}, false
}

func (s *MemoryStore) EdgeBetween(a, b NodeID) (Edge, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.edgeBetweenLocked(a, b)
}

func (s *MemoryStore) edgeBetweenLocked(a, b NodeID) (Edge, bool) {
	for _, e := range s.edges {
		if e.Connects(a, b) {
			return e, true
		}
	}
	return Edge{}, false
}

// Neighbors lists the roads leaving id in road insertion order.
func (s *MemoryStore) Neighbors(id NodeID) []Neighbor {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Neighbor
	for _, e := range s.edges {
		if e.Touches(id) {
			out = append(out, Neighbor{Node: e.Other(id), Edge: e.ID, Weight: e.W})
		}
	}
	return out
}

func (s *MemoryStore) Edges() []Edge {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Edge, len(s.edges))
	copy(out, s.edges)
	return out
}

func (s *MemoryStore) EdgeCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.edges)
}

func (s *MemoryStore) NextID() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.nextID
}

// Reset drops every city and road and restarts the id counter at 1.
func (s *MemoryStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetLocked()
}

// Restore replaces the store content with nodes and edges after checking
// every structural invariant. On error the store is left untouched.
// A nextID that would collide with an existing id is raised past it.
func (s *MemoryStore) Restore(nodes []Node, edges []Edge, nextID int) error {
	seen := make(map[int]struct{}, len(nodes)+len(edges))
	nodeIdx := make(map[NodeID]int, len(nodes))
	maxID := 0

	claim := func(id int) error {
		if id <= 0 {
			return fmt.Errorf("restore id %d: %w", id, ErrInvalidID)
		}
		if _, dup := seen[id]; dup {
			return fmt.Errorf("restore id %d: %w", id, ErrDuplicateID)
		}
		seen[id] = struct{}{}
		maxID = max(maxID, id)
		return nil
	}

	for i, n := range nodes {
		if err := claim(int(n.ID)); err != nil {
			return err
		}
		if strings.TrimSpace(n.Name) == "" {
			return fmt.Errorf("restore city %d: %w", n.ID, ErrEmptyName)
		}
		nodeIdx[n.ID] = i
	}

	edgeIdx := make(map[EdgeID]int, len(edges))
	pairs := make(map[[2]NodeID]struct{}, len(edges))
	for i, e := range edges {
		if err := claim(int(e.ID)); err != nil {
			return err
		}
		if _, ok := nodeIdx[e.A]; !ok {
			return fmt.Errorf("restore road %d endpoint %d: %w", e.ID, e.A, ErrUnknownEntity)
		}
		if _, ok := nodeIdx[e.B]; !ok {
			return fmt.Errorf("restore road %d endpoint %d: %w", e.ID, e.B, ErrUnknownEntity)
		}
		if e.A == e.B {
			return fmt.Errorf("restore road %d: %w", e.ID, ErrSelfLoop)
		}
		key := [2]NodeID{min(e.A, e.B), max(e.A, e.B)}
		if _, dup := pairs[key]; dup {
			return fmt.Errorf("restore road %d: %w", e.ID, ErrDuplicateEdge)
		}
		pairs[key] = struct{}{}
		if !ValidWeight(e.W) {
			return fmt.Errorf("restore road %d: %w", e.ID, ErrInvalidWeight)
		}
		edgeIdx[e.ID] = i
	}

	if nextID <= maxID {
		nextID = maxID + 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.nodes = append(make([]Node, 0, len(nodes)), nodes...)
	s.edges = append(make([]Edge, 0, len(edges)), edges...)
	s.nodeIdx = nodeIdx
	s.edgeIdx = edgeIdx
	s.nextID = nextID
	return nil
}
