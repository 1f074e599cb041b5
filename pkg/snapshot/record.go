// Package snapshot converts a road map to and from its persisted record.
package snapshot

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/DrSkyle/roadmap/pkg/graph"
)

// City is the persisted form of a node.
type City struct {
	ID   int     `json:"id" yaml:"id"`
	Name string  `json:"name" yaml:"name"`
	X    float64 `json:"x" yaml:"x"`
	Y    float64 `json:"y" yaml:"y"`
}

// Road is the persisted form of an edge.
type Road struct {
	ID int     `json:"id" yaml:"id"`
	A  int     `json:"a" yaml:"a"`
	B  int     `json:"b" yaml:"b"`
	W  float64 `json:"w" yaml:"w"`
}

// Record is the persisted and exported map document.
type Record struct {
	Nodes  []City `json:"nodes" yaml:"nodes"`
	Edges  []Road `json:"edges" yaml:"edges"`
	NextID int    `json:"nextId" yaml:"nextId"`
}

// Capture copies the store content into a Record.
func Capture(s graph.Store) Record {
	nodes := s.Nodes()
	edges := s.Edges()
	rec := Record{
		Nodes:  make([]City, 0, len(nodes)),
		Edges:  make([]Road, 0, len(edges)),
		NextID: s.NextID(),
	}
	for _, n := range nodes {
		rec.Nodes = append(rec.Nodes, City{ID: int(n.ID), Name: n.Name, X: n.X, Y: n.Y})
	}
	for _, e := range edges {
		rec.Edges = append(rec.Edges, Road{ID: int(e.ID), A: int(e.A), B: int(e.B), W: e.W})
	}
	return rec
}

// Apply replaces the store content with the record. The store is left
// untouched when the record breaks a graph invariant.
func (r Record) Apply(s graph.Store) error {
	nodes := make([]graph.Node, 0, len(r.Nodes))
	for _, c := range r.Nodes {
		nodes = append(nodes, graph.Node{ID: graph.NodeID(c.ID), Name: c.Name, X: c.X, Y: c.Y})
	}
	edges := make([]graph.Edge, 0, len(r.Edges))
	for _, rd := range r.Edges {
		edges = append(edges, graph.Edge{ID: graph.EdgeID(rd.ID), A: graph.NodeID(rd.A), B: graph.NodeID(rd.B), W: rd.W})
	}
	return s.Restore(nodes, edges, r.NextID)
}

// MaxID returns the largest id held by the record, or 0 when empty.
func (r Record) MaxID() int {
	m := 0
	for _, c := range r.Nodes {
		m = max(m, c.ID)
	}
	for _, rd := range r.Edges {
		m = max(m, rd.ID)
	}
	return m
}

// Encode renders the record as indented JSON.
func Encode(r Record) ([]byte, error) {
	if r.Nodes == nil {
		r.Nodes = []City{}
	}
	if r.Edges == nil {
		r.Edges = []Road{}
	}
	return json.MarshalIndent(r, "", "  ")
}

// Decode parses a persisted document. It reports false ("no state") when
// the document is not an object, nodes or edges is not an array, or an
// element is malformed. A missing or unusable nextId is recomputed as
// max id + 1.
func Decode(data []byte) (Record, bool) {
	var raw struct {
		Nodes  json.RawMessage `json:"nodes"`
		Edges  json.RawMessage `json:"edges"`
		NextID json.RawMessage `json:"nextId"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return Record{}, false
	}
	if !isArray(raw.Nodes) || !isArray(raw.Edges) {
		return Record{}, false
	}

	var rec Record
	if err := json.Unmarshal(raw.Nodes, &rec.Nodes); err != nil {
		return Record{}, false
	}
	if err := json.Unmarshal(raw.Edges, &rec.Edges); err != nil {
		return Record{}, false
	}

	rec.NextID = parseCounter(raw.NextID)
	if floor := rec.MaxID() + 1; rec.NextID < floor {
		rec.NextID = floor
	}
	return rec, true
}

func isArray(m json.RawMessage) bool {
	m = bytes.TrimSpace(m)
	return len(m) > 0 && m[0] == '['
}

// parseCounter accepts a JSON number or numeric string holding a positive
// integer. Anything else yields 0 so the caller recomputes it.
func parseCounter(m json.RawMessage) int {
	m = bytes.TrimSpace(m)
	if len(m) == 0 {
		return 0
	}

	var f float64
	var s string
	switch {
	case json.Unmarshal(m, &f) == nil:
	case json.Unmarshal(m, &s) == nil:
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return 0
		}
		f = v
	default:
		return 0
	}

	if f <= 0 || f != math.Trunc(f) || f > math.MaxInt32 {
		return 0
	}
	return int(f)
}
