package report

import (
	"fmt"
	"strings"

	"github.com/DrSkyle/roadmap/pkg/graph"
	"github.com/DrSkyle/roadmap/pkg/pathfinder"
)

// Route is a resolved shortest path ready for display.
type Route struct {
	Cities   []string
	Roads    []graph.Edge
	Distance float64
}

// Describe resolves a path result against the store. Roads that no
// longer exist are skipped.
func Describe(s graph.Store, start graph.NodeID, res pathfinder.Result) Route {
	r := Route{Distance: res.Distance}
	if !res.Found() {
		return r
	}

	at := start
	if n, ok := s.Node(at); ok {
		r.Cities = append(r.Cities, n.Name)
	}
	for _, id := range res.Edges {
		e, ok := s.Edge(id)
		if !ok {
			continue
		}
		r.Roads = append(r.Roads, e)
		at = e.Other(at)
		if n, ok := s.Node(at); ok {
			r.Cities = append(r.Cities, n.Name)
		}
	}
	return r
}

// String renders "A → B → C (14)".
func (r Route) String() string {
	if len(r.Cities) == 0 {
		return "no path"
	}
	return fmt.Sprintf("%s (%s)", strings.Join(r.Cities, " → "), graph.FormatWeight(r.Distance))
}
