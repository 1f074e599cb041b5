// Package pathfinder computes single-pair shortest paths over a road map.
//
// Extraction is a linear scan over the unsettled cities in insertion order,
// O(V²) overall. Ties go to the first city encountered, which keeps the
// chosen path deterministic for a given map.
package pathfinder

import (
	"math"
	"slices"

	"github.com/DrSkyle/roadmap/pkg/graph"
)

// Graph is the read surface Find needs. graph.Store satisfies it.
type Graph interface {
	Nodes() []graph.Node
	Neighbors(id graph.NodeID) []graph.Neighbor
}

// Result is a shortest path. An unreachable target has an infinite
// Distance and no Edges.
type Result struct {
	Distance float64
	Edges    []graph.EdgeID
}

// NoPath is the result for an unreachable target.
func NoPath() Result {
	return Result{Distance: math.Inf(1)}
}

// Found reports whether a path exists.
func (r Result) Found() bool {
	return !math.IsInf(r.Distance, 1)
}

// Contains reports whether the road is part of the path.
func (r Result) Contains(id graph.EdgeID) bool {
	return slices.Contains(r.Edges, id)
}

// Find runs Dijkstra from start and stops as soon as end is settled.
// start and end are expected to be existing, distinct cities.
func Find(g Graph, start, end graph.NodeID) Result {
	nodes := g.Nodes()

	dist := make(map[graph.NodeID]float64, len(nodes))
	prevEdge := make(map[graph.NodeID]graph.EdgeID, len(nodes))
	prevNode := make(map[graph.NodeID]graph.NodeID, len(nodes))
	unsettled := make([]graph.NodeID, 0, len(nodes))
	open := make(map[graph.NodeID]bool, len(nodes))

	for _, n := range nodes {
		dist[n.ID] = math.Inf(1)
		unsettled = append(unsettled, n.ID)
		open[n.ID] = true
	}
	if !open[start] || !open[end] {
		return NoPath()
	}
	dist[start] = 0

	for len(unsettled) > 0 {
		best := -1
		bestDist := math.Inf(1)
		for i, id := range unsettled {
			if dist[id] < bestDist {
				best, bestDist = i, dist[id]
			}
		}
		// Everything left is unreachable.
		if best < 0 {
			break
		}

		current := unsettled[best]
		unsettled = slices.Delete(unsettled, best, best+1)
		delete(open, current)
		if current == end {
			break
		}

		for _, nb := range g.Neighbors(current) {
			if !open[nb.Node] {
				continue
			}
			if alt := dist[current] + nb.Weight; alt < dist[nb.Node] {
				dist[nb.Node] = alt
				prevNode[nb.Node] = current
				prevEdge[nb.Node] = nb.Edge
			}
		}
	}

	if math.IsInf(dist[end], 1) {
		return NoPath()
	}

	var edges []graph.EdgeID
	for at := end; at != start; at = prevNode[at] {
		edges = append(edges, prevEdge[at])
	}
	slices.Reverse(edges)
	return Result{Distance: dist[end], Edges: edges}
}
