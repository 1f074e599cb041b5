// Package graph holds the city/road model and its in-memory store.
package graph

// NodeID identifies a city. Cities and roads draw ids from one counter,
// so a NodeID never equals an EdgeID held by the same store.
type NodeID int

// EdgeID identifies a road.
type EdgeID int

// Node is a named, positioned city.
type Node struct {
	ID   NodeID
	Name string
	X    float64
	Y    float64
}

// Edge is an undirected, weighted road between two distinct cities.
type Edge struct {
	ID EdgeID
	A  NodeID
	B  NodeID
	W  float64
}

// Touches reports whether id is one of the road's endpoints.
func (e Edge) Touches(id NodeID) bool {
	return e.A == id || e.B == id
}

// Connects reports whether the road joins a and b, in either order.
func (e Edge) Connects(a, b NodeID) bool {
	return (e.A == a && e.B == b) || (e.A == b && e.B == a)
}

// Other returns the endpoint opposite id.
func (e Edge) Other(id NodeID) NodeID {
	if e.A == id {
		return e.B
	}
	return e.A
}

// Neighbor is one entry of an adjacency listing.
type Neighbor struct {
	Node   NodeID
	Edge   EdgeID
	Weight float64
}
