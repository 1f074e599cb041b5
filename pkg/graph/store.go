package graph

// Store defines city/road storage.
type Store interface {
	// City operations.
	AddNode(name string, x, y float64) NodeID
	RemoveNode(id NodeID) []EdgeID
	UpdateNodePosition(id NodeID, x, y float64) error
	Node(id NodeID) (Node, bool)
	FindNode(ref string) (Node, bool)
	Nodes() []Node // Insertion order.
	NodeCount() int

	// Road operations.
	AddEdge(a, b NodeID, w float64) (EdgeID, error)
	RemoveEdge(id EdgeID) bool
	SetEdgeWeight(id EdgeID, w float64) error
	Edge(id EdgeID) (Edge, bool)
	EdgeBetween(a, b NodeID) (Edge, bool)
	Neighbors(id NodeID) []Neighbor
	Edges() []Edge // Insertion order.
	EdgeCount() int

	// Bulk operations.
	NextID() int
	Reset()
	Restore(nodes []Node, edges []Edge, nextID int) error
}
