package graph

// UnionFind is a disjoint-set over city ids.
// Union by rank with path compression.
type UnionFind struct {
	parent map[NodeID]NodeID
	rank   map[NodeID]int
	sets   int
}

// NewUnionFind initializes one singleton set per id.
func NewUnionFind(ids ...NodeID) *UnionFind {
	uf := &UnionFind{
		parent: make(map[NodeID]NodeID, len(ids)),
		rank:   make(map[NodeID]int, len(ids)),
	}
	for _, id := range ids {
		uf.Add(id)
	}
	return uf
}

// Add registers id as its own set. Known ids are ignored.
func (uf *UnionFind) Add(id NodeID) {
	if _, ok := uf.parent[id]; ok {
		return
	}
	uf.parent[id] = id
	uf.sets++
}

// Find returns the set representative, or false for an unknown id.
func (uf *UnionFind) Find(id NodeID) (NodeID, bool) {
	p, ok := uf.parent[id]
	if !ok {
		return 0, false
	}
	if p != id {
		root, _ := uf.Find(p)
		uf.parent[id] = root
		return root, true
	}
	return id, true
}

// Union merges the sets holding a and b.
func (uf *UnionFind) Union(a, b NodeID) {
	rootA, okA := uf.Find(a)
	rootB, okB := uf.Find(b)
	if !okA || !okB || rootA == rootB {
		return
	}

	switch {
	case uf.rank[rootA] < uf.rank[rootB]:
		uf.parent[rootA] = rootB
	case uf.rank[rootA] > uf.rank[rootB]:
		uf.parent[rootB] = rootA
	default:
		uf.parent[rootB] = rootA
		uf.rank[rootA]++
	}
	uf.sets--
}

// Connected checks connectivity.
func (uf *UnionFind) Connected(a, b NodeID) bool {
	rootA, okA := uf.Find(a)
	rootB, okB := uf.Find(b)
	return okA && okB && rootA == rootB
}

// Sets returns the number of disjoint sets.
func (uf *UnionFind) Sets() int {
	return uf.sets
}
