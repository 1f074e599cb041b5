package graph

// Stats summarises a map for status lines and the stats command.
type Stats struct {
	Cities      int
	Roads       int
	Components  int
	TotalWeight float64
	Isolated    []NodeID
}

// Components counts the connected groups of cities.
func Components(s Store) int {
	return buildSets(s).Sets()
}

// Analyze computes Stats over the current store content.
func Analyze(s Store) Stats {
	nodes := s.Nodes()
	edges := s.Edges()

	st := Stats{
		Cities:     len(nodes),
		Roads:      len(edges),
		Components: buildSets(s).Sets(),
	}

	degree := make(map[NodeID]int, len(nodes))
	for _, e := range edges {
		st.TotalWeight += e.W
		degree[e.A]++
		degree[e.B]++
	}
	for _, n := range nodes {
		if degree[n.ID] == 0 {
			st.Isolated = append(st.Isolated, n.ID)
		}
	}
	return st
}

func buildSets(s Store) *UnionFind {
	nodes := s.Nodes()
	ids := make([]NodeID, len(nodes))
	for i, n := range nodes {
		ids[i] = n.ID
	}
	uf := NewUnionFind(ids...)
	for _, e := range s.Edges() {
		uf.Union(e.A, e.B)
	}
	return uf
}
