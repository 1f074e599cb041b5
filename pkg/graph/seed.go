package graph

import "fmt"

type seedCity struct {
	name string
	x, y float64
}

type seedRoad struct {
	a, b string
	w    float64
}

var (
	seedCities = []seedCity{
		{"A", 250, 220},
		{"B", 520, 180},
		{"C", 820, 280},
		{"D", 420, 460},
		{"E", 760, 520},
	}
	seedRoads = []seedRoad{
		{"A", "B", 8},
		{"B", "C", 6},
		{"A", "D", 7},
		{"D", "E", 5},
		{"B", "D", 3},
		{"C", "E", 4},
	}
)

// Seed appends the demo map to s. On an empty store the cities get
// ids 1..5 and the roads 6..11.
func Seed(s Store) error {
	ids := make(map[string]NodeID, len(seedCities))
	for _, c := range seedCities {
		ids[c.name] = s.AddNode(c.name, c.x, c.y)
	}
	for _, r := range seedRoads {
		if _, err := s.AddEdge(ids[r.a], ids[r.b], r.w); err != nil {
			return fmt.Errorf("seed road %s-%s: %w", r.a, r.b, err)
		}
	}
	return nil
}
