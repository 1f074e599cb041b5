// Package mapfile reads and writes road maps as HCL:
//
//	city "A" {
//	  x = 250
//	  y = canvas.height / 3
//	}
//
//	road "A" "B" {
//	  weight = 8
//	}
//
// Expressions may reference canvas.width and canvas.height.
package mapfile

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/DrSkyle/roadmap/pkg/graph"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"
)

// ErrDuplicateCity is returned when a file declares the same city twice.
var ErrDuplicateCity = errors.New("city declared more than once")

// Canvas is exposed to expressions as the canvas object.
type Canvas struct {
	Width  float64
	Height float64
}

// City is a `city "<name>"` block.
type City struct {
	Name string  `hcl:"name,label"`
	X    float64 `hcl:"x"`
	Y    float64 `hcl:"y"`
}

// Road is a `road "<from>" "<to>"` block.
type Road struct {
	From   string  `hcl:"from,label"`
	To     string  `hcl:"to,label"`
	Weight float64 `hcl:"weight"`
}

// Map is a decoded map file.
type Map struct {
	Cities []City `hcl:"city,block"`
	Roads  []Road `hcl:"road,block"`
}

func (c Canvas) evalContext() *hcl.EvalContext {
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"canvas": cty.ObjectVal(map[string]cty.Value{
				"width":  cty.NumberFloatVal(c.Width),
				"height": cty.NumberFloatVal(c.Height),
			}),
		},
	}
}

// Parse decodes HCL source.
func Parse(filename string, src []byte, canvas Canvas) (*Map, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse %s: %w", filename, diags)
	}

	var m Map
	if diags := gohcl.DecodeBody(file.Body, canvas.evalContext(), &m); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode %s: %w", filename, diags)
	}
	return &m, nil
}

// ParseFile reads and decodes a map file from disk.
func ParseFile(path string, canvas Canvas) (*Map, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read map file: %w", err)
	}
	return Parse(path, src, canvas)
}

// ImportStats reports what Import changed.
type ImportStats struct {
	CitiesAdded   int
	CitiesMoved   int
	RoadsAdded    int
	RoadsReweight int
}

// Import loads m into s. Without merge the store is replaced; with merge
// cities are matched by name and existing roads get the new weight.
// Either every block applies or the store is left as it was.
func Import(s graph.Store, m *Map, merge bool) (ImportStats, error) {
	var st ImportStats

	scratch := graph.NewMemoryStore()
	if merge {
		if err := scratch.Restore(s.Nodes(), s.Edges(), s.NextID()); err != nil {
			return st, err
		}
	}

	ids := make(map[string]graph.NodeID)
	for _, n := range scratch.Nodes() {
		if _, dup := ids[n.Name]; !dup {
			ids[n.Name] = n.ID
		}
	}

	declared := make(map[string]struct{}, len(m.Cities))
	for i, c := range m.Cities {
		if strings.TrimSpace(c.Name) == "" {
			return st, fmt.Errorf("city block %d: %w", i+1, graph.ErrEmptyName)
		}
		if _, dup := declared[c.Name]; dup {
			return st, fmt.Errorf("city %q: %w", c.Name, ErrDuplicateCity)
		}
		declared[c.Name] = struct{}{}

		if id, ok := ids[c.Name]; ok {
			if err := scratch.UpdateNodePosition(id, c.X, c.Y); err != nil {
				return st, err
			}
			st.CitiesMoved++
			continue
		}
		ids[c.Name] = scratch.AddNode(c.Name, c.X, c.Y)
		st.CitiesAdded++
	}

	for _, r := range m.Roads {
		a, okA := ids[r.From]
		b, okB := ids[r.To]
		if !okA || !okB {
			return st, fmt.Errorf("road %s-%s: %w", r.From, r.To, graph.ErrUnknownEntity)
		}
		_, err := scratch.AddEdge(a, b, r.Weight)
		if errors.Is(err, graph.ErrDuplicateEdge) && merge {
			existing, _ := scratch.EdgeBetween(a, b)
			err = scratch.SetEdgeWeight(existing.ID, r.Weight)
			if err == nil {
				st.RoadsReweight++
				continue
			}
		}
		if err != nil {
			return st, fmt.Errorf("road %s-%s: %w", r.From, r.To, err)
		}
		st.RoadsAdded++
	}

	if err := s.Restore(scratch.Nodes(), scratch.Edges(), scratch.NextID()); err != nil {
		return ImportStats{}, err
	}
	return st, nil
}

// Write renders the store as a map file.
func Write(w io.Writer, s graph.Store) error {
	f := hclwrite.NewEmptyFile()
	body := f.Body()

	for _, n := range s.Nodes() {
		city := body.AppendNewBlock("city", []string{n.Name}).Body()
		city.SetAttributeValue("x", cty.NumberFloatVal(n.X))
		city.SetAttributeValue("y", cty.NumberFloatVal(n.Y))
	}
	for _, e := range s.Edges() {
		a, okA := s.Node(e.A)
		b, okB := s.Node(e.B)
		if !okA || !okB {
			continue
		}
		road := body.AppendNewBlock("road", []string{a.Name, b.Name}).Body()
		road.SetAttributeValue("weight", cty.NumberFloatVal(e.W))
	}

	_, err := f.WriteTo(w)
	return err
}
