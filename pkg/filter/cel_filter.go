// Package filter hides roads from path finding with CEL expressions.
//
// An expression sees one road at a time:
//
//	id     int     road id
//	w      double  weight
//	a, b   string  endpoint city names
//
// and returns true to exclude the road, e.g. "w > 100.0" or
// "a == 'Yangon' || b == 'Yangon'".
package filter

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/DrSkyle/roadmap/pkg/graph"
	"github.com/google/cel-go/cel"
)

// RoadFilter is a compiled exclusion expression.
type RoadFilter struct {
	expr   string
	prg    cel.Program
	logger *slog.Logger
}

// Compile checks expr against the road variables.
func Compile(expr string) (*RoadFilter, error) {
	env, err := cel.NewEnv(
		cel.Variable("id", cel.IntType),
		cel.Variable("w", cel.DoubleType),
		cel.Variable("a", cel.StringType),
		cel.Variable("b", cel.StringType),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL env: %w", err)
	}

	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("filter %q compilation error: %w", expr, issues.Err())
	}
	if !ast.OutputType().IsExactType(cel.BoolType) {
		return nil, fmt.Errorf("filter %q must return bool, got %s", expr, ast.OutputType())
	}

	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("filter %q program creation error: %w", expr, err)
	}
	return &RoadFilter{
		expr:   expr,
		prg:    prg,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}, nil
}

// WithLogger sets the logger used for evaluation failures.
func (f *RoadFilter) WithLogger(l *slog.Logger) *RoadFilter {
	f.logger = l
	return f
}

func (f *RoadFilter) String() string { return f.expr }

// Excludes evaluates the expression for one road.
func (f *RoadFilter) Excludes(e graph.Edge, a, b string) (bool, error) {
	out, _, err := f.prg.Eval(map[string]any{
		"id": int64(e.ID),
		"w":  e.W,
		"a":  a,
		"b":  b,
	})
	if err != nil {
		return false, fmt.Errorf("filter %q on road %d: %w", f.expr, e.ID, err)
	}
	excluded, ok := out.Value().(bool)
	return ok && excluded, nil
}

// View is a read-only graph with the excluded roads hidden.
type View struct {
	store  graph.Store
	hidden map[graph.EdgeID]bool
}

// Apply evaluates the filter over every road in s. Roads the expression
// fails on stay visible.
func (f *RoadFilter) Apply(s graph.Store) *View {
	v := &View{store: s, hidden: map[graph.EdgeID]bool{}}
	names := map[graph.NodeID]string{}
	for _, n := range s.Nodes() {
		names[n.ID] = n.Name
	}
	for _, e := range s.Edges() {
		excluded, err := f.Excludes(e, names[e.A], names[e.B])
		if err != nil {
			f.logger.Warn("Road filter evaluation failed", "edge_id", e.ID, "error", err)
			continue
		}
		if excluded {
			v.hidden[e.ID] = true
		}
	}
	return v
}

// Hidden counts the excluded roads.
func (v *View) Hidden() int { return len(v.hidden) }

func (v *View) Nodes() []graph.Node { return v.store.Nodes() }

func (v *View) Neighbors(id graph.NodeID) []graph.Neighbor {
	all := v.store.Neighbors(id)
	out := all[:0]
	for _, nb := range all {
		if !v.hidden[nb.Edge] {
			out = append(out, nb)
		}
	}
	return out
}
