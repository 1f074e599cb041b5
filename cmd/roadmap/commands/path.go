package commands

import (
	"fmt"

	"github.com/DrSkyle/roadmap/pkg/filter"
	"github.com/DrSkyle/roadmap/pkg/graph"
	"github.com/DrSkyle/roadmap/pkg/pathfinder"
	"github.com/DrSkyle/roadmap/pkg/report"
	"github.com/spf13/cobra"
)

func newPathCmd(a *app) *cobra.Command {
	var exclude string

	cmd := &cobra.Command{
		Use:   "path FROM TO",
		Short: "Print the shortest path between two cities",
		Long: `Print the shortest path between two cities of the stored map.

Cities are matched by name, then by id. --exclude takes a CEL expression
over id, w, a and b; matching roads are ignored, e.g.

  roadmap path A E --exclude 'w > 6 || a == "B"'`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, store, err := a.loadMap(cmd.Context())
			if err != nil {
				return err
			}

			from, ok := store.FindNode(args[0])
			if !ok {
				return fmt.Errorf("city %q: %w", args[0], graph.ErrUnknownEntity)
			}
			to, ok := store.FindNode(args[1])
			if !ok {
				return fmt.Errorf("city %q: %w", args[1], graph.ErrUnknownEntity)
			}
			if from.ID == to.ID {
				return fmt.Errorf("choose distinct start and end cities")
			}

			var g pathfinder.Graph = store
			if exclude != "" {
				f, err := filter.Compile(exclude)
				if err != nil {
					return err
				}
				view := f.WithLogger(a.logger).Apply(store)
				a.logger.Debug("Roads excluded", "filter", f.String(), "hidden", view.Hidden())
				g = view
			}

			res := pathfinder.Find(g, from.ID, to.ID)
			route := report.Describe(store, from.ID, res)
			if !res.Found() {
				fmt.Fprintf(cmd.OutOrStdout(), "No path exists between %s and %s.\n", from.Name, to.Name)
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), route.String())
			for _, e := range route.Roads {
				na, _ := store.Node(e.A)
				nb, _ := store.Node(e.B)
				fmt.Fprintf(cmd.OutOrStdout(), "  %s—%s  %s\n", na.Name, nb.Name, graph.FormatWeight(e.W))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&exclude, "exclude", "", "CEL expression selecting roads to ignore")
	return cmd
}
