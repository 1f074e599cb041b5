package commands

import (
	"fmt"
	"strings"

	"github.com/DrSkyle/roadmap/pkg/graph"
	"github.com/spf13/cobra"
)

func newStatsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Summarise the stored map",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, store, err := a.loadMap(cmd.Context())
			if err != nil {
				return err
			}
			st := graph.Analyze(store)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Cities:       %d\n", st.Cities)
			fmt.Fprintf(out, "Roads:        %d\n", st.Roads)
			fmt.Fprintf(out, "Components:   %d\n", st.Components)
			fmt.Fprintf(out, "Total weight: %s\n", graph.FormatWeight(st.TotalWeight))
			if len(st.Isolated) > 0 {
				names := make([]string, 0, len(st.Isolated))
				for _, id := range st.Isolated {
					if n, ok := store.Node(id); ok {
						names = append(names, n.Name)
					}
				}
				fmt.Fprintf(out, "Isolated:     %s\n", strings.Join(names, ", "))
			}
			return nil
		},
	}
}
