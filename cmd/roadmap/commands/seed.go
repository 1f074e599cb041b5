package commands

import (
	"fmt"

	"github.com/DrSkyle/roadmap/pkg/graph"
	"github.com/DrSkyle/roadmap/pkg/snapshot"
	"github.com/spf13/cobra"
)

func newSeedCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Replace the stored map with the sample map",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			repo, err := a.openRepository(ctx)
			if err != nil {
				return err
			}

			store := graph.NewMemoryStore()
			if err := graph.Seed(store); err != nil {
				return err
			}
			if err := repo.Save(ctx, snapshot.Capture(store)); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Sample map saved: %d cities, %d roads\n", store.NodeCount(), store.EdgeCount())
			return nil
		},
	}
}
