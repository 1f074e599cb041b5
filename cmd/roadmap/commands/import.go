package commands

import (
	"fmt"

	"github.com/DrSkyle/roadmap/pkg/mapfile"
	"github.com/DrSkyle/roadmap/pkg/snapshot"
	"github.com/spf13/cobra"
)

func newImportCmd(a *app) *cobra.Command {
	var merge bool

	cmd := &cobra.Command{
		Use:   "import FILE.hcl",
		Short: "Replace (or merge into) the stored map from an HCL file",
		Long: `Load cities and roads from an HCL map file:

  city "A" {
    x = 250
    y = canvas.height / 3
  }

  road "A" "B" {
    weight = 8
  }`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			m, err := mapfile.ParseFile(args[0], mapfile.Canvas{
				Width:  a.cfg.Canvas.Width,
				Height: a.cfg.Canvas.Height,
			})
			if err != nil {
				return err
			}

			repo, store, err := a.loadMap(ctx)
			if err != nil {
				return err
			}
			st, err := mapfile.Import(store, m, merge)
			if err != nil {
				return fmt.Errorf("import %s: %w", args[0], err)
			}
			if err := repo.Save(ctx, snapshot.Capture(store)); err != nil {
				return err
			}

			a.logger.Info("Map imported", "file", args[0], "merge", merge)
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %s: %d cities added, %d moved, %d roads added, %d reweighted\n",
				args[0], st.CitiesAdded, st.CitiesMoved, st.RoadsAdded, st.RoadsReweight)
			return nil
		},
	}
	cmd.Flags().BoolVar(&merge, "merge", false, "Merge into the stored map instead of replacing it")
	return cmd
}
