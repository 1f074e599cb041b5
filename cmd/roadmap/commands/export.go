package commands

import (
	"fmt"

	"github.com/DrSkyle/roadmap/pkg/report"
	"github.com/DrSkyle/roadmap/pkg/snapshot"
	"github.com/spf13/cobra"
)

func newExportCmd(a *app) *cobra.Command {
	var (
		format string
		outDir string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the stored map (json, yaml, csv, hcl)",
		Long: `Export the stored map to a file.

Default output: ./city-road-map.<format>`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if format == "" {
				format = a.cfg.Export.Format
			}
			if outDir == "" {
				outDir = a.cfg.Export.Dir
			}
			f, err := report.ParseFormat(format)
			if err != nil {
				return err
			}

			_, store, err := a.loadMap(cmd.Context())
			if err != nil {
				return err
			}
			path, err := report.WriteFile(outDir, snapshot.Capture(store), f)
			if err != nil {
				return fmt.Errorf("export failed: %w", err)
			}
			a.logger.Info("Map exported", "path", path, "format", f)
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d cities and %d roads to %s\n", store.NodeCount(), store.EdgeCount(), path)
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", "", "Export format (json, yaml, csv, hcl)")
	cmd.Flags().StringVar(&outDir, "out", "", "Output directory")
	return cmd
}
