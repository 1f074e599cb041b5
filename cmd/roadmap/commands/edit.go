package commands

import (
	"fmt"

	"github.com/DrSkyle/roadmap/pkg/editor"
	"github.com/DrSkyle/roadmap/pkg/report"
	"github.com/DrSkyle/roadmap/pkg/tui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
)

func newEditCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "edit",
		Short: "Open the interactive map editor",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEdit(cmd, a)
		},
	}
}

func runEdit(cmd *cobra.Command, a *app) error {
	ctx := cmd.Context()
	repo, store, err := a.loadMap(ctx)
	if err != nil {
		return err
	}

	format, err := report.ParseFormat(a.cfg.Export.Format)
	if err != nil {
		return err
	}

	model := tui.NewModel(ctx, store, tui.Options{
		Canvas:       a.cfg.Canvas,
		ExportDir:    a.cfg.Export.Dir,
		ExportFormat: format,
		Persister:    repo,
		Logger:       a.logger,
		EditorOptions: []editor.Option{
			editor.WithMeter(otel.Meter("roadmap/editor")),
		},
	})

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("editor exited: %w", err)
	}
	return nil
}
