package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/DrSkyle/roadmap/pkg/config"
	"github.com/DrSkyle/roadmap/pkg/graph"
	"github.com/DrSkyle/roadmap/pkg/snapshot"
	"github.com/DrSkyle/roadmap/pkg/storage"
	"github.com/DrSkyle/roadmap/pkg/telemetry"
	"github.com/DrSkyle/roadmap/pkg/version"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// app carries what every subcommand resolves in PersistentPreRunE.
type app struct {
	v       *viper.Viper
	cfgFile string

	cfg      config.Config
	logger   *slog.Logger
	shutdown telemetry.Shutdown

	// logOut receives log records; the TUI owns stdout.
	logOut io.Writer
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// NewRootCmd builds the command tree with its own viper instance.
func NewRootCmd() *cobra.Command {
	a := &app{v: viper.New(), logOut: os.Stderr}

	rootCmd := &cobra.Command{
		Use:   "roadmap",
		Short: "City & road map editor",
		Long: `roadmap - City & Road Map Editor

Draw cities, connect them with weighted roads, find shortest paths.`,
		Version:       version.Current,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd.Context())
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if a.shutdown == nil {
				return nil
			}
			return a.shutdown(context.WithoutCancel(cmd.Context()))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEdit(cmd, a)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "Config file (default $HOME/"+config.DefaultConfigName+")")
	flags.String("storage", "", "Storage URL: directory, file:// or s3://bucket/prefix")
	flags.String("log-level", "", "Log level (debug, info, warn, error)")
	flags.Bool("log-json", false, "Log as JSON")
	_ = a.v.BindPFlag("storage.url", flags.Lookup("storage"))
	_ = a.v.BindPFlag("log.level", flags.Lookup("log-level"))
	_ = a.v.BindPFlag("log.json", flags.Lookup("log-json"))

	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		renderFutureGlassHelp(cmd)
	})

	rootCmd.AddCommand(
		newEditCmd(a),
		newPathCmd(a),
		newExportCmd(a),
		newImportCmd(a),
		newSeedCmd(a),
		newStatsCmd(a),
		newVersionCmd(),
	)
	return rootCmd
}

func (a *app) init(ctx context.Context) error {
	a.initConfig()

	cfg, err := config.Load(a.v)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = newLogger(a.logOut, cfg.Log)
	slog.SetDefault(a.logger)

	if ctx == nil {
		ctx = context.Background()
	}
	shutdown, err := telemetry.Init(ctx, telemetry.Options{
		ServiceName:    version.AppName,
		ServiceVersion: version.Current,
		Endpoint:       cfg.Telemetry.Endpoint,
		Disabled:       cfg.Telemetry.Disabled,
	})
	if err != nil {
		a.logger.Warn("Telemetry disabled", "error", err)
		return nil
	}
	a.shutdown = shutdown
	return nil
}

func (a *app) initConfig() {
	if a.cfgFile != "" {
		a.v.SetConfigFile(a.cfgFile)
	} else if home, err := os.UserHomeDir(); err == nil {
		a.v.SetConfigFile(filepath.Join(home, config.DefaultConfigName))
		a.v.SetConfigType("yaml")
	}
	a.v.SetEnvPrefix("ROADMAP")
	a.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	a.v.AutomaticEnv()
	// A missing config file is fine; everything has a default.
	_ = a.v.ReadInConfig()
}

func newLogger(w io.Writer, c config.LogConfig) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Level)); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if c.JSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// openRepository resolves the configured storage backend.
func (a *app) openRepository(ctx context.Context) (*snapshot.Repository, error) {
	blobs, err := storage.Open(ctx, a.cfg.Storage.URL, storage.OpenOptions{
		Region:   a.cfg.Storage.Region,
		Endpoint: a.cfg.Storage.Endpoint,
	})
	if err != nil {
		return nil, err
	}
	return snapshot.NewRepository(blobs,
		snapshot.WithKey(a.cfg.Storage.Key),
		snapshot.WithLogger(a.logger),
	), nil
}

// loadMap opens the repository and reads the stored map. A missing or
// unreadable record yields an empty map.
func (a *app) loadMap(ctx context.Context) (*snapshot.Repository, *graph.MemoryStore, error) {
	repo, err := a.openRepository(ctx)
	if err != nil {
		return nil, nil, err
	}
	store := graph.NewMemoryStore()
	if _, err := repo.LoadInto(ctx, store); err != nil {
		return nil, nil, fmt.Errorf("failed to load map: %w", err)
	}
	return repo, store, nil
}
