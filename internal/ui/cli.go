// Package ui implements the horario command line.
package ui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/javiermolinar/horario/internal/backend"
	"github.com/javiermolinar/horario/internal/config"
	"github.com/javiermolinar/horario/internal/db"
	"github.com/javiermolinar/horario/internal/logging"
	"github.com/javiermolinar/horario/internal/schedule"
	"github.com/javiermolinar/horario/internal/tui"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// App holds the CLI application state.
type App struct {
	config     *config.Config
	root       *cobra.Command
	logger     *zap.Logger
	cache      *db.SQLite
	src        schedule.Source // overrides the configured source when set
	configPath string
	debug      bool // Enable debug logging
	offline    bool // Read the cached snapshot instead of the backend
}

// NewApp creates a new CLI application with the given config.
func NewApp(cfg *config.Config) *App {
	a := &App{config: cfg, logger: zap.NewNop()}

	a.root = &cobra.Command{
		Use:   "horario",
		Short: "A terminal viewer for school timetables",
		Long: `Horario shows the weekly timetable computed by the scheduling backend.

It lays the week out as a grid of hours by days, filters it by group and
teacher, keeps an offline copy in SQLite, and can ask an LLM to review it.`,
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return a.setup()
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			src, err := a.source()
			if err != nil {
				return err
			}
			return tui.Run(src, a.config, tui.WithLogger(a.logger))
		},
	}

	flags := a.root.PersistentFlags()
	flags.BoolVar(&a.debug, "debug", false, "Enable debug logging (logs to "+logging.DebugLogPath+")")
	flags.BoolVar(&a.offline, "offline", false, "Read the cached snapshot instead of the backend")
	flags.StringVar(&a.configPath, "config", "", "Config file (default "+config.DefaultConfigPath()+")")

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.configCmd())
	a.root.AddCommand(a.gridCmd())
	a.root.AddCommand(a.listCmd())
	a.root.AddCommand(a.teachersCmd())
	a.root.AddCommand(a.groupsCmd())
	a.root.AddCommand(a.syncCmd())
	a.root.AddCommand(a.importCmd())
	a.root.AddCommand(a.insightCmd())

	return a
}

// setup loads an explicit config file and builds the logger.
func (a *App) setup() error {
	if a.configPath != "" {
		cfg, err := config.LoadFrom(a.configPath)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		a.config = cfg
	}

	logger, err := logging.New(logging.Options{
		Level: a.config.Log.Level,
		File:  a.config.Log.File,
		Debug: a.debug,
	})
	if err != nil {
		return err
	}
	a.logger = logger
	a.logger.Debug("starting", zap.String("version", Version), zap.Bool("offline", a.offline))
	return nil
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "horario %s (commit: %s)\n", Version, Commit)
		},
	}
}

// ensureCache opens the snapshot cache on first use.
func (a *App) ensureCache() error {
	if a.cache != nil {
		return nil
	}
	if !a.config.Cache.Enabled {
		return errors.New("cache is disabled, set cache.enabled = true")
	}

	cache, err := db.New(a.config.Cache.DBPath, db.WithLogger(a.logger.Named("cache")))
	if err != nil {
		return fmt.Errorf("opening cache: %w", err)
	}
	a.cache = cache
	return nil
}

// source returns where schedules are read from: the cache when offline,
// otherwise the backend.
func (a *App) source() (schedule.Source, error) {
	if a.src != nil {
		return a.src, nil
	}
	if a.offline {
		if err := a.ensureCache(); err != nil {
			return nil, err
		}
		return a.cache, nil
	}
	return a.backend()
}

func (a *App) backend() (*backend.Client, error) {
	timeout, err := a.config.BackendTimeout()
	if err != nil {
		return nil, err
	}
	return backend.New(a.config.Backend.BaseURL,
		backend.WithTimeout(timeout),
		backend.WithLogger(a.logger),
	)
}

// fetchContext bounds a whole fetch, groups and view included.
func (a *App) fetchContext() (context.Context, context.CancelFunc) {
	timeout, err := a.config.BackendTimeout()
	if err != nil || timeout <= 0 {
		return context.WithCancel(context.Background())
	}
	return context.WithTimeout(context.Background(), 2*timeout+time.Second)
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.root.Execute()
}

// Close releases the cache and flushes the logger.
func (a *App) Close() error {
	_ = a.logger.Sync()
	if a.cache == nil {
		return nil
	}
	err := a.cache.Close()
	a.cache = nil
	return err
}
