package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"

	"github.com/heartmarshall/vocabcoach/internal/app"
	"github.com/heartmarshall/vocabcoach/internal/config"
)

// deps are the process-level constructors the commands share.
type deps struct {
	loadConfig  func(path string) (*config.Config, error)
	newLogger   func(config.LogConfig) *slog.Logger
	openStorage func(ctx context.Context, cfg *config.Config, log *slog.Logger) (*app.Storage, error)
	clock       clockwork.Clock
}

func defaultDeps() deps {
	return deps{
		loadConfig:  config.LoadFrom,
		newLogger:   app.NewLogger,
		openStorage: app.OpenStorage,
		clock:       clockwork.NewRealClock(),
	}
}

// env is what a command runs against.
type env struct {
	cfg     *config.Config
	log     *slog.Logger
	storage *app.Storage
}

// configPath is bound to the persistent --config flag.
var configPath string

func (d deps) open(ctx context.Context) (*env, error) {
	path := configPath
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	cfg, err := d.loadConfig(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	log := d.newLogger(cfg.Log)

	storage, err := d.openStorage(ctx, cfg, log)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}
	return &env{cfg: cfg, log: log, storage: storage}, nil
}

func newRootCmd(d deps) *cobra.Command {
	root := &cobra.Command{
		Use:           "vocabctl",
		Short:         "Administer vocabulary coach profiles",
		Version:       app.BuildVersion(),
		SilenceUsage:  true,
	}

	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default $CONFIG_PATH or ./config.yaml)")

	root.AddCommand(
		newProfilesCmd(d),
		newImportCmd(d),
		newMigrateCmd(d),
		newStatsCmd(d),
	)
	return root
}
