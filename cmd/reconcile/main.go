package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/quietbooks/ledgersync/internal/application/reconcile"
	"github.com/quietbooks/ledgersync/internal/cli"
	"github.com/quietbooks/ledgersync/internal/infrastructure/config"
	"github.com/quietbooks/ledgersync/internal/infrastructure/logging"
	"github.com/quietbooks/ledgersync/internal/infrastructure/storage"
)

func main() {
	var (
		configFile = flag.String("config", "", "Configuration file path")
		dir        = flag.String("dir", "", "Working directory (overrides config)")
		verbose    = flag.Bool("verbose", false, "Enable verbose logging")
	)
	flag.Parse()

	cfg := loadConfig(*configFile)
	if *dir != "" {
		cfg.Workspace.Dir = *dir
	}
	if *verbose {
		cfg.Observability.Logging.Level = "debug"
	}

	logger := logging.NewLoggerWithSystem(cfg.Observability.Logging, "reconcile")

	var store *storage.Store
	if cfg.Storage.DatabasePath != "" {
		var err error
		store, err = storage.NewStore(cfg.Storage.DatabasePath)
		if err != nil {
			// Run history is best effort; the reconcile still runs.
			logger.Warn("Failed to open run history, continuing without it", "error", err)
		} else {
			defer store.Close()
		}
	}

	logger.Info("Starting reconciliation",
		slog.String("dir", cfg.Workspace.Dir),
		slog.String("ledger_prefix", cfg.Workspace.LedgerPrefix),
		slog.String("export_prefix", cfg.Workspace.ExportPrefix),
	)

	pipeline := reconcile.New(cfg, store, logger)
	res, err := pipeline.Run(context.Background())
	if err != nil {
		cli.PrintRunError(err, cfg.Output.RunLogFile)
		os.Exit(1)
	}

	cli.PrintRunSummary(res)
}

func loadConfig(configFile string) *config.Config {
	if configFile == "" {
		return config.LoadOrEnv()
	}
	cfg, err := config.Load(configFile)
	if err != nil {
		slog.Error("Failed to load config file", "file", configFile, "error", err)
		os.Exit(1)
	}
	return cfg
}
