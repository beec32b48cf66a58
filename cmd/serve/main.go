package main

import (
	"flag"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/quietbooks/ledgersync/internal/api"
	"github.com/quietbooks/ledgersync/internal/application/reconcile"
	"github.com/quietbooks/ledgersync/internal/infrastructure/config"
	"github.com/quietbooks/ledgersync/internal/infrastructure/logging"
	"github.com/quietbooks/ledgersync/internal/infrastructure/storage"
)

func main() {
	var (
		configFile = flag.String("config", "", "Configuration file path")
		port       = flag.Int("port", 0, "Listen port (overrides config)")
	)
	flag.Parse()

	cfg := loadConfig(*configFile)
	if *port != 0 {
		cfg.Server.Port = *port
	}

	logger := logging.NewLoggerWithSystem(cfg.Observability.Logging, "serve")

	var store *storage.Store
	if cfg.Storage.DatabasePath != "" {
		var err error
		store, err = storage.NewStore(cfg.Storage.DatabasePath)
		if err != nil {
			logger.Warn("Failed to open run history, run endpoints disabled", "error", err)
			store = nil
		} else {
			defer store.Close()
		}
	}

	pipeline := reconcile.New(cfg, store, logger)

	snapshotPath := cfg.Output.SnapshotFile
	if !filepath.IsAbs(snapshotPath) {
		snapshotPath = filepath.Join(cfg.Workspace.Dir, snapshotPath)
	}

	server := api.NewServer(cfg.Server, store, pipeline, snapshotPath, logger)
	if err := server.Run(); err != nil {
		logger.Error("Server failed", "error", err)
		os.Exit(1)
	}
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
