package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"tribunal-hq/minos/pkg/audit/recorder"
	"tribunal-hq/minos/pkg/audit/storage"
	"tribunal-hq/minos/pkg/config"
	"tribunal-hq/minos/pkg/telemetry/logging"
	"tribunal-hq/minos/pkg/telemetry/metrics"
)

var (
	// Global flags
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "minos",
	Short: "Minos - statute evaluation engine with a tamper-evident audit ledger",
	Long: `Minos evaluates legal rules (statutes) against typed fact contexts and
records every decision on an append-only, hash-chained audit ledger.

It provides:
  - Three-way statute evaluation: deterministic, requires-discretion, or
    evaluation error on missing facts
  - A statute registry loaded from YAML files with optional hot-reload
  - A SHA-256 hash-chained audit ledger with tamper detection
  - Scheduled integrity sweeps with external tip anchoring
  - JSON and CSV export of the audit chain`,
	Version: Version,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "config.yaml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// loadConfig loads the configuration file with environment overrides,
// applying the --verbose flag on top.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfigWithEnvOverrides(cfgFile)
	if err != nil {
		return nil, err
	}
	if verbose {
		cfg.Telemetry.Logging.Level = "debug"
	}
	return cfg, nil
}

// newLogger builds the process logger from config.
func newLogger(cfg *config.Config) (*slog.Logger, error) {
	logger, err := logging.New(cfg.Telemetry.Logging)
	if err != nil {
		return nil, err
	}
	slog.SetDefault(logger)
	return logger, nil
}

// openStore opens the configured audit storage backend.
func openStore(cfg *config.Config, logger *slog.Logger) (storage.Store, error) {
	switch cfg.Audit.Backend {
	case "memory":
		return storage.NewMemoryStore(), nil
	case "sqlite":
		return storage.NewSQLiteStore(&storage.SQLiteConfig{
			Path:         cfg.Audit.SQLite.Path,
			MaxOpenConns: cfg.Audit.SQLite.MaxOpenConns,
			MaxIdleConns: cfg.Audit.SQLite.MaxIdleConns,
			WALMode:      cfg.Audit.SQLite.WALMode,
			BusyTimeout:  cfg.Audit.SQLite.BusyTimeout,
		}, logger)
	default:
		return nil, fmt.Errorf("unknown audit backend %q", cfg.Audit.Backend)
	}
}

// openRecorder opens the audit store and rebuilds the chain from it.
// The reloaded chain is verified before use.
func openRecorder(ctx context.Context, cfg *config.Config, m *metrics.LedgerMetrics, logger *slog.Logger) (*recorder.Recorder, storage.Store, error) {
	store, err := openStore(cfg, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open audit store: %w", err)
	}

	rec, err := recorder.Open(ctx, store, m, logger)
	if err != nil {
		store.Close()
		return nil, nil, fmt.Errorf("failed to open audit ledger: %w", err)
	}

	return rec, store, nil
}
