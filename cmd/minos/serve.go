package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"tribunal-hq/minos/pkg/audit"
	"tribunal-hq/minos/pkg/audit/anchor"
	"tribunal-hq/minos/pkg/audit/integrity"
	"tribunal-hq/minos/pkg/reasoning"
	"tribunal-hq/minos/pkg/statute/registry"
	"tribunal-hq/minos/pkg/statute/source"
	"tribunal-hq/minos/pkg/telemetry/metrics"
)

var serveFlags struct {
	statutesPath string
	logLevel     string
	dryRun       bool
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Minos service",
	Long: `Start the Minos service with the specified configuration.

The service loads statutes into the registry, rebuilds the audit chain
from storage, runs scheduled integrity sweeps, and serves Prometheus
metrics. With statute watching enabled, statute files are reloaded on
change.

Examples:
  # Start with default config
  minos serve

  # Start with custom config
  minos serve --config /etc/minos/config.yaml

  # Override the statute path
  minos serve --statutes /etc/minos/statutes/

  # Validate config without starting
  minos serve --dry-run`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveFlags.statutesPath, "statutes", "", "override statute file or directory path")
	serveCmd.Flags().StringVar(&serveFlags.logLevel, "log-level", "", "override log level (debug, info, warn, error)")
	serveCmd.Flags().BoolVar(&serveFlags.dryRun, "dry-run", false, "validate config without starting the service")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if serveFlags.statutesPath != "" {
		cfg.Statutes.Path = serveFlags.statutesPath
	}
	if serveFlags.logLevel != "" {
		cfg.Telemetry.Logging.Level = serveFlags.logLevel
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}

	if serveFlags.dryRun {
		fmt.Println("configuration is valid")
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	collector := metrics.NewCollector(nil)

	rec, store, err := openRecorder(ctx, cfg, collector.Ledger(), logger)
	if err != nil {
		return err
	}
	defer store.Close()

	reasoner := reasoning.NewReasoner(registry.New(logger), rec, collector.Engine(), logger)

	statuteSource := source.NewFileSource(cfg.Statutes.Path, logger)
	if _, err := reasoner.LoadFrom(ctx, statuteSource, audit.SystemActor()); err != nil {
		return err
	}

	// Statute hot-reload
	if cfg.Statutes.Watch {
		watcher, err := source.NewFileWatcher(source.DefaultFileWatcherConfig(cfg.Statutes.Path), logger)
		if err != nil {
			return err
		}
		defer watcher.Stop()

		go func() {
			err := watcher.Watch(ctx, func() error {
				_, err := reasoner.LoadFrom(ctx, statuteSource, audit.SystemActor())
				return err
			})
			if err != nil {
				logger.Error("statute watcher exited", "error", err)
			}
		}()
	}

	// Chain anchoring
	var anchors *anchor.SQLiteStore
	if cfg.Audit.Anchor.Enabled {
		anchors, err = anchor.NewSQLiteStore(cfg.Audit.Anchor.Path, logger)
		if err != nil {
			return fmt.Errorf("failed to open anchor store: %w", err)
		}
		defer anchors.Close()
	}

	// Integrity sweeps
	if cfg.Integrity.Enabled {
		sweeper := integrity.NewSweeper(rec, anchors, collector.Ledger(), logger)

		// Sweep once at startup so tampering surfaces immediately.
		result, err := sweeper.Sweep(ctx)
		if err != nil {
			return err
		}
		if !result.Valid {
			return fmt.Errorf("audit chain failed startup integrity sweep at record %d: %s",
				result.Verification.FirstBrokenIndex, result.Verification.Reason)
		}

		scheduler := integrity.NewScheduler(sweeper, cfg.Integrity.Schedule, logger)
		if err := scheduler.Start(ctx); err != nil {
			return err
		}
		defer scheduler.Stop()
	}

	// Metrics endpoint
	var metricsSrv *http.Server
	if cfg.Telemetry.Metrics.Enabled {
		mux := http.NewServeMux()
		mux.Handle(cfg.Telemetry.Metrics.Path, collector.Handler())
		metricsSrv = &http.Server{
			Addr:    cfg.Telemetry.Metrics.ListenAddress,
			Handler: mux,
		}
		go func() {
			logger.Info("metrics server listening",
				"address", cfg.Telemetry.Metrics.ListenAddress,
				"path", cfg.Telemetry.Metrics.Path,
			)
			if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("metrics server failed", "error", err)
			}
		}()
	}

	logger.Info("minos started",
		"statutes", reasoner.Registry().Len(),
		"chain_length", rec.Ledger().Len(),
		"audit_backend", cfg.Audit.Backend,
	)

	<-ctx.Done()
	logger.Info("shutting down")

	if metricsSrv != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
			logger.Error("metrics server shutdown failed", "error", err)
		}
	}

	return nil
}
