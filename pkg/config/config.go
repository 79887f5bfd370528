package config

import "time"

// Config is the root configuration structure for Minos.
// It contains all configuration sections for statute loading, the
// evaluation engine, the audit ledger, integrity sweeps, and telemetry.
type Config struct {
	// Statutes contains configuration for the statute source including
	// file location and watch mode.
	Statutes StatutesConfig `yaml:"statutes"`

	// Audit contains configuration for audit record persistence including
	// backend selection and anchoring settings.
	Audit AuditConfig `yaml:"audit"`

	// Integrity contains configuration for scheduled chain verification
	// sweeps over the audit ledger.
	Integrity IntegrityConfig `yaml:"integrity"`

	// Telemetry contains configuration for observability including logging
	// and metrics.
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// StatutesConfig contains configuration for loading statute definitions.
type StatutesConfig struct {
	// Path is the filesystem path to a statute YAML file or a directory
	// of statute YAML files.
	// Default: "./statutes.yaml"
	Path string `yaml:"path"`

	// Watch enables filesystem watching for statute changes. When enabled,
	// modified statute files are reloaded into the registry automatically.
	// Default: false
	Watch bool `yaml:"watch"`
}

// AuditConfig contains configuration for audit record persistence.
type AuditConfig struct {
	// Backend selects the audit storage backend.
	// Valid values: "memory", "sqlite".
	// Default: "sqlite"
	Backend string `yaml:"backend"`

	// SQLite contains SQLite-specific storage configuration.
	// Only used when Backend is "sqlite".
	SQLite SQLiteConfig `yaml:"sqlite"`

	// Anchor contains configuration for the chain anchor store, which
	// periodically checkpoints the ledger tip hash in a separate database.
	Anchor AnchorConfig `yaml:"anchor"`
}

// SQLiteConfig contains configuration for SQLite audit storage.
type SQLiteConfig struct {
	// Path is the filesystem path to the SQLite database file.
	// Default: "data/audit.db"
	Path string `yaml:"path"`

	// MaxOpenConns is the maximum number of open database connections.
	// Default: 10
	MaxOpenConns int `yaml:"max_open_conns"`

	// MaxIdleConns is the maximum number of idle database connections.
	// Default: 5
	MaxIdleConns int `yaml:"max_idle_conns"`

	// WALMode enables SQLite write-ahead logging.
	// Default: true
	WALMode bool `yaml:"wal_mode"`

	// BusyTimeout is how long SQLite waits on a locked database before
	// returning SQLITE_BUSY.
	// Default: 5s
	BusyTimeout time.Duration `yaml:"busy_timeout"`
}

// AnchorConfig contains configuration for the chain anchor store.
type AnchorConfig struct {
	// Enabled controls whether tip hashes are checkpointed after
	// integrity sweeps.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// Path is the filesystem path to the anchor database file. The anchor
	// database is kept separate from the audit database so that tampering
	// with one does not silently adjust the other.
	// Default: "data/anchors.db"
	Path string `yaml:"path"`
}

// IntegrityConfig contains configuration for scheduled chain verification.
type IntegrityConfig struct {
	// Enabled controls whether the integrity sweeper runs.
	// Default: true
	Enabled bool `yaml:"enabled"`

	// Schedule is a cron expression controlling when verification sweeps
	// run (standard 5-field cron syntax).
	// Default: "0 * * * *" (hourly)
	Schedule string `yaml:"schedule"`
}

// TelemetryConfig contains configuration for observability.
type TelemetryConfig struct {
	// Logging contains structured logging configuration.
	Logging LoggingConfig `yaml:"logging"`

	// Metrics contains Prometheus metrics configuration.
	Metrics MetricsConfig `yaml:"metrics"`
}

// LoggingConfig contains structured logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level.
	// Valid values: "debug", "info", "warn", "error".
	// Default: "info"
	Level string `yaml:"level"`

	// Format selects the log output format.
	// Valid values: "json", "text".
	// Default: "json"
	Format string `yaml:"format"`

	// AddSource includes the source file and line in log records.
	// Default: false
	AddSource bool `yaml:"add_source"`
}

// MetricsConfig contains Prometheus metrics configuration.
type MetricsConfig struct {
	// Enabled controls whether the metrics endpoint is served.
	// Default: true
	Enabled bool `yaml:"enabled"`

	// ListenAddress is the address and port for the metrics server.
	// Format: "host:port".
	// Default: "127.0.0.1:9464"
	ListenAddress string `yaml:"listen_address"`

	// Path is the HTTP path for the Prometheus scrape endpoint.
	// Default: "/metrics"
	Path string `yaml:"path"`
}
