package config

import "time"

// Default values for configuration fields.
const (
	// Statute defaults
	DefaultStatutesPath  = "./statutes.yaml"
	DefaultStatutesWatch = false

	// Audit defaults
	DefaultAuditBackend           = "sqlite"
	DefaultAuditSQLitePath        = "data/audit.db"
	DefaultAuditSQLiteMaxOpen     = 10
	DefaultAuditSQLiteMaxIdle     = 5
	DefaultAuditSQLiteWALMode     = true
	DefaultAuditSQLiteBusyTimeout = 5 * time.Second
	DefaultAnchorEnabled          = false
	DefaultAnchorPath             = "data/anchors.db"

	// Integrity defaults
	DefaultIntegrityEnabled  = true
	DefaultIntegritySchedule = "0 * * * *"

	// Telemetry defaults
	DefaultLoggingLevel      = "info"
	DefaultLoggingFormat     = "json"
	DefaultMetricsEnabled    = true
	DefaultMetricsListenAddr = "127.0.0.1:9464"
	DefaultMetricsPath       = "/metrics"
)

// ApplyDefaults fills in default values for any configuration fields that
// were not set. It modifies the configuration in place.
func ApplyDefaults(cfg *Config) {
	if cfg.Statutes.Path == "" {
		cfg.Statutes.Path = DefaultStatutesPath
	}

	if cfg.Audit.Backend == "" {
		cfg.Audit.Backend = DefaultAuditBackend
	}
	if cfg.Audit.SQLite.Path == "" {
		cfg.Audit.SQLite.Path = DefaultAuditSQLitePath
	}
	if cfg.Audit.SQLite.MaxOpenConns == 0 {
		cfg.Audit.SQLite.MaxOpenConns = DefaultAuditSQLiteMaxOpen
	}
	if cfg.Audit.SQLite.MaxIdleConns == 0 {
		cfg.Audit.SQLite.MaxIdleConns = DefaultAuditSQLiteMaxIdle
	}
	if cfg.Audit.SQLite.BusyTimeout == 0 {
		cfg.Audit.SQLite.BusyTimeout = DefaultAuditSQLiteBusyTimeout
	}
	if cfg.Audit.Anchor.Path == "" {
		cfg.Audit.Anchor.Path = DefaultAnchorPath
	}

	if cfg.Integrity.Schedule == "" {
		cfg.Integrity.Schedule = DefaultIntegritySchedule
	}

	if cfg.Telemetry.Logging.Level == "" {
		cfg.Telemetry.Logging.Level = DefaultLoggingLevel
	}
	if cfg.Telemetry.Logging.Format == "" {
		cfg.Telemetry.Logging.Format = DefaultLoggingFormat
	}
	if cfg.Telemetry.Metrics.ListenAddress == "" {
		cfg.Telemetry.Metrics.ListenAddress = DefaultMetricsListenAddr
	}
	if cfg.Telemetry.Metrics.Path == "" {
		cfg.Telemetry.Metrics.Path = DefaultMetricsPath
	}
}

// NewDefaultConfig returns a configuration populated entirely with defaults.
func NewDefaultConfig() *Config {
	cfg := &Config{
		Statutes: StatutesConfig{
			Watch: DefaultStatutesWatch,
		},
		Audit: AuditConfig{
			SQLite: SQLiteConfig{
				WALMode: DefaultAuditSQLiteWALMode,
			},
			Anchor: AnchorConfig{
				Enabled: DefaultAnchorEnabled,
			},
		},
		Integrity: IntegrityConfig{
			Enabled: DefaultIntegrityEnabled,
		},
		Telemetry: TelemetryConfig{
			Metrics: MetricsConfig{
				Enabled: DefaultMetricsEnabled,
			},
		},
	}
	ApplyDefaults(cfg)
	return cfg
}
