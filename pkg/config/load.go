package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// LoadConfig loads configuration from a YAML file at the specified path.
// It applies default values, validates the configuration, and returns any
// errors.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// LoadConfigWithEnvOverrides loads configuration from a YAML file and applies
// environment variable overrides. Environment variables follow the naming
// convention MINOS_SECTION_FIELD (e.g., MINOS_STATUTES_PATH) and always take
// precedence over file-based configuration.
func LoadConfigWithEnvOverrides(path string) (*Config, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed after environment overrides: %w", err)
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v, ok := os.LookupEnv("MINOS_STATUTES_PATH"); ok {
		cfg.Statutes.Path = v
	}
	if v, ok := lookupBool("MINOS_STATUTES_WATCH"); ok {
		cfg.Statutes.Watch = v
	}

	if v, ok := os.LookupEnv("MINOS_AUDIT_BACKEND"); ok {
		cfg.Audit.Backend = v
	}
	if v, ok := os.LookupEnv("MINOS_AUDIT_SQLITE_PATH"); ok {
		cfg.Audit.SQLite.Path = v
	}
	if v, ok := lookupDuration("MINOS_AUDIT_SQLITE_BUSY_TIMEOUT"); ok {
		cfg.Audit.SQLite.BusyTimeout = v
	}
	if v, ok := lookupBool("MINOS_AUDIT_ANCHOR_ENABLED"); ok {
		cfg.Audit.Anchor.Enabled = v
	}
	if v, ok := os.LookupEnv("MINOS_AUDIT_ANCHOR_PATH"); ok {
		cfg.Audit.Anchor.Path = v
	}

	if v, ok := lookupBool("MINOS_INTEGRITY_ENABLED"); ok {
		cfg.Integrity.Enabled = v
	}
	if v, ok := os.LookupEnv("MINOS_INTEGRITY_SCHEDULE"); ok {
		cfg.Integrity.Schedule = v
	}

	if v, ok := os.LookupEnv("MINOS_LOGGING_LEVEL"); ok {
		cfg.Telemetry.Logging.Level = v
	}
	if v, ok := os.LookupEnv("MINOS_LOGGING_FORMAT"); ok {
		cfg.Telemetry.Logging.Format = v
	}
	if v, ok := lookupBool("MINOS_METRICS_ENABLED"); ok {
		cfg.Telemetry.Metrics.Enabled = v
	}
	if v, ok := os.LookupEnv("MINOS_METRICS_LISTEN_ADDRESS"); ok {
		cfg.Telemetry.Metrics.ListenAddress = v
	}
}

func lookupBool(key string) (bool, bool) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return false, false
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, false
	}
	return v, true
}

func lookupDuration(key string) (time.Duration, bool) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return 0, false
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}
