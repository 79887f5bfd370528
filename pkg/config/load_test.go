package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	path := writeConfigFile(t, "{}\n")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}

	if cfg.Statutes.Path != DefaultStatutesPath {
		t.Errorf("statutes.path = %q, want %q", cfg.Statutes.Path, DefaultStatutesPath)
	}
	if cfg.Audit.Backend != DefaultAuditBackend {
		t.Errorf("audit.backend = %q, want %q", cfg.Audit.Backend, DefaultAuditBackend)
	}
	if cfg.Audit.SQLite.BusyTimeout != DefaultAuditSQLiteBusyTimeout {
		t.Errorf("audit.sqlite.busy_timeout = %v, want %v", cfg.Audit.SQLite.BusyTimeout, DefaultAuditSQLiteBusyTimeout)
	}
	if cfg.Integrity.Schedule != DefaultIntegritySchedule {
		t.Errorf("integrity.schedule = %q, want %q", cfg.Integrity.Schedule, DefaultIntegritySchedule)
	}
	if cfg.Telemetry.Logging.Level != DefaultLoggingLevel {
		t.Errorf("telemetry.logging.level = %q, want %q", cfg.Telemetry.Logging.Level, DefaultLoggingLevel)
	}
}

func TestLoadConfig_ExplicitValues(t *testing.T) {
	path := writeConfigFile(t, `
statutes:
  path: /etc/minos/statutes
  watch: true
audit:
  backend: memory
integrity:
  enabled: true
  schedule: "*/5 * * * *"
telemetry:
  logging:
    level: debug
    format: text
  metrics:
    enabled: false
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}

	if cfg.Statutes.Path != "/etc/minos/statutes" {
		t.Errorf("statutes.path = %q", cfg.Statutes.Path)
	}
	if !cfg.Statutes.Watch {
		t.Error("statutes.watch = false, want true")
	}
	if cfg.Audit.Backend != "memory" {
		t.Errorf("audit.backend = %q, want memory", cfg.Audit.Backend)
	}
	if cfg.Integrity.Schedule != "*/5 * * * *" {
		t.Errorf("integrity.schedule = %q", cfg.Integrity.Schedule)
	}
	if cfg.Telemetry.Logging.Level != "debug" {
		t.Errorf("telemetry.logging.level = %q, want debug", cfg.Telemetry.Logging.Level)
	}
	if cfg.Telemetry.Metrics.Enabled {
		t.Error("telemetry.metrics.enabled = true, want false")
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	path := writeConfigFile(t, "statutes: [unclosed\n")
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("expected error for invalid YAML")
	}
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Audit.Backend = "postgres"
	cfg.Integrity.Schedule = "not a cron expression"
	cfg.Telemetry.Logging.Level = "verbose"

	err := Validate(cfg)
	if err == nil {
		t.Fatal("expected validation error")
	}

	verr, ok := err.(ValidationError)
	if !ok {
		t.Fatalf("expected ValidationError, got %T", err)
	}
	if len(verr.Errors) != 3 {
		t.Fatalf("expected 3 field errors, got %d: %v", len(verr.Errors), verr)
	}

	msg := verr.Error()
	for _, field := range []string{"audit.backend", "integrity.schedule", "telemetry.logging.level"} {
		if !strings.Contains(msg, field) {
			t.Errorf("error message missing field %q: %s", field, msg)
		}
	}
}

func TestValidate_AnchorRequiresPath(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Audit.Anchor.Enabled = true
	cfg.Audit.Anchor.Path = ""

	err := Validate(cfg)
	if err == nil {
		t.Fatal("expected validation error for empty anchor path")
	}
}

func TestLoadConfigWithEnvOverrides(t *testing.T) {
	path := writeConfigFile(t, `
statutes:
  path: /etc/minos/statutes
audit:
  backend: sqlite
`)

	t.Setenv("MINOS_STATUTES_PATH", "/var/lib/minos/statutes")
	t.Setenv("MINOS_AUDIT_BACKEND", "memory")
	t.Setenv("MINOS_STATUTES_WATCH", "true")
	t.Setenv("MINOS_AUDIT_SQLITE_BUSY_TIMEOUT", "10s")

	cfg, err := LoadConfigWithEnvOverrides(path)
	if err != nil {
		t.Fatalf("LoadConfigWithEnvOverrides returned error: %v", err)
	}

	if cfg.Statutes.Path != "/var/lib/minos/statutes" {
		t.Errorf("statutes.path = %q", cfg.Statutes.Path)
	}
	if cfg.Audit.Backend != "memory" {
		t.Errorf("audit.backend = %q, want memory", cfg.Audit.Backend)
	}
	if !cfg.Statutes.Watch {
		t.Error("statutes.watch = false, want true")
	}
	if cfg.Audit.SQLite.BusyTimeout != 10*time.Second {
		t.Errorf("audit.sqlite.busy_timeout = %v, want 10s", cfg.Audit.SQLite.BusyTimeout)
	}
}
