package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"tribunal-hq/minos/pkg/config"
)

func TestNewWithWriter_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewWithWriter(config.LoggingConfig{Level: "info", Format: "json"}, &buf)
	if err != nil {
		t.Fatalf("NewWithWriter returned error: %v", err)
	}

	logger.Info("statute evaluated", "statute_id", "minpo-709")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log output is not JSON: %v\noutput: %s", err, buf.String())
	}
	if entry["msg"] != "statute evaluated" {
		t.Errorf("msg = %v", entry["msg"])
	}
	if entry["statute_id"] != "minpo-709" {
		t.Errorf("statute_id = %v", entry["statute_id"])
	}
}

func TestNewWithWriter_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewWithWriter(config.LoggingConfig{Level: "debug", Format: "text"}, &buf)
	if err != nil {
		t.Fatalf("NewWithWriter returned error: %v", err)
	}

	logger.Debug("registry updated")
	if !strings.Contains(buf.String(), "registry updated") {
		t.Errorf("text output missing message: %s", buf.String())
	}
}

func TestNewWithWriter_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewWithWriter(config.LoggingConfig{Level: "warn", Format: "json"}, &buf)
	if err != nil {
		t.Fatalf("NewWithWriter returned error: %v", err)
	}

	logger.Info("dropped")
	if buf.Len() != 0 {
		t.Errorf("info message logged at warn level: %s", buf.String())
	}

	logger.Warn("kept")
	if buf.Len() == 0 {
		t.Error("warn message not logged at warn level")
	}
}

func TestNewWithWriter_InvalidLevel(t *testing.T) {
	if _, err := NewWithWriter(config.LoggingConfig{Level: "verbose"}, &bytes.Buffer{}); err == nil {
		t.Fatal("expected error for invalid level")
	}
}

func TestParseLevel(t *testing.T) {
	cases := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"warning", slog.LevelWarn},
		{"ERROR", slog.LevelError},
	}
	for _, tc := range cases {
		got, err := parseLevel(tc.in)
		if err != nil {
			t.Errorf("parseLevel(%q) returned error: %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
