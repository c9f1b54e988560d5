package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig(t *testing.T) {
	cfg, err := loadConfig("", 9)
	if err != nil {
		t.Fatalf("loadConfig() error = %v", err)
	}
	if cfg.Seed != 9 || cfg.Tuning.World.Width != 200 {
		t.Errorf("loadConfig() = %+v, want seed 9 and default tuning", cfg)
	}

	path := filepath.Join(t.TempDir(), "tuning.yaml")
	if err := os.WriteFile(path, []byte("world:\n  width: 64\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err = loadConfig(path, 0)
	if err != nil {
		t.Fatalf("loadConfig(%s) error = %v", path, err)
	}
	if cfg.Tuning.World.Width != 64 {
		t.Errorf("World.Width = %d, want 64", cfg.Tuning.World.Width)
	}

	if _, err := loadConfig(filepath.Join(t.TempDir(), "nope.yaml"), 0); err == nil {
		t.Error("loadConfig() with a missing file should fail")
	}
}

func TestEnvInt64(t *testing.T) {
	t.Setenv("TILECRAFT_SEED", "1234")
	if got := envInt64("TILECRAFT_SEED"); got != 1234 {
		t.Errorf("envInt64() = %d, want 1234", got)
	}
	t.Setenv("TILECRAFT_SEED", "abc")
	if got := envInt64("TILECRAFT_SEED"); got != 0 {
		t.Errorf("envInt64() malformed = %d, want 0", got)
	}
}

func TestSetupOTelEnv(t *testing.T) {
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "")
	t.Setenv("HONEYCOMB_TILECRAFT_API_KEY", "key")
	t.Setenv("HONEYCOMB_TILECRAFT_DATASET", "")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")

	setupOTelEnv()

	if got := os.Getenv("OTEL_EXPORTER_OTLP_HEADERS"); got != "x-honeycomb-team=key,x-honeycomb-dataset=tilecraft" {
		t.Errorf("OTEL_EXPORTER_OTLP_HEADERS = %q", got)
	}
	if got := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"); got != "https://api.honeycomb.io" {
		t.Errorf("OTEL_EXPORTER_OTLP_ENDPOINT = %q", got)
	}
}
