// Package config provides configuration management for the report generator.
package config

import (
	"os"
	"testing"
	"time"
)

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()

	tmpFile, err := os.CreateTemp(t.TempDir(), "config-*.yaml")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	if _, err := tmpFile.WriteString(content); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}
	tmpFile.Close()
	return tmpFile.Name()
}

func TestLoad_Success(t *testing.T) {
	path := writeTempConfig(t, `
report:
  root_dir: "/var/lib/reports"
  default_format: "text/csv"
logging:
  level: debug
  format: json
batch:
  concurrency: 8
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Report.RootDir != "/var/lib/reports" {
		t.Errorf("RootDir = %v, want /var/lib/reports", cfg.Report.RootDir)
	}
	if cfg.Report.DefaultFormat != "text/csv" {
		t.Errorf("DefaultFormat = %v, want text/csv", cfg.Report.DefaultFormat)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %v, want debug", cfg.Logging.Level)
	}
	if cfg.Batch.Concurrency != 8 {
		t.Errorf("Concurrency = %v, want 8", cfg.Batch.Concurrency)
	}

	// Verify defaults
	if cfg.Input.Timeout != 30*time.Second {
		t.Errorf("Input.Timeout = %v, want 30s", cfg.Input.Timeout)
	}
	if cfg.Input.Retry.MaxRetries != 3 {
		t.Errorf("MaxRetries = %v, want 3", cfg.Input.Retry.MaxRetries)
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Report.RootDir != "." {
		t.Errorf("RootDir = %v, want .", cfg.Report.RootDir)
	}
	if cfg.Report.DefaultFormat != "application/json" {
		t.Errorf("DefaultFormat = %v, want application/json", cfg.Report.DefaultFormat)
	}
	if cfg.Logging.Format != "console" {
		t.Errorf("Logging.Format = %v, want console", cfg.Logging.Format)
	}
	if cfg.Batch.Concurrency != 4 {
		t.Errorf("Concurrency = %v, want 4", cfg.Batch.Concurrency)
	}
	if cfg.Input.Retry.BaseDelay != time.Second {
		t.Errorf("BaseDelay = %v, want 1s", cfg.Input.Retry.BaseDelay)
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load("/nonexistent/config.yaml")
	if err == nil {
		t.Error("Load() should return error for nonexistent file")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeTempConfig(t, "report: [unclosed\n")

	_, err := Load(path)
	if err == nil {
		t.Error("Load() should return error for invalid YAML")
	}
}

func TestLoad_ValidationFailure(t *testing.T) {
	path := writeTempConfig(t, `
report:
  default_format: "json"
`)

	_, err := Load(path)
	if err == nil {
		t.Fatal("Load() should return validation error")
	}
	if _, ok := err.(ValidationErrors); !ok {
		t.Errorf("expected ValidationErrors, got %T", err)
	}
}

func TestLoad_EnvironmentOverride(t *testing.T) {
	path := writeTempConfig(t, `
report:
  root_dir: "/from/file"
`)

	t.Setenv("REPORTGEN_REPORT_ROOT_DIR", "/from/env")
	t.Setenv("REPORTGEN_BATCH_CONCURRENCY", "12")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Report.RootDir != "/from/env" {
		t.Errorf("RootDir = %v, want /from/env (env override)", cfg.Report.RootDir)
	}
	if cfg.Batch.Concurrency != 12 {
		t.Errorf("Concurrency = %v, want 12 (env override)", cfg.Batch.Concurrency)
	}
}
