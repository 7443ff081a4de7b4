// Voteweeks - Vote Ingestion and Weekly Outlier Detection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/voteweeks

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// clearConfigEnv blanks every mapped variable so ambient settings do not leak in.
func clearConfigEnv(t *testing.T) {
	t.Helper()
	for key := range envMappings {
		name := strings.ToUpper(key)
		if _, ok := os.LookupEnv(name); ok {
			t.Setenv(name, "")
			os.Unsetenv(name)
		}
	}
	t.Setenv(ConfigPathEnvVar, filepath.Join(t.TempDir(), "missing.yaml"))
}

// TestDefaultConfig verifies that Default() returns proper defaults
func TestDefaultConfig(t *testing.T) {
	cfg := Default()

	if cfg.Database.Path != "warehouse.db" {
		t.Errorf("Database.Path = %q, want warehouse.db", cfg.Database.Path)
	}
	if cfg.Database.MaxMemory != "1GB" {
		t.Errorf("Database.MaxMemory = %q, want 1GB", cfg.Database.MaxMemory)
	}
	if cfg.Store.Schema != "blog_analysis" {
		t.Errorf("Store.Schema = %q, want blog_analysis", cfg.Store.Schema)
	}
	if cfg.Store.VotesTable != "votes" {
		t.Errorf("Store.VotesTable = %q, want votes", cfg.Store.VotesTable)
	}
	if cfg.Store.OutliersTable != "outlier_weeks" {
		t.Errorf("Store.OutliersTable = %q, want outlier_weeks", cfg.Store.OutliersTable)
	}
	if cfg.Ingest.InputPath != "uncommitted/votes.jsonl" {
		t.Errorf("Ingest.InputPath = %q, want uncommitted/votes.jsonl", cfg.Ingest.InputPath)
	}
	if cfg.Outliers.ReportPath != "" {
		t.Errorf("Outliers.ReportPath = %q, want empty", cfg.Outliers.ReportPath)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want info", cfg.Logging.Level)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate, got %v", err)
	}
}

// TestEnvTransformFunc verifies environment variable name transformations
func TestEnvTransformFunc(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"DUCKDB_PATH", "database.path"},
		{"DUCKDB_MAX_MEMORY", "database.max_memory"},
		{"DUCKDB_THREADS", "database.threads"},
		{"STORE_SCHEMA", "store.schema"},
		{"STORE_VOTES_TABLE", "store.votes_table"},
		{"STORE_OUTLIERS_TABLE", "store.outliers_table"},
		{"INGEST_INPUT_PATH", "ingest.input_path"},
		{"OUTLIERS_REPORT_PATH", "outliers.report_path"},
		{"METRICS_TEXTFILE_PATH", "metrics.textfile_path"},
		{"LOG_LEVEL", "logging.level"},
		{"log_format", "logging.format"},
		{"HOME", ""},
		{"PATH", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := envTransformFunc(tt.input); got != tt.expected {
				t.Errorf("envTransformFunc(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestFindConfigFile(t *testing.T) {
	tmpDir := t.TempDir()

	origDir, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	defer func() {
		if err := os.Chdir(origDir); err != nil {
			t.Errorf("Failed to restore working directory: %v", err)
		}
	}()
	if err := os.Chdir(tmpDir); err != nil {
		t.Fatalf("Failed to change to temp directory: %v", err)
	}

	t.Run("no config file exists", func(t *testing.T) {
		t.Setenv(ConfigPathEnvVar, "")
		if result := findConfigFile(); result != "" {
			t.Errorf("findConfigFile() = %q, want empty string", result)
		}
	})

	t.Run("config.yaml exists", func(t *testing.T) {
		if err := os.WriteFile(filepath.Join(tmpDir, "config.yaml"), []byte("store: {}"), 0o600); err != nil {
			t.Fatalf("Failed to create config file: %v", err)
		}
		defer os.Remove(filepath.Join(tmpDir, "config.yaml"))

		t.Setenv(ConfigPathEnvVar, "")
		if result := findConfigFile(); result != "config.yaml" {
			t.Errorf("findConfigFile() = %q, want config.yaml", result)
		}
	})

	t.Run("CONFIG_PATH env var takes precedence", func(t *testing.T) {
		customPath := filepath.Join(tmpDir, "custom.yaml")
		if err := os.WriteFile(customPath, []byte("store: {}"), 0o600); err != nil {
			t.Fatalf("Failed to create custom config file: %v", err)
		}

		t.Setenv(ConfigPathEnvVar, customPath)
		if result := findConfigFile(); result != customPath {
			t.Errorf("findConfigFile() = %q, want %q", result, customPath)
		}
	})
}

// TestLoadWithKoanfEnvVars tests loading configuration from environment variables
func TestLoadWithKoanfEnvVars(t *testing.T) {
	clearConfigEnv(t)

	t.Setenv("DUCKDB_PATH", "/tmp/test_warehouse.db")
	t.Setenv("STORE_SCHEMA", "analytics")
	t.Setenv("DUCKDB_THREADS", "2")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.Database.Path != "/tmp/test_warehouse.db" {
		t.Errorf("Database.Path = %q, want /tmp/test_warehouse.db", cfg.Database.Path)
	}
	if cfg.Store.Schema != "analytics" {
		t.Errorf("Store.Schema = %q, want analytics", cfg.Store.Schema)
	}
	if cfg.Database.Threads != 2 {
		t.Errorf("Database.Threads = %d, want 2", cfg.Database.Threads)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}

	// Defaults still apply to unset values
	if cfg.Store.VotesTable != "votes" {
		t.Errorf("Store.VotesTable = %q, want votes (default)", cfg.Store.VotesTable)
	}
}

// TestLoadWithKoanfConfigFile tests loading configuration from a YAML file
// and that environment variables override it.
func TestLoadWithKoanfConfigFile(t *testing.T) {
	clearConfigEnv(t)

	configContent := `
database:
  path: "file.db"
store:
  schema: "from_file"
  outliers_table: "weekly_outliers"
outliers:
  report_path: "report.json"
logging:
  level: "warn"
`
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte(configContent), 0o600); err != nil {
		t.Fatalf("Failed to create config file: %v", err)
	}
	t.Setenv(ConfigPathEnvVar, configPath)
	t.Setenv("LOG_LEVEL", "error")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.Database.Path != "file.db" {
		t.Errorf("Database.Path = %q, want file.db", cfg.Database.Path)
	}
	if cfg.Store.Schema != "from_file" {
		t.Errorf("Store.Schema = %q, want from_file", cfg.Store.Schema)
	}
	if cfg.Store.OutliersTable != "weekly_outliers" {
		t.Errorf("Store.OutliersTable = %q, want weekly_outliers", cfg.Store.OutliersTable)
	}
	if cfg.Outliers.ReportPath != "report.json" {
		t.Errorf("Outliers.ReportPath = %q, want report.json", cfg.Outliers.ReportPath)
	}
	if cfg.Logging.Level != "error" {
		t.Errorf("Logging.Level = %q, want error (env override)", cfg.Logging.Level)
	}
}

// TestLoadWithKoanfValidation tests that invalid values are rejected
func TestLoadWithKoanfValidation(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{"injected schema", map[string]string{"STORE_SCHEMA": "blog; DROP"}, "Schema"},
		{"same table names", map[string]string{"STORE_OUTLIERS_TABLE": "votes"}, "OutliersTable must differ from VotesTable"},
		{"bad log level", map[string]string{"LOG_LEVEL": "loud"}, "LOG_LEVEL"},
		{"bad log format", map[string]string{"LOG_FORMAT": "xml"}, "LOG_FORMAT"},
		{"negative threads", map[string]string{"DUCKDB_THREADS": "-1"}, "DUCKDB_THREADS"},
		{"query in path", map[string]string{"DUCKDB_PATH": "/tmp/votes.db?access_mode=read_only"}, "DUCKDB_PATH"},
		{"malformed memory limit", map[string]string{"DUCKDB_MAX_MEMORY": "4GB&threads=64"}, "DUCKDB_MAX_MEMORY"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearConfigEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := LoadWithKoanf()
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q should mention %q", err.Error(), tt.wantErr)
			}
		})
	}
}
