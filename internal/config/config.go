// Voteweeks - Vote Ingestion and Weekly Outlier Detection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/voteweeks

package config

// Config holds all configuration for the batch commands.
type Config struct {
	Database DatabaseConfig `koanf:"database"`
	Store    StoreConfig    `koanf:"store"`
	Ingest   IngestConfig   `koanf:"ingest"`
	Outliers OutliersConfig `koanf:"outliers"`
	Metrics  MetricsConfig  `koanf:"metrics"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// DatabaseConfig holds DuckDB connection settings.
type DatabaseConfig struct {
	Path      string `koanf:"path"`
	MaxMemory string `koanf:"max_memory"`
	Threads   int    `koanf:"threads"` // Number of DuckDB threads (0 = use NumCPU)
}

// StoreConfig names the schema and tables the pipeline reads and writes.
// All three values end up inside SQL statements, so they must be bare identifiers.
type StoreConfig struct {
	Schema        string `koanf:"schema" validate:"required,sqlident"`
	VotesTable    string `koanf:"votes_table" validate:"required,sqlident"`
	OutliersTable string `koanf:"outliers_table" validate:"required,sqlident,nefield=VotesTable"`
}

// IngestConfig holds settings for the ingest command.
type IngestConfig struct {
	// InputPath is the newline-delimited JSON file of vote records.
	InputPath string `koanf:"input_path"`
}

// OutliersConfig holds settings for the outlier detection command.
type OutliersConfig struct {
	// ReportPath, when set, receives a JSON array of the flagged weeks.
	ReportPath string `koanf:"report_path"`
}

// MetricsConfig holds Prometheus settings.
type MetricsConfig struct {
	// TextfilePath, when set, receives the run's metrics in the Prometheus
	// text format (for node_exporter's textfile collector).
	TextfilePath string `koanf:"textfile_path"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	// Default: info
	Level string `koanf:"level"`

	// Format is the output format: json or console.
	// Default: json
	Format string `koanf:"format"`

	// Caller includes file:line in log entries.
	Caller bool `koanf:"caller"`
}

// Load reads configuration from defaults, an optional config file and the environment.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
