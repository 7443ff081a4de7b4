// Voteweeks - Vote Ingestion and Weekly Outlier Detection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/voteweeks

/*
Package config provides centralized configuration management for the Voteweeks
batch commands.

# Configuration Sources

Configuration is loaded via Koanf v2 with layered sources (highest priority wins):
  - Environment variables
  - Config file (config.yaml, or the path in CONFIG_PATH)
  - Built-in defaults

# Configuration Structure

  - DatabaseConfig: DuckDB file path and engine tuning
  - StoreConfig: schema and table names used by the pipeline
  - IngestConfig: input file for the ingest command
  - OutliersConfig: optional JSON report of flagged weeks
  - MetricsConfig: optional Prometheus textfile output
  - LoggingConfig: zerolog level, format and caller info

# Environment Variables

	DUCKDB_PATH=warehouse.db
	DUCKDB_MAX_MEMORY=1GB
	DUCKDB_THREADS=0
	STORE_SCHEMA=blog_analysis
	STORE_VOTES_TABLE=votes
	STORE_OUTLIERS_TABLE=outlier_weeks
	INGEST_INPUT_PATH=uncommitted/votes.jsonl
	OUTLIERS_REPORT_PATH=
	METRICS_TEXTFILE_PATH=
	LOG_LEVEL=info
	LOG_FORMAT=json
	LOG_CALLER=false

Schema and table names are validated as plain SQL identifiers before any
statement is built from them.
*/
package config
