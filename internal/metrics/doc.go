// Voteweeks - Vote Ingestion and Weekly Outlier Detection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/voteweeks

/*
Package metrics provides Prometheus instrumentation for the batch commands.

The commands are short-lived, so instead of serving /metrics the final values
are written in the Prometheus text format to a file picked up by the
node_exporter textfile collector:

	METRICS_TEXTFILE_PATH=/var/lib/node_exporter/voteweeks.prom ./ingest

# Available Metrics

Statements:
  - duckdb_statement_duration_seconds{operation}: statement latency
  - duckdb_statement_errors_total{operation,error_type}: failed statements

Batch jobs:
  - batch_job_runs_total{operation,status}: completed runs by outcome
  - batch_job_duration_seconds{operation}: wall time of a full run
  - batch_job_last_success_timestamp_seconds{operation}: unix time of last success
  - votes_ingested_rows: rows in the votes table after the last ingest
  - outlier_weeks_flagged: rows in the outlier view after the last detection
*/
package metrics
