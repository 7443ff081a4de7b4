// Voteweeks - Vote Ingestion and Weekly Outlier Detection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/voteweeks

package metrics

import (
	"fmt"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Statement Metrics
	StatementDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "duckdb_statement_duration_seconds",
			Help:    "Duration of DuckDB statements in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 30, 120},
		},
		[]string{"operation"},
	)

	StatementErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "duckdb_statement_errors_total",
			Help: "Total number of failed DuckDB statements",
		},
		[]string{"operation", "error_type"},
	)

	// Batch Job Metrics
	JobRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "batch_job_runs_total",
			Help: "Total number of batch job runs by outcome",
		},
		[]string{"operation", "status"},
	)

	JobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "batch_job_duration_seconds",
			Help:    "Wall time of a batch job run in seconds",
			Buckets: []float64{0.1, 0.5, 1, 5, 15, 60, 300, 900},
		},
		[]string{"operation"},
	)

	JobLastSuccess = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "batch_job_last_success_timestamp_seconds",
			Help: "Unix timestamp of the last successful batch job run",
		},
		[]string{"operation"},
	)

	VotesIngested = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "votes_ingested_rows",
			Help: "Rows in the votes table after the last ingest",
		},
	)

	OutlierWeeks = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "outlier_weeks_flagged",
			Help: "Weeks flagged as outliers by the last detection run",
		},
	)
)

// RecordStatement records a statement execution.
func RecordStatement(operation string, duration time.Duration, err error) {
	StatementDuration.WithLabelValues(operation).Observe(duration.Seconds())
	if err != nil {
		StatementErrors.WithLabelValues(operation, classifyError(err)).Inc()
	}
}

// RecordJobRun records the outcome of a batch job run.
func RecordJobRun(operation string, duration time.Duration, err error) {
	JobDuration.WithLabelValues(operation).Observe(duration.Seconds())
	if err != nil {
		JobRuns.WithLabelValues(operation, "failure").Inc()
		return
	}
	JobRuns.WithLabelValues(operation, "success").Inc()
	JobLastSuccess.WithLabelValues(operation).Set(float64(time.Now().Unix()))
}

// classifyError buckets DuckDB error messages by their "<Kind> Error:" prefix
// to keep label cardinality bounded.
func classifyError(err error) string {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "Constraint Error"):
		return "constraint"
	case strings.Contains(msg, "Parser Error"):
		return "parser"
	case strings.Contains(msg, "Binder Error"), strings.Contains(msg, "Catalog Error"):
		return "catalog"
	case strings.Contains(msg, "Conversion Error"), strings.Contains(msg, "Invalid Input Error"):
		return "input"
	case strings.Contains(msg, "IO Error"):
		return "io"
	default:
		return "other"
	}
}

// WriteTextfile writes all registered metrics to path in the Prometheus text format.
// The file is written atomically by the client library.
func WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, prometheus.DefaultGatherer); err != nil {
		return fmt.Errorf("write metrics textfile %s: %w", path, err)
	}
	return nil
}
