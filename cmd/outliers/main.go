// Voteweeks - Vote Ingestion and Weekly Outlier Detection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/voteweeks

// Package main is the entry point for the weekly outlier detection job.
//
// The job (re)defines the outlier_weeks view over the votes table: weeks
// whose vote count deviates from their year's mean weekly count by more
// than 20%. The flagged weeks are logged and, when outliers.report_path is
// set, written to a JSON report.
//
// # Configuration
//
// Configuration is loaded via Koanf v2 with layered sources (highest priority wins):
//   - Environment variables (DUCKDB_PATH, OUTLIERS_REPORT_PATH, METRICS_TEXTFILE_PATH, ...)
//   - Config file (config.yaml, or the file named by CONFIG_PATH)
//   - Built-in defaults
//
// # Example Usage
//
//	export DUCKDB_PATH=/data/warehouse.db
//	export OUTLIERS_REPORT_PATH=/data/outlier_weeks.json
//	./outliers
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/goccy/go-json"

	"github.com/tomtom215/voteweeks/internal/batch"
	"github.com/tomtom215/voteweeks/internal/config"
	"github.com/tomtom215/voteweeks/internal/logging"
	"github.com/tomtom215/voteweeks/internal/metrics"
	"github.com/tomtom215/voteweeks/internal/models"
	"github.com/tomtom215/voteweeks/internal/schema"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	ctx = logging.ContextWithNewRunID(ctx)

	err = run(ctx, cfg)
	stop()
	if err != nil {
		logging.Ctx(ctx).Error().Err(err).Msg("Outlier detection failed")
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	logger := logging.Ctx(ctx)
	logger.Info().
		Str("db_path", cfg.Database.Path).
		Str("schema", cfg.Store.Schema).
		Str("view", cfg.Store.OutliersTable).
		Msg("Configuration loaded")

	kinds := []schema.Kind{schema.KindVotes, schema.KindOutlierWeeks}
	runner, err := batch.New(batch.OperationOutlier, kinds, cfg)
	if err != nil {
		return err
	}
	runErr := batch.Run(ctx, runner, "")

	if path := cfg.Metrics.TextfilePath; path != "" {
		if err := metrics.WriteTextfile(path); err != nil {
			logger.Warn().Err(err).Msg("Failed to write metrics textfile")
		}
	}
	if runErr != nil {
		return runErr
	}

	results := runner.(*batch.OutlierJob).Results()
	for _, w := range results {
		logger.Info().
			Int("year", w.Year).
			Int("week_number", w.WeekNumber).
			Int64("vote_count", w.VoteCount).
			Msg("Outlier week")
	}

	if path := cfg.Outliers.ReportPath; path != "" {
		if err := writeReport(path, results); err != nil {
			return err
		}
		logger.Info().Str("path", path).Int("outlier_weeks", len(results)).Msg("Outlier report written")
	}
	return nil
}

// writeReport writes the outlier weeks as a JSON array.
func writeReport(path string, results []models.WeeklyOutlier) error {
	if results == nil {
		results = []models.WeeklyOutlier{}
	}
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("encode outlier report: %w", err)
	}

	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("create report directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o600); err != nil {
		return fmt.Errorf("write outlier report %s: %w", path, err)
	}
	return nil
}
