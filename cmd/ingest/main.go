// Voteweeks - Vote Ingestion and Weekly Outlier Detection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/voteweeks

// Package main is the entry point for the vote ingestion job.
//
// The job loads a newline-delimited JSON file of votes into the votes table of
// a DuckDB database file. The table is dropped and recreated on every run.
//
// # Configuration
//
// Configuration is loaded via Koanf v2 with layered sources (highest priority wins):
//   - Environment variables (DUCKDB_PATH, INGEST_INPUT_PATH, STORE_SCHEMA, ...)
//   - Config file (config.yaml, or the file named by CONFIG_PATH)
//   - Built-in defaults (warehouse.db, uncommitted/votes.jsonl)
//
// # Exit Codes
//
// A missing input file is logged and skipped with exit code 0. Any other
// failure exits with code 1.
//
// # Example Usage
//
//	export DUCKDB_PATH=/data/warehouse.db
//	export INGEST_INPUT_PATH=/data/votes.jsonl
//	./ingest
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/tomtom215/voteweeks/internal/batch"
	"github.com/tomtom215/voteweeks/internal/config"
	"github.com/tomtom215/voteweeks/internal/logging"
	"github.com/tomtom215/voteweeks/internal/metrics"
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
		logging.Ctx(ctx).Error().Err(err).Msg("Ingestion failed")
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	logger := logging.Ctx(ctx)
	input := cfg.Ingest.InputPath

	if _, err := os.Stat(input); errors.Is(err, os.ErrNotExist) {
		logger.Warn().Str("input", input).Msg("Input file not found, skipping ingestion")
		return nil
	}

	logger.Info().
		Str("db_path", cfg.Database.Path).
		Str("input", input).
		Str("schema", cfg.Store.Schema).
		Str("table", cfg.Store.VotesTable).
		Msg("Configuration loaded")

	job, err := batch.New(batch.OperationIngest, []schema.Kind{schema.KindVotes}, cfg)
	if err != nil {
		return err
	}
	runErr := batch.Run(ctx, job, input)

	if path := cfg.Metrics.TextfilePath; path != "" {
		if err := metrics.WriteTextfile(path); err != nil {
			logger.Warn().Err(err).Msg("Failed to write metrics textfile")
		}
	}
	return runErr
}
