// Voteweeks - Vote Ingestion and Weekly Outlier Detection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/voteweeks

// Package logging provides centralized zerolog-based structured logging for Voteweeks.
//
// Every batch command logs through this package so that statement text,
// provisioning steps and elapsed times land in one structured stream.
//
// # Quick Start
//
//	logging.Init(logging.Config{
//	    Level:  "info",
//	    Format: "json",
//	})
//
//	logging.Info().Str("path", path).Msg("Started data ingestion")
//	logging.Error().Err(err).Msg("Batch job failed")
//
// # Run IDs
//
// Each batch run is tagged with a short run ID carried on the context:
//
//	ctx = logging.ContextWithNewRunID(ctx)
//	logging.Ctx(ctx).Info().Msg("Provisioning schemas")
//	// {"level":"info","run_id":"3f9a1c2e","message":"Provisioning schemas"}
//
// # Configuration
//
// Environment Variables (read through internal/config):
//   - LOG_LEVEL: trace, debug, info, warn, error (default: info)
//   - LOG_FORMAT: json, console (default: json)
//   - LOG_CALLER: true/false (default: false)
package logging
