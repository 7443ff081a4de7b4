// Voteweeks - Vote Ingestion and Weekly Outlier Detection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/voteweeks

/*
Package models defines the data structures shared by the batch pipeline.

Key Components:

  - Vote: one line of the newline-delimited JSON input, as seen by the
    pre-load check. The bulk load itself is done by DuckDB's read_json_auto.
  - WeeklyOutlier: one row of the outlier view (year, week_number, vote_count).
  - RunStats: timing and row counts for a single batch job run.
*/
package models
