// Voteweeks - Vote Ingestion and Weekly Outlier Detection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/voteweeks

package models

import "time"

// RunStats holds statistics about a single batch job run.
type RunStats struct {
	// Operation is the batch operation name ("ingest" or "outlier").
	Operation string

	// RunID tags every log line of the run.
	RunID string

	// StartTime is when the run started.
	StartTime time.Time

	// EndTime is when the run finished (zero if still running).
	EndTime time.Time

	// Rows is the row count of the job's target after the transform.
	Rows int64
}

// Duration returns the duration of the run.
func (s *RunStats) Duration() time.Duration {
	if s.EndTime.IsZero() {
		return time.Since(s.StartTime)
	}
	return s.EndTime.Sub(s.StartTime)
}
