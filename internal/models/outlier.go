// Voteweeks - Vote Ingestion and Weekly Outlier Detection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/voteweeks

package models

import "fmt"

// WeeklyOutlier is a week whose vote count deviates from its year's
// average weekly count by more than the detection threshold.
type WeeklyOutlier struct {
	Year       int   `json:"year"`
	WeekNumber int   `json:"week_number"`
	VoteCount  int64 `json:"vote_count"`
}

// String renders the row as (year, week, count).
func (w WeeklyOutlier) String() string {
	return fmt.Sprintf("(%d, %d, %d)", w.Year, w.WeekNumber, w.VoteCount)
}
