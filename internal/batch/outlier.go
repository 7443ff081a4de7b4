// Voteweeks - Vote Ingestion and Weekly Outlier Detection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/voteweeks

package batch

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/voteweeks/internal/database"
	"github.com/tomtom215/voteweeks/internal/logging"
	"github.com/tomtom215/voteweeks/internal/metrics"
	"github.com/tomtom215/voteweeks/internal/models"
	"github.com/tomtom215/voteweeks/internal/schema"
)

// DefaultThreshold is the relative deviation from the yearly mean weekly
// count above which a week is flagged.
const DefaultThreshold = 0.2

// OutlierJob derives the outlier weeks view from the votes table.
type OutlierJob struct {
	*Job

	threshold float64
	results   []models.WeeklyOutlier
}

// Transform (re)defines the outlier view and reads it back.
// inputPath is not used; the computation reads the votes table.
func (j *OutlierJob) Transform(ctx context.Context, inputPath string) error {
	votes, err := j.requireManager(schema.KindVotes)
	if err != nil {
		return err
	}
	weeks, err := j.requireManager(schema.KindOutlierWeeks)
	if err != nil {
		return err
	}
	logger := logging.Ctx(ctx)
	logger.Info().Str("input", inputPath).Msg("Started outlier detection")
	start := time.Now()

	view := database.CreateOutlierView(weeks.Schema(), weeks.Table(), votes.Schema(), votes.Table(), j.threshold)
	if err := j.conn.Exec(ctx, view); err != nil {
		return fmt.Errorf("create outlier view: %w", err)
	}

	results, err := j.readOutliers(ctx, weeks)
	if err != nil {
		return err
	}
	j.results = results
	j.setRows(int64(len(results)))
	metrics.OutlierWeeks.Set(float64(len(results)))

	logger.Info().
		Int("outlier_weeks", len(results)).
		Float64("threshold", j.threshold).
		Dur("elapsed", time.Since(start)).
		Msg("Completed outlier detection")
	return nil
}

func (j *OutlierJob) readOutliers(ctx context.Context, weeks schema.Manager) ([]models.WeeklyOutlier, error) {
	rows, err := j.conn.Query(ctx, database.SelectOutliers(weeks.Schema(), weeks.Table()))
	if err != nil {
		return nil, fmt.Errorf("read outlier view: %w", err)
	}
	defer rows.Close()

	results := make([]models.WeeklyOutlier, 0)
	for rows.Next() {
		var w models.WeeklyOutlier
		if err := rows.Scan(&w.Year, &w.WeekNumber, &w.VoteCount); err != nil {
			return nil, fmt.Errorf("scan outlier row: %w", err)
		}
		results = append(results, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate outlier rows: %w", err)
	}
	return results, nil
}

// Results returns the outlier weeks found by the last Transform, ordered by
// (year, week_number).
func (j *OutlierJob) Results() []models.WeeklyOutlier {
	return append([]models.WeeklyOutlier(nil), j.results...)
}
