// Voteweeks - Vote Ingestion and Weekly Outlier Detection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/voteweeks

package batch

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/tomtom215/voteweeks/internal/config"
	"github.com/tomtom215/voteweeks/internal/database"
	"github.com/tomtom215/voteweeks/internal/models"
	"github.com/tomtom215/voteweeks/internal/schema"
)

// checkNoError fails the test if err is not nil
func checkNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// checkInt64Equal checks that got equals want
func checkInt64Equal(t *testing.T, fieldName string, got, want int64) {
	t.Helper()
	if got != want {
		t.Errorf("%s: expected %d, got %d", fieldName, want, got)
	}
}

// testConfig returns the default configuration pointed at a fresh database file.
func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Database.Path = filepath.Join(t.TempDir(), "warehouse.db")
	cfg.Database.MaxMemory = "512MB"
	cfg.Database.Threads = 2
	return cfg
}

func fixture(name string) string {
	return filepath.Join("testdata", name)
}

// runIngest ingests a fixture file and returns the job after its run.
func runIngest(t *testing.T, cfg *config.Config, file string) (Runner, error) {
	t.Helper()
	job, err := New(OperationIngest, []schema.Kind{schema.KindVotes}, cfg)
	checkNoError(t, err)
	return job, Run(context.Background(), job, fixture(file))
}

// runOutliers runs outlier detection and returns its results.
func runOutliers(t *testing.T, cfg *config.Config) []models.WeeklyOutlier {
	t.Helper()
	job, err := New(OperationOutlier, []schema.Kind{schema.KindVotes, schema.KindOutlierWeeks}, cfg)
	checkNoError(t, err)
	checkNoError(t, Run(context.Background(), job, ""))
	return job.(*OutlierJob).Results()
}

// countVotes opens the database and counts the votes table.
func countVotes(t *testing.T, cfg *config.Config) int64 {
	t.Helper()
	conn, err := database.Open(&cfg.Database)
	checkNoError(t, err)
	defer func() { _ = conn.Close() }()

	var n int64
	checkNoError(t, conn.QueryRow(context.Background(),
		database.CountRows(cfg.Store.Schema, cfg.Store.VotesTable)).Scan(&n))
	return n
}

// checkOutliers compares outlier rows.
func checkOutliers(t *testing.T, got, want []models.WeeklyOutlier) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected %d outliers %v, got %d %v", len(want), want, len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("outlier %d: expected %v, got %v", i, want[i], got[i])
		}
	}
}
