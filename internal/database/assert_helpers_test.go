// Voteweeks - Vote Ingestion and Weekly Outlier Detection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/voteweeks

package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/tomtom215/voteweeks/internal/config"
)

// Test assertion helpers with "check" prefix.
// Using t.Helper() ensures error messages point to the calling line.

// checkNoError fails the test if err is not nil
func checkNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// checkError fails the test if err is nil
func checkError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

// checkStringEqual checks that got equals want
func checkStringEqual(t *testing.T, fieldName, got, want string) {
	t.Helper()
	if got != want {
		t.Errorf("%s: expected %q, got %q", fieldName, want, got)
	}
}

// checkInt64Equal checks that got equals want
func checkInt64Equal(t *testing.T, fieldName string, got, want int64) {
	t.Helper()
	if got != want {
		t.Errorf("%s: expected %d, got %d", fieldName, want, got)
	}
}

// openTestConn opens a handle on a fresh database file and closes it at cleanup.
func openTestConn(t *testing.T) *Conn {
	t.Helper()
	cfg := &config.DatabaseConfig{
		Path:      filepath.Join(t.TempDir(), "test.db"),
		MaxMemory: "512MB",
		Threads:   2,
	}
	conn, err := Open(cfg)
	checkNoError(t, err)
	t.Cleanup(func() { closeQuietly(conn) })
	return conn
}

// countRows returns the row count of schema.table.
func countRows(t *testing.T, conn *Conn, schema, table string) int64 {
	t.Helper()
	var n int64
	checkNoError(t, conn.QueryRow(context.Background(), CountRows(schema, table)).Scan(&n))
	return n
}
