// Voteweeks - Vote Ingestion and Weekly Outlier Detection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/voteweeks

package database

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/tomtom215/voteweeks/internal/logging"
)

// ErrUseAfterClose is returned when a Conn is used after Close.
var ErrUseAfterClose = errors.New("database connection used after close")

// ErrInvalidPath is returned when a database path cannot be expressed as a DSN.
var ErrInvalidPath = errors.New("invalid database path")

// StorageError is a failure reported by the storage engine, such as a
// malformed statement or a constraint violation.
type StorageError struct {
	// Op is the handle operation that failed (open, exec, query, close).
	Op string

	// Statement is the SQL text, empty for open and close.
	Statement string

	Err error
}

func (e *StorageError) Error() string {
	if e.Statement == "" {
		return fmt.Sprintf("storage %s failed: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("storage %s failed (%s): %v", e.Op, abbreviate(e.Statement), e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// IsConstraintViolation reports whether err is a StorageError caused by a
// primary key, unique or not-null constraint.
func IsConstraintViolation(err error) bool {
	var se *StorageError
	if !errors.As(err, &se) || se.Err == nil {
		return false
	}
	return strings.Contains(se.Err.Error(), "Constraint Error")
}

// abbreviate collapses whitespace and truncates long statements for error text.
func abbreviate(statement string) string {
	s := strings.Join(strings.Fields(statement), " ")
	const maxLen = 120
	if len(s) > maxLen {
		return s[:maxLen] + "..."
	}
	return s
}

// closeWithLog closes a resource and logs any error
// Use this for cleanup operations where errors should be acknowledged but not fail the operation
func closeWithLog(closer io.Closer, resourceType string) {
	if closer == nil {
		return
	}
	if err := closer.Close(); err != nil {
		logging.Warn().Str("type", resourceType).Err(err).Msg("Failed to close resource")
	}
}

// closeQuietly closes a resource and explicitly ignores any error
// Use this for cleanup operations in error paths where Close() errors are not actionable
func closeQuietly(closer io.Closer) {
	if closer != nil {
		_ = closer.Close() // Explicitly ignore error - cleanup is best-effort
	}
}
