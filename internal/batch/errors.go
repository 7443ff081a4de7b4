// Voteweeks - Vote Ingestion and Weekly Outlier Detection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/voteweeks

package batch

import "errors"

var (
	// ErrUnknownOperation is returned for an operation outside the closed set.
	ErrUnknownOperation = errors.New("unknown batch operation")

	// ErrMissingSchemaManager is returned when a transform needs a schema
	// kind that the job did not provision.
	ErrMissingSchemaManager = errors.New("missing schema manager")

	// ErrJobAlreadyRun is returned by Run for a job that has already run.
	ErrJobAlreadyRun = errors.New("batch job already run")

	// ErrInvalidInput is returned when the input file cannot be read or its
	// first record is not a valid vote.
	ErrInvalidInput = errors.New("invalid input")
)
