// Voteweeks - Vote Ingestion and Weekly Outlier Detection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/voteweeks

// Package validation provides struct validation using go-playground/validator v10.
//
// A single validator instance is shared by the whole process. Besides the
// built-in tags it registers:
//
//   - sqlident: a bare SQL identifier (letter or underscore, then letters,
//     digits or underscores, at most 63 characters). Schema and table names
//     from configuration must pass this check before they reach a statement.
//
// Example usage:
//
//	type StoreConfig struct {
//	    Schema string `validate:"required,sqlident"`
//	}
//
//	if verr := validation.ValidateStruct(&cfg.Store); verr != nil {
//	    return fmt.Errorf("store config: %w", verr)
//	}
package validation
