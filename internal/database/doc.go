// Voteweeks - Vote Ingestion and Weekly Outlier Detection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/voteweeks

/*
Package database provides the DuckDB connection handle used by every batch job.

A Conn wraps exactly one DuckDB connection to a database file. The pool is
pinned to a single open connection and a *sql.Conn is held for the lifetime
of the handle, so every statement of a run sees the same session.

Key Components:

  - Conn: Open, Exec, Query, QueryRow, Close, Path
  - StorageError: wraps every failure reported by the storage engine
  - ErrUseAfterClose: returned for any use of a closed handle
  - Statement builders: the DDL and DML text for the votes table, the
    outlier view and verification queries

Observability:

Every statement is logged at debug level with its text and recorded in the
duckdb_statement_duration_seconds histogram. Failures also increment
duckdb_statement_errors_total, labeled by the DuckDB error class.

Close runs a CHECKPOINT before releasing the connection so that the WAL is
folded into the main database file.

Example:

	conn, err := database.Open(&cfg.Database)
	if err != nil {
	    return err
	}
	defer conn.Close()

	if err := conn.Exec(ctx, database.CreateSchema("blog_analysis")); err != nil {
	    return err
	}
*/
package database
