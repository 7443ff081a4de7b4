// Voteweeks - Vote Ingestion and Weekly Outlier Detection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/voteweeks

package database

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"

	"github.com/tomtom215/voteweeks/internal/config"
	"github.com/tomtom215/voteweeks/internal/logging"
	"github.com/tomtom215/voteweeks/internal/metrics"
)

// checkpointTimeout bounds the CHECKPOINT issued by Close.
const checkpointTimeout = 30 * time.Second

// connString builds the DuckDB DSN. The driver splits the DSN at the first
// '?', so a path containing one cannot be addressed.
func connString(cfg *config.DatabaseConfig) (string, error) {
	if strings.Contains(cfg.Path, "?") {
		return "", fmt.Errorf("%w: %q contains '?'", ErrInvalidPath, cfg.Path)
	}

	numThreads := cfg.Threads
	if numThreads <= 0 {
		numThreads = runtime.NumCPU()
	}

	params := url.Values{}
	params.Set("access_mode", "read_write")
	params.Set("threads", strconv.Itoa(numThreads))
	if cfg.MaxMemory != "" {
		params.Set("max_memory", cfg.MaxMemory)
	}
	return cfg.Path + "?" + params.Encode(), nil
}

// Conn is an exclusive handle to one DuckDB database file.
// It is owned by a single batch job for one run and is not shared.
type Conn struct {
	mu     sync.Mutex
	db     *sql.DB
	conn   *sql.Conn
	path   string
	closed bool
}

// Open establishes one connection to the database file at cfg.Path,
// creating the parent directory and the file if they do not exist.
func Open(cfg *config.DatabaseConfig) (*Conn, error) {
	connStr, err := connString(cfg)
	if err != nil {
		return nil, &StorageError{Op: "open", Err: err}
	}

	// Use 0750 permissions (owner: rwx, group: rx, other: none) per gosec G301
	dbDir := filepath.Dir(cfg.Path)
	if dbDir != "" && dbDir != "." {
		if err := os.MkdirAll(dbDir, 0o750); err != nil {
			return nil, &StorageError{Op: "open", Err: fmt.Errorf("create database directory %s: %w", dbDir, err)}
		}
	}

	db, err := sql.Open("duckdb", connStr)
	if err != nil {
		return nil, &StorageError{Op: "open", Err: err}
	}

	// One writer per file: every statement of a run goes through the same session.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	conn, err := db.Conn(ctx)
	if err != nil {
		closeQuietly(db)
		return nil, &StorageError{Op: "open", Err: err}
	}
	if err := conn.PingContext(ctx); err != nil {
		closeQuietly(conn)
		closeQuietly(db)
		return nil, &StorageError{Op: "open", Err: err}
	}

	logging.Debug().
		Str("path", cfg.Path).
		Int("threads", cfg.Threads).
		Str("max_memory", cfg.MaxMemory).
		Msg("Opened DuckDB connection")

	return &Conn{db: db, conn: conn, path: cfg.Path}, nil
}

// Path returns the path of the database file.
func (c *Conn) Path() string {
	return c.path
}

// Exec runs a statement, optionally parameterized.
func (c *Conn) Exec(ctx context.Context, statement string, args ...any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrUseAfterClose
	}

	op := statementKind(statement)
	logging.Ctx(ctx).Debug().Str("statement", statement).Msg("Executing statement")

	start := time.Now()
	_, err := c.conn.ExecContext(ctx, statement, args...)
	metrics.RecordStatement(op, time.Since(start), err)
	if err != nil {
		return &StorageError{Op: "exec", Statement: statement, Err: err}
	}
	return nil
}

// Query runs a statement that returns rows. The caller must close the rows.
func (c *Conn) Query(ctx context.Context, statement string, args ...any) (*sql.Rows, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil, ErrUseAfterClose
	}

	logging.Ctx(ctx).Debug().Str("statement", statement).Msg("Executing query")

	start := time.Now()
	rows, err := c.conn.QueryContext(ctx, statement, args...)
	metrics.RecordStatement(statementKind(statement), time.Since(start), err)
	if err != nil {
		return nil, &StorageError{Op: "query", Statement: statement, Err: err}
	}
	return rows, nil
}

// QueryRow runs a statement expected to return at most one row.
// Errors, including ErrUseAfterClose, are deferred until Scan.
func (c *Conn) QueryRow(ctx context.Context, statement string, args ...any) *Row {
	rows, err := c.Query(ctx, statement, args...)
	return &Row{rows: rows, err: err}
}

// Row is the result of QueryRow.
type Row struct {
	rows *sql.Rows
	err  error
}

// Scan copies the columns of the first row into dest and closes the rows.
// It returns sql.ErrNoRows when the query produced no rows.
func (r *Row) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	defer closeQuietly(r.rows)

	if !r.rows.Next() {
		if err := r.rows.Err(); err != nil {
			return &StorageError{Op: "query", Err: err}
		}
		return sql.ErrNoRows
	}
	if err := r.rows.Scan(dest...); err != nil {
		return fmt.Errorf("scan row: %w", err)
	}
	return nil
}

// Close checkpoints the database and releases the connection.
// Calling Close more than once is a no-op.
func (c *Conn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true

	// Force a checkpoint to flush WAL before closing.
	ctx, cancel := context.WithTimeout(context.Background(), checkpointTimeout)
	start := time.Now()
	_, err := c.conn.ExecContext(ctx, "CHECKPOINT")
	metrics.RecordStatement("checkpoint", time.Since(start), err)
	cancel()
	if err != nil {
		// best effort
		logging.Warn().Err(err).Str("path", c.path).Msg("Failed to checkpoint database before close")
	}

	closeWithLog(c.conn, "database session")
	if err := c.db.Close(); err != nil {
		return &StorageError{Op: "close", Err: err}
	}

	logging.Debug().Str("path", c.path).Msg("Closed DuckDB connection")
	return nil
}

// statementKind returns the lowercased leading keyword of a statement,
// used as a bounded metrics label.
func statementKind(statement string) string {
	fields := strings.Fields(statement)
	if len(fields) == 0 {
		return "empty"
	}
	kind := strings.ToLower(fields[0])
	switch kind {
	case "create", "drop", "insert", "select", "with", "checkpoint", "delete", "update":
		return kind
	default:
		return "other"
	}
}
