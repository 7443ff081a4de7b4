// Voteweeks - Vote Ingestion and Weekly Outlier Detection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/voteweeks

package schema

import (
	"context"
	"errors"
	"fmt"

	"github.com/tomtom215/voteweeks/internal/config"
	"github.com/tomtom215/voteweeks/internal/database"
	"github.com/tomtom215/voteweeks/internal/logging"
	"github.com/tomtom215/voteweeks/internal/validation"
)

// ErrInvalidIdentifier is returned when a configured schema or table name
// is not a bare SQL identifier.
var ErrInvalidIdentifier = errors.New("invalid identifier")

// Executor runs a statement. *database.Conn satisfies it.
type Executor interface {
	Exec(ctx context.Context, statement string, args ...any) error
}

// Manager provisions one (schema, table) pair for a batch job.
type Manager interface {
	Kind() Kind
	Schema() string
	Table() string

	// Provision brings the store into the state the kind requires.
	// Storage failures are returned as *database.StorageError.
	Provision(ctx context.Context) error
}

// Option configures a Manager.
type Option func(*options)

type options struct {
	preserveData bool
}

// PreserveData makes provisioning non-destructive: existing tables are kept
// and only missing objects are created. Jobs that read the votes table
// without reloading it use this.
func PreserveData() Option {
	return func(o *options) { o.preserveData = true }
}

// New returns the Manager for kind, bound to conn and the names in store.
func New(kind Kind, conn Executor, store config.StoreConfig, opts ...Option) (Manager, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	if conn == nil {
		return nil, errors.New("schema manager requires a connection")
	}
	if !validation.IsIdentifier(store.Schema) {
		return nil, fmt.Errorf("%w: schema %q", ErrInvalidIdentifier, store.Schema)
	}

	switch kind {
	case KindVotes:
		if !validation.IsIdentifier(store.VotesTable) {
			return nil, fmt.Errorf("%w: table %q", ErrInvalidIdentifier, store.VotesTable)
		}
		return &votesManager{
			base:     base{conn: conn, schema: store.Schema, table: store.VotesTable},
			preserve: o.preserveData,
		}, nil
	case KindOutlierWeeks:
		if !validation.IsIdentifier(store.OutliersTable) {
			return nil, fmt.Errorf("%w: table %q", ErrInvalidIdentifier, store.OutliersTable)
		}
		return &outlierWeeksManager{base{conn: conn, schema: store.Schema, table: store.OutliersTable}}, nil
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownSchemaKind, kind)
	}
}

// base carries the state shared by every manager.
type base struct {
	conn   Executor
	schema string
	table  string
}

func (b *base) Schema() string { return b.schema }
func (b *base) Table() string  { return b.table }

// ensureSchema creates the schema if it does not exist.
func (b *base) ensureSchema(ctx context.Context) error {
	if err := b.conn.Exec(ctx, database.CreateSchema(b.schema)); err != nil {
		return fmt.Errorf("create schema %s: %w", b.schema, err)
	}
	return nil
}

// votesManager owns the raw votes table.
type votesManager struct {
	base
	preserve bool
}

func (m *votesManager) Kind() Kind { return KindVotes }

// Provision recreates the votes table from scratch, or only creates it when
// missing if the manager preserves data.
func (m *votesManager) Provision(ctx context.Context) error {
	if err := m.ensureSchema(ctx); err != nil {
		return err
	}
	if m.preserve {
		if err := m.conn.Exec(ctx, database.CreateVotesTableIfNotExists(m.schema, m.table)); err != nil {
			return fmt.Errorf("create table %s.%s: %w", m.schema, m.table, err)
		}
		logging.Ctx(ctx).Debug().
			Str("schema", m.schema).
			Str("table", m.table).
			Msg("Votes table present")
		return nil
	}
	if err := m.conn.Exec(ctx, database.DropTable(m.schema, m.table)); err != nil {
		return fmt.Errorf("drop table %s.%s: %w", m.schema, m.table, err)
	}
	if err := m.conn.Exec(ctx, database.CreateVotesTable(m.schema, m.table)); err != nil {
		return fmt.Errorf("create table %s.%s: %w", m.schema, m.table, err)
	}

	logging.Ctx(ctx).Info().
		Str("schema", m.schema).
		Str("table", m.table).
		Msg("Votes table provisioned")
	return nil
}

// outlierWeeksManager owns the schema of the outlier view.
type outlierWeeksManager struct {
	base
}

func (m *outlierWeeksManager) Kind() Kind { return KindOutlierWeeks }

// Provision ensures the schema exists. The view is defined by the outlier job.
func (m *outlierWeeksManager) Provision(ctx context.Context) error {
	if err := m.ensureSchema(ctx); err != nil {
		return err
	}

	logging.Ctx(ctx).Debug().
		Str("schema", m.schema).
		Str("view", m.table).
		Msg("Outlier schema provisioned")
	return nil
}
