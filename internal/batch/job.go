// Voteweeks - Vote Ingestion and Weekly Outlier Detection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/voteweeks

package batch

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/tomtom215/voteweeks/internal/config"
	"github.com/tomtom215/voteweeks/internal/database"
	"github.com/tomtom215/voteweeks/internal/logging"
	"github.com/tomtom215/voteweeks/internal/metrics"
	"github.com/tomtom215/voteweeks/internal/models"
	"github.com/tomtom215/voteweeks/internal/schema"
)

// State is a step of the job lifecycle.
type State int

const (
	StateInitialized State = iota
	StateSchemasProvisioned
	StateTransformed
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateInitialized:
		return "initialized"
	case StateSchemasProvisioned:
		return "schemas_provisioned"
	case StateTransformed:
		return "transformed"
	case StateClosed:
		return "closed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Transformer is the operation-specific step of a job.
type Transformer interface {
	Transform(ctx context.Context, inputPath string) error
}

// Runner is a job that Run can drive. IngestJob and OutlierJob implement it
// by embedding *Job.
type Runner interface {
	Transformer
	Operation() Operation
	State() State
	Stats() models.RunStats
	core() *Job
}

// Job is the state shared by every operation: its connection, the schema
// kinds it provisions and the managers created for them.
// A Job owns its connection and is used for exactly one Run.
type Job struct {
	op         Operation
	conn       *database.Conn
	store      config.StoreConfig
	kinds      []schema.Kind
	schemaOpts []schema.Option

	mu       sync.Mutex
	managers map[schema.Kind]schema.Manager
	state    State
	started  bool
	stats    models.RunStats
}

func newJob(op Operation, conn *database.Conn, kinds []schema.Kind, store config.StoreConfig, opts ...schema.Option) *Job {
	return &Job{
		op:         op,
		conn:       conn,
		store:      store,
		kinds:      append([]schema.Kind(nil), kinds...),
		schemaOpts: opts,
		managers:   make(map[schema.Kind]schema.Manager),
		stats:      models.RunStats{Operation: op.String()},
	}
}

func (j *Job) core() *Job { return j }

// Operation returns the job's operation.
func (j *Job) Operation() Operation { return j.op }

// Conn returns the job's connection.
func (j *Job) Conn() *database.Conn { return j.conn }

// Kinds returns the schema kinds the job provisions, in order.
func (j *Job) Kinds() []schema.Kind {
	return append([]schema.Kind(nil), j.kinds...)
}

// State returns the current lifecycle state.
func (j *Job) State() State {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.state
}

// Stats returns the statistics of the job's run.
func (j *Job) Stats() models.RunStats {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.stats
}

// Manager returns the provisioned manager for kind.
func (j *Job) Manager(kind schema.Kind) (schema.Manager, bool) {
	j.mu.Lock()
	defer j.mu.Unlock()
	m, ok := j.managers[kind]
	return m, ok
}

// requireManager returns the manager for kind or ErrMissingSchemaManager.
func (j *Job) requireManager(kind schema.Kind) (schema.Manager, error) {
	m, ok := j.Manager(kind)
	if !ok {
		return nil, fmt.Errorf("%w: %s job needs %s", ErrMissingSchemaManager, j.op, kind)
	}
	return m, nil
}

// managerFor returns the memoized manager for kind, creating it if needed.
// The bool reports whether the manager was created by this call.
func (j *Job) managerFor(kind schema.Kind) (schema.Manager, bool, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if m, ok := j.managers[kind]; ok {
		return m, false, nil
	}
	m, err := schema.New(kind, j.conn, j.store, j.schemaOpts...)
	if err != nil {
		return nil, false, err
	}
	j.managers[kind] = m
	return m, true, nil
}

func (j *Job) setState(s State) {
	j.mu.Lock()
	j.state = s
	j.mu.Unlock()
}

func (j *Job) setRows(n int64) {
	j.mu.Lock()
	j.stats.Rows = n
	j.mu.Unlock()
}

// provision creates and provisions one manager per requested kind, in order.
func (j *Job) provision(ctx context.Context) error {
	for _, kind := range j.kinds {
		m, created, err := j.managerFor(kind)
		if err != nil {
			return fmt.Errorf("schema manager for %s: %w", kind, err)
		}
		if !created {
			continue
		}
		if err := m.Provision(ctx); err != nil {
			return fmt.Errorf("provision %s: %w", kind, err)
		}
	}
	return nil
}

// Run drives r through its lifecycle: provision schemas, transform, close.
// The connection is closed on every exit path.
func Run(ctx context.Context, r Runner, inputPath string) (err error) {
	job := r.core()

	job.mu.Lock()
	if job.started {
		job.mu.Unlock()
		return ErrJobAlreadyRun
	}
	job.started = true
	job.mu.Unlock()

	if logging.RunIDFromContext(ctx) == "" {
		ctx = logging.ContextWithNewRunID(ctx)
	}
	ctx = logging.ContextWithOperation(ctx, job.op.String())
	logger := logging.Ctx(ctx)

	start := time.Now()
	job.mu.Lock()
	job.stats.RunID = logging.RunIDFromContext(ctx)
	job.stats.StartTime = start
	job.mu.Unlock()

	logger.Info().
		Str("database", job.conn.Path()).
		Str("input", inputPath).
		Msg("Batch job started")

	defer func() {
		if closeErr := job.conn.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close connection: %w", closeErr)
		}
		job.setState(StateClosed)

		end := time.Now()
		job.mu.Lock()
		job.stats.EndTime = end
		rows := job.stats.Rows
		job.mu.Unlock()

		metrics.RecordJobRun(job.op.String(), end.Sub(start), err)
		if err != nil {
			logger.Error().Err(err).Dur("elapsed", end.Sub(start)).Msg("Batch job failed")
			return
		}
		logger.Info().
			Int64("rows", rows).
			Dur("elapsed", end.Sub(start)).
			Msg("Batch job completed")
	}()

	if err := job.provision(ctx); err != nil {
		return err
	}
	job.setState(StateSchemasProvisioned)

	if err := r.Transform(ctx, inputPath); err != nil {
		return fmt.Errorf("%s transform: %w", job.op, err)
	}
	job.setState(StateTransformed)

	return nil
}
