// Voteweeks - Vote Ingestion and Weekly Outlier Detection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/voteweeks

package batch

import (
	"errors"
	"fmt"
	"slices"

	"github.com/tomtom215/voteweeks/internal/config"
	"github.com/tomtom215/voteweeks/internal/database"
	"github.com/tomtom215/voteweeks/internal/schema"
)

// New builds the job for op with a fresh connection to cfg.Database.
// kinds are provisioned in the given order and must include every kind
// op.RequiredKinds names.
func New(op Operation, kinds []schema.Kind, cfg *config.Config) (Runner, error) {
	if cfg == nil {
		return nil, errors.New("batch job requires a configuration")
	}
	required := op.RequiredKinds()
	if required == nil {
		return nil, fmt.Errorf("%w: %v", ErrUnknownOperation, op)
	}
	for _, k := range kinds {
		if !k.Valid() {
			return nil, fmt.Errorf("%w: %v", schema.ErrUnknownSchemaKind, k)
		}
	}
	for _, k := range required {
		if !slices.Contains(kinds, k) {
			return nil, fmt.Errorf("%w: %s job needs %s", ErrMissingSchemaManager, op, k)
		}
	}

	conn, err := database.Open(&cfg.Database)
	if err != nil {
		return nil, err
	}

	switch op {
	case OperationIngest:
		return &IngestJob{Job: newJob(op, conn, kinds, cfg.Store)}, nil
	default:
		// The outlier job reads the votes table, so provisioning must not reset it.
		job := newJob(op, conn, kinds, cfg.Store, schema.PreserveData())
		return &OutlierJob{Job: job, threshold: DefaultThreshold}, nil
	}
}
