// Voteweeks - Vote Ingestion and Weekly Outlier Detection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/voteweeks

/*
Package batch runs the vote pipeline's batch operations.

Every operation follows the same lifecycle, driven by Run:

	Initialized -> SchemasProvisioned -> Transformed -> Closed

 1. For each schema kind the job requested, in order, a schema.Manager is
    created (once per kind) and provisioned.
 2. The operation's Transform runs against the provisioned store.
 3. The connection is closed. This happens on every exit path.

Operations:

  - OperationIngest (IngestJob): bulk-loads a newline-delimited JSON file of
    votes into the votes table with one set-based INSERT. The table is
    recreated first, so every ingest is a full refresh.
  - OperationOutlier (OutlierJob): defines the outlier view over the votes
    table and reads it back. A week is an outlier when its vote count
    deviates from its year's mean weekly count by more than DefaultThreshold.

Jobs are built by New and are single-use: a second Run returns
ErrJobAlreadyRun.

Example:

	job, err := batch.New(batch.OperationIngest, []schema.Kind{schema.KindVotes}, cfg)
	if err != nil {
	    return err
	}
	if err := batch.Run(ctx, job, cfg.Ingest.InputPath); err != nil {
	    return err
	}
*/
package batch
