// Voteweeks - Vote Ingestion and Weekly Outlier Detection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/voteweeks

/*
Package schema provisions the schemas and tables each batch job depends on.

A Manager is bound to one schema kind and one (schema, table) pair. Its
Provision method brings the store into the state its job expects, and is
safe to call on every run:

  - KindVotes: creates the schema if missing, then drops and recreates the
    votes table. Every ingest run is a full refresh.
  - KindOutlierWeeks: creates the schema if missing. The outlier view itself
    is (re)defined by the outlier job.

With the PreserveData option the votes manager only creates the table when
it is missing. Jobs that read the votes table without reloading it use this
so that provisioning never discards ingested data.

Managers are created through New, which validates the configured identifiers
and performs no I/O. They hold a non-owning reference to the connection and
never close it.
*/
package schema
