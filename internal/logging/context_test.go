// Voteweeks - Vote Ingestion and Weekly Outlier Detection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/voteweeks

package logging

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestGenerateRunID(t *testing.T) {
	t.Parallel()

	id1 := GenerateRunID()
	id2 := GenerateRunID()

	if len(id1) != 8 {
		t.Errorf("expected 8-character run ID, got %d", len(id1))
	}
	if id1 == id2 {
		t.Error("expected unique run IDs")
	}
}

func TestRunIDContext(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	if id := RunIDFromContext(ctx); id != "" {
		t.Errorf("expected empty run ID, got %s", id)
	}

	ctx = ContextWithRunID(ctx, "abc12345")
	if id := RunIDFromContext(ctx); id != "abc12345" {
		t.Errorf("expected run ID 'abc12345', got %s", id)
	}

	ctx = ContextWithNewRunID(context.Background())
	if id := RunIDFromContext(ctx); len(id) != 8 {
		t.Errorf("expected generated run ID, got %q", id)
	}
}

func TestCtxAddsFields(t *testing.T) {
	var buf bytes.Buffer

	SetLogger(NewTestLogger(&buf))
	t.Cleanup(func() { Init(DefaultConfig()) })

	ctx := ContextWithRunID(context.Background(), "run00001")
	ctx = ContextWithOperation(ctx, "ingest")

	Ctx(ctx).Info().Msg("provisioned")

	output := buf.String()
	if !strings.Contains(output, `"run_id":"run00001"`) {
		t.Errorf("expected run_id in output: %s", output)
	}
	if !strings.Contains(output, `"operation":"ingest"`) {
		t.Errorf("expected operation in output: %s", output)
	}
}

func TestCtxWithoutFields(t *testing.T) {
	var buf bytes.Buffer

	SetLogger(NewTestLogger(&buf))
	t.Cleanup(func() { Init(DefaultConfig()) })

	Ctx(context.Background()).Info().Msg("plain")

	if strings.Contains(buf.String(), "run_id") {
		t.Errorf("did not expect run_id in output: %s", buf.String())
	}
}
