// Voteweeks - Vote Ingestion and Weekly Outlier Detection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/voteweeks

package logging

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type contextKey string

const (
	runIDKey     contextKey = "run_id"
	operationKey contextKey = "operation"
)

// GenerateRunID creates a new run ID.
// Returns the first 8 characters of a UUID for readability.
func GenerateRunID() string {
	return uuid.New().String()[:8]
}

// ContextWithRunID returns a new context carrying the given run ID.
func ContextWithRunID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, runIDKey, id)
}

// ContextWithNewRunID returns a context with a freshly generated run ID.
func ContextWithNewRunID(ctx context.Context) context.Context {
	return ContextWithRunID(ctx, GenerateRunID())
}

// RunIDFromContext retrieves the run ID from context.
// Returns empty string if not present.
func RunIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(runIDKey).(string); ok {
		return id
	}
	return ""
}

// ContextWithOperation records the batch operation name on the context.
func ContextWithOperation(ctx context.Context, op string) context.Context {
	return context.WithValue(ctx, operationKey, op)
}

// OperationFromContext retrieves the batch operation name from context.
func OperationFromContext(ctx context.Context) string {
	if op, ok := ctx.Value(operationKey).(string); ok {
		return op
	}
	return ""
}

// Ctx returns a logger with the run_id and operation fields of ctx added.
//
//	logging.Ctx(ctx).Info().Msg("Provisioning schemas")
func Ctx(ctx context.Context) *zerolog.Logger {
	logCtx := Logger().With()
	if id := RunIDFromContext(ctx); id != "" {
		logCtx = logCtx.Str("run_id", id)
	}
	if op := OperationFromContext(ctx); op != "" {
		logCtx = logCtx.Str("operation", op)
	}
	l := logCtx.Logger()
	return &l
}
