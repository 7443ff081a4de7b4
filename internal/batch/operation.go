// Voteweeks - Vote Ingestion and Weekly Outlier Detection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/voteweeks

package batch

import (
	"fmt"
	"strings"

	"github.com/tomtom215/voteweeks/internal/schema"
)

// Operation identifies a batch operation.
type Operation int

const (
	// OperationIngest loads the input file into the votes table.
	OperationIngest Operation = iota + 1

	// OperationOutlier derives the outlier weeks view.
	OperationOutlier
)

func (op Operation) String() string {
	switch op {
	case OperationIngest:
		return "ingest"
	case OperationOutlier:
		return "outlier"
	default:
		return fmt.Sprintf("Operation(%d)", int(op))
	}
}

// ParseOperation converts an operation name into an Operation.
func ParseOperation(s string) (Operation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ingest":
		return OperationIngest, nil
	case "outlier", "outliers":
		return OperationOutlier, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownOperation, s)
	}
}

// RequiredKinds returns the schema kinds the operation's transform reads or writes.
func (op Operation) RequiredKinds() []schema.Kind {
	switch op {
	case OperationIngest:
		return []schema.Kind{schema.KindVotes}
	case OperationOutlier:
		return []schema.Kind{schema.KindVotes, schema.KindOutlierWeeks}
	default:
		return nil
	}
}
