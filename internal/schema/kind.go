// Voteweeks - Vote Ingestion and Weekly Outlier Detection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/voteweeks

package schema

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownSchemaKind is returned for a schema kind outside the closed set.
var ErrUnknownSchemaKind = errors.New("unknown schema kind")

// Kind identifies which table a Manager provisions.
type Kind int

const (
	// KindVotes is the raw votes table.
	KindVotes Kind = iota + 1

	// KindOutlierWeeks is the derived outlier view.
	KindOutlierWeeks
)

// String returns the configuration name of the kind.
func (k Kind) String() string {
	switch k {
	case KindVotes:
		return "votes"
	case KindOutlierWeeks:
		return "outlier_weeks"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	return k == KindVotes || k == KindOutlierWeeks
}

// ParseKind converts a kind name into a Kind.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "votes":
		return KindVotes, nil
	case "outlier_weeks", "outliers":
		return KindOutlierWeeks, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownSchemaKind, s)
	}
}
