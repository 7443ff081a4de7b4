// Voteweeks - Vote Ingestion and Weekly Outlier Detection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/voteweeks

package models

import (
	"bytes"
	"fmt"
	"strconv"
	"time"
)

// FlexInt64 accepts both JSON numbers and numeric strings.
// Stack Exchange dumps encode ids either way.
type FlexInt64 int64

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexInt64) UnmarshalJSON(b []byte) error {
	b = bytes.Trim(b, `"`)
	v, err := strconv.ParseInt(string(b), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid integer %q: %w", b, err)
	}
	*f = FlexInt64(v)
	return nil
}

// Vote is a single vote record from the input file.
// Pointer fields distinguish a missing or null value from zero.
type Vote struct {
	ID           *FlexInt64 `json:"Id" validate:"required"`
	UserID       *FlexInt64 `json:"UserId"`
	PostID       *FlexInt64 `json:"PostId" validate:"required"`
	VoteTypeID   *FlexInt64 `json:"VoteTypeId" validate:"required"`
	CreationDate string     `json:"CreationDate" validate:"required"`
}

// creationDateLayouts are the timestamp shapes seen in vote dumps.
var creationDateLayouts = []string{
	"2006-01-02T15:04:05.000",
	"2006-01-02T15:04:05",
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// CreatedAt parses CreationDate.
func (v *Vote) CreatedAt() (time.Time, error) {
	for _, layout := range creationDateLayouts {
		if t, err := time.Parse(layout, v.CreationDate); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized CreationDate %q", v.CreationDate)
}
