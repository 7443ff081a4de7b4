// Voteweeks - Vote Ingestion and Weekly Outlier Detection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/voteweeks

package batch

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/voteweeks/internal/database"
	"github.com/tomtom215/voteweeks/internal/logging"
	"github.com/tomtom215/voteweeks/internal/metrics"
	"github.com/tomtom215/voteweeks/internal/models"
	"github.com/tomtom215/voteweeks/internal/schema"
	"github.com/tomtom215/voteweeks/internal/validation"
)

// maxRecordBytes bounds a single input line read by checkFirstRecord.
const maxRecordBytes = 4 << 20

// errEmptyInput is returned by checkFirstRecord for a file with no records.
var errEmptyInput = errors.New("input has no records")

// IngestJob loads a newline-delimited JSON file of votes into the votes table.
type IngestJob struct {
	*Job
}

// Transform bulk-loads every record of inputPath into the votes table.
// The insert is a single statement, so a constraint violation on any record
// leaves the table without any of the file's rows.
func (j *IngestJob) Transform(ctx context.Context, inputPath string) error {
	votes, err := j.requireManager(schema.KindVotes)
	if err != nil {
		return err
	}
	logger := logging.Ctx(ctx)

	if err := checkFirstRecord(inputPath); err != nil {
		if errors.Is(err, errEmptyInput) {
			logger.Warn().Str("input", inputPath).Msg("Input file has no records, votes table left empty")
			j.setRows(0)
			metrics.VotesIngested.Set(0)
			return nil
		}
		return err
	}

	logger.Info().Str("input", inputPath).Msg("Started ingestion")
	start := time.Now()

	insert := database.InsertVotesFromJSON(votes.Schema(), votes.Table(), inputPath)
	if err := j.conn.Exec(ctx, insert); err != nil {
		return fmt.Errorf("load %s: %w", inputPath, err)
	}

	var rows int64
	if err := j.conn.QueryRow(ctx, database.CountRows(votes.Schema(), votes.Table())).Scan(&rows); err != nil {
		return fmt.Errorf("count ingested votes: %w", err)
	}
	j.setRows(rows)
	metrics.VotesIngested.Set(float64(rows))

	logger.Info().
		Str("input", inputPath).
		Int64("rows", rows).
		Dur("elapsed", time.Since(start)).
		Msg("Completed ingestion")
	return nil
}

// checkFirstRecord decodes and validates the first record of the file so that an
// unreadable or malformed input fails before the votes table is loaded.
func checkFirstRecord(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	defer func() { _ = f.Close() }()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxRecordBytes)

	line := 0
	for scanner.Scan() {
		line++
		record := bytes.TrimSpace(scanner.Bytes())
		if len(record) == 0 {
			continue
		}
		return validateRecord(line, record)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("%w: read %s: %w", ErrInvalidInput, path, err)
	}
	return errEmptyInput
}

func validateRecord(line int, record []byte) error {
	var vote models.Vote
	if err := json.Unmarshal(record, &vote); err != nil {
		return fmt.Errorf("%w: line %d: %w", ErrInvalidInput, line, err)
	}
	if verr := validation.ValidateStruct(&vote); verr != nil {
		return fmt.Errorf("%w: line %d: %w", ErrInvalidInput, line, verr)
	}
	if _, err := vote.CreatedAt(); err != nil {
		return fmt.Errorf("%w: line %d: %w", ErrInvalidInput, line, err)
	}
	return nil
}
