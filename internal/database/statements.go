// Voteweeks - Vote Ingestion and Weekly Outlier Detection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/voteweeks

package database

import (
	"fmt"
	"strconv"
	"strings"
)

// VoteColumns are the columns read from the input file and stored in the
// votes table, in table order. Any other input field is ignored.
var VoteColumns = []string{"Id", "UserId", "PostId", "VoteTypeId", "CreationDate"}

// votesTableColumns is the votes table layout.
const votesTableColumns = `
    Id INTEGER PRIMARY KEY,
    UserId INTEGER,
    PostId INTEGER NOT NULL,
    VoteTypeId INTEGER NOT NULL,
    CreationDate TIMESTAMP NOT NULL`

// outlierViewBody computes weekly vote counts per (year, week_number) and keeps
// the weeks whose count deviates from their year's mean weekly count by more
// than the threshold. Dates in ISO week 52 with day-of-month below 7 belong to
// the first days of January and are bucketed as week 0 of their calendar year.
const outlierViewBody = `
WITH buckets AS (
    SELECT
        EXTRACT(year FROM CreationDate) AS year,
        CASE
            WHEN EXTRACT(week FROM CreationDate) = 52 AND EXTRACT(day FROM CreationDate) < 7 THEN 0
            ELSE EXTRACT(week FROM CreationDate)
        END AS week_number,
        Id
    FROM %[1]s
),
weekly AS (
    SELECT year, week_number, COUNT(Id) AS vote_count
    FROM buckets
    GROUP BY year, week_number
),
yearly AS (
    SELECT year, AVG(vote_count) AS avg_vote_count
    FROM weekly
    GROUP BY year
)
SELECT
    CAST(w.year AS INTEGER) AS year,
    CAST(w.week_number AS INTEGER) AS week_number,
    CAST(w.vote_count AS INTEGER) AS vote_count
FROM weekly w
JOIN yearly y ON w.year = y.year
WHERE abs(1 - w.vote_count / NULLIF(y.avg_vote_count, 0)) > %[2]s
ORDER BY w.year, w.week_number`

// QuoteIdent quotes an identifier for DuckDB, doubling embedded quotes.
func QuoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// QuoteLiteral quotes a string literal for DuckDB, doubling embedded quotes.
func QuoteLiteral(value string) string {
	return "'" + strings.ReplaceAll(value, "'", "''") + "'"
}

// QualifiedName returns "schema"."name".
func QualifiedName(schema, name string) string {
	return QuoteIdent(schema) + "." + QuoteIdent(name)
}

// CreateSchema returns the statement that creates schema if it does not exist.
func CreateSchema(schema string) string {
	return "CREATE SCHEMA IF NOT EXISTS " + QuoteIdent(schema)
}

// DropTable returns the statement that drops a table if it exists.
func DropTable(schema, table string) string {
	return "DROP TABLE IF EXISTS " + QualifiedName(schema, table)
}

// CreateVotesTable returns the statement that creates the votes table.
func CreateVotesTable(schema, table string) string {
	return fmt.Sprintf("CREATE TABLE %s (%s\n)", QualifiedName(schema, table), votesTableColumns)
}

// CreateVotesTableIfNotExists is CreateVotesTable for an existing store.
func CreateVotesTableIfNotExists(schema, table string) string {
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s\n)", QualifiedName(schema, table), votesTableColumns)
}

// InsertVotesFromJSON returns the set-based insert that loads every record of
// a newline-delimited JSON file into the votes table. Table functions do not
// take bound parameters, so the path is embedded as a quoted literal.
func InsertVotesFromJSON(schema, table, path string) string {
	cols := quoteColumns(VoteColumns)
	return fmt.Sprintf(
		"INSERT INTO %s (%s) SELECT %s FROM read_json_auto(%s, format = 'newline_delimited')",
		QualifiedName(schema, table), cols, cols, QuoteLiteral(path))
}

// CreateOutlierView returns the statement that (re)defines the outlier view
// schema.view over votesSchema.votesTable using the given relative deviation
// threshold.
func CreateOutlierView(schema, view, votesSchema, votesTable string, threshold float64) string {
	body := fmt.Sprintf(outlierViewBody,
		QualifiedName(votesSchema, votesTable),
		strconv.FormatFloat(threshold, 'f', -1, 64))
	return fmt.Sprintf("CREATE OR REPLACE VIEW %s AS%s", QualifiedName(schema, view), body)
}

// SelectOutliers returns the query that reads the outlier view in order.
func SelectOutliers(schema, view string) string {
	return fmt.Sprintf("SELECT year, week_number, vote_count FROM %s ORDER BY year, week_number",
		QualifiedName(schema, view))
}

// CountRows returns the query that counts the rows of a table or view.
func CountRows(schema, table string) string {
	return "SELECT COUNT(*) FROM " + QualifiedName(schema, table)
}

func quoteColumns(cols []string) string {
	quoted := make([]string, len(cols))
	for i, c := range cols {
		quoted[i] = QuoteIdent(c)
	}
	return strings.Join(quoted, ", ")
}
