// Voteweeks - Vote Ingestion and Weekly Outlier Detection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/voteweeks

package database

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestQuoting(t *testing.T) {
	checkStringEqual(t, "QuoteIdent", QuoteIdent("votes"), `"votes"`)
	checkStringEqual(t, "QuoteIdent embedded", QuoteIdent(`a"b`), `"a""b"`)
	checkStringEqual(t, "QuoteLiteral", QuoteLiteral("it's.jsonl"), `'it''s.jsonl'`)
	checkStringEqual(t, "QualifiedName", QualifiedName("blog_analysis", "votes"), `"blog_analysis"."votes"`)
}

func TestStatementText(t *testing.T) {
	checkStringEqual(t, "CreateSchema", CreateSchema("s"), `CREATE SCHEMA IF NOT EXISTS "s"`)
	checkStringEqual(t, "DropTable", DropTable("s", "t"), `DROP TABLE IF EXISTS "s"."t"`)
	if !strings.HasPrefix(CreateVotesTableIfNotExists("s", "v"), `CREATE TABLE IF NOT EXISTS "s"."v"`) {
		t.Errorf("unexpected statement: %s", CreateVotesTableIfNotExists("s", "v"))
	}

	insert := InsertVotesFromJSON("s", "votes", "/data/votes.jsonl")
	for _, want := range []string{
		`INSERT INTO "s"."votes" ("Id", "UserId", "PostId", "VoteTypeId", "CreationDate")`,
		`read_json_auto('/data/votes.jsonl', format = 'newline_delimited')`,
	} {
		if !strings.Contains(insert, want) {
			t.Errorf("insert statement missing %q:\n%s", want, insert)
		}
	}

	view := CreateOutlierView("s", "outlier_weeks", "s", "votes", 0.2)
	for _, want := range []string{
		`CREATE OR REPLACE VIEW "s"."outlier_weeks" AS`,
		`FROM "s"."votes"`,
		"> 0.2",
		"NULLIF(y.avg_vote_count, 0)",
	} {
		if !strings.Contains(view, want) {
			t.Errorf("view statement missing %q:\n%s", want, view)
		}
	}
}

func TestInsertVotesFromJSON_LoadsNamedColumns(t *testing.T) {
	conn := openTestConn(t)
	ctx := context.Background()

	input := filepath.Join(t.TempDir(), "it's votes.jsonl")
	lines := strings.Join([]string{
		`{"Id":1,"UserId":null,"PostId":10,"VoteTypeId":2,"CreationDate":"2022-01-02T00:00:00.000"}`,
		`{"Id":2,"UserId":5,"PostId":10,"VoteTypeId":9,"BountyAmount":50,"CreationDate":"2022-01-03T10:00:00.000"}`,
	}, "\n") + "\n"
	checkNoError(t, os.WriteFile(input, []byte(lines), 0o600))

	checkNoError(t, conn.Exec(ctx, CreateSchema("s")))
	checkNoError(t, conn.Exec(ctx, CreateVotesTable("s", "votes")))
	checkNoError(t, conn.Exec(ctx, InsertVotesFromJSON("s", "votes", input)))
	checkInt64Equal(t, "rows", countRows(t, conn, "s", "votes"), 2)

	var nullUsers int64
	checkNoError(t, conn.QueryRow(ctx, `SELECT COUNT(*) FROM "s"."votes" WHERE UserId IS NULL`).Scan(&nullUsers))
	checkInt64Equal(t, "null UserId", nullUsers, 1)
}

func TestCreateOutlierView_EmptyTable(t *testing.T) {
	conn := openTestConn(t)
	ctx := context.Background()

	checkNoError(t, conn.Exec(ctx, CreateSchema("s")))
	checkNoError(t, conn.Exec(ctx, CreateVotesTable("s", "votes")))
	checkNoError(t, conn.Exec(ctx, CreateOutlierView("s", "outlier_weeks", "s", "votes", 0.2)))
	checkInt64Equal(t, "outliers", countRows(t, conn, "s", "outlier_weeks"), 0)

	rows, err := conn.Query(ctx, SelectOutliers("s", "outlier_weeks"))
	checkNoError(t, err)
	defer closeQuietly(rows)
	cols, err := rows.Columns()
	checkNoError(t, err)
	checkStringEqual(t, "columns", strings.Join(cols, ","), "year,week_number,vote_count")
}
