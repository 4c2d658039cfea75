// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store exports a workbook to a SQLite database, one table per sheet,
// so reports can be queried with SQL as well as opened in a spreadsheet.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"unicode"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/schedsheet/internal/fileutil"
	"github.com/pdiddy/schedsheet/pkg/types"
)

// sheetsTable records the original sheet name and position of each table.
const sheetsTable = "sheets"

// Write replaces the database at path with the contents of wb.
func Write(ctx context.Context, path string, wb types.Workbook) error {
	return fileutil.ReplaceAtomic(path, func(tmp string) error {
		db, err := sql.Open("sqlite3", tmp+"?_foreign_keys=on")
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		if err := writeWorkbook(ctx, db, wb); err != nil {
			db.Close()
			return err
		}
		return db.Close()
	})
}

func writeWorkbook(ctx context.Context, db *sql.DB, wb types.Workbook) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `CREATE TABLE `+sheetsTable+` (
		position INTEGER PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		table_name TEXT NOT NULL UNIQUE,
		row_count INTEGER NOT NULL
	)`); err != nil {
		return fmt.Errorf("creating %s table: %w", sheetsTable, err)
	}

	used := map[string]bool{sheetsTable: true}
	for i, t := range wb.Sheets {
		name := uniqueName(TableName(t.Name), used)
		if err := writeTable(ctx, tx, name, t); err != nil {
			return fmt.Errorf("sheet %q: %w", t.Name, err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO `+sheetsTable+` (position, name, table_name, row_count) VALUES (?, ?, ?, ?)`,
			i, t.Name, name, len(t.Rows),
		); err != nil {
			return fmt.Errorf("recording sheet %q: %w", t.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing: %w", err)
	}
	return nil
}

func writeTable(ctx context.Context, tx *sql.Tx, name string, t types.Table) error {
	cols := columnNames(t.Columns)
	defs := make([]string, len(cols))
	for i, c := range cols {
		defs[i] = quote(c) + " TEXT"
	}
	stmt := fmt.Sprintf("CREATE TABLE %s (row_number INTEGER PRIMARY KEY", quote(name))
	if len(defs) > 0 {
		stmt += ", " + strings.Join(defs, ", ")
	}
	stmt += ")"
	if _, err := tx.ExecContext(ctx, stmt); err != nil {
		return fmt.Errorf("creating table: %w", err)
	}
	if len(cols) == 0 {
		return nil
	}

	quoted := make([]string, len(cols))
	for i, c := range cols {
		quoted[i] = quote(c)
	}
	insert, err := tx.PrepareContext(ctx, fmt.Sprintf(
		"INSERT INTO %s (row_number, %s) VALUES (?%s)",
		quote(name), strings.Join(quoted, ", "), strings.Repeat(", ?", len(cols)),
	))
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer insert.Close()

	for r, row := range t.Rows {
		args := make([]any, len(cols)+1)
		args[0] = r + 1
		for i := range cols {
			if i < len(row) {
				args[i+1] = row[i]
			} else {
				args[i+1] = ""
			}
		}
		if _, err := insert.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("inserting row %d: %w", r+1, err)
		}
	}
	return nil
}

// TableName derives a SQL table name from a sheet name: lower case with
// runs of non-alphanumerics collapsed to "_" ("Queue Resources" becomes
// "queue_resources").
func TableName(sheet string) string {
	var b strings.Builder
	underscore := false
	for _, r := range strings.ToLower(sheet) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			underscore = false
			continue
		}
		if !underscore && b.Len() > 0 {
			b.WriteByte('_')
			underscore = true
		}
	}
	name := strings.TrimSuffix(b.String(), "_")
	if name == "" {
		return "sheet"
	}
	return name
}

func uniqueName(name string, used map[string]bool) string {
	candidate := name
	for i := 2; used[candidate]; i++ {
		candidate = fmt.Sprintf("%s_%d", name, i)
	}
	used[candidate] = true
	return candidate
}

// columnNames de-duplicates column names case-insensitively, as SQLite
// requires, and reserves row_number for the row index.
func columnNames(columns []string) []string {
	used := map[string]bool{"row_number": true}
	out := make([]string, len(columns))
	for i, c := range columns {
		if c == "" {
			c = fmt.Sprintf("column_%d", i+1)
		}
		candidate := c
		for n := 2; used[strings.ToLower(candidate)]; n++ {
			candidate = fmt.Sprintf("%s_%d", c, n)
		}
		used[strings.ToLower(candidate)] = true
		out[i] = candidate
	}
	return out
}

func quote(ident string) string {
	return `"` + strings.ReplaceAll(ident, `"`, `""`) + `"`
}
