// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/schedsheet/pkg/types"
)

func fairWorkbook() types.Workbook {
	return types.Workbook{Sheets: []types.Table{
		{
			Name:    types.SheetQueueResources,
			Columns: []string{"name", "maxMemory", "maxVcores"},
			Rows: [][]string{
				{"root", "8192 mb", "4 vcores"},
				{"etl", "2048 mb", ""},
			},
		},
		{
			Name:    types.SheetUsers,
			Columns: []string{"name", "maxRunningApps"},
		},
		{
			Name:    types.SheetQueues,
			Columns: []string{"name", "parent", "Name"},
			Rows:    [][]string{{"root", "", "dup"}},
		},
	}}
}

func openDB(t *testing.T, path string) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.db")
	require.NoError(t, Write(context.Background(), path, fairWorkbook()))

	db := openDB(t, path)

	rows, err := db.Query(`SELECT name, table_name, row_count FROM sheets ORDER BY position`)
	require.NoError(t, err)
	defer rows.Close()

	type sheetRow struct {
		name, table string
		count       int
	}
	var got []sheetRow
	for rows.Next() {
		var r sheetRow
		require.NoError(t, rows.Scan(&r.name, &r.table, &r.count))
		got = append(got, r)
	}
	require.NoError(t, rows.Err())
	assert.Equal(t, []sheetRow{
		{types.SheetQueueResources, "queue_resources", 2},
		{types.SheetUsers, "users", 0},
		{types.SheetQueues, "queues", 1},
	}, got)

	var mem, vcores string
	require.NoError(t, db.QueryRow(
		`SELECT maxMemory, maxVcores FROM queue_resources WHERE name = ?`, "etl",
	).Scan(&mem, &vcores))
	assert.Equal(t, "2048 mb", mem)
	assert.Equal(t, "", vcores)

	var dup string
	require.NoError(t, db.QueryRow(`SELECT Name_2 FROM queues WHERE row_number = 1`).Scan(&dup))
	assert.Equal(t, "dup", dup)
}

func TestWrite_ReplacesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.db")
	ctx := context.Background()
	require.NoError(t, Write(ctx, path, fairWorkbook()))

	wb := types.Workbook{Sheets: []types.Table{{Name: types.SheetUsers, Columns: []string{"name"}, Rows: [][]string{{"alice"}}}}}
	require.NoError(t, Write(ctx, path, wb))

	db := openDB(t, path)
	var n int
	require.NoError(t, db.QueryRow(`SELECT count(*) FROM sheets`).Scan(&n))
	assert.Equal(t, 1, n)
}

func TestWrite_CancelledContextWritesNothing(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "report.db")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.Error(t, Write(ctx, path, fairWorkbook()))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestTableName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Queue Resources", "queue_resources"},
		{"Capacity Queue Properties", "capacity_queue_properties"},
		{"  Users  ", "users"},
		{"a--b", "a_b"},
		{"***", "sheet"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TableName(tt.in), tt.in)
	}
}

func TestColumnNames(t *testing.T) {
	got := columnNames([]string{"name", "NAME", "", "row_number"})
	assert.Equal(t, []string{"name", "NAME_2", "column_3", "row_number_2"}, got)
}
