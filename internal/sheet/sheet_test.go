// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sheet

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/pdiddy/schedsheet/pkg/types"
)

func sampleWorkbook() types.Workbook {
	return types.Workbook{Sheets: []types.Table{
		{
			Name:    types.SheetCapacityQueues,
			Columns: []string{"name", "value"},
			Rows: [][]string{
				{"yarn.scheduler.capacity.root.default.capacity", "100"},
				{"yarn.scheduler.capacity.root.queues", "default"},
			},
		},
		{
			Name:    types.SheetGeneral,
			Columns: []string{"name", "value"},
			Rows:    [][]string{{"yarn.scheduler.capacity.maximum-applications", "10000"}},
		},
	}}
}

func TestWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.xlsx")
	require.NoError(t, Write(path, sampleWorkbook()))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{types.SheetCapacityQueues, types.SheetGeneral}, f.GetSheetList())

	rows, err := f.GetRows(types.SheetCapacityQueues)
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"name", "value"},
		{"yarn.scheduler.capacity.root.default.capacity", "100"},
		{"yarn.scheduler.capacity.root.queues", "default"},
	}, rows)

	rows, err = f.GetRows(types.SheetGeneral)
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"name", "value"},
		{"yarn.scheduler.capacity.maximum-applications", "10000"},
	}, rows)
}

func TestWrite_NumericLookingTextStaysText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.xlsx")
	wb := types.Workbook{Sheets: []types.Table{{
		Name:    "Users",
		Columns: []string{"name", "maxRunningApps"},
		Rows:    [][]string{{"alice", "05"}},
	}}}
	require.NoError(t, Write(path, wb))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	v, err := f.GetCellValue("Users", "B2")
	require.NoError(t, err)
	assert.Equal(t, "05", v)
}

func TestWrite_EmptyTableKeepsHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.xlsx")
	wb := types.Workbook{Sheets: []types.Table{{Name: "Users", Columns: []string{"name", "maxRunningApps"}}}}
	require.NoError(t, Write(path, wb))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Users")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"name", "maxRunningApps"}}, rows)
}

func TestWrite_InvalidWorkbookWritesNothing(t *testing.T) {
	tests := []struct {
		name string
		wb   types.Workbook
	}{
		{name: "no sheets", wb: types.Workbook{}},
		{name: "empty name", wb: types.Workbook{Sheets: []types.Table{{Name: ""}}}},
		{name: "long name", wb: types.Workbook{Sheets: []types.Table{{Name: "a sheet name that is far too long for excel"}}}},
		{name: "duplicate", wb: types.Workbook{Sheets: []types.Table{{Name: "Users"}, {Name: "users"}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			path := filepath.Join(dir, "report.xlsx")
			require.Error(t, Write(path, tt.wb))

			entries, err := os.ReadDir(dir)
			require.NoError(t, err)
			assert.Empty(t, entries)
		})
	}
}

func TestColumnWidths(t *testing.T) {
	tb := types.Table{
		Columns: []string{"name", "v"},
		Rows:    [][]string{{"a-fairly-long-queue-name", ""}},
	}
	w := columnWidths(tb)
	assert.Equal(t, []float64{26, minColWidth}, w)
}
