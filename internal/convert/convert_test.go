// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/pdiddy/schedsheet/internal/xmltree"
	"github.com/pdiddy/schedsheet/pkg/types"
)

const capacityDoc = `<?xml version="1.0"?>
<configuration>
  <property><name>yarn.scheduler.capacity.root.queues</name><value>default</value></property>
  <property><name>yarn.scheduler.capacity.maximum-applications</name><value>10000</value></property>
</configuration>`

const fairDoc = `<?xml version="1.0"?>
<allocations>
  <queue name="root">
    <queue name="default"/>
  </queue>
</allocations>`

// writeInput creates a file with the given content in dir and returns its path.
func writeInput(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDetectSchema(t *testing.T) {
	tests := []struct {
		doc     string
		want    Schema
		wantErr bool
	}{
		{doc: capacityDoc, want: SchemaCapacity},
		{doc: fairDoc, want: SchemaFair},
		{doc: "<html/>", wantErr: true},
	}
	for _, tt := range tests {
		root, err := xmltree.Parse(strings.NewReader(tt.doc))
		require.NoError(t, err)

		got, err := DetectSchema(root)
		if tt.wantErr {
			assert.ErrorIs(t, err, ErrUnknownSchema)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestConvertFile_Capacity(t *testing.T) {
	dir := t.TempDir()
	in := writeInput(t, dir, "capacity-scheduler.xml", capacityDoc)
	out := filepath.Join(dir, "report.xlsx")

	var log bytes.Buffer
	err := ConvertFile(context.Background(), Capacity{}, types.DefaultConfig(), in, out, "", &log)
	require.NoError(t, err)
	assert.Contains(t, log.String(), "wrote 2 sheets, 2 rows (2 properties (1 queue, 1 general))")

	f, err := excelize.OpenFile(out)
	require.NoError(t, err)
	defer f.Close()

	queue, err := f.GetRows(types.SheetCapacityQueues)
	require.NoError(t, err)
	assert.Len(t, queue, 2)
	general, err := f.GetRows(types.SheetGeneral)
	require.NoError(t, err)
	assert.Len(t, general, 2)
}

func TestConvertFile_FairDetected(t *testing.T) {
	dir := t.TempDir()
	in := writeInput(t, dir, "fair-scheduler.xml", fairDoc)
	out := filepath.Join(dir, "report.xlsx")

	var log bytes.Buffer
	require.NoError(t, ConvertFile(context.Background(), nil, types.DefaultConfig(), in, out, "", &log))
	assert.Contains(t, log.String(), "wrote 3 sheets, 4 rows (2 queues, 0 users)")

	f, err := excelize.OpenFile(out)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{types.SheetQueueResources, types.SheetUsers, types.SheetQueues}, f.GetSheetList())
	for cell, want := range map[string]string{
		"A1": "name", "B1": "parent",
		"A2": "default", "B2": "root",
		"A3": "root", "B3": "",
	} {
		v, err := f.GetCellValue(types.SheetQueues, cell)
		require.NoError(t, err)
		assert.Equal(t, want, v, cell)
	}
}

func TestConvertFile_FailuresWriteNothing(t *testing.T) {
	tests := []struct {
		name    string
		content string
		missing bool
		wantErr error
	}{
		{name: "truncated document", content: "<configuration><property><name>a</name>"},
		{name: "unknown root", content: "<html/>", wantErr: ErrUnknownSchema},
		{name: "missing input", missing: true, wantErr: os.ErrNotExist},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			in := filepath.Join(dir, "in.xml")
			if !tt.missing {
				writeInput(t, dir, "in.xml", tt.content)
			}
			out := filepath.Join(dir, "report.xlsx")

			var log bytes.Buffer
			err := ConvertFile(context.Background(), nil, types.DefaultConfig(), in, out, "", &log)
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
			}
			_, statErr := os.Stat(out)
			assert.True(t, os.IsNotExist(statErr))
			assert.Empty(t, log.String())
		})
	}
}

func TestConvertFile_MalformedKeepsExistingOutput(t *testing.T) {
	dir := t.TempDir()
	in := writeInput(t, dir, "in.xml", "<allocations><queue>")
	out := writeInput(t, dir, "report.xlsx", "previous report")

	err := ConvertFile(context.Background(), Fair{}, types.DefaultConfig(), in, out, "", &bytes.Buffer{})
	var se *xmltree.SyntaxError
	require.ErrorAs(t, err, &se)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "previous report", string(data))
}

func TestFair_TotalsToggle(t *testing.T) {
	root, err := xmltree.Parse(strings.NewReader(`<allocations>
  <queue name="a"><maxResources>2048 mb, 2 vcores</maxResources></queue>
  <queue name="b"><maxResources>4096 mb, 4 vcores</maxResources></queue>
</allocations>`))
	require.NoError(t, err)

	wb, desc, err := Fair{}.Convert(root)
	require.NoError(t, err)
	res, _ := wb.Sheet(types.SheetQueueResources)
	assert.Len(t, res.Rows, 2)
	assert.NotContains(t, desc, "totals")

	wb, desc, err = Fair{Config: types.FairConfig{Totals: true}}.Convert(root)
	require.NoError(t, err)
	res, _ = wb.Sheet(types.SheetQueueResources)
	require.Len(t, res.Rows, 3)
	assert.Equal(t, []string{"Total", "6144 mb", "6 vcores", ""}, res.Rows[2])
	assert.Contains(t, desc, "totals row")
}

func TestOutputPath(t *testing.T) {
	assert.Equal(t, filepath.Join("out", "fair.xlsx"), OutputPath("conf/fair.xml", "out", ""))
	assert.Equal(t, filepath.Join("out", "fair.db"), OutputPath("fair.xml", "out", types.FormatSQLite))
	assert.Equal(t, filepath.Join("out", "fair.yaml"), OutputPath("fair.xml", "out", types.FormatYAML))
}

func TestConvertBatch(t *testing.T) {
	dir := t.TempDir()
	inputs := []string{
		writeInput(t, dir, "capacity.xml", capacityDoc),
		writeInput(t, dir, "fair.xml", fairDoc),
		writeInput(t, dir, "broken.xml", "<allocations>"),
	}
	outDir := filepath.Join(dir, "reports")
	require.NoError(t, os.MkdirAll(outDir, 0o755))
	writeInput(t, outDir, "fair.xlsx", "existing")

	var log bytes.Buffer
	result := ConvertBatch(context.Background(), types.DefaultConfig(), inputs, BatchOptions{OutDir: outDir}, &log)

	assert.Equal(t, BatchResult{Converted: 1, Skipped: 1, Failed: 1}, result)
	assert.True(t, result.HasFailures())
	assert.Equal(t, 3, result.Total())
	assert.Contains(t, log.String(), "converted: wrote 2 sheets")
	assert.Contains(t, log.String(), "skipped:")
	assert.Contains(t, log.String(), "failed:  "+inputs[2])
	assert.Contains(t, log.String(), "Batch summary: 1 converted, 1 skipped, 1 failed (total: 3)")

	_, err := os.Stat(filepath.Join(outDir, "broken.xlsx"))
	assert.True(t, os.IsNotExist(err))
}

func TestConvertBatch_Force(t *testing.T) {
	dir := t.TempDir()
	in := writeInput(t, dir, "fair.xml", fairDoc)
	outDir := filepath.Join(dir, "reports")
	require.NoError(t, os.MkdirAll(outDir, 0o755))
	writeInput(t, outDir, "fair.yaml", "existing")

	var log bytes.Buffer
	result := ConvertBatch(context.Background(), types.DefaultConfig(), []string{in},
		BatchOptions{OutDir: outDir, Format: types.FormatYAML, Force: true}, &log)
	assert.Equal(t, BatchResult{Converted: 1}, result)

	data, err := os.ReadFile(filepath.Join(outDir, "fair.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "Queue Resources")
}

func TestConvertBatch_SameBaseNameFails(t *testing.T) {
	dir := t.TempDir()
	for _, sub := range []string{"east", "west"} {
		require.NoError(t, os.MkdirAll(filepath.Join(dir, sub), 0o755))
	}
	first := writeInput(t, filepath.Join(dir, "east"), "fair.xml", fairDoc)
	second := writeInput(t, filepath.Join(dir, "west"), "fair.xml", capacityDoc)
	outDir := filepath.Join(dir, "reports")

	for _, force := range []bool{false, true} {
		var log bytes.Buffer
		result := ConvertBatch(context.Background(), types.DefaultConfig(), []string{first, second},
			BatchOptions{OutDir: outDir, Format: types.FormatYAML, Force: force}, &log)

		assert.Equal(t, 1, result.Failed, "force=%v", force)
		assert.True(t, result.HasFailures())
		assert.Contains(t, log.String(), "failed:  "+second+" (output "+filepath.Join(outDir, "fair.yaml")+" already claimed by "+first+")")

		data, err := os.ReadFile(filepath.Join(outDir, "fair.yaml"))
		require.NoError(t, err)
		assert.Contains(t, string(data), "Queue Resources")
		assert.NotContains(t, string(data), "General Properties")
	}
}
