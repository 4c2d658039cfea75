// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package sheet writes a workbook to an Excel (.xlsx) file, one worksheet
// per table with the column names as a bold header row.
package sheet

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"github.com/pdiddy/schedsheet/internal/fileutil"
	"github.com/pdiddy/schedsheet/pkg/types"
)

const (
	// maxSheetName is Excel's limit on worksheet name length.
	maxSheetName = 31

	minColWidth = 8
	maxColWidth = 80
)

// Write serializes wb to an .xlsx file at path. The file is replaced only if
// the whole workbook was written.
func Write(path string, wb types.Workbook) error {
	f, err := Build(wb)
	if err != nil {
		return err
	}
	defer f.Close()

	return fileutil.WriteAtomic(path, func(w io.Writer) error {
		if _, err := f.WriteTo(w); err != nil {
			return fmt.Errorf("writing workbook: %w", err)
		}
		return nil
	})
}

// Build lays out wb in a new in-memory excelize file. The caller closes it.
func Build(wb types.Workbook) (*excelize.File, error) {
	if len(wb.Sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	if err := validateNames(wb); err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("creating header style: %w", err)
	}

	for i, t := range wb.Sheets {
		if i == 0 {
			err = f.SetSheetName(f.GetSheetName(0), t.Name)
		} else {
			_, err = f.NewSheet(t.Name)
		}
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("creating sheet %q: %w", t.Name, err)
		}
		if err := writeTable(f, t, bold); err != nil {
			f.Close()
			return nil, fmt.Errorf("sheet %q: %w", t.Name, err)
		}
	}
	f.SetActiveSheet(0)
	return f, nil
}

func writeTable(f *excelize.File, t types.Table, headerStyle int) error {
	if len(t.Columns) == 0 {
		return nil
	}

	header := make([]interface{}, len(t.Columns))
	for i, c := range t.Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(t.Name, "A1", &header); err != nil {
		return err
	}
	if err := f.SetRowStyle(t.Name, 1, 1, headerStyle); err != nil {
		return err
	}

	for r, row := range t.Rows {
		cells := make([]interface{}, len(row))
		for i, v := range row {
			cells[i] = v
		}
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(t.Name, cell, &cells); err != nil {
			return err
		}
	}

	for i, w := range columnWidths(t) {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(t.Name, col, col, w); err != nil {
			return err
		}
	}
	return nil
}

// columnWidths sizes each column to its longest cell, within bounds.
func columnWidths(t types.Table) []float64 {
	widths := make([]float64, len(t.Columns))
	for i, c := range t.Columns {
		widths[i] = float64(utf8.RuneCountInString(c))
	}
	for _, row := range t.Rows {
		for i, v := range row {
			if i < len(widths) {
				if n := float64(utf8.RuneCountInString(v)); n > widths[i] {
					widths[i] = n
				}
			}
		}
	}
	for i, w := range widths {
		w += 2
		if w < minColWidth {
			w = minColWidth
		}
		if w > maxColWidth {
			w = maxColWidth
		}
		widths[i] = w
	}
	return widths
}

func validateNames(wb types.Workbook) error {
	seen := make(map[string]bool, len(wb.Sheets))
	for _, t := range wb.Sheets {
		if t.Name == "" {
			return fmt.Errorf("sheet name is empty")
		}
		if utf8.RuneCountInString(t.Name) > maxSheetName {
			return fmt.Errorf("sheet name %q exceeds %d characters", t.Name, maxSheetName)
		}
		// Excel compares sheet names case-insensitively.
		key := strings.ToLower(t.Name)
		if seen[key] {
			return fmt.Errorf("duplicate sheet name %q", t.Name)
		}
		seen[key] = true
	}
	return nil
}
