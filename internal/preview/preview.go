// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package preview renders a workbook as bordered terminal tables.
package preview

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/pdiddy/schedsheet/pkg/types"
)

var (
	headerColor = lipgloss.Color("#7aa2f7")
	borderColor = lipgloss.Color("#3b4261")
	mutedColor  = lipgloss.Color("#565f89")

	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(headerColor)
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(headerColor).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	mutedStyle  = lipgloss.NewStyle().Foreground(mutedColor)
)

// Options controls rendering.
type Options struct {
	// MaxRows limits the rows shown per sheet. Zero shows every row.
	MaxRows int

	// MaxWidth truncates cells longer than this many characters. Zero disables truncation.
	MaxWidth int
}

// Render writes every sheet of wb to w.
func Render(w io.Writer, wb types.Workbook, opts Options) error {
	for i, t := range wb.Sheets {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w, titleStyle.Render(t.Name)+" "+mutedStyle.Render(fmt.Sprintf("(%d rows)", len(t.Rows)))); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w, Table(t, opts)); err != nil {
			return err
		}
	}
	return nil
}

// Table renders a single sheet.
func Table(t types.Table, opts Options) string {
	rows := t.Rows
	hidden := 0
	if opts.MaxRows > 0 && len(rows) > opts.MaxRows {
		hidden = len(rows) - opts.MaxRows
		rows = rows[:opts.MaxRows]
	}

	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(borderColor)).
		Headers(t.Columns...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	for _, r := range rows {
		tbl.Row(truncateRow(r, len(t.Columns), opts.MaxWidth)...)
	}

	out := tbl.String()
	if hidden > 0 {
		out += "\n" + mutedStyle.Render(fmt.Sprintf("… %d more rows", hidden))
	}
	return out
}

func truncateRow(row []string, width, maxWidth int) []string {
	out := make([]string, width)
	for i := range out {
		if i < len(row) {
			out[i] = truncate(row[i], maxWidth)
		}
	}
	return out
}

func truncate(s string, max int) string {
	r := []rune(s)
	if max <= 0 || len(r) <= max {
		return s
	}
	if max == 1 {
		return "…"
	}
	return string(r[:max-1]) + "…"
}
