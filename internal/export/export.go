// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export writes a workbook in the format chosen by flag or by the
// output file's extension: xlsx, yaml, json, or sqlite.
package export

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/schedsheet/internal/fileutil"
	"github.com/pdiddy/schedsheet/internal/sheet"
	"github.com/pdiddy/schedsheet/internal/store"
	"github.com/pdiddy/schedsheet/pkg/types"
)

// ErrUnknownFormat is returned for a format name or extension no writer handles.
var ErrUnknownFormat = errors.New("unknown output format")

var extensions = map[string]types.OutputFormat{
	".xlsx":    types.FormatXLSX,
	".yaml":    types.FormatYAML,
	".yml":     types.FormatYAML,
	".json":    types.FormatJSON,
	".db":      types.FormatSQLite,
	".sqlite":  types.FormatSQLite,
	".sqlite3": types.FormatSQLite,
}

// DetectFormat maps an output path's extension to a format. Paths without a
// recognized extension are written as xlsx.
func DetectFormat(path string) types.OutputFormat {
	if f, ok := extensions[strings.ToLower(filepath.Ext(path))]; ok {
		return f
	}
	return types.FormatXLSX
}

// ParseFormat validates a format name. The empty string is accepted and
// means "detect from the path".
func ParseFormat(s string) (types.OutputFormat, error) {
	switch f := types.OutputFormat(strings.ToLower(s)); f {
	case "", types.FormatXLSX, types.FormatYAML, types.FormatJSON, types.FormatSQLite:
		return f, nil
	default:
		return "", fmt.Errorf("%w %q (want xlsx, yaml, json, or sqlite)", ErrUnknownFormat, s)
	}
}

// Write serializes wb to path. An empty format is detected from the path.
func Write(ctx context.Context, path string, format types.OutputFormat, wb types.Workbook) error {
	if format == "" {
		format = DetectFormat(path)
	}

	switch format {
	case types.FormatXLSX:
		return sheet.Write(path, wb)
	case types.FormatYAML:
		return WriteYAML(path, wb)
	case types.FormatJSON:
		return WriteJSON(path, wb)
	case types.FormatSQLite:
		return store.Write(ctx, path, wb)
	default:
		return fmt.Errorf("%w %q", ErrUnknownFormat, format)
	}
}

// Document is the YAML/JSON shape of a workbook: each sheet's rows as
// objects keyed by column name, so sparse columns read naturally.
type Document struct {
	Sheets []DocumentSheet `json:"sheets" yaml:"sheets"`
}

// DocumentSheet is one sheet of a Document.
type DocumentSheet struct {
	Name    string              `json:"name" yaml:"name"`
	Columns []string            `json:"columns" yaml:"columns"`
	Rows    []map[string]string `json:"rows" yaml:"rows"`
}

// NewDocument converts wb to its serializable form. Empty cells are omitted.
func NewDocument(wb types.Workbook) Document {
	doc := Document{Sheets: make([]DocumentSheet, len(wb.Sheets))}
	for i, t := range wb.Sheets {
		s := DocumentSheet{Name: t.Name, Columns: t.Columns, Rows: make([]map[string]string, len(t.Rows))}
		for r, row := range t.Rows {
			m := make(map[string]string, len(row))
			for c, v := range row {
				if c < len(t.Columns) && v != "" {
					m[t.Columns[c]] = v
				}
			}
			s.Rows[r] = m
		}
		doc.Sheets[i] = s
	}
	return doc
}

// WriteYAML writes wb as a YAML document.
func WriteYAML(path string, wb types.Workbook) error {
	data, err := yaml.Marshal(NewDocument(wb))
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return writeBytes(path, data)
}

// WriteJSON writes wb as indented JSON.
func WriteJSON(path string, wb types.Workbook) error {
	data, err := json.MarshalIndent(NewDocument(wb), "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	return writeBytes(path, append(data, '\n'))
}

func writeBytes(path string, data []byte) error {
	return fileutil.WriteAtomic(path, func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	})
}
