// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert runs a scheduler configuration document through its
// pipeline: read, convert to tables, and write the workbook.
package convert

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/pdiddy/schedsheet/internal/capacity"
	"github.com/pdiddy/schedsheet/internal/export"
	"github.com/pdiddy/schedsheet/internal/fair"
	"github.com/pdiddy/schedsheet/internal/xmltree"
	"github.com/pdiddy/schedsheet/pkg/types"
)

// Schema identifies which scheduler's configuration a document holds.
type Schema string

const (
	SchemaCapacity Schema = "capacity"
	SchemaFair     Schema = "fair"
)

// ErrUnknownSchema is returned when a document's root element matches no schema.
var ErrUnknownSchema = errors.New("unrecognized scheduler configuration")

// DetectSchema picks the schema from the document's root element.
func DetectSchema(root *xmltree.Node) (Schema, error) {
	switch root.Tag {
	case capacity.RootTag:
		return SchemaCapacity, nil
	case fair.RootTag:
		return SchemaFair, nil
	default:
		return "", fmt.Errorf("%w: root element <%s> (want <%s> or <%s>)",
			ErrUnknownSchema, root.Tag, capacity.RootTag, fair.RootTag)
	}
}

// Converter turns a parsed document into a workbook. The capacity and fair
// pipelines implement this interface.
type Converter interface {
	// Schema reports the document family the converter expects.
	Schema() Schema

	// Convert builds the workbook and a one-line description of its contents.
	Convert(root *xmltree.Node) (types.Workbook, string, error)
}

// Capacity converts capacity-scheduler property lists.
type Capacity struct {
	Config types.CapacityConfig
}

func (Capacity) Schema() Schema { return SchemaCapacity }

func (c Capacity) Convert(root *xmltree.Node) (types.Workbook, string, error) {
	wb, sum := capacity.Convert(root, c.Config)
	desc := fmt.Sprintf("%d properties (%d queue, %d general)", sum.Properties, sum.Queue, sum.General)
	return wb, desc, nil
}

// Fair converts fair-scheduler allocation files.
type Fair struct {
	Config types.FairConfig
}

func (Fair) Schema() Schema { return SchemaFair }

func (c Fair) Convert(root *xmltree.Node) (types.Workbook, string, error) {
	wb, sum, err := fair.Convert(root, c.Config)
	if err != nil {
		return types.Workbook{}, "", err
	}
	desc := fmt.Sprintf("%d queues, %d users", sum.Queues, sum.Users)
	if sum.Totals {
		desc += ", totals row"
	}
	return wb, desc, nil
}

// ForSchema returns the converter for schema configured from cfg.
func ForSchema(schema Schema, cfg types.Config) (Converter, error) {
	switch schema {
	case SchemaCapacity:
		return Capacity{Config: cfg.Capacity}, nil
	case SchemaFair:
		return Fair{Config: cfg.Fair}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSchema, schema)
	}
}

// Load parses the document at path and, when c is nil, selects a converter
// from the document's root element.
func Load(path string, c Converter, cfg types.Config) (*xmltree.Node, Converter, error) {
	root, err := xmltree.ParseFile(path)
	if err != nil {
		return nil, nil, err
	}

	if c == nil {
		schema, err := DetectSchema(root)
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %w", path, err)
		}
		if c, err = ForSchema(schema, cfg); err != nil {
			return nil, nil, err
		}
		logrus.Debugf("detected %s schema in %s", schema, path)
	} else if detected, err := DetectSchema(root); err != nil || detected != c.Schema() {
		logrus.Warnf("%s: root element <%s> does not look like a %s configuration", path, root.Tag, c.Schema())
	}
	return root, c, nil
}

// Workbook loads the document at path and converts it without writing anything.
func Workbook(path string, c Converter, cfg types.Config) (types.Workbook, string, error) {
	root, c, err := Load(path, c, cfg)
	if err != nil {
		return types.Workbook{}, "", err
	}
	return c.Convert(root)
}

// ConvertFile converts the document at in and writes the workbook to out in
// the given format (empty: detect from out). Nothing is written to out unless
// every step succeeds. A nil converter detects the schema.
func ConvertFile(ctx context.Context, c Converter, cfg types.Config, in, out string, format types.OutputFormat, w io.Writer) error {
	wb, desc, err := Workbook(in, c, cfg)
	if err != nil {
		return err
	}
	if err := export.Write(ctx, out, format, wb); err != nil {
		return fmt.Errorf("writing %s: %w", out, err)
	}
	fmt.Fprintf(w, "wrote %d sheets, %d rows (%s) to %s\n", len(wb.Sheets), wb.RowCount(), desc, out)
	return nil
}

// BatchResult holds the outcome of a batch conversion run.
type BatchResult struct {
	Converted int
	Skipped   int
	Failed    int
}

// Total returns the total number of documents processed.
func (r BatchResult) Total() int {
	return r.Converted + r.Skipped + r.Failed
}

// HasFailures reports whether any document failed conversion.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// BatchOptions controls ConvertBatch.
type BatchOptions struct {
	// OutDir receives one output file per input, named after the input.
	OutDir string

	// Format selects the output format; empty means xlsx.
	Format types.OutputFormat

	// Force overwrites outputs that already exist instead of skipping them.
	Force bool
}

// OutputPath returns the output file ConvertBatch writes for input.
func OutputPath(input, outDir string, format types.OutputFormat) string {
	if format == "" {
		format = types.FormatXLSX
	}
	ext := "." + string(format)
	if format == types.FormatSQLite {
		ext = ".db"
	}
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	return filepath.Join(outDir, base+ext)
}

// ConvertBatch converts each input with schema detection, printing per-file
// status to w and returning a summary. A failed document does not stop the batch.
// An input whose output path was already taken by an earlier input in the
// same batch fails instead of overwriting or skipping.
func ConvertBatch(ctx context.Context, cfg types.Config, inputs []string, opts BatchOptions, w io.Writer) BatchResult {
	var result BatchResult

	if err := os.MkdirAll(opts.OutDir, 0o755); err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", opts.OutDir, err)
		result.Failed = len(inputs)
		return result
	}

	claimed := make(map[string]string, len(inputs))
	for _, in := range inputs {
		out := OutputPath(in, opts.OutDir, opts.Format)
		if first, ok := claimed[out]; ok {
			fmt.Fprintf(w, "failed:  %s (output %s already claimed by %s)\n", in, out, first)
			result.Failed++
			continue
		}
		claimed[out] = in

		if !opts.Force {
			if _, err := os.Stat(out); err == nil {
				fmt.Fprintf(w, "skipped: %s (%s exists)\n", in, out)
				result.Skipped++
				continue
			}
		}

		var status strings.Builder
		if err := ConvertFile(ctx, nil, cfg, in, out, opts.Format, &status); err != nil {
			fmt.Fprintf(w, "failed:  %s (%v)\n", in, err)
			result.Failed++
			continue
		}
		fmt.Fprintf(w, "converted: %s", status.String())
		result.Converted++
	}

	fmt.Fprintf(w, "\nBatch summary: %d converted, %d skipped, %d failed (total: %d)\n",
		result.Converted, result.Skipped, result.Failed, result.Total())
	return result
}
