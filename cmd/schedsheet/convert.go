// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/schedsheet/internal/convert"
)

var convertCmd = &cobra.Command{
	Use:   "convert [files...]",
	Short: "Convert scheduler configuration files, detecting their schema",
	Long: `Convert picks the capacity or fair pipeline from each document's root
element (<configuration> or <allocations>).

With -x and -o it converts one file. With file arguments it converts each
into --out-dir, named after the input, skipping outputs that already exist
unless --force is given. A failed file does not stop the batch, but the
command exits non-zero if any file failed.`,
	RunE: runConvert,
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	in, out := ioFlags(cmd)

	if len(args) == 0 {
		if in == "" || out == "" {
			return fmt.Errorf("provide -x and -o, or one or more files with --out-dir")
		}
		return convert.ConvertFile(context.Background(), nil, cfg, in, out, cfg.Output.Format, os.Stdout)
	}

	if in != "" || out != "" {
		return fmt.Errorf("-x/-o cannot be combined with file arguments; use --out-dir")
	}
	outDir, _ := cmd.Flags().GetString("out-dir")
	force, _ := cmd.Flags().GetBool("force")

	result := convert.ConvertBatch(context.Background(), cfg, args, convert.BatchOptions{
		OutDir: outDir,
		Format: cfg.Output.Format,
		Force:  force,
	}, os.Stdout)
	if result.HasFailures() {
		return fmt.Errorf("%d file(s) failed conversion", result.Failed)
	}
	return nil
}

func init() {
	convertCmd.Flags().StringP("xml", "x", "", "path to a single scheduler configuration XML file")
	convertCmd.Flags().StringP("output", "o", "", "path for the single output workbook")
	convertCmd.Flags().String("format", "", "output format: xlsx, yaml, json, or sqlite (default: from the output extension, xlsx in batch mode)")
	convertCmd.Flags().String("out-dir", "reports", "directory for batch outputs")
	convertCmd.Flags().Bool("force", false, "overwrite existing batch outputs")
	convertCmd.Flags().Bool("totals", false, "append a Total row to fair-scheduler Queue Resources sheets")
	convertCmd.Flags().String("order", "bottom-up", "fair-scheduler Queues sheet row order: bottom-up or top-down")

	rootCmd.AddCommand(convertCmd)
}
