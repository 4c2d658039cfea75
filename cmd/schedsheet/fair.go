// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/schedsheet/internal/convert"
)

var fairCmd = &cobra.Command{
	Use:   "fair",
	Short: "Convert a fair-scheduler allocation file to a workbook",
	Long: `Fair reads a fair-scheduler.xml allocation file and writes three sheets:
"Queue Resources" (max/min memory and vcores, weight), "Users", and "Queues"
(name, parent, and every other setting found on a queue).

Nested queues are listed before the queue that contains them unless
--order top-down is given. --totals appends a row summing max memory and
max vcores over all queues.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		in, out := ioFlags(cmd)
		return convert.ConvertFile(context.Background(), convert.Fair{Config: cfg.Fair}, cfg,
			in, out, cfg.Output.Format, os.Stdout)
	},
}

func init() {
	addIOFlags(fairCmd)
	fairCmd.Flags().Bool("totals", false, "append a Total row to the Queue Resources sheet")
	fairCmd.Flags().String("order", "bottom-up", "Queues sheet row order: bottom-up or top-down")

	rootCmd.AddCommand(fairCmd)
}
