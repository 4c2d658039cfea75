// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/schedsheet/internal/convert"
)

var capacityCmd = &cobra.Command{
	Use:   "capacity",
	Short: "Convert a capacity-scheduler property list to a workbook",
	Long: `Capacity reads a capacity-scheduler.xml file and writes two sheets:
"Capacity Queue Properties" holds every property under the queue namespace
(yarn.scheduler.capacity.root.) sorted by name, so each queue's settings sit
together; "General Properties" holds the rest in file order.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		in, out := ioFlags(cmd)
		return convert.ConvertFile(context.Background(), convert.Capacity{Config: cfg.Capacity}, cfg,
			in, out, cfg.Output.Format, os.Stdout)
	},
}

func init() {
	addIOFlags(capacityCmd)
	capacityCmd.Flags().String("prefix", "", "property name substring marking queue-scoped settings (default yarn.scheduler.capacity.root.)")

	rootCmd.AddCommand(capacityCmd)
}
