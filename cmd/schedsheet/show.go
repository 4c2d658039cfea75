// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/schedsheet/internal/convert"
	"github.com/pdiddy/schedsheet/internal/preview"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the tables a configuration file converts to",
	Long: `Show converts a scheduler configuration file like convert does and
renders the resulting sheets as tables in the terminal instead of writing
a workbook.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		in, _ := cmd.Flags().GetString("xml")
		maxRows, _ := cmd.Flags().GetInt("max-rows")
		maxWidth, _ := cmd.Flags().GetInt("max-width")

		wb, _, err := convert.Workbook(in, nil, cfg)
		if err != nil {
			return err
		}
		return preview.Render(os.Stdout, wb, preview.Options{MaxRows: maxRows, MaxWidth: maxWidth})
	},
}

func init() {
	showCmd.Flags().StringP("xml", "x", "", "path to the scheduler configuration XML file")
	showCmd.Flags().Int("max-rows", 50, "rows to show per sheet (0 = all)")
	showCmd.Flags().Int("max-width", 60, "truncate cells longer than this (0 = no limit)")
	showCmd.Flags().Bool("totals", false, "append a Total row to the Queue Resources sheet")
	showCmd.Flags().String("order", "bottom-up", "Queues sheet row order: bottom-up or top-down")
	_ = showCmd.MarkFlagRequired("xml")

	rootCmd.AddCommand(showCmd)
}
