// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import "github.com/spf13/cobra"

// addIOFlags registers the input document and output workbook flags shared
// by the single-file conversion commands.
func addIOFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("xml", "x", "", "path to the scheduler configuration XML file")
	cmd.Flags().StringP("output", "o", "", "path for the output workbook")
	cmd.Flags().String("format", "", "output format: xlsx, yaml, json, or sqlite (default: from the output extension)")
	_ = cmd.MarkFlagRequired("xml")
	_ = cmd.MarkFlagRequired("output")
}

func ioFlags(cmd *cobra.Command) (in, out string) {
	in, _ = cmd.Flags().GetString("xml")
	out, _ = cmd.Flags().GetString("output")
	return in, out
}
