// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the schedsheet CLI, which turns YARN
// scheduler configuration files into spreadsheet reports.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/schedsheet/internal/export"
	"github.com/pdiddy/schedsheet/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the schedsheet CLI.
var rootCmd = &cobra.Command{
	Use:   "schedsheet",
	Short: "Convert YARN scheduler configuration into spreadsheet reports",
	Long: `schedsheet reads a YARN scheduler configuration file and writes a
workbook that operators can browse: one sheet per table.

The capacity command handles capacity-scheduler.xml property lists. The fair
command handles fair-scheduler.xml allocation trees. The convert command
detects which one it was given and can process many files at once.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbose, _ := cmd.Flags().GetBool("verbose")
		if verbose {
			logrus.SetLevel(logrus.DebugLevel)
		}
		if used := viper.ConfigFileUsed(); used != "" {
			logrus.Debugf("using config file %s", used)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./schedsheet.yaml or ~/.config/schedsheet/schedsheet.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log debug details to stderr")

	logrus.SetOutput(os.Stderr)
	logrus.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
}

func initConfig() {
	defaults := types.DefaultConfig()
	viper.SetDefault("capacity.queue_prefix", defaults.Capacity.QueuePrefix)
	viper.SetDefault("capacity.queue_sheet", defaults.Capacity.QueueSheet)
	viper.SetDefault("capacity.general_sheet", defaults.Capacity.GeneralSheet)
	viper.SetDefault("fair.totals", defaults.Fair.Totals)
	viper.SetDefault("fair.queue_order", string(defaults.Fair.QueueOrder))
	viper.SetDefault("output.format", string(defaults.Output.Format))

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("schedsheet")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "schedsheet"))
		}
	}

	viper.SetEnvPrefix("SCHEDSHEET")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && cfgFile != "" {
			logrus.Warnf("reading config %s: %v", cfgFile, err)
		}
	}
}

// loadConfig decodes the merged viper settings and applies the command's
// flag overrides.
func loadConfig(cmd *cobra.Command) (types.Config, error) {
	var cfg types.Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return types.Config{}, fmt.Errorf("decoding config: %w", err)
	}

	flags := cmd.Flags()
	if flags.Lookup("totals") != nil && flags.Changed("totals") {
		cfg.Fair.Totals, _ = flags.GetBool("totals")
	}
	if flags.Lookup("order") != nil && flags.Changed("order") {
		order, _ := flags.GetString("order")
		cfg.Fair.QueueOrder = types.QueueOrder(order)
	}
	if flags.Lookup("prefix") != nil && flags.Changed("prefix") {
		cfg.Capacity.QueuePrefix, _ = flags.GetString("prefix")
	}
	if flags.Lookup("format") != nil && flags.Changed("format") {
		f, _ := flags.GetString("format")
		cfg.Output.Format = types.OutputFormat(f)
	}

	format, err := export.ParseFormat(string(cfg.Output.Format))
	if err != nil {
		return types.Config{}, err
	}
	cfg.Output.Format = format

	switch cfg.Fair.QueueOrder {
	case "", types.OrderBottomUp, types.OrderTopDown:
	default:
		return types.Config{}, fmt.Errorf("invalid queue order %q: use %s or %s",
			cfg.Fair.QueueOrder, types.OrderBottomUp, types.OrderTopDown)
	}
	return cfg, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
