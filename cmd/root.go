package cmd

import (
	"fmt"
	"os"

	"inventory-manager/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	sourceDir string
	outputDir string
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "inventory-manager",
	Short: "Inventory Manager",
	Long: `Inventory Manager merges the manufacturer, price and service date tables
into one inventory, writes the inventory reports and answers item queries.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Console encoding at debug level gives readable ISO8601 timestamps for CLI users.
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			fmt.Println(err)
		}
		os.Exit(1)
	}
}

func init() {
	RootCmd.PersistentFlags().StringVar(&sourceDir, "source-dir", "", "directory holding the input tables (overrides INVENTORY_SOURCE_DIR)")
	RootCmd.PersistentFlags().StringVar(&outputDir, "output-dir", "", "directory reports are written to (overrides INVENTORY_OUTPUT_DIR)")
}
