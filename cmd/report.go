package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

const reportDoneMessage = "Inventory has been conducted for this."

// reportCmd represents the report command
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Write the inventory reports",
	Long:  `Builds the inventory from the configured source and writes the full, per-type, past service and damaged reports.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		rt, err := bootstrap(ctx, cmd)
		if err != nil {
			return err
		}
		defer rt.logger.Sync()

		if _, err := rt.service.WriteReports(ctx); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), reportDoneMessage)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(reportCmd)
}
