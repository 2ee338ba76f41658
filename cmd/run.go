package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Write the inventory reports, then answer queries",
	Long: `Builds the inventory, writes every report and then prompts for
manufacturer and item type queries until 'q' is entered.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		rt, err := bootstrap(ctx, cmd)
		if err != nil {
			return err
		}
		defer rt.logger.Sync()

		reports, err := rt.service.WriteReports(ctx)
		if err != nil {
			return err
		}
		rt.logger.Debug("Reports ready", zap.Int("count", len(reports)))

		return promptLoop(ctx, rt.service, cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

func init() {
	RootCmd.AddCommand(runCmd)
}
