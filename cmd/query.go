package cmd

import (
	"strings"

	"github.com/spf13/cobra"
)

// queryCmd represents the query command
var queryCmd = &cobra.Command{
	Use:   "query [manufacturer item-type]",
	Short: "Find the best eligible item",
	Long: `Answers one query given as arguments, e.g. "query Apple phone".
Without arguments it prompts for queries until 'q' is entered.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		rt, err := bootstrap(ctx, cmd)
		if err != nil {
			return err
		}
		defer rt.logger.Sync()

		if len(args) == 0 {
			return promptLoop(ctx, rt.service, cmd.InOrStdin(), cmd.OutOrStdout())
		}
		return printQuery(ctx, rt.service, strings.Join(args, " "), cmd.OutOrStdout())
	},
}

func init() {
	RootCmd.AddCommand(queryCmd)
}
