package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var fixFlag bool

// integrityCmd represents the integrity command
var integrityCmd = &cobra.Command{
	Use:   "integrity",
	Short: "Check that the configured source holds every input table",
	Long: `Checks the source directory, storage bucket or database for the manufacturer,
price and service date tables. With --fix, tables missing from the storage bucket are
uploaded from the local source directory.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		rt, err := bootstrap(ctx, cmd)
		if err != nil {
			return err
		}
		defer rt.logger.Sync()

		svc := rt.integrityService()
		report, err := svc.Check(ctx)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Source:   %s\n", report.Source)
		for _, name := range report.Missing {
			fmt.Fprintf(out, "Missing:  %s\n", name)
		}
		for table, columns := range report.MissingColumns {
			fmt.Fprintf(out, "Columns:  %s lacks %v\n", table, columns)
		}

		if report.OK {
			fmt.Fprintln(out, "Status:   \033[32mOK\033[0m")
			return nil
		}
		if !fixFlag {
			fmt.Fprintln(out, "Status:   \033[31mFAIL\033[0m")
			return fmt.Errorf("input tables incomplete")
		}

		rt.logger.Info("Fixing missing input tables", zap.Strings("missing", report.Missing))
		if err := svc.Fix(ctx, report); err != nil {
			return err
		}
		fmt.Fprintln(out, "Status:   \033[33mFIXED\033[0m")
		return nil
	},
}

func init() {
	integrityCmd.Flags().BoolVar(&fixFlag, "fix", false, "upload missing tables from the source directory to the storage bucket")
	RootCmd.AddCommand(integrityCmd)
}
