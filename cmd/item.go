package cmd

import (
	"fmt"
	"io"

	"inventory-manager/feature/inventory/matcher"
	"inventory-manager/feature/inventory/models"

	"github.com/spf13/cobra"
)

// itemCmd represents the item command
var itemCmd = &cobra.Command{
	Use:   "item [id]",
	Short: "View the merged record of one item",
	Long:  `Shows the manufacturer, type, damage, price and service date merged for one item id, and whether it can be offered.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		rt, err := bootstrap(ctx, cmd)
		if err != nil {
			return err
		}
		defer rt.logger.Sync()

		rec, err := rt.service.Item(ctx, args[0])
		if err != nil {
			return err
		}
		printItem(cmd.OutOrStdout(), rec, matcher.Eligible(rec, rt.service.Now()))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(itemCmd)
}

func printItem(out io.Writer, rec models.Record, eligible bool) {
	damaged := "no"
	if rec.IsDamaged() {
		damaged = rec.Damaged
	}

	statusColor := "\033[32m" // Green
	status := "ELIGIBLE"
	if !eligible {
		statusColor = "\033[33m" // Yellow
		status = "NOT ELIGIBLE"
	}
	resetColor := "\033[0m"

	fmt.Fprintln(out, "\n--- Item Detail View ---")
	fmt.Fprintf(out, "ID:             %s\n", rec.ID)
	fmt.Fprintf(out, "Manufacturer:   %s\n", rec.Manufacturer)
	fmt.Fprintf(out, "Item Type:      %s\n", rec.ItemType)
	fmt.Fprintf(out, "Damaged:        %s\n", damaged)
	fmt.Fprintf(out, "Price:          %s\n", rec.PriceString())
	fmt.Fprintf(out, "Service Date:   %s\n", rec.ServiceDateString())
	fmt.Fprintln(out, "------------------------")
	fmt.Fprintf(out, "Offerable:      %s%s%s\n", statusColor, status, resetColor)
	fmt.Fprintln(out, "------------------------")
}
