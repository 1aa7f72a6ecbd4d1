package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mbaillet/vet-planner/pkg/core/services"
)

// ListBlocksCmd creates the listBlocks command
func ListBlocksCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "listBlocks",
		Short: "List active recurring slot block rules",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rules, err := services.ListRecurringBlocks(app.Ctx, app.Database, app.Cfg)
			if err != nil {
				return err
			}

			if len(rules) == 0 {
				fmt.Println("No active recurring blocks.")
				return nil
			}

			fmt.Printf("\n🔁 Recurring blocks (%d)\n\n", len(rules))
			for _, rule := range rules {
				target := "ASV"
				if rule.VeterinarianID != "" {
					target = rule.VeterinarianID
				}
				fmt.Printf("  • %s — every %s %s–%s, %s", rule.Title,
					weekdayNames[rule.DayOfWeek], rule.StartTime, rule.EndTime, target)
				if rule.StartDate != "" || rule.EndDate != "" {
					fmt.Printf(" (valid %s → %s)", orOpen(rule.StartDate), orOpen(rule.EndDate))
				}
				fmt.Printf("  [%s]\n", rule.ID)
			}
			fmt.Println()
			return nil
		},
	}
}
