package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mbaillet/vet-planner/pkg/core/services"
)

// UpdateBlockCmd creates the updateBlock command
func UpdateBlockCmd(app *AppContext) *cobra.Command {
	var (
		description string
		vetID       string
		startDate   string
		endDate     string
	)

	cmd := &cobra.Command{
		Use:   "updateBlock <rule_id> <title> <day_of_week> <start_time> <end_time>",
		Short: "Rewrite a recurring slot block rule",
		Long:  "Replace the fields of an existing recurring block rule. The change takes effect on the next expansion; nothing needs backfilling because blocks are never materialized.",
		Args:  cobra.ExactArgs(5),
		RunE: func(cmd *cobra.Command, args []string) error {
			var dayOfWeek int
			if _, err := fmt.Sscanf(args[2], "%d", &dayOfWeek); err != nil {
				return fmt.Errorf("invalid day_of_week %q: %w", args[2], err)
			}

			rule, err := services.UpdateRecurringBlock(app.Ctx, app.Database, app.Cfg, app.Logger,
				args[0], services.RecurringBlockInput{
					Title:          args[1],
					Description:    description,
					VeterinarianID: vetID,
					DayOfWeek:      dayOfWeek,
					StartTime:      args[3],
					EndTime:        args[4],
					StartDate:      startDate,
					EndDate:        endDate,
				})
			if err != nil {
				return err
			}

			fmt.Printf("\n✅ Recurring block updated\n\n")
			fmt.Printf("ID:     %s\n", rule.ID)
			fmt.Printf("Rule:   every %s %s–%s\n", weekdayNames[rule.DayOfWeek], rule.StartTime, rule.EndTime)
			if rule.StartDate != "" || rule.EndDate != "" {
				fmt.Printf("Valid:  %s → %s\n", orOpen(rule.StartDate), orOpen(rule.EndDate))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&description, "description", "", "Rule description")
	cmd.Flags().StringVar(&vetID, "vet", "", "Veterinarian id the block applies to (empty for ASV)")
	cmd.Flags().StringVar(&startDate, "from", "", "Validity start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&endDate, "until", "", "Validity end date (YYYY-MM-DD)")

	return cmd
}
