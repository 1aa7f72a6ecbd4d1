package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mbaillet/vet-planner/pkg/core/services"
)

var weekdayNames = [7]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

// AddBlockCmd creates the addBlock command
func AddBlockCmd(app *AppContext) *cobra.Command {
	var (
		description string
		vetID       string
		startDate   string
		endDate     string
	)

	cmd := &cobra.Command{
		Use:   "addBlock <title> <day_of_week> <start_time> <end_time>",
		Short: "Create a recurring slot block rule",
		Long:  "Create a weekly recurring block (day_of_week: 0=Sunday..6=Saturday). The rule is expanded into blocked 15-minute slots at read time; nothing is materialized.",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			var dayOfWeek int
			if _, err := fmt.Sscanf(args[1], "%d", &dayOfWeek); err != nil {
				return fmt.Errorf("invalid day_of_week %q: %w", args[1], err)
			}

			rule, err := services.CreateRecurringBlock(app.Ctx, app.Database, app.Cfg, app.Logger,
				services.RecurringBlockInput{
					Title:          args[0],
					Description:    description,
					VeterinarianID: vetID,
					DayOfWeek:      dayOfWeek,
					StartTime:      args[2],
					EndTime:        args[3],
					StartDate:      startDate,
					EndDate:        endDate,
				})
			if err != nil {
				return err
			}

			fmt.Printf("\n✅ Recurring block created\n\n")
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

func orOpen(date string) string {
	if date == "" {
		return "open"
	}
	return date
}
