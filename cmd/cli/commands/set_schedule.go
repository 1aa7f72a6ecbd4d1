package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mbaillet/vet-planner/pkg/core/model"
	"github.com/mbaillet/vet-planner/pkg/core/services"
)

// SetScheduleCmd creates the setSchedule command
func SetScheduleCmd(app *AppContext) *cobra.Command {
	var (
		dayOff         bool
		morningStart   string
		morningEnd     string
		afternoonStart string
		afternoonEnd   string
	)

	cmd := &cobra.Command{
		Use:   "setSchedule <veterinarian_id> <day_of_week>",
		Short: "Set a veterinarian's weekly working pattern for one weekday",
		Long:  "Upsert the standing schedule row for a (veterinarian, weekday) pair (0=Sunday..6=Saturday). Veterinarians without a row default to working.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var dayOfWeek int
			if _, err := fmt.Sscanf(args[1], "%d", &dayOfWeek); err != nil {
				return fmt.Errorf("invalid day_of_week %q: %w", args[1], err)
			}

			schedule := model.VeterinarianSchedule{
				VeterinarianID: args[0],
				DayOfWeek:      dayOfWeek,
				IsWorking:      !dayOff,
				MorningStart:   morningStart,
				MorningEnd:     morningEnd,
				AfternoonStart: afternoonStart,
				AfternoonEnd:   afternoonEnd,
			}

			if err := services.SetWeeklySchedule(app.Ctx, app.Database, app.Cfg, app.Logger, schedule); err != nil {
				return err
			}

			state := "working"
			if dayOff {
				state = "off"
			}
			fmt.Printf("✅ %s is %s on %s\n", args[0], state, weekdayNames[dayOfWeek])
			return nil
		},
	}

	cmd.Flags().BoolVar(&dayOff, "off", false, "Mark the weekday as a day off")
	cmd.Flags().StringVar(&morningStart, "morning-start", "", "Morning window start (HH:MM)")
	cmd.Flags().StringVar(&morningEnd, "morning-end", "", "Morning window end (HH:MM)")
	cmd.Flags().StringVar(&afternoonStart, "afternoon-start", "", "Afternoon window start (HH:MM)")
	cmd.Flags().StringVar(&afternoonEnd, "afternoon-end", "", "Afternoon window end (HH:MM)")

	return cmd
}
