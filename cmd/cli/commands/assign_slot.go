package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mbaillet/vet-planner/pkg/core/services"
)

// AssignSlotCmd creates the assignSlot command
func AssignSlotCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "assignSlot <date> <time> <veterinarian_id>",
		Short: "Manually assign a veterinarian to a time slot",
		Long:  "Force a veterinarian onto a (date, time slot) pair. Overwrites any previous assignment for that slot.",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := time.Parse("2006-01-02", args[0])
			if err != nil {
				return fmt.Errorf("invalid date %q: %w", args[0], err)
			}

			if err := services.ReassignSlot(app.Ctx, app.Database, app.Cfg, app.Logger, date, args[1], args[2]); err != nil {
				return err
			}

			fmt.Printf("✅ Slot %s %s assigned to %s\n", args[0], args[1], args[2])
			return nil
		},
	}
}
