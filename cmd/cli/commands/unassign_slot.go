package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mbaillet/vet-planner/pkg/core/services"
)

// UnassignSlotCmd creates the unassignSlot command
func UnassignSlotCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "unassignSlot <date> <time>",
		Short: "Remove the assignment of a time slot",
		Long:  "Delete the slot assignment for a (date, time slot) pair; resolution falls back to the auto-assignment engine.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := time.Parse("2006-01-02", args[0])
			if err != nil {
				return fmt.Errorf("invalid date %q: %w", args[0], err)
			}

			if err := services.RemoveSlotAssignment(app.Ctx, app.Database, app.Cfg, app.Logger, date, args[1]); err != nil {
				return err
			}

			fmt.Printf("✅ Slot %s %s unassigned\n", args[0], args[1])
			return nil
		},
	}
}
