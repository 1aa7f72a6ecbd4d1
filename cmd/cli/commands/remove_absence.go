package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mbaillet/vet-planner/pkg/core/services"
)

// RemoveAbsenceCmd creates the removeAbsence command
func RemoveAbsenceCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "removeAbsence <absence_id>",
		Short: "Delete a recorded absence",
		Long:  "Remove an absence record. The veterinarian's grid column is enabled again for the dates it covered.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := services.RemoveAbsence(app.Ctx, app.Database, app.Cfg, app.Logger, args[0]); err != nil {
				return err
			}

			fmt.Printf("✅ Absence %s removed\n", args[0])
			return nil
		},
	}
}
