package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mbaillet/vet-planner/pkg/core/services"
)

// ListAbsencesCmd creates the listAbsences command
func ListAbsencesCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "listAbsences",
		Short: "List recorded veterinarian absences",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			absences, err := services.ListAbsences(app.Ctx, app.Database, app.Cfg)
			if err != nil {
				return err
			}

			if len(absences) == 0 {
				fmt.Println("No recorded absences.")
				return nil
			}

			fmt.Printf("\n🏖️  Absences (%d)\n\n", len(absences))
			for _, absence := range absences {
				fmt.Printf("  • %s: %s → %s [%s]", absence.VeterinarianID,
					absence.StartDate, absence.EndDate, absence.Type)
				if absence.Reason != "" {
					fmt.Printf(" (%s)", absence.Reason)
				}
				fmt.Printf("  [%s]\n", absence.ID)
			}
			fmt.Println()
			return nil
		},
	}
}
