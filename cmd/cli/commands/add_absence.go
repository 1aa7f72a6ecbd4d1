package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mbaillet/vet-planner/pkg/core/model"
	"github.com/mbaillet/vet-planner/pkg/core/services"
)

// AddAbsenceCmd creates the addAbsence command
func AddAbsenceCmd(app *AppContext) *cobra.Command {
	var (
		absenceType string
		reason      string
	)

	cmd := &cobra.Command{
		Use:   "addAbsence <veterinarian_id> <start_date> <end_date>",
		Short: "Record a veterinarian absence",
		Long:  "Record an absence range (inclusive day bounds). The veterinarian's grid column is disabled for every date in the range.",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			absence, err := services.RecordAbsence(app.Ctx, app.Database, app.Cfg, app.Logger,
				args[0], args[1], args[2], model.AbsenceType(absenceType), reason)
			if err != nil {
				return err
			}

			fmt.Printf("✅ Absence recorded for %s: %s → %s [%s]\n",
				absence.VeterinarianID, absence.StartDate, absence.EndDate, absence.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&absenceType, "type", "other", "Absence type (vacation, sick, training, other)")
	cmd.Flags().StringVar(&reason, "reason", "", "Free-text reason")

	return cmd
}
