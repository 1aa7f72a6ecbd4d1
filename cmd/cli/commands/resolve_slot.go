package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mbaillet/vet-planner/pkg/core/services"
)

// ResolveSlotCmd creates the resolveSlot command
func ResolveSlotCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "resolveSlot <date> <time>",
		Short: "Resolve which veterinarian a slot belongs to",
		Long:  "Return the veterinarian bound to a slot: an explicit assignment if one exists, otherwise an auto-assigned pick persisted for stability.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := time.Parse("2006-01-02", args[0])
			if err != nil {
				return fmt.Errorf("invalid date %q: %w", args[0], err)
			}

			vetID, err := services.ResolveSlotVeterinarian(app.Ctx, app.Database, app.Cfg, app.Logger, date, args[1], nil)
			if err != nil {
				return err
			}

			if vetID == "" {
				fmt.Printf("Slot %s %s: no veterinarian available (ASV)\n", args[0], args[1])
				return nil
			}

			fmt.Printf("Slot %s %s → %s\n", args[0], args[1], vetID)
			return nil
		},
	}
}
