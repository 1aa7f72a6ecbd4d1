package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mbaillet/vet-planner/pkg/core/services"
)

// RemoveBlockCmd creates the removeBlock command
func RemoveBlockCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "removeBlock <rule_id>",
		Short: "Deactivate a recurring slot block rule",
		Long:  "Soft-delete a recurring block rule. Future expansions skip it immediately; no backfill is needed because blocks are never materialized.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := services.RemoveRecurringBlock(app.Ctx, app.Database, app.Cfg, app.Logger, args[0]); err != nil {
				return err
			}

			fmt.Printf("✅ Recurring block %s deactivated\n", args[0])
			return nil
		},
	}
}
