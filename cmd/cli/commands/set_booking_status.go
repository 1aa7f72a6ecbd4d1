package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mbaillet/vet-planner/pkg/core/model"
	"github.com/mbaillet/vet-planner/pkg/core/services"
)

// SetBookingStatusCmd creates the setBookingStatus command
func SetBookingStatusCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "setBookingStatus <booking_id> <status>",
		Short: "Apply a booking status transition",
		Long:  "Move a booking through its lifecycle: pending -> confirmed -> completed, or cancel a pending/confirmed booking.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := services.ChangeBookingStatus(app.Ctx, app.Database, app.Cfg, app.Logger,
				args[0], model.BookingStatus(args[1]))
			if err != nil {
				return err
			}

			fmt.Printf("✅ Booking %s is now %s\n", args[0], args[1])
			return nil
		},
	}
}
