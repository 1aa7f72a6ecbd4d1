package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mbaillet/vet-planner/pkg/core/services"
)

// MoveBookingCmd creates the moveBooking command
func MoveBookingCmd(app *AppContext) *cobra.Command {
	var deleteInstead bool

	cmd := &cobra.Command{
		Use:   "moveBooking <booking_id> <new_date> <new_time>",
		Short: "Move a booking to another slot (or delete it)",
		Args:  cobra.RangeArgs(1, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			if deleteInstead {
				if err := services.RemoveBooking(app.Ctx, app.Database, app.Cfg, app.Logger, args[0]); err != nil {
					return err
				}
				fmt.Printf("✅ Booking %s deleted\n", args[0])
				return nil
			}

			if len(args) != 3 {
				return fmt.Errorf("moveBooking requires <booking_id> <new_date> <new_time> unless --delete is set")
			}

			if err := services.MoveBooking(app.Ctx, app.Database, app.Cfg, app.Logger, args[0], args[1], args[2]); err != nil {
				return err
			}

			fmt.Printf("✅ Booking %s moved to %s %s\n", args[0], args[1], args[2])
			return nil
		},
	}

	cmd.Flags().BoolVar(&deleteInstead, "delete", false, "Delete the booking instead of moving it")

	return cmd
}
