package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mbaillet/vet-planner/pkg/core/model"
	"github.com/mbaillet/vet-planner/pkg/core/services"
)

// AddBookingCmd creates the addBooking command
func AddBookingCmd(app *AppContext) *cobra.Command {
	var (
		vetID    string
		duration int
		contact  string
		animal   string
		reason   string
		source   string
		blocked  bool
	)

	cmd := &cobra.Command{
		Use:   "addBooking <date> <time> <client_name>",
		Short: "Create a booking or a manual block",
		Long:  "Create a booking at a 15-minute slot. Without --vet the auto-assignment engine picks an available veterinarian; with --blocked the entry blocks the slot instead of booking a client.",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := services.BookingInput{
				Date:           args[0],
				Time:           args[1],
				ClientName:     args[2],
				ClientContact:  contact,
				AnimalName:     animal,
				Reason:         reason,
				Duration:       duration,
				VeterinarianID: vetID,
				Source:         model.BookingSource(source),
				IsBlocked:      blocked,
			}

			booking, err := services.CreateBooking(app.Ctx, app.Database, app.Cfg, app.Logger, input, nil)
			if err != nil {
				return fmt.Errorf("failed to create booking: %w", err)
			}

			fmt.Printf("\n✅ Booking created\n\n")
			fmt.Printf("ID:           %s\n", booking.ID)
			fmt.Printf("Slot:         %s %s–%s\n", booking.Date, booking.Time, booking.EndTime)
			if booking.VeterinarianID != "" {
				auto := ""
				if booking.AutoAssigned {
					auto = " (auto-assigned)"
				}
				fmt.Printf("Veterinarian: %s%s\n", booking.VeterinarianID, auto)
			} else {
				fmt.Printf("Veterinarian: unassigned (ASV)\n")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&vetID, "vet", "", "Veterinarian id (empty for no preference)")
	cmd.Flags().IntVar(&duration, "duration", 15, "Duration in minutes")
	cmd.Flags().StringVar(&contact, "contact", "", "Client contact")
	cmd.Flags().StringVar(&animal, "animal", "", "Animal name")
	cmd.Flags().StringVar(&reason, "reason", "", "Visit reason")
	cmd.Flags().StringVar(&source, "source", "manual", "Booking source (phone, walk_in, online, manual)")
	cmd.Flags().BoolVar(&blocked, "blocked", false, "Create a manual block instead of a client booking")

	return cmd
}
