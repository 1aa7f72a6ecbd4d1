package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mbaillet/vet-planner/internal/config"
	"github.com/mbaillet/vet-planner/pkg/core/assign"
	"github.com/mbaillet/vet-planner/pkg/core/blocks"
	"github.com/mbaillet/vet-planner/pkg/core/calendar"
	"github.com/mbaillet/vet-planner/pkg/core/model"
)

// BookingStore defines the database operations needed for booking mutations
type BookingStore interface {
	GetBookings(ctx context.Context, clinicID, from, to string) ([]model.Booking, error)
	GetBooking(ctx context.Context, bookingID string) (*model.Booking, error)
	GetRecurringBlocks(ctx context.Context, clinicID string) ([]model.RecurringSlotBlock, error)
	GetVeterinarians(ctx context.Context, clinicID string) ([]model.Veterinarian, error)
	InsertBooking(ctx context.Context, booking *model.Booking) error
	UpdateBookingStatus(ctx context.Context, bookingID string, status model.BookingStatus) error
	MoveBooking(ctx context.Context, bookingID, date, timeSlot, endTime string) error
	DeleteBooking(ctx context.Context, bookingID string) error
}

// BookingInput carries the staff- or wizard-entered fields of a new booking
type BookingInput struct {
	Date           string // "2006-01-02"
	Time           string // "15:04", 15-minute aligned
	Duration       int    // minutes, defaults to one slot
	VeterinarianID string // empty means no preference
	ClientName     string
	ClientContact  string
	AnimalName     string
	Reason         string
	Source         model.BookingSource
	IsBlocked      bool
}

// CreateBooking persists a new booking. A booking without a veterinarian
// preference is run through the auto-assignment engine first, so that two
// no-preference clients are never silently double-booked onto the same
// veterinarian; when no veterinarian is free the booking stays unassigned
// and renders in the ASV column only if it is a block.
func CreateBooking(
	ctx context.Context,
	store BookingStore,
	cfg *config.Config,
	logger *zap.Logger,
	input BookingInput,
	rng assign.Rand,
) (*model.Booking, error) {
	date, err := time.Parse(dateLayout, input.Date)
	if err != nil {
		return nil, fmt.Errorf("invalid booking date: %w", err)
	}
	if _, err := calendar.MinuteOfDay(input.Time); err != nil {
		return nil, fmt.Errorf("invalid booking time: %w", err)
	}

	duration := input.Duration
	if duration <= 0 {
		duration = calendar.SlotMinutes
	}
	endTime, err := calendar.AddMinutes(input.Time, duration)
	if err != nil {
		return nil, fmt.Errorf("invalid booking duration: %w", err)
	}

	source := input.Source
	if source == "" {
		source = model.SourceManual
	}

	booking := model.Booking{
		ID:             uuid.NewString(),
		ClinicID:       cfg.ClinicID,
		Date:           input.Date,
		Time:           input.Time,
		EndTime:        endTime,
		Duration:       duration,
		VeterinarianID: input.VeterinarianID,
		ClientName:     input.ClientName,
		ClientContact:  input.ClientContact,
		AnimalName:     input.AnimalName,
		Reason:         input.Reason,
		Status:         model.StatusPending,
		Source:         source,
		IsBlocked:      input.IsBlocked,
	}

	existing, err := store.GetBookings(ctx, cfg.ClinicID, input.Date, input.Date)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch bookings: %w", err)
	}

	rules, err := store.GetRecurringBlocks(ctx, cfg.ClinicID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch recurring blocks: %w", err)
	}
	merged := blocks.MergeWithBookings(existing, blocks.ExpandForDate(date, rules))

	if booking.VeterinarianID == "" && !booking.IsBlocked {
		veterinarians, err := store.GetVeterinarians(ctx, cfg.ClinicID)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch veterinarians: %w", err)
		}
		booking = assign.ProcessBookingWithoutPreference(booking, veterinarians, merged, rng)
		if booking.AutoAssigned {
			logger.Debug("Auto-assigned booking",
				zap.String("booking_id", booking.ID),
				zap.String("veterinarian_id", booking.VeterinarianID))
		}
	}

	// At most one occupying non-blocked booking per (date, time, veterinarian)
	if booking.VeterinarianID != "" && !booking.IsBlocked {
		for _, b := range merged {
			if b.Date == booking.Date && b.Time == booking.Time &&
				b.VeterinarianID == booking.VeterinarianID && b.OccupiesSlot() {
				return nil, fmt.Errorf("slot %s %s is already taken for veterinarian %s",
					booking.Date, booking.Time, booking.VeterinarianID)
			}
		}
	}

	if err := store.InsertBooking(ctx, &booking); err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	logger.Info("Created booking",
		zap.String("booking_id", booking.ID),
		zap.String("date", booking.Date),
		zap.String("time", booking.Time),
		zap.String("veterinarian_id", booking.VeterinarianID),
		zap.Bool("blocked", booking.IsBlocked))

	return &booking, nil
}

// ChangeBookingStatus applies a status transition after checking the
// lifecycle machine: pending -> confirmed -> completed, with cancellation
// legal from pending and confirmed. Terminal states never transition.
func ChangeBookingStatus(
	ctx context.Context,
	store BookingStore,
	cfg *config.Config,
	logger *zap.Logger,
	bookingID string,
	next model.BookingStatus,
) error {
	if !next.IsValid() {
		return fmt.Errorf("unknown booking status %q", next)
	}

	booking, err := store.GetBooking(ctx, bookingID)
	if err != nil {
		return fmt.Errorf("failed to fetch booking: %w", err)
	}
	if booking.IsSynthetic() {
		return fmt.Errorf("booking %s is a recurring block expansion and has no lifecycle", bookingID)
	}

	if !booking.Status.CanTransitionTo(next) {
		return fmt.Errorf("illegal status transition %s -> %s for booking %s", booking.Status, next, bookingID)
	}

	if err := store.UpdateBookingStatus(ctx, bookingID, next); err != nil {
		return fmt.Errorf("failed to update booking status: %w", err)
	}

	logger.Info("Changed booking status",
		zap.String("booking_id", bookingID),
		zap.String("from", string(booking.Status)),
		zap.String("to", string(next)))

	return nil
}

// MoveBooking relocates a booking to another (date, time slot), refusing the
// move when the target slot is occupied for the same veterinarian
func MoveBooking(
	ctx context.Context,
	store BookingStore,
	cfg *config.Config,
	logger *zap.Logger,
	bookingID, newDate, newTime string,
) error {
	date, err := time.Parse(dateLayout, newDate)
	if err != nil {
		return fmt.Errorf("invalid target date: %w", err)
	}
	if _, err := calendar.MinuteOfDay(newTime); err != nil {
		return fmt.Errorf("invalid target time: %w", err)
	}

	booking, err := store.GetBooking(ctx, bookingID)
	if err != nil {
		return fmt.Errorf("failed to fetch booking: %w", err)
	}

	if booking.VeterinarianID != "" {
		targetDay, err := store.GetBookings(ctx, cfg.ClinicID, newDate, newDate)
		if err != nil {
			return fmt.Errorf("failed to fetch bookings: %w", err)
		}
		rules, err := store.GetRecurringBlocks(ctx, cfg.ClinicID)
		if err != nil {
			return fmt.Errorf("failed to fetch recurring blocks: %w", err)
		}
		for _, b := range blocks.MergeWithBookings(targetDay, blocks.ExpandForDate(date, rules)) {
			if b.ID != bookingID && b.Date == newDate && b.Time == newTime &&
				b.VeterinarianID == booking.VeterinarianID && b.OccupiesSlot() {
				return fmt.Errorf("target slot %s %s is already taken for veterinarian %s",
					newDate, newTime, booking.VeterinarianID)
			}
		}
	}

	endTime, err := calendar.AddMinutes(newTime, booking.Duration)
	if err != nil {
		return fmt.Errorf("invalid target time: %w", err)
	}

	if err := store.MoveBooking(ctx, bookingID, newDate, newTime, endTime); err != nil {
		return fmt.Errorf("failed to move booking: %w", err)
	}

	logger.Info("Moved booking",
		zap.String("booking_id", bookingID),
		zap.String("date", newDate),
		zap.String("time", newTime))

	return nil
}

// DuplicateBooking copies a booking onto another (date, time slot), keeping
// client and veterinarian details. The copy starts pending.
func DuplicateBooking(
	ctx context.Context,
	store BookingStore,
	cfg *config.Config,
	logger *zap.Logger,
	bookingID, newDate, newTime string,
	rng assign.Rand,
) (*model.Booking, error) {
	booking, err := store.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch booking: %w", err)
	}

	return CreateBooking(ctx, store, cfg, logger, BookingInput{
		Date:           newDate,
		Time:           newTime,
		Duration:       booking.Duration,
		VeterinarianID: booking.VeterinarianID,
		ClientName:     booking.ClientName,
		ClientContact:  booking.ClientContact,
		AnimalName:     booking.AnimalName,
		Reason:         booking.Reason,
		Source:         booking.Source,
		IsBlocked:      booking.IsBlocked,
	}, rng)
}

// RemoveBooking deletes a booking outright. Cancellation via the status
// machine is preferred for client bookings; deletion is for blocks and
// mistakes.
func RemoveBooking(
	ctx context.Context,
	store BookingStore,
	cfg *config.Config,
	logger *zap.Logger,
	bookingID string,
) error {
	if err := store.DeleteBooking(ctx, bookingID); err != nil {
		return fmt.Errorf("failed to delete booking: %w", err)
	}

	logger.Info("Deleted booking", zap.String("booking_id", bookingID))

	return nil
}
