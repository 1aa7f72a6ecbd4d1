package db

import (
	"context"

	"github.com/mbaillet/vet-planner/pkg/core/model"
)

// Database defines the full data-access contract the planning core consumes.
// pkg/postgres implements it; tests substitute hand-written mocks for the
// narrow per-service interfaces declared in pkg/core/services.
type Database interface {
	// Bookings. GetBookings returns real persisted bookings for a clinic
	// within [from, to] inclusive ("2006-01-02" dates); recurring block
	// expansions are never stored and never returned here.
	GetBookings(ctx context.Context, clinicID, from, to string) ([]model.Booking, error)
	GetBooking(ctx context.Context, bookingID string) (*model.Booking, error)
	InsertBooking(ctx context.Context, booking *model.Booking) error
	UpdateBookingStatus(ctx context.Context, bookingID string, status model.BookingStatus) error
	MoveBooking(ctx context.Context, bookingID, date, timeSlot, endTime string) error
	DeleteBooking(ctx context.Context, bookingID string) error

	// Recurring block rules. Deactivation is a soft delete (is_active=false)
	GetRecurringBlocks(ctx context.Context, clinicID string) ([]model.RecurringSlotBlock, error)
	InsertRecurringBlock(ctx context.Context, rule *model.RecurringSlotBlock) error
	UpdateRecurringBlock(ctx context.Context, rule *model.RecurringSlotBlock) error
	DeactivateRecurringBlock(ctx context.Context, ruleID string) error

	// Veterinarian absences
	GetAbsences(ctx context.Context, clinicID string) ([]model.VeterinarianAbsence, error)
	InsertAbsence(ctx context.Context, absence *model.VeterinarianAbsence) error
	DeleteAbsence(ctx context.Context, absenceID string) error

	// Weekly working schedules, unique per (veterinarian, weekday)
	GetSchedules(ctx context.Context, clinicID string) ([]model.VeterinarianSchedule, error)
	UpsertSchedule(ctx context.Context, schedule *model.VeterinarianSchedule) error

	// Slot assignments, unique per (date, time slot) with last-write-wins
	// upsert semantics
	GetSlotAssignments(ctx context.Context, clinicID, date string) ([]model.SlotAssignment, error)
	UpsertSlotAssignment(ctx context.Context, assignment *model.SlotAssignment) error
	DeleteSlotAssignment(ctx context.Context, clinicID, date, timeSlot string) error

	// Roster
	GetVeterinarians(ctx context.Context, clinicID string) ([]model.Veterinarian, error)
}
