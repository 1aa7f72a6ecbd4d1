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
	"github.com/mbaillet/vet-planner/pkg/core/model"
)

// AssignSlotStore defines the database operations needed for slot assignment
type AssignSlotStore interface {
	GetBookings(ctx context.Context, clinicID, from, to string) ([]model.Booking, error)
	GetRecurringBlocks(ctx context.Context, clinicID string) ([]model.RecurringSlotBlock, error)
	GetSlotAssignments(ctx context.Context, clinicID, date string) ([]model.SlotAssignment, error)
	GetVeterinarians(ctx context.Context, clinicID string) ([]model.Veterinarian, error)
	UpsertSlotAssignment(ctx context.Context, assignment *model.SlotAssignment) error
	DeleteSlotAssignment(ctx context.Context, clinicID, date, timeSlot string) error
}

// ResolveSlotVeterinarian returns the veterinarian bound to a (date, time
// slot) pair. An explicit slot assignment wins; otherwise the
// auto-assignment engine picks among active veterinarians with no occupying
// booking at the slot, and the pick is persisted as an auto assignment so
// later calls are stable.
//
// The persisted upsert is the optimistic lock against concurrent
// auto-assignment: after writing, the assignment is re-read and the stored
// row wins, so the first writer's choice holds even if two staff clients
// resolved the same slot at once. Returns "" when no veterinarian is
// available, which callers surface as unassigned/ASV, never as an error.
func ResolveSlotVeterinarian(
	ctx context.Context,
	store AssignSlotStore,
	cfg *config.Config,
	logger *zap.Logger,
	date time.Time,
	timeSlot string,
	rng assign.Rand,
) (string, error) {
	dateStr := date.Format(dateLayout)

	assignments, err := store.GetSlotAssignments(ctx, cfg.ClinicID, dateStr)
	if err != nil {
		return "", fmt.Errorf("failed to fetch slot assignments: %w", err)
	}

	if vetID := assign.AssignedVeterinarian(dateStr, timeSlot, assignments); vetID != "" {
		logger.Debug("Slot already assigned",
			zap.String("date", dateStr),
			zap.String("time_slot", timeSlot),
			zap.String("veterinarian_id", vetID))
		return vetID, nil
	}

	veterinarians, err := store.GetVeterinarians(ctx, cfg.ClinicID)
	if err != nil {
		return "", fmt.Errorf("failed to fetch veterinarians: %w", err)
	}

	bookings, err := store.GetBookings(ctx, cfg.ClinicID, dateStr, dateStr)
	if err != nil {
		return "", fmt.Errorf("failed to fetch bookings: %w", err)
	}

	rules, err := store.GetRecurringBlocks(ctx, cfg.ClinicID)
	if err != nil {
		return "", fmt.Errorf("failed to fetch recurring blocks: %w", err)
	}

	// Blocked slots count as occupied, so expansion feeds the candidate filter
	merged := blocks.MergeWithBookings(bookings, blocks.ExpandForDate(date, rules))

	vetID := assign.AssignVeterinarianToSlot(timeSlot, dateStr, veterinarians, merged, rng)
	if vetID == "" {
		logger.Debug("No veterinarian available for slot",
			zap.String("date", dateStr),
			zap.String("time_slot", timeSlot))
		return "", nil
	}

	assignment := &model.SlotAssignment{
		ID:             uuid.NewString(),
		ClinicID:       cfg.ClinicID,
		Date:           dateStr,
		TimeSlot:       timeSlot,
		VeterinarianID: vetID,
		Type:           model.AssignmentAuto,
	}
	if err := store.UpsertSlotAssignment(ctx, assignment); err != nil {
		return "", fmt.Errorf("failed to persist auto assignment: %w", err)
	}

	// Re-read: on a concurrent write the stored row wins over our pick
	assignments, err = store.GetSlotAssignments(ctx, cfg.ClinicID, dateStr)
	if err != nil {
		return "", fmt.Errorf("failed to re-read slot assignments: %w", err)
	}
	if stored := assign.AssignedVeterinarian(dateStr, timeSlot, assignments); stored != "" {
		vetID = stored
	}

	logger.Debug("Auto-assigned veterinarian to slot",
		zap.String("date", dateStr),
		zap.String("time_slot", timeSlot),
		zap.String("veterinarian_id", vetID))

	return vetID, nil
}

// ReassignSlot forces a specific veterinarian onto a (date, time slot) pair
// as a manual assignment. Idempotent overwrite on conflict.
func ReassignSlot(
	ctx context.Context,
	store AssignSlotStore,
	cfg *config.Config,
	logger *zap.Logger,
	date time.Time,
	timeSlot string,
	vetID string,
) error {
	veterinarians, err := store.GetVeterinarians(ctx, cfg.ClinicID)
	if err != nil {
		return fmt.Errorf("failed to fetch veterinarians: %w", err)
	}

	known := false
	for _, vet := range veterinarians {
		if vet.ID == vetID {
			known = true
			break
		}
	}
	if !known {
		return fmt.Errorf("unknown veterinarian %s", vetID)
	}

	assignment := &model.SlotAssignment{
		ID:             uuid.NewString(),
		ClinicID:       cfg.ClinicID,
		Date:           date.Format(dateLayout),
		TimeSlot:       timeSlot,
		VeterinarianID: vetID,
		Type:           model.AssignmentManual,
	}
	if err := store.UpsertSlotAssignment(ctx, assignment); err != nil {
		return fmt.Errorf("failed to upsert slot assignment: %w", err)
	}

	logger.Info("Reassigned slot",
		zap.String("date", assignment.Date),
		zap.String("time_slot", timeSlot),
		zap.String("veterinarian_id", vetID))

	return nil
}

// RemoveSlotAssignment deletes the assignment for a (date, time slot) pair;
// subsequent resolution falls back to the auto-assignment engine
func RemoveSlotAssignment(
	ctx context.Context,
	store AssignSlotStore,
	cfg *config.Config,
	logger *zap.Logger,
	date time.Time,
	timeSlot string,
) error {
	dateStr := date.Format(dateLayout)
	if err := store.DeleteSlotAssignment(ctx, cfg.ClinicID, dateStr, timeSlot); err != nil {
		return fmt.Errorf("failed to delete slot assignment: %w", err)
	}

	logger.Info("Removed slot assignment",
		zap.String("date", dateStr),
		zap.String("time_slot", timeSlot))

	return nil
}
