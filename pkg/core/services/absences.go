package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mbaillet/vet-planner/internal/config"
	"github.com/mbaillet/vet-planner/pkg/core/model"
)

// AbsenceStore defines the database operations for veterinarian absences
// and weekly working schedules
type AbsenceStore interface {
	GetAbsences(ctx context.Context, clinicID string) ([]model.VeterinarianAbsence, error)
	InsertAbsence(ctx context.Context, absence *model.VeterinarianAbsence) error
	DeleteAbsence(ctx context.Context, absenceID string) error
	UpsertSchedule(ctx context.Context, schedule *model.VeterinarianSchedule) error
	GetVeterinarians(ctx context.Context, clinicID string) ([]model.Veterinarian, error)
}

// RecordAbsence persists a veterinarian absence. Bounds are inclusive day
// dates and must be ordered.
func RecordAbsence(
	ctx context.Context,
	store AbsenceStore,
	cfg *config.Config,
	logger *zap.Logger,
	vetID, startDate, endDate string,
	absenceType model.AbsenceType,
	reason string,
) (*model.VeterinarianAbsence, error) {
	start, err := time.Parse(dateLayout, startDate)
	if err != nil {
		return nil, fmt.Errorf("invalid absence start date: %w", err)
	}
	end, err := time.Parse(dateLayout, endDate)
	if err != nil {
		return nil, fmt.Errorf("invalid absence end date: %w", err)
	}
	if start.After(end) {
		return nil, fmt.Errorf("absence start %s is after end %s", startDate, endDate)
	}

	if err := checkVeterinarian(ctx, store, cfg.ClinicID, vetID); err != nil {
		return nil, err
	}

	if absenceType == "" {
		absenceType = model.AbsenceOther
	}

	absence := &model.VeterinarianAbsence{
		ID:             uuid.NewString(),
		ClinicID:       cfg.ClinicID,
		VeterinarianID: vetID,
		StartDate:      startDate,
		EndDate:        endDate,
		Type:           absenceType,
		Reason:         reason,
	}

	if err := store.InsertAbsence(ctx, absence); err != nil {
		return nil, fmt.Errorf("failed to record absence: %w", err)
	}

	logger.Info("Recorded absence",
		zap.String("absence_id", absence.ID),
		zap.String("veterinarian_id", vetID),
		zap.String("start", startDate),
		zap.String("end", endDate),
		zap.String("type", string(absenceType)))

	return absence, nil
}

// ListAbsences returns the clinic's recorded absences
func ListAbsences(
	ctx context.Context,
	store AbsenceStore,
	cfg *config.Config,
) ([]model.VeterinarianAbsence, error) {
	absences, err := store.GetAbsences(ctx, cfg.ClinicID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch absences: %w", err)
	}

	return absences, nil
}

// RemoveAbsence deletes an absence record
func RemoveAbsence(
	ctx context.Context,
	store AbsenceStore,
	cfg *config.Config,
	logger *zap.Logger,
	absenceID string,
) error {
	if err := store.DeleteAbsence(ctx, absenceID); err != nil {
		return fmt.Errorf("failed to remove absence: %w", err)
	}

	logger.Info("Removed absence", zap.String("absence_id", absenceID))

	return nil
}

// SetWeeklySchedule writes one weekday of a veterinarian's standing working
// pattern, replacing any previous row for the same (veterinarian, weekday).
// Veterinarians with no row for a weekday default to working.
func SetWeeklySchedule(
	ctx context.Context,
	store AbsenceStore,
	cfg *config.Config,
	logger *zap.Logger,
	schedule model.VeterinarianSchedule,
) error {
	if schedule.DayOfWeek < 0 || schedule.DayOfWeek > 6 {
		return fmt.Errorf("invalid day of week %d", schedule.DayOfWeek)
	}

	if err := checkVeterinarian(ctx, store, cfg.ClinicID, schedule.VeterinarianID); err != nil {
		return err
	}

	if schedule.ID == "" {
		schedule.ID = uuid.NewString()
	}

	if err := store.UpsertSchedule(ctx, &schedule); err != nil {
		return fmt.Errorf("failed to set weekly schedule: %w", err)
	}

	logger.Info("Set weekly schedule",
		zap.String("veterinarian_id", schedule.VeterinarianID),
		zap.Int("day_of_week", schedule.DayOfWeek),
		zap.Bool("is_working", schedule.IsWorking))

	return nil
}

// checkVeterinarian verifies the id belongs to the clinic's roster
func checkVeterinarian(ctx context.Context, store AbsenceStore, clinicID, vetID string) error {
	veterinarians, err := store.GetVeterinarians(ctx, clinicID)
	if err != nil {
		return fmt.Errorf("failed to fetch veterinarians: %w", err)
	}

	for _, vet := range veterinarians {
		if vet.ID == vetID {
			return nil
		}
	}

	return fmt.Errorf("unknown veterinarian %s", vetID)
}
