package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mbaillet/vet-planner/internal/config"
	"github.com/mbaillet/vet-planner/pkg/core/blocks"
	"github.com/mbaillet/vet-planner/pkg/core/calendar"
	"github.com/mbaillet/vet-planner/pkg/core/grid"
	"github.com/mbaillet/vet-planner/pkg/core/model"
)

const dateLayout = "2006-01-02"

// PlanDayResult contains the resolved day grid and the raw inputs it was
// built from, for callers that need them (rendering, diagnostics)
type PlanDayResult struct {
	Grid grid.DayGrid

	Veterinarians []model.Veterinarian
	Bookings      []model.Booking // merged: real + surviving synthetic
	Assignments   []model.SlotAssignment

	RealBookingCount      int
	SyntheticBookingCount int
}

// PlanDayStore defines the database operations needed to plan a day
type PlanDayStore interface {
	GetBookings(ctx context.Context, clinicID, from, to string) ([]model.Booking, error)
	GetRecurringBlocks(ctx context.Context, clinicID string) ([]model.RecurringSlotBlock, error)
	GetAbsences(ctx context.Context, clinicID string) ([]model.VeterinarianAbsence, error)
	GetSchedules(ctx context.Context, clinicID string) ([]model.VeterinarianSchedule, error)
	GetSlotAssignments(ctx context.Context, clinicID, date string) ([]model.SlotAssignment, error)
	GetVeterinarians(ctx context.Context, clinicID string) ([]model.Veterinarian, error)
}

// PlanDay resolves the full schedule grid for one clinic date: it fetches
// bookings, recurring block rules, absences, weekly schedules and slot
// assignments, expands the rules into synthetic blocked slots, merges them
// with real bookings (real data wins on collision) and composes the
// renderable column/slot grid.
//
// Expansion is re-run on every call so rule edits are reflected immediately;
// nothing synthetic is ever persisted.
func PlanDay(
	ctx context.Context,
	store PlanDayStore,
	cfg *config.Config,
	logger *zap.Logger,
	date time.Time,
) (*PlanDayResult, error) {
	dateStr := date.Format(dateLayout)
	logger.Debug("Planning day", zap.String("date", dateStr), zap.String("clinic_id", cfg.ClinicID))

	veterinarians, err := store.GetVeterinarians(ctx, cfg.ClinicID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch veterinarians: %w", err)
	}
	logger.Debug("Found veterinarians", zap.Int("count", len(veterinarians)))

	bookings, err := store.GetBookings(ctx, cfg.ClinicID, dateStr, dateStr)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch bookings: %w", err)
	}
	logger.Debug("Found bookings", zap.Int("count", len(bookings)))

	rules, err := store.GetRecurringBlocks(ctx, cfg.ClinicID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch recurring blocks: %w", err)
	}
	logger.Debug("Found recurring block rules", zap.Int("count", len(rules)))

	warnDegenerateRules(rules, logger)

	absences, err := store.GetAbsences(ctx, cfg.ClinicID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch absences: %w", err)
	}

	schedules, err := store.GetSchedules(ctx, cfg.ClinicID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch schedules: %w", err)
	}

	assignments, err := store.GetSlotAssignments(ctx, cfg.ClinicID, dateStr)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch slot assignments: %w", err)
	}

	synthetic := blocks.ExpandForDate(date, rules)
	logger.Debug("Expanded recurring blocks", zap.Int("synthetic_count", len(synthetic)))

	merged := blocks.MergeWithBookings(bookings, synthetic)

	gridCfg := grid.Config{
		ShowASVColumn: cfg.ShowASVColumn,
		ColumnOrder:   cfg.VeterinarianColumnOrder,
		Week:          cfg.WeekSchedule(),
	}

	dayGrid := grid.ComposeDay(date, veterinarians, gridCfg, absences, schedules, merged)
	logger.Debug("Composed day grid",
		zap.Int("columns", len(dayGrid.Columns)),
		zap.Int("slots", len(dayGrid.Slots)),
		zap.Bool("open", dayGrid.Schedule.IsOpen))

	return &PlanDayResult{
		Grid:                  dayGrid,
		Veterinarians:         veterinarians,
		Bookings:              merged,
		Assignments:           assignments,
		RealBookingCount:      len(bookings),
		SyntheticBookingCount: len(merged) - len(bookings),
	}, nil
}

// warnDegenerateRules logs rules that expand to nothing because their time
// range is empty. Expansion treats them as a configuration no-op.
func warnDegenerateRules(rules []model.RecurringSlotBlock, logger *zap.Logger) {
	for _, rule := range rules {
		if !rule.IsActive {
			continue
		}
		start, err := calendar.MinuteOfDay(rule.StartTime)
		if err != nil {
			continue
		}
		end, err := calendar.MinuteOfDay(rule.EndTime)
		if err != nil {
			continue
		}
		if start >= end {
			logger.Warn("Recurring block rule has an empty time range",
				zap.String("rule_id", rule.ID),
				zap.String("title", rule.Title),
				zap.String("start_time", rule.StartTime),
				zap.String("end_time", rule.EndTime))
		}
	}
}
