package services

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/teambition/rrule-go"
	"go.uber.org/zap"

	"github.com/mbaillet/vet-planner/internal/config"
	"github.com/mbaillet/vet-planner/pkg/core/calendar"
	"github.com/mbaillet/vet-planner/pkg/core/model"
)

// RecurringBlockStore defines the database operations for recurring block rules
type RecurringBlockStore interface {
	GetRecurringBlocks(ctx context.Context, clinicID string) ([]model.RecurringSlotBlock, error)
	InsertRecurringBlock(ctx context.Context, rule *model.RecurringSlotBlock) error
	UpdateRecurringBlock(ctx context.Context, rule *model.RecurringSlotBlock) error
	DeactivateRecurringBlock(ctx context.Context, ruleID string) error
}

// RecurringBlockInput carries the staff-entered fields of a new or edited rule
type RecurringBlockInput struct {
	Title          string `validate:"required"`
	Description    string
	VeterinarianID string
	DayOfWeek      int    `validate:"min=0,max=6"`
	StartTime      string `validate:"required"`
	EndTime        string `validate:"required"`
	StartDate      string // "2006-01-02", optional
	EndDate        string // "2006-01-02", optional
}

var validateInput = validator.New()

// validateBlockInput checks the rule's fields beyond struct tags: HH:MM
// times with start before end, parseable validity bounds in order, and a
// weekly recurrence that rrule accepts.
func validateBlockInput(input *RecurringBlockInput) error {
	if err := validateInput.Struct(input); err != nil {
		return fmt.Errorf("invalid recurring block: %w", err)
	}

	start, err := calendar.MinuteOfDay(input.StartTime)
	if err != nil {
		return fmt.Errorf("invalid recurring block start time: %w", err)
	}
	end, err := calendar.MinuteOfDay(input.EndTime)
	if err != nil {
		return fmt.Errorf("invalid recurring block end time: %w", err)
	}
	if start >= end {
		return fmt.Errorf("recurring block start time %s must be before end time %s", input.StartTime, input.EndTime)
	}

	var startDate, endDate time.Time
	if input.StartDate != "" {
		if startDate, err = time.Parse(dateLayout, input.StartDate); err != nil {
			return fmt.Errorf("invalid recurring block start date: %w", err)
		}
	}
	if input.EndDate != "" {
		if endDate, err = time.Parse(dateLayout, input.EndDate); err != nil {
			return fmt.Errorf("invalid recurring block end date: %w", err)
		}
	}
	if input.StartDate != "" && input.EndDate != "" && startDate.After(endDate) {
		return fmt.Errorf("recurring block validity window is inverted: %s after %s", input.StartDate, input.EndDate)
	}

	// The expander builds a weekly RRULE from these fields; reject rules it
	// could not expand
	weekdays := [7]rrule.Weekday{rrule.SU, rrule.MO, rrule.TU, rrule.WE, rrule.TH, rrule.FR, rrule.SA}
	if _, err := rrule.NewRRule(rrule.ROption{
		Freq:      rrule.WEEKLY,
		Byweekday: []rrule.Weekday{weekdays[input.DayOfWeek]},
		Dtstart:   time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC),
	}); err != nil {
		return fmt.Errorf("invalid recurrence: %w", err)
	}

	return nil
}

// CreateRecurringBlock validates and persists a new recurring block rule.
// The rule starts active; expansion into blocked slots happens transiently
// at read time, never as persisted bookings.
func CreateRecurringBlock(
	ctx context.Context,
	store RecurringBlockStore,
	cfg *config.Config,
	logger *zap.Logger,
	input RecurringBlockInput,
) (*model.RecurringSlotBlock, error) {
	if err := validateBlockInput(&input); err != nil {
		return nil, err
	}

	rule := &model.RecurringSlotBlock{
		ID:             uuid.NewString(),
		ClinicID:       cfg.ClinicID,
		Title:          input.Title,
		Description:    input.Description,
		VeterinarianID: input.VeterinarianID,
		DayOfWeek:      input.DayOfWeek,
		StartTime:      input.StartTime,
		EndTime:        input.EndTime,
		StartDate:      input.StartDate,
		EndDate:        input.EndDate,
		IsActive:       true,
	}

	if err := store.InsertRecurringBlock(ctx, rule); err != nil {
		return nil, fmt.Errorf("failed to create recurring block: %w", err)
	}

	logger.Info("Created recurring block",
		zap.String("rule_id", rule.ID),
		zap.String("title", rule.Title),
		zap.Int("day_of_week", rule.DayOfWeek),
		zap.String("start_time", rule.StartTime),
		zap.String("end_time", rule.EndTime))

	return rule, nil
}

// UpdateRecurringBlock validates and rewrites an existing rule. Changes take
// effect on the next expansion; no backfill is needed because nothing was
// materialized.
func UpdateRecurringBlock(
	ctx context.Context,
	store RecurringBlockStore,
	cfg *config.Config,
	logger *zap.Logger,
	ruleID string,
	input RecurringBlockInput,
) (*model.RecurringSlotBlock, error) {
	if err := validateBlockInput(&input); err != nil {
		return nil, err
	}

	rule := &model.RecurringSlotBlock{
		ID:             ruleID,
		ClinicID:       cfg.ClinicID,
		Title:          input.Title,
		Description:    input.Description,
		VeterinarianID: input.VeterinarianID,
		DayOfWeek:      input.DayOfWeek,
		StartTime:      input.StartTime,
		EndTime:        input.EndTime,
		StartDate:      input.StartDate,
		EndDate:        input.EndDate,
		IsActive:       true,
	}

	if err := store.UpdateRecurringBlock(ctx, rule); err != nil {
		return nil, fmt.Errorf("failed to update recurring block: %w", err)
	}

	logger.Info("Updated recurring block", zap.String("rule_id", ruleID))

	return rule, nil
}

// RemoveRecurringBlock soft-deletes a rule. Already-rendered grids keep
// their blocks until re-planned; the next expansion skips the rule.
func RemoveRecurringBlock(
	ctx context.Context,
	store RecurringBlockStore,
	cfg *config.Config,
	logger *zap.Logger,
	ruleID string,
) error {
	if err := store.DeactivateRecurringBlock(ctx, ruleID); err != nil {
		return fmt.Errorf("failed to remove recurring block: %w", err)
	}

	logger.Info("Deactivated recurring block", zap.String("rule_id", ruleID))

	return nil
}

// ListRecurringBlocks returns the clinic's active rules
func ListRecurringBlocks(
	ctx context.Context,
	store RecurringBlockStore,
	cfg *config.Config,
) ([]model.RecurringSlotBlock, error) {
	rules, err := store.GetRecurringBlocks(ctx, cfg.ClinicID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch recurring blocks: %w", err)
	}

	active := make([]model.RecurringSlotBlock, 0, len(rules))
	for _, rule := range rules {
		if rule.IsActive {
			active = append(active, rule)
		}
	}

	return active, nil
}
