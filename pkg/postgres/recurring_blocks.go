package postgres

import (
	"context"
	"fmt"

	"github.com/mbaillet/vet-planner/pkg/core/model"
)

// GetRecurringBlocks retrieves all recurring block rules for a clinic,
// including deactivated ones; the expander skips inactive rules itself.
func (db *DB) GetRecurringBlocks(ctx context.Context, clinicID string) ([]model.RecurringSlotBlock, error) {
	rows, err := db.pool.Query(ctx, `
		SELECT id, clinic_id, title, description, veterinarian_id, day_of_week,
		       start_time, end_time,
		       to_char(start_date, 'YYYY-MM-DD'), to_char(end_date, 'YYYY-MM-DD'),
		       is_active
		FROM recurring_slot_block
		WHERE clinic_id = $1
		ORDER BY created_at
	`, clinicID)
	if err != nil {
		return nil, fmt.Errorf("failed to query recurring blocks: %w", err)
	}
	defer rows.Close()

	var rules []model.RecurringSlotBlock
	for rows.Next() {
		var r model.RecurringSlotBlock
		var vetID, startDate, endDate *string
		if err := rows.Scan(&r.ID, &r.ClinicID, &r.Title, &r.Description, &vetID,
			&r.DayOfWeek, &r.StartTime, &r.EndTime, &startDate, &endDate, &r.IsActive); err != nil {
			return nil, fmt.Errorf("failed to scan recurring block: %w", err)
		}
		if vetID != nil {
			r.VeterinarianID = *vetID
		}
		if startDate != nil {
			r.StartDate = *startDate
		}
		if endDate != nil {
			r.EndDate = *endDate
		}
		rules = append(rules, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating recurring blocks: %w", err)
	}

	return rules, nil
}

// InsertRecurringBlock inserts a new recurring block rule
func (db *DB) InsertRecurringBlock(ctx context.Context, rule *model.RecurringSlotBlock) error {
	vetID, startDate, endDate := optionalRuleFields(rule)

	_, err := db.pool.Exec(ctx, `
		INSERT INTO recurring_slot_block (id, clinic_id, title, description, veterinarian_id,
		                                  day_of_week, start_time, end_time, start_date, end_date, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`, rule.ID, rule.ClinicID, rule.Title, rule.Description, vetID,
		rule.DayOfWeek, rule.StartTime, rule.EndTime, startDate, endDate, rule.IsActive)
	if err != nil {
		return fmt.Errorf("failed to insert recurring block: %w", err)
	}

	return nil
}

// UpdateRecurringBlock rewrites an existing rule's attributes
func (db *DB) UpdateRecurringBlock(ctx context.Context, rule *model.RecurringSlotBlock) error {
	vetID, startDate, endDate := optionalRuleFields(rule)

	tag, err := db.pool.Exec(ctx, `
		UPDATE recurring_slot_block
		SET title = $2, description = $3, veterinarian_id = $4, day_of_week = $5,
		    start_time = $6, end_time = $7, start_date = $8, end_date = $9, is_active = $10
		WHERE id = $1
	`, rule.ID, rule.Title, rule.Description, vetID, rule.DayOfWeek,
		rule.StartTime, rule.EndTime, startDate, endDate, rule.IsActive)
	if err != nil {
		return fmt.Errorf("failed to update recurring block: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("recurring block %s not found", rule.ID)
	}

	return nil
}

// DeactivateRecurringBlock soft-deletes a rule. The row is kept so existing
// references stay resolvable; the expander ignores inactive rules.
func (db *DB) DeactivateRecurringBlock(ctx context.Context, ruleID string) error {
	tag, err := db.pool.Exec(ctx, `
		UPDATE recurring_slot_block SET is_active = FALSE WHERE id = $1
	`, ruleID)
	if err != nil {
		return fmt.Errorf("failed to deactivate recurring block: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("recurring block %s not found", ruleID)
	}

	return nil
}

func optionalRuleFields(rule *model.RecurringSlotBlock) (vetID, startDate, endDate *string) {
	if rule.VeterinarianID != "" {
		vetID = &rule.VeterinarianID
	}
	if rule.StartDate != "" {
		startDate = &rule.StartDate
	}
	if rule.EndDate != "" {
		endDate = &rule.EndDate
	}
	return vetID, startDate, endDate
}
