package postgres

import (
	"context"
	"fmt"

	"github.com/mbaillet/vet-planner/pkg/core/model"
)

// GetSchedules retrieves the weekly working schedules of a clinic's
// veterinarians. Veterinarians without rows default to working.
func (db *DB) GetSchedules(ctx context.Context, clinicID string) ([]model.VeterinarianSchedule, error) {
	rows, err := db.pool.Query(ctx, `
		SELECT s.id, s.veterinarian_id, s.day_of_week, s.is_working,
		       s.morning_start, s.morning_end, s.afternoon_start, s.afternoon_end
		FROM veterinarian_schedule s
		JOIN veterinarian v ON v.id = s.veterinarian_id
		WHERE v.clinic_id = $1
		ORDER BY s.veterinarian_id, s.day_of_week
	`, clinicID)
	if err != nil {
		return nil, fmt.Errorf("failed to query schedules: %w", err)
	}
	defer rows.Close()

	var schedules []model.VeterinarianSchedule
	for rows.Next() {
		var s model.VeterinarianSchedule
		var ms, me, as, ae *string
		if err := rows.Scan(&s.ID, &s.VeterinarianID, &s.DayOfWeek, &s.IsWorking,
			&ms, &me, &as, &ae); err != nil {
			return nil, fmt.Errorf("failed to scan schedule: %w", err)
		}
		if ms != nil {
			s.MorningStart = *ms
		}
		if me != nil {
			s.MorningEnd = *me
		}
		if as != nil {
			s.AfternoonStart = *as
		}
		if ae != nil {
			s.AfternoonEnd = *ae
		}
		schedules = append(schedules, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating schedules: %w", err)
	}

	return schedules, nil
}

// UpsertSchedule writes a veterinarian's schedule row for one weekday,
// replacing any previous row for the same (veterinarian, weekday) pair
func (db *DB) UpsertSchedule(ctx context.Context, schedule *model.VeterinarianSchedule) error {
	var ms, me, as, ae *string
	if schedule.MorningStart != "" {
		ms = &schedule.MorningStart
	}
	if schedule.MorningEnd != "" {
		me = &schedule.MorningEnd
	}
	if schedule.AfternoonStart != "" {
		as = &schedule.AfternoonStart
	}
	if schedule.AfternoonEnd != "" {
		ae = &schedule.AfternoonEnd
	}

	_, err := db.pool.Exec(ctx, `
		INSERT INTO veterinarian_schedule (id, veterinarian_id, day_of_week, is_working,
		                                   morning_start, morning_end, afternoon_start, afternoon_end)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (veterinarian_id, day_of_week) DO UPDATE
		SET is_working = EXCLUDED.is_working,
		    morning_start = EXCLUDED.morning_start,
		    morning_end = EXCLUDED.morning_end,
		    afternoon_start = EXCLUDED.afternoon_start,
		    afternoon_end = EXCLUDED.afternoon_end
	`, schedule.ID, schedule.VeterinarianID, schedule.DayOfWeek, schedule.IsWorking, ms, me, as, ae)
	if err != nil {
		return fmt.Errorf("failed to upsert schedule: %w", err)
	}

	return nil
}
