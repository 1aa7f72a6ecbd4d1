package postgres

import (
	"context"
	"fmt"

	"github.com/mbaillet/vet-planner/pkg/core/model"
)

// GetSlotAssignments retrieves the slot assignments for a clinic and date,
// oldest first so the resolver's earliest-created rule holds
func (db *DB) GetSlotAssignments(ctx context.Context, clinicID, date string) ([]model.SlotAssignment, error) {
	rows, err := db.pool.Query(ctx, `
		SELECT id, clinic_id, to_char(slot_date, 'YYYY-MM-DD'), slot_time,
		       veterinarian_id, assignment_type,
		       to_char(created_at, 'YYYY-MM-DD"T"HH24:MI:SSOF')
		FROM slot_assignment
		WHERE clinic_id = $1 AND slot_date = $2
		ORDER BY created_at
	`, clinicID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to query slot assignments: %w", err)
	}
	defer rows.Close()

	var assignments []model.SlotAssignment
	for rows.Next() {
		var a model.SlotAssignment
		if err := rows.Scan(&a.ID, &a.ClinicID, &a.Date, &a.TimeSlot,
			&a.VeterinarianID, &a.Type, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan slot assignment: %w", err)
		}
		assignments = append(assignments, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating slot assignments: %w", err)
	}

	return assignments, nil
}

// UpsertSlotAssignment writes a slot assignment. The UNIQUE (slot_date,
// slot_time) constraint gives last-write-wins semantics on conflict, which
// doubles as the optimistic lock for concurrent auto-assignments.
func (db *DB) UpsertSlotAssignment(ctx context.Context, assignment *model.SlotAssignment) error {
	_, err := db.pool.Exec(ctx, `
		INSERT INTO slot_assignment (id, clinic_id, slot_date, slot_time, veterinarian_id, assignment_type)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (slot_date, slot_time) DO UPDATE
		SET veterinarian_id = EXCLUDED.veterinarian_id,
		    assignment_type = EXCLUDED.assignment_type
	`, assignment.ID, assignment.ClinicID, assignment.Date, assignment.TimeSlot,
		assignment.VeterinarianID, assignment.Type)
	if err != nil {
		return fmt.Errorf("failed to upsert slot assignment: %w", err)
	}

	return nil
}

// DeleteSlotAssignment removes the assignment for a (date, time slot);
// resolution then falls back to the auto-assignment engine
func (db *DB) DeleteSlotAssignment(ctx context.Context, clinicID, date, timeSlot string) error {
	if _, err := db.pool.Exec(ctx, `
		DELETE FROM slot_assignment WHERE clinic_id = $1 AND slot_date = $2 AND slot_time = $3
	`, clinicID, date, timeSlot); err != nil {
		return fmt.Errorf("failed to delete slot assignment: %w", err)
	}
	return nil
}
