package postgres

import (
	"context"
	"fmt"

	"github.com/mbaillet/vet-planner/pkg/core/model"
)

// GetAbsences retrieves all veterinarian absences for a clinic
func (db *DB) GetAbsences(ctx context.Context, clinicID string) ([]model.VeterinarianAbsence, error) {
	rows, err := db.pool.Query(ctx, `
		SELECT id, clinic_id, veterinarian_id,
		       to_char(start_date, 'YYYY-MM-DD'), to_char(end_date, 'YYYY-MM-DD'),
		       absence_type, reason
		FROM veterinarian_absence
		WHERE clinic_id = $1
		ORDER BY start_date
	`, clinicID)
	if err != nil {
		return nil, fmt.Errorf("failed to query absences: %w", err)
	}
	defer rows.Close()

	var absences []model.VeterinarianAbsence
	for rows.Next() {
		var a model.VeterinarianAbsence
		if err := rows.Scan(&a.ID, &a.ClinicID, &a.VeterinarianID,
			&a.StartDate, &a.EndDate, &a.Type, &a.Reason); err != nil {
			return nil, fmt.Errorf("failed to scan absence: %w", err)
		}
		absences = append(absences, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating absences: %w", err)
	}

	return absences, nil
}

// InsertAbsence inserts a new absence record
func (db *DB) InsertAbsence(ctx context.Context, absence *model.VeterinarianAbsence) error {
	_, err := db.pool.Exec(ctx, `
		INSERT INTO veterinarian_absence (id, clinic_id, veterinarian_id, start_date, end_date, absence_type, reason)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, absence.ID, absence.ClinicID, absence.VeterinarianID,
		absence.StartDate, absence.EndDate, absence.Type, absence.Reason)
	if err != nil {
		return fmt.Errorf("failed to insert absence: %w", err)
	}

	return nil
}

// DeleteAbsence removes an absence record
func (db *DB) DeleteAbsence(ctx context.Context, absenceID string) error {
	if _, err := db.pool.Exec(ctx, `DELETE FROM veterinarian_absence WHERE id = $1`, absenceID); err != nil {
		return fmt.Errorf("failed to delete absence: %w", err)
	}
	return nil
}
