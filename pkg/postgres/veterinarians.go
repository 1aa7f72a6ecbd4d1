package postgres

import (
	"context"
	"fmt"

	"github.com/mbaillet/vet-planner/pkg/core/model"
)

// GetVeterinarians retrieves the full roster for a clinic, active and
// inactive; grid composition and auto-assignment filter on the active flag
func (db *DB) GetVeterinarians(ctx context.Context, clinicID string) ([]model.Veterinarian, error) {
	rows, err := db.pool.Query(ctx, `
		SELECT id, clinic_id, name, specialty, is_active
		FROM veterinarian
		WHERE clinic_id = $1
		ORDER BY name
	`, clinicID)
	if err != nil {
		return nil, fmt.Errorf("failed to query veterinarians: %w", err)
	}
	defer rows.Close()

	var veterinarians []model.Veterinarian
	for rows.Next() {
		var v model.Veterinarian
		if err := rows.Scan(&v.ID, &v.ClinicID, &v.Name, &v.Specialty, &v.IsActive); err != nil {
			return nil, fmt.Errorf("failed to scan veterinarian: %w", err)
		}
		veterinarians = append(veterinarians, v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating veterinarians: %w", err)
	}

	return veterinarians, nil
}
