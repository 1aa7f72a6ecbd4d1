package postgres

import (
	"context"
	"fmt"

	"github.com/mbaillet/vet-planner/pkg/core/model"
)

// GetBookings retrieves real bookings for a clinic within [from, to] inclusive.
// Synthetic recurring-block entries are never stored, so they never appear here.
func (db *DB) GetBookings(ctx context.Context, clinicID, from, to string) ([]model.Booking, error) {
	rows, err := db.pool.Query(ctx, `
		SELECT id, clinic_id, to_char(booking_date, 'YYYY-MM-DD'), booking_time, end_time,
		       duration_minutes, veterinarian_id, client_name, client_contact,
		       animal_name, reason, status, booking_source, is_blocked, auto_assigned
		FROM booking
		WHERE clinic_id = $1 AND booking_date BETWEEN $2 AND $3
		ORDER BY booking_date, booking_time
	`, clinicID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings: %w", err)
	}
	defer rows.Close()

	var bookings []model.Booking
	for rows.Next() {
		var b model.Booking
		var vetID *string
		if err := rows.Scan(&b.ID, &b.ClinicID, &b.Date, &b.Time, &b.EndTime,
			&b.Duration, &vetID, &b.ClientName, &b.ClientContact,
			&b.AnimalName, &b.Reason, &b.Status, &b.Source, &b.IsBlocked, &b.AutoAssigned); err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		if vetID != nil {
			b.VeterinarianID = *vetID
		}
		bookings = append(bookings, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bookings: %w", err)
	}

	return bookings, nil
}

// GetBooking retrieves one booking by id
func (db *DB) GetBooking(ctx context.Context, bookingID string) (*model.Booking, error) {
	row := db.pool.QueryRow(ctx, `
		SELECT id, clinic_id, to_char(booking_date, 'YYYY-MM-DD'), booking_time, end_time,
		       duration_minutes, veterinarian_id, client_name, client_contact,
		       animal_name, reason, status, booking_source, is_blocked, auto_assigned
		FROM booking
		WHERE id = $1
	`, bookingID)

	var b model.Booking
	var vetID *string
	if err := row.Scan(&b.ID, &b.ClinicID, &b.Date, &b.Time, &b.EndTime,
		&b.Duration, &vetID, &b.ClientName, &b.ClientContact,
		&b.AnimalName, &b.Reason, &b.Status, &b.Source, &b.IsBlocked, &b.AutoAssigned); err != nil {
		return nil, fmt.Errorf("failed to get booking %s: %w", bookingID, err)
	}
	if vetID != nil {
		b.VeterinarianID = *vetID
	}

	return &b, nil
}

// InsertBooking inserts a new booking record
func (db *DB) InsertBooking(ctx context.Context, booking *model.Booking) error {
	var vetID *string
	if booking.VeterinarianID != "" {
		vetID = &booking.VeterinarianID
	}

	_, err := db.pool.Exec(ctx, `
		INSERT INTO booking (id, clinic_id, booking_date, booking_time, end_time,
		                     duration_minutes, veterinarian_id, client_name, client_contact,
		                     animal_name, reason, status, booking_source, is_blocked, auto_assigned)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`, booking.ID, booking.ClinicID, booking.Date, booking.Time, booking.EndTime,
		booking.Duration, vetID, booking.ClientName, booking.ClientContact,
		booking.AnimalName, booking.Reason, booking.Status, booking.Source,
		booking.IsBlocked, booking.AutoAssigned)
	if err != nil {
		return fmt.Errorf("failed to insert booking: %w", err)
	}

	return nil
}

// UpdateBookingStatus sets a booking's status. Transition legality is
// enforced by the service layer, not here.
func (db *DB) UpdateBookingStatus(ctx context.Context, bookingID string, status model.BookingStatus) error {
	tag, err := db.pool.Exec(ctx, `UPDATE booking SET status = $2 WHERE id = $1`, bookingID, status)
	if err != nil {
		return fmt.Errorf("failed to update booking status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("booking %s not found", bookingID)
	}
	return nil
}

// MoveBooking changes a booking's date and time slot
func (db *DB) MoveBooking(ctx context.Context, bookingID, date, timeSlot, endTime string) error {
	tag, err := db.pool.Exec(ctx, `
		UPDATE booking SET booking_date = $2, booking_time = $3, end_time = $4
		WHERE id = $1
	`, bookingID, date, timeSlot, endTime)
	if err != nil {
		return fmt.Errorf("failed to move booking: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("booking %s not found", bookingID)
	}
	return nil
}

// DeleteBooking removes a booking record
func (db *DB) DeleteBooking(ctx context.Context, bookingID string) error {
	if _, err := db.pool.Exec(ctx, `DELETE FROM booking WHERE id = $1`, bookingID); err != nil {
		return fmt.Errorf("failed to delete booking: %w", err)
	}
	return nil
}
