package database

import (
	"database/sql"
	"fmt"

	"github.com/iremtulu/tekneturum-0/internal/models"
)

const cancelledBookingColumns = `id, original_booking_id, tour_id, user_id,
		   customer_name, customer_email, customer_phone,
		   tour_date, guests, total_amount, deposit_amount, is_deposit_paid,
		   cancel_reason, cancelled_by, booked_at, cancelled_at`

// CancelledBookingRepository handles database operations for the cancelled_bookings archive
type CancelledBookingRepository struct {
	db DB
}

// NewCancelledBookingRepository creates a new CancelledBookingRepository
func NewCancelledBookingRepository(db DB) *CancelledBookingRepository {
	return &CancelledBookingRepository{db: db}
}

// Create archives a cancelled booking
func (r *CancelledBookingRepository) Create(archived *models.CancelledBooking) error {
	query := `
		INSERT INTO cancelled_bookings (
			original_booking_id, tour_id, user_id,
			customer_name, customer_email, customer_phone,
			tour_date, guests, total_amount, deposit_amount, is_deposit_paid,
			cancel_reason, cancelled_by, booked_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id, cancelled_at
	`

	err := r.db.QueryRow(
		query,
		archived.OriginalBookingID, archived.TourID, archived.UserID,
		archived.CustomerName, archived.CustomerEmail, archived.CustomerPhone,
		archived.TourDate, archived.Guests, archived.TotalAmount, archived.DepositAmount,
		archived.IsDepositPaid, archived.CancelReason, archived.CancelledBy, archived.BookedAt,
	).Scan(&archived.ID, &archived.CancelledAt)
	if err != nil {
		return fmt.Errorf("failed to archive booking: %w", err)
	}

	return nil
}

// GetAll retrieves all cancelled bookings newest-first
func (r *CancelledBookingRepository) GetAll() ([]models.CancelledBooking, error) {
	query := `SELECT ` + cancelledBookingColumns + `
		FROM cancelled_bookings
		ORDER BY cancelled_at DESC`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch cancelled bookings: %w", err)
	}
	defer rows.Close()

	return r.scanCancelledBookings(rows)
}

// GetForRequester retrieves cancelled bookings matching either the account ID
// or the email used at checkout.
func (r *CancelledBookingRepository) GetForRequester(userID int64, email string) ([]models.CancelledBooking, error) {
	query := `SELECT ` + cancelledBookingColumns + `
		FROM cancelled_bookings
		WHERE user_id = $1 OR customer_email = $2
		ORDER BY cancelled_at DESC`

	rows, err := r.db.Query(query, userID, email)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch cancelled bookings: %w", err)
	}
	defer rows.Close()

	return r.scanCancelledBookings(rows)
}

// ExistsForOriginalBooking reports whether the given booking was already archived
func (r *CancelledBookingRepository) ExistsForOriginalBooking(bookingID int64) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM cancelled_bookings WHERE original_booking_id = $1)`

	var exists bool
	err := r.db.QueryRow(query, bookingID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check cancelled booking: %w", err)
	}

	return exists, nil
}

// scanCancelledBookings scans multiple archive rows
func (r *CancelledBookingRepository) scanCancelledBookings(rows *sql.Rows) ([]models.CancelledBooking, error) {
	archives := []models.CancelledBooking{}

	for rows.Next() {
		var archived models.CancelledBooking
		var userID sql.NullInt64
		var cancelledBy sql.NullString

		err := rows.Scan(
			&archived.ID, &archived.OriginalBookingID, &archived.TourID, &userID,
			&archived.CustomerName, &archived.CustomerEmail, &archived.CustomerPhone,
			&archived.TourDate, &archived.Guests, &archived.TotalAmount, &archived.DepositAmount,
			&archived.IsDepositPaid, &archived.CancelReason, &cancelledBy, &archived.BookedAt, &archived.CancelledAt,
		)
		if err != nil {
			return nil, err
		}

		if userID.Valid {
			archived.UserID = &userID.Int64
		}
		if cancelledBy.Valid {
			archived.CancelledBy = &cancelledBy.String
		}

		archives = append(archives, archived)
	}

	return archives, rows.Err()
}
