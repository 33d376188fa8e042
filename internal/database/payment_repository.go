package database

import (
	"fmt"

	"github.com/iremtulu/tekneturum-0/internal/models"
)

// PaymentRepository handles database operations for the payments table
type PaymentRepository struct {
	db DB
}

// NewPaymentRepository creates a new PaymentRepository
func NewPaymentRepository(db DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

// Create records a captured payment
func (r *PaymentRepository) Create(payment *models.Payment) error {
	query := `
		INSERT INTO payments (booking_id, amount, currency, provider, status, transaction_id, paid_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(
		query,
		payment.BookingID, payment.Amount, payment.Currency,
		payment.Provider, payment.Status, payment.TransactionID, payment.PaidAt,
	).Scan(&payment.ID, &payment.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create payment: %w", err)
	}

	return nil
}

// GetByBookingID retrieves all payments for a booking
func (r *PaymentRepository) GetByBookingID(bookingID int64) ([]models.Payment, error) {
	query := `
		SELECT id, booking_id, amount, currency, provider, status, transaction_id, paid_at, created_at
		FROM payments
		WHERE booking_id = $1
		ORDER BY created_at
	`

	rows, err := r.db.Query(query, bookingID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch payments: %w", err)
	}
	defer rows.Close()

	payments := []models.Payment{}
	for rows.Next() {
		var payment models.Payment
		err := rows.Scan(
			&payment.ID, &payment.BookingID, &payment.Amount, &payment.Currency,
			&payment.Provider, &payment.Status, &payment.TransactionID,
			&payment.PaidAt, &payment.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		payments = append(payments, payment)
	}

	return payments, rows.Err()
}

// DeleteByBookingID removes all payments of a booking, used when a tour is
// removed and its bookings are cascaded away.
func (r *PaymentRepository) DeleteByBookingID(bookingID int64) error {
	_, err := r.db.Exec(`DELETE FROM payments WHERE booking_id = $1`, bookingID)
	if err != nil {
		return fmt.Errorf("failed to delete payments: %w", err)
	}

	return nil
}

// Count returns the total number of payments
func (r *PaymentRepository) Count() (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM payments`).Scan(&count)
	return count, err
}
