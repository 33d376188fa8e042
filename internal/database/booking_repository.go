package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/iremtulu/tekneturum-0/internal/models"
)

const bookingColumns = `id, tour_id, user_id, customer_name, customer_email, customer_phone,
		   tour_date, guests, total_amount, deposit_amount, is_deposit_paid, status,
		   cancellation_requested, cancellation_reason, cancellation_requested_at,
		   update_requested, update_request_reason, update_requested_at,
		   update_request_status, update_admin_response, requested_date, requested_guests,
		   created_at, updated_at`

// BookingRepository handles database operations for the bookings table
type BookingRepository struct {
	db DB
}

// NewBookingRepository creates a new BookingRepository
func NewBookingRepository(db DB) *BookingRepository {
	return &BookingRepository{db: db}
}

// Create inserts a new booking
func (r *BookingRepository) Create(booking *models.Booking) error {
	query := `
		INSERT INTO bookings (
			tour_id, user_id, customer_name, customer_email, customer_phone,
			tour_date, guests, total_amount, deposit_amount, is_deposit_paid, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(
		query,
		booking.TourID, booking.UserID, booking.CustomerName, booking.CustomerEmail, booking.CustomerPhone,
		booking.TourDate, booking.Guests, booking.TotalAmount, booking.DepositAmount,
		booking.IsDepositPaid, booking.Status,
	).Scan(&booking.ID, &booking.CreatedAt, &booking.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}

	return nil
}

// GetByID retrieves a booking by ID
func (r *BookingRepository) GetByID(bookingID int64) (*models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	return r.scanBooking(r.db.QueryRow(query, bookingID))
}

// GetAll retrieves all bookings newest-first
func (r *BookingRepository) GetAll() ([]models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings ORDER BY created_at DESC`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch bookings: %w", err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// GetForRequester retrieves bookings matching either the account ID or the
// email used at checkout, so guests who later register still see their history.
func (r *BookingRepository) GetForRequester(userID int64, email string) ([]models.Booking, error) {
	query := `SELECT ` + bookingColumns + `
		FROM bookings
		WHERE user_id = $1 OR customer_email = $2
		ORDER BY created_at DESC`

	rows, err := r.db.Query(query, userID, email)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch bookings: %w", err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// GetByTourID retrieves all bookings for a tour
func (r *BookingRepository) GetByTourID(tourID int64) ([]models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE tour_id = $1 ORDER BY created_at`

	rows, err := r.db.Query(query, tourID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch bookings: %w", err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// HasPaidBookingOnDate reports whether any paid booking occupies the given
// calendar date. excludeBookingID is skipped so a booking can be moved onto
// its own date; pass 0 for no exclusion.
func (r *BookingRepository) HasPaidBookingOnDate(date time.Time, excludeBookingID int64) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM bookings
			WHERE tour_date::date = $1::date
			  AND is_deposit_paid = TRUE
			  AND id != $2
		)
	`

	var exists bool
	err := r.db.QueryRow(query, date, excludeBookingID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check date availability: %w", err)
	}

	return exists, nil
}

// GetBookingDates returns the tour dates of paid and unpaid bookings
func (r *BookingRepository) GetBookingDates() (paid []time.Time, unpaid []time.Time, err error) {
	query := `SELECT tour_date, is_deposit_paid FROM bookings ORDER BY tour_date`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch booking dates: %w", err)
	}
	defer rows.Close()

	paid = []time.Time{}
	unpaid = []time.Time{}
	for rows.Next() {
		var date time.Time
		var isPaid bool
		if err := rows.Scan(&date, &isPaid); err != nil {
			return nil, nil, err
		}
		if isPaid {
			paid = append(paid, date)
		} else {
			unpaid = append(unpaid, date)
		}
	}

	return paid, unpaid, rows.Err()
}

// MarkDepositPaid marks the booking's deposit as captured
func (r *BookingRepository) MarkDepositPaid(bookingID int64) error {
	query := `
		UPDATE bookings
		SET is_deposit_paid = TRUE, status = 'confirmed', updated_at = NOW()
		WHERE id = $1
	`

	return r.execExpectingRow(query, bookingID)
}

// Delete removes a booking row
func (r *BookingRepository) Delete(bookingID int64) error {
	return r.execExpectingRow(`DELETE FROM bookings WHERE id = $1`, bookingID)
}

// SetCancellationRequest flags the booking with a pending cancellation request
func (r *BookingRepository) SetCancellationRequest(bookingID int64, reason string) error {
	query := `
		UPDATE bookings
		SET cancellation_requested = TRUE, cancellation_reason = $2,
			cancellation_requested_at = NOW(), updated_at = NOW()
		WHERE id = $1
	`

	return r.execExpectingRow(query, bookingID, reason)
}

// ClearCancellationRequest withdraws a pending cancellation request
func (r *BookingRepository) ClearCancellationRequest(bookingID int64) error {
	query := `
		UPDATE bookings
		SET cancellation_requested = FALSE, cancellation_reason = NULL,
			cancellation_requested_at = NULL, updated_at = NOW()
		WHERE id = $1
	`

	return r.execExpectingRow(query, bookingID)
}

// SetUpdateRequest flags the booking with a pending update request
func (r *BookingRepository) SetUpdateRequest(bookingID int64, requestedDate time.Time, requestedGuests int, reason string) error {
	query := `
		UPDATE bookings
		SET update_requested = TRUE, requested_date = $2, requested_guests = $3,
			update_request_reason = $4, update_requested_at = NOW(),
			update_request_status = 'pending', update_admin_response = NULL,
			updated_at = NOW()
		WHERE id = $1
	`

	return r.execExpectingRow(query, bookingID, requestedDate, requestedGuests, reason)
}

// ApplyUpdate moves the booking to the requested date and party size and
// marks the request approved. The requested fields are kept for history.
func (r *BookingRepository) ApplyUpdate(bookingID int64, newDate time.Time, newGuests int, adminResponse string) error {
	query := `
		UPDATE bookings
		SET tour_date = $2, guests = $3,
			update_request_status = 'approved', update_admin_response = NULLIF($4, ''),
			updated_at = NOW()
		WHERE id = $1
	`

	return r.execExpectingRow(query, bookingID, newDate, newGuests, adminResponse)
}

// RejectUpdateRequest marks a pending update request rejected, keeping the
// requested fields for history.
func (r *BookingRepository) RejectUpdateRequest(bookingID int64, adminResponse string) error {
	query := `
		UPDATE bookings
		SET update_request_status = 'rejected', update_admin_response = NULLIF($2, ''),
			updated_at = NOW()
		WHERE id = $1
	`

	return r.execExpectingRow(query, bookingID, adminResponse)
}

// GetCancellationRequests retrieves bookings with a pending cancellation request
func (r *BookingRepository) GetCancellationRequests() ([]models.Booking, error) {
	query := `SELECT ` + bookingColumns + `
		FROM bookings
		WHERE cancellation_requested = TRUE
		ORDER BY updated_at DESC`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch cancellation requests: %w", err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// GetUpdateRequests retrieves bookings with a pending update request
func (r *BookingRepository) GetUpdateRequests() ([]models.Booking, error) {
	query := `SELECT ` + bookingColumns + `
		FROM bookings
		WHERE update_requested = TRUE AND update_request_status = 'pending'
		ORDER BY updated_at DESC`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch update requests: %w", err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// HasPaidFutureBookings reports whether a tour has paid bookings on or after
// the given date. Blocks tour removal.
func (r *BookingRepository) HasPaidFutureBookings(tourID int64, from time.Time) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM bookings
			WHERE tour_id = $1
			  AND is_deposit_paid = TRUE
			  AND tour_date::date >= $2::date
		)
	`

	var exists bool
	err := r.db.QueryRow(query, tourID, from).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check future bookings: %w", err)
	}

	return exists, nil
}

// GetPaidWithTours retrieves paid bookings joined with their tour's name and
// category, used by revenue reporting.
func (r *BookingRepository) GetPaidWithTours() ([]models.PaidBookingRow, error) {
	query := `
		SELECT b.id, b.tour_id, b.tour_date, b.guests,
			   b.total_amount, b.deposit_amount, b.created_at,
			   t.name, t.category
		FROM bookings b
		JOIN tours t ON t.id = b.tour_id
		WHERE b.is_deposit_paid = TRUE
		ORDER BY b.tour_date DESC
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch paid bookings: %w", err)
	}
	defer rows.Close()

	results := []models.PaidBookingRow{}
	for rows.Next() {
		var row models.PaidBookingRow
		var category sql.NullString

		err := rows.Scan(
			&row.BookingID, &row.TourID, &row.TourDate, &row.Guests,
			&row.TotalAmount, &row.DepositAmount, &row.CreatedAt,
			&row.TourName, &category,
		)
		if err != nil {
			return nil, err
		}

		if category.Valid {
			row.Category = &category.String
		}

		results = append(results, row)
	}

	return results, rows.Err()
}

// GetUpcomingPaid retrieves paid bookings with tour dates inside [from, to),
// soonest first, capped at limit.
func (r *BookingRepository) GetUpcomingPaid(from, to time.Time, limit int) ([]models.Booking, error) {
	query := `SELECT ` + bookingColumns + `
		FROM bookings
		WHERE is_deposit_paid = TRUE
		  AND tour_date::date >= $1::date
		  AND tour_date::date < $2::date
		ORDER BY tour_date
		LIMIT $3`

	rows, err := r.db.Query(query, from, to, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch upcoming bookings: %w", err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// Count returns the total number of bookings
func (r *BookingRepository) Count() (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM bookings`).Scan(&count)
	return count, err
}

// CountCreatedSince returns the number of bookings created at or after the given time
func (r *BookingRepository) CountCreatedSince(since time.Time) (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM bookings WHERE created_at >= $1`, since).Scan(&count)
	return count, err
}

// execExpectingRow runs an exec that must touch exactly one booking row
func (r *BookingRepository) execExpectingRow(query string, args ...interface{}) error {
	result, err := r.db.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("failed to update booking: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return fmt.Errorf("booking not found")
	}

	return nil
}

// bookingNulls holds the nullable columns scanned alongside a booking row
type bookingNulls struct {
	userID             sql.NullInt64
	cancellationReason sql.NullString
	cancellationAt     sql.NullTime
	updateReason       sql.NullString
	updateRequestedAt  sql.NullTime
	updateStatus       sql.NullString
	adminResponse      sql.NullString
	requestedDate      sql.NullTime
	requestedGuests    sql.NullInt64
}

func bookingScanDest(booking *models.Booking, nulls *bookingNulls) []interface{} {
	return []interface{}{
		&booking.ID, &booking.TourID, &nulls.userID,
		&booking.CustomerName, &booking.CustomerEmail, &booking.CustomerPhone,
		&booking.TourDate, &booking.Guests, &booking.TotalAmount, &booking.DepositAmount,
		&booking.IsDepositPaid, &booking.Status,
		&booking.CancellationRequested, &nulls.cancellationReason, &nulls.cancellationAt,
		&booking.UpdateRequested, &nulls.updateReason, &nulls.updateRequestedAt,
		&nulls.updateStatus, &nulls.adminResponse, &nulls.requestedDate, &nulls.requestedGuests,
		&booking.CreatedAt, &booking.UpdatedAt,
	}
}

func applyBookingNulls(booking *models.Booking, nulls *bookingNulls) {
	if nulls.userID.Valid {
		booking.UserID = &nulls.userID.Int64
	}
	if nulls.cancellationReason.Valid {
		booking.CancellationReason = &nulls.cancellationReason.String
	}
	if nulls.cancellationAt.Valid {
		booking.CancellationRequestedAt = &nulls.cancellationAt.Time
	}
	if nulls.updateReason.Valid {
		booking.UpdateRequestReason = &nulls.updateReason.String
	}
	if nulls.updateRequestedAt.Valid {
		booking.UpdateRequestedAt = &nulls.updateRequestedAt.Time
	}
	if nulls.updateStatus.Valid {
		booking.UpdateRequestStatus = &nulls.updateStatus.String
	}
	if nulls.adminResponse.Valid {
		booking.UpdateAdminResponse = &nulls.adminResponse.String
	}
	if nulls.requestedDate.Valid {
		booking.RequestedDate = &nulls.requestedDate.Time
	}
	if nulls.requestedGuests.Valid {
		guests := int(nulls.requestedGuests.Int64)
		booking.RequestedGuests = &guests
	}
}

// scanBooking scans a single booking
func (r *BookingRepository) scanBooking(row scanner) (*models.Booking, error) {
	booking := &models.Booking{}
	var nulls bookingNulls

	err := row.Scan(bookingScanDest(booking, &nulls)...)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("booking not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch booking: %w", err)
	}

	applyBookingNulls(booking, &nulls)

	return booking, nil
}

// scanBookings scans multiple bookings from rows
func (r *BookingRepository) scanBookings(rows *sql.Rows) ([]models.Booking, error) {
	bookings := []models.Booking{}

	for rows.Next() {
		var booking models.Booking
		var nulls bookingNulls

		if err := rows.Scan(bookingScanDest(&booking, &nulls)...); err != nil {
			return nil, err
		}

		applyBookingNulls(&booking, &nulls)

		bookings = append(bookings, booking)
	}

	return bookings, rows.Err()
}
