package database

import (
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iremtulu/tekneturum-0/internal/models"
)

func bookingRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "tour_id", "user_id", "customer_name", "customer_email", "customer_phone",
		"tour_date", "guests", "total_amount", "deposit_amount", "is_deposit_paid", "status",
		"cancellation_requested", "cancellation_reason", "cancellation_requested_at",
		"update_requested", "update_request_reason", "update_requested_at",
		"update_request_status", "update_admin_response", "requested_date", "requested_guests",
		"created_at", "updated_at",
	})
}

func TestCreateBooking(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mockDB := &mockDatabase{db: db}
	repo := NewBookingRepository(mockDB)

	t.Run("Success", func(t *testing.T) {
		now := time.Now()
		tourDate := time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC)

		booking := &models.Booking{
			TourID:        3,
			CustomerName:  "Ayse Demir",
			CustomerEmail: "ayse@example.com",
			CustomerPhone: "05321234567",
			TourDate:      tourDate,
			Guests:        4,
			TotalAmount:   5000,
			DepositAmount: 1000,
			IsDepositPaid: false,
			Status:        models.BookingStatusPending,
		}

		mock.ExpectQuery(`INSERT INTO bookings`).
			WithArgs(
				booking.TourID, nil, booking.CustomerName, booking.CustomerEmail, booking.CustomerPhone,
				tourDate, booking.Guests, booking.TotalAmount, booking.DepositAmount,
				booking.IsDepositPaid, booking.Status,
			).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
				AddRow(int64(42), now, now))

		err := repo.Create(booking)
		require.NoError(t, err)
		assert.Equal(t, int64(42), booking.ID)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Database Error", func(t *testing.T) {
		mock.ExpectQuery(`INSERT INTO bookings`).
			WillReturnError(fmt.Errorf("database error"))

		err := repo.Create(&models.Booking{})
		assert.Error(t, err)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGetBookingByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mockDB := &mockDatabase{db: db}
	repo := NewBookingRepository(mockDB)

	t.Run("Success", func(t *testing.T) {
		now := time.Now()
		tourDate := time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC)

		mock.ExpectQuery(`FROM bookings WHERE id = \$1`).
			WithArgs(int64(42)).
			WillReturnRows(bookingRows().AddRow(
				int64(42), int64(3), nil, "Ayse Demir", "ayse@example.com", "05321234567",
				tourDate, 4, 5000.0, 1000.0, true, "confirmed",
				false, nil, nil,
				false, nil, nil, nil, nil, nil, nil,
				now, now,
			))

		booking, err := repo.GetByID(42)
		require.NoError(t, err)
		assert.Equal(t, int64(42), booking.ID)
		assert.Nil(t, booking.UserID)
		assert.Nil(t, booking.CancellationReason)
		assert.Nil(t, booking.UpdateRequestStatus)
		assert.True(t, booking.IsDepositPaid)
		assert.Equal(t, models.BookingStatusConfirmed, booking.Status)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Nullable Fields Populated", func(t *testing.T) {
		now := time.Now()
		tourDate := time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC)
		requestedDate := time.Date(2026, 9, 20, 0, 0, 0, 0, time.UTC)

		mock.ExpectQuery(`FROM bookings WHERE id = \$1`).
			WithArgs(int64(7)).
			WillReturnRows(bookingRows().AddRow(
				int64(7), int64(3), int64(11), "Ayse Demir", "ayse@example.com", "05321234567",
				tourDate, 4, 5000.0, 1000.0, true, "confirmed",
				true, "schedule conflict", now,
				true, "weather looks bad", now, "pending", nil, requestedDate, int64(6),
				now, now,
			))

		booking, err := repo.GetByID(7)
		require.NoError(t, err)
		require.NotNil(t, booking.UserID)
		assert.Equal(t, int64(11), *booking.UserID)
		require.NotNil(t, booking.CancellationReason)
		assert.Equal(t, "schedule conflict", *booking.CancellationReason)
		require.NotNil(t, booking.CancellationRequestedAt)
		require.NotNil(t, booking.UpdateRequestReason)
		assert.Equal(t, "weather looks bad", *booking.UpdateRequestReason)
		require.NotNil(t, booking.UpdateRequestStatus)
		assert.Equal(t, models.UpdateStatusPending, *booking.UpdateRequestStatus)
		assert.True(t, booking.UpdatePending())
		require.NotNil(t, booking.RequestedGuests)
		assert.Equal(t, 6, *booking.RequestedGuests)
		require.NotNil(t, booking.RequestedDate)
		assert.Equal(t, requestedDate, *booking.RequestedDate)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Not Found", func(t *testing.T) {
		mock.ExpectQuery(`FROM bookings WHERE id = \$1`).
			WithArgs(int64(99)).
			WillReturnError(sql.ErrNoRows)

		booking, err := repo.GetByID(99)
		assert.Error(t, err)
		assert.Nil(t, booking)
		assert.Contains(t, err.Error(), "not found")

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGetForRequester(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mockDB := &mockDatabase{db: db}
	repo := NewBookingRepository(mockDB)

	now := time.Now()
	tourDate := time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`WHERE user_id = \$1 OR customer_email = \$2`).
		WithArgs(int64(11), "ayse@example.com").
		WillReturnRows(bookingRows().
			AddRow(
				int64(2), int64(3), int64(11), "Ayse Demir", "ayse@example.com", "05321234567",
				tourDate, 4, 5000.0, 1000.0, true, "confirmed",
				false, nil, nil, false, nil, nil, nil, nil, nil, nil, now, now,
			).
			AddRow(
				int64(1), int64(3), nil, "Ayse Demir", "ayse@example.com", "05321234567",
				tourDate, 2, 5000.0, 1000.0, false, "pending",
				false, nil, nil, false, nil, nil, nil, nil, nil, nil, now, now,
			))

	bookings, err := repo.GetForRequester(11, "ayse@example.com")
	require.NoError(t, err)
	require.Len(t, bookings, 2)
	assert.Equal(t, int64(2), bookings[0].ID)
	assert.Nil(t, bookings[1].UserID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHasPaidBookingOnDate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mockDB := &mockDatabase{db: db}
	repo := NewBookingRepository(mockDB)

	date := time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC)

	t.Run("Date Occupied", func(t *testing.T) {
		mock.ExpectQuery(`SELECT EXISTS`).
			WithArgs(date, int64(0)).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

		occupied, err := repo.HasPaidBookingOnDate(date, 0)
		require.NoError(t, err)
		assert.True(t, occupied)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Date Free", func(t *testing.T) {
		mock.ExpectQuery(`SELECT EXISTS`).
			WithArgs(date, int64(5)).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

		occupied, err := repo.HasPaidBookingOnDate(date, 5)
		require.NoError(t, err)
		assert.False(t, occupied)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestMarkDepositPaid(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mockDB := &mockDatabase{db: db}
	repo := NewBookingRepository(mockDB)

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec(`UPDATE bookings`).
			WithArgs(int64(42)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.MarkDepositPaid(42)
		assert.NoError(t, err)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Not Found", func(t *testing.T) {
		mock.ExpectExec(`UPDATE bookings`).
			WithArgs(int64(99)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.MarkDepositPaid(99)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "not found")

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestDeleteBooking(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mockDB := &mockDatabase{db: db}
	repo := NewBookingRepository(mockDB)

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM bookings WHERE id = \$1`).
			WithArgs(int64(42)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Delete(42)
		assert.NoError(t, err)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Not Found", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM bookings WHERE id = \$1`).
			WithArgs(int64(99)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Delete(99)
		assert.Error(t, err)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGetBookingDates(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mockDB := &mockDatabase{db: db}
	repo := NewBookingRepository(mockDB)

	paidDate := time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC)
	unpaidDate := time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT tour_date, is_deposit_paid FROM bookings`).
		WillReturnRows(sqlmock.NewRows([]string{"tour_date", "is_deposit_paid"}).
			AddRow(paidDate, true).
			AddRow(unpaidDate, false))

	paid, unpaid, err := repo.GetBookingDates()
	require.NoError(t, err)
	require.Len(t, paid, 1)
	require.Len(t, unpaid, 1)
	assert.Equal(t, paidDate, paid[0])
	assert.Equal(t, unpaidDate, unpaid[0])

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateRequestLifecycle(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mockDB := &mockDatabase{db: db}
	repo := NewBookingRepository(mockDB)

	requestedDate := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)

	t.Run("Set Stores Reason And Pending Status", func(t *testing.T) {
		mock.ExpectExec(`update_request_status = 'pending'`).
			WithArgs(int64(42), requestedDate, 6, "weather looks bad").
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.SetUpdateRequest(42, requestedDate, 6, "weather looks bad")
		assert.NoError(t, err)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Apply Marks Approved", func(t *testing.T) {
		mock.ExpectExec(`update_request_status = 'approved'`).
			WithArgs(int64(42), requestedDate, 6, "see you there").
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.ApplyUpdate(42, requestedDate, 6, "see you there")
		assert.NoError(t, err)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Reject Marks Rejected", func(t *testing.T) {
		mock.ExpectExec(`update_request_status = 'rejected'`).
			WithArgs(int64(42), "no boats free").
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.RejectUpdateRequest(42, "no boats free")
		assert.NoError(t, err)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Pending List Excludes Decided Requests", func(t *testing.T) {
		now := time.Now()
		mock.ExpectQuery(`update_requested = TRUE AND update_request_status = 'pending'`).
			WillReturnRows(bookingRows().AddRow(
				int64(42), int64(3), int64(11), "Ayse Demir", "ayse@example.com", "05321234567",
				requestedDate, 4, 5000.0, 1000.0, true, "confirmed",
				false, nil, nil,
				true, "weather looks bad", now, "pending", nil, requestedDate, int64(6),
				now, now,
			))

		bookings, err := repo.GetUpdateRequests()
		require.NoError(t, err)
		require.Len(t, bookings, 1)
		assert.True(t, bookings[0].UpdatePending())

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGetPaidWithTours(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mockDB := &mockDatabase{db: db}
	repo := NewBookingRepository(mockDB)

	now := time.Now()
	tourDate := time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`JOIN tours t ON t.id = b.tour_id`).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "tour_id", "tour_date", "guests",
			"total_amount", "deposit_amount", "created_at",
			"name", "category",
		}).
			AddRow(int64(1), int64(3), tourDate, 4, 5000.0, 1000.0, now, "Sunset Cruise", "Sunset").
			AddRow(int64(2), int64(4), tourDate, 2, 8000.0, 1600.0, now, "Island Hopping", nil))

	rows, err := repo.GetPaidWithTours()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Sunset Cruise", rows[0].TourName)
	require.NotNil(t, rows[0].Category)
	assert.Equal(t, "Sunset", *rows[0].Category)
	assert.Nil(t, rows[1].Category)

	assert.NoError(t, mock.ExpectationsWereMet())
}

// Mock database implementation for testing
type mockDatabase struct {
	db *sql.DB
}

func (m *mockDatabase) Get(dest interface{}, query string, args ...interface{}) error {
	return fmt.Errorf("Get not implemented in mock")
}

func (m *mockDatabase) Select(dest interface{}, query string, args ...interface{}) error {
	return fmt.Errorf("Select not implemented in mock")
}

func (m *mockDatabase) Query(query string, args ...interface{}) (*sql.Rows, error) {
	return m.db.Query(query, args...)
}

func (m *mockDatabase) QueryRow(query string, args ...interface{}) *sql.Row {
	return m.db.QueryRow(query, args...)
}

func (m *mockDatabase) Exec(query string, args ...interface{}) (sql.Result, error) {
	return m.db.Exec(query, args...)
}

func (m *mockDatabase) Close() error {
	return m.db.Close()
}

func (m *mockDatabase) Ping() error {
	return m.db.Ping()
}
