package database

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetUnreadForAdmin(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mockDB := &mockDatabase{db: db}
	repo := NewNotificationRepository(mockDB)

	now := time.Now()

	mock.ExpectQuery(`LEFT JOIN bookings b ON b.id = n.booking_id`).
		WithArgs(int64(1), 20).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "title", "message", "type", "user_id", "admin_id", "booking_id",
			"reason", "is_read", "created_at", "customer_phone",
		}).
			AddRow(int64(5), "New Booking", "Ayse booked Sunset Cruise", "info", nil, nil, int64(42), nil, false, now, "05321234567").
			AddRow(int64(4), "New Cancellation Request", "Ayse asked to cancel", "warning", nil, int64(1), nil, "changed plans", false, now, nil))

	notifications, err := repo.GetUnreadForAdmin(1, 20)
	require.NoError(t, err)
	require.Len(t, notifications, 2)

	assert.Equal(t, "New Booking", notifications[0].Title)
	assert.Equal(t, "info", notifications[0].Type)
	assert.Nil(t, notifications[0].UserID)
	assert.Nil(t, notifications[0].AdminID)
	require.NotNil(t, notifications[0].BookingID)
	assert.Equal(t, int64(42), *notifications[0].BookingID)
	require.NotNil(t, notifications[0].CustomerPhone)
	assert.Equal(t, "05321234567", *notifications[0].CustomerPhone)

	require.NotNil(t, notifications[1].AdminID)
	require.NotNil(t, notifications[1].Reason)
	assert.Equal(t, "changed plans", *notifications[1].Reason)
	assert.Nil(t, notifications[1].CustomerPhone)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetUnreadForUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mockDB := &mockDatabase{db: db}
	repo := NewNotificationRepository(mockDB)

	now := time.Now()

	mock.ExpectQuery(`WHERE is_read = FALSE AND user_id = \$1`).
		WithArgs(int64(11), 10).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "title", "message", "type", "user_id", "admin_id", "booking_id",
			"reason", "is_read", "created_at",
		}).
			AddRow(int64(6), "Cancellation Request Approved", "Your cancellation request was approved",
				"info", int64(11), nil, nil, nil, false, now))

	notifications, err := repo.GetUnreadForUser(11, 10)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	require.NotNil(t, notifications[0].UserID)
	assert.Equal(t, int64(11), *notifications[0].UserID)
	assert.Equal(t, "info", notifications[0].Type)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkRead(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mockDB := &mockDatabase{db: db}
	repo := NewNotificationRepository(mockDB)

	t.Run("Marks Unread Notification", func(t *testing.T) {
		mock.ExpectExec(`UPDATE notifications SET is_read = TRUE`).
			WithArgs(int64(5)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		updated, err := repo.MarkRead(5)
		require.NoError(t, err)
		assert.True(t, updated)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Already Read Or Missing", func(t *testing.T) {
		mock.ExpectExec(`UPDATE notifications SET is_read = TRUE`).
			WithArgs(int64(5)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		updated, err := repo.MarkRead(5)
		require.NoError(t, err)
		assert.False(t, updated)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
