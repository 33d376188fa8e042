package services

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iremtulu/tekneturum-0/internal/database"
	"github.com/iremtulu/tekneturum-0/internal/models"
)

func TestRevenueFor(t *testing.T) {
	asOf := time.Date(2026, 8, 31, 14, 30, 0, 0, time.UTC)

	tests := []struct {
		name          string
		isDepositPaid bool
		tourDate      time.Time
		want          float64
	}{
		{
			name:          "Unpaid Booking Counts Nothing",
			isDepositPaid: false,
			tourDate:      time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
			want:          0,
		},
		{
			name:          "Past Tour Counts Full Total",
			isDepositPaid: true,
			tourDate:      time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC),
			want:          5000,
		},
		{
			name:          "Future Tour Counts Deposit Only",
			isDepositPaid: true,
			tourDate:      time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
			want:          1000,
		},
		{
			name:          "Same Day Counts Deposit Only",
			isDepositPaid: true,
			tourDate:      time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC),
			want:          1000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RevenueFor(tt.isDepositPaid, tt.tourDate, 5000, 1000, asOf)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCategoryBreakdown(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	wrapped := &sqlDB{db: db}
	service := NewRevenueService(
		database.NewBookingRepository(wrapped),
		database.NewPaymentRepository(wrapped),
		database.NewTourRepository(wrapped),
		database.NewUserRepository(wrapped),
	)
	service.now = func() time.Time {
		return time.Date(2026, 8, 31, 14, 30, 0, 0, time.UTC)
	}

	tourDate := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	sunset := "Sunset"
	dayTrip := "Day Trip"

	// Window runs from the start of the month five months back, so
	// 2026-03-01 is in and 2026-02-28 is out.
	mock.ExpectQuery(`WHERE b.is_deposit_paid = TRUE`).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "tour_id", "tour_date", "guests", "total_amount",
			"deposit_amount", "created_at", "name", "category",
		}).
			AddRow(int64(1), int64(3), tourDate, 4, 5000.0, 1000.0,
				time.Date(2026, 8, 10, 9, 0, 0, 0, time.UTC), "Sunset Cruise", sunset).
			AddRow(int64(2), int64(3), tourDate, 2, 2500.0, 500.0,
				time.Date(2026, 4, 5, 9, 0, 0, 0, time.UTC), "Sunset Cruise", sunset).
			AddRow(int64(3), int64(5), tourDate, 6, 9000.0, 1800.0,
				time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), "Fishing Trip", nil).
			AddRow(int64(4), int64(7), tourDate, 3, 6000.0, 1200.0,
				time.Date(2026, 2, 28, 9, 0, 0, 0, time.UTC), "Island Hopping", dayTrip))

	breakdown, err := service.CategoryBreakdown()
	require.NoError(t, err)

	assert.Equal(t, []models.CategoryCount{
		{Category: "Sunset", Count: 2},
		{Category: "Other", Count: 1},
	}, breakdown)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBeforeDay(t *testing.T) {
	// Calendar comparison ignores the time of day
	morning := time.Date(2026, 8, 31, 1, 0, 0, 0, time.UTC)
	evening := time.Date(2026, 8, 31, 23, 0, 0, 0, time.UTC)

	assert.False(t, beforeDay(morning, evening))
	assert.False(t, beforeDay(evening, morning))
	assert.True(t, beforeDay(morning.AddDate(0, 0, -1), evening))
	assert.True(t, beforeDay(morning.AddDate(0, -1, 0), evening))
	assert.True(t, beforeDay(morning.AddDate(-1, 0, 0), evening))
}
