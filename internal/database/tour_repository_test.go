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

func tourRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "name", "description", "category", "price_per_person",
		"capacity", "duration_hours", "image_url", "is_active", "created_at", "updated_at",
	})
}

func TestCreateTour(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mockDB := &mockDatabase{db: db}
	repo := NewTourRepository(mockDB)

	t.Run("Success", func(t *testing.T) {
		now := time.Now()
		category := "Sunset"

		tour := &models.Tour{
			Name:           "Sunset Cruise",
			Description:    "Evening cruise along the coast",
			Category:       &category,
			PricePerPerson: 5000,
			Capacity:       10,
			DurationHours:  4,
			IsActive:       true,
		}

		mock.ExpectQuery(`INSERT INTO tours`).
			WithArgs(tour.Name, tour.Description, &category, tour.PricePerPerson, tour.Capacity,
				tour.DurationHours, nil, tour.IsActive).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
				AddRow(int64(3), now, now))

		err := repo.Create(tour)
		require.NoError(t, err)
		assert.Equal(t, int64(3), tour.ID)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Database Error", func(t *testing.T) {
		mock.ExpectQuery(`INSERT INTO tours`).
			WillReturnError(fmt.Errorf("database error"))

		err := repo.Create(&models.Tour{})
		assert.Error(t, err)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGetTourByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mockDB := &mockDatabase{db: db}
	repo := NewTourRepository(mockDB)

	t.Run("Success With Nulls", func(t *testing.T) {
		now := time.Now()

		mock.ExpectQuery(`FROM tours`).
			WithArgs(int64(3)).
			WillReturnRows(tourRows().AddRow(
				int64(3), "Sunset Cruise", "Evening cruise", nil, 5000.0,
				10, 4, nil, true, now, now,
			))

		tour, err := repo.GetByID(3)
		require.NoError(t, err)
		assert.Equal(t, "Sunset Cruise", tour.Name)
		assert.Nil(t, tour.Category)
		assert.Nil(t, tour.ImageURL)
		assert.Equal(t, 4, tour.DurationHours)
		assert.True(t, tour.IsActive)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Not Found", func(t *testing.T) {
		mock.ExpectQuery(`FROM tours`).
			WithArgs(int64(99)).
			WillReturnError(sql.ErrNoRows)

		tour, err := repo.GetByID(99)
		assert.Error(t, err)
		assert.Nil(t, tour)
		assert.Contains(t, err.Error(), "not found")

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGetAllTours(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mockDB := &mockDatabase{db: db}
	repo := NewTourRepository(mockDB)

	now := time.Now()

	mock.ExpectQuery(`FROM tours`).
		WillReturnRows(tourRows().
			AddRow(int64(1), "Island Hopping", "Full day tour", "Day Trip", 8000.0, 12, 8, "https://img.example.com/1.jpg", true, now, now).
			AddRow(int64(2), "Sunset Cruise", "Evening cruise", nil, 5000.0, 10, 4, nil, false, now, now))

	tours, err := repo.GetAll()
	require.NoError(t, err)
	require.Len(t, tours, 2)
	require.NotNil(t, tours[0].Category)
	assert.Equal(t, "Day Trip", *tours[0].Category)
	assert.Nil(t, tours[1].Category)
	assert.False(t, tours[1].IsActive)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteTour(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mockDB := &mockDatabase{db: db}
	repo := NewTourRepository(mockDB)

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM tours WHERE id = \$1`).
			WithArgs(int64(3)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Delete(3)
		assert.NoError(t, err)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Not Found", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM tours WHERE id = \$1`).
			WithArgs(int64(99)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Delete(99)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "not found")

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
