package database

import (
	"database/sql"
	"fmt"

	"github.com/iremtulu/tekneturum-0/internal/models"
)

// TourRepository handles database operations for the tours table
type TourRepository struct {
	db DB
}

// NewTourRepository creates a new TourRepository
func NewTourRepository(db DB) *TourRepository {
	return &TourRepository{db: db}
}

// Create inserts a new tour
func (r *TourRepository) Create(tour *models.Tour) error {
	query := `
		INSERT INTO tours (name, description, category, price_per_person, capacity,
						   duration_hours, image_url, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(
		query,
		tour.Name, tour.Description, tour.Category,
		tour.PricePerPerson, tour.Capacity, tour.DurationHours,
		tour.ImageURL, tour.IsActive,
	).Scan(&tour.ID, &tour.CreatedAt, &tour.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create tour: %w", err)
	}

	return nil
}

// GetByID retrieves a tour by ID
func (r *TourRepository) GetByID(tourID int64) (*models.Tour, error) {
	query := `
		SELECT id, name, description, category, price_per_person,
			   capacity, duration_hours, image_url, is_active, created_at, updated_at
		FROM tours
		WHERE id = $1
	`

	return r.scanTour(r.db.QueryRow(query, tourID))
}

// GetAll retrieves all tours ordered by name
func (r *TourRepository) GetAll() ([]models.Tour, error) {
	query := `
		SELECT id, name, description, category, price_per_person,
			   capacity, duration_hours, image_url, is_active, created_at, updated_at
		FROM tours
		ORDER BY name
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch tours: %w", err)
	}
	defer rows.Close()

	return r.scanTours(rows)
}

// Update updates a tour's editable fields
func (r *TourRepository) Update(tour *models.Tour) error {
	query := `
		UPDATE tours
		SET name = $2, description = $3, category = $4,
			price_per_person = $5, capacity = $6, duration_hours = $7,
			image_url = $8, is_active = $9, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	err := r.db.QueryRow(
		query,
		tour.ID, tour.Name, tour.Description, tour.Category,
		tour.PricePerPerson, tour.Capacity, tour.DurationHours,
		tour.ImageURL, tour.IsActive,
	).Scan(&tour.UpdatedAt)

	if err == sql.ErrNoRows {
		return fmt.Errorf("tour not found")
	}
	if err != nil {
		return fmt.Errorf("failed to update tour: %w", err)
	}

	return nil
}

// Delete removes a tour row
func (r *TourRepository) Delete(tourID int64) error {
	query := `DELETE FROM tours WHERE id = $1`

	result, err := r.db.Exec(query, tourID)
	if err != nil {
		return fmt.Errorf("failed to delete tour: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return fmt.Errorf("tour not found")
	}

	return nil
}

// Count returns the number of tours
func (r *TourRepository) Count() (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM tours`).Scan(&count)
	return count, err
}

// scanTour scans a single tour
func (r *TourRepository) scanTour(row scanner) (*models.Tour, error) {
	tour := &models.Tour{}
	var category sql.NullString
	var imageURL sql.NullString

	err := row.Scan(
		&tour.ID, &tour.Name, &tour.Description, &category,
		&tour.PricePerPerson, &tour.Capacity, &tour.DurationHours, &imageURL,
		&tour.IsActive, &tour.CreatedAt, &tour.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("tour not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch tour: %w", err)
	}

	if category.Valid {
		tour.Category = &category.String
	}
	if imageURL.Valid {
		tour.ImageURL = &imageURL.String
	}

	return tour, nil
}

// scanTours scans multiple tours from rows
func (r *TourRepository) scanTours(rows *sql.Rows) ([]models.Tour, error) {
	tours := []models.Tour{}

	for rows.Next() {
		var tour models.Tour
		var category sql.NullString
		var imageURL sql.NullString

		err := rows.Scan(
			&tour.ID, &tour.Name, &tour.Description, &category,
			&tour.PricePerPerson, &tour.Capacity, &tour.DurationHours, &imageURL,
			&tour.IsActive, &tour.CreatedAt, &tour.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}

		if category.Valid {
			tour.Category = &category.String
		}
		if imageURL.Valid {
			tour.ImageURL = &imageURL.String
		}

		tours = append(tours, tour)
	}

	return tours, rows.Err()
}
