package database

import (
	"database/sql"
	"fmt"

	"github.com/iremtulu/tekneturum-0/internal/models"
)

// DeletedTourRepository handles database operations for the deleted_tours archive
type DeletedTourRepository struct {
	db DB
}

// NewDeletedTourRepository creates a new DeletedTourRepository
func NewDeletedTourRepository(db DB) *DeletedTourRepository {
	return &DeletedTourRepository{db: db}
}

// Create archives a removed tour
func (r *DeletedTourRepository) Create(archived *models.DeletedTour) error {
	query := `
		INSERT INTO deleted_tours (
			original_tour_id, name, description, category,
			price_per_person, capacity, duration_hours, image_url, deleted_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, deleted_at
	`

	err := r.db.QueryRow(
		query,
		archived.OriginalTourID, archived.Name, archived.Description, archived.Category,
		archived.PricePerPerson, archived.Capacity, archived.DurationHours,
		archived.ImageURL, archived.DeletedBy,
	).Scan(&archived.ID, &archived.DeletedAt)
	if err != nil {
		return fmt.Errorf("failed to archive tour: %w", err)
	}

	return nil
}

// GetByID retrieves an archived tour by its archive ID
func (r *DeletedTourRepository) GetByID(archiveID int64) (*models.DeletedTour, error) {
	query := `
		SELECT id, original_tour_id, name, description, category,
			   price_per_person, capacity, duration_hours, image_url, deleted_by, deleted_at
		FROM deleted_tours
		WHERE id = $1
	`

	archived := &models.DeletedTour{}
	var category sql.NullString
	var imageURL sql.NullString
	var deletedBy sql.NullString

	err := r.db.QueryRow(query, archiveID).Scan(
		&archived.ID, &archived.OriginalTourID, &archived.Name, &archived.Description, &category,
		&archived.PricePerPerson, &archived.Capacity, &archived.DurationHours,
		&imageURL, &deletedBy, &archived.DeletedAt,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("deleted tour not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch deleted tour: %w", err)
	}

	if category.Valid {
		archived.Category = &category.String
	}
	if imageURL.Valid {
		archived.ImageURL = &imageURL.String
	}
	if deletedBy.Valid {
		archived.DeletedBy = &deletedBy.String
	}

	return archived, nil
}

// GetAll retrieves all archived tours newest-first
func (r *DeletedTourRepository) GetAll() ([]models.DeletedTour, error) {
	query := `
		SELECT id, original_tour_id, name, description, category,
			   price_per_person, capacity, duration_hours, image_url, deleted_by, deleted_at
		FROM deleted_tours
		ORDER BY deleted_at DESC
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch deleted tours: %w", err)
	}
	defer rows.Close()

	archives := []models.DeletedTour{}
	for rows.Next() {
		var archived models.DeletedTour
		var category sql.NullString
		var imageURL sql.NullString
		var deletedBy sql.NullString

		err := rows.Scan(
			&archived.ID, &archived.OriginalTourID, &archived.Name, &archived.Description, &category,
			&archived.PricePerPerson, &archived.Capacity, &archived.DurationHours,
			&imageURL, &deletedBy, &archived.DeletedAt,
		)
		if err != nil {
			return nil, err
		}

		if category.Valid {
			archived.Category = &category.String
		}
		if imageURL.Valid {
			archived.ImageURL = &imageURL.String
		}
		if deletedBy.Valid {
			archived.DeletedBy = &deletedBy.String
		}

		archives = append(archives, archived)
	}

	return archives, rows.Err()
}

// Delete removes an archive row, used when a tour is restored
func (r *DeletedTourRepository) Delete(archiveID int64) error {
	result, err := r.db.Exec(`DELETE FROM deleted_tours WHERE id = $1`, archiveID)
	if err != nil {
		return fmt.Errorf("failed to delete archive row: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return fmt.Errorf("deleted tour not found")
	}

	return nil
}
