package models

import (
	"errors"
	"time"
)

// DefaultDurationHours is used when a tour is created without a duration
const DefaultDurationHours = 4

// Tour represents a bookable boat tour
type Tour struct {
	ID             int64     `json:"id" db:"id"`
	Name           string    `json:"name" db:"name"`
	Description    string    `json:"description" db:"description"`
	Category       *string   `json:"category,omitempty" db:"category"`
	PricePerPerson float64   `json:"price_per_person" db:"price_per_person"`
	Capacity       int       `json:"capacity" db:"capacity"`
	DurationHours  int       `json:"duration_hours" db:"duration_hours"`
	ImageURL       *string   `json:"image_url,omitempty" db:"image_url"`
	IsActive       bool      `json:"is_active" db:"is_active"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}

// DeletedTour is an archived copy of a removed tour
type DeletedTour struct {
	ID             int64     `json:"id" db:"id"`
	OriginalTourID int64     `json:"original_tour_id" db:"original_tour_id"`
	Name           string    `json:"name" db:"name"`
	Description    string    `json:"description" db:"description"`
	Category       *string   `json:"category,omitempty" db:"category"`
	PricePerPerson float64   `json:"price_per_person" db:"price_per_person"`
	Capacity       int       `json:"capacity" db:"capacity"`
	DurationHours  int       `json:"duration_hours" db:"duration_hours"`
	ImageURL       *string   `json:"image_url,omitempty" db:"image_url"`
	DeletedBy      *string   `json:"deleted_by,omitempty" db:"deleted_by"`
	DeletedAt      time.Time `json:"deleted_at" db:"deleted_at"`
}

// CreateTourRequest represents the request to create a tour
type CreateTourRequest struct {
	Name           string  `json:"name" binding:"required"`
	Description    string  `json:"description"`
	Category       *string `json:"category,omitempty"`
	PricePerPerson float64 `json:"price_per_person" binding:"required"`
	Capacity       int     `json:"capacity" binding:"required,min=1"`
	DurationHours  int     `json:"duration_hours"`
	ImageURL       *string `json:"image_url,omitempty"`
	IsActive       *bool   `json:"is_active,omitempty"`
}

// UpdateTourRequest represents the request to update a tour
type UpdateTourRequest struct {
	Name           string  `json:"name" binding:"required"`
	Description    string  `json:"description"`
	Category       *string `json:"category,omitempty"`
	PricePerPerson float64 `json:"price_per_person" binding:"required"`
	Capacity       int     `json:"capacity" binding:"required,min=1"`
	DurationHours  int     `json:"duration_hours"`
	ImageURL       *string `json:"image_url,omitempty"`
	IsActive       *bool   `json:"is_active,omitempty"`
}

// Validate validates the create tour request
func (r *CreateTourRequest) Validate() error {
	if r.PricePerPerson <= 0 {
		return errors.New("price_per_person must be positive")
	}
	if r.Capacity <= 0 {
		return errors.New("capacity must be at least 1")
	}
	return nil
}

// Validate validates the update tour request
func (r *UpdateTourRequest) Validate() error {
	if r.PricePerPerson <= 0 {
		return errors.New("price_per_person must be positive")
	}
	if r.Capacity <= 0 {
		return errors.New("capacity must be at least 1")
	}
	return nil
}
