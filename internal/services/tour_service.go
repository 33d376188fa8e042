package services

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/iremtulu/tekneturum-0/internal/database"
	"github.com/iremtulu/tekneturum-0/internal/models"
)

// TourService handles tour administration: CRUD, archival with cascade
// cancellation of its bookings, and restore.
type TourService struct {
	tourRepo        *database.TourRepository
	deletedTourRepo *database.DeletedTourRepository
	bookingRepo     *database.BookingRepository
	bookings        *BookingService
	logger          *logrus.Logger
}

// NewTourService creates a new TourService
func NewTourService(
	tourRepo *database.TourRepository,
	deletedTourRepo *database.DeletedTourRepository,
	bookingRepo *database.BookingRepository,
	bookings *BookingService,
	logger *logrus.Logger,
) *TourService {
	return &TourService{
		tourRepo:        tourRepo,
		deletedTourRepo: deletedTourRepo,
		bookingRepo:     bookingRepo,
		bookings:        bookings,
		logger:          logger,
	}
}

// List returns all tours
func (s *TourService) List() ([]models.Tour, error) {
	return s.tourRepo.GetAll()
}

// Get returns one tour
func (s *TourService) Get(tourID int64) (*models.Tour, error) {
	tour, err := s.tourRepo.GetByID(tourID)
	if err != nil {
		return nil, NewNotFoundError("tour")
	}
	return tour, nil
}

// Create creates a new tour
func (s *TourService) Create(req *models.CreateTourRequest) (*models.Tour, error) {
	if err := req.Validate(); err != nil {
		return nil, NewValidationError("", err.Error())
	}

	tour := &models.Tour{
		Name:           req.Name,
		Description:    req.Description,
		Category:       req.Category,
		PricePerPerson: req.PricePerPerson,
		Capacity:       req.Capacity,
		DurationHours:  req.DurationHours,
		ImageURL:       req.ImageURL,
		IsActive:       true,
	}
	if tour.DurationHours <= 0 {
		tour.DurationHours = models.DefaultDurationHours
	}
	if req.IsActive != nil {
		tour.IsActive = *req.IsActive
	}

	if err := s.tourRepo.Create(tour); err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"tour_id": tour.ID,
		"name":    tour.Name,
	}).Info("Tour created")

	return tour, nil
}

// Update edits a tour's fields
func (s *TourService) Update(tourID int64, req *models.UpdateTourRequest) (*models.Tour, error) {
	if err := req.Validate(); err != nil {
		return nil, NewValidationError("", err.Error())
	}

	tour, err := s.tourRepo.GetByID(tourID)
	if err != nil {
		return nil, NewNotFoundError("tour")
	}

	tour.Name = req.Name
	tour.Description = req.Description
	tour.Category = req.Category
	tour.PricePerPerson = req.PricePerPerson
	tour.Capacity = req.Capacity
	tour.ImageURL = req.ImageURL
	if req.DurationHours > 0 {
		tour.DurationHours = req.DurationHours
	}
	if req.IsActive != nil {
		tour.IsActive = *req.IsActive
	}

	if err := s.tourRepo.Update(tour); err != nil {
		return nil, err
	}

	return tour, nil
}

// Remove archives a tour and cascades cancellation over its bookings.
// Refused while the tour still has paid bookings in the future; those
// customers must be dealt with first. deletedBy records the acting admin.
func (s *TourService) Remove(tourID int64, deletedBy string) error {
	tour, err := s.tourRepo.GetByID(tourID)
	if err != nil {
		return NewNotFoundError("tour")
	}

	hasFuture, err := s.bookingRepo.HasPaidFutureBookings(tourID, time.Now().UTC())
	if err != nil {
		return err
	}
	if hasFuture {
		return NewConflictError("tour has paid upcoming bookings and cannot be removed")
	}

	bookings, err := s.bookingRepo.GetByTourID(tourID)
	if err != nil {
		return err
	}

	for i := range bookings {
		if err := s.bookings.CancelForTourRemoval(&bookings[i], tour.Name, deletedBy); err != nil {
			return fmt.Errorf("failed to cascade booking %d: %w", bookings[i].ID, err)
		}
	}

	archived := &models.DeletedTour{
		OriginalTourID: tour.ID,
		Name:           tour.Name,
		Description:    tour.Description,
		Category:       tour.Category,
		PricePerPerson: tour.PricePerPerson,
		Capacity:       tour.Capacity,
		DurationHours:  tour.DurationHours,
		ImageURL:       tour.ImageURL,
		DeletedBy:      optionalString(deletedBy),
	}
	if err := s.deletedTourRepo.Create(archived); err != nil {
		return err
	}

	if err := s.tourRepo.Delete(tourID); err != nil {
		return err
	}

	s.logger.WithFields(logrus.Fields{
		"tour_id":           tourID,
		"cascaded_bookings": len(bookings),
	}).Info("Tour removed and archived")

	return nil
}

// ListDeleted returns the archived tours
func (s *TourService) ListDeleted() ([]models.DeletedTour, error) {
	return s.deletedTourRepo.GetAll()
}

// Restore re-creates an archived tour as a fresh row and drops the archive
// entry. The restored tour gets a new ID; old bookings stay cancelled.
func (s *TourService) Restore(archiveID int64) (*models.Tour, error) {
	archived, err := s.deletedTourRepo.GetByID(archiveID)
	if err != nil {
		return nil, NewNotFoundError("deleted tour")
	}

	tour := &models.Tour{
		Name:           archived.Name,
		Description:    archived.Description,
		Category:       archived.Category,
		PricePerPerson: archived.PricePerPerson,
		Capacity:       archived.Capacity,
		DurationHours:  archived.DurationHours,
		ImageURL:       archived.ImageURL,
		IsActive:       true,
	}
	if tour.DurationHours <= 0 {
		tour.DurationHours = models.DefaultDurationHours
	}
	if err := s.tourRepo.Create(tour); err != nil {
		return nil, err
	}

	if err := s.deletedTourRepo.Delete(archiveID); err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"archive_id": archiveID,
		"tour_id":    tour.ID,
	}).Info("Tour restored from archive")

	return tour, nil
}
