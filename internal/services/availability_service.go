package services

import (
	"time"

	"github.com/iremtulu/tekneturum-0/internal/database"
)

// AvailabilityService answers whether a calendar date can take a booking.
// The boat runs one charter per day, so a paid booking on any tour blocks
// the whole date.
type AvailabilityService struct {
	bookingRepo *database.BookingRepository
}

// NewAvailabilityService creates a new AvailabilityService
func NewAvailabilityService(bookingRepo *database.BookingRepository) *AvailabilityService {
	return &AvailabilityService{bookingRepo: bookingRepo}
}

// IsDateAvailable reports whether the calendar date is free of paid bookings.
// excludeBookingID is ignored in the check so an existing booking can be
// re-validated against its own date; pass 0 for no exclusion.
func (s *AvailabilityService) IsDateAvailable(date time.Time, excludeBookingID int64) (bool, error) {
	taken, err := s.bookingRepo.HasPaidBookingOnDate(date, excludeBookingID)
	if err != nil {
		return false, err
	}

	return !taken, nil
}

// BookingDates returns the tour dates of paid and unpaid bookings for the
// availability calendar.
func (s *AvailabilityService) BookingDates() (paid []time.Time, unpaid []time.Time, err error) {
	return s.bookingRepo.GetBookingDates()
}
