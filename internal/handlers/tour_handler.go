package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/iremtulu/tekneturum-0/internal/services"
)

// TourHandler serves the public tour catalog and availability calendar
type TourHandler struct {
	tours        *services.TourService
	availability *services.AvailabilityService
}

// NewTourHandler creates a new TourHandler
func NewTourHandler(tours *services.TourService, availability *services.AvailabilityService) *TourHandler {
	return &TourHandler{
		tours:        tours,
		availability: availability,
	}
}

// ListTours returns the tour catalog
// GET /api/v1/tours
func (h *TourHandler) ListTours(c *gin.Context) {
	tours, err := h.tours.List()
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tours": tours,
		"count": len(tours),
	})
}

// GetTour returns one tour
// GET /api/v1/tours/:id
func (h *TourHandler) GetTour(c *gin.Context) {
	tourID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid tour id"})
		return
	}

	tour, err := h.tours.Get(tourID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"tour": tour})
}

// CheckAvailability reports whether a date is free
// GET /api/v1/availability?date=YYYY-MM-DD
func (h *TourHandler) CheckAvailability(c *gin.Context) {
	dateParam := c.Query("date")
	date, err := time.Parse("2006-01-02", dateParam)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be in YYYY-MM-DD format"})
		return
	}

	available, err := h.availability.IsDateAvailable(date, 0)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":      dateParam,
		"available": available,
	})
}

// BookingDates returns paid and unpaid booking dates for the calendar
// GET /api/v1/booking-dates
func (h *TourHandler) BookingDates(c *gin.Context) {
	paid, unpaid, err := h.availability.BookingDates()
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"paid_dates":   formatDates(paid),
		"unpaid_dates": formatDates(unpaid),
	})
}

// formatDates renders tour dates as YYYY-MM-DD strings
func formatDates(dates []time.Time) []string {
	out := make([]string, 0, len(dates))
	for _, d := range dates {
		out = append(out, d.Format("2006-01-02"))
	}
	return out
}
