package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/iremtulu/tekneturum-0/internal/middleware"
	"github.com/iremtulu/tekneturum-0/internal/models"
	"github.com/iremtulu/tekneturum-0/internal/services"
)

// BookingHandler handles the customer booking flow: reserve, checkout,
// payment, history and change requests.
type BookingHandler struct {
	bookings *services.BookingService
}

// NewBookingHandler creates a new BookingHandler
func NewBookingHandler(bookings *services.BookingService) *BookingHandler {
	return &BookingHandler{bookings: bookings}
}

// Reserve stages a priced draft booking and returns its checkout token
// POST /api/v1/bookings/reserve
func (h *BookingHandler) Reserve(c *gin.Context) {
	var req models.ReserveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	account, _ := middleware.GetAccountContext(c)
	userID := account.AccountID

	token, draft, err := h.bookings.Reserve(&userID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"checkout_token": token,
		"draft":          draft,
	})
}

// Checkout returns the staged draft for review before payment
// GET /api/v1/bookings/checkout/:token
func (h *BookingHandler) Checkout(c *gin.Context) {
	draft, err := h.bookings.Checkout(c.Param("token"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"draft": draft})
}

// Pay charges the deposit and confirms the booking
// POST /api/v1/bookings/checkout/:token/pay
func (h *BookingHandler) Pay(c *gin.Context) {
	var card models.CardDetails
	if err := c.ShouldBindJSON(&card); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	booking, err := h.bookings.CompletePayment(c.Param("token"), &card)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"booking": booking})
}

// MyBookings lists the requester's bookings
// GET /api/v1/bookings
func (h *BookingHandler) MyBookings(c *gin.Context) {
	bookings, err := h.bookings.FindBookingsForRequester(requesterFrom(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"bookings": bookings,
		"count":    len(bookings),
	})
}

// MyCancelledBookings lists the requester's cancelled bookings
// GET /api/v1/bookings/cancelled
func (h *BookingHandler) MyCancelledBookings(c *gin.Context) {
	cancelled, err := h.bookings.FindCancelledForRequester(requesterFrom(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"cancelled_bookings": cancelled,
		"count":              len(cancelled),
	})
}

// GetBooking returns one of the requester's bookings
// GET /api/v1/bookings/:id
func (h *BookingHandler) GetBooking(c *gin.Context) {
	bookingID, ok := idParam(c, "invalid booking id")
	if !ok {
		return
	}

	booking, err := h.bookings.GetBookingForRequester(requesterFrom(c), bookingID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"booking": booking})
}

// RequestCancellation files a cancellation request for review
// POST /api/v1/bookings/:id/cancellation-request
func (h *BookingHandler) RequestCancellation(c *gin.Context) {
	bookingID, ok := idParam(c, "invalid booking id")
	if !ok {
		return
	}

	var req models.CancellationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.bookings.RequestCancellation(requesterFrom(c), bookingID, req.Reason); err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "cancellation request submitted"})
}

// WithdrawCancellation withdraws a pending cancellation request
// DELETE /api/v1/bookings/:id/cancellation-request
func (h *BookingHandler) WithdrawCancellation(c *gin.Context) {
	bookingID, ok := idParam(c, "invalid booking id")
	if !ok {
		return
	}

	if err := h.bookings.WithdrawCancellationRequest(requesterFrom(c), bookingID); err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "cancellation request withdrawn"})
}

// RequestUpdate files a date/party change request for review
// POST /api/v1/bookings/:id/update-request
func (h *BookingHandler) RequestUpdate(c *gin.Context) {
	bookingID, ok := idParam(c, "invalid booking id")
	if !ok {
		return
	}

	var req models.UpdateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.bookings.RequestUpdate(requesterFrom(c), bookingID, &req); err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "update request submitted"})
}

// requesterFrom builds the dual identity from the authenticated account
func requesterFrom(c *gin.Context) services.Requester {
	account, _ := middleware.GetAccountContext(c)
	return services.Requester{
		UserID: account.AccountID,
		Email:  account.Email,
	}
}
