package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/iremtulu/tekneturum-0/internal/middleware"
	"github.com/iremtulu/tekneturum-0/internal/models"
	"github.com/iremtulu/tekneturum-0/internal/services"
)

// AdminHandler serves the administration panel: dashboard, revenue,
// tour management, booking oversight and request decisions.
type AdminHandler struct {
	tours         *services.TourService
	bookings      *services.BookingService
	revenue       *services.RevenueService
	auth          *services.AuthService
	notifications *services.NotificationService
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(
	tours *services.TourService,
	bookings *services.BookingService,
	revenue *services.RevenueService,
	auth *services.AuthService,
	notifications *services.NotificationService,
) *AdminHandler {
	return &AdminHandler{
		tours:         tours,
		bookings:      bookings,
		revenue:       revenue,
		auth:          auth,
		notifications: notifications,
	}
}

// Dashboard returns the dashboard counters and upcoming bookings
// GET /api/v1/admin/dashboard
func (h *AdminHandler) Dashboard(c *gin.Context) {
	stats, err := h.revenue.DashboardStats()
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"stats": stats})
}

// RevenueSummary returns total and current-month revenue
// GET /api/v1/admin/revenue
func (h *AdminHandler) RevenueSummary(c *gin.Context) {
	total, err := h.revenue.TotalRevenue()
	if err != nil {
		handleServiceError(c, err)
		return
	}

	monthly, err := h.revenue.MonthlyRevenue()
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total_revenue":   total,
		"monthly_revenue": monthly,
	})
}

// RevenueSeries returns the trailing monthly revenue series
// GET /api/v1/admin/revenue/monthly
func (h *AdminHandler) RevenueSeries(c *gin.Context) {
	series, err := h.revenue.MonthlySeries()
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"monthly_revenue": series})
}

// RevenueDetails returns per-booking realized revenue
// GET /api/v1/admin/revenue/details
func (h *AdminHandler) RevenueDetails(c *gin.Context) {
	details, err := h.revenue.Details()
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"details": details,
		"count":   len(details),
	})
}

// RevenueByCategory returns revenue grouped by tour category
// GET /api/v1/admin/revenue/categories
func (h *AdminHandler) RevenueByCategory(c *gin.Context) {
	breakdown, err := h.revenue.CategoryBreakdown()
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": breakdown})
}

// CreateTour creates a tour
// POST /api/v1/admin/tours
func (h *AdminHandler) CreateTour(c *gin.Context) {
	var req models.CreateTourRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tour, err := h.tours.Create(&req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"tour": tour})
}

// UpdateTour edits a tour
// PUT /api/v1/admin/tours/:id
func (h *AdminHandler) UpdateTour(c *gin.Context) {
	tourID, ok := idParam(c, "invalid tour id")
	if !ok {
		return
	}

	var req models.UpdateTourRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tour, err := h.tours.Update(tourID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"tour": tour})
}

// DeleteTour archives a tour, cascading cancellation over its bookings
// DELETE /api/v1/admin/tours/:id
func (h *AdminHandler) DeleteTour(c *gin.Context) {
	tourID, ok := idParam(c, "invalid tour id")
	if !ok {
		return
	}

	account, _ := middleware.GetAccountContext(c)

	if err := h.tours.Remove(tourID, account.Email); err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "tour deleted"})
}

// DeletedTours lists the archived tours
// GET /api/v1/admin/tours/deleted
func (h *AdminHandler) DeletedTours(c *gin.Context) {
	deleted, err := h.tours.ListDeleted()
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"deleted_tours": deleted,
		"count":         len(deleted),
	})
}

// RestoreTour re-creates an archived tour
// POST /api/v1/admin/tours/deleted/:id/restore
func (h *AdminHandler) RestoreTour(c *gin.Context) {
	archiveID, ok := idParam(c, "invalid deleted tour id")
	if !ok {
		return
	}

	tour, err := h.tours.Restore(archiveID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"tour": tour})
}

// ListBookings lists every active booking
// GET /api/v1/admin/bookings
func (h *AdminHandler) ListBookings(c *gin.Context) {
	bookings, err := h.bookings.ListAll()
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"bookings": bookings,
		"count":    len(bookings),
	})
}

// ListCancelledBookings lists the archived bookings
// GET /api/v1/admin/bookings/cancelled
func (h *AdminHandler) ListCancelledBookings(c *gin.Context) {
	cancelled, err := h.bookings.ListCancelled()
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"cancelled_bookings": cancelled,
		"count":              len(cancelled),
	})
}

// GetBooking returns one booking
// GET /api/v1/admin/bookings/:id
func (h *AdminHandler) GetBooking(c *gin.Context) {
	bookingID, ok := idParam(c, "invalid booking id")
	if !ok {
		return
	}

	booking, err := h.bookings.GetBooking(bookingID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"booking": booking})
}

// CancelBooking cancels a booking directly
// DELETE /api/v1/admin/bookings/:id
func (h *AdminHandler) CancelBooking(c *gin.Context) {
	bookingID, ok := idParam(c, "invalid booking id")
	if !ok {
		return
	}

	var req models.AdminDecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	account, _ := middleware.GetAccountContext(c)

	if err := h.bookings.AdminCancelBooking(bookingID, req.Note, account.Email); err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "booking cancelled"})
}

// CancellationRequests lists bookings with a pending cancellation request
// GET /api/v1/admin/cancellation-requests
func (h *AdminHandler) CancellationRequests(c *gin.Context) {
	requests, err := h.bookings.ListCancellationRequests()
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"requests": requests,
		"count":    len(requests),
	})
}

// ApproveCancellation approves a pending cancellation request
// POST /api/v1/admin/cancellation-requests/:id/approve
func (h *AdminHandler) ApproveCancellation(c *gin.Context) {
	account, _ := middleware.GetAccountContext(c)

	h.decide(c, func(bookingID int64, note string) error {
		return h.bookings.ApproveCancellation(bookingID, note, account.Email)
	}, "cancellation request approved")
}

// RejectCancellation rejects a pending cancellation request
// POST /api/v1/admin/cancellation-requests/:id/reject
func (h *AdminHandler) RejectCancellation(c *gin.Context) {
	h.decide(c, h.bookings.RejectCancellation, "cancellation request rejected")
}

// UpdateRequests lists bookings with a pending update request
// GET /api/v1/admin/update-requests
func (h *AdminHandler) UpdateRequests(c *gin.Context) {
	requests, err := h.bookings.ListUpdateRequests()
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"requests": requests,
		"count":    len(requests),
	})
}

// ApproveUpdate approves a pending update request
// POST /api/v1/admin/update-requests/:id/approve
func (h *AdminHandler) ApproveUpdate(c *gin.Context) {
	h.decide(c, h.bookings.ApproveUpdate, "update request approved")
}

// RejectUpdate rejects a pending update request
// POST /api/v1/admin/update-requests/:id/reject
func (h *AdminHandler) RejectUpdate(c *gin.Context) {
	h.decide(c, h.bookings.RejectUpdate, "update request rejected")
}

// ListUsers lists the registered customers
// GET /api/v1/admin/users
func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.auth.ListUsers()
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"users": users,
		"count": len(users),
	})
}

// Notifications returns the admin's unread notifications
// GET /api/v1/admin/notifications
func (h *AdminHandler) Notifications(c *gin.Context) {
	account, _ := middleware.GetAccountContext(c)

	notifications, err := h.notifications.UnreadForAdmin(account.AccountID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"notifications": notifications,
		"count":         len(notifications),
	})
}

// MarkNotificationRead marks one notification as read
// POST /api/v1/admin/notifications/:id/read
func (h *AdminHandler) MarkNotificationRead(c *gin.Context) {
	notificationID, ok := idParam(c, "invalid notification id")
	if !ok {
		return
	}

	updated, err := h.notifications.MarkRead(notificationID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	if !updated {
		c.JSON(http.StatusNotFound, gin.H{"error": "notification not found or already read"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "notification marked as read"})
}

// GetProfile returns the admin's account
// GET /api/v1/admin/profile
func (h *AdminHandler) GetProfile(c *gin.Context) {
	account, _ := middleware.GetAccountContext(c)

	admin, err := h.auth.GetAdminProfile(account.AccountID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"admin": admin})
}

// UpdateProfile updates the admin's name and optionally password
// PUT /api/v1/admin/profile
func (h *AdminHandler) UpdateProfile(c *gin.Context) {
	var req models.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	account, _ := middleware.GetAccountContext(c)

	if err := h.auth.UpdateAdminProfile(account.AccountID, &req); err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "profile updated"})
}

// decide runs one approve/reject decision with an optional note body
func (h *AdminHandler) decide(c *gin.Context, fn func(int64, string) error, message string) {
	bookingID, ok := idParam(c, "invalid booking id")
	if !ok {
		return
	}

	var req models.AdminDecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := fn(bookingID, req.Note); err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": message})
}

// idParam parses the :id path parameter
func idParam(c *gin.Context, errMessage string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errMessage})
		return 0, false
	}
	return id, true
}
