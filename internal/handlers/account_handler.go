package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/iremtulu/tekneturum-0/internal/middleware"
	"github.com/iremtulu/tekneturum-0/internal/models"
	"github.com/iremtulu/tekneturum-0/internal/services"
)

// AccountHandler serves the customer's profile and notification feed
type AccountHandler struct {
	auth          *services.AuthService
	notifications *services.NotificationService
}

// NewAccountHandler creates a new AccountHandler
func NewAccountHandler(auth *services.AuthService, notifications *services.NotificationService) *AccountHandler {
	return &AccountHandler{
		auth:          auth,
		notifications: notifications,
	}
}

// GetProfile returns the authenticated customer's account
// GET /api/v1/account/profile
func (h *AccountHandler) GetProfile(c *gin.Context) {
	account, _ := middleware.GetAccountContext(c)

	user, err := h.auth.GetUserProfile(account.AccountID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// UpdateProfile updates the customer's name, phone and optionally password
// PUT /api/v1/account/profile
func (h *AccountHandler) UpdateProfile(c *gin.Context) {
	var req models.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	account, _ := middleware.GetAccountContext(c)

	if err := h.auth.UpdateUserProfile(account.AccountID, &req); err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "profile updated"})
}

// Notifications returns the customer's unread notifications
// GET /api/v1/account/notifications
func (h *AccountHandler) Notifications(c *gin.Context) {
	account, _ := middleware.GetAccountContext(c)

	notifications, err := h.notifications.UnreadForUser(account.AccountID)
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
// POST /api/v1/account/notifications/:id/read
func (h *AccountHandler) MarkNotificationRead(c *gin.Context) {
	notificationID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid notification id"})
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
