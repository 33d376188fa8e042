package services

import (
	"github.com/sirupsen/logrus"

	"github.com/iremtulu/tekneturum-0/internal/database"
	"github.com/iremtulu/tekneturum-0/internal/models"
)

const (
	adminUnreadLimit = 20
	userUnreadLimit  = 10
)

// NotificationService writes and serves pull-based notifications.
// Delivery is best-effort: a failed write is logged, never propagated,
// so notification trouble cannot fail a booking operation.
type NotificationService struct {
	notificationRepo *database.NotificationRepository
	logger           *logrus.Logger
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(notificationRepo *database.NotificationRepository, logger *logrus.Logger) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		logger:           logger,
	}
}

// Notice is the content of a notification about to be written
type Notice struct {
	Title     string
	Message   string
	Type      string
	BookingID *int64
	Reason    *string
}

// NotifyAdmins broadcasts a notice to all admins
func (s *NotificationService) NotifyAdmins(n Notice) {
	notification := &models.Notification{
		Title:     n.Title,
		Message:   n.Message,
		Type:      n.Type,
		BookingID: n.BookingID,
		Reason:    n.Reason,
	}

	if err := s.notificationRepo.Create(notification); err != nil {
		s.logger.WithError(err).Warn("Failed to write admin notification")
	}
}

// NotifyAdmin addresses a notice to a single admin
func (s *NotificationService) NotifyAdmin(adminID int64, n Notice) {
	notification := &models.Notification{
		Title:     n.Title,
		Message:   n.Message,
		Type:      n.Type,
		AdminID:   &adminID,
		BookingID: n.BookingID,
		Reason:    n.Reason,
	}

	if err := s.notificationRepo.Create(notification); err != nil {
		s.logger.WithError(err).Warn("Failed to write admin notification")
	}
}

// NotifyUser addresses a notice to a single user
func (s *NotificationService) NotifyUser(userID int64, n Notice) {
	notification := &models.Notification{
		Title:     n.Title,
		Message:   n.Message,
		Type:      n.Type,
		UserID:    &userID,
		BookingID: n.BookingID,
		Reason:    n.Reason,
	}

	if err := s.notificationRepo.Create(notification); err != nil {
		s.logger.WithError(err).Warn("Failed to write user notification")
	}
}

// UnreadForAdmin returns the admin's unread notifications, broadcasts
// included, newest-first and capped.
func (s *NotificationService) UnreadForAdmin(adminID int64) ([]models.Notification, error) {
	return s.notificationRepo.GetUnreadForAdmin(adminID, adminUnreadLimit)
}

// UnreadForUser returns the user's unread notifications, newest-first and capped
func (s *NotificationService) UnreadForUser(userID int64) ([]models.Notification, error) {
	return s.notificationRepo.GetUnreadForUser(userID, userUnreadLimit)
}

// MarkRead marks a notification as read. Idempotent; returns false when the
// notification does not exist or was already read.
func (s *NotificationService) MarkRead(notificationID int64) (bool, error) {
	return s.notificationRepo.MarkRead(notificationID)
}
