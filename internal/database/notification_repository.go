package database

import (
	"database/sql"
	"fmt"

	"github.com/iremtulu/tekneturum-0/internal/models"
)

// NotificationRepository handles database operations for the notifications table
type NotificationRepository struct {
	db DB
}

// NewNotificationRepository creates a new NotificationRepository
func NewNotificationRepository(db DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// Create inserts a notification row
func (r *NotificationRepository) Create(notification *models.Notification) error {
	query := `
		INSERT INTO notifications (title, message, type, user_id, admin_id, booking_id, reason)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(
		query,
		notification.Title, notification.Message, notification.Type,
		notification.UserID, notification.AdminID, notification.BookingID, notification.Reason,
	).Scan(&notification.ID, &notification.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}

	return nil
}

// GetUnreadForAdmin retrieves unread notifications addressed to the admin or
// broadcast to all admins, newest-first, capped at limit. The related
// booking's phone is joined so the admin can call the customer back.
func (r *NotificationRepository) GetUnreadForAdmin(adminID int64, limit int) ([]models.Notification, error) {
	query := `
		SELECT n.id, n.title, n.message, n.type, n.user_id, n.admin_id, n.booking_id,
			   n.reason, n.is_read, n.created_at, b.customer_phone
		FROM notifications n
		LEFT JOIN bookings b ON b.id = n.booking_id
		WHERE n.is_read = FALSE
		  AND (n.admin_id = $1 OR (n.admin_id IS NULL AND n.user_id IS NULL))
		ORDER BY n.created_at DESC
		LIMIT $2
	`

	rows, err := r.db.Query(query, adminID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch notifications: %w", err)
	}
	defer rows.Close()

	return r.scanNotifications(rows, true)
}

// GetUnreadForUser retrieves the user's unread notifications newest-first,
// capped at limit.
func (r *NotificationRepository) GetUnreadForUser(userID int64, limit int) ([]models.Notification, error) {
	query := `
		SELECT id, title, message, type, user_id, admin_id, booking_id, reason, is_read, created_at
		FROM notifications
		WHERE is_read = FALSE AND user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.db.Query(query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch notifications: %w", err)
	}
	defer rows.Close()

	return r.scanNotifications(rows, false)
}

// MarkRead marks a notification as read. Returns false when the row does not
// exist or was already read.
func (r *NotificationRepository) MarkRead(notificationID int64) (bool, error) {
	query := `UPDATE notifications SET is_read = TRUE WHERE id = $1 AND is_read = FALSE`

	result, err := r.db.Exec(query, notificationID)
	if err != nil {
		return false, fmt.Errorf("failed to mark notification read: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return rows > 0, nil
}

// scanNotifications scans notification rows, optionally with the joined phone column
func (r *NotificationRepository) scanNotifications(rows *sql.Rows, withPhone bool) ([]models.Notification, error) {
	notifications := []models.Notification{}

	for rows.Next() {
		var notification models.Notification
		var userID sql.NullInt64
		var adminID sql.NullInt64
		var bookingID sql.NullInt64
		var reason sql.NullString
		var phone sql.NullString

		dest := []interface{}{
			&notification.ID, &notification.Title, &notification.Message, &notification.Type,
			&userID, &adminID, &bookingID, &reason,
			&notification.IsRead, &notification.CreatedAt,
		}
		if withPhone {
			dest = append(dest, &phone)
		}

		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}

		if userID.Valid {
			notification.UserID = &userID.Int64
		}
		if adminID.Valid {
			notification.AdminID = &adminID.Int64
		}
		if bookingID.Valid {
			notification.BookingID = &bookingID.Int64
		}
		if reason.Valid {
			notification.Reason = &reason.String
		}
		if phone.Valid {
			notification.CustomerPhone = &phone.String
		}

		notifications = append(notifications, notification)
	}

	return notifications, rows.Err()
}
