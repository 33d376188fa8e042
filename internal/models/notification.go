package models

import "time"

// Notification display types
const (
	NotificationInfo    = "info"
	NotificationWarning = "warning"
	NotificationSuccess = "success"
	NotificationDanger  = "danger"
)

// Notification represents a pull-based notification row.
// A row with both UserID and AdminID unset is an admin broadcast
// visible to every admin.
type Notification struct {
	ID        int64     `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	Message   string    `json:"message" db:"message"`
	Type      string    `json:"type" db:"type"`
	UserID    *int64    `json:"user_id,omitempty" db:"user_id"`
	AdminID   *int64    `json:"admin_id,omitempty" db:"admin_id"`
	BookingID *int64    `json:"booking_id,omitempty" db:"booking_id"`
	Reason    *string   `json:"reason,omitempty" db:"reason"`
	IsRead    bool      `json:"is_read" db:"is_read"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	// Joined from the related booking for admin listings
	CustomerPhone *string `json:"customer_phone,omitempty" db:"customer_phone"`
}
