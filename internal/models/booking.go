package models

import (
	"time"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusPending   BookingStatus = "pending"
)

// Update request statuses. The request fields are retained after a decision
// so the history stays auditable.
const (
	UpdateStatusPending  = "pending"
	UpdateStatusApproved = "approved"
	UpdateStatusRejected = "rejected"
)

// Booking represents a confirmed tour reservation
type Booking struct {
	ID            int64         `json:"id" db:"id"`
	TourID        int64         `json:"tour_id" db:"tour_id"`
	UserID        *int64        `json:"user_id,omitempty" db:"user_id"`
	CustomerName  string        `json:"customer_name" db:"customer_name"`
	CustomerEmail string        `json:"customer_email" db:"customer_email"`
	CustomerPhone string        `json:"customer_phone" db:"customer_phone"`
	TourDate      time.Time     `json:"tour_date" db:"tour_date"`
	Guests        int           `json:"guests" db:"guests"`
	TotalAmount   float64       `json:"total_amount" db:"total_amount"`
	DepositAmount float64       `json:"deposit_amount" db:"deposit_amount"`
	IsDepositPaid bool          `json:"is_deposit_paid" db:"is_deposit_paid"`
	Status        BookingStatus `json:"status" db:"status"`

	// Cancellation request sub-state
	CancellationRequested   bool       `json:"cancellation_requested" db:"cancellation_requested"`
	CancellationReason      *string    `json:"cancellation_reason,omitempty" db:"cancellation_reason"`
	CancellationRequestedAt *time.Time `json:"cancellation_requested_at,omitempty" db:"cancellation_requested_at"`

	// Update request sub-state
	UpdateRequested     bool       `json:"update_requested" db:"update_requested"`
	UpdateRequestReason *string    `json:"update_request_reason,omitempty" db:"update_request_reason"`
	UpdateRequestedAt   *time.Time `json:"update_requested_at,omitempty" db:"update_requested_at"`
	UpdateRequestStatus *string    `json:"update_request_status,omitempty" db:"update_request_status"`
	UpdateAdminResponse *string    `json:"update_admin_response,omitempty" db:"update_admin_response"`
	RequestedDate       *time.Time `json:"requested_date,omitempty" db:"requested_date"`
	RequestedGuests     *int       `json:"requested_guests,omitempty" db:"requested_guests"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// CancelledBooking is an archived copy of a cancelled booking
type CancelledBooking struct {
	ID                int64     `json:"id" db:"id"`
	OriginalBookingID int64     `json:"original_booking_id" db:"original_booking_id"`
	TourID            int64     `json:"tour_id" db:"tour_id"`
	UserID            *int64    `json:"user_id,omitempty" db:"user_id"`
	CustomerName      string    `json:"customer_name" db:"customer_name"`
	CustomerEmail     string    `json:"customer_email" db:"customer_email"`
	CustomerPhone     string    `json:"customer_phone" db:"customer_phone"`
	TourDate          time.Time `json:"tour_date" db:"tour_date"`
	Guests            int       `json:"guests" db:"guests"`
	TotalAmount       float64   `json:"total_amount" db:"total_amount"`
	DepositAmount     float64   `json:"deposit_amount" db:"deposit_amount"`
	IsDepositPaid     bool      `json:"is_deposit_paid" db:"is_deposit_paid"`
	CancelReason      string    `json:"cancel_reason" db:"cancel_reason"`
	CancelledBy       *string   `json:"cancelled_by,omitempty" db:"cancelled_by"`
	BookedAt          time.Time `json:"booked_at" db:"booked_at"`
	CancelledAt       time.Time `json:"cancelled_at" db:"cancelled_at"`
}

// ReserveRequest represents the request to stage a draft booking
type ReserveRequest struct {
	TourID        int64  `json:"tour_id" binding:"required"`
	TourDate      string `json:"tour_date" binding:"required"` // YYYY-MM-DD
	Guests        int    `json:"guests" binding:"required,min=1"`
	CustomerName  string `json:"customer_name" binding:"required"`
	CustomerEmail string `json:"customer_email" binding:"required,email"`
	CustomerPhone string `json:"customer_phone" binding:"required"`
}

// CancellationRequest represents a customer cancellation request
type CancellationRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// UpdateBookingRequest represents a customer request to move a booking
type UpdateBookingRequest struct {
	RequestedDate   string `json:"requested_date" binding:"required"` // YYYY-MM-DD
	RequestedGuests int    `json:"requested_guests" binding:"required,min=1"`
	Reason          string `json:"reason" binding:"required"`
}

// AdminDecisionRequest carries the admin note attached to approvals/rejections
type AdminDecisionRequest struct {
	Note string `json:"note"`
}

// UpdatePending reports whether an update request is awaiting an admin decision
func (b *Booking) UpdatePending() bool {
	return b.UpdateRequested && b.UpdateRequestStatus != nil && *b.UpdateRequestStatus == UpdateStatusPending
}

// HasPendingRequest reports whether any customer request is awaiting review
func (b *Booking) HasPendingRequest() bool {
	return b.CancellationRequested || b.UpdatePending()
}
