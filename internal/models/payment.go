package models

import "time"

// Payment represents a captured deposit payment for a booking
type Payment struct {
	ID            int64     `json:"id" db:"id"`
	BookingID     int64     `json:"booking_id" db:"booking_id"`
	Amount        float64   `json:"amount" db:"amount"`
	Currency      string    `json:"currency" db:"currency"`
	Provider      string    `json:"provider" db:"provider"`
	Status        string    `json:"status" db:"status"`
	TransactionID string    `json:"transaction_id" db:"transaction_id"`
	PaidAt        time.Time `json:"paid_at" db:"paid_at"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}

// CardDetails carries the card data submitted at checkout.
// Never persisted, only forwarded to the payment gateway.
type CardDetails struct {
	HolderName  string `json:"holder_name" binding:"required"`
	Number      string `json:"number" binding:"required"`
	ExpireMonth string `json:"expire_month" binding:"required"`
	ExpireYear  string `json:"expire_year" binding:"required"`
	CVC         string `json:"cvc" binding:"required"`
}
