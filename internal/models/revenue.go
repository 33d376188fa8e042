package models

import "time"

// PaidBookingRow is a paid booking joined with its tour, the input of
// revenue reporting.
type PaidBookingRow struct {
	BookingID     int64     `json:"booking_id" db:"booking_id"`
	TourID        int64     `json:"tour_id" db:"tour_id"`
	TourDate      time.Time `json:"tour_date" db:"tour_date"`
	Guests        int       `json:"guests" db:"guests"`
	TotalAmount   float64   `json:"total_amount" db:"total_amount"`
	DepositAmount float64   `json:"deposit_amount" db:"deposit_amount"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	TourName      string    `json:"tour_name" db:"tour_name"`
	Category      *string   `json:"category,omitempty" db:"category"`
}

// RevenueDetail is the realized revenue of a single paid booking
type RevenueDetail struct {
	BookingID int64     `json:"booking_id"`
	TourName  string    `json:"tour_name"`
	TourDate  time.Time `json:"tour_date"`
	Guests    int       `json:"guests"`
	Revenue   float64   `json:"revenue"`
	Completed bool      `json:"completed"`
}

// MonthlyRevenuePoint is one month of the revenue series
type MonthlyRevenuePoint struct {
	Year    int     `json:"year"`
	Month   int     `json:"month"`
	Label   string  `json:"label"` // e.g. "2026-08"
	Revenue float64 `json:"revenue"`
}

// CategoryCount is the number of paid bookings in one tour category
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// DashboardStats aggregates the admin dashboard counters
type DashboardStats struct {
	TourCount           int       `json:"tour_count"`
	BookingCount        int       `json:"booking_count"`
	PaymentCount        int       `json:"payment_count"`
	UserCount           int       `json:"user_count"`
	MonthlyBookingCount int       `json:"monthly_booking_count"`
	MonthlyRevenue      float64   `json:"monthly_revenue"`
	TotalRevenue        float64   `json:"total_revenue"`
	UpcomingBookings    []Booking `json:"upcoming_bookings"`
}
