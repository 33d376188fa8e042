package services

import (
	"fmt"
	"time"

	"github.com/iremtulu/tekneturum-0/internal/database"
	"github.com/iremtulu/tekneturum-0/internal/models"
)

const (
	revenueSeriesMonths = 6
	upcomingWindowDays  = 30
	upcomingLimit       = 10
	defaultCategory     = "Other"
)

// RevenueService computes realized revenue from paid bookings.
// A booking whose tour date has passed counts its full total; a future one
// counts only the captured deposit. Unpaid bookings never count.
type RevenueService struct {
	bookingRepo *database.BookingRepository
	paymentRepo *database.PaymentRepository
	tourRepo    *database.TourRepository
	userRepo    *database.UserRepository
	now         func() time.Time
}

// NewRevenueService creates a new RevenueService
func NewRevenueService(
	bookingRepo *database.BookingRepository,
	paymentRepo *database.PaymentRepository,
	tourRepo *database.TourRepository,
	userRepo *database.UserRepository,
) *RevenueService {
	return &RevenueService{
		bookingRepo: bookingRepo,
		paymentRepo: paymentRepo,
		tourRepo:    tourRepo,
		userRepo:    userRepo,
		now:         time.Now,
	}
}

// RevenueFor returns the realized revenue of a single booking as of a date
func RevenueFor(isDepositPaid bool, tourDate time.Time, totalAmount, depositAmount float64, asOf time.Time) float64 {
	if !isDepositPaid {
		return 0
	}

	if beforeDay(tourDate, asOf) {
		return totalAmount
	}
	return depositAmount
}

// TotalRevenue sums realized revenue across all paid bookings
func (s *RevenueService) TotalRevenue() (float64, error) {
	rows, err := s.bookingRepo.GetPaidWithTours()
	if err != nil {
		return 0, err
	}

	asOf := s.now()
	total := 0.0
	for _, row := range rows {
		total += RevenueFor(true, row.TourDate, row.TotalAmount, row.DepositAmount, asOf)
	}

	return RoundMoney(total), nil
}

// MonthlyRevenue sums realized revenue of paid bookings created in the
// current calendar month.
func (s *RevenueService) MonthlyRevenue() (float64, error) {
	rows, err := s.bookingRepo.GetPaidWithTours()
	if err != nil {
		return 0, err
	}

	asOf := s.now()
	year, month, _ := asOf.Date()

	total := 0.0
	for _, row := range rows {
		cy, cm, _ := row.CreatedAt.Date()
		if cy != year || cm != month {
			continue
		}
		total += RevenueFor(true, row.TourDate, row.TotalAmount, row.DepositAmount, asOf)
	}

	return RoundMoney(total), nil
}

// MonthlySeries returns realized revenue for the trailing months, bucketed
// by the month each booking was created, oldest first.
func (s *RevenueService) MonthlySeries() ([]models.MonthlyRevenuePoint, error) {
	rows, err := s.bookingRepo.GetPaidWithTours()
	if err != nil {
		return nil, err
	}

	asOf := s.now()
	points := make([]models.MonthlyRevenuePoint, revenueSeriesMonths)
	for i := 0; i < revenueSeriesMonths; i++ {
		m := asOf.AddDate(0, i-(revenueSeriesMonths-1), 0)
		points[i] = models.MonthlyRevenuePoint{
			Year:  m.Year(),
			Month: int(m.Month()),
			Label: fmt.Sprintf("%04d-%02d", m.Year(), int(m.Month())),
		}
	}

	for _, row := range rows {
		revenue := RevenueFor(true, row.TourDate, row.TotalAmount, row.DepositAmount, asOf)
		cy, cm, _ := row.CreatedAt.Date()
		for i := range points {
			if points[i].Year == cy && points[i].Month == int(cm) {
				points[i].Revenue = RoundMoney(points[i].Revenue + revenue)
				break
			}
		}
	}

	return points, nil
}

// Details returns per-booking realized revenue, most recent tour date first
func (s *RevenueService) Details() ([]models.RevenueDetail, error) {
	rows, err := s.bookingRepo.GetPaidWithTours()
	if err != nil {
		return nil, err
	}

	asOf := s.now()
	details := make([]models.RevenueDetail, 0, len(rows))
	for _, row := range rows {
		completed := beforeDay(row.TourDate, asOf)
		details = append(details, models.RevenueDetail{
			BookingID: row.BookingID,
			TourName:  row.TourName,
			TourDate:  row.TourDate,
			Guests:    row.Guests,
			Revenue:   RevenueFor(true, row.TourDate, row.TotalAmount, row.DepositAmount, asOf),
			Completed: completed,
		})
	}

	return details, nil
}

// CategoryBreakdown counts paid bookings by tour category over the same
// six-month window as the revenue series: from the start of the month five
// months back through today. Uncategorized tours fall into the default bucket.
func (s *RevenueService) CategoryBreakdown() ([]models.CategoryCount, error) {
	rows, err := s.bookingRepo.GetPaidWithTours()
	if err != nil {
		return nil, err
	}

	asOf := s.now()
	monthStart := time.Date(asOf.Year(), asOf.Month(), 1, 0, 0, 0, 0, asOf.Location())
	cutoff := monthStart.AddDate(0, -(revenueSeriesMonths - 1), 0)

	counts := map[string]int{}
	order := []string{}
	for _, row := range rows {
		if row.CreatedAt.Before(cutoff) {
			continue
		}

		category := defaultCategory
		if row.Category != nil && *row.Category != "" {
			category = *row.Category
		}

		if _, seen := counts[category]; !seen {
			order = append(order, category)
		}
		counts[category]++
	}

	breakdown := make([]models.CategoryCount, 0, len(order))
	for _, category := range order {
		breakdown = append(breakdown, models.CategoryCount{
			Category: category,
			Count:    counts[category],
		})
	}

	return breakdown, nil
}

// DashboardStats aggregates the admin dashboard counters
func (s *RevenueService) DashboardStats() (*models.DashboardStats, error) {
	tourCount, err := s.tourRepo.Count()
	if err != nil {
		return nil, err
	}

	bookingCount, err := s.bookingRepo.Count()
	if err != nil {
		return nil, err
	}

	paymentCount, err := s.paymentRepo.Count()
	if err != nil {
		return nil, err
	}

	userCount, err := s.userRepo.Count()
	if err != nil {
		return nil, err
	}

	asOf := s.now()
	monthStart := time.Date(asOf.Year(), asOf.Month(), 1, 0, 0, 0, 0, asOf.Location())
	monthlyBookings, err := s.bookingRepo.CountCreatedSince(monthStart)
	if err != nil {
		return nil, err
	}

	monthlyRevenue, err := s.MonthlyRevenue()
	if err != nil {
		return nil, err
	}

	totalRevenue, err := s.TotalRevenue()
	if err != nil {
		return nil, err
	}

	upcoming, err := s.bookingRepo.GetUpcomingPaid(asOf, asOf.AddDate(0, 0, upcomingWindowDays), upcomingLimit)
	if err != nil {
		return nil, err
	}

	return &models.DashboardStats{
		TourCount:           tourCount,
		BookingCount:        bookingCount,
		PaymentCount:        paymentCount,
		UserCount:           userCount,
		MonthlyBookingCount: monthlyBookings,
		MonthlyRevenue:      monthlyRevenue,
		TotalRevenue:        totalRevenue,
		UpcomingBookings:    upcoming,
	}, nil
}

// beforeDay reports whether a falls on an earlier calendar date than b
func beforeDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	if ay != by {
		return ay < by
	}
	if am != bm {
		return am < bm
	}
	return ad < bd
}
