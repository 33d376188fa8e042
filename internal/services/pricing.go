package services

import (
	"math"

	"github.com/iremtulu/tekneturum-0/internal/models"
)

// depositRate is the fraction of the total charged upfront at checkout
const depositRate = 0.20

// Pricing computes booking totals and deposits
type Pricing struct{}

// NewPricing creates a new Pricing engine
func NewPricing() *Pricing {
	return &Pricing{}
}

// Compute returns the total and deposit for booking the given tour.
// Tours are priced per charter, so the total does not scale with the
// party size; guests only bounds-checks against capacity.
func (p *Pricing) Compute(tour *models.Tour, guests int) (total, deposit float64, err error) {
	if guests < 1 {
		return 0, 0, NewValidationError("guests", "must be at least 1")
	}
	if guests > tour.Capacity {
		return 0, 0, NewValidationError("guests", "exceeds tour capacity")
	}

	total = RoundMoney(tour.PricePerPerson)
	deposit = RoundMoney(total * depositRate)

	return total, deposit, nil
}

// RoundMoney rounds to two decimal places, half away from zero
func RoundMoney(amount float64) float64 {
	return math.Round(amount*100) / 100
}
