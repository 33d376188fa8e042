package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iremtulu/tekneturum-0/internal/models"
)

func TestPricingCompute(t *testing.T) {
	pricing := NewPricing()
	tour := &models.Tour{PricePerPerson: 5000, Capacity: 10}

	t.Run("Flat Charter Price", func(t *testing.T) {
		total, deposit, err := pricing.Compute(tour, 4)
		require.NoError(t, err)
		assert.Equal(t, 5000.0, total)
		assert.Equal(t, 1000.0, deposit)

		// Total does not scale with the party size
		totalSolo, depositSolo, err := pricing.Compute(tour, 1)
		require.NoError(t, err)
		assert.Equal(t, total, totalSolo)
		assert.Equal(t, deposit, depositSolo)
	})

	t.Run("Deposit Rounded To Cents", func(t *testing.T) {
		odd := &models.Tour{PricePerPerson: 1234.55, Capacity: 8}

		total, deposit, err := pricing.Compute(odd, 2)
		require.NoError(t, err)
		assert.Equal(t, 1234.55, total)
		assert.Equal(t, 246.91, deposit)
	})

	t.Run("Rejects Zero Guests", func(t *testing.T) {
		_, _, err := pricing.Compute(tour, 0)

		var validationErr *ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, "guests", validationErr.Field)
	})

	t.Run("Rejects Party Over Capacity", func(t *testing.T) {
		_, _, err := pricing.Compute(tour, 11)

		var validationErr *ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, "guests", validationErr.Field)
	})

	t.Run("Full Capacity Allowed", func(t *testing.T) {
		_, _, err := pricing.Compute(tour, 10)
		assert.NoError(t, err)
	})
}

func TestRoundMoney(t *testing.T) {
	assert.Equal(t, 0.3, RoundMoney(0.1+0.2))
	assert.Equal(t, 100.0, RoundMoney(99.999))
	assert.Equal(t, 246.91, RoundMoney(1234.55*0.20))
	assert.Equal(t, 0.0, RoundMoney(0))
}
