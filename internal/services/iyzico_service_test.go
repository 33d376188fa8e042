package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iremtulu/tekneturum-0/internal/config"
	"github.com/iremtulu/tekneturum-0/internal/models"
)

func validTestCard() models.CardDetails {
	return models.CardDetails{
		HolderName:  "Ayse Demir",
		Number:      "5528 7900 0000 0008",
		ExpireMonth: "12",
		ExpireYear:  "2030",
		CVC:         "123",
	}
}

func TestChargeSimulatedInDevMode(t *testing.T) {
	cfg := &config.PaymentConfig{Mode: "dev", Currency: "TRY"}
	svc := NewIyzicoService(cfg, testLogger())

	result, err := svc.Charge(&ChargeRequest{
		ConversationID: "booking-42",
		Amount:         1000,
		Currency:       "TRY",
		Card:           validTestCard(),
		BuyerName:      "Ayse Demir",
		BuyerEmail:     "ayse@example.com",
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(result.TransactionID, "sim-"))
	assert.Equal(t, 1000.0, result.PaidAmount)
	assert.Equal(t, "TRY", result.Currency)
	assert.Equal(t, "iyzico", result.Provider)
	assert.Equal(t, "success", result.Status)
}

func TestChargeSimulatedWithoutCredentials(t *testing.T) {
	// Production mode without credentials still falls back to simulation
	cfg := &config.PaymentConfig{Mode: "production", Currency: "TRY"}
	svc := NewIyzicoService(cfg, testLogger())

	assert.False(t, svc.IsConfigured())

	result, err := svc.Charge(&ChargeRequest{
		ConversationID: "booking-43",
		Amount:         500,
		Currency:       "TRY",
		Card:           validTestCard(),
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(result.TransactionID, "sim-"))
}

func TestChargeRejectsInvalidCard(t *testing.T) {
	cfg := &config.PaymentConfig{Mode: "dev", Currency: "TRY"}
	svc := NewIyzicoService(cfg, testLogger())

	tests := []struct {
		name   string
		mutate func(*models.CardDetails)
		field  string
	}{
		{
			name:   "Missing Holder Name",
			mutate: func(c *models.CardDetails) { c.HolderName = "" },
			field:  "holder_name",
		},
		{
			name:   "Number Too Short",
			mutate: func(c *models.CardDetails) { c.Number = "1234 5678" },
			field:  "number",
		},
		{
			name:   "Number With Letters",
			mutate: func(c *models.CardDetails) { c.Number = "5528abcd00000008" },
			field:  "number",
		},
		{
			name:   "Month Out Of Range",
			mutate: func(c *models.CardDetails) { c.ExpireMonth = "13" },
			field:  "expire_month",
		},
		{
			name:   "Month Not Two Digits",
			mutate: func(c *models.CardDetails) { c.ExpireMonth = "1" },
			field:  "expire_month",
		},
		{
			name:   "Bad Year Length",
			mutate: func(c *models.CardDetails) { c.ExpireYear = "203" },
			field:  "expire_year",
		},
		{
			name:   "Bad CVC Length",
			mutate: func(c *models.CardDetails) { c.CVC = "12" },
			field:  "cvc",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			card := validTestCard()
			tt.mutate(&card)

			_, err := svc.Charge(&ChargeRequest{
				ConversationID: "booking-44",
				Amount:         1000,
				Currency:       "TRY",
				Card:           card,
			})

			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tt.field, validationErr.Field)
		})
	}
}

func TestValidateCardAcceptsTwoDigitYear(t *testing.T) {
	card := validTestCard()
	card.ExpireYear = "30"

	assert.NoError(t, validateCard(&card))
}
