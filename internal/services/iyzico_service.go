package services

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/iremtulu/tekneturum-0/internal/config"
	"github.com/iremtulu/tekneturum-0/internal/models"
)

// PaymentGateway charges a card for a booking deposit
type PaymentGateway interface {
	Charge(req *ChargeRequest) (*ChargeResult, error)
}

// ChargeRequest contains everything the gateway needs for a single charge
type ChargeRequest struct {
	ConversationID string
	Amount         float64
	Currency       string
	Card           models.CardDetails
	BuyerName      string
	BuyerEmail     string
	BuyerPhone     string
	Description    string
}

// ChargeResult is the outcome of a successful charge
type ChargeResult struct {
	TransactionID string
	PaidAmount    float64
	Currency      string
	Provider      string
	Status        string
}

// iyzicoPaymentRequest is the wire request sent to the iyzico auth endpoint
type iyzicoPaymentRequest struct {
	Locale         string            `json:"locale"`
	ConversationID string            `json:"conversationId"`
	Price          string            `json:"price"`
	PaidPrice      string            `json:"paidPrice"`
	Currency       string            `json:"currency"`
	PaymentCard    iyzicoPaymentCard `json:"paymentCard"`
	Buyer          iyzicoBuyer       `json:"buyer"`
	Description    string            `json:"description,omitempty"`
}

type iyzicoPaymentCard struct {
	CardHolderName string `json:"cardHolderName"`
	CardNumber     string `json:"cardNumber"`
	ExpireMonth    string `json:"expireMonth"`
	ExpireYear     string `json:"expireYear"`
	CVC            string `json:"cvc"`
}

type iyzicoBuyer struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"gsmNumber,omitempty"`
}

// iyzicoPaymentResponse is the wire response from the iyzico auth endpoint
type iyzicoPaymentResponse struct {
	Status         string `json:"status"` // "success" or "failure"
	PaymentID      string `json:"paymentId"`
	ConversationID string `json:"conversationId"`
	Price          string `json:"price"`
	Currency       string `json:"currency"`
	ErrorCode      string `json:"errorCode,omitempty"`
	ErrorMessage   string `json:"errorMessage,omitempty"`
}

// IyzicoService charges deposits through the iyzico payment API.
// In dev mode charges are simulated so the flow works without credentials.
type IyzicoService struct {
	config *config.PaymentConfig
	logger *logrus.Logger
	client *http.Client
}

// NewIyzicoService creates a new IyzicoService
func NewIyzicoService(cfg *config.PaymentConfig, logger *logrus.Logger) *IyzicoService {
	return &IyzicoService{
		config: cfg,
		logger: logger,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// IsConfigured returns true if gateway credentials are present
func (s *IyzicoService) IsConfigured() bool {
	return s.config.APIKey != "" && s.config.SecretKey != ""
}

// Charge captures the given amount from the card. Called at most once per
// checkout; the booking layer compensates on failure instead of retrying.
func (s *IyzicoService) Charge(req *ChargeRequest) (*ChargeResult, error) {
	if err := validateCard(&req.Card); err != nil {
		return nil, err
	}

	if s.config.Mode != "production" || !s.IsConfigured() {
		return s.simulateCharge(req), nil
	}

	amount := fmt.Sprintf("%.2f", req.Amount)
	wireReq := &iyzicoPaymentRequest{
		Locale:         "tr",
		ConversationID: req.ConversationID,
		Price:          amount,
		PaidPrice:      amount,
		Currency:       req.Currency,
		PaymentCard: iyzicoPaymentCard{
			CardHolderName: req.Card.HolderName,
			CardNumber:     req.Card.Number,
			ExpireMonth:    req.Card.ExpireMonth,
			ExpireYear:     req.Card.ExpireYear,
			CVC:            req.Card.CVC,
		},
		Buyer: iyzicoBuyer{
			ID:    req.ConversationID,
			Name:  req.BuyerName,
			Email: req.BuyerEmail,
			Phone: req.BuyerPhone,
		},
		Description: req.Description,
	}

	jsonBody, err := json.Marshal(wireReq)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	endpointURL := s.config.BaseURL + "/payment/auth"

	s.logger.WithFields(logrus.Fields{
		"conversation_id": req.ConversationID,
		"amount":          amount,
		"currency":        req.Currency,
		"endpoint":        endpointURL,
	}).Info("Charging deposit via iyzico")

	httpReq, err := http.NewRequest(http.MethodPost, endpointURL, bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	randomKey := uuid.New().String()
	httpReq.Header.Set("Authorization", s.authorizationHeader(randomKey, jsonBody))
	httpReq.Header.Set("x-iyzi-rnd", randomKey)

	resp, err := s.client.Do(httpReq)
	if err != nil {
		s.logger.WithError(err).Error("Failed to call iyzico endpoint")
		return nil, fmt.Errorf("failed to call payment gateway: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("payment gateway returned status %d: %s", resp.StatusCode, string(body))
	}

	var wireResp iyzicoPaymentResponse
	if err := json.Unmarshal(body, &wireResp); err != nil {
		s.logger.WithFields(logrus.Fields{
			"body":  string(body),
			"error": err.Error(),
		}).Error("Failed to parse iyzico response")
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if wireResp.Status != "success" {
		errMsg := wireResp.ErrorMessage
		if errMsg == "" {
			errMsg = fmt.Sprintf("payment declined (code %s)", wireResp.ErrorCode)
		}
		s.logger.WithFields(logrus.Fields{
			"conversation_id": req.ConversationID,
			"error_code":      wireResp.ErrorCode,
			"error_message":   wireResp.ErrorMessage,
		}).Warn("iyzico charge declined")
		return nil, NewPaymentError(errMsg)
	}

	s.logger.WithFields(logrus.Fields{
		"conversation_id": req.ConversationID,
		"payment_id":      wireResp.PaymentID,
	}).Info("iyzico charge captured")

	return &ChargeResult{
		TransactionID: wireResp.PaymentID,
		PaidAmount:    req.Amount,
		Currency:      req.Currency,
		Provider:      "iyzico",
		Status:        wireResp.Status,
	}, nil
}

// authorizationHeader builds the IYZWSv2 HMAC-SHA256 authorization value
func (s *IyzicoService) authorizationHeader(randomKey string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(s.config.SecretKey))
	mac.Write([]byte(randomKey))
	mac.Write(body)
	signature := hex.EncodeToString(mac.Sum(nil))

	payload := fmt.Sprintf("apiKey:%s&randomKey:%s&signature:%s", s.config.APIKey, randomKey, signature)
	return "IYZWSv2 " + base64.StdEncoding.EncodeToString([]byte(payload))
}

// simulateCharge returns a synthetic approval for development environments
func (s *IyzicoService) simulateCharge(req *ChargeRequest) *ChargeResult {
	transactionID := "sim-" + uuid.New().String()

	s.logger.WithFields(logrus.Fields{
		"conversation_id": req.ConversationID,
		"amount":          req.Amount,
		"transaction_id":  transactionID,
	}).Info("Payment gateway in dev mode, charge simulated")

	return &ChargeResult{
		TransactionID: transactionID,
		PaidAmount:    req.Amount,
		Currency:      req.Currency,
		Provider:      "iyzico",
		Status:        "success",
	}
}

// validateCard checks the card fields before they reach the gateway
func validateCard(card *models.CardDetails) error {
	if card.HolderName == "" {
		return NewValidationError("holder_name", "is required")
	}

	digits := 0
	for _, r := range card.Number {
		if r >= '0' && r <= '9' {
			digits++
		} else if r != ' ' {
			return NewValidationError("number", "contains invalid characters")
		}
	}
	if digits < 12 || digits > 19 {
		return NewValidationError("number", "must be 12-19 digits")
	}

	if len(card.ExpireMonth) != 2 || card.ExpireMonth < "01" || card.ExpireMonth > "12" {
		return NewValidationError("expire_month", "must be 01-12")
	}
	if len(card.ExpireYear) != 4 && len(card.ExpireYear) != 2 {
		return NewValidationError("expire_year", "must be 2 or 4 digits")
	}
	if len(card.CVC) < 3 || len(card.CVC) > 4 {
		return NewValidationError("cvc", "must be 3 or 4 digits")
	}

	return nil
}
