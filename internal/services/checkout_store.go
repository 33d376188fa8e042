package services

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// DraftBooking is a priced reservation staged between reserve and payment
type DraftBooking struct {
	TourID        int64     `json:"tour_id"`
	TourName      string    `json:"tour_name"`
	UserID        *int64    `json:"user_id,omitempty"`
	CustomerName  string    `json:"customer_name"`
	CustomerEmail string    `json:"customer_email"`
	CustomerPhone string    `json:"customer_phone"`
	TourDate      time.Time `json:"tour_date"`
	Guests        int       `json:"guests"`
	TotalAmount   float64   `json:"total_amount"`
	DepositAmount float64   `json:"deposit_amount"`
}

type checkoutEntry struct {
	draft     DraftBooking
	expiresAt time.Time
}

// CheckoutStore holds token-addressed draft bookings in memory with a TTL.
// Drafts that never reach payment expire on their own.
type CheckoutStore struct {
	mu      sync.Mutex
	entries map[string]checkoutEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewCheckoutStore creates a new CheckoutStore with the given TTL
func NewCheckoutStore(ttl time.Duration) *CheckoutStore {
	return &CheckoutStore{
		entries: make(map[string]checkoutEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Put stages a draft and returns its checkout token
func (s *CheckoutStore) Put(draft DraftBooking) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sweepLocked()

	token := uuid.New().String()
	s.entries[token] = checkoutEntry{
		draft:     draft,
		expiresAt: s.now().Add(s.ttl),
	}

	return token
}

// Get returns the draft for a token, or false when the token is unknown
// or has expired.
func (s *CheckoutStore) Get(token string) (DraftBooking, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[token]
	if !ok {
		return DraftBooking{}, false
	}

	if s.now().After(entry.expiresAt) {
		delete(s.entries, token)
		return DraftBooking{}, false
	}

	return entry.draft, true
}

// Delete removes a draft once its payment completed or failed permanently
func (s *CheckoutStore) Delete(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, token)
}

// Len returns the number of live drafts
func (s *CheckoutStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sweepLocked()
	return len(s.entries)
}

// sweepLocked drops expired entries. Caller must hold the lock.
func (s *CheckoutStore) sweepLocked() {
	now := s.now()
	for token, entry := range s.entries {
		if now.After(entry.expiresAt) {
			delete(s.entries, token)
		}
	}
}
