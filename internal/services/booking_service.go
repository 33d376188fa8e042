package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/iremtulu/tekneturum-0/internal/database"
	"github.com/iremtulu/tekneturum-0/internal/models"
	"github.com/iremtulu/tekneturum-0/pkg/validator"
)

const tourDateLayout = "2006-01-02"

// Requester identifies who is asking for a booking. Bookings are matched by
// account ID or by the email used at checkout, so customers who booked as a
// guest before registering still reach their history.
type Requester struct {
	UserID int64
	Email  string
}

// BookingService drives the booking lifecycle: staging, payment with
// compensation, customer requests and admin decisions.
type BookingService struct {
	bookingRepo   *database.BookingRepository
	cancelledRepo *database.CancelledBookingRepository
	paymentRepo   *database.PaymentRepository
	tourRepo      *database.TourRepository
	availability  *AvailabilityService
	pricing       *Pricing
	checkout      *CheckoutStore
	gateway       PaymentGateway
	notifier      *NotificationService
	phone         *validator.PhoneValidator
	currency      string
	logger        *logrus.Logger
}

// NewBookingService creates a new BookingService
func NewBookingService(
	bookingRepo *database.BookingRepository,
	cancelledRepo *database.CancelledBookingRepository,
	paymentRepo *database.PaymentRepository,
	tourRepo *database.TourRepository,
	availability *AvailabilityService,
	pricing *Pricing,
	checkout *CheckoutStore,
	gateway PaymentGateway,
	notifier *NotificationService,
	phone *validator.PhoneValidator,
	currency string,
	logger *logrus.Logger,
) *BookingService {
	return &BookingService{
		bookingRepo:   bookingRepo,
		cancelledRepo: cancelledRepo,
		paymentRepo:   paymentRepo,
		tourRepo:      tourRepo,
		availability:  availability,
		pricing:       pricing,
		checkout:      checkout,
		gateway:       gateway,
		notifier:      notifier,
		phone:         phone,
		currency:      currency,
		logger:        logger,
	}
}

// Reserve validates and prices a reservation, stages it as a draft and
// returns the checkout token. Nothing is persisted until payment.
func (s *BookingService) Reserve(userID *int64, req *models.ReserveRequest) (string, *DraftBooking, error) {
	tourDate, err := parseTourDate(req.TourDate)
	if err != nil {
		return "", nil, err
	}

	if tourDate.Before(todayAt(time.Now().UTC())) {
		return "", nil, NewValidationError("tour_date", "cannot be in the past")
	}

	sanitizedPhone, err := s.phone.Validate(req.CustomerPhone)
	if err != nil {
		return "", nil, NewValidationError("customer_phone", err.Error())
	}

	tour, err := s.tourRepo.GetByID(req.TourID)
	if err != nil {
		return "", nil, NewNotFoundError("tour")
	}
	if !tour.IsActive {
		return "", nil, NewNotFoundError("tour")
	}

	available, err := s.availability.IsDateAvailable(tourDate, 0)
	if err != nil {
		return "", nil, fmt.Errorf("failed to check availability: %w", err)
	}
	if !available {
		return "", nil, NewConflictError("the selected date is already booked")
	}

	total, deposit, err := s.pricing.Compute(tour, req.Guests)
	if err != nil {
		return "", nil, err
	}

	draft := DraftBooking{
		TourID:        tour.ID,
		TourName:      tour.Name,
		UserID:        userID,
		CustomerName:  req.CustomerName,
		CustomerEmail: strings.ToLower(strings.TrimSpace(req.CustomerEmail)),
		CustomerPhone: sanitizedPhone,
		TourDate:      tourDate,
		Guests:        req.Guests,
		TotalAmount:   total,
		DepositAmount: deposit,
	}

	token := s.checkout.Put(draft)

	s.logger.WithFields(logrus.Fields{
		"tour_id":   tour.ID,
		"tour_date": tourDate.Format(tourDateLayout),
		"guests":    req.Guests,
		"deposit":   deposit,
	}).Info("Reservation staged for checkout")

	return token, &draft, nil
}

// Checkout returns the staged draft for a token
func (s *BookingService) Checkout(token string) (*DraftBooking, error) {
	draft, ok := s.checkout.Get(token)
	if !ok {
		return nil, NewNotFoundError("checkout session")
	}

	return &draft, nil
}

// CompletePayment persists the draft as a booking, charges the deposit and
// confirms. The booking row is written before the charge; if the gateway
// declines, the row is deleted again so a failed payment leaves no trace.
func (s *BookingService) CompletePayment(token string, card *models.CardDetails) (*models.Booking, error) {
	draft, ok := s.checkout.Get(token)
	if !ok {
		return nil, NewNotFoundError("checkout session")
	}

	// The date may have been taken while the draft sat in checkout
	available, err := s.availability.IsDateAvailable(draft.TourDate, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to check availability: %w", err)
	}
	if !available {
		s.checkout.Delete(token)
		return nil, NewConflictError("the selected date was booked by someone else")
	}

	booking := &models.Booking{
		TourID:        draft.TourID,
		UserID:        draft.UserID,
		CustomerName:  draft.CustomerName,
		CustomerEmail: draft.CustomerEmail,
		CustomerPhone: draft.CustomerPhone,
		TourDate:      draft.TourDate,
		Guests:        draft.Guests,
		TotalAmount:   draft.TotalAmount,
		DepositAmount: draft.DepositAmount,
		IsDepositPaid: false,
		Status:        models.BookingStatusPending,
	}

	if err := s.bookingRepo.Create(booking); err != nil {
		return nil, fmt.Errorf("failed to persist booking: %w", err)
	}

	result, err := s.gateway.Charge(&ChargeRequest{
		ConversationID: fmt.Sprintf("booking-%d", booking.ID),
		Amount:         draft.DepositAmount,
		Currency:       s.currency,
		Card:           *card,
		BuyerName:      draft.CustomerName,
		BuyerEmail:     draft.CustomerEmail,
		BuyerPhone:     draft.CustomerPhone,
		Description:    fmt.Sprintf("Deposit for %s on %s", draft.TourName, draft.TourDate.Format(tourDateLayout)),
	})
	if err != nil {
		// Compensate: the unpaid row must not linger and block the date
		if delErr := s.bookingRepo.Delete(booking.ID); delErr != nil {
			s.logger.WithError(delErr).WithField("booking_id", booking.ID).
				Error("Failed to roll back booking after declined payment")
		}

		s.logger.WithError(err).WithFields(logrus.Fields{
			"booking_id": booking.ID,
			"tour_id":    draft.TourID,
		}).Warn("Deposit charge failed, booking rolled back")

		return nil, err
	}

	if err := s.bookingRepo.MarkDepositPaid(booking.ID); err != nil {
		return nil, fmt.Errorf("failed to confirm booking: %w", err)
	}
	booking.IsDepositPaid = true
	booking.Status = models.BookingStatusConfirmed

	payment := &models.Payment{
		BookingID:     booking.ID,
		Amount:        result.PaidAmount,
		Currency:      result.Currency,
		Provider:      result.Provider,
		Status:        result.Status,
		TransactionID: result.TransactionID,
		PaidAt:        time.Now().UTC(),
	}
	if err := s.paymentRepo.Create(payment); err != nil {
		s.logger.WithError(err).WithField("booking_id", booking.ID).
			Error("Deposit captured but payment record failed")
	}

	s.checkout.Delete(token)

	s.notifier.NotifyAdmins(Notice{
		Title: "New Booking",
		Message: fmt.Sprintf("%s booked %s for %s (%d guests)",
			draft.CustomerName, draft.TourName, draft.TourDate.Format(tourDateLayout), draft.Guests),
		Type:      models.NotificationInfo,
		BookingID: &booking.ID,
	})

	s.logger.WithFields(logrus.Fields{
		"booking_id":     booking.ID,
		"transaction_id": result.TransactionID,
		"amount":         result.PaidAmount,
	}).Info("Booking confirmed")

	return booking, nil
}

// FindBookingsForRequester returns the requester's bookings, matched by
// account ID or checkout email.
func (s *BookingService) FindBookingsForRequester(r Requester) ([]models.Booking, error) {
	return s.bookingRepo.GetForRequester(r.UserID, strings.ToLower(r.Email))
}

// FindCancelledForRequester returns the requester's cancelled bookings
func (s *BookingService) FindCancelledForRequester(r Requester) ([]models.CancelledBooking, error) {
	return s.cancelledRepo.GetForRequester(r.UserID, strings.ToLower(r.Email))
}

// GetBookingForRequester returns one booking if it belongs to the requester
func (s *BookingService) GetBookingForRequester(r Requester, bookingID int64) (*models.Booking, error) {
	booking, err := s.bookingRepo.GetByID(bookingID)
	if err != nil {
		return nil, NewNotFoundError("booking")
	}

	if !s.ownsBooking(r, booking) {
		return nil, NewNotFoundError("booking")
	}

	return booking, nil
}

// RequestCancellation flags a booking with a pending cancellation request
func (s *BookingService) RequestCancellation(r Requester, bookingID int64, reason string) error {
	booking, err := s.GetBookingForRequester(r, bookingID)
	if err != nil {
		return err
	}

	if booking.CancellationRequested {
		return NewConflictError("a cancellation request is already pending")
	}

	if err := s.bookingRepo.SetCancellationRequest(bookingID, reason); err != nil {
		return err
	}

	s.notifier.NotifyAdmins(Notice{
		Title: "New Cancellation Request",
		Message: fmt.Sprintf("%s asked to cancel the booking for %s",
			booking.CustomerName, booking.TourDate.Format(tourDateLayout)),
		Type:      models.NotificationWarning,
		BookingID: &booking.ID,
		Reason:    &reason,
	})

	return nil
}

// WithdrawCancellationRequest clears a pending cancellation request
func (s *BookingService) WithdrawCancellationRequest(r Requester, bookingID int64) error {
	booking, err := s.GetBookingForRequester(r, bookingID)
	if err != nil {
		return err
	}

	if !booking.CancellationRequested {
		return NewNotFoundError("cancellation request")
	}

	return s.bookingRepo.ClearCancellationRequest(bookingID)
}

// RequestUpdate flags a booking with a pending date/party change request
func (s *BookingService) RequestUpdate(r Requester, bookingID int64, req *models.UpdateBookingRequest) error {
	booking, err := s.GetBookingForRequester(r, bookingID)
	if err != nil {
		return err
	}

	if booking.UpdatePending() {
		return NewConflictError("an update request is already pending")
	}

	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		return NewValidationError("reason", "is required")
	}

	requestedDate, err := parseTourDate(req.RequestedDate)
	if err != nil {
		return err
	}

	if requestedDate.Before(todayAt(time.Now().UTC())) {
		return NewValidationError("requested_date", "cannot be in the past")
	}

	tour, err := s.tourRepo.GetByID(booking.TourID)
	if err != nil {
		return NewNotFoundError("tour")
	}
	if req.RequestedGuests > tour.Capacity {
		return NewValidationError("requested_guests", "exceeds tour capacity")
	}

	// The booking's own date is excluded so a party-size-only change passes
	available, err := s.availability.IsDateAvailable(requestedDate, bookingID)
	if err != nil {
		return fmt.Errorf("failed to check availability: %w", err)
	}
	if !available {
		return NewConflictError("the requested date is already booked")
	}

	if err := s.bookingRepo.SetUpdateRequest(bookingID, requestedDate, req.RequestedGuests, reason); err != nil {
		return err
	}

	s.notifier.NotifyAdmins(Notice{
		Title: "New Update Request",
		Message: fmt.Sprintf("%s asked to move %s to %s with %d guests",
			booking.CustomerName, booking.TourDate.Format(tourDateLayout),
			requestedDate.Format(tourDateLayout), req.RequestedGuests),
		Type:      models.NotificationInfo,
		BookingID: &booking.ID,
		Reason:    &reason,
	})

	return nil
}

// ApproveCancellation archives the booking and removes it from the active set.
// cancelledBy records the deciding admin in the archive.
func (s *BookingService) ApproveCancellation(bookingID int64, note, cancelledBy string) error {
	booking, err := s.bookingRepo.GetByID(bookingID)
	if err != nil {
		return NewNotFoundError("booking")
	}

	if !booking.CancellationRequested {
		return NewStateError("no cancellation request is pending")
	}

	reason := "user request"
	if booking.CancellationReason != nil {
		reason = fmt.Sprintf("user request: %s", *booking.CancellationReason)
	}
	if note != "" {
		reason = fmt.Sprintf("%s | admin note: %s", reason, note)
	}

	if err := s.archiveAndRemove(booking, reason, cancelledBy); err != nil {
		return err
	}

	if booking.UserID != nil {
		s.notifier.NotifyUser(*booking.UserID, Notice{
			Title: "Cancellation Request Approved",
			Message: fmt.Sprintf("Your cancellation request for %s was approved",
				booking.TourDate.Format(tourDateLayout)),
			Type: models.NotificationInfo,
		})
	}

	return nil
}

// RejectCancellation clears the pending request, leaving the booking intact
func (s *BookingService) RejectCancellation(bookingID int64, note string) error {
	booking, err := s.bookingRepo.GetByID(bookingID)
	if err != nil {
		return NewNotFoundError("booking")
	}

	if !booking.CancellationRequested {
		return NewStateError("no cancellation request is pending")
	}

	if err := s.bookingRepo.ClearCancellationRequest(bookingID); err != nil {
		return err
	}

	if booking.UserID != nil {
		s.notifier.NotifyUser(*booking.UserID, Notice{
			Title: "Cancellation Request Rejected",
			Message: fmt.Sprintf("Your cancellation request for %s was declined",
				booking.TourDate.Format(tourDateLayout)),
			Type:      models.NotificationWarning,
			BookingID: &booking.ID,
			Reason:    optionalString(note),
		})
	}

	return nil
}

// ApproveUpdate applies the requested date and party size after re-checking
// the new date.
func (s *BookingService) ApproveUpdate(bookingID int64, note string) error {
	booking, err := s.bookingRepo.GetByID(bookingID)
	if err != nil {
		return NewNotFoundError("booking")
	}

	if !booking.UpdatePending() || booking.RequestedDate == nil || booking.RequestedGuests == nil {
		return NewStateError("no update request is pending")
	}

	available, err := s.availability.IsDateAvailable(*booking.RequestedDate, booking.ID)
	if err != nil {
		return fmt.Errorf("failed to check availability: %w", err)
	}
	if !available {
		return NewConflictError("the requested date is already booked")
	}

	if err := s.bookingRepo.ApplyUpdate(bookingID, *booking.RequestedDate, *booking.RequestedGuests, note); err != nil {
		return err
	}

	if booking.UserID != nil {
		s.notifier.NotifyUser(*booking.UserID, Notice{
			Title: "Update Request Approved",
			Message: fmt.Sprintf("Your booking was moved to %s with %d guests",
				booking.RequestedDate.Format(tourDateLayout), *booking.RequestedGuests),
			Type:      models.NotificationSuccess,
			BookingID: &booking.ID,
			Reason:    optionalString(note),
		})
	}

	return nil
}

// RejectUpdate marks the pending request rejected without changing the booking
func (s *BookingService) RejectUpdate(bookingID int64, note string) error {
	booking, err := s.bookingRepo.GetByID(bookingID)
	if err != nil {
		return NewNotFoundError("booking")
	}

	if !booking.UpdatePending() {
		return NewStateError("no update request is pending")
	}

	if err := s.bookingRepo.RejectUpdateRequest(bookingID, note); err != nil {
		return err
	}

	if booking.UserID != nil {
		s.notifier.NotifyUser(*booking.UserID, Notice{
			Title: "Update Request Rejected",
			Message: fmt.Sprintf("Your update request for %s was declined",
				booking.TourDate.Format(tourDateLayout)),
			Type:      models.NotificationWarning,
			BookingID: &booking.ID,
			Reason:    optionalString(note),
		})
	}

	return nil
}

// AdminCancelBooking cancels a booking directly, without a customer request.
// Distinguishes a booking that was already cancelled from one that never
// existed. cancelledBy records the acting admin in the archive.
func (s *BookingService) AdminCancelBooking(bookingID int64, note, cancelledBy string) error {
	booking, err := s.bookingRepo.GetByID(bookingID)
	if err != nil {
		archived, archErr := s.cancelledRepo.ExistsForOriginalBooking(bookingID)
		if archErr != nil {
			return archErr
		}
		if archived {
			return NewStateError("booking is already cancelled")
		}
		return NewNotFoundError("booking")
	}

	reason := "cancelled by admin"
	if note != "" {
		reason = fmt.Sprintf("cancelled by admin: %s", note)
	}

	if err := s.archiveAndRemove(booking, reason, cancelledBy); err != nil {
		return err
	}

	if booking.UserID != nil {
		s.notifier.NotifyUser(*booking.UserID, Notice{
			Title: "Booking Cancelled",
			Message: fmt.Sprintf("Your booking for %s was cancelled",
				booking.TourDate.Format(tourDateLayout)),
			Type:   models.NotificationDanger,
			Reason: &reason,
		})
	}

	return nil
}

// CancelForTourRemoval archives a booking because its tour is being removed
func (s *BookingService) CancelForTourRemoval(booking *models.Booking, tourName, cancelledBy string) error {
	reason := fmt.Sprintf("tour deleted: %s", tourName)

	if err := s.archiveAndRemove(booking, reason, cancelledBy); err != nil {
		return err
	}

	if booking.UserID != nil {
		s.notifier.NotifyUser(*booking.UserID, Notice{
			Title: "Booking Cancelled",
			Message: fmt.Sprintf("Your booking for %s was cancelled because the tour %s is no longer offered",
				booking.TourDate.Format(tourDateLayout), tourName),
			Type:   models.NotificationDanger,
			Reason: &reason,
		})
	}

	return nil
}

// ListAll returns every active booking for the admin panel
func (s *BookingService) ListAll() ([]models.Booking, error) {
	return s.bookingRepo.GetAll()
}

// ListCancelled returns every archived booking for the admin panel
func (s *BookingService) ListCancelled() ([]models.CancelledBooking, error) {
	return s.cancelledRepo.GetAll()
}

// ListCancellationRequests returns bookings with a pending cancellation request
func (s *BookingService) ListCancellationRequests() ([]models.Booking, error) {
	return s.bookingRepo.GetCancellationRequests()
}

// ListUpdateRequests returns bookings with a pending update request
func (s *BookingService) ListUpdateRequests() ([]models.Booking, error) {
	return s.bookingRepo.GetUpdateRequests()
}

// GetBooking returns one booking without ownership checks, for admins
func (s *BookingService) GetBooking(bookingID int64) (*models.Booking, error) {
	booking, err := s.bookingRepo.GetByID(bookingID)
	if err != nil {
		return nil, NewNotFoundError("booking")
	}
	return booking, nil
}

// archiveAndRemove copies the booking into the cancelled archive, then
// removes its payments and the booking row itself.
func (s *BookingService) archiveAndRemove(booking *models.Booking, reason, cancelledBy string) error {
	archived := &models.CancelledBooking{
		OriginalBookingID: booking.ID,
		TourID:            booking.TourID,
		UserID:            booking.UserID,
		CustomerName:      booking.CustomerName,
		CustomerEmail:     booking.CustomerEmail,
		CustomerPhone:     booking.CustomerPhone,
		TourDate:          booking.TourDate,
		Guests:            booking.Guests,
		TotalAmount:       booking.TotalAmount,
		DepositAmount:     booking.DepositAmount,
		IsDepositPaid:     booking.IsDepositPaid,
		CancelReason:      reason,
		CancelledBy:       optionalString(cancelledBy),
		BookedAt:          booking.CreatedAt,
	}

	if err := s.cancelledRepo.Create(archived); err != nil {
		return fmt.Errorf("failed to archive booking: %w", err)
	}

	if err := s.paymentRepo.DeleteByBookingID(booking.ID); err != nil {
		return err
	}

	if err := s.bookingRepo.Delete(booking.ID); err != nil {
		return err
	}

	s.logger.WithFields(logrus.Fields{
		"booking_id": booking.ID,
		"reason":     reason,
	}).Info("Booking cancelled and archived")

	return nil
}

// ownsBooking reports whether the requester may see the booking
func (s *BookingService) ownsBooking(r Requester, booking *models.Booking) bool {
	if booking.UserID != nil && *booking.UserID == r.UserID {
		return true
	}
	return strings.EqualFold(booking.CustomerEmail, r.Email)
}

// parseTourDate parses a YYYY-MM-DD tour date
func parseTourDate(value string) (time.Time, error) {
	date, err := time.Parse(tourDateLayout, value)
	if err != nil {
		return time.Time{}, NewValidationError("tour_date", "must be in YYYY-MM-DD format")
	}
	return date, nil
}

// todayAt truncates a time to its calendar date
func todayAt(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// optionalString returns nil for the empty string
func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
