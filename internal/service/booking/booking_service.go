package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Domenick1991/skybook/internal/domain"
	"github.com/Domenick1991/skybook/internal/kafka"
	"github.com/Domenick1991/skybook/internal/repository"
	"github.com/Domenick1991/skybook/pkg/logger"
	"github.com/Domenick1991/skybook/pkg/metrics"
)

type BookingUseCase interface {
	Purchase(ctx context.Context, input PurchaseInput) (*domain.Booking, error)
	Cancel(ctx context.Context, username string, bookingID int64) (*domain.Booking, error)
	RequestRefund(ctx context.Context, username string, bookingID int64) (*domain.Booking, error)
	ListBookings(ctx context.Context, username string) ([]domain.BookingView, error)
	Ticket(ctx context.Context, username string, bookingID int64) (*domain.BookingView, error)
	ListRefundable(ctx context.Context, username string) ([]domain.BookingView, error)
	ListTransactions(ctx context.Context, username string) ([]domain.TransactionView, error)
	LeaveFeedback(ctx context.Context, input FeedbackInput) (*domain.Feedback, error)
	BookingFeedback(ctx context.Context, username string, bookingID int64) ([]domain.Feedback, error)
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type BookingService struct {
	bookings           repository.BookingRepository
	flights            repository.FlightRepository
	loyalty            repository.LoyaltyRepository
	transactions       repository.TransactionRepository
	feedback           repository.FeedbackRepository
	producer           Producer
	bookingTopic       string
	notificationsTopic string
	pricing            Pricing
	metrics            *metrics.Metrics
	log                logger.Logger
}

// PurchaseInput carries everything one booking-payment attempt needs. Username
// comes from the authenticated session, never from the request body.
type PurchaseInput struct {
	Username       string
	FlightID       int64
	PassengerName  string
	PaymentMethod  string
	PointsToRedeem int64
}

type FeedbackInput struct {
	Username  string
	BookingID int64
	Rating    int
	Comments  string
}

type BookingServiceOption func(*BookingService)

func WithNotificationsTopic(topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.notificationsTopic = topic
	}
}

func WithMetrics(m *metrics.Metrics) BookingServiceOption {
	return func(s *BookingService) {
		s.metrics = m
	}
}

func NewBookingService(
	bookings repository.BookingRepository,
	flights repository.FlightRepository,
	loyalty repository.LoyaltyRepository,
	transactions repository.TransactionRepository,
	feedback repository.FeedbackRepository,
	producer Producer,
	bookingTopic string,
	pricing Pricing,
	log logger.Logger,
	opts ...BookingServiceOption,
) *BookingService {
	service := &BookingService{
		bookings:     bookings,
		flights:      flights,
		loyalty:      loyalty,
		transactions: transactions,
		feedback:     feedback,
		producer:     producer,
		bookingTopic: bookingTopic,
		pricing:      pricing,
		log:          log,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// Purchase runs the booking-payment workflow: validate, price, then persist the
// booking, its transaction, the ledger mutation and the notifications as one
// unit. Validation failures abort before any write.
func (s *BookingService) Purchase(ctx context.Context, input PurchaseInput) (*domain.Booking, error) {
	start := time.Now()

	flight, err := s.flights.GetByID(ctx, input.FlightID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.PassengerName) == "" {
		return nil, domain.ErrPassengerNameRequired
	}
	if input.PointsToRedeem < 0 {
		return nil, errors.New("points to redeem must not be negative")
	}

	account, err := s.loyalty.GetByUsername(ctx, input.Username)
	if err != nil {
		return nil, err
	}
	if input.PointsToRedeem > account.TotalPointsLeft {
		return nil, domain.ErrInsufficientPoints
	}
	if input.PointsToRedeem > 0 && input.PointsToRedeem < s.pricing.MinRedeemPoints {
		return nil, domain.ErrBelowMinRedemption
	}

	quote := s.pricing.Quote(flight.PriceCents, input.PointsToRedeem)

	booking := &domain.Booking{
		FlightID:        flight.ID,
		Username:        input.Username,
		PassengerName:   input.PassengerName,
		Status:          domain.BookingStatusConfirmed,
		RefundStatus:    domain.RefundStatusNone,
		FinalPriceCents: quote.FinalPriceCents,
	}
	transaction := &domain.Transaction{
		Username:      input.Username,
		AmountCents:   quote.FinalPriceCents,
		DiscountCents: quote.DiscountCents,
		Type:          domain.TransactionTypePayment,
		Status:        domain.TransactionStatusSuccess,
		PaymentMethod: input.PaymentMethod,
	}

	notifications := []string{
		fmt.Sprintf("Booking confirmed! Flight %s from %s to %s on %s. Final price: %s.",
			flight.FlightNumber, flight.Source, flight.Destination, flight.DepartureDate.Format("2006-01-02"), dollars(quote.FinalPriceCents)),
	}
	if input.PointsToRedeem > 0 {
		notifications = append(notifications, fmt.Sprintf("You redeemed %d points and received a discount of %s.",
			input.PointsToRedeem, dollars(quote.DiscountCents)))
	}
	if quote.PointsEarned > 0 {
		notifications = append(notifications, fmt.Sprintf("You earned %d loyalty points for this booking.", quote.PointsEarned))
	}

	purchase := &repository.Purchase{
		Booking:        booking,
		Transaction:    transaction,
		PointsEarned:   quote.PointsEarned,
		PointsRedeemed: input.PointsToRedeem,
		Notifications:  notifications,
	}
	if err := s.bookings.CreatePurchase(ctx, purchase); err != nil {
		if errors.Is(err, domain.ErrInsufficientPoints) {
			// A concurrent redemption drained the balance between validation and commit.
			return nil, err
		}
		s.log.Error("booking payment unit failed", "username", input.Username, "flight_id", input.FlightID, "error", err)
		if s.metrics != nil {
			s.metrics.ErrorsCount.WithLabelValues("purchase").Inc()
		}
		return nil, domain.ErrPaymentFailed
	}

	if s.metrics != nil {
		s.metrics.BookingsConfirmed.Inc()
		s.metrics.PointsRedeemed.Add(float64(input.PointsToRedeem))
		s.metrics.PaymentDuration.Observe(time.Since(start).Seconds())
	}

	s.publish(ctx, "booking_confirmed", booking, input.PointsToRedeem, quote.PointsEarned)
	return booking, nil
}

// Cancel marks the caller's booking cancelled. Cancelling an already cancelled
// booking returns it unchanged and emits nothing.
func (s *BookingService) Cancel(ctx context.Context, username string, bookingID int64) (*domain.Booking, error) {
	view, err := s.bookings.GetViewByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if view.Username != username {
		return nil, domain.ErrUnauthorizedAccess
	}
	if view.Status == domain.BookingStatusCancelled {
		return &view.Booking, nil
	}

	message := fmt.Sprintf("Your booking from %s to %s on %s has been cancelled.",
		view.Source, view.Destination, view.DepartureDate.Format("2006-01-02"))
	updated, err := s.bookings.Cancel(ctx, bookingID, message)
	if err != nil {
		if errors.Is(err, domain.ErrBookingNotFound) {
			// Lost a race with another cancel of the same booking.
			return s.bookings.GetByID(ctx, bookingID)
		}
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.BookingsCancelled.Inc()
	}
	s.publish(ctx, "booking_cancelled", updated, 0, 0)
	return updated, nil
}

// RequestRefund flips the booking's refund status and its payment transaction
// to refunded together. Only cancelled bookings qualify; no money moves.
func (s *BookingService) RequestRefund(ctx context.Context, username string, bookingID int64) (*domain.Booking, error) {
	current, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if current.Username != username {
		return nil, domain.ErrUnauthorizedAccess
	}
	if current.Status != domain.BookingStatusCancelled {
		return nil, domain.ErrBookingNotCancelled
	}
	if current.RefundStatus == domain.RefundStatusRefunded {
		return current, nil
	}

	if err := s.bookings.MarkRefunded(ctx, bookingID, username); err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.RefundsProcessed.Inc()
	}
	current.RefundStatus = domain.RefundStatusRefunded
	s.publish(ctx, "booking_refunded", current, 0, 0)
	return current, nil
}

func (s *BookingService) ListBookings(ctx context.Context, username string) ([]domain.BookingView, error) {
	return s.bookings.ListViewsByUser(ctx, username)
}

func (s *BookingService) Ticket(ctx context.Context, username string, bookingID int64) (*domain.BookingView, error) {
	view, err := s.bookings.GetViewByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if view.Username != username {
		return nil, domain.ErrUnauthorizedAccess
	}
	return view, nil
}

func (s *BookingService) ListRefundable(ctx context.Context, username string) ([]domain.BookingView, error) {
	return s.bookings.ListCancelledByUser(ctx, username)
}

func (s *BookingService) ListTransactions(ctx context.Context, username string) ([]domain.TransactionView, error) {
	return s.transactions.ListViewsByUser(ctx, username)
}

func (s *BookingService) LeaveFeedback(ctx context.Context, input FeedbackInput) (*domain.Feedback, error) {
	if input.Rating < 1 || input.Rating > 5 {
		return nil, errors.New("rating must be between 1 and 5")
	}

	current, err := s.bookings.GetByID(ctx, input.BookingID)
	if err != nil {
		return nil, err
	}
	if current.Username != input.Username {
		return nil, domain.ErrUnauthorizedAccess
	}

	feedback := &domain.Feedback{
		BookingID: input.BookingID,
		Username:  input.Username,
		Rating:    input.Rating,
		Comments:  input.Comments,
	}
	if err := s.feedback.Create(ctx, feedback); err != nil {
		return nil, err
	}
	return feedback, nil
}

func (s *BookingService) BookingFeedback(ctx context.Context, username string, bookingID int64) ([]domain.Feedback, error) {
	current, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if current.Username != username {
		return nil, domain.ErrUnauthorizedAccess
	}
	return s.feedback.ListByBooking(ctx, bookingID)
}

// publish sends a booking event to Kafka. Delivery is best effort: the booking
// is already committed, a broker failure must not fail the request.
func (s *BookingService) publish(ctx context.Context, eventType string, booking *domain.Booking, redeemed, earned int64) {
	if s.producer == nil || s.bookingTopic == "" {
		return
	}
	event := kafka.BookingEvent{
		Type:            eventType,
		BookingID:       booking.ID,
		FlightID:        booking.FlightID,
		Username:        booking.Username,
		PassengerName:   booking.PassengerName,
		FinalPriceCents: booking.FinalPriceCents,
		PointsRedeemed:  redeemed,
		PointsEarned:    earned,
		Status:          string(booking.Status),
		OccurredAt:      time.Now(),
	}
	key := fmt.Sprintf("%d", booking.ID)
	if err := s.producer.Publish(ctx, s.bookingTopic, key, event); err != nil {
		s.log.Warn("failed to publish booking event", "type", eventType, "booking_id", booking.ID, "error", err)
		return
	}
	if s.notificationsTopic != "" {
		if err := s.producer.Publish(ctx, s.notificationsTopic, key, event); err != nil {
			s.log.Warn("failed to publish notification event", "type", eventType, "booking_id", booking.ID, "error", err)
		}
	}
}

func dollars(cents int64) string {
	return fmt.Sprintf("$%d.%02d", cents/100, cents%100)
}

var _ BookingUseCase = (*BookingService)(nil)
