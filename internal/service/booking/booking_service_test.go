package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Domenick1991/skybook/internal/domain"
	"github.com/Domenick1991/skybook/internal/repository"
	"github.com/Domenick1991/skybook/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) CreatePurchase(ctx context.Context, p *repository.Purchase) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockBookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) GetViewByID(ctx context.Context, id int64) (*domain.BookingView, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BookingView), args.Error(1)
}

func (m *MockBookingRepository) ListViewsByUser(ctx context.Context, username string) ([]domain.BookingView, error) {
	args := m.Called(ctx, username)
	return args.Get(0).([]domain.BookingView), args.Error(1)
}

func (m *MockBookingRepository) ListCancelledByUser(ctx context.Context, username string) ([]domain.BookingView, error) {
	args := m.Called(ctx, username)
	return args.Get(0).([]domain.BookingView), args.Error(1)
}

func (m *MockBookingRepository) Cancel(ctx context.Context, id int64, notification string) (*domain.Booking, error) {
	args := m.Called(ctx, id, notification)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) MarkRefunded(ctx context.Context, id int64, username string) error {
	args := m.Called(ctx, id, username)
	return args.Error(0)
}

type MockFlightRepository struct {
	mock.Mock
}

func (m *MockFlightRepository) Search(ctx context.Context, source, destination string, departureDate time.Time) ([]domain.Flight, error) {
	args := m.Called(ctx, source, destination, departureDate)
	return args.Get(0).([]domain.Flight), args.Error(1)
}

func (m *MockFlightRepository) SearchByRoute(ctx context.Context, source, destination string) ([]domain.Flight, error) {
	args := m.Called(ctx, source, destination)
	return args.Get(0).([]domain.Flight), args.Error(1)
}

func (m *MockFlightRepository) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flight), args.Error(1)
}

type MockLoyaltyRepository struct {
	mock.Mock
}

func (m *MockLoyaltyRepository) GetByUsername(ctx context.Context, username string) (*domain.LoyaltyAccount, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LoyaltyAccount), args.Error(1)
}

type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) ListViewsByUser(ctx context.Context, username string) ([]domain.TransactionView, error) {
	args := m.Called(ctx, username)
	return args.Get(0).([]domain.TransactionView), args.Error(1)
}

type MockFeedbackRepository struct {
	mock.Mock
}

func (m *MockFeedbackRepository) Create(ctx context.Context, feedback *domain.Feedback) error {
	args := m.Called(ctx, feedback)
	return args.Error(0)
}

func (m *MockFeedbackRepository) ListByBooking(ctx context.Context, bookingID int64) ([]domain.Feedback, error) {
	args := m.Called(ctx, bookingID)
	return args.Get(0).([]domain.Feedback), args.Error(1)
}

type MockProducer struct {
	mock.Mock
}

func (m *MockProducer) Publish(ctx context.Context, topic, key string, value interface{}) error {
	args := m.Called(ctx, topic, key, value)
	return args.Error(0)
}

type serviceMocks struct {
	bookings     *MockBookingRepository
	flights      *MockFlightRepository
	loyalty      *MockLoyaltyRepository
	transactions *MockTransactionRepository
	feedback     *MockFeedbackRepository
	producer     *MockProducer
}

func newTestService() (*BookingService, *serviceMocks) {
	m := &serviceMocks{
		bookings:     &MockBookingRepository{},
		flights:      &MockFlightRepository{},
		loyalty:      &MockLoyaltyRepository{},
		transactions: &MockTransactionRepository{},
		feedback:     &MockFeedbackRepository{},
		producer:     &MockProducer{},
	}
	service := NewBookingService(
		m.bookings, m.flights, m.loyalty, m.transactions, m.feedback,
		m.producer, "booking-events", DefaultPricing(), logger.NewNop(),
	)
	return service, m
}

func testFlight() *domain.Flight {
	return &domain.Flight{
		ID:            4,
		FlightNumber:  "SB101",
		Source:        "JFK",
		Destination:   "LAX",
		DepartureDate: time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
		PriceCents:    10000,
	}
}

func TestBookingService_Purchase_Success(t *testing.T) {
	service, m := newTestService()
	ctx := context.Background()

	m.flights.On("GetByID", ctx, int64(4)).Return(testFlight(), nil).Once()
	m.loyalty.On("GetByUsername", ctx, "alice").Return(&domain.LoyaltyAccount{Username: "alice", Points: 120, TotalPointsLeft: 80}, nil).Once()
	m.bookings.On("CreatePurchase", ctx, mock.AnythingOfType("*repository.Purchase")).Return(nil).Once()
	m.producer.On("Publish", ctx, "booking-events", mock.Anything, mock.Anything).Return(nil).Once()

	result, err := service.Purchase(ctx, PurchaseInput{
		Username:       "alice",
		FlightID:       4,
		PassengerName:  "Alice Smith",
		PaymentMethod:  "credit_card",
		PointsToRedeem: 50,
	})

	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, domain.BookingStatusConfirmed, result.Status)
	assert.Equal(t, int64(9500), result.FinalPriceCents)

	purchase := m.bookings.Calls[0].Arguments.Get(1).(*repository.Purchase)
	assert.Equal(t, int64(500), purchase.Transaction.DiscountCents)
	assert.Equal(t, int64(9500), purchase.Transaction.AmountCents)
	assert.Equal(t, domain.TransactionStatusSuccess, purchase.Transaction.Status)
	assert.Equal(t, int64(9), purchase.PointsEarned)
	assert.Equal(t, int64(50), purchase.PointsRedeemed)
	// Confirmation, redemption and points-earned notifications.
	assert.Len(t, purchase.Notifications, 3)

	m.flights.AssertExpectations(t)
	m.loyalty.AssertExpectations(t)
	m.bookings.AssertExpectations(t)
	m.producer.AssertExpectations(t)
}

func TestBookingService_Purchase_NoRedemption(t *testing.T) {
	service, m := newTestService()
	ctx := context.Background()

	flight := testFlight()
	flight.PriceCents = 500

	m.flights.On("GetByID", ctx, int64(4)).Return(flight, nil).Once()
	m.loyalty.On("GetByUsername", ctx, "alice").Return(&domain.LoyaltyAccount{Username: "alice"}, nil).Once()
	m.bookings.On("CreatePurchase", ctx, mock.AnythingOfType("*repository.Purchase")).Return(nil).Once()
	m.producer.On("Publish", ctx, "booking-events", mock.Anything, mock.Anything).Return(nil).Once()

	result, err := service.Purchase(ctx, PurchaseInput{
		Username:      "alice",
		FlightID:      4,
		PassengerName: "Alice Smith",
		PaymentMethod: "paypal",
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(500), result.FinalPriceCents)

	purchase := m.bookings.Calls[0].Arguments.Get(1).(*repository.Purchase)
	assert.Equal(t, int64(0), purchase.PointsEarned)
	// Only the confirmation notification.
	assert.Len(t, purchase.Notifications, 1)
}

func TestBookingService_Purchase_DiscountClampsToZero(t *testing.T) {
	service, m := newTestService()
	ctx := context.Background()

	flight := testFlight()
	flight.PriceCents = 100

	m.flights.On("GetByID", ctx, int64(4)).Return(flight, nil).Once()
	m.loyalty.On("GetByUsername", ctx, "alice").Return(&domain.LoyaltyAccount{Username: "alice", TotalPointsLeft: 50}, nil).Once()
	m.bookings.On("CreatePurchase", ctx, mock.AnythingOfType("*repository.Purchase")).Return(nil).Once()
	m.producer.On("Publish", ctx, "booking-events", mock.Anything, mock.Anything).Return(nil).Once()

	result, err := service.Purchase(ctx, PurchaseInput{
		Username:       "alice",
		FlightID:       4,
		PassengerName:  "Alice Smith",
		PaymentMethod:  "credit_card",
		PointsToRedeem: 50,
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(0), result.FinalPriceCents)

	purchase := m.bookings.Calls[0].Arguments.Get(1).(*repository.Purchase)
	assert.Equal(t, int64(500), purchase.Transaction.DiscountCents)
	assert.Equal(t, int64(0), purchase.PointsEarned)
	// Confirmation and redemption notifications, no points earned.
	assert.Len(t, purchase.Notifications, 2)
}

func TestBookingService_Purchase_ValidationErrors(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name        string
		input       PurchaseInput
		available   int64
		expectedErr error
	}{
		{
			name:        "missing passenger name",
			input:       PurchaseInput{Username: "alice", FlightID: 4, PointsToRedeem: 0},
			expectedErr: domain.ErrPassengerNameRequired,
		},
		{
			name:        "insufficient points",
			input:       PurchaseInput{Username: "alice", FlightID: 4, PassengerName: "Alice Smith", PointsToRedeem: 200},
			available:   100,
			expectedErr: domain.ErrInsufficientPoints,
		},
		{
			name:        "below minimum redemption",
			input:       PurchaseInput{Username: "alice", FlightID: 4, PassengerName: "Alice Smith", PointsToRedeem: 49},
			available:   100,
			expectedErr: domain.ErrBelowMinRedemption,
		},
		{
			name:        "single point below minimum",
			input:       PurchaseInput{Username: "alice", FlightID: 4, PassengerName: "Alice Smith", PointsToRedeem: 1},
			available:   100,
			expectedErr: domain.ErrBelowMinRedemption,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			service, m := newTestService()

			m.flights.On("GetByID", ctx, int64(4)).Return(testFlight(), nil).Once()
			m.loyalty.On("GetByUsername", ctx, "alice").Return(&domain.LoyaltyAccount{Username: "alice", TotalPointsLeft: tc.available}, nil).Maybe()

			result, err := service.Purchase(ctx, tc.input)

			assert.ErrorIs(t, err, tc.expectedErr)
			assert.Nil(t, result)
			m.bookings.AssertNotCalled(t, "CreatePurchase", mock.Anything, mock.Anything)
			m.producer.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestBookingService_Purchase_FlightNotFound(t *testing.T) {
	service, m := newTestService()
	ctx := context.Background()

	m.flights.On("GetByID", ctx, int64(99)).Return(nil, domain.ErrFlightNotFound).Once()

	result, err := service.Purchase(ctx, PurchaseInput{
		Username:      "alice",
		FlightID:      99,
		PassengerName: "Alice Smith",
	})

	assert.ErrorIs(t, err, domain.ErrFlightNotFound)
	assert.Nil(t, result)
	m.loyalty.AssertNotCalled(t, "GetByUsername", mock.Anything, mock.Anything)
	m.bookings.AssertNotCalled(t, "CreatePurchase", mock.Anything, mock.Anything)
}

func TestBookingService_Purchase_WriteFailureRollsBack(t *testing.T) {
	service, m := newTestService()
	ctx := context.Background()

	m.flights.On("GetByID", ctx, int64(4)).Return(testFlight(), nil).Once()
	m.loyalty.On("GetByUsername", ctx, "alice").Return(&domain.LoyaltyAccount{Username: "alice", TotalPointsLeft: 80}, nil).Once()
	m.bookings.On("CreatePurchase", ctx, mock.AnythingOfType("*repository.Purchase")).Return(errors.New("insert transaction: connection reset")).Once()

	result, err := service.Purchase(ctx, PurchaseInput{
		Username:       "alice",
		FlightID:       4,
		PassengerName:  "Alice Smith",
		PaymentMethod:  "credit_card",
		PointsToRedeem: 50,
	})

	// The caller sees the generic payment error, never the driver detail.
	assert.ErrorIs(t, err, domain.ErrPaymentFailed)
	assert.Nil(t, result)
	m.producer.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestBookingService_Purchase_ConcurrentRedemptionLosesRace(t *testing.T) {
	service, m := newTestService()
	ctx := context.Background()

	m.flights.On("GetByID", ctx, int64(4)).Return(testFlight(), nil).Once()
	m.loyalty.On("GetByUsername", ctx, "alice").Return(&domain.LoyaltyAccount{Username: "alice", TotalPointsLeft: 50}, nil).Once()
	m.bookings.On("CreatePurchase", ctx, mock.AnythingOfType("*repository.Purchase")).Return(domain.ErrInsufficientPoints).Once()

	_, err := service.Purchase(ctx, PurchaseInput{
		Username:       "alice",
		FlightID:       4,
		PassengerName:  "Alice Smith",
		PaymentMethod:  "credit_card",
		PointsToRedeem: 50,
	})

	assert.ErrorIs(t, err, domain.ErrInsufficientPoints)
	m.producer.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func activeBookingView(username string) *domain.BookingView {
	return &domain.BookingView{
		Booking: domain.Booking{
			ID:              7,
			FlightID:        4,
			Username:        username,
			PassengerName:   "Alice Smith",
			Status:          domain.BookingStatusConfirmed,
			RefundStatus:    domain.RefundStatusNone,
			FinalPriceCents: 9500,
		},
		FlightNumber:  "SB101",
		Source:        "JFK",
		Destination:   "LAX",
		DepartureDate: time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
	}
}

func TestBookingService_Cancel_Success(t *testing.T) {
	service, m := newTestService()
	ctx := context.Background()

	view := activeBookingView("alice")
	cancelled := view.Booking
	cancelled.Status = domain.BookingStatusCancelled

	m.bookings.On("GetViewByID", ctx, int64(7)).Return(view, nil).Once()
	m.bookings.On("Cancel", ctx, int64(7), mock.AnythingOfType("string")).Return(&cancelled, nil).Once()
	m.producer.On("Publish", ctx, "booking-events", mock.Anything, mock.Anything).Return(nil).Once()

	result, err := service.Cancel(ctx, "alice", 7)

	assert.NoError(t, err)
	assert.Equal(t, domain.BookingStatusCancelled, result.Status)
	m.bookings.AssertExpectations(t)
}

func TestBookingService_Cancel_AlreadyCancelled(t *testing.T) {
	service, m := newTestService()
	ctx := context.Background()

	view := activeBookingView("alice")
	view.Status = domain.BookingStatusCancelled

	m.bookings.On("GetViewByID", ctx, int64(7)).Return(view, nil).Once()

	result, err := service.Cancel(ctx, "alice", 7)

	assert.NoError(t, err)
	assert.Equal(t, domain.BookingStatusCancelled, result.Status)
	assert.Equal(t, domain.RefundStatusNone, result.RefundStatus)
	// No second cancellation notification and no event.
	m.bookings.AssertNotCalled(t, "Cancel", mock.Anything, mock.Anything, mock.Anything)
	m.producer.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestBookingService_Cancel_Unauthorized(t *testing.T) {
	service, m := newTestService()
	ctx := context.Background()

	m.bookings.On("GetViewByID", ctx, int64(7)).Return(activeBookingView("bob"), nil).Once()

	result, err := service.Cancel(ctx, "alice", 7)

	assert.ErrorIs(t, err, domain.ErrUnauthorizedAccess)
	assert.Nil(t, result)
	m.bookings.AssertNotCalled(t, "Cancel", mock.Anything, mock.Anything, mock.Anything)
}

func TestBookingService_RequestRefund_Success(t *testing.T) {
	service, m := newTestService()
	ctx := context.Background()

	current := &domain.Booking{
		ID:           7,
		Username:     "alice",
		Status:       domain.BookingStatusCancelled,
		RefundStatus: domain.RefundStatusNone,
	}

	m.bookings.On("GetByID", ctx, int64(7)).Return(current, nil).Once()
	m.bookings.On("MarkRefunded", ctx, int64(7), "alice").Return(nil).Once()
	m.producer.On("Publish", ctx, "booking-events", mock.Anything, mock.Anything).Return(nil).Once()

	result, err := service.RequestRefund(ctx, "alice", 7)

	assert.NoError(t, err)
	assert.Equal(t, domain.RefundStatusRefunded, result.RefundStatus)
	m.bookings.AssertExpectations(t)
}

func TestBookingService_RequestRefund_NotCancelled(t *testing.T) {
	service, m := newTestService()
	ctx := context.Background()

	current := &domain.Booking{
		ID:           7,
		Username:     "alice",
		Status:       domain.BookingStatusConfirmed,
		RefundStatus: domain.RefundStatusNone,
	}
	m.bookings.On("GetByID", ctx, int64(7)).Return(current, nil).Once()

	_, err := service.RequestRefund(ctx, "alice", 7)

	assert.ErrorIs(t, err, domain.ErrBookingNotCancelled)
	m.bookings.AssertNotCalled(t, "MarkRefunded", mock.Anything, mock.Anything, mock.Anything)
}

func TestBookingService_RequestRefund_AlreadyRefunded(t *testing.T) {
	service, m := newTestService()
	ctx := context.Background()

	current := &domain.Booking{
		ID:           7,
		Username:     "alice",
		Status:       domain.BookingStatusCancelled,
		RefundStatus: domain.RefundStatusRefunded,
	}
	m.bookings.On("GetByID", ctx, int64(7)).Return(current, nil).Once()

	result, err := service.RequestRefund(ctx, "alice", 7)

	assert.NoError(t, err)
	assert.Equal(t, domain.RefundStatusRefunded, result.RefundStatus)
	m.bookings.AssertNotCalled(t, "MarkRefunded", mock.Anything, mock.Anything, mock.Anything)
}

func TestBookingService_RequestRefund_Unauthorized(t *testing.T) {
	service, m := newTestService()
	ctx := context.Background()

	current := &domain.Booking{ID: 7, Username: "bob", Status: domain.BookingStatusCancelled}
	m.bookings.On("GetByID", ctx, int64(7)).Return(current, nil).Once()

	_, err := service.RequestRefund(ctx, "alice", 7)

	assert.ErrorIs(t, err, domain.ErrUnauthorizedAccess)
	m.bookings.AssertNotCalled(t, "MarkRefunded", mock.Anything, mock.Anything, mock.Anything)
}

func TestBookingService_Ticket_Unauthorized(t *testing.T) {
	service, m := newTestService()
	ctx := context.Background()

	m.bookings.On("GetViewByID", ctx, int64(7)).Return(activeBookingView("bob"), nil).Once()

	_, err := service.Ticket(ctx, "alice", 7)

	assert.ErrorIs(t, err, domain.ErrUnauthorizedAccess)
}

func TestBookingService_LeaveFeedback(t *testing.T) {
	service, m := newTestService()
	ctx := context.Background()

	current := &domain.Booking{ID: 7, Username: "alice", Status: domain.BookingStatusConfirmed}
	m.bookings.On("GetByID", ctx, int64(7)).Return(current, nil).Once()
	m.feedback.On("Create", ctx, mock.AnythingOfType("*domain.Feedback")).Return(nil).Once()

	feedback, err := service.LeaveFeedback(ctx, FeedbackInput{
		Username:  "alice",
		BookingID: 7,
		Rating:    5,
		Comments:  "smooth flight",
	})

	assert.NoError(t, err)
	assert.Equal(t, 5, feedback.Rating)
	m.feedback.AssertExpectations(t)
}

func TestBookingService_LeaveFeedback_InvalidRating(t *testing.T) {
	service, m := newTestService()
	ctx := context.Background()

	_, err := service.LeaveFeedback(ctx, FeedbackInput{Username: "alice", BookingID: 7, Rating: 6})

	assert.Error(t, err)
	m.feedback.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestBookingService_LeaveFeedback_Unauthorized(t *testing.T) {
	service, m := newTestService()
	ctx := context.Background()

	current := &domain.Booking{ID: 7, Username: "bob"}
	m.bookings.On("GetByID", ctx, int64(7)).Return(current, nil).Once()

	_, err := service.LeaveFeedback(ctx, FeedbackInput{Username: "alice", BookingID: 7, Rating: 4})

	assert.ErrorIs(t, err, domain.ErrUnauthorizedAccess)
	m.feedback.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}
