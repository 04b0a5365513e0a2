package domain

import "errors"

var (
	ErrUsernameTaken      = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")

	ErrFlightNotFound  = errors.New("flight not found")
	ErrBookingNotFound = errors.New("booking not found")

	ErrPassengerNameRequired = errors.New("passenger name is required")
	ErrInsufficientPoints    = errors.New("insufficient loyalty points")
	ErrBelowMinRedemption    = errors.New("below minimum redemption")

	// ErrUnauthorizedAccess means the resource exists but belongs to another user.
	ErrUnauthorizedAccess = errors.New("unauthorized access")

	// ErrBookingNotCancelled means a refund was requested for a booking that is still active.
	ErrBookingNotCancelled = errors.New("booking is not cancelled")

	// ErrPaymentFailed is the generic error returned when the booking-payment
	// unit rolls back. The underlying cause is logged, not exposed.
	ErrPaymentFailed = errors.New("payment processing failed")
)
