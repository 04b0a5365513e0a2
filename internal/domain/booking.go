package domain

import "time"

type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

type RefundStatus string

const (
	RefundStatusNone     RefundStatus = "none"
	RefundStatusRefunded RefundStatus = "refunded"
)

type Booking struct {
	ID              int64
	FlightID        int64
	Username        string
	PassengerName   string
	Status          BookingStatus
	RefundStatus    RefundStatus
	FinalPriceCents int64
	BookingDate     time.Time
}

// BookingView is a booking joined with its flight for list and ticket screens.
type BookingView struct {
	Booking
	FlightNumber  string
	Source        string
	Destination   string
	DepartureDate time.Time
}
