package domain

import "time"

type TransactionStatus string

const (
	TransactionStatusSuccess  TransactionStatus = "success"
	TransactionStatusRefunded TransactionStatus = "refunded"
)

const TransactionTypePayment = "payment"

type Transaction struct {
	ID            int64
	BookingID     int64
	Username      string
	AmountCents   int64
	DiscountCents int64
	Type          string
	Status        TransactionStatus
	PaymentMethod string
	Date          time.Time
}

// TransactionView is a transaction joined with flight details for the history screen.
type TransactionView struct {
	Transaction
	FlightNumber string
	Source       string
	Destination  string
}
