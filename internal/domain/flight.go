package domain

import "time"

type Flight struct {
	ID            int64
	FlightNumber  string
	Source        string
	Destination   string
	DepartureDate time.Time
	PriceCents    int64
	CreatedAt     time.Time
}
