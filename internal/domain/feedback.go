package domain

import "time"

type Feedback struct {
	ID        int64
	BookingID int64
	Username  string
	Rating    int
	Comments  string
	CreatedAt time.Time
}
