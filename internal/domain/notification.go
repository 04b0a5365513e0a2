package domain

import "time"

type Notification struct {
	ID        int64
	Username  string
	Message   string
	IsRead    bool
	CreatedAt time.Time
}
