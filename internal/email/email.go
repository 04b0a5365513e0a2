package email

import (
	"context"
	"fmt"

	"github.com/Domenick1991/skybook/internal/kafka"
	"github.com/Domenick1991/skybook/pkg/logger"
)

// Sender delivers booking event emails. The transport is a stub: real SMTP
// delivery is out of scope, the worker logs what would have been sent.
type Sender struct {
	log logger.Logger
}

func NewSender(log logger.Logger) *Sender {
	return &Sender{log: log}
}

func (s *Sender) Send(ctx context.Context, event kafka.BookingEvent) error {
	subject := fmt.Sprintf("Booking %d %s", event.BookingID, event.Type)
	s.log.Info("send email",
		"to", event.Username,
		"subject", subject,
		"flight_id", event.FlightID,
		"final_price_cents", event.FinalPriceCents,
	)
	return nil
}
