package email

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/Domenick1991/seatbook/internal/domain"
)

// Sender writes notification emails to an output stream instead of a mail
// server.
type Sender struct {
	out io.Writer
}

func NewSender() *Sender {
	return &Sender{out: os.Stdout}
}

func (s *Sender) Send(ctx context.Context, event domain.BookingEvent) error {
	_, err := fmt.Fprintf(s.out, "send email to %s: %s\n", event.Email, Subject(event))
	return err
}

func Subject(event domain.BookingEvent) string {
	switch event.Type {
	case domain.EventBookingCreated:
		return fmt.Sprintf("booking confirmed on flight %s, seat %d", event.FlightNumber, event.SeatNumber)
	case domain.EventBookingCancelled:
		return fmt.Sprintf("booking on flight %s cancelled", event.FlightNumber)
	case domain.EventSeatModified:
		return fmt.Sprintf("seat on flight %s changed from %d to %d", event.FlightNumber, event.PreviousSeatNumber, event.SeatNumber)
	default:
		return fmt.Sprintf("%s for flight %s", event.Type, event.FlightNumber)
	}
}
