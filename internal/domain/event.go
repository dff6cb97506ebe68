package domain

import "time"

type EventType string

const (
	EventBookingCreated   EventType = "booking_created"
	EventBookingCancelled EventType = "booking_cancelled"
	EventSeatModified     EventType = "seat_modified"
)

type BookingEvent struct {
	ID                 string    `json:"id"`
	Type               EventType `json:"type"`
	FlightNumber       string    `json:"flight_number"`
	Name               string    `json:"name"`
	Email              string    `json:"email"`
	SeatNumber         int       `json:"seat_number"`
	PreviousSeatNumber int       `json:"previous_seat_number,omitempty"`
	OccurredAt         time.Time `json:"occurred_at"`
}
