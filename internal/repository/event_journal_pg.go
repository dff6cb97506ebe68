package repository

import (
	"context"
	"fmt"

	"github.com/Domenick1991/seatbook/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

// EventJournal is an append-only audit trail of booking events. It is
// never read back into the booking store.
type EventJournal interface {
	EnsureSchema(ctx context.Context) error
	Append(ctx context.Context, event domain.BookingEvent) error
}

type PGEventJournal struct {
	db *pgxpool.Pool
}

func NewEventJournal(db *pgxpool.Pool) EventJournal {
	return &PGEventJournal{db: db}
}

func (r *PGEventJournal) EnsureSchema(ctx context.Context) error {
	_, err := r.db.Exec(ctx, `
        CREATE TABLE IF NOT EXISTS booking_events (
            id                   UUID PRIMARY KEY,
            type                 TEXT NOT NULL,
            flight_number        TEXT NOT NULL,
            name                 TEXT NOT NULL,
            email                TEXT NOT NULL,
            seat_number          INTEGER NOT NULL,
            previous_seat_number INTEGER NOT NULL DEFAULT 0,
            occurred_at          TIMESTAMPTZ NOT NULL,
            recorded_at          TIMESTAMPTZ NOT NULL DEFAULT now()
        )
    `)
	if err != nil {
		return fmt.Errorf("create booking_events: %w", err)
	}
	return nil
}

// Append ignores events already journaled, so redelivered messages are harmless.
func (r *PGEventJournal) Append(ctx context.Context, event domain.BookingEvent) error {
	_, err := r.db.Exec(ctx, `INSERT INTO booking_events (id, type, flight_number, name, email, seat_number, previous_seat_number, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO NOTHING`,
		event.ID, string(event.Type), event.FlightNumber, event.Name, event.Email, event.SeatNumber, event.PreviousSeatNumber, event.OccurredAt)
	if err != nil {
		return fmt.Errorf("append booking event %s: %w", event.ID, err)
	}
	return nil
}

var _ EventJournal = (*PGEventJournal)(nil)
