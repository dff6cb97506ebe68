package main

import (
	"context"
	"errors"
	"testing"

	"github.com/Domenick1991/seatbook/internal/domain"
	"github.com/Domenick1991/seatbook/internal/email"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockEventJournal struct {
	mock.Mock
}

func (m *MockEventJournal) EnsureSchema(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockEventJournal) Append(ctx context.Context, event domain.BookingEvent) error {
	return m.Called(ctx, event).Error(0)
}

func TestNotifier_HandleJournalsEvent(t *testing.T) {
	journal := &MockEventJournal{}
	n := &notifier{sender: email.NewSender(), journal: journal}
	ctx := context.Background()
	event := domain.BookingEvent{ID: "e1", Type: domain.EventBookingCreated, FlightNumber: "FL123", Email: "john@example.com", SeatNumber: 1}

	journal.On("Append", ctx, event).Return(nil).Once()

	assert.NoError(t, n.handle(ctx, event))
	journal.AssertExpectations(t)
}

func TestNotifier_HandleJournalFailure(t *testing.T) {
	journal := &MockEventJournal{}
	n := &notifier{sender: email.NewSender(), journal: journal}
	ctx := context.Background()

	journal.On("Append", ctx, mock.Anything).Return(errors.New("db down")).Once()

	assert.Error(t, n.handle(ctx, domain.BookingEvent{ID: "e1"}))
}

func TestNotifier_HandleWithoutJournal(t *testing.T) {
	n := &notifier{sender: email.NewSender()}
	assert.NoError(t, n.handle(context.Background(), domain.BookingEvent{ID: "e1"}))
}
