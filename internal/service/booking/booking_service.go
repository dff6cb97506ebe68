package booking

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/Domenick1991/seatbook/internal/domain"
	"github.com/Domenick1991/seatbook/internal/repository"
	"github.com/google/uuid"
)

type BookingUseCase interface {
	Book(ctx context.Context, input BookInput) (*domain.Passenger, error)
	Ticket(ctx context.Context, email string) (*Ticket, error)
	Cancel(ctx context.Context, input CancelInput) (*domain.Passenger, error)
	ModifySeat(ctx context.Context, input ModifySeatInput) (*domain.Passenger, error)
}

// ManifestInvalidator drops cached passenger lists after a mutation.
type ManifestInvalidator interface {
	InvalidateManifest(ctx context.Context, flightNumber string) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type BookingService struct {
	store              repository.BookingStore
	cache              ManifestInvalidator
	producer           Producer
	eventsTopic        string
	notificationsTopic string
	now                func() time.Time
}

type BookInput struct {
	FlightNumber string `json:"flightNumber"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Destination  string `json:"destination"`
	TravelDate   string `json:"travelDate"`
}

type CancelInput struct {
	Email        string `json:"email"`
	FlightNumber string `json:"flightNumber"`
}

type ModifySeatInput struct {
	Email         string `json:"email"`
	FlightNumber  string `json:"flightNumber"`
	NewSeatNumber int    `json:"newSeatNumber"`
}

type Ticket struct {
	FlightNumber string
	Passenger    domain.Passenger
}

type BookingServiceOption func(*BookingService)

func WithManifestCache(cache ManifestInvalidator) BookingServiceOption {
	return func(s *BookingService) {
		s.cache = cache
	}
}

// WithEvents publishes every committed mutation to eventsTopic and, when
// set, to notificationsTopic.
func WithEvents(producer Producer, eventsTopic, notificationsTopic string) BookingServiceOption {
	return func(s *BookingService) {
		s.producer = producer
		s.eventsTopic = eventsTopic
		s.notificationsTopic = notificationsTopic
	}
}

func NewBookingService(store repository.BookingStore, opts ...BookingServiceOption) *BookingService {
	service := &BookingService{
		store: store,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

func (s *BookingService) Book(ctx context.Context, input BookInput) (*domain.Passenger, error) {
	if err := required(
		field{"name", input.Name},
		field{"email", input.Email},
		field{"destination", input.Destination},
		field{"travelDate", input.TravelDate},
		field{"flightNumber", input.FlightNumber},
	); err != nil {
		return nil, err
	}

	booked, err := s.store.Book(input.FlightNumber, domain.Passenger{
		Name:        input.Name,
		Email:       input.Email,
		Destination: input.Destination,
		TravelDate:  input.TravelDate,
	})
	if err != nil {
		return nil, fmt.Errorf("book flight %s: %w", input.FlightNumber, err)
	}

	s.afterMutation(ctx, domain.EventBookingCreated, input.FlightNumber, booked, 0)
	return &booked, nil
}

func (s *BookingService) Ticket(ctx context.Context, email string) (*Ticket, error) {
	if err := required(field{"email", email}); err != nil {
		return nil, err
	}

	flightNumber, passenger, err := s.store.FindByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("find ticket for %s: %w", email, err)
	}
	return &Ticket{FlightNumber: flightNumber, Passenger: passenger}, nil
}

func (s *BookingService) Cancel(ctx context.Context, input CancelInput) (*domain.Passenger, error) {
	if err := required(field{"email", input.Email}, field{"flightNumber", input.FlightNumber}); err != nil {
		return nil, err
	}

	cancelled, err := s.store.Cancel(input.FlightNumber, input.Email)
	if err != nil {
		return nil, fmt.Errorf("cancel %s on flight %s: %w", input.Email, input.FlightNumber, err)
	}

	s.afterMutation(ctx, domain.EventBookingCancelled, input.FlightNumber, cancelled, 0)
	return &cancelled, nil
}

// ModifySeat treats seat 0 as missing. Other values, including ones outside
// the flight capacity, go to the store unchecked.
func (s *BookingService) ModifySeat(ctx context.Context, input ModifySeatInput) (*domain.Passenger, error) {
	if err := required(field{"email", input.Email}, field{"flightNumber", input.FlightNumber}); err != nil {
		return nil, err
	}
	if input.NewSeatNumber == 0 {
		return nil, fmt.Errorf("%w: newSeatNumber is required", domain.ErrValidation)
	}

	updated, previous, err := s.store.ModifySeat(input.FlightNumber, input.Email, input.NewSeatNumber)
	if err != nil {
		return nil, fmt.Errorf("move %s to seat %d on flight %s: %w", input.Email, input.NewSeatNumber, input.FlightNumber, err)
	}

	s.afterMutation(ctx, domain.EventSeatModified, input.FlightNumber, updated, previous)
	return &updated, nil
}

// afterMutation runs once the store has committed, so failures here are
// logged rather than returned.
func (s *BookingService) afterMutation(ctx context.Context, eventType domain.EventType, flightNumber string, p domain.Passenger, previousSeat int) {
	if s.cache != nil {
		if err := s.cache.InvalidateManifest(ctx, flightNumber); err != nil {
			log.Printf("WARNING: invalidate manifest flight=%s: %v", flightNumber, err)
		}
	}

	event := domain.BookingEvent{
		ID:                 uuid.NewString(),
		Type:               eventType,
		FlightNumber:       flightNumber,
		Name:               p.Name,
		Email:              p.Email,
		SeatNumber:         p.SeatNumber,
		PreviousSeatNumber: previousSeat,
		OccurredAt:         s.now().UTC(),
	}
	if err := s.publish(ctx, event); err != nil {
		log.Printf("WARNING: failed to publish %s event %s for flight %s: %v", event.Type, event.ID, flightNumber, err)
	}
}

func (s *BookingService) publish(ctx context.Context, event domain.BookingEvent) error {
	if s.producer == nil || s.eventsTopic == "" {
		return nil
	}
	if err := s.producer.Publish(ctx, s.eventsTopic, event.FlightNumber, event); err != nil {
		return err
	}
	if s.notificationsTopic != "" {
		return s.producer.Publish(ctx, s.notificationsTopic, event.FlightNumber, event)
	}
	return nil
}

type field struct {
	name  string
	value string
}

func required(fields ...field) error {
	var missing []string
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing required fields: %s", domain.ErrValidation, strings.Join(missing, ", "))
	}
	return nil
}

var _ BookingUseCase = (*BookingService)(nil)
