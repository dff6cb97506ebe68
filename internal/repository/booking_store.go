package repository

import (
	"sync"

	"github.com/Domenick1991/seatbook/internal/domain"
)

const DefaultSeatCapacity = 10

type BookingStore interface {
	Book(flightNumber string, passenger domain.Passenger) (domain.Passenger, error)
	FindByEmail(email string) (string, domain.Passenger, error)
	ListPassengers(flightNumber string) ([]domain.ManifestEntry, uint64, error)
	Generation(flightNumber string) (uint64, error)
	Cancel(flightNumber, email string) (domain.Passenger, error)
	ModifySeat(flightNumber, email string, seatNumber int) (updated domain.Passenger, previousSeat int, err error)
	Flights() []domain.FlightSummary
}

// generation is bumped by every committed Book, Cancel and ModifySeat on
// the flight.
type flightRecord struct {
	occupied   map[int]struct{}
	passengers []*domain.Passenger
	generation uint64
}

// MemoryBookingStore keeps every flight in process memory. A single mutex
// serialises operations because email lookups scan all flights.
type MemoryBookingStore struct {
	mu       sync.Mutex
	capacity int
	flights  map[string]*flightRecord
	order    []string
}

func NewMemoryBookingStore(capacity int) *MemoryBookingStore {
	if capacity <= 0 {
		capacity = DefaultSeatCapacity
	}
	return &MemoryBookingStore{
		capacity: capacity,
		flights:  make(map[string]*flightRecord),
	}
}

func (s *MemoryBookingStore) Capacity() int {
	return s.capacity
}

// Book assigns the lowest free seat in [1, capacity] and appends the
// passenger. The seat number on the input is ignored.
func (s *MemoryBookingStore) Book(flightNumber string, passenger domain.Passenger) (domain.Passenger, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	flight, ok := s.flights[flightNumber]
	if !ok {
		flight = &flightRecord{occupied: make(map[int]struct{})}
	}

	seat := 0
	for i := 1; i <= s.capacity; i++ {
		if _, taken := flight.occupied[i]; !taken {
			seat = i
			break
		}
	}
	if seat == 0 {
		return domain.Passenger{}, domain.ErrNoSeatsAvailable
	}

	if !ok {
		s.flights[flightNumber] = flight
		s.order = append(s.order, flightNumber)
	}

	passenger.SeatNumber = seat
	flight.occupied[seat] = struct{}{}
	record := passenger
	flight.passengers = append(flight.passengers, &record)
	flight.generation++
	return passenger, nil
}

// FindByEmail returns the first passenger with the given email, scanning
// flights in registration order and passengers in booking order.
func (s *MemoryBookingStore) FindByEmail(email string) (string, domain.Passenger, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, flightNumber := range s.order {
		if i := indexByEmail(s.flights[flightNumber], email); i >= 0 {
			return flightNumber, *s.flights[flightNumber].passengers[i], nil
		}
	}
	return "", domain.Passenger{}, domain.ErrTicketNotFound
}

// ListPassengers returns the manifest together with the generation it was
// read at.
func (s *MemoryBookingStore) ListPassengers(flightNumber string) ([]domain.ManifestEntry, uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	flight, ok := s.flights[flightNumber]
	if !ok {
		return nil, 0, domain.ErrFlightNotFound
	}

	manifest := make([]domain.ManifestEntry, 0, len(flight.passengers))
	for _, p := range flight.passengers {
		manifest = append(manifest, domain.ManifestEntry{Name: p.Name, SeatNumber: p.SeatNumber})
	}
	return manifest, flight.generation, nil
}

func (s *MemoryBookingStore) Generation(flightNumber string) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	flight, ok := s.flights[flightNumber]
	if !ok {
		return 0, domain.ErrFlightNotFound
	}
	return flight.generation, nil
}

// Cancel removes the first passenger on the flight with the given email
// and frees the seat.
func (s *MemoryBookingStore) Cancel(flightNumber, email string) (domain.Passenger, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	flight, ok := s.flights[flightNumber]
	if !ok {
		return domain.Passenger{}, domain.ErrFlightNotFound
	}
	i := indexByEmail(flight, email)
	if i < 0 {
		return domain.Passenger{}, domain.ErrPassengerNotFound
	}

	cancelled := *flight.passengers[i]
	delete(flight.occupied, cancelled.SeatNumber)
	flight.passengers = append(flight.passengers[:i], flight.passengers[i+1:]...)
	flight.generation++
	return cancelled, nil
}

// ModifySeat moves the first passenger with the given email to seatNumber.
// The new seat is not checked against the flight capacity; only occupancy
// is enforced.
func (s *MemoryBookingStore) ModifySeat(flightNumber, email string, seatNumber int) (domain.Passenger, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	flight, ok := s.flights[flightNumber]
	if !ok {
		return domain.Passenger{}, 0, domain.ErrFlightNotFound
	}
	i := indexByEmail(flight, email)
	if i < 0 {
		return domain.Passenger{}, 0, domain.ErrPassengerNotFound
	}
	if _, taken := flight.occupied[seatNumber]; taken {
		return domain.Passenger{}, 0, domain.ErrSeatTaken
	}

	passenger := flight.passengers[i]
	previous := passenger.SeatNumber
	delete(flight.occupied, previous)
	flight.occupied[seatNumber] = struct{}{}
	passenger.SeatNumber = seatNumber
	flight.generation++
	return *passenger, previous, nil
}

func (s *MemoryBookingStore) Flights() []domain.FlightSummary {
	s.mu.Lock()
	defer s.mu.Unlock()

	summaries := make([]domain.FlightSummary, 0, len(s.order))
	for _, flightNumber := range s.order {
		occupied := len(s.flights[flightNumber].occupied)
		available := s.capacity - occupied
		if available < 0 {
			available = 0
		}
		summaries = append(summaries, domain.FlightSummary{
			FlightNumber: flightNumber,
			Capacity:     s.capacity,
			Occupied:     occupied,
			Available:    available,
		})
	}
	return summaries
}

func indexByEmail(flight *flightRecord, email string) int {
	for i, p := range flight.passengers {
		if p.Email == email {
			return i
		}
	}
	return -1
}

var _ BookingStore = (*MemoryBookingStore)(nil)
