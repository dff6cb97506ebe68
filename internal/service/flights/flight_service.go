package flights

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/Domenick1991/seatbook/internal/domain"
	"github.com/Domenick1991/seatbook/internal/repository"
)

type FlightUseCase interface {
	List(ctx context.Context) ([]domain.FlightSummary, error)
	Passengers(ctx context.Context, flightNumber string) ([]domain.ManifestEntry, error)
}

type ManifestCache interface {
	GetManifest(ctx context.Context, flightNumber string, generation uint64) ([]domain.ManifestEntry, error)
	SetManifest(ctx context.Context, flightNumber string, generation uint64, manifest []domain.ManifestEntry) error
}

type FlightService struct {
	store repository.BookingStore
	cache ManifestCache
}

// cache may be nil.
func NewFlightService(store repository.BookingStore, cache ManifestCache) *FlightService {
	return &FlightService{store: store, cache: cache}
}

func (s *FlightService) List(ctx context.Context) ([]domain.FlightSummary, error) {
	return s.store.Flights(), nil
}

// Passengers reads through the manifest cache. Entries are keyed by the
// flight generation, so a manifest cached after a concurrent mutation sits
// under a stale generation and is never read. Unknown flights are never
// cached.
func (s *FlightService) Passengers(ctx context.Context, flightNumber string) ([]domain.ManifestEntry, error) {
	if strings.TrimSpace(flightNumber) == "" {
		return nil, fmt.Errorf("%w: missing required fields: flightNumber", domain.ErrValidation)
	}

	if s.cache != nil {
		generation, err := s.store.Generation(flightNumber)
		if err != nil {
			return nil, fmt.Errorf("list passengers on flight %s: %w", flightNumber, err)
		}
		if cached, err := s.cache.GetManifest(ctx, flightNumber, generation); err == nil && cached != nil {
			return cached, nil
		} else if err != nil {
			log.Printf("WARNING: read manifest cache flight=%s: %v", flightNumber, err)
		}
	}

	manifest, generation, err := s.store.ListPassengers(flightNumber)
	if err != nil {
		return nil, fmt.Errorf("list passengers on flight %s: %w", flightNumber, err)
	}
	if s.cache != nil {
		if err := s.cache.SetManifest(ctx, flightNumber, generation, manifest); err != nil {
			log.Printf("WARNING: write manifest cache flight=%s: %v", flightNumber, err)
		}
	}
	return manifest, nil
}

var _ FlightUseCase = (*FlightService)(nil)
