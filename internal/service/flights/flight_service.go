package flights

import (
	"context"
	"time"

	"github.com/Domenick1991/skybook/internal/domain"
	"github.com/Domenick1991/skybook/internal/repository"
)

type FlightUseCase interface {
	Search(ctx context.Context, source, destination string, departureDate time.Time) ([]domain.Flight, error)
	Selection(ctx context.Context, source, destination string) (map[string][]domain.Flight, error)
	GetByID(ctx context.Context, id int64) (*domain.Flight, error)
}

// Cache holds recent search results keyed by route and date.
type Cache interface {
	GetFlightSearch(ctx context.Context, source, destination, date string) ([]domain.Flight, error)
	SetFlightSearch(ctx context.Context, source, destination, date string, flights []domain.Flight) error
}

type FlightService struct {
	repo  repository.FlightRepository
	cache Cache
}

func NewFlightService(repo repository.FlightRepository, cache Cache) *FlightService {
	return &FlightService{repo: repo, cache: cache}
}

const dateLayout = "2006-01-02"

// Search runs the equality-filtered flight query, consulting the cache first.
func (s *FlightService) Search(ctx context.Context, source, destination string, departureDate time.Time) ([]domain.Flight, error) {
	date := departureDate.Format(dateLayout)
	if s.cache != nil {
		if cached, err := s.cache.GetFlightSearch(ctx, source, destination, date); err == nil && cached != nil {
			return cached, nil
		}
	}

	flights, err := s.repo.Search(ctx, source, destination, departureDate)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.SetFlightSearch(ctx, source, destination, date, flights)
	}
	return flights, nil
}

// Selection groups the route's flights by flight number for multi-leg display.
func (s *FlightService) Selection(ctx context.Context, source, destination string) (map[string][]domain.Flight, error) {
	flights, err := s.repo.SearchByRoute(ctx, source, destination)
	if err != nil {
		return nil, err
	}

	grouped := make(map[string][]domain.Flight)
	for _, f := range flights {
		grouped[f.FlightNumber] = append(grouped[f.FlightNumber], f)
	}
	return grouped, nil
}

func (s *FlightService) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	return s.repo.GetByID(ctx, id)
}

var _ FlightUseCase = (*FlightService)(nil)
