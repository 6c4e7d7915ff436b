package flights

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/Domenick1991/airport/internal/domain"
	"github.com/Domenick1991/airport/internal/repository"
)

type FlightUseCase interface {
	List(ctx context.Context, filter domain.FlightFilter, page domain.PageRequest) (domain.Page[domain.Flight], error)
	GetByID(ctx context.Context, id int64) (*domain.Flight, error)
	GetDetail(ctx context.Context, id int64) (*domain.FlightDetail, error)
	Create(ctx context.Context, input CreateFlightInput) (*domain.Flight, error)
}

// FlightCache stores rendered list pages. A nil page with a nil error is a
// cache miss.
type FlightCache interface {
	GetFlightPage(ctx context.Context, key string) (*domain.Page[domain.Flight], error)
	SetFlightPage(ctx context.Context, key string, page domain.Page[domain.Flight]) error
	InvalidateFlights(ctx context.Context) error
}

type FlightService struct {
	repo  repository.FlightRepository
	cache FlightCache
}

type CreateFlightInput struct {
	RouteID       int64
	AirplaneID    int64
	DepartureTime time.Time
	CrewIDs       []int64
}

func NewFlightService(repo repository.FlightRepository, cache FlightCache) *FlightService {
	return &FlightService{repo: repo, cache: cache}
}

func pageKey(filter domain.FlightFilter, page domain.PageRequest) string {
	return fmt.Sprintf("dep=%s|arr=%s|page=%d|size=%d",
		strings.ToLower(filter.DepartureCity), strings.ToLower(filter.ArrivalCity), page.Page, page.PageSize)
}

func (s *FlightService) List(ctx context.Context, filter domain.FlightFilter, page domain.PageRequest) (domain.Page[domain.Flight], error) {
	key := pageKey(filter, page)
	if s.cache != nil {
		if cached, err := s.cache.GetFlightPage(ctx, key); err == nil && cached != nil {
			return *cached, nil
		}
	}

	flights, total, err := s.repo.List(ctx, filter, page.Page, page.PageSize)
	if err != nil {
		return domain.Page[domain.Flight]{}, err
	}
	result := domain.Page[domain.Flight]{Items: flights, Total: total, Page: page.Page, PageSize: page.PageSize}

	if s.cache != nil {
		if err := s.cache.SetFlightPage(ctx, key, result); err != nil {
			log.Printf("flight cache set failed: key=%s err=%v", key, err)
		}
	}
	return result, nil
}

func (s *FlightService) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	return s.repo.GetByID(ctx, id)
}

// GetDetail is never cached: taken seats change with every order.
func (s *FlightService) GetDetail(ctx context.Context, id int64) (*domain.FlightDetail, error) {
	flight, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	taken, err := s.repo.TakenSeats(ctx, id)
	if err != nil {
		return nil, err
	}
	return &domain.FlightDetail{Flight: *flight, TakenSeats: taken}, nil
}

func (s *FlightService) Create(ctx context.Context, input CreateFlightInput) (*domain.Flight, error) {
	fields := domain.FieldErrors{}
	if input.RouteID <= 0 {
		fields["route"] = "this field is required"
	}
	if input.AirplaneID <= 0 {
		fields["airplane"] = "this field is required"
	}
	if input.DepartureTime.IsZero() {
		fields["departure_time"] = "this field is required"
	}
	if len(fields) > 0 {
		return nil, fields
	}

	crewIDs := make([]int64, 0, len(input.CrewIDs))
	seen := make(map[int64]bool, len(input.CrewIDs))
	for _, id := range input.CrewIDs {
		if !seen[id] {
			seen[id] = true
			crewIDs = append(crewIDs, id)
		}
	}

	flight := &domain.Flight{
		Route:         domain.Route{ID: input.RouteID},
		Airplane:      domain.Airplane{ID: input.AirplaneID},
		DepartureTime: input.DepartureTime.UTC(),
	}
	if err := s.repo.Create(ctx, flight, crewIDs); err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.InvalidateFlights(ctx); err != nil {
			log.Printf("flight cache invalidation failed: %v", err)
		}
	}
	return s.repo.GetByID(ctx, flight.ID)
}

var _ FlightUseCase = (*FlightService)(nil)
