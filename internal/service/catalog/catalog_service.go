package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/Domenick1991/airport/internal/domain"
	"github.com/Domenick1991/airport/internal/repository"
)

type CatalogUseCase interface {
	ListAirports(ctx context.Context) ([]domain.Airport, error)
	GetAirport(ctx context.Context, id int64) (*AirportDetail, error)
	CreateAirport(ctx context.Context, airport domain.Airport) (*domain.Airport, error)

	ListAirlines(ctx context.Context) ([]domain.Airline, error)
	GetAirline(ctx context.Context, id int64) (*AirlineDetail, error)
	CreateAirline(ctx context.Context, airline domain.Airline) (*domain.Airline, error)

	ListAirplanes(ctx context.Context) ([]domain.Airplane, error)
	GetAirplane(ctx context.Context, id int64) (*AirplaneDetail, error)
	CreateAirplane(ctx context.Context, airplane domain.Airplane) (*domain.Airplane, error)
	SetAirplaneImage(ctx context.Context, id int64, image string) error

	ListCrew(ctx context.Context) ([]domain.Crew, error)
	GetCrew(ctx context.Context, id int64) (*domain.Crew, error)
	CreateCrew(ctx context.Context, crew domain.Crew) (*domain.Crew, error)

	ListRoutes(ctx context.Context) ([]domain.Route, error)
	GetRoute(ctx context.Context, id int64) (*domain.Route, error)
	CreateRoute(ctx context.Context, input CreateRouteInput) (*domain.Route, error)
}

// WeatherProvider never fails: it returns a placeholder when the upstream
// service is unavailable.
type WeatherProvider interface {
	Current(ctx context.Context, city string) string
}

type AirportDetail struct {
	domain.Airport
	CurrentWeather string `json:"current_weather"`
}

type AirlineDetail struct {
	domain.Airline
	Airplanes []domain.Airplane `json:"airplanes"`
}

type AirplaneDetail struct {
	domain.Airplane
	Airline domain.Airline `json:"airline"`
}

type CreateRouteInput struct {
	DepartureID int64
	ArrivalID   int64
	Distance    int
}

type Repositories struct {
	Airports  repository.AirportRepository
	Airlines  repository.AirlineRepository
	Airplanes repository.AirplaneRepository
	Crew      repository.CrewRepository
	Routes    repository.RouteRepository
}

type CatalogService struct {
	repos   Repositories
	weather WeatherProvider
}

func NewCatalogService(repos Repositories, weather WeatherProvider) *CatalogService {
	return &CatalogService{repos: repos, weather: weather}
}

func required(fields domain.FieldErrors, name, value string, maxLen int) {
	value = strings.TrimSpace(value)
	switch {
	case value == "":
		fields[name] = "this field may not be blank"
	case len(value) > maxLen:
		fields[name] = fmt.Sprintf("ensure this field has no more than %d characters", maxLen)
	}
}

func (s *CatalogService) ListAirports(ctx context.Context) ([]domain.Airport, error) {
	return s.repos.Airports.List(ctx)
}

func (s *CatalogService) GetAirport(ctx context.Context, id int64) (*AirportDetail, error) {
	airport, err := s.repos.Airports.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	detail := &AirportDetail{Airport: *airport}
	if s.weather != nil {
		detail.CurrentWeather = s.weather.Current(ctx, airport.ClosestBigCity)
	}
	return detail, nil
}

func (s *CatalogService) CreateAirport(ctx context.Context, airport domain.Airport) (*domain.Airport, error) {
	fields := domain.FieldErrors{}
	required(fields, "icao_designator", airport.ICAODesignator, 4)
	required(fields, "closest_big_city", airport.ClosestBigCity, 63)
	if len(fields) > 0 {
		return nil, fields
	}
	airport.ICAODesignator = strings.ToUpper(strings.TrimSpace(airport.ICAODesignator))
	airport.ClosestBigCity = strings.TrimSpace(airport.ClosestBigCity)
	if err := s.repos.Airports.Create(ctx, &airport); err != nil {
		return nil, err
	}
	return &airport, nil
}

func (s *CatalogService) ListAirlines(ctx context.Context) ([]domain.Airline, error) {
	return s.repos.Airlines.List(ctx)
}

func (s *CatalogService) GetAirline(ctx context.Context, id int64) (*AirlineDetail, error) {
	airline, err := s.repos.Airlines.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	airplanes, err := s.repos.Airplanes.ListByAirline(ctx, id)
	if err != nil {
		return nil, err
	}
	return &AirlineDetail{Airline: *airline, Airplanes: airplanes}, nil
}

func (s *CatalogService) CreateAirline(ctx context.Context, airline domain.Airline) (*domain.Airline, error) {
	fields := domain.FieldErrors{}
	required(fields, "name", airline.Name, 63)
	if len(fields) > 0 {
		return nil, fields
	}
	airline.Name = strings.TrimSpace(airline.Name)
	if err := s.repos.Airlines.Create(ctx, &airline); err != nil {
		return nil, err
	}
	return &airline, nil
}

func (s *CatalogService) ListAirplanes(ctx context.Context) ([]domain.Airplane, error) {
	return s.repos.Airplanes.List(ctx)
}

func (s *CatalogService) GetAirplane(ctx context.Context, id int64) (*AirplaneDetail, error) {
	airplane, err := s.repos.Airplanes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	airline, err := s.repos.Airlines.GetByID(ctx, airplane.AirlineID)
	if err != nil {
		return nil, err
	}
	return &AirplaneDetail{Airplane: *airplane, Airline: *airline}, nil
}

func (s *CatalogService) CreateAirplane(ctx context.Context, airplane domain.Airplane) (*domain.Airplane, error) {
	fields := domain.FieldErrors{}
	required(fields, "call_sign", airplane.CallSign, 10)
	required(fields, "type", airplane.Type, 63)
	if airplane.Rows <= 0 {
		fields["rows"] = "ensure this value is greater than 0"
	}
	if airplane.SeatsInRow <= 0 {
		fields["seats_in_row"] = "ensure this value is greater than 0"
	}
	if airplane.CruiseMachSpeed <= 0 {
		fields["cruise_mach_speed"] = "ensure this value is greater than 0"
	}
	if airplane.AirlineID <= 0 {
		fields["airline"] = "this field is required"
	}
	if len(fields) > 0 {
		return nil, fields
	}
	airplane.Image = ""
	if err := s.repos.Airplanes.Create(ctx, &airplane); err != nil {
		return nil, err
	}
	return &airplane, nil
}

func (s *CatalogService) SetAirplaneImage(ctx context.Context, id int64, image string) error {
	return s.repos.Airplanes.SetImage(ctx, id, image)
}

func (s *CatalogService) ListCrew(ctx context.Context) ([]domain.Crew, error) {
	return s.repos.Crew.List(ctx)
}

func (s *CatalogService) GetCrew(ctx context.Context, id int64) (*domain.Crew, error) {
	return s.repos.Crew.GetByID(ctx, id)
}

func (s *CatalogService) CreateCrew(ctx context.Context, crew domain.Crew) (*domain.Crew, error) {
	fields := domain.FieldErrors{}
	required(fields, "first_name", crew.FirstName, 63)
	required(fields, "last_name", crew.LastName, 63)
	required(fields, "license_number", crew.LicenseNumber, 8)
	if len(fields) > 0 {
		return nil, fields
	}
	if err := s.repos.Crew.Create(ctx, &crew); err != nil {
		return nil, err
	}
	return &crew, nil
}

func (s *CatalogService) ListRoutes(ctx context.Context) ([]domain.Route, error) {
	return s.repos.Routes.List(ctx)
}

func (s *CatalogService) GetRoute(ctx context.Context, id int64) (*domain.Route, error) {
	return s.repos.Routes.GetByID(ctx, id)
}

func (s *CatalogService) CreateRoute(ctx context.Context, input CreateRouteInput) (*domain.Route, error) {
	fields := domain.FieldErrors{}
	if input.DepartureID <= 0 {
		fields["departure"] = "this field is required"
	}
	if input.ArrivalID <= 0 {
		fields["arrival"] = "this field is required"
	}
	if input.DepartureID > 0 && input.DepartureID == input.ArrivalID {
		fields["arrival"] = "arrival airport must differ from departure airport"
	}
	if input.Distance <= 0 {
		fields["distance"] = "ensure this value is greater than 0"
	}
	if len(fields) > 0 {
		return nil, fields
	}

	route := &domain.Route{
		Departure: domain.Airport{ID: input.DepartureID},
		Arrival:   domain.Airport{ID: input.ArrivalID},
		Distance:  input.Distance,
	}
	if err := s.repos.Routes.Create(ctx, route); err != nil {
		return nil, err
	}
	return s.repos.Routes.GetByID(ctx, route.ID)
}

var _ CatalogUseCase = (*CatalogService)(nil)
