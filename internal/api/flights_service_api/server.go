package flights_service_api

import (
	"context"
	"time"

	"github.com/Domenick1991/airport/config"
	"github.com/Domenick1991/airport/internal/domain"
	"github.com/Domenick1991/airport/internal/service/flights"
)

const ServiceName = "airport.v1.FlightsService"

type ListFlightsRequest struct {
	Departure string `json:"departure,omitempty"`
	Arrival   string `json:"arrival,omitempty"`
	Page      int    `json:"page,omitempty"`
	PageSize  int    `json:"page_size,omitempty"`
}

type ListFlightsResponse struct {
	Count   int       `json:"count"`
	Flights []*Flight `json:"flights"`
}

type GetFlightRequest struct {
	ID int64 `json:"id"`
}

type Flight struct {
	ID               int64         `json:"id"`
	Route            string        `json:"route"`
	Airplane         string        `json:"airplane"`
	DepartureTime    string        `json:"departure_time"`
	ArrivalTime      string        `json:"arrival_time"`
	Crew             []string      `json:"crew"`
	Capacity         int           `json:"capacity"`
	TakenSeats       []domain.Seat `json:"taken_seats,omitempty"`
	TicketsAvailable *int          `json:"tickets_available,omitempty"`
}

type FlightsServiceServer interface {
	ListFlights(context.Context, *ListFlightsRequest) (*ListFlightsResponse, error)
	GetFlight(context.Context, *GetFlightRequest) (*Flight, error)
}

// Server implements FlightsServiceServer on top of the flight use case.
type Server struct {
	flights    flights.FlightUseCase
	pagination config.PaginationConfig
}

func NewServer(flights flights.FlightUseCase, pagination config.PaginationConfig) *Server {
	return &Server{flights: flights, pagination: pagination}
}

func (s *Server) ListFlights(ctx context.Context, req *ListFlightsRequest) (*ListFlightsResponse, error) {
	page := domain.PageRequest{Page: max(req.Page, 1), PageSize: req.PageSize}
	if page.PageSize <= 0 {
		page.PageSize = s.pagination.PageSize
	}
	page.PageSize = min(page.PageSize, s.pagination.MaxPageSize)

	list, err := s.flights.List(ctx, domain.FlightFilter{DepartureCity: req.Departure, ArrivalCity: req.Arrival}, page)
	if err != nil {
		return nil, err
	}
	resp := &ListFlightsResponse{
		Count:   list.Total,
		Flights: make([]*Flight, 0, len(list.Items)),
	}
	for _, f := range list.Items {
		resp.Flights = append(resp.Flights, toFlight(f))
	}
	return resp, nil
}

func (s *Server) GetFlight(ctx context.Context, req *GetFlightRequest) (*Flight, error) {
	detail, err := s.flights.GetDetail(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	resp := toFlight(detail.Flight)
	resp.TakenSeats = detail.TakenSeats
	available := detail.TicketsAvailable()
	resp.TicketsAvailable = &available
	return resp, nil
}

func toFlight(f domain.Flight) *Flight {
	crew := make([]string, 0, len(f.Crew))
	for _, c := range f.Crew {
		crew = append(crew, c.FullName())
	}
	return &Flight{
		ID:            f.ID,
		Route:         f.Route.String(),
		Airplane:      f.Airplane.String(),
		DepartureTime: f.DepartureTime.UTC().Format(time.RFC3339),
		ArrivalTime:   f.EstimatedArrivalTime().UTC().Format(time.RFC3339),
		Crew:          crew,
		Capacity:      f.Airplane.Capacity(),
	}
}

var _ FlightsServiceServer = (*Server)(nil)
