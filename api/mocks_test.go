package api

import (
	"context"

	"github.com/Domenick1991/airport/internal/auth"
	"github.com/Domenick1991/airport/internal/domain"
	"github.com/Domenick1991/airport/internal/service/booking"
	"github.com/Domenick1991/airport/internal/service/catalog"
	"github.com/Domenick1991/airport/internal/service/flights"
	"github.com/stretchr/testify/mock"
)

// MockFlightUseCase is a mock implementation of flights.FlightUseCase
type MockFlightUseCase struct {
	mock.Mock
}

func (m *MockFlightUseCase) List(ctx context.Context, filter domain.FlightFilter, page domain.PageRequest) (domain.Page[domain.Flight], error) {
	args := m.Called(ctx, filter, page)
	return args.Get(0).(domain.Page[domain.Flight]), args.Error(1)
}

func (m *MockFlightUseCase) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flight), args.Error(1)
}

func (m *MockFlightUseCase) GetDetail(ctx context.Context, id int64) (*domain.FlightDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FlightDetail), args.Error(1)
}

func (m *MockFlightUseCase) Create(ctx context.Context, input flights.CreateFlightInput) (*domain.Flight, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flight), args.Error(1)
}

// MockBookingUseCase is a mock implementation of booking.BookingUseCase
type MockBookingUseCase struct {
	mock.Mock
}

func (m *MockBookingUseCase) ValidateTicket(ctx context.Context, req domain.TicketRequest) error {
	return m.Called(ctx, req).Error(0)
}

func (m *MockBookingUseCase) CreateOrder(ctx context.Context, input booking.CreateOrderInput) (*domain.Order, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockBookingUseCase) ListOrders(ctx context.Context, userID int64, page domain.PageRequest) (domain.Page[domain.Order], error) {
	args := m.Called(ctx, userID, page)
	return args.Get(0).(domain.Page[domain.Order]), args.Error(1)
}

func (m *MockBookingUseCase) GetOrder(ctx context.Context, userID, orderID int64) (*domain.Order, error) {
	args := m.Called(ctx, userID, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

type MockAuthUseCase struct {
	mock.Mock
}

func (m *MockAuthUseCase) Register(ctx context.Context, input auth.RegisterInput) (*domain.User, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockAuthUseCase) Login(ctx context.Context, email, password string) (*auth.Session, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.Session), args.Error(1)
}

type MockCatalogUseCase struct {
	mock.Mock
}

func (m *MockCatalogUseCase) ListAirports(ctx context.Context) ([]domain.Airport, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Airport), args.Error(1)
}

func (m *MockCatalogUseCase) GetAirport(ctx context.Context, id int64) (*catalog.AirportDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.AirportDetail), args.Error(1)
}

func (m *MockCatalogUseCase) CreateAirport(ctx context.Context, airport domain.Airport) (*domain.Airport, error) {
	args := m.Called(ctx, airport)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Airport), args.Error(1)
}

func (m *MockCatalogUseCase) ListAirlines(ctx context.Context) ([]domain.Airline, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Airline), args.Error(1)
}

func (m *MockCatalogUseCase) GetAirline(ctx context.Context, id int64) (*catalog.AirlineDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.AirlineDetail), args.Error(1)
}

func (m *MockCatalogUseCase) CreateAirline(ctx context.Context, airline domain.Airline) (*domain.Airline, error) {
	args := m.Called(ctx, airline)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Airline), args.Error(1)
}

func (m *MockCatalogUseCase) ListAirplanes(ctx context.Context) ([]domain.Airplane, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Airplane), args.Error(1)
}

func (m *MockCatalogUseCase) GetAirplane(ctx context.Context, id int64) (*catalog.AirplaneDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.AirplaneDetail), args.Error(1)
}

func (m *MockCatalogUseCase) CreateAirplane(ctx context.Context, airplane domain.Airplane) (*domain.Airplane, error) {
	args := m.Called(ctx, airplane)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Airplane), args.Error(1)
}

func (m *MockCatalogUseCase) SetAirplaneImage(ctx context.Context, id int64, image string) error {
	return m.Called(ctx, id, image).Error(0)
}

func (m *MockCatalogUseCase) ListCrew(ctx context.Context) ([]domain.Crew, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Crew), args.Error(1)
}

func (m *MockCatalogUseCase) GetCrew(ctx context.Context, id int64) (*domain.Crew, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Crew), args.Error(1)
}

func (m *MockCatalogUseCase) CreateCrew(ctx context.Context, crew domain.Crew) (*domain.Crew, error) {
	args := m.Called(ctx, crew)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Crew), args.Error(1)
}

func (m *MockCatalogUseCase) ListRoutes(ctx context.Context) ([]domain.Route, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Route), args.Error(1)
}

func (m *MockCatalogUseCase) GetRoute(ctx context.Context, id int64) (*domain.Route, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Route), args.Error(1)
}

func (m *MockCatalogUseCase) CreateRoute(ctx context.Context, input catalog.CreateRouteInput) (*domain.Route, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Route), args.Error(1)
}
