package flights_service_api

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/Domenick1991/airport/config"
	"github.com/Domenick1991/airport/internal/api/interceptors"
	"github.com/Domenick1991/airport/internal/domain"
	"github.com/Domenick1991/airport/internal/service/flights"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

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

func startServer(t *testing.T, svc flights.FlightUseCase) *Client {
	t.Helper()
	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer(grpc.UnaryInterceptor(interceptors.Errors()))
	RegisterFlightsServiceServer(srv, NewServer(svc, config.PaginationConfig{PageSize: 5, MaxPageSize: 100}))
	go srv.Serve(lis)
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return NewClient(conn)
}

func flight() domain.Flight {
	return domain.Flight{
		ID: 1,
		Route: domain.Route{
			Departure: domain.Airport{ICAODesignator: "LFPG", ClosestBigCity: "Paris"},
			Arrival:   domain.Airport{ICAODesignator: "UKBB", ClosestBigCity: "Kyiv"},
			Distance:  550,
		},
		Airplane:      domain.Airplane{CallSign: "UR-PSA", Type: "A320", Rows: 1, SeatsInRow: 10, CruiseMachSpeed: 1},
		DepartureTime: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestServer_ListFlights(t *testing.T) {
	svc := &MockFlightUseCase{}
	client := startServer(t, svc)

	svc.On("List", mock.Anything, domain.FlightFilter{DepartureCity: "par"}, domain.PageRequest{Page: 1, PageSize: 5}).
		Return(domain.Page[domain.Flight]{Items: []domain.Flight{flight()}, Total: 1, Page: 1, PageSize: 5}, nil)

	resp, err := client.ListFlights(context.Background(), &ListFlightsRequest{Departure: "par"})

	require.NoError(t, err)
	assert.Equal(t, 1, resp.Count)
	require.Len(t, resp.Flights, 1)
	assert.Equal(t, "Paris (LFPG) - Kyiv (UKBB)", resp.Flights[0].Route)
	assert.Equal(t, "2025-01-01T01:00:00Z", resp.Flights[0].ArrivalTime)
	assert.Equal(t, 10, resp.Flights[0].Capacity)
	svc.AssertExpectations(t)
}

func TestServer_GetFlight(t *testing.T) {
	svc := &MockFlightUseCase{}
	client := startServer(t, svc)

	svc.On("GetDetail", mock.Anything, int64(1)).
		Return(&domain.FlightDetail{Flight: flight(), TakenSeats: []domain.Seat{{Row: 1, Seat: 1}, {Row: 1, Seat: 2}}}, nil)
	svc.On("GetDetail", mock.Anything, int64(2)).Return(nil, domain.ErrNotFound)

	resp, err := client.GetFlight(context.Background(), &GetFlightRequest{ID: 1})
	require.NoError(t, err)
	require.NotNil(t, resp.TicketsAvailable)
	assert.Equal(t, 8, *resp.TicketsAvailable)
	assert.Len(t, resp.TakenSeats, 2)

	_, err = client.GetFlight(context.Background(), &GetFlightRequest{ID: 2})
	assert.Equal(t, codes.NotFound, status.Code(err))
}
