package orders_service_api

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/Domenick1991/airport/config"
	"github.com/Domenick1991/airport/internal/api/interceptors"
	"github.com/Domenick1991/airport/internal/auth"
	"github.com/Domenick1991/airport/internal/domain"
	"github.com/Domenick1991/airport/internal/service/booking"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

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

var tokens = auth.NewTokens("secret", time.Hour)

func startServer(t *testing.T, svc booking.BookingUseCase) *Client {
	t.Helper()
	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(interceptors.Errors(), interceptors.Auth(tokens)))
	RegisterOrdersServiceServer(srv, NewServer(svc, config.PaginationConfig{PageSize: 5, MaxPageSize: 100}))
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

func authed(t *testing.T, userID int64) context.Context {
	t.Helper()
	token, _, err := tokens.Issue(&domain.User{ID: userID, Email: "jane@example.com"})
	require.NoError(t, err)
	return metadata.AppendToOutgoingContext(context.Background(), "authorization", "Bearer "+token)
}

func TestServer_CreateOrder(t *testing.T) {
	svc := &MockBookingUseCase{}
	client := startServer(t, svc)

	req := domain.TicketRequest{FlightID: 3, Seat: domain.Seat{Row: 1, Seat: 10}}
	svc.On("ValidateTicket", mock.Anything, req).Return(nil)
	svc.On("CreateOrder", mock.Anything, booking.CreateOrderInput{UserID: 7, Email: "jane@example.com", Tickets: []domain.TicketRequest{req}}).
		Return(&domain.Order{ID: 1, UserID: 7, Tickets: []domain.Ticket{{ID: 5, FlightID: 3, Seat: req.Seat}}}, nil)

	order, err := client.CreateOrder(authed(t, 7), &CreateOrderRequest{Tickets: []TicketRequest{{Flight: 3, Row: 1, Seat: 10}}})

	require.NoError(t, err)
	assert.Equal(t, int64(1), order.ID)
	require.Len(t, order.Tickets, 1)
	assert.Equal(t, 10, order.Tickets[0].Seat)
	svc.AssertExpectations(t)
}

func TestServer_CreateOrder_Errors(t *testing.T) {
	svc := &MockBookingUseCase{}
	client := startServer(t, svc)

	outOfRange := domain.TicketRequest{FlightID: 3, Seat: domain.Seat{Row: 1, Seat: 11}}
	taken := domain.TicketRequest{FlightID: 3, Seat: domain.Seat{Row: 1, Seat: 10}}
	svc.On("ValidateTicket", mock.Anything, outOfRange).Return(&domain.OutOfRangeError{Field: "seat", Bound: "seats_in_row", Max: 10, Value: 11})
	svc.On("ValidateTicket", mock.Anything, taken).Return(nil)
	svc.On("CreateOrder", mock.Anything, mock.Anything).
		Return(nil, &domain.TicketError{Index: 0, Err: &domain.DuplicateSeatError{FlightID: 3, Seat: taken.Seat}})

	_, err := client.CreateOrder(authed(t, 7), &CreateOrderRequest{Tickets: []TicketRequest{{Flight: 3, Row: 1, Seat: 11}}})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = client.CreateOrder(authed(t, 7), &CreateOrderRequest{Tickets: []TicketRequest{{Flight: 3, Row: 1, Seat: 10}}})
	assert.Equal(t, codes.AlreadyExists, status.Code(err))

	_, err = client.CreateOrder(context.Background(), &CreateOrderRequest{})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
}

func TestServer_ListAndGet(t *testing.T) {
	svc := &MockBookingUseCase{}
	client := startServer(t, svc)

	svc.On("ListOrders", mock.Anything, int64(7), domain.PageRequest{Page: 1, PageSize: 100}).
		Return(domain.Page[domain.Order]{Items: []domain.Order{{ID: 2}, {ID: 1}}, Total: 2, Page: 1, PageSize: 100}, nil)
	svc.On("GetOrder", mock.Anything, int64(7), int64(99)).Return(nil, domain.ErrNotFound)

	list, err := client.ListOrders(authed(t, 7), &ListOrdersRequest{PageSize: 1000})
	require.NoError(t, err)
	assert.Equal(t, 2, list.Count)
	assert.Equal(t, int64(2), list.Orders[0].ID)

	_, err = client.GetOrder(authed(t, 7), &GetOrderRequest{ID: 99})
	assert.Equal(t, codes.NotFound, status.Code(err))
	svc.AssertExpectations(t)
}
