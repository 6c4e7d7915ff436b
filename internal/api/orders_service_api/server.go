package orders_service_api

import (
	"context"
	"time"

	"github.com/Domenick1991/airport/config"
	"github.com/Domenick1991/airport/internal/auth"
	"github.com/Domenick1991/airport/internal/domain"
	"github.com/Domenick1991/airport/internal/service/booking"
)

const ServiceName = "airport.v1.OrdersService"

type TicketRequest struct {
	Flight int64 `json:"flight"`
	Row    int   `json:"row"`
	Seat   int   `json:"seat"`
}

type CreateOrderRequest struct {
	Tickets []TicketRequest `json:"tickets"`
}

type ListOrdersRequest struct {
	Page     int `json:"page,omitempty"`
	PageSize int `json:"page_size,omitempty"`
}

type ListOrdersResponse struct {
	Count  int      `json:"count"`
	Orders []*Order `json:"orders"`
}

type GetOrderRequest struct {
	ID int64 `json:"id"`
}

type Ticket struct {
	ID            int64  `json:"id"`
	Flight        int64  `json:"flight"`
	Row           int    `json:"row"`
	Seat          int    `json:"seat"`
	Route         string `json:"route,omitempty"`
	DepartureTime string `json:"departure_time,omitempty"`
}

type Order struct {
	ID        int64     `json:"id"`
	CreatedAt string    `json:"created_at"`
	Tickets   []*Ticket `json:"tickets"`
}

type OrdersServiceServer interface {
	CreateOrder(context.Context, *CreateOrderRequest) (*Order, error)
	ListOrders(context.Context, *ListOrdersRequest) (*ListOrdersResponse, error)
	GetOrder(context.Context, *GetOrderRequest) (*Order, error)
}

// Server implements OrdersServiceServer. The caller is taken from the
// principal placed in the context by the auth interceptor.
type Server struct {
	bookings   booking.BookingUseCase
	pagination config.PaginationConfig
}

func NewServer(bookings booking.BookingUseCase, pagination config.PaginationConfig) *Server {
	return &Server{bookings: bookings, pagination: pagination}
}

func (s *Server) CreateOrder(ctx context.Context, req *CreateOrderRequest) (*Order, error) {
	principal, ok := auth.PrincipalFrom(ctx)
	if !ok {
		return nil, auth.ErrUnauthorized
	}

	tickets := make([]domain.TicketRequest, 0, len(req.Tickets))
	for i, t := range req.Tickets {
		tr := domain.TicketRequest{FlightID: t.Flight, Seat: domain.Seat{Row: t.Row, Seat: t.Seat}}
		if err := s.bookings.ValidateTicket(ctx, tr); err != nil {
			return nil, &domain.TicketError{Index: i, Err: err}
		}
		tickets = append(tickets, tr)
	}

	order, err := s.bookings.CreateOrder(ctx, booking.CreateOrderInput{
		UserID:  principal.UserID,
		Email:   principal.Email,
		Tickets: tickets,
	})
	if err != nil {
		return nil, err
	}
	return toOrder(order), nil
}

func (s *Server) ListOrders(ctx context.Context, req *ListOrdersRequest) (*ListOrdersResponse, error) {
	principal, ok := auth.PrincipalFrom(ctx)
	if !ok {
		return nil, auth.ErrUnauthorized
	}
	page := domain.PageRequest{Page: max(req.Page, 1), PageSize: req.PageSize}
	if page.PageSize <= 0 {
		page.PageSize = s.pagination.PageSize
	}
	page.PageSize = min(page.PageSize, s.pagination.MaxPageSize)

	list, err := s.bookings.ListOrders(ctx, principal.UserID, page)
	if err != nil {
		return nil, err
	}
	resp := &ListOrdersResponse{Count: list.Total, Orders: make([]*Order, 0, len(list.Items))}
	for i := range list.Items {
		resp.Orders = append(resp.Orders, toOrder(&list.Items[i]))
	}
	return resp, nil
}

func (s *Server) GetOrder(ctx context.Context, req *GetOrderRequest) (*Order, error) {
	principal, ok := auth.PrincipalFrom(ctx)
	if !ok {
		return nil, auth.ErrUnauthorized
	}
	order, err := s.bookings.GetOrder(ctx, principal.UserID, req.ID)
	if err != nil {
		return nil, err
	}
	return toOrder(order), nil
}

func toOrder(o *domain.Order) *Order {
	resp := &Order{
		ID:        o.ID,
		CreatedAt: o.CreatedAt.UTC().Format(time.RFC3339),
		Tickets:   make([]*Ticket, 0, len(o.Tickets)),
	}
	for _, t := range o.Tickets {
		ticket := &Ticket{ID: t.ID, Flight: t.FlightID, Row: t.Row, Seat: t.Seat.Seat, Route: t.Route}
		if !t.DepartureTime.IsZero() {
			ticket.DepartureTime = t.DepartureTime.UTC().Format(time.RFC3339)
		}
		resp.Tickets = append(resp.Tickets, ticket)
	}
	return resp
}

var _ OrdersServiceServer = (*Server)(nil)
