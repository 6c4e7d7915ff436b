package booking

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/Domenick1991/airport/internal/domain"
	"github.com/Domenick1991/airport/internal/kafka"
	"github.com/Domenick1991/airport/internal/repository"
	"github.com/google/uuid"
)

type BookingUseCase interface {
	ValidateTicket(ctx context.Context, req domain.TicketRequest) error
	CreateOrder(ctx context.Context, input CreateOrderInput) (*domain.Order, error)
	ListOrders(ctx context.Context, userID int64, page domain.PageRequest) (domain.Page[domain.Order], error)
	GetOrder(ctx context.Context, userID, orderID int64) (*domain.Order, error)
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

// FlightReader loads flights for the single ticket validation path.
type FlightReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Flight, error)
}

type BookingService struct {
	store              repository.BookingStore
	orders             repository.OrderRepository
	flights            FlightReader
	validator          *SeatValidator
	producer           Producer
	ordersTopic        string
	notificationsTopic string
	txTimeout          time.Duration
}

type CreateOrderInput struct {
	UserID  int64
	Email   string
	Tickets []domain.TicketRequest
}

type BookingServiceOption func(*BookingService)

func WithProducer(producer Producer, ordersTopic, notificationsTopic string) BookingServiceOption {
	return func(s *BookingService) {
		s.producer = producer
		s.ordersTopic = ordersTopic
		s.notificationsTopic = notificationsTopic
	}
}

// WithTransactionTimeout bounds the whole booking transaction.
func WithTransactionTimeout(d time.Duration) BookingServiceOption {
	return func(s *BookingService) {
		s.txTimeout = d
	}
}

func NewBookingService(
	store repository.BookingStore,
	orders repository.OrderRepository,
	flights FlightReader,
	validator *SeatValidator,
	opts ...BookingServiceOption,
) *BookingService {
	service := &BookingService{
		store:     store,
		orders:    orders,
		flights:   flights,
		validator: validator,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// ValidateTicket checks one requested ticket against the current flight
// state outside of any transaction.
func (s *BookingService) ValidateTicket(ctx context.Context, req domain.TicketRequest) error {
	flight, err := s.flights.GetByID(ctx, req.FlightID)
	if err != nil {
		return err
	}
	return s.validator.Validate(req.Seat, flight.Airplane.Layout(), flight.DepartureTime)
}

// CreateOrder creates the order and all of its tickets in one transaction.
// Tickets are validated and inserted in request order; the first failure
// rolls back everything.
func (s *BookingService) CreateOrder(ctx context.Context, input CreateOrderInput) (*domain.Order, error) {
	if input.UserID <= 0 {
		return nil, fmt.Errorf("%w: user is required", domain.ErrInvalidInput)
	}
	if len(input.Tickets) == 0 {
		return nil, domain.ErrEmptyOrder
	}

	if s.txTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.txTimeout)
		defer cancel()
	}

	var created *domain.Order
	err := s.store.InTx(ctx, func(tx repository.BookingTx) error {
		order := &domain.Order{UserID: input.UserID}
		if err := tx.CreateOrder(ctx, order); err != nil {
			return fmt.Errorf("create order: %w", err)
		}

		for i, req := range input.Tickets {
			flight, err := tx.FlightForBooking(ctx, req.FlightID)
			if err != nil {
				return &domain.TicketError{Index: i, Err: err}
			}
			if err := s.validator.Validate(req.Seat, flight.Airplane.Layout(), flight.DepartureTime); err != nil {
				return &domain.TicketError{Index: i, Err: err}
			}

			ticket := domain.Ticket{OrderID: order.ID, FlightID: req.FlightID, Seat: req.Seat}
			if err := tx.CreateTicket(ctx, &ticket); err != nil {
				return &domain.TicketError{Index: i, Err: err}
			}
			order.Tickets = append(order.Tickets, ticket)
		}

		created = order
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("order created: order_id=%d user_id=%d tickets=%d", created.ID, created.UserID, len(created.Tickets))
	if err := s.publish(ctx, input.Email, created); err != nil {
		log.Printf("WARNING: failed to publish %s event for order %d: %v", kafka.EventOrderCreated, created.ID, err)
	}
	return created, nil
}

func (s *BookingService) ListOrders(ctx context.Context, userID int64, page domain.PageRequest) (domain.Page[domain.Order], error) {
	orders, total, err := s.orders.ListByUser(ctx, userID, page.Page, page.PageSize)
	if err != nil {
		return domain.Page[domain.Order]{}, err
	}
	return domain.Page[domain.Order]{Items: orders, Total: total, Page: page.Page, PageSize: page.PageSize}, nil
}

func (s *BookingService) GetOrder(ctx context.Context, userID, orderID int64) (*domain.Order, error) {
	return s.orders.GetByID(ctx, userID, orderID)
}

func (s *BookingService) publish(ctx context.Context, email string, order *domain.Order) error {
	if s.producer == nil || s.ordersTopic == "" {
		return nil
	}
	event := kafka.OrderEvent{
		ID:        uuid.NewString(),
		Type:      kafka.EventOrderCreated,
		OrderID:   order.ID,
		UserID:    order.UserID,
		Email:     email,
		Tickets:   make([]kafka.TicketEvent, 0, len(order.Tickets)),
		CreatedAt: order.CreatedAt,
	}
	for _, t := range order.Tickets {
		event.Tickets = append(event.Tickets, kafka.TicketEvent{FlightID: t.FlightID, Row: t.Row, Seat: t.Seat.Seat})
	}

	key := strconv.FormatInt(order.ID, 10)
	if err := s.producer.Publish(ctx, s.ordersTopic, key, event); err != nil {
		return err
	}
	if s.notificationsTopic != "" {
		return s.producer.Publish(ctx, s.notificationsTopic, key, event)
	}
	return nil
}

var _ BookingUseCase = (*BookingService)(nil)
