package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Domenick1991/airport/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// BookingTx is the unit of work used to place one order.
type BookingTx interface {
	CreateOrder(ctx context.Context, order *domain.Order) error
	FlightForBooking(ctx context.Context, flightID int64) (*domain.Flight, error)
	CreateTicket(ctx context.Context, ticket *domain.Ticket) error
}

// BookingStore runs fn inside a single database transaction. The transaction
// is committed only when fn returns nil and rolled back otherwise.
type BookingStore interface {
	InTx(ctx context.Context, fn func(tx BookingTx) error) error
}

type OrderRepository interface {
	ListByUser(ctx context.Context, userID int64, page, pageSize int) ([]domain.Order, int, error)
	GetByID(ctx context.Context, userID, orderID int64) (*domain.Order, error)
}

type PGOrderRepository struct {
	db DB
}

func NewOrderRepository(db DB) *PGOrderRepository {
	return &PGOrderRepository{db: db}
}

func (r *PGOrderRepository) InTx(ctx context.Context, fn func(tx BookingTx) error) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return fmt.Errorf("begin booking tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(&pgBookingTx{tx: tx}); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit booking tx: %w", err)
	}
	return nil
}

type pgBookingTx struct {
	tx pgx.Tx
}

func (t *pgBookingTx) CreateOrder(ctx context.Context, order *domain.Order) error {
	return t.tx.QueryRow(ctx, `INSERT INTO orders (user_id) VALUES ($1) RETURNING id, created_at`, order.UserID).
		Scan(&order.ID, &order.CreatedAt)
}

func (t *pgBookingTx) FlightForBooking(ctx context.Context, flightID int64) (*domain.Flight, error) {
	row := t.tx.QueryRow(ctx, `SELECT f.id, f.departure_time, a.id, a.rows, a.seats_in_row
		FROM flights f
		JOIN airplanes a ON a.id = f.airplane_id
		WHERE f.id = $1
		FOR SHARE OF f`, flightID)

	var f domain.Flight
	if err := row.Scan(&f.ID, &f.DepartureTime, &f.Airplane.ID, &f.Airplane.Rows, &f.Airplane.SeatsInRow); err != nil {
		return nil, notFound(err)
	}
	return &f, nil
}

func (t *pgBookingTx) CreateTicket(ctx context.Context, ticket *domain.Ticket) error {
	err := t.tx.QueryRow(ctx, `INSERT INTO tickets (flight_id, order_id, seat_row, seat_number)
		VALUES ($1, $2, $3, $4)
		RETURNING id`, ticket.FlightID, ticket.OrderID, ticket.Row, ticket.Seat.Seat).Scan(&ticket.ID)
	if err != nil {
		return ticketInsertError(err, ticket)
	}
	return nil
}

func ticketInsertError(err error, ticket *domain.Ticket) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch {
	case pgErr.Code == uniqueViolation && pgErr.ConstraintName == ticketSeatConstraint:
		return &domain.DuplicateSeatError{FlightID: ticket.FlightID, Seat: ticket.Seat}
	case pgErr.Code == foreignKeyViolation:
		return domain.ErrNotFound
	}
	return err
}

func (r *PGOrderRepository) ListByUser(ctx context.Context, userID int64, page, pageSize int) ([]domain.Order, int, error) {
	var total int
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM orders WHERE user_id = $1`, userID).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.Query(ctx, `SELECT id, user_id, created_at FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3`, userID, pageSize, offset(page, pageSize))
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	orders := make([]domain.Order, 0, pageSize)
	for rows.Next() {
		var o domain.Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.CreatedAt); err != nil {
			return nil, 0, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	if err := r.attachTickets(ctx, orders); err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

func (r *PGOrderRepository) GetByID(ctx context.Context, userID, orderID int64) (*domain.Order, error) {
	var o domain.Order
	err := r.db.QueryRow(ctx, `SELECT id, user_id, created_at FROM orders WHERE id = $1 AND user_id = $2`, orderID, userID).
		Scan(&o.ID, &o.UserID, &o.CreatedAt)
	if err != nil {
		return nil, notFound(err)
	}

	orders := []domain.Order{o}
	if err := r.attachTickets(ctx, orders); err != nil {
		return nil, err
	}
	return &orders[0], nil
}

func (r *PGOrderRepository) attachTickets(ctx context.Context, orders []domain.Order) error {
	if len(orders) == 0 {
		return nil
	}
	ids := make([]int64, len(orders))
	index := make(map[int64]int, len(orders))
	for i, o := range orders {
		ids[i] = o.ID
		index[o.ID] = i
	}

	rows, err := r.db.Query(ctx, `SELECT t.id, t.order_id, t.flight_id, t.seat_row, t.seat_number, f.departure_time,
			dep.icao_designator, dep.closest_big_city, arr.icao_designator, arr.closest_big_city
		FROM tickets t
		JOIN flights f ON f.id = t.flight_id
		JOIN routes r ON r.id = f.route_id
		JOIN airports dep ON dep.id = r.departure_id
		JOIN airports arr ON arr.id = r.arrival_id
		WHERE t.order_id = ANY($1)
		ORDER BY t.order_id, t.seat_row, t.seat_number`, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			t     domain.Ticket
			route domain.Route
		)
		if err := rows.Scan(&t.ID, &t.OrderID, &t.FlightID, &t.Row, &t.Seat.Seat, &t.DepartureTime,
			&route.Departure.ICAODesignator, &route.Departure.ClosestBigCity,
			&route.Arrival.ICAODesignator, &route.Arrival.ClosestBigCity); err != nil {
			return err
		}
		t.Route = route.String()
		i := index[t.OrderID]
		orders[i].Tickets = append(orders[i].Tickets, t)
	}
	return rows.Err()
}

var (
	_ BookingStore    = (*PGOrderRepository)(nil)
	_ OrderRepository = (*PGOrderRepository)(nil)
)
