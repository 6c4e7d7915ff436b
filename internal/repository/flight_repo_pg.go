package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/Domenick1991/airport/internal/domain"
	"github.com/jackc/pgx/v5"
)

type FlightRepository interface {
	List(ctx context.Context, filter domain.FlightFilter, page, pageSize int) ([]domain.Flight, int, error)
	GetByID(ctx context.Context, id int64) (*domain.Flight, error)
	TakenSeats(ctx context.Context, flightID int64) ([]domain.Seat, error)
	Create(ctx context.Context, flight *domain.Flight, crewIDs []int64) error
}

type PGFlightRepository struct {
	db DB
}

func NewFlightRepository(db DB) *PGFlightRepository {
	return &PGFlightRepository{db: db}
}

const flightColumns = `f.id, f.departure_time,
	r.id, r.distance,
	dep.id, dep.icao_designator, dep.closest_big_city,
	arr.id, arr.icao_designator, arr.closest_big_city,
	a.id, a.call_sign, a.type, a.rows, a.seats_in_row, a.cruise_mach_speed, a.airline_id, a.image`

const flightJoins = `FROM flights f
	JOIN routes r ON r.id = f.route_id
	JOIN airports dep ON dep.id = r.departure_id
	JOIN airports arr ON arr.id = r.arrival_id
	JOIN airplanes a ON a.id = f.airplane_id`

func scanFlight(row pgx.Row) (domain.Flight, error) {
	var f domain.Flight
	err := row.Scan(&f.ID, &f.DepartureTime,
		&f.Route.ID, &f.Route.Distance,
		&f.Route.Departure.ID, &f.Route.Departure.ICAODesignator, &f.Route.Departure.ClosestBigCity,
		&f.Route.Arrival.ID, &f.Route.Arrival.ICAODesignator, &f.Route.Arrival.ClosestBigCity,
		&f.Airplane.ID, &f.Airplane.CallSign, &f.Airplane.Type, &f.Airplane.Rows, &f.Airplane.SeatsInRow,
		&f.Airplane.CruiseMachSpeed, &f.Airplane.AirlineID, &f.Airplane.Image)
	return f, err
}

func flightWhere(filter domain.FlightFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	if filter.DepartureCity != "" {
		args = append(args, likePattern(filter.DepartureCity))
		conds = append(conds, fmt.Sprintf("dep.closest_big_city ILIKE $%d", len(args)))
	}
	if filter.ArrivalCity != "" {
		args = append(args, likePattern(filter.ArrivalCity))
		conds = append(conds, fmt.Sprintf("arr.closest_big_city ILIKE $%d", len(args)))
	}
	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// List joins every flight to exactly one route and airplane, so rows are
// unique per flight; crew is attached in a second query.
func (r *PGFlightRepository) List(ctx context.Context, filter domain.FlightFilter, page, pageSize int) ([]domain.Flight, int, error) {
	where, args := flightWhere(filter)

	var total int
	if err := r.db.QueryRow(ctx, `SELECT count(*) `+flightJoins+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, pageSize, offset(page, pageSize))
	query := fmt.Sprintf(`SELECT %s %s%s ORDER BY f.departure_time, f.id LIMIT $%d OFFSET $%d`,
		flightColumns, flightJoins, where, len(args)-1, len(args))
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	flights := make([]domain.Flight, 0, pageSize)
	for rows.Next() {
		f, err := scanFlight(rows)
		if err != nil {
			return nil, 0, err
		}
		flights = append(flights, f)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	if err := r.attachCrew(ctx, flights); err != nil {
		return nil, 0, err
	}
	return flights, total, nil
}

func (r *PGFlightRepository) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	f, err := scanFlight(r.db.QueryRow(ctx, `SELECT `+flightColumns+` `+flightJoins+` WHERE f.id = $1`, id))
	if err != nil {
		return nil, notFound(err)
	}
	flights := []domain.Flight{f}
	if err := r.attachCrew(ctx, flights); err != nil {
		return nil, err
	}
	return &flights[0], nil
}

func (r *PGFlightRepository) TakenSeats(ctx context.Context, flightID int64) ([]domain.Seat, error) {
	rows, err := r.db.Query(ctx, `SELECT seat_row, seat_number FROM tickets WHERE flight_id = $1 ORDER BY seat_row, seat_number`, flightID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	seats := make([]domain.Seat, 0)
	for rows.Next() {
		var s domain.Seat
		if err := rows.Scan(&s.Row, &s.Seat); err != nil {
			return nil, err
		}
		seats = append(seats, s)
	}
	return seats, rows.Err()
}

func (r *PGFlightRepository) Create(ctx context.Context, flight *domain.Flight, crewIDs []int64) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `INSERT INTO flights (route_id, airplane_id, departure_time) VALUES ($1, $2, $3) RETURNING id`,
		flight.Route.ID, flight.Airplane.ID, flight.DepartureTime).Scan(&flight.ID)
	if err != nil {
		return referenceError(err, map[string]string{
			"flights_route_id_fkey":    "route",
			"flights_airplane_id_fkey": "airplane",
		})
	}

	for _, crewID := range crewIDs {
		if _, err := tx.Exec(ctx, `INSERT INTO flight_crew (flight_id, crew_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`, flight.ID, crewID); err != nil {
			return referenceError(err, map[string]string{"flight_crew_crew_id_fkey": "crew"})
		}
	}

	return tx.Commit(ctx)
}

func (r *PGFlightRepository) attachCrew(ctx context.Context, flights []domain.Flight) error {
	if len(flights) == 0 {
		return nil
	}
	ids := make([]int64, len(flights))
	index := make(map[int64]int, len(flights))
	for i := range flights {
		ids[i] = flights[i].ID
		index[flights[i].ID] = i
		flights[i].Crew = make([]domain.Crew, 0)
	}

	rows, err := r.db.Query(ctx, `SELECT fc.flight_id, c.id, c.first_name, c.last_name, c.license_number
		FROM flight_crew fc
		JOIN crew c ON c.id = fc.crew_id
		WHERE fc.flight_id = ANY($1)
		ORDER BY c.id`, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			flightID int64
			c        domain.Crew
		)
		if err := rows.Scan(&flightID, &c.ID, &c.FirstName, &c.LastName, &c.LicenseNumber); err != nil {
			return err
		}
		i := index[flightID]
		flights[i].Crew = append(flights[i].Crew, c)
	}
	return rows.Err()
}

var _ FlightRepository = (*PGFlightRepository)(nil)
