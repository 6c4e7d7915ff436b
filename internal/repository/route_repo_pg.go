package repository

import (
	"context"

	"github.com/Domenick1991/airport/internal/domain"
)

type RouteRepository interface {
	List(ctx context.Context) ([]domain.Route, error)
	GetByID(ctx context.Context, id int64) (*domain.Route, error)
	Create(ctx context.Context, route *domain.Route) error
}

type PGRouteRepository struct {
	db DB
}

func NewRouteRepository(db DB) *PGRouteRepository {
	return &PGRouteRepository{db: db}
}

const routeSelect = `SELECT r.id, r.distance,
	dep.id, dep.icao_designator, dep.closest_big_city,
	arr.id, arr.icao_designator, arr.closest_big_city
	FROM routes r
	JOIN airports dep ON dep.id = r.departure_id
	JOIN airports arr ON arr.id = r.arrival_id`

func scanRoute(row interface{ Scan(dest ...any) error }) (domain.Route, error) {
	var rt domain.Route
	err := row.Scan(&rt.ID, &rt.Distance,
		&rt.Departure.ID, &rt.Departure.ICAODesignator, &rt.Departure.ClosestBigCity,
		&rt.Arrival.ID, &rt.Arrival.ICAODesignator, &rt.Arrival.ClosestBigCity)
	return rt, err
}

func (r *PGRouteRepository) List(ctx context.Context) ([]domain.Route, error) {
	rows, err := r.db.Query(ctx, routeSelect+` ORDER BY r.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	routes := make([]domain.Route, 0)
	for rows.Next() {
		rt, err := scanRoute(rows)
		if err != nil {
			return nil, err
		}
		routes = append(routes, rt)
	}
	return routes, rows.Err()
}

func (r *PGRouteRepository) GetByID(ctx context.Context, id int64) (*domain.Route, error) {
	rt, err := scanRoute(r.db.QueryRow(ctx, routeSelect+` WHERE r.id = $1`, id))
	if err != nil {
		return nil, notFound(err)
	}
	return &rt, nil
}

func (r *PGRouteRepository) Create(ctx context.Context, route *domain.Route) error {
	err := r.db.QueryRow(ctx, `INSERT INTO routes (departure_id, arrival_id, distance) VALUES ($1, $2, $3) RETURNING id`,
		route.Departure.ID, route.Arrival.ID, route.Distance).Scan(&route.ID)
	if err != nil {
		return referenceError(err, map[string]string{
			"routes_departure_id_fkey": "departure",
			"routes_arrival_id_fkey":   "arrival",
		})
	}
	return nil
}

var _ RouteRepository = (*PGRouteRepository)(nil)
