package repository

import (
	"context"

	"github.com/Domenick1991/airport/internal/domain"
)

type AirportRepository interface {
	List(ctx context.Context) ([]domain.Airport, error)
	GetByID(ctx context.Context, id int64) (*domain.Airport, error)
	Create(ctx context.Context, airport *domain.Airport) error
}

type PGAirportRepository struct {
	db DB
}

func NewAirportRepository(db DB) *PGAirportRepository {
	return &PGAirportRepository{db: db}
}

func (r *PGAirportRepository) List(ctx context.Context) ([]domain.Airport, error) {
	rows, err := r.db.Query(ctx, `SELECT id, icao_designator, closest_big_city FROM airports ORDER BY closest_big_city, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	airports := make([]domain.Airport, 0)
	for rows.Next() {
		var a domain.Airport
		if err := rows.Scan(&a.ID, &a.ICAODesignator, &a.ClosestBigCity); err != nil {
			return nil, err
		}
		airports = append(airports, a)
	}
	return airports, rows.Err()
}

func (r *PGAirportRepository) GetByID(ctx context.Context, id int64) (*domain.Airport, error) {
	var a domain.Airport
	err := r.db.QueryRow(ctx, `SELECT id, icao_designator, closest_big_city FROM airports WHERE id = $1`, id).
		Scan(&a.ID, &a.ICAODesignator, &a.ClosestBigCity)
	if err != nil {
		return nil, notFound(err)
	}
	return &a, nil
}

func (r *PGAirportRepository) Create(ctx context.Context, airport *domain.Airport) error {
	return r.db.QueryRow(ctx, `INSERT INTO airports (icao_designator, closest_big_city) VALUES ($1, $2) RETURNING id`,
		airport.ICAODesignator, airport.ClosestBigCity).Scan(&airport.ID)
}

var _ AirportRepository = (*PGAirportRepository)(nil)
