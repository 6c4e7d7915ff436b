package repository

import (
	"context"

	"github.com/Domenick1991/airport/internal/domain"
)

type AirlineRepository interface {
	List(ctx context.Context) ([]domain.Airline, error)
	GetByID(ctx context.Context, id int64) (*domain.Airline, error)
	Create(ctx context.Context, airline *domain.Airline) error
}

type PGAirlineRepository struct {
	db DB
}

func NewAirlineRepository(db DB) *PGAirlineRepository {
	return &PGAirlineRepository{db: db}
}

func (r *PGAirlineRepository) List(ctx context.Context) ([]domain.Airline, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name FROM airlines ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	airlines := make([]domain.Airline, 0)
	for rows.Next() {
		var a domain.Airline
		if err := rows.Scan(&a.ID, &a.Name); err != nil {
			return nil, err
		}
		airlines = append(airlines, a)
	}
	return airlines, rows.Err()
}

func (r *PGAirlineRepository) GetByID(ctx context.Context, id int64) (*domain.Airline, error) {
	var a domain.Airline
	if err := r.db.QueryRow(ctx, `SELECT id, name FROM airlines WHERE id = $1`, id).Scan(&a.ID, &a.Name); err != nil {
		return nil, notFound(err)
	}
	return &a, nil
}

func (r *PGAirlineRepository) Create(ctx context.Context, airline *domain.Airline) error {
	return r.db.QueryRow(ctx, `INSERT INTO airlines (name) VALUES ($1) RETURNING id`, airline.Name).Scan(&airline.ID)
}

var _ AirlineRepository = (*PGAirlineRepository)(nil)
