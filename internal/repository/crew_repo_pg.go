package repository

import (
	"context"

	"github.com/Domenick1991/airport/internal/domain"
)

type CrewRepository interface {
	List(ctx context.Context) ([]domain.Crew, error)
	GetByID(ctx context.Context, id int64) (*domain.Crew, error)
	Create(ctx context.Context, crew *domain.Crew) error
}

type PGCrewRepository struct {
	db DB
}

func NewCrewRepository(db DB) *PGCrewRepository {
	return &PGCrewRepository{db: db}
}

func (r *PGCrewRepository) List(ctx context.Context) ([]domain.Crew, error) {
	rows, err := r.db.Query(ctx, `SELECT id, first_name, last_name, license_number FROM crew ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	crew := make([]domain.Crew, 0)
	for rows.Next() {
		var c domain.Crew
		if err := rows.Scan(&c.ID, &c.FirstName, &c.LastName, &c.LicenseNumber); err != nil {
			return nil, err
		}
		crew = append(crew, c)
	}
	return crew, rows.Err()
}

func (r *PGCrewRepository) GetByID(ctx context.Context, id int64) (*domain.Crew, error) {
	var c domain.Crew
	err := r.db.QueryRow(ctx, `SELECT id, first_name, last_name, license_number FROM crew WHERE id = $1`, id).
		Scan(&c.ID, &c.FirstName, &c.LastName, &c.LicenseNumber)
	if err != nil {
		return nil, notFound(err)
	}
	return &c, nil
}

func (r *PGCrewRepository) Create(ctx context.Context, crew *domain.Crew) error {
	return r.db.QueryRow(ctx, `INSERT INTO crew (first_name, last_name, license_number) VALUES ($1, $2, $3) RETURNING id`,
		crew.FirstName, crew.LastName, crew.LicenseNumber).Scan(&crew.ID)
}

var _ CrewRepository = (*PGCrewRepository)(nil)
