package repository

import (
	"context"

	"github.com/Domenick1991/airport/internal/domain"
)

type AirplaneRepository interface {
	List(ctx context.Context) ([]domain.Airplane, error)
	ListByAirline(ctx context.Context, airlineID int64) ([]domain.Airplane, error)
	GetByID(ctx context.Context, id int64) (*domain.Airplane, error)
	Create(ctx context.Context, airplane *domain.Airplane) error
	SetImage(ctx context.Context, id int64, image string) error
}

type PGAirplaneRepository struct {
	db DB
}

func NewAirplaneRepository(db DB) *PGAirplaneRepository {
	return &PGAirplaneRepository{db: db}
}

const airplaneColumns = `id, call_sign, type, rows, seats_in_row, cruise_mach_speed, airline_id, image`

func scanAirplane(row interface{ Scan(dest ...any) error }) (domain.Airplane, error) {
	var a domain.Airplane
	err := row.Scan(&a.ID, &a.CallSign, &a.Type, &a.Rows, &a.SeatsInRow, &a.CruiseMachSpeed, &a.AirlineID, &a.Image)
	return a, err
}

func (r *PGAirplaneRepository) list(ctx context.Context, query string, args ...any) ([]domain.Airplane, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	airplanes := make([]domain.Airplane, 0)
	for rows.Next() {
		a, err := scanAirplane(rows)
		if err != nil {
			return nil, err
		}
		airplanes = append(airplanes, a)
	}
	return airplanes, rows.Err()
}

func (r *PGAirplaneRepository) List(ctx context.Context) ([]domain.Airplane, error) {
	return r.list(ctx, `SELECT `+airplaneColumns+` FROM airplanes ORDER BY id`)
}

func (r *PGAirplaneRepository) ListByAirline(ctx context.Context, airlineID int64) ([]domain.Airplane, error) {
	return r.list(ctx, `SELECT `+airplaneColumns+` FROM airplanes WHERE airline_id = $1 ORDER BY id`, airlineID)
}

func (r *PGAirplaneRepository) GetByID(ctx context.Context, id int64) (*domain.Airplane, error) {
	a, err := scanAirplane(r.db.QueryRow(ctx, `SELECT `+airplaneColumns+` FROM airplanes WHERE id = $1`, id))
	if err != nil {
		return nil, notFound(err)
	}
	return &a, nil
}

func (r *PGAirplaneRepository) Create(ctx context.Context, airplane *domain.Airplane) error {
	err := r.db.QueryRow(ctx, `INSERT INTO airplanes (call_sign, type, rows, seats_in_row, cruise_mach_speed, airline_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		airplane.CallSign, airplane.Type, airplane.Rows, airplane.SeatsInRow, airplane.CruiseMachSpeed, airplane.AirlineID).
		Scan(&airplane.ID)
	if err != nil {
		return referenceError(err, map[string]string{"airplanes_airline_id_fkey": "airline"})
	}
	return nil
}

func (r *PGAirplaneRepository) SetImage(ctx context.Context, id int64, image string) error {
	tag, err := r.db.Exec(ctx, `UPDATE airplanes SET image = $1 WHERE id = $2`, image, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

var _ AirplaneRepository = (*PGAirplaneRepository)(nil)
