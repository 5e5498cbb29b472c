package postgres

import (
	"context"
	"database/sql"
	"errors"

	"ridebooking/internal/domain"
	"ridebooking/internal/repository"
)

// PassengerRepository is a PostgreSQL implementation of repository.PassengerRepository.
type PassengerRepository struct {
	db *sql.DB
}

// NewPassengerRepository creates a new PostgreSQL passenger repository.
func NewPassengerRepository(db *sql.DB) *PassengerRepository {
	return &PassengerRepository{db: db}
}

// Create adds a new passenger.
func (r *PassengerRepository) Create(ctx context.Context, passenger *domain.Passenger) error {
	query := `
		INSERT INTO passengers (id, name, gender, email, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.ExecContext(ctx, query,
		passenger.ID,
		passenger.Name,
		passenger.Gender,
		passenger.Email,
		passenger.PasswordHash,
		passenger.CreatedAt,
	)
	return err
}

// GetByID retrieves a passenger by ID.
func (r *PassengerRepository) GetByID(ctx context.Context, id string) (*domain.Passenger, error) {
	query := `SELECT id, name, gender, email, password_hash, created_at FROM passengers WHERE id = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

// GetByEmail retrieves a passenger by email.
func (r *PassengerRepository) GetByEmail(ctx context.Context, email string) (*domain.Passenger, error) {
	query := `SELECT id, name, gender, email, password_hash, created_at FROM passengers WHERE email = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, email))
}

// GetAll retrieves all passengers in insertion order.
func (r *PassengerRepository) GetAll(ctx context.Context) ([]*domain.Passenger, error) {
	query := `SELECT id, name, gender, email, password_hash, created_at FROM passengers ORDER BY created_at ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var passengers []*domain.Passenger
	for rows.Next() {
		var p domain.Passenger
		if err := rows.Scan(&p.ID, &p.Name, &p.Gender, &p.Email, &p.PasswordHash, &p.CreatedAt); err != nil {
			return nil, err
		}
		passengers = append(passengers, &p)
	}
	return passengers, rows.Err()
}

func (r *PassengerRepository) scanOne(row *sql.Row) (*domain.Passenger, error) {
	var p domain.Passenger
	err := row.Scan(&p.ID, &p.Name, &p.Gender, &p.Email, &p.PasswordHash, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}
