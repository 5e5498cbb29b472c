package postgres

import (
	"context"
	"database/sql"
	"errors"

	"ridebooking/internal/domain"
	"ridebooking/internal/repository"
)

// RideRepository is a PostgreSQL implementation of repository.RideRepository.
//
// The compare-and-set operations (Assign, UpdateStatus) are expressed as
// conditional UPDATE ... WHERE status = $expected statements so the guard
// and the mutation commit in a single statement. A zero rows-affected
// result is disambiguated into ErrNotFound vs ErrConflict with a follow-up
// existence check.
type RideRepository struct {
	q Querier
}

// NewRideRepository creates a new PostgreSQL ride repository.
func NewRideRepository(db *sql.DB) *RideRepository {
	return &RideRepository{q: db}
}

// NewRideRepositoryWithTx creates a ride repository using a transaction.
func NewRideRepositoryWithTx(tx *sql.Tx) *RideRepository {
	return &RideRepository{q: tx}
}

const rideColumns = `id, passenger_id, driver_id, pickup, drop_off, ride_type, preferred_driver_gender, status, created_at`

// Create persists a new ride.
func (r *RideRepository) Create(ctx context.Context, ride *domain.Ride) error {
	query := `
		INSERT INTO rides (` + rideColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	var driverID sql.NullString
	if ride.DriverID != "" {
		driverID = sql.NullString{String: ride.DriverID, Valid: true}
	}

	var preferredGender sql.NullString
	if ride.PreferredDriverGender != "" {
		preferredGender = sql.NullString{String: string(ride.PreferredDriverGender), Valid: true}
	}

	_, err := r.q.ExecContext(ctx, query,
		ride.ID,
		ride.PassengerID,
		driverID,
		ride.Pickup,
		ride.Drop,
		ride.RideType,
		preferredGender,
		ride.Status,
		ride.CreatedAt,
	)
	return err
}

// GetByID retrieves a ride by ID.
func (r *RideRepository) GetByID(ctx context.Context, id string) (*domain.Ride, error) {
	query := `SELECT ` + rideColumns + ` FROM rides WHERE id = $1`

	ride, err := scanRide(r.q.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return ride, nil
}

// GetAll retrieves all rides in insertion order.
func (r *RideRepository) GetAll(ctx context.Context) ([]*domain.Ride, error) {
	query := `SELECT ` + rideColumns + ` FROM rides ORDER BY created_at ASC`
	return r.queryRides(ctx, query)
}

// GetByPassengerID retrieves all rides for a passenger in insertion order.
func (r *RideRepository) GetByPassengerID(ctx context.Context, passengerID string) ([]*domain.Ride, error) {
	query := `SELECT ` + rideColumns + ` FROM rides WHERE passenger_id = $1 ORDER BY created_at ASC`
	return r.queryRides(ctx, query, passengerID)
}

// GetActiveByPassengerID retrieves the passenger's ride that is not yet
// completed. Returns nil if no active ride exists.
func (r *RideRepository) GetActiveByPassengerID(ctx context.Context, passengerID string) (*domain.Ride, error) {
	query := `
		SELECT ` + rideColumns + ` FROM rides
		WHERE passenger_id = $1 AND status != $2
		ORDER BY created_at ASC LIMIT 1
	`

	ride, err := scanRide(r.q.QueryRowContext(ctx, query, passengerID, domain.RideStatusCompleted))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return ride, nil
}

// GetActiveByDriverID retrieves the driver's ride in Accepted or InProgress
// state. Returns nil if no active ride exists.
func (r *RideRepository) GetActiveByDriverID(ctx context.Context, driverID string) (*domain.Ride, error) {
	query := `
		SELECT ` + rideColumns + ` FROM rides
		WHERE driver_id = $1 AND status IN ($2, $3)
		ORDER BY created_at ASC LIMIT 1
	`

	ride, err := scanRide(r.q.QueryRowContext(ctx, query, driverID, domain.RideStatusAccepted, domain.RideStatusInProgress))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return ride, nil
}

// Assign atomically binds a driver to a ride and moves it to Accepted,
// but only if the ride is still Requested with no driver bound.
func (r *RideRepository) Assign(ctx context.Context, rideID, driverID string) (*domain.Ride, error) {
	query := `
		UPDATE rides SET driver_id = $1, status = $2
		WHERE id = $3 AND status = $4 AND driver_id IS NULL
	`

	result, err := r.q.ExecContext(ctx, query, driverID, domain.RideStatusAccepted, rideID, domain.RideStatusRequested)
	if err != nil {
		return nil, err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}

	if rowsAffected == 0 {
		return nil, r.conflictOrNotFound(ctx, rideID)
	}

	return r.GetByID(ctx, rideID)
}

// UpdateStatus atomically transitions a ride from one status to another,
// but only if it is currently in the from status with the given driver bound.
func (r *RideRepository) UpdateStatus(ctx context.Context, rideID, driverID string, from, to domain.RideStatus) (*domain.Ride, error) {
	query := `
		UPDATE rides SET status = $1
		WHERE id = $2 AND status = $3 AND driver_id = $4
	`

	result, err := r.q.ExecContext(ctx, query, to, rideID, from, driverID)
	if err != nil {
		return nil, err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}

	if rowsAffected == 0 {
		return nil, r.conflictOrNotFound(ctx, rideID)
	}

	return r.GetByID(ctx, rideID)
}

// conflictOrNotFound decides why a guarded update matched no rows.
func (r *RideRepository) conflictOrNotFound(ctx context.Context, rideID string) error {
	var exists bool
	err := r.q.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM rides WHERE id = $1)`, rideID).Scan(&exists)
	if err != nil {
		return err
	}
	if !exists {
		return repository.ErrNotFound
	}
	return repository.ErrConflict
}

func (r *RideRepository) queryRides(ctx context.Context, query string, args ...any) ([]*domain.Ride, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rides []*domain.Ride
	for rows.Next() {
		ride, err := scanRide(rows)
		if err != nil {
			return nil, err
		}
		rides = append(rides, ride)
	}
	return rides, rows.Err()
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRide(row rowScanner) (*domain.Ride, error) {
	var ride domain.Ride
	var driverID sql.NullString
	var preferredGender sql.NullString

	err := row.Scan(
		&ride.ID,
		&ride.PassengerID,
		&driverID,
		&ride.Pickup,
		&ride.Drop,
		&ride.RideType,
		&preferredGender,
		&ride.Status,
		&ride.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if driverID.Valid {
		ride.DriverID = driverID.String
	}
	if preferredGender.Valid {
		ride.PreferredDriverGender = domain.Gender(preferredGender.String)
	}

	return &ride, nil
}
