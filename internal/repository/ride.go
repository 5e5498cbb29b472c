package repository

import (
	"context"

	"ridebooking/internal/domain"
)

// RideRepository defines the persistence operations for rides.
//
// Assign and UpdateStatus are the compare-and-set primitives the lifecycle
// controller builds on: each applies its mutation only if the ride's
// (status, driverId) pair still matches the expected prior state, and
// returns ErrConflict without side effect otherwise.
type RideRepository interface {
	// Create persists a new ride.
	Create(ctx context.Context, ride *domain.Ride) error

	// GetByID retrieves a ride by ID.
	GetByID(ctx context.Context, id string) (*domain.Ride, error)

	// GetAll retrieves all rides in insertion order.
	GetAll(ctx context.Context) ([]*domain.Ride, error)

	// GetByPassengerID retrieves all rides for a passenger in insertion order.
	GetByPassengerID(ctx context.Context, passengerID string) ([]*domain.Ride, error)

	// GetActiveByPassengerID retrieves the passenger's ride that is not yet
	// completed. Returns nil if no active ride exists.
	GetActiveByPassengerID(ctx context.Context, passengerID string) (*domain.Ride, error)

	// GetActiveByDriverID retrieves the driver's ride in Accepted or
	// InProgress state. Returns nil if no active ride exists.
	GetActiveByDriverID(ctx context.Context, driverID string) (*domain.Ride, error)

	// Assign atomically binds a driver to a ride and moves it to Accepted,
	// but only if the ride is still Requested with no driver bound.
	// Returns ErrConflict if the ride was taken by someone else.
	Assign(ctx context.Context, rideID, driverID string) (*domain.Ride, error)

	// UpdateStatus atomically transitions a ride from one status to another,
	// but only if it is currently in the from status with the given driver
	// bound. Returns ErrConflict if the guard fails.
	UpdateStatus(ctx context.Context, rideID, driverID string, from, to domain.RideStatus) (*domain.Ride, error)
}
