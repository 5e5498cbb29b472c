package repository

import (
	"context"

	"ridebooking/internal/domain"
)

// PassengerRepository defines the persistence operations for passengers.
type PassengerRepository interface {
	// Create adds a new passenger.
	Create(ctx context.Context, passenger *domain.Passenger) error

	// GetByID retrieves a passenger by ID.
	GetByID(ctx context.Context, id string) (*domain.Passenger, error)

	// GetByEmail retrieves a passenger by email.
	GetByEmail(ctx context.Context, email string) (*domain.Passenger, error)

	// GetAll retrieves all passengers in insertion order.
	GetAll(ctx context.Context) ([]*domain.Passenger, error)
}
