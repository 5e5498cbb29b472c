package repository

import (
	"context"

	"ridebooking/internal/domain"
)

// DriverRepository defines the persistence operations for drivers.
type DriverRepository interface {
	// Create adds a new driver.
	Create(ctx context.Context, driver *domain.Driver) error

	// GetByID retrieves a driver by ID.
	GetByID(ctx context.Context, id string) (*domain.Driver, error)

	// GetByEmail retrieves a driver by email.
	GetByEmail(ctx context.Context, email string) (*domain.Driver, error)

	// GetAll retrieves all drivers in insertion order.
	GetAll(ctx context.Context) ([]*domain.Driver, error)

	// UpdateAvailability sets the driver's declared availability.
	UpdateAvailability(ctx context.Context, id string, available bool) error
}
