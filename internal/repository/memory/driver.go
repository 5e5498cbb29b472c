package memory

import (
	"context"
	"sync"

	"ridebooking/internal/domain"
	"ridebooking/internal/repository"
)

// DriverRepository stores drivers in memory.
type DriverRepository struct {
	mu      sync.RWMutex
	drivers map[string]*domain.Driver
	order   []string
}

// NewDriverRepository creates a new in-memory driver repository.
func NewDriverRepository() *DriverRepository {
	return &DriverRepository{
		drivers: make(map[string]*domain.Driver),
	}
}

// Create adds a new driver.
func (r *DriverRepository) Create(ctx context.Context, driver *domain.Driver) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.drivers[driver.ID]; !exists {
		r.order = append(r.order, driver.ID)
	}
	d := *driver
	r.drivers[driver.ID] = &d
	return nil
}

// GetByID retrieves a driver by ID.
func (r *DriverRepository) GetByID(ctx context.Context, id string) (*domain.Driver, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	driver, exists := r.drivers[id]
	if !exists {
		return nil, repository.ErrNotFound
	}
	d := *driver
	return &d, nil
}

// GetByEmail retrieves a driver by email.
func (r *DriverRepository) GetByEmail(ctx context.Context, email string) (*domain.Driver, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, id := range r.order {
		if r.drivers[id].Email == email {
			d := *r.drivers[id]
			return &d, nil
		}
	}
	return nil, repository.ErrNotFound
}

// GetAll retrieves all drivers in insertion order.
func (r *DriverRepository) GetAll(ctx context.Context) ([]*domain.Driver, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	drivers := make([]*domain.Driver, 0, len(r.order))
	for _, id := range r.order {
		d := *r.drivers[id]
		drivers = append(drivers, &d)
	}
	return drivers, nil
}

// UpdateAvailability sets the driver's declared availability.
func (r *DriverRepository) UpdateAvailability(ctx context.Context, id string, available bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	driver, exists := r.drivers[id]
	if !exists {
		return repository.ErrNotFound
	}
	driver.Available = available
	return nil
}
