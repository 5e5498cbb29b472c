package memory

import (
	"context"
	"sync"

	"ridebooking/internal/domain"
	"ridebooking/internal/repository"
)

// PassengerRepository stores passengers in memory. Used for tests and for
// running the server without PostgreSQL.
type PassengerRepository struct {
	mu         sync.RWMutex
	passengers map[string]*domain.Passenger
	order      []string
}

// NewPassengerRepository creates a new in-memory passenger repository.
func NewPassengerRepository() *PassengerRepository {
	return &PassengerRepository{
		passengers: make(map[string]*domain.Passenger),
	}
}

// Create adds a new passenger.
func (r *PassengerRepository) Create(ctx context.Context, passenger *domain.Passenger) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.passengers[passenger.ID]; !exists {
		r.order = append(r.order, passenger.ID)
	}
	p := *passenger
	r.passengers[passenger.ID] = &p
	return nil
}

// GetByID retrieves a passenger by ID.
func (r *PassengerRepository) GetByID(ctx context.Context, id string) (*domain.Passenger, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	passenger, exists := r.passengers[id]
	if !exists {
		return nil, repository.ErrNotFound
	}
	p := *passenger
	return &p, nil
}

// GetByEmail retrieves a passenger by email.
func (r *PassengerRepository) GetByEmail(ctx context.Context, email string) (*domain.Passenger, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, id := range r.order {
		if r.passengers[id].Email == email {
			p := *r.passengers[id]
			return &p, nil
		}
	}
	return nil, repository.ErrNotFound
}

// GetAll retrieves all passengers in insertion order.
func (r *PassengerRepository) GetAll(ctx context.Context) ([]*domain.Passenger, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	passengers := make([]*domain.Passenger, 0, len(r.order))
	for _, id := range r.order {
		p := *r.passengers[id]
		passengers = append(passengers, &p)
	}
	return passengers, nil
}
