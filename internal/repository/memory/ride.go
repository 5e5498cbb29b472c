package memory

import (
	"context"
	"sync"

	"ridebooking/internal/domain"
	"ridebooking/internal/repository"
)

// RideRepository stores rides in memory.
//
// The compare-and-set operations hold the write lock across the guard check
// and the mutation, giving the same linearizable semantics as the
// conditional UPDATE in the PostgreSQL implementation. Concurrent Assign
// calls for the same ride therefore resolve to exactly one winner.
type RideRepository struct {
	mu    sync.RWMutex
	rides map[string]*domain.Ride
	order []string
}

// NewRideRepository creates a new in-memory ride repository.
func NewRideRepository() *RideRepository {
	return &RideRepository{
		rides: make(map[string]*domain.Ride),
	}
}

// Create persists a new ride.
func (r *RideRepository) Create(ctx context.Context, ride *domain.Ride) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.rides[ride.ID]; !exists {
		r.order = append(r.order, ride.ID)
	}
	rd := *ride
	r.rides[ride.ID] = &rd
	return nil
}

// GetByID retrieves a ride by ID.
func (r *RideRepository) GetByID(ctx context.Context, id string) (*domain.Ride, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ride, exists := r.rides[id]
	if !exists {
		return nil, repository.ErrNotFound
	}
	rd := *ride
	return &rd, nil
}

// GetAll retrieves all rides in insertion order.
func (r *RideRepository) GetAll(ctx context.Context) ([]*domain.Ride, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rides := make([]*domain.Ride, 0, len(r.order))
	for _, id := range r.order {
		rd := *r.rides[id]
		rides = append(rides, &rd)
	}
	return rides, nil
}

// GetByPassengerID retrieves all rides for a passenger in insertion order.
func (r *RideRepository) GetByPassengerID(ctx context.Context, passengerID string) ([]*domain.Ride, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var rides []*domain.Ride
	for _, id := range r.order {
		if r.rides[id].PassengerID == passengerID {
			rd := *r.rides[id]
			rides = append(rides, &rd)
		}
	}
	return rides, nil
}

// GetActiveByPassengerID retrieves the passenger's ride that is not yet
// completed. Returns nil if no active ride exists.
func (r *RideRepository) GetActiveByPassengerID(ctx context.Context, passengerID string) (*domain.Ride, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, id := range r.order {
		ride := r.rides[id]
		if ride.PassengerID == passengerID && ride.Active() {
			rd := *ride
			return &rd, nil
		}
	}
	return nil, nil
}

// GetActiveByDriverID retrieves the driver's ride in Accepted or InProgress
// state. Returns nil if no active ride exists.
func (r *RideRepository) GetActiveByDriverID(ctx context.Context, driverID string) (*domain.Ride, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, id := range r.order {
		ride := r.rides[id]
		if ride.DriverID == driverID && ride.OccupiesDriver() {
			rd := *ride
			return &rd, nil
		}
	}
	return nil, nil
}

// Assign atomically binds a driver to a ride and moves it to Accepted,
// but only if the ride is still Requested with no driver bound.
func (r *RideRepository) Assign(ctx context.Context, rideID, driverID string) (*domain.Ride, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ride, exists := r.rides[rideID]
	if !exists {
		return nil, repository.ErrNotFound
	}

	if ride.Status != domain.RideStatusRequested || ride.DriverID != "" {
		return nil, repository.ErrConflict
	}

	ride.DriverID = driverID
	ride.Status = domain.RideStatusAccepted

	rd := *ride
	return &rd, nil
}

// UpdateStatus atomically transitions a ride from one status to another,
// but only if it is currently in the from status with the given driver bound.
func (r *RideRepository) UpdateStatus(ctx context.Context, rideID, driverID string, from, to domain.RideStatus) (*domain.Ride, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ride, exists := r.rides[rideID]
	if !exists {
		return nil, repository.ErrNotFound
	}

	if ride.Status != from || ride.DriverID != driverID {
		return nil, repository.ErrConflict
	}

	ride.Status = to

	rd := *ride
	return &rd, nil
}
