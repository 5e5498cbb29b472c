package service

import (
	"context"

	"ridebooking/internal/domain"
	"ridebooking/internal/repository"
)

// QueryService provides the read-side projections used by passenger and
// driver views. Every query is a pure snapshot filter over the store — no
// caching, no staleness guarantee beyond "reflects the store at call time."
type QueryService struct {
	rideRepo        repository.RideRepository
	driverRepo      repository.DriverRepository
	matchingService *MatchingService
}

// NewQueryService creates a new QueryService.
func NewQueryService(
	rideRepo repository.RideRepository,
	driverRepo repository.DriverRepository,
	matchingService *MatchingService,
) *QueryService {
	return &QueryService{
		rideRepo:        rideRepo,
		driverRepo:      driverRepo,
		matchingService: matchingService,
	}
}

// ActiveRideForPassenger returns the passenger's ride that is not yet
// completed, or nil if none. The single-active-ride invariant guarantees
// at most one exists.
func (s *QueryService) ActiveRideForPassenger(ctx context.Context, passengerID string) (*domain.Ride, error) {
	if passengerID == "" {
		return nil, ErrInvalidPassengerID
	}
	return s.rideRepo.GetActiveByPassengerID(ctx, passengerID)
}

// ActiveRideForDriver returns the driver's ride in Accepted or InProgress
// state, or nil if none.
func (s *QueryService) ActiveRideForDriver(ctx context.Context, driverID string) (*domain.Ride, error) {
	if driverID == "" {
		return nil, ErrInvalidDriverID
	}
	return s.rideRepo.GetActiveByDriverID(ctx, driverID)
}

// EligibleRequestsForDriver returns the Requested rides the driver may
// accept, in insertion order.
func (s *QueryService) EligibleRequestsForDriver(ctx context.Context, driverID string) ([]*domain.Ride, error) {
	if driverID == "" {
		return nil, ErrInvalidDriverID
	}

	driver, err := s.driverRepo.GetByID(ctx, driverID)
	if err != nil {
		return nil, err
	}

	return s.matchingService.EligibleRequests(ctx, driver)
}

// HistoryForPassenger returns the passenger's completed rides in insertion
// order.
func (s *QueryService) HistoryForPassenger(ctx context.Context, passengerID string) ([]*domain.Ride, error) {
	if passengerID == "" {
		return nil, ErrInvalidPassengerID
	}

	rides, err := s.rideRepo.GetByPassengerID(ctx, passengerID)
	if err != nil {
		return nil, err
	}

	var history []*domain.Ride
	for _, ride := range rides {
		if ride.Status == domain.RideStatusCompleted {
			history = append(history, ride)
		}
	}
	return history, nil
}
