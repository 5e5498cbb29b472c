package service

import (
	"context"

	"ridebooking/internal/domain"
	"ridebooking/internal/repository"
)

// Eligible reports whether a driver's profile permits accepting a ride.
// All rules must hold:
//   - the ride is still open for acceptance (Requested),
//   - the driver's vehicle matches the requested ride type,
//   - the ride's driver-gender preference, when set, matches the driver,
//   - the driver has declared availability.
//
// The one rule Eligible cannot see — that the driver has no other active
// ride — requires a store scan and lives in MatchingService.
func Eligible(ride *domain.Ride, driver *domain.Driver) bool {
	if ride.Status != domain.RideStatusRequested {
		return false
	}
	if driver.VehicleType != ride.RideType {
		return false
	}
	if ride.PreferredDriverGender != "" && ride.PreferredDriverGender != driver.Gender {
		return false
	}
	return driver.Available
}

// MatchingService computes the eligibility relation between drivers and
// pending ride requests. Matching is driver-pull: drivers observe the
// Requested pool and self-select; there is no dispatch or ranking, and ties
// are resolved by whichever driver commits an accept first.
type MatchingService struct {
	rideRepo repository.RideRepository
}

// NewMatchingService creates a new MatchingService.
func NewMatchingService(rideRepo repository.RideRepository) *MatchingService {
	return &MatchingService{rideRepo: rideRepo}
}

// EligibleForDriver reports whether the driver may accept the ride,
// including the no-other-active-ride rule derived from a ride scan.
func (s *MatchingService) EligibleForDriver(ctx context.Context, ride *domain.Ride, driver *domain.Driver) (bool, error) {
	if !Eligible(ride, driver) {
		return false, nil
	}

	active, err := s.rideRepo.GetActiveByDriverID(ctx, driver.ID)
	if err != nil {
		return false, err
	}

	return active == nil, nil
}

// EligibleRequests returns the Requested rides the driver may accept, in
// the store's insertion order.
func (s *MatchingService) EligibleRequests(ctx context.Context, driver *domain.Driver) ([]*domain.Ride, error) {
	// A driver with an active ride is not a candidate for any request.
	active, err := s.rideRepo.GetActiveByDriverID(ctx, driver.ID)
	if err != nil {
		return nil, err
	}
	if active != nil {
		return nil, nil
	}

	rides, err := s.rideRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	var eligible []*domain.Ride
	for _, ride := range rides {
		if Eligible(ride, driver) {
			eligible = append(eligible, ride)
		}
	}
	return eligible, nil
}
