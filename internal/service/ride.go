package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"ridebooking/internal/domain"
	"ridebooking/internal/redis"
	"ridebooking/internal/repository"
)

const acceptLockTTL = 10 * time.Second

// RideService owns the ride lifecycle state machine. Every mutation of a
// ride goes through it; all preconditions are checked before any write and
// a failed transition leaves the ride entirely unchanged.
type RideService struct {
	rideRepo            repository.RideRepository
	passengerRepo       repository.PassengerRepository
	driverRepo          repository.DriverRepository
	matchingService     *MatchingService
	lockStore           redis.LockStoreInterface
	notificationService *NotificationService
}

// NewRideService creates a new RideService. lockStore and
// notificationService may be nil.
func NewRideService(
	rideRepo repository.RideRepository,
	passengerRepo repository.PassengerRepository,
	driverRepo repository.DriverRepository,
	matchingService *MatchingService,
	lockStore redis.LockStoreInterface,
	notificationService *NotificationService,
) *RideService {
	return &RideService{
		rideRepo:            rideRepo,
		passengerRepo:       passengerRepo,
		driverRepo:          driverRepo,
		matchingService:     matchingService,
		lockStore:           lockStore,
		notificationService: notificationService,
	}
}

// RequestRideRequest contains the parameters for requesting a ride.
type RequestRideRequest struct {
	PassengerID           string
	Pickup                string
	Drop                  string
	RideType              domain.VehicleType
	PreferredDriverGender domain.Gender // optional: empty means no preference
}

// RequestRide creates a new ride in Requested state. A passenger may hold
// at most one ride that is not yet completed.
func (s *RideService) RequestRide(ctx context.Context, req RequestRideRequest) (*domain.Ride, error) {
	if err := s.validateRequest(req); err != nil {
		return nil, err
	}

	if _, err := s.passengerRepo.GetByID(ctx, req.PassengerID); err != nil {
		return nil, err
	}

	active, err := s.rideRepo.GetActiveByPassengerID(ctx, req.PassengerID)
	if err != nil {
		return nil, err
	}
	if active != nil {
		return nil, ErrPassengerHasActiveRide
	}

	ride := &domain.Ride{
		ID:                    uuid.New().String(),
		PassengerID:           req.PassengerID,
		Pickup:                req.Pickup,
		Drop:                  req.Drop,
		RideType:              req.RideType,
		PreferredDriverGender: req.PreferredDriverGender,
		Status:                domain.RideStatusRequested,
		CreatedAt:             time.Now(),
	}

	if err := s.rideRepo.Create(ctx, ride); err != nil {
		return nil, err
	}

	if s.notificationService != nil {
		_ = s.notificationService.NotifyRideRequested(ctx, ride)
	}

	return ride, nil
}

// AcceptRideRequest contains the parameters for accepting a ride.
type AcceptRideRequest struct {
	RideID   string
	DriverID string
}

// AcceptRide binds a driver to a Requested ride and moves it to Accepted.
//
// Accept is the one genuinely racy transition: several eligible drivers may
// observe the same Requested ride and act on it concurrently. The decision
// is made by the store's compare-and-set — only the driver whose Assign
// commits while the ride is still Requested wins; every other caller gets
// ErrRideUnavailable and must re-query. The optional Redis lock in front
// only thins out the losers early.
func (s *RideService) AcceptRide(ctx context.Context, req AcceptRideRequest) (*domain.Ride, error) {
	if req.RideID == "" {
		return nil, ErrInvalidRideID
	}
	if req.DriverID == "" {
		return nil, ErrInvalidDriverID
	}

	driver, err := s.driverRepo.GetByID(ctx, req.DriverID)
	if err != nil {
		return nil, err
	}

	ride, err := s.rideRepo.GetByID(ctx, req.RideID)
	if err != nil {
		return nil, err
	}

	if s.lockStore != nil {
		locked, err := s.lockStore.AcquireRideLock(ctx, req.RideID, acceptLockTTL)
		if err != nil {
			return nil, err
		}
		if !locked {
			// Another accept is in flight for this ride.
			return nil, ErrRideUnavailable
		}
		defer func() { _ = s.lockStore.ReleaseRideLock(ctx, req.RideID) }()
	}

	if ride.Status != domain.RideStatusRequested {
		return nil, ErrRideUnavailable
	}

	if !Eligible(ride, driver) {
		return nil, ErrDriverNotEligible
	}

	activeRide, err := s.rideRepo.GetActiveByDriverID(ctx, req.DriverID)
	if err != nil {
		return nil, err
	}
	if activeRide != nil {
		return nil, ErrDriverHasActiveRide
	}

	accepted, err := s.rideRepo.Assign(ctx, req.RideID, req.DriverID)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrRideUnavailable
		}
		return nil, err
	}

	if s.notificationService != nil {
		_ = s.notificationService.NotifyRideAccepted(ctx, accepted, driver)
	}

	return accepted, nil
}

// StartRide moves an Accepted ride to InProgress. Only the bound driver
// may start the ride.
func (s *RideService) StartRide(ctx context.Context, rideID, driverID string) (*domain.Ride, error) {
	return s.advance(ctx, rideID, driverID, domain.RideStatusAccepted, domain.RideStatusInProgress)
}

// CompleteRide moves an InProgress ride to Completed. Only the bound driver
// may complete the ride. The completed ride becomes permanent history.
func (s *RideService) CompleteRide(ctx context.Context, rideID, driverID string) (*domain.Ride, error) {
	return s.advance(ctx, rideID, driverID, domain.RideStatusInProgress, domain.RideStatusCompleted)
}

// advance performs a bound-driver transition with compare-and-set commit.
func (s *RideService) advance(ctx context.Context, rideID, driverID string, from, to domain.RideStatus) (*domain.Ride, error) {
	if rideID == "" {
		return nil, ErrInvalidRideID
	}
	if driverID == "" {
		return nil, ErrInvalidDriverID
	}

	ride, err := s.rideRepo.GetByID(ctx, rideID)
	if err != nil {
		return nil, err
	}

	if ride.DriverID != driverID {
		return nil, ErrNotRideDriver
	}

	if ride.Status != from {
		return nil, ErrInvalidTransition
	}

	updated, err := s.rideRepo.UpdateStatus(ctx, rideID, driverID, from, to)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			// The ride moved between read and commit.
			return nil, ErrInvalidTransition
		}
		return nil, err
	}

	if s.notificationService != nil {
		switch to {
		case domain.RideStatusInProgress:
			_ = s.notificationService.NotifyRideStarted(ctx, updated)
		case domain.RideStatusCompleted:
			_ = s.notificationService.NotifyRideCompleted(ctx, updated)
		}
	}

	return updated, nil
}

func (s *RideService) validateRequest(req RequestRideRequest) error {
	if req.PassengerID == "" {
		return ErrInvalidPassengerID
	}
	if req.Pickup == "" {
		return ErrPickupRequired
	}
	if req.Drop == "" {
		return ErrDropRequired
	}
	if !domain.ValidVehicleType(req.RideType) {
		return ErrInvalidRideType
	}
	if req.PreferredDriverGender != "" && !domain.ValidGender(req.PreferredDriverGender) {
		return ErrInvalidGenderPreference
	}
	return nil
}
