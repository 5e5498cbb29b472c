package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"ridebooking/internal/domain"
	"ridebooking/internal/repository"
	"ridebooking/internal/repository/memory"
)

type testEnv struct {
	passengerRepo *memory.PassengerRepository
	driverRepo    *memory.DriverRepository
	rideRepo      *memory.RideRepository
	rideService   *RideService
	queryService  *QueryService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	passengerRepo := memory.NewPassengerRepository()
	driverRepo := memory.NewDriverRepository()
	rideRepo := memory.NewRideRepository()
	matching := NewMatchingService(rideRepo)

	return &testEnv{
		passengerRepo: passengerRepo,
		driverRepo:    driverRepo,
		rideRepo:      rideRepo,
		rideService:   NewRideService(rideRepo, passengerRepo, driverRepo, matching, nil, nil),
		queryService:  NewQueryService(rideRepo, driverRepo, matching),
	}
}

func (e *testEnv) addPassenger(t *testing.T, id string, gender domain.Gender) *domain.Passenger {
	t.Helper()

	passenger := &domain.Passenger{
		ID:        id,
		Name:      "passenger " + id,
		Gender:    gender,
		Email:     id + "@demo.com",
		CreatedAt: time.Now(),
	}
	if err := e.passengerRepo.Create(context.Background(), passenger); err != nil {
		t.Fatalf("create passenger: %v", err)
	}
	return passenger
}

func (e *testEnv) addDriver(t *testing.T, id string, gender domain.Gender, vehicle domain.VehicleType) *domain.Driver {
	t.Helper()

	driver := availableDriver(id, gender, vehicle)
	if err := e.driverRepo.Create(context.Background(), driver); err != nil {
		t.Fatalf("create driver: %v", err)
	}
	return driver
}

func (e *testEnv) requestRide(t *testing.T, passengerID string, rideType domain.VehicleType, pref domain.Gender) *domain.Ride {
	t.Helper()

	ride, err := e.rideService.RequestRide(context.Background(), RequestRideRequest{
		PassengerID:           passengerID,
		Pickup:                "Mall Road",
		Drop:                  "Airport",
		RideType:              rideType,
		PreferredDriverGender: pref,
	})
	if err != nil {
		t.Fatalf("request ride: %v", err)
	}
	return ride
}

func TestRequestRide_CreatesRequestedRide(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.addPassenger(t, "p-1", domain.GenderMale)

	ride := env.requestRide(t, "p-1", domain.VehicleTypeCar, "")

	if ride.Status != domain.RideStatusRequested {
		t.Errorf("expected status %s, got %s", domain.RideStatusRequested, ride.Status)
	}
	if ride.DriverID != "" {
		t.Errorf("new ride must have no driver bound, got %q", ride.DriverID)
	}
	if ride.ID == "" {
		t.Error("ride must be assigned an id")
	}
}

func TestRequestRide_UnknownPassenger(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	_, err := env.rideService.RequestRide(context.Background(), RequestRideRequest{
		PassengerID: "ghost",
		Pickup:      "Mall Road",
		Drop:        "Airport",
		RideType:    domain.VehicleTypeCar,
	})
	if !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestRequestRide_ValidatesInput(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.addPassenger(t, "p-1", domain.GenderFemale)
	ctx := context.Background()

	_, err := env.rideService.RequestRide(ctx, RequestRideRequest{
		PassengerID: "p-1", Drop: "Airport", RideType: domain.VehicleTypeCar,
	})
	if !errors.Is(err, ErrPickupRequired) {
		t.Errorf("expected ErrPickupRequired, got %v", err)
	}

	_, err = env.rideService.RequestRide(ctx, RequestRideRequest{
		PassengerID: "p-1", Pickup: "Mall Road", Drop: "Airport", RideType: "Helicopter",
	})
	if !errors.Is(err, ErrInvalidRideType) {
		t.Errorf("expected ErrInvalidRideType, got %v", err)
	}

	_, err = env.rideService.RequestRide(ctx, RequestRideRequest{
		PassengerID: "p-1", Pickup: "Mall Road", Drop: "Airport",
		RideType: domain.VehicleTypeCar, PreferredDriverGender: "other",
	})
	if !errors.Is(err, ErrInvalidGenderPreference) {
		t.Errorf("expected ErrInvalidGenderPreference, got %v", err)
	}
}

func TestRequestRide_SingleActiveRidePerPassenger(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.addPassenger(t, "p-1", domain.GenderMale)
	env.requestRide(t, "p-1", domain.VehicleTypeCar, "")

	_, err := env.rideService.RequestRide(context.Background(), RequestRideRequest{
		PassengerID: "p-1",
		Pickup:      "Bahria Town",
		Drop:        "PWD Colony",
		RideType:    domain.VehicleTypeBike,
	})
	if !errors.Is(err, ErrPassengerHasActiveRide) {
		t.Errorf("expected ErrPassengerHasActiveRide, got %v", err)
	}
}

func TestAcceptRide_BindsDriver(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.addPassenger(t, "p-1", domain.GenderMale)
	env.addDriver(t, "d-1", domain.GenderMale, domain.VehicleTypeCar)
	ride := env.requestRide(t, "p-1", domain.VehicleTypeCar, "")

	accepted, err := env.rideService.AcceptRide(context.Background(), AcceptRideRequest{
		RideID:   ride.ID,
		DriverID: "d-1",
	})
	if err != nil {
		t.Fatalf("accept ride: %v", err)
	}

	if accepted.Status != domain.RideStatusAccepted {
		t.Errorf("expected status %s, got %s", domain.RideStatusAccepted, accepted.Status)
	}
	if accepted.DriverID != "d-1" {
		t.Errorf("expected driver d-1 bound, got %q", accepted.DriverID)
	}
}

func TestAcceptRide_RejectsIneligibleDriver(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.addPassenger(t, "p-1", domain.GenderFemale)
	env.addDriver(t, "d-bike", domain.GenderMale, domain.VehicleTypeBike)
	ride := env.requestRide(t, "p-1", domain.VehicleTypeCar, "")

	_, err := env.rideService.AcceptRide(context.Background(), AcceptRideRequest{
		RideID:   ride.ID,
		DriverID: "d-bike",
	})
	if !errors.Is(err, ErrDriverNotEligible) {
		t.Errorf("expected ErrDriverNotEligible, got %v", err)
	}

	// The ride is untouched.
	stored, err := env.rideRepo.GetByID(context.Background(), ride.ID)
	if err != nil {
		t.Fatalf("get ride: %v", err)
	}
	if stored.Status != domain.RideStatusRequested || stored.DriverID != "" {
		t.Error("failed accept must leave the ride unchanged")
	}
}

func TestAcceptRide_GenderPreferenceEnforced(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.addPassenger(t, "p-1", domain.GenderFemale)
	env.addDriver(t, "d-male", domain.GenderMale, domain.VehicleTypeBike)
	env.addDriver(t, "d-female", domain.GenderFemale, domain.VehicleTypeBike)
	ride := env.requestRide(t, "p-1", domain.VehicleTypeBike, domain.GenderFemale)

	_, err := env.rideService.AcceptRide(context.Background(), AcceptRideRequest{
		RideID:   ride.ID,
		DriverID: "d-male",
	})
	if !errors.Is(err, ErrDriverNotEligible) {
		t.Errorf("expected ErrDriverNotEligible for male driver, got %v", err)
	}

	accepted, err := env.rideService.AcceptRide(context.Background(), AcceptRideRequest{
		RideID:   ride.ID,
		DriverID: "d-female",
	})
	if err != nil {
		t.Fatalf("accept by female driver: %v", err)
	}
	if accepted.DriverID != "d-female" {
		t.Errorf("expected d-female bound, got %q", accepted.DriverID)
	}
}

func TestAcceptRide_SingleActiveRidePerDriver(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.addPassenger(t, "p-1", domain.GenderMale)
	env.addPassenger(t, "p-2", domain.GenderFemale)
	env.addDriver(t, "d-1", domain.GenderMale, domain.VehicleTypeCar)

	first := env.requestRide(t, "p-1", domain.VehicleTypeCar, "")
	second := env.requestRide(t, "p-2", domain.VehicleTypeCar, "")

	ctx := context.Background()
	if _, err := env.rideService.AcceptRide(ctx, AcceptRideRequest{RideID: first.ID, DriverID: "d-1"}); err != nil {
		t.Fatalf("accept first ride: %v", err)
	}

	_, err := env.rideService.AcceptRide(ctx, AcceptRideRequest{RideID: second.ID, DriverID: "d-1"})
	if !errors.Is(err, ErrDriverHasActiveRide) {
		t.Errorf("expected ErrDriverHasActiveRide, got %v", err)
	}
}

func TestAcceptRide_ConcurrentAccepts_ExactlyOneWins(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.addPassenger(t, "p-1", domain.GenderMale)
	env.addDriver(t, "d-1", domain.GenderMale, domain.VehicleTypeCar)
	env.addDriver(t, "d-2", domain.GenderFemale, domain.VehicleTypeCar)
	ride := env.requestRide(t, "p-1", domain.VehicleTypeCar, "")

	ctx := context.Background()
	var wg sync.WaitGroup
	results := make(map[string]error, 2)
	var mu sync.Mutex

	for _, driverID := range []string{"d-1", "d-2"} {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			_, err := env.rideService.AcceptRide(ctx, AcceptRideRequest{RideID: ride.ID, DriverID: id})
			mu.Lock()
			results[id] = err
			mu.Unlock()
		}(driverID)
	}
	wg.Wait()

	var wins, losses int
	for driverID, err := range results {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, ErrRideUnavailable):
			losses++
		default:
			t.Errorf("driver %s: unexpected error %v", driverID, err)
		}
	}

	if wins != 1 || losses != 1 {
		t.Fatalf("expected exactly one winner and one loser, got %d wins, %d losses", wins, losses)
	}

	stored, err := env.rideRepo.GetByID(ctx, ride.ID)
	if err != nil {
		t.Fatalf("get ride: %v", err)
	}
	if stored.Status != domain.RideStatusAccepted {
		t.Errorf("expected status %s, got %s", domain.RideStatusAccepted, stored.Status)
	}
	if stored.DriverID != "d-1" && stored.DriverID != "d-2" {
		t.Errorf("bound driver must be one of the contenders, got %q", stored.DriverID)
	}
}

func TestStartRide_OnlyBoundDriver(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.addPassenger(t, "p-1", domain.GenderMale)
	env.addDriver(t, "d-1", domain.GenderMale, domain.VehicleTypeCar)
	env.addDriver(t, "d-2", domain.GenderFemale, domain.VehicleTypeCar)
	ride := env.requestRide(t, "p-1", domain.VehicleTypeCar, "")

	ctx := context.Background()
	if _, err := env.rideService.AcceptRide(ctx, AcceptRideRequest{RideID: ride.ID, DriverID: "d-1"}); err != nil {
		t.Fatalf("accept ride: %v", err)
	}

	_, err := env.rideService.StartRide(ctx, ride.ID, "d-2")
	if !errors.Is(err, ErrNotRideDriver) {
		t.Errorf("expected ErrNotRideDriver, got %v", err)
	}

	started, err := env.rideService.StartRide(ctx, ride.ID, "d-1")
	if err != nil {
		t.Fatalf("start ride: %v", err)
	}
	if started.Status != domain.RideStatusInProgress {
		t.Errorf("expected status %s, got %s", domain.RideStatusInProgress, started.Status)
	}
}

func TestStartRide_InvalidFromRequested(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.addPassenger(t, "p-1", domain.GenderMale)
	ride := env.requestRide(t, "p-1", domain.VehicleTypeCar, "")

	// No driver is bound while Requested, so the caller cannot be the
	// bound driver.
	_, err := env.rideService.StartRide(context.Background(), ride.ID, "d-1")
	if !errors.Is(err, ErrNotRideDriver) {
		t.Errorf("expected ErrNotRideDriver, got %v", err)
	}
}

func TestCompleteRide_IdempotenceOfFailure(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.addPassenger(t, "p-1", domain.GenderMale)
	env.addDriver(t, "d-1", domain.GenderMale, domain.VehicleTypeCar)
	ride := env.requestRide(t, "p-1", domain.VehicleTypeCar, "")

	ctx := context.Background()
	if _, err := env.rideService.AcceptRide(ctx, AcceptRideRequest{RideID: ride.ID, DriverID: "d-1"}); err != nil {
		t.Fatalf("accept ride: %v", err)
	}
	if _, err := env.rideService.StartRide(ctx, ride.ID, "d-1"); err != nil {
		t.Fatalf("start ride: %v", err)
	}
	if _, err := env.rideService.CompleteRide(ctx, ride.ID, "d-1"); err != nil {
		t.Fatalf("complete ride: %v", err)
	}

	// Completing an already-completed ride fails the same way every time
	// and never changes the record.
	for i := 0; i < 2; i++ {
		_, err := env.rideService.CompleteRide(ctx, ride.ID, "d-1")
		if !errors.Is(err, ErrInvalidTransition) {
			t.Errorf("attempt %d: expected ErrInvalidTransition, got %v", i+1, err)
		}
	}

	stored, err := env.rideRepo.GetByID(ctx, ride.ID)
	if err != nil {
		t.Fatalf("get ride: %v", err)
	}
	if stored.Status != domain.RideStatusCompleted || stored.DriverID != "d-1" {
		t.Error("repeated complete must leave the record unchanged")
	}
}

func TestRideLifecycle_EndToEnd(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.addPassenger(t, "p-1", domain.GenderMale)
	env.addDriver(t, "d-1", domain.GenderMale, domain.VehicleTypeCar)
	ctx := context.Background()

	ride, err := env.rideService.RequestRide(ctx, RequestRideRequest{
		PassengerID: "p-1",
		Pickup:      "Mall Road",
		Drop:        "Airport",
		RideType:    domain.VehicleTypeCar,
	})
	if err != nil {
		t.Fatalf("request ride: %v", err)
	}
	if ride.Status != domain.RideStatusRequested || ride.DriverID != "" {
		t.Fatal("new ride must be Requested with no driver")
	}

	if _, err := env.rideService.AcceptRide(ctx, AcceptRideRequest{RideID: ride.ID, DriverID: "d-1"}); err != nil {
		t.Fatalf("accept ride: %v", err)
	}
	if _, err := env.rideService.StartRide(ctx, ride.ID, "d-1"); err != nil {
		t.Fatalf("start ride: %v", err)
	}
	if _, err := env.rideService.CompleteRide(ctx, ride.ID, "d-1"); err != nil {
		t.Fatalf("complete ride: %v", err)
	}

	// Completed ride shows up in the passenger's history...
	history, err := env.queryService.HistoryForPassenger(ctx, "p-1")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 1 || history[0].ID != ride.ID {
		t.Fatalf("expected completed ride in history, got %d rides", len(history))
	}

	// ...and in no driver's eligible-requests list.
	requests, err := env.queryService.EligibleRequestsForDriver(ctx, "d-1")
	if err != nil {
		t.Fatalf("eligible requests: %v", err)
	}
	if len(requests) != 0 {
		t.Errorf("completed ride must not appear as a request, got %d", len(requests))
	}

	// The passenger is free to request again.
	if _, err := env.rideService.RequestRide(ctx, RequestRideRequest{
		PassengerID: "p-1",
		Pickup:      "Blue Area",
		Drop:        "Giga Mall",
		RideType:    domain.VehicleTypeBike,
	}); err != nil {
		t.Errorf("passenger with only completed rides should be able to request: %v", err)
	}
}

func TestAvailabilityFlip_DoesNotAffectBoundRide(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.addPassenger(t, "p-1", domain.GenderFemale)
	env.addDriver(t, "d-1", domain.GenderFemale, domain.VehicleTypeBike)
	ride := env.requestRide(t, "p-1", domain.VehicleTypeBike, "")

	ctx := context.Background()
	if _, err := env.rideService.AcceptRide(ctx, AcceptRideRequest{RideID: ride.ID, DriverID: "d-1"}); err != nil {
		t.Fatalf("accept ride: %v", err)
	}

	// Availability is advisory at accept time only.
	if err := env.driverRepo.UpdateAvailability(ctx, "d-1", false); err != nil {
		t.Fatalf("update availability: %v", err)
	}

	started, err := env.rideService.StartRide(ctx, ride.ID, "d-1")
	if err != nil {
		t.Fatalf("start ride after availability flip: %v", err)
	}
	if started.Status != domain.RideStatusInProgress {
		t.Errorf("expected status %s, got %s", domain.RideStatusInProgress, started.Status)
	}
}
