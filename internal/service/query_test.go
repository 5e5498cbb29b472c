package service

import (
	"context"
	"errors"
	"testing"

	"ridebooking/internal/domain"
	"ridebooking/internal/repository"
)

func TestActiveRideForPassenger(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.addPassenger(t, "p-1", domain.GenderMale)
	ctx := context.Background()

	active, err := env.queryService.ActiveRideForPassenger(ctx, "p-1")
	if err != nil {
		t.Fatalf("active ride: %v", err)
	}
	if active != nil {
		t.Fatal("passenger with no rides should have no active ride")
	}

	ride := env.requestRide(t, "p-1", domain.VehicleTypeCar, "")

	active, err = env.queryService.ActiveRideForPassenger(ctx, "p-1")
	if err != nil {
		t.Fatalf("active ride: %v", err)
	}
	if active == nil || active.ID != ride.ID {
		t.Fatal("requested ride should be the passenger's active ride")
	}
}

func TestActiveRideForDriver_RequestedRideDoesNotCount(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.addPassenger(t, "p-1", domain.GenderMale)
	env.addDriver(t, "d-1", domain.GenderMale, domain.VehicleTypeCar)
	ride := env.requestRide(t, "p-1", domain.VehicleTypeCar, "")
	ctx := context.Background()

	active, err := env.queryService.ActiveRideForDriver(ctx, "d-1")
	if err != nil {
		t.Fatalf("active ride: %v", err)
	}
	if active != nil {
		t.Fatal("driver with no accepted ride should have no active ride")
	}

	if _, err := env.rideService.AcceptRide(ctx, AcceptRideRequest{RideID: ride.ID, DriverID: "d-1"}); err != nil {
		t.Fatalf("accept ride: %v", err)
	}

	active, err = env.queryService.ActiveRideForDriver(ctx, "d-1")
	if err != nil {
		t.Fatalf("active ride: %v", err)
	}
	if active == nil || active.ID != ride.ID {
		t.Fatal("accepted ride should be the driver's active ride")
	}
}

func TestHistoryForPassenger_CompletedOnlyInOrder(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.addPassenger(t, "p-1", domain.GenderFemale)
	env.addDriver(t, "d-1", domain.GenderFemale, domain.VehicleTypeBike)
	ctx := context.Background()

	var completed []string
	for i := 0; i < 3; i++ {
		ride := env.requestRide(t, "p-1", domain.VehicleTypeBike, "")
		if _, err := env.rideService.AcceptRide(ctx, AcceptRideRequest{RideID: ride.ID, DriverID: "d-1"}); err != nil {
			t.Fatalf("accept ride: %v", err)
		}
		if _, err := env.rideService.StartRide(ctx, ride.ID, "d-1"); err != nil {
			t.Fatalf("start ride: %v", err)
		}
		if _, err := env.rideService.CompleteRide(ctx, ride.ID, "d-1"); err != nil {
			t.Fatalf("complete ride: %v", err)
		}
		completed = append(completed, ride.ID)
	}

	// One still-open ride must not show up in history.
	env.requestRide(t, "p-1", domain.VehicleTypeCar, "")

	history, err := env.queryService.HistoryForPassenger(ctx, "p-1")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != len(completed) {
		t.Fatalf("expected %d completed rides, got %d", len(completed), len(history))
	}
	for i, ride := range history {
		if ride.ID != completed[i] {
			t.Errorf("history[%d] = %s, want %s", i, ride.ID, completed[i])
		}
	}
}

func TestEligibleRequestsForDriver_UnknownDriver(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	_, err := env.queryService.EligibleRequestsForDriver(context.Background(), "ghost")
	if !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestEligibleRequestsForDriver_AcceptedRideLeavesLists(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.addPassenger(t, "p-1", domain.GenderMale)
	env.addDriver(t, "d-1", domain.GenderMale, domain.VehicleTypeCar)
	env.addDriver(t, "d-2", domain.GenderFemale, domain.VehicleTypeCar)
	ride := env.requestRide(t, "p-1", domain.VehicleTypeCar, "")
	ctx := context.Background()

	for _, driverID := range []string{"d-1", "d-2"} {
		requests, err := env.queryService.EligibleRequestsForDriver(ctx, driverID)
		if err != nil {
			t.Fatalf("eligible requests for %s: %v", driverID, err)
		}
		if len(requests) != 1 {
			t.Fatalf("driver %s should see 1 request, got %d", driverID, len(requests))
		}
	}

	if _, err := env.rideService.AcceptRide(ctx, AcceptRideRequest{RideID: ride.ID, DriverID: "d-1"}); err != nil {
		t.Fatalf("accept ride: %v", err)
	}

	requests, err := env.queryService.EligibleRequestsForDriver(ctx, "d-2")
	if err != nil {
		t.Fatalf("eligible requests: %v", err)
	}
	if len(requests) != 0 {
		t.Errorf("accepted ride must leave every driver's request list, got %d", len(requests))
	}
}
