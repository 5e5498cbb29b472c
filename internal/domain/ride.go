package domain

import "time"

// RideStatus represents the current lifecycle state of a ride.
type RideStatus string

const (
	RideStatusRequested  RideStatus = "Requested"
	RideStatusAccepted   RideStatus = "Accepted"
	RideStatusInProgress RideStatus = "InProgress"
	RideStatusCompleted  RideStatus = "Completed"
)

// Ride represents a single transportation request from creation to completion.
// DriverID is empty exactly while the ride is in Requested state; once a
// driver is bound it never changes. Rides are never deleted — a completed
// ride is permanent history for the passenger.
type Ride struct {
	ID                    string
	PassengerID           string
	DriverID              string
	Pickup                string
	Drop                  string
	RideType              VehicleType
	PreferredDriverGender Gender // empty means no preference
	Status                RideStatus
	CreatedAt             time.Time
}

// Active reports whether the ride is not yet completed.
func (r *Ride) Active() bool {
	return r.Status != RideStatusCompleted
}

// OccupiesDriver reports whether the ride counts against the bound driver's
// one-active-ride limit.
func (r *Ride) OccupiesDriver() bool {
	return r.Status == RideStatusAccepted || r.Status == RideStatusInProgress
}
