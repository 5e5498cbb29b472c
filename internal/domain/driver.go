package domain

import "time"

// VehicleType represents the kind of vehicle a driver operates.
// A ride's RideType must match the vehicle type of any driver who accepts it.
type VehicleType string

const (
	VehicleTypeBike     VehicleType = "Bike"
	VehicleTypeCar      VehicleType = "Car"
	VehicleTypeRickshaw VehicleType = "Rickshaw"
)

// ValidVehicleType reports whether v is one of the closed set of vehicle types.
func ValidVehicleType(v VehicleType) bool {
	switch v {
	case VehicleTypeBike, VehicleTypeCar, VehicleTypeRickshaw:
		return true
	}
	return false
}

// Driver represents a driver in the system.
// Available is the driver's declared capacity to accept work. It is checked
// at accept time only and is never auto-toggled by the core.
type Driver struct {
	ID           string
	Name         string
	Gender       Gender
	Email        string
	PasswordHash string
	VehicleType  VehicleType
	Available    bool
	CreatedAt    time.Time
}
