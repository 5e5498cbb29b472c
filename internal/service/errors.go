package service

import "errors"

var (
	// ErrInvalidPassengerID is returned when passenger ID is empty.
	ErrInvalidPassengerID = errors.New("invalid passenger id")

	// ErrInvalidDriverID is returned when driver ID is empty.
	ErrInvalidDriverID = errors.New("invalid driver id")

	// ErrInvalidRideID is returned when ride ID is empty.
	ErrInvalidRideID = errors.New("invalid ride id")

	// ErrPickupRequired is returned when the pickup location is empty.
	ErrPickupRequired = errors.New("pickup location is required")

	// ErrDropRequired is returned when the drop-off location is empty.
	ErrDropRequired = errors.New("drop-off location is required")

	// ErrInvalidRideType is returned when the ride type is not one of the
	// known vehicle types.
	ErrInvalidRideType = errors.New("invalid ride type")

	// ErrInvalidGenderPreference is returned when the preferred driver
	// gender is neither empty nor a known gender marker.
	ErrInvalidGenderPreference = errors.New("invalid preferred driver gender")

	// ErrPassengerHasActiveRide is returned when a passenger requests a ride
	// while another of their rides is not yet completed.
	ErrPassengerHasActiveRide = errors.New("passenger already has an active ride")

	// ErrDriverHasActiveRide is returned when a driver tries to accept a
	// ride while bound to another accepted or in-progress ride.
	ErrDriverHasActiveRide = errors.New("driver already has an active ride")

	// ErrDriverNotEligible is returned when the driver's profile does not
	// satisfy the ride's matching rules.
	ErrDriverNotEligible = errors.New("driver not eligible for this ride")

	// ErrRideUnavailable is returned when the ride was no longer available
	// at commit time (lost the accept race). The caller should re-query.
	ErrRideUnavailable = errors.New("ride no longer available")

	// ErrInvalidTransition is returned when the requested state change is
	// not legal from the ride's current state. The ride is unchanged.
	ErrInvalidTransition = errors.New("invalid ride status transition")

	// ErrNotRideDriver is returned when a driver acts on a ride they are
	// not bound to.
	ErrNotRideDriver = errors.New("driver not bound to this ride")

	// ErrInvalidName is returned when a profile name is empty.
	ErrInvalidName = errors.New("name is required")

	// ErrInvalidEmail is returned when an email is empty.
	ErrInvalidEmail = errors.New("email is required")

	// ErrInvalidPassword is returned when a password is empty.
	ErrInvalidPassword = errors.New("password is required")

	// ErrInvalidGender is returned when a profile gender marker is unknown.
	ErrInvalidGender = errors.New("invalid gender")

	// ErrEmailAlreadyRegistered is returned when registering with an email
	// that already belongs to a profile of the same role.
	ErrEmailAlreadyRegistered = errors.New("email already registered")

	// ErrInvalidCredentials is returned when authentication fails.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
