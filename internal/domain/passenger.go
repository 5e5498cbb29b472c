package domain

import "time"

// Gender is the gender marker carried by passenger and driver profiles.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// ValidGender reports whether g is one of the closed set of gender markers.
func ValidGender(g Gender) bool {
	return g == GenderMale || g == GenderFemale
}

// Passenger represents a passenger in the system.
type Passenger struct {
	ID           string
	Name         string
	Gender       Gender
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
