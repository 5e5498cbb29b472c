package repository

import "errors"

var (
	// ErrNotFound is returned when a requested entity does not exist.
	ErrNotFound = errors.New("entity not found")

	// ErrConflict is returned when a compare-and-set update finds the
	// record in a state other than the expected one. The record is left
	// unchanged.
	ErrConflict = errors.New("entity state conflict")
)
