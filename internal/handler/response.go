package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"ridebooking/internal/domain"
	"ridebooking/internal/repository"
	"ridebooking/internal/service"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// RideResponse is the HTTP representation of a ride.
type RideResponse struct {
	ID                    string `json:"id"`
	PassengerID           string `json:"passenger_id"`
	DriverID              string `json:"driver_id,omitempty"`
	Pickup                string `json:"pickup"`
	Drop                  string `json:"drop"`
	RideType              string `json:"ride_type"`
	PreferredDriverGender string `json:"preferred_driver_gender,omitempty"`
	Status                string `json:"status"`
	CreatedAt             string `json:"created_at"`
}

func toRideResponse(ride *domain.Ride) RideResponse {
	return RideResponse{
		ID:                    ride.ID,
		PassengerID:           ride.PassengerID,
		DriverID:              ride.DriverID,
		Pickup:                ride.Pickup,
		Drop:                  ride.Drop,
		RideType:              string(ride.RideType),
		PreferredDriverGender: string(ride.PreferredDriverGender),
		Status:                string(ride.Status),
		CreatedAt:             ride.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

func toRideResponses(rides []*domain.Ride) []RideResponse {
	responses := make([]RideResponse, 0, len(rides))
	for _, ride := range rides {
		responses = append(responses, toRideResponse(ride))
	}
	return responses
}

// respondError sends an error response with the appropriate HTTP status code.
func respondError(c *gin.Context, err error) {
	code := mapErrorToHTTPStatus(err)
	c.JSON(code, ErrorResponse{Error: err.Error()})
}

// respondJSON sends a JSON response with the given status code.
func respondJSON(c *gin.Context, code int, data any) {
	c.JSON(code, data)
}

// mapErrorToHTTPStatus maps service/repository errors to HTTP status codes.
func mapErrorToHTTPStatus(err error) int {
	switch {
	// Not found errors
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound

	// Validation errors - Bad Request
	case errors.Is(err, service.ErrInvalidPassengerID),
		errors.Is(err, service.ErrInvalidDriverID),
		errors.Is(err, service.ErrInvalidRideID),
		errors.Is(err, service.ErrPickupRequired),
		errors.Is(err, service.ErrDropRequired),
		errors.Is(err, service.ErrInvalidRideType),
		errors.Is(err, service.ErrInvalidGenderPreference),
		errors.Is(err, service.ErrInvalidName),
		errors.Is(err, service.ErrInvalidEmail),
		errors.Is(err, service.ErrInvalidPassword),
		errors.Is(err, service.ErrInvalidGender):
		return http.StatusBadRequest

	// Authentication failures
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized

	// Forbidden/Business rule errors
	case errors.Is(err, service.ErrNotRideDriver),
		errors.Is(err, service.ErrDriverNotEligible):
		return http.StatusForbidden

	// Conflict errors - retry after re-reading
	case errors.Is(err, service.ErrPassengerHasActiveRide),
		errors.Is(err, service.ErrDriverHasActiveRide),
		errors.Is(err, service.ErrRideUnavailable),
		errors.Is(err, service.ErrInvalidTransition),
		errors.Is(err, service.ErrEmailAlreadyRegistered),
		errors.Is(err, repository.ErrConflict):
		return http.StatusConflict

	// Default to internal server error
	default:
		return http.StatusInternalServerError
	}
}
