package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ridebooking/internal/auth"
	"ridebooking/internal/domain"
	"ridebooking/internal/service"
)

// RideHandler handles the passenger-facing ride endpoints.
type RideHandler struct {
	rideService  *service.RideService
	queryService *service.QueryService
}

// NewRideHandler creates a new RideHandler.
func NewRideHandler(rideService *service.RideService, queryService *service.QueryService) *RideHandler {
	return &RideHandler{
		rideService:  rideService,
		queryService: queryService,
	}
}

// RequestRideRequest is the HTTP request body for requesting a ride.
type RequestRideRequest struct {
	Pickup                string `json:"pickup"`
	Drop                  string `json:"drop"`
	RideType              string `json:"ride_type"`
	PreferredDriverGender string `json:"preferred_driver_gender,omitempty"`
}

// RequestRide handles POST /v1/rides
func (h *RideHandler) RequestRide(c *gin.Context) {
	var req RequestRideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	ride, err := h.rideService.RequestRide(c.Request.Context(), service.RequestRideRequest{
		PassengerID:           auth.CallerID(c),
		Pickup:                req.Pickup,
		Drop:                  req.Drop,
		RideType:              domain.VehicleType(req.RideType),
		PreferredDriverGender: domain.Gender(req.PreferredDriverGender),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, toRideResponse(ride))
}

// GetActiveRide handles GET /v1/rides/active
func (h *RideHandler) GetActiveRide(c *gin.Context) {
	ride, err := h.queryService.ActiveRideForPassenger(c.Request.Context(), auth.CallerID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	if ride == nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "no active ride"})
		return
	}

	respondJSON(c, http.StatusOK, toRideResponse(ride))
}

// GetHistory handles GET /v1/rides/history
func (h *RideHandler) GetHistory(c *gin.Context) {
	rides, err := h.queryService.HistoryForPassenger(c.Request.Context(), auth.CallerID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toRideResponses(rides))
}
