package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ridebooking/internal/auth"
	"ridebooking/internal/repository"
	"ridebooking/internal/service"
)

// DriverHandler handles the driver-facing endpoints.
type DriverHandler struct {
	rideService  *service.RideService
	queryService *service.QueryService
	driverRepo   repository.DriverRepository
}

// NewDriverHandler creates a new DriverHandler.
func NewDriverHandler(
	rideService *service.RideService,
	queryService *service.QueryService,
	driverRepo repository.DriverRepository,
) *DriverHandler {
	return &DriverHandler{
		rideService:  rideService,
		queryService: queryService,
		driverRepo:   driverRepo,
	}
}

// SetAvailabilityRequest is the HTTP request body for the availability toggle.
type SetAvailabilityRequest struct {
	Available *bool `json:"available" binding:"required"`
}

// GetEligibleRequests handles GET /v1/drivers/requests
//
// Rejecting a listed request is a client-local dismissal and never reaches
// the server, so there is no corresponding endpoint.
func (h *DriverHandler) GetEligibleRequests(c *gin.Context) {
	rides, err := h.queryService.EligibleRequestsForDriver(c.Request.Context(), auth.CallerID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toRideResponses(rides))
}

// GetActiveRide handles GET /v1/drivers/active
func (h *DriverHandler) GetActiveRide(c *gin.Context) {
	ride, err := h.queryService.ActiveRideForDriver(c.Request.Context(), auth.CallerID(c))
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

// SetAvailability handles POST /v1/drivers/availability
func (h *DriverHandler) SetAvailability(c *gin.Context) {
	var req SetAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	driverID := auth.CallerID(c)
	if err := h.driverRepo.UpdateAvailability(c.Request.Context(), driverID, *req.Available); err != nil {
		respondError(c, err)
		return
	}

	driver, err := h.driverRepo.GetByID(c.Request.Context(), driverID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toDriverResponse(driver))
}

// AcceptRide handles POST /v1/rides/:id/accept
func (h *DriverHandler) AcceptRide(c *gin.Context) {
	ride, err := h.rideService.AcceptRide(c.Request.Context(), service.AcceptRideRequest{
		RideID:   c.Param("id"),
		DriverID: auth.CallerID(c),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toRideResponse(ride))
}

// StartRide handles POST /v1/rides/:id/start
func (h *DriverHandler) StartRide(c *gin.Context) {
	ride, err := h.rideService.StartRide(c.Request.Context(), c.Param("id"), auth.CallerID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toRideResponse(ride))
}

// CompleteRide handles POST /v1/rides/:id/complete
func (h *DriverHandler) CompleteRide(c *gin.Context) {
	ride, err := h.rideService.CompleteRide(c.Request.Context(), c.Param("id"), auth.CallerID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toRideResponse(ride))
}
