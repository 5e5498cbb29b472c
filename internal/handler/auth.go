package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ridebooking/internal/domain"
	"ridebooking/internal/service"
)

// AuthHandler handles HTTP requests for registration and login.
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RegisterPassengerRequest is the HTTP request body for passenger registration.
type RegisterPassengerRequest struct {
	Name     string `json:"name"`
	Gender   string `json:"gender"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterDriverRequest is the HTTP request body for driver registration.
type RegisterDriverRequest struct {
	Name        string `json:"name"`
	Gender      string `json:"gender"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	VehicleType string `json:"vehicle_type"`
}

// LoginRequest is the HTTP request body for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// PassengerResponse is the HTTP representation of a passenger profile.
type PassengerResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Gender string `json:"gender"`
	Email  string `json:"email"`
}

// DriverResponse is the HTTP representation of a driver profile.
type DriverResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Gender      string `json:"gender"`
	Email       string `json:"email"`
	VehicleType string `json:"vehicle_type"`
	Available   bool   `json:"available"`
}

// AuthResponse carries a profile and its session token.
type AuthResponse struct {
	Token     string             `json:"token"`
	Passenger *PassengerResponse `json:"passenger,omitempty"`
	Driver    *DriverResponse    `json:"driver,omitempty"`
}

func toPassengerResponse(p *domain.Passenger) *PassengerResponse {
	return &PassengerResponse{
		ID:     p.ID,
		Name:   p.Name,
		Gender: string(p.Gender),
		Email:  p.Email,
	}
}

func toDriverResponse(d *domain.Driver) *DriverResponse {
	return &DriverResponse{
		ID:          d.ID,
		Name:        d.Name,
		Gender:      string(d.Gender),
		Email:       d.Email,
		VehicleType: string(d.VehicleType),
		Available:   d.Available,
	}
}

// RegisterPassenger handles POST /v1/passengers/register
func (h *AuthHandler) RegisterPassenger(c *gin.Context) {
	var req RegisterPassengerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	passenger, token, err := h.authService.RegisterPassenger(c.Request.Context(), service.RegisterPassengerRequest{
		Name:     req.Name,
		Gender:   domain.Gender(req.Gender),
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, AuthResponse{
		Token:     token,
		Passenger: toPassengerResponse(passenger),
	})
}

// RegisterDriver handles POST /v1/drivers/register
func (h *AuthHandler) RegisterDriver(c *gin.Context) {
	var req RegisterDriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	driver, token, err := h.authService.RegisterDriver(c.Request.Context(), service.RegisterDriverRequest{
		Name:        req.Name,
		Gender:      domain.Gender(req.Gender),
		Email:       req.Email,
		Password:    req.Password,
		VehicleType: domain.VehicleType(req.VehicleType),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, AuthResponse{
		Token:  token,
		Driver: toDriverResponse(driver),
	})
}

// LoginPassenger handles POST /v1/passengers/login
func (h *AuthHandler) LoginPassenger(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	passenger, token, err := h.authService.LoginPassenger(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, AuthResponse{
		Token:     token,
		Passenger: toPassengerResponse(passenger),
	})
}

// LoginDriver handles POST /v1/drivers/login
func (h *AuthHandler) LoginDriver(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	driver, token, err := h.authService.LoginDriver(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, AuthResponse{
		Token:  token,
		Driver: toDriverResponse(driver),
	})
}
