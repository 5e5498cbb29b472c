package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"ridebooking/internal/auth"
	"ridebooking/internal/domain"
	"ridebooking/internal/repository"
)

// AuthService is the identity provider: it authenticates a credential and
// returns the matching profile, and registers new profiles. The core trusts
// the returned profile's id, gender marker and (for drivers) vehicle type
// and availability.
type AuthService struct {
	passengerRepo repository.PassengerRepository
	driverRepo    repository.DriverRepository
	tokens        *auth.Manager
}

// NewAuthService creates a new AuthService.
func NewAuthService(
	passengerRepo repository.PassengerRepository,
	driverRepo repository.DriverRepository,
	tokens *auth.Manager,
) *AuthService {
	return &AuthService{
		passengerRepo: passengerRepo,
		driverRepo:    driverRepo,
		tokens:        tokens,
	}
}

// RegisterPassengerRequest contains the parameters for passenger registration.
type RegisterPassengerRequest struct {
	Name     string
	Gender   domain.Gender
	Email    string
	Password string
}

// RegisterPassenger creates a new passenger profile and issues a session token.
func (s *AuthService) RegisterPassenger(ctx context.Context, req RegisterPassengerRequest) (*domain.Passenger, string, error) {
	if err := validateProfile(req.Name, req.Gender, req.Email, req.Password); err != nil {
		return nil, "", err
	}

	existing, err := s.passengerRepo.GetByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, "", err
	}
	if existing != nil {
		return nil, "", ErrEmailAlreadyRegistered
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	passenger := &domain.Passenger{
		ID:           uuid.New().String(),
		Name:         req.Name,
		Gender:       req.Gender,
		Email:        req.Email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}

	if err := s.passengerRepo.Create(ctx, passenger); err != nil {
		return nil, "", err
	}

	token, err := s.tokens.Issue(passenger.ID, auth.RolePassenger)
	if err != nil {
		return nil, "", err
	}

	return passenger, token, nil
}

// RegisterDriverRequest contains the parameters for driver registration.
type RegisterDriverRequest struct {
	Name        string
	Gender      domain.Gender
	Email       string
	Password    string
	VehicleType domain.VehicleType
}

// RegisterDriver creates a new driver profile and issues a session token.
// New drivers start with availability declared on.
func (s *AuthService) RegisterDriver(ctx context.Context, req RegisterDriverRequest) (*domain.Driver, string, error) {
	if err := validateProfile(req.Name, req.Gender, req.Email, req.Password); err != nil {
		return nil, "", err
	}
	if !domain.ValidVehicleType(req.VehicleType) {
		return nil, "", ErrInvalidRideType
	}

	existing, err := s.driverRepo.GetByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, "", err
	}
	if existing != nil {
		return nil, "", ErrEmailAlreadyRegistered
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	driver := &domain.Driver{
		ID:           uuid.New().String(),
		Name:         req.Name,
		Gender:       req.Gender,
		Email:        req.Email,
		PasswordHash: string(hash),
		VehicleType:  req.VehicleType,
		Available:    true,
		CreatedAt:    time.Now(),
	}

	if err := s.driverRepo.Create(ctx, driver); err != nil {
		return nil, "", err
	}

	token, err := s.tokens.Issue(driver.ID, auth.RoleDriver)
	if err != nil {
		return nil, "", err
	}

	return driver, token, nil
}

// LoginPassenger authenticates a passenger credential and issues a session
// token. A wrong email and a wrong password are indistinguishable to the
// caller.
func (s *AuthService) LoginPassenger(ctx context.Context, email, password string) (*domain.Passenger, string, error) {
	passenger, err := s.passengerRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(passenger.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(passenger.ID, auth.RolePassenger)
	if err != nil {
		return nil, "", err
	}

	return passenger, token, nil
}

// LoginDriver authenticates a driver credential and issues a session token.
func (s *AuthService) LoginDriver(ctx context.Context, email, password string) (*domain.Driver, string, error) {
	driver, err := s.driverRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(driver.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(driver.ID, auth.RoleDriver)
	if err != nil {
		return nil, "", err
	}

	return driver, token, nil
}

func validateProfile(name string, gender domain.Gender, email, password string) error {
	if name == "" {
		return ErrInvalidName
	}
	if !domain.ValidGender(gender) {
		return ErrInvalidGender
	}
	if email == "" {
		return ErrInvalidEmail
	}
	if password == "" {
		return ErrInvalidPassword
	}
	return nil
}
