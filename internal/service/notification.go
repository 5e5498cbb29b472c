package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"ridebooking/internal/domain"
)

// NotificationType represents the type of notification.
type NotificationType string

const (
	NotificationRideRequested NotificationType = "RIDE_REQUESTED"
	NotificationRideAccepted  NotificationType = "RIDE_ACCEPTED"
	NotificationRideStarted   NotificationType = "RIDE_STARTED"
	NotificationRideCompleted NotificationType = "RIDE_COMPLETED"
)

// Notification represents a notification to be sent.
type Notification struct {
	Type        NotificationType
	RecipientID string
	Title       string
	Message     string
	CreatedAt   time.Time
}

// NotificationService handles notification delivery. Delivery itself is out
// of scope for the core, so notifications are logged; a real deployment
// would plug in push/SMS clients here.
type NotificationService struct{}

// NewNotificationService creates a new NotificationService.
func NewNotificationService() *NotificationService {
	return &NotificationService{}
}

// NotifyRideRequested records that a new ride request entered the pool.
func (s *NotificationService) NotifyRideRequested(ctx context.Context, ride *domain.Ride) error {
	s.send(ctx, Notification{
		Type:        NotificationRideRequested,
		RecipientID: ride.PassengerID,
		Title:       "Ride Requested",
		Message:     fmt.Sprintf("Looking for a %s driver from %s to %s", ride.RideType, ride.Pickup, ride.Drop),
		CreatedAt:   time.Now(),
	})
	return nil
}

// NotifyRideAccepted notifies the passenger that a driver accepted.
func (s *NotificationService) NotifyRideAccepted(ctx context.Context, ride *domain.Ride, driver *domain.Driver) error {
	s.send(ctx, Notification{
		Type:        NotificationRideAccepted,
		RecipientID: ride.PassengerID,
		Title:       "Driver Found",
		Message:     fmt.Sprintf("%s is on the way to %s", driver.Name, ride.Pickup),
		CreatedAt:   time.Now(),
	})
	return nil
}

// NotifyRideStarted notifies the passenger that the ride is underway.
func (s *NotificationService) NotifyRideStarted(ctx context.Context, ride *domain.Ride) error {
	s.send(ctx, Notification{
		Type:        NotificationRideStarted,
		RecipientID: ride.PassengerID,
		Title:       "Ride Started",
		Message:     fmt.Sprintf("Heading to %s", ride.Drop),
		CreatedAt:   time.Now(),
	})
	return nil
}

// NotifyRideCompleted notifies the passenger that the ride is complete.
func (s *NotificationService) NotifyRideCompleted(ctx context.Context, ride *domain.Ride) error {
	s.send(ctx, Notification{
		Type:        NotificationRideCompleted,
		RecipientID: ride.PassengerID,
		Title:       "Ride Completed",
		Message:     fmt.Sprintf("Arrived at %s", ride.Drop),
		CreatedAt:   time.Now(),
	})
	return nil
}

func (s *NotificationService) send(ctx context.Context, n Notification) {
	log.Printf("[NOTIFICATION] type=%s recipient=%s title=%q message=%q", n.Type, n.RecipientID, n.Title, n.Message)
}
