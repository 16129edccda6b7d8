package serviceRepo

import (
	"context"
	"errors"
	"time"

	"slotwise/models"
)

// ErrNotFound is returned when the service does not exist.
var ErrNotFound = errors.New("service not found")

// ServiceRepository stores services and their weekly availability template.
type ServiceRepository interface {
	Create(ctx context.Context, svc *models.Service, days []models.AvailabilityDay) error
	GetByID(ctx context.Context, id string) (*models.Service, error)
	ListByProvider(ctx context.Context, providerID string) ([]models.Service, error)
	ListIDsByProvider(ctx context.Context, providerID string) ([]string, error)
	GetAvailability(ctx context.Context, serviceID string) ([]models.AvailabilityDay, error)
	// GetAvailabilityDay returns nil when the weekday has no entry.
	GetAvailabilityDay(ctx context.Context, serviceID string, weekday time.Weekday) (*models.AvailabilityDay, error)
	// ReplaceAvailability deletes every entry of the service, then inserts days.
	ReplaceAvailability(ctx context.Context, serviceID string, days []models.AvailabilityDay) error
}
