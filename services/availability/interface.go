package availability

import (
	"context"
	"time"

	reservationRepo "slotwise/database/repository/reservation"
	serviceRepo "slotwise/database/repository/service"
	"slotwise/models"

	"go.uber.org/zap"
)

// AvailabilityService manages weekly templates and reconciles them against
// reservations.
type AvailabilityService interface {
	CreateService(ctx context.Context, providerID, name string, days []models.AvailabilityDay) (*models.Service, []models.AvailabilityDay, error)
	GetTemplate(ctx context.Context, serviceID string) ([]models.AvailabilityDay, error)
	ReplaceTemplate(ctx context.Context, callerID, serviceID string, days []models.AvailabilityDay) ([]models.AvailabilityDay, error)
	ListProviderServices(ctx context.Context, providerID string) ([]models.Service, error)
	AvailableIntervals(ctx context.Context, serviceID, date string) (*models.DaySlots, error)
	// OpenWindow returns the template window for date's weekday; ok is false
	// when the day is closed or has no entry.
	OpenWindow(ctx context.Context, serviceID string, date time.Time) (start, end int, ok bool, err error)
}

// DefaultAvailabilityService implements AvailabilityService.
type DefaultAvailabilityService struct {
	Services     serviceRepo.ServiceRepository
	Reservations reservationRepo.ReservationRepository
	Location     *time.Location
	Logger       *zap.Logger
	Now          func() time.Time
}

// NewAvailabilityService wires the service over its repositories.
func NewAvailabilityService(services serviceRepo.ServiceRepository, reservations reservationRepo.ReservationRepository, loc *time.Location, logger *zap.Logger) *DefaultAvailabilityService {
	if loc == nil {
		loc = time.UTC
	}
	return &DefaultAvailabilityService{
		Services:     services,
		Reservations: reservations,
		Location:     loc,
		Logger:       logger,
		Now:          time.Now,
	}
}
