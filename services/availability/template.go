package availability

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	serviceRepo "slotwise/database/repository/service"
	"slotwise/models"
	"slotwise/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func (s *DefaultAvailabilityService) CreateService(ctx context.Context, providerID, name string, days []models.AvailabilityDay) (*models.Service, []models.AvailabilityDay, error) {
	name = strings.TrimSpace(name)
	if providerID == "" {
		return nil, nil, utils.ValidationError("provider id is required")
	}
	if name == "" {
		return nil, nil, utils.ValidationError("service name is required")
	}

	svc := &models.Service{
		ID:         uuid.New().String(),
		ProviderID: providerID,
		Name:       name,
		CreatedAt:  s.Now().UTC(),
	}
	normalized, err := normalizeTemplate(svc.ID, days)
	if err != nil {
		return nil, nil, err
	}
	if err := s.Services.Create(ctx, svc, normalized); err != nil {
		return nil, nil, fmt.Errorf("failed to create service: %w", err)
	}

	s.Logger.Info("Service created",
		zap.String("serviceId", svc.ID),
		zap.String("providerId", providerID),
		zap.Int("days", len(normalized)))
	return svc, normalized, nil
}

func (s *DefaultAvailabilityService) GetTemplate(ctx context.Context, serviceID string) ([]models.AvailabilityDay, error) {
	if _, err := s.service(ctx, serviceID); err != nil {
		return nil, err
	}
	days, err := s.Services.GetAvailability(ctx, serviceID)
	if err != nil {
		return nil, fmt.Errorf("failed to load availability: %w", err)
	}
	if days == nil {
		days = []models.AvailabilityDay{}
	}
	return days, nil
}

// ReplaceTemplate swaps the whole weekly template. Entries are never patched
// one at a time.
func (s *DefaultAvailabilityService) ReplaceTemplate(ctx context.Context, callerID, serviceID string, days []models.AvailabilityDay) ([]models.AvailabilityDay, error) {
	svc, err := s.service(ctx, serviceID)
	if err != nil {
		return nil, err
	}
	if svc.ProviderID != callerID {
		return nil, utils.AuthorizationError("only the service provider can edit availability")
	}
	normalized, err := normalizeTemplate(serviceID, days)
	if err != nil {
		return nil, err
	}
	if err := s.Services.ReplaceAvailability(ctx, serviceID, normalized); err != nil {
		return nil, fmt.Errorf("failed to replace availability: %w", err)
	}
	s.Logger.Info("Availability replaced", zap.String("serviceId", serviceID), zap.Int("days", len(normalized)))
	return normalized, nil
}

func (s *DefaultAvailabilityService) ListProviderServices(ctx context.Context, providerID string) ([]models.Service, error) {
	services, err := s.Services.ListByProvider(ctx, providerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	if services == nil {
		services = []models.Service{}
	}
	return services, nil
}

func (s *DefaultAvailabilityService) OpenWindow(ctx context.Context, serviceID string, date time.Time) (int, int, bool, error) {
	day, err := s.Services.GetAvailabilityDay(ctx, serviceID, Weekday(date))
	if err != nil {
		return 0, 0, false, fmt.Errorf("failed to load availability: %w", err)
	}
	if day == nil || !day.IsOpen {
		return 0, 0, false, nil
	}
	start, err := ParseClock(day.OpenTime)
	if err != nil {
		return 0, 0, false, nil
	}
	end, err := ParseClock(day.CloseTime)
	if err != nil || end <= start {
		return 0, 0, false, nil
	}
	return start, end, true, nil
}

func (s *DefaultAvailabilityService) service(ctx context.Context, serviceID string) (*models.Service, error) {
	svc, err := s.Services.GetByID(ctx, serviceID)
	if errors.Is(err, serviceRepo.ErrNotFound) {
		return nil, utils.NotFoundError("service %s not found", serviceID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load service: %w", err)
	}
	return svc, nil
}

// normalizeTemplate validates a weekly template and rewrites its times as
// "HH:MM". Closed days keep no times.
func normalizeTemplate(serviceID string, days []models.AvailabilityDay) ([]models.AvailabilityDay, error) {
	seen := make(map[time.Weekday]bool, len(days))
	out := make([]models.AvailabilityDay, 0, len(days))
	for _, d := range days {
		if d.Weekday < time.Sunday || d.Weekday > time.Saturday {
			return nil, utils.ValidationError("invalid weekday %d", d.Weekday)
		}
		if seen[d.Weekday] {
			return nil, utils.ValidationError("weekday %s listed twice", d.Weekday)
		}
		seen[d.Weekday] = true

		day := models.AvailabilityDay{ServiceID: serviceID, Weekday: d.Weekday, IsOpen: d.IsOpen}
		if d.IsOpen {
			open, err := ParseClock(d.OpenTime)
			if err != nil {
				return nil, err
			}
			closing, err := ParseClock(d.CloseTime)
			if err != nil {
				return nil, err
			}
			if open >= closing {
				return nil, utils.ValidationError("%s opens at %s but closes at %s", d.Weekday, FormatClock(open), FormatClock(closing))
			}
			day.OpenTime = FormatClock(open)
			day.CloseTime = FormatClock(closing)
		}
		out = append(out, day)
	}
	return out, nil
}
