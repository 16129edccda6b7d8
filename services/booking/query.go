package booking

import (
	"context"
	"fmt"

	"slotwise/models"
	"slotwise/services/availability"
	"slotwise/utils"
)

// Get returns a reservation to one of its parties or an admin.
func (s *DefaultBookingService) Get(ctx context.Context, caller utils.Caller, reservationID string) (*models.Reservation, error) {
	res, err := s.load(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if caller.Role != utils.RoleAdmin && caller.ID != res.RequesterID && caller.ID != res.ProviderID {
		return nil, utils.AuthorizationError("reservation belongs to someone else")
	}
	return res, nil
}

func (s *DefaultBookingService) ListForRequester(ctx context.Context, requesterID string) ([]models.Reservation, error) {
	list, err := s.Reservations.ListByRequester(ctx, requesterID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reservations: %w", err)
	}
	if list == nil {
		list = []models.Reservation{}
	}
	return list, nil
}

// ListForProvider lists reservations across the provider's services; date
// narrows it to one day when set.
func (s *DefaultBookingService) ListForProvider(ctx context.Context, providerID, date string) ([]models.Reservation, error) {
	if date != "" {
		day, err := availability.ParseDate(date, s.Location)
		if err != nil {
			return nil, err
		}
		date = day.Format(availability.DateLayout)
	}
	list, err := s.Reservations.ListByProvider(ctx, providerID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list reservations: %w", err)
	}
	if list == nil {
		list = []models.Reservation{}
	}
	return list, nil
}
