package booking

import (
	"context"
	"fmt"

	"slotwise/models"
	"slotwise/utils"

	"go.uber.org/zap"
)

// Delete removes a reservation in any state. Only its requester or an admin
// may do so.
func (s *DefaultBookingService) Delete(ctx context.Context, caller utils.Caller, reservationID string) error {
	res, err := s.load(ctx, reservationID)
	if err != nil {
		return err
	}
	admin := caller.Role == utils.RoleAdmin
	if !admin && (caller.ID == "" || caller.ID != res.RequesterID) {
		return utils.AuthorizationError("only the requester can delete this reservation")
	}

	deleted, err := s.Reservations.Delete(ctx, reservationID)
	if err != nil {
		return fmt.Errorf("failed to delete reservation: %w", err)
	}
	if !deleted {
		return utils.NotFoundError("reservation %s not found", reservationID)
	}
	s.Logger.Info("Reservation deleted",
		zap.String("reservationId", res.ID),
		zap.String("by", caller.ID),
		zap.Bool("admin", admin))

	if res.Status == models.StatusPending && s.Expiry != nil {
		if err := s.Expiry.Disarm(ctx, res.ID); err != nil {
			s.Logger.Warn("Expiry not disarmed", zap.String("reservationId", res.ID), zap.Error(err))
		}
	}

	msg := fmt.Sprintf("The booking for %s has been cancelled.", s.slotLabel(res))
	s.notify(ctx, res.ProviderID, caller.ID, "Booking cancelled", msg, res)
	if admin {
		s.notify(ctx, res.RequesterID, caller.ID, "Booking cancelled", msg, res)
	}
	return nil
}
