package expiry

import (
	"context"
	"errors"
	"fmt"

	reservationRepo "slotwise/database/repository/reservation"
	"slotwise/models"
	"slotwise/services/notification"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// Expirer deletes a reservation that is still PENDING. The one-shot task and
// the sweeper both go through ExpireIfPending, and the conditional delete
// keeps a concurrent second caller from doing anything.
type Expirer struct {
	Reservations reservationRepo.ReservationRepository
	Notifier     notification.Notifier
	Handles      HandleStore
	Logger       *zap.Logger
}

func NewExpirer(reservations reservationRepo.ReservationRepository, notifier notification.Notifier, handles HandleStore, logger *zap.Logger) *Expirer {
	return &Expirer{
		Reservations: reservations,
		Notifier:     notifier,
		Handles:      handles,
		Logger:       logger,
	}
}

// ExpireIfPending reports whether this call deleted the reservation.
func (e *Expirer) ExpireIfPending(ctx context.Context, reservationID string) (bool, error) {
	res, err := e.Reservations.GetByID(ctx, reservationID)
	if errors.Is(err, reservationRepo.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to re-read reservation %s: %w", reservationID, err)
	}
	if res.Status != models.StatusPending {
		return false, nil
	}

	deleted, err := e.Reservations.DeleteIfPending(ctx, reservationID)
	if err != nil {
		return false, err
	}
	if !deleted {
		return false, nil
	}

	e.Logger.Info("Pending reservation expired",
		zap.String("reservationId", res.ID),
		zap.String("serviceId", res.ServiceID),
		zap.Time("createdAt", res.CreatedAt))

	if err := e.Handles.Forget(ctx, reservationID); err != nil {
		e.Logger.Warn("Expiry handle not forgotten", zap.String("reservationId", reservationID), zap.Error(err))
	}
	e.notify(ctx, res.RequesterID, "Booking expired",
		fmt.Sprintf("Your booking for %s at %s was not confirmed in time and has been cancelled.", res.Date, res.StartTime))
	e.notify(ctx, res.ProviderID, "Booking expired",
		fmt.Sprintf("The booking request for %s at %s expired before it was confirmed.", res.Date, res.StartTime))
	return true, nil
}

func (e *Expirer) notify(ctx context.Context, receiverID, title, message string) {
	if err := e.Notifier.Notify(ctx, receiverID, "", title, message); err != nil {
		e.Logger.Warn("Expiry notification failed", zap.String("receiverId", receiverID), zap.Error(err))
	}
}

// HandleExpireTask is the asynq handler of TypeExpireReservation. Storage
// errors are returned so the task is retried; a bad payload is not.
func (e *Expirer) HandleExpireTask(ctx context.Context, task *asynq.Task) error {
	p, err := ParseExpirePayload(task.Payload())
	if err != nil {
		e.Logger.Error("Dropping expiry task", zap.Error(err))
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}
	if _, err := e.ExpireIfPending(ctx, p.ReservationID); err != nil {
		e.Logger.Warn("Expiry task failed", zap.String("reservationId", p.ReservationID), zap.Error(err))
		return err
	}
	return nil
}
