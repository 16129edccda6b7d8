package reservationRepo

import (
	"context"
	"errors"
	"time"

	"slotwise/models"
)

var (
	// ErrNotFound is returned when no reservation has the requested id.
	ErrNotFound = errors.New("reservation not found")
	// ErrRevisionConflict is returned by Update when the stored revision moved on.
	ErrRevisionConflict = errors.New("reservation was modified concurrently")
)

// ReservationRepository persists reservations. Every mutation of an existing
// row goes through Update, which is a compare-and-swap on Revision.
type ReservationRepository interface {
	Create(ctx context.Context, res *models.Reservation) error
	GetByID(ctx context.Context, id string) (*models.Reservation, error)
	// Update writes res if the stored revision still equals expectedRevision
	// and bumps res.Revision on success.
	Update(ctx context.Context, res *models.Reservation, expectedRevision int64) error
	// DeleteIfPending deletes the reservation only while it is PENDING.
	DeleteIfPending(ctx context.Context, id string) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)

	// FindActive returns the requester's PENDING or CONFIRMED-and-incomplete
	// reservation for the service, or nil.
	FindActive(ctx context.Context, requesterID, serviceID string) (*models.Reservation, error)
	ListByServiceDate(ctx context.Context, serviceID, date string) ([]models.Reservation, error)
	ListByRequester(ctx context.Context, requesterID string) ([]models.Reservation, error)
	// ListByProvider lists the provider's reservations, optionally for one date.
	ListByProvider(ctx context.Context, providerID, date string) ([]models.Reservation, error)
	// ListExpiredPending returns ids of PENDING reservations created before cutoff.
	ListExpiredPending(ctx context.Context, cutoff time.Time) ([]string, error)
	// ListAwaitingArrival returns confirmed, unfinished reservations on date
	// with no arrival recorded.
	ListAwaitingArrival(ctx context.Context, date string) ([]models.Reservation, error)
	// CountDone counts completed and paid reservations across the services.
	CountDone(ctx context.Context, serviceIDs []string) (int64, error)
}
