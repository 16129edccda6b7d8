package booking

import (
	"context"
	"io"
	"time"

	"slotwise/models"
	"slotwise/utils"
)

// BookingService owns the reservation lifecycle.
type BookingService interface {
	Create(ctx context.Context, in models.CreateReservationInput) (*models.Reservation, error)
	UpdateStatus(ctx context.Context, callerID, reservationID string, in models.StatusUpdateInput) (*models.Reservation, error)
	UpdateProgress(ctx context.Context, callerID, reservationID string, patch models.ProgressPatch) (*models.Reservation, error)
	RecordArrival(ctx context.Context, callerID, reservationID string, lat, lon float64) (*models.ArrivalResult, error)
	Delete(ctx context.Context, caller utils.Caller, reservationID string) error
	Get(ctx context.Context, caller utils.Caller, reservationID string) (*models.Reservation, error)
	ListForRequester(ctx context.Context, requesterID string) ([]models.Reservation, error)
	ListForProvider(ctx context.Context, providerID, date string) ([]models.Reservation, error)
}

//go:generate mockgen -destination=mocks/mock_collaborators.go -package=mock_booking . Notifier,OTPMailer,ImageStore,AddressBook,ExpiryScheduler,TierRecomputer

// Notifier sends a short message to an account.
type Notifier interface {
	Notify(ctx context.Context, receiverID, senderID, title, message string) error
}

// OTPMailer emails a completion code.
type OTPMailer interface {
	SendOTP(ctx context.Context, address string, code int) error
}

// ImageStore uploads an image and returns its URL.
type ImageStore interface {
	Upload(ctx context.Context, r io.Reader, name string) (string, error)
}

// AddressBook saves addresses requesters can reuse.
type AddressBook interface {
	Save(ctx context.Context, addr *models.Address) error
}

// ExpiryScheduler arms and cancels the deferred expiry of a pending reservation.
type ExpiryScheduler interface {
	Arm(ctx context.Context, reservationID string, createdAt time.Time) error
	Disarm(ctx context.Context, reservationID string) error
}

// TierRecomputer re-derives a provider's tier.
type TierRecomputer interface {
	Recompute(ctx context.Context, providerID string) (level int, changed bool, err error)
}

// WindowResolver returns the open template window of a service day.
type WindowResolver interface {
	OpenWindow(ctx context.Context, serviceID string, date time.Time) (start, end int, ok bool, err error)
}
