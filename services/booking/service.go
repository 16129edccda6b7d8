package booking

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	directoryRepo "slotwise/database/repository/directory"
	reservationRepo "slotwise/database/repository/reservation"
	serviceRepo "slotwise/database/repository/service"
	"slotwise/models"
	"slotwise/utils"

	"go.uber.org/zap"
)

// DefaultArrivalTolerance is the geofence radius in meters.
const DefaultArrivalTolerance = 150.0

// Deps carries everything DefaultBookingService talks to.
type Deps struct {
	Reservations reservationRepo.ReservationRepository
	Services     serviceRepo.ServiceRepository
	Directory    directoryRepo.Directory
	Windows      WindowResolver
	Locker       utils.Locker
	Expiry       ExpiryScheduler
	Tier         TierRecomputer
	Notifier     Notifier
	Mailer       OTPMailer
	Images       ImageStore
	Addresses    AddressBook
}

// DefaultBookingService implements BookingService.
type DefaultBookingService struct {
	Deps

	Location         *time.Location
	ArrivalTolerance float64
	LockTTL          time.Duration
	Logger           *zap.Logger
	Now              func() time.Time
}

func NewBookingService(deps Deps, loc *time.Location, tolerance float64, logger *zap.Logger) *DefaultBookingService {
	if loc == nil {
		loc = time.UTC
	}
	if tolerance <= 0 {
		tolerance = DefaultArrivalTolerance
	}
	return &DefaultBookingService{
		Deps:             deps,
		Location:         loc,
		ArrivalTolerance: tolerance,
		LockTTL:          10 * time.Second,
		Logger:           logger,
		Now:              time.Now,
	}
}

func (s *DefaultBookingService) load(ctx context.Context, reservationID string) (*models.Reservation, error) {
	res, err := s.Reservations.GetByID(ctx, reservationID)
	if errors.Is(err, reservationRepo.ErrNotFound) {
		return nil, utils.NotFoundError("reservation %s not found", reservationID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load reservation: %w", err)
	}
	return res, nil
}

// mutate wraps reservationRepo.Mutate and turns a missing row into NotFound.
func (s *DefaultBookingService) mutate(ctx context.Context, reservationID string, fn func(res *models.Reservation) (bool, error)) (*models.Reservation, *models.Reservation, error) {
	before, after, err := reservationRepo.Mutate(ctx, s.Reservations, reservationID, fn)
	if errors.Is(err, reservationRepo.ErrNotFound) {
		return nil, nil, utils.NotFoundError("reservation %s not found", reservationID)
	}
	if errors.Is(err, reservationRepo.ErrRevisionConflict) {
		return nil, nil, utils.ConflictError("reservation is being updated by another request, try again")
	}
	return before, after, err
}

func (s *DefaultBookingService) service(ctx context.Context, serviceID string) (*models.Service, error) {
	svc, err := s.Services.GetByID(ctx, serviceID)
	if errors.Is(err, serviceRepo.ErrNotFound) {
		return nil, utils.NotFoundError("service %s not found", serviceID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load service: %w", err)
	}
	return svc, nil
}

func (s *DefaultBookingService) account(ctx context.Context, id, role string) (*models.Account, error) {
	acc, err := s.Directory.GetAccount(ctx, id)
	if errors.Is(err, directoryRepo.ErrNotFound) {
		return nil, utils.NotFoundError("%s %s not found", role, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", role, err)
	}
	return acc, nil
}

// requireProvider fails unless callerID provides the reservation's service.
func requireProvider(callerID string, res *models.Reservation) error {
	if callerID == "" || callerID != res.ProviderID {
		return utils.AuthorizationError("only the service provider can do this")
	}
	return nil
}

func (s *DefaultBookingService) notify(ctx context.Context, receiverID, senderID, title, message string, res *models.Reservation) {
	if s.Notifier == nil || receiverID == "" {
		return
	}
	if err := s.Notifier.Notify(ctx, receiverID, senderID, title, message); err != nil {
		s.Logger.Warn("Notification failed",
			zap.String("reservationId", res.ID),
			zap.String("receiverId", receiverID),
			zap.Error(err))
	}
}

// upload stores an image, returning "" when there is no store or it fails.
func (s *DefaultBookingService) upload(ctx context.Context, reservationID string, img *models.ImageUpload) string {
	if img == nil || len(img.Data) == 0 {
		return ""
	}
	if s.Images == nil {
		s.Logger.Warn("Image dropped, no image store configured", zap.String("reservationId", reservationID))
		return ""
	}
	name := img.Filename
	if name == "" {
		name = reservationID
	}
	url, err := s.Images.Upload(ctx, bytes.NewReader(img.Data), name)
	if err != nil {
		s.Logger.Warn("Image upload failed", zap.String("reservationId", reservationID), zap.Error(err))
		return ""
	}
	return url
}

// slotLabel renders a reservation's slot for messages, e.g. "Mon 2 Jun, 10:00".
func (s *DefaultBookingService) slotLabel(res *models.Reservation) string {
	day, err := time.ParseInLocation("2006-01-02", res.Date, s.Location)
	if err != nil {
		return res.Date + " " + res.StartTime
	}
	return fmt.Sprintf("%s, %s", day.Format("Mon 2 Jan"), res.StartTime)
}
