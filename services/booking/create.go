package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"slotwise/models"
	"slotwise/services/availability"
	"slotwise/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func requesterServiceLock(requesterID, serviceID string) string {
	return fmt.Sprintf("booking:requester:%s:service:%s", requesterID, serviceID)
}

func serviceDateLock(serviceID, date string) string {
	return fmt.Sprintf("booking:service:%s:date:%s", serviceID, date)
}

// lock takes keys for a booking check. A held lock is a ConflictError with
// busyMsg; a failing lock backend is an internal error.
func (s *DefaultBookingService) lock(ctx context.Context, busyMsg string, keys ...string) (func(), error) {
	release, err := utils.AcquireAll(ctx, s.Locker, s.LockTTL, keys...)
	if errors.Is(err, utils.ErrLockBusy) {
		return nil, utils.ConflictError("%s", busyMsg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to lock booking: %w", err)
	}
	return release, nil
}

// Create books a PENDING reservation and arms its expiry.
func (s *DefaultBookingService) Create(ctx context.Context, in models.CreateReservationInput) (*models.Reservation, error) {
	if in.RequesterID == "" {
		return nil, utils.ValidationError("requester id is required")
	}
	if in.ServiceID == "" {
		return nil, utils.ValidationError("serviceId is required")
	}
	day, err := availability.ParseDate(in.Date, s.Location)
	if err != nil {
		return nil, err
	}
	start, err := availability.ParseClock(in.StartTime)
	if err != nil {
		return nil, err
	}
	if (in.Latitude == nil) != (in.Longitude == nil) {
		return nil, utils.ValidationError("latitude and longitude must be given together")
	}
	if in.Latitude != nil && !validCoordinates(*in.Latitude, *in.Longitude) {
		return nil, utils.ValidationError("coordinates out of range")
	}

	svc, err := s.service(ctx, in.ServiceID)
	if err != nil {
		return nil, err
	}
	requester, err := s.account(ctx, in.RequesterID, "requester")
	if err != nil {
		return nil, err
	}
	if !requester.IsActive() {
		return nil, utils.ValidationError("requester account is not active")
	}
	provider, err := s.account(ctx, svc.ProviderID, "provider")
	if err != nil {
		return nil, err
	}
	if !provider.IsActive() || provider.VerificationStatus != models.VerificationApproved {
		return nil, utils.ValidationError("provider is not accepting bookings")
	}

	res := &models.Reservation{
		ID:                 uuid.New().String(),
		ServiceID:          svc.ID,
		ProviderID:         svc.ProviderID,
		RequesterID:        in.RequesterID,
		Date:               day.Format(availability.DateLayout),
		StartTime:          availability.FormatClock(start),
		Status:             models.StatusPending,
		RequesterLatitude:  in.Latitude,
		RequesterLongitude: in.Longitude,
		Address:            strings.TrimSpace(in.Address),
		Revision:           1,
	}
	if err := s.insertChecked(ctx, res, day, start); err != nil {
		return nil, err
	}

	s.Logger.Info("Reservation created",
		zap.String("reservationId", res.ID),
		zap.String("serviceId", res.ServiceID),
		zap.String("requesterId", res.RequesterID),
		zap.String("date", res.Date),
		zap.String("start", res.StartTime))

	s.afterCreate(ctx, res, in)
	return res, nil
}

// insertChecked runs the conflict and calendar checks and the insert while
// holding the requester/service and service/date locks.
func (s *DefaultBookingService) insertChecked(ctx context.Context, res *models.Reservation, day time.Time, start int) error {
	release, err := s.lock(ctx, "another booking for this slot is in progress, try again",
		requesterServiceLock(res.RequesterID, res.ServiceID),
		serviceDateLock(res.ServiceID, res.Date))
	if err != nil {
		return err
	}
	defer release()

	existing, err := s.Reservations.FindActive(ctx, res.RequesterID, res.ServiceID)
	if err != nil {
		return fmt.Errorf("failed to check existing reservations: %w", err)
	}
	if existing != nil {
		return utils.ConflictError("you already have an active booking for this service")
	}

	now := s.Now().In(s.Location)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.Location)
	if day.Before(today) {
		return utils.ValidationError("cannot book a date in the past")
	}
	if day.Equal(today) && start <= now.Hour()*60+now.Minute() {
		return utils.ValidationError("start time %s has already passed", res.StartTime)
	}

	open, closing, ok, err := s.Windows.OpenWindow(ctx, res.ServiceID, day)
	if err != nil {
		return err
	}
	if !ok {
		return utils.ValidationError("service is closed on %s", availability.Weekday(day))
	}
	if !availability.Contains(open, closing, start) {
		return utils.ValidationError("start time %s is outside opening hours %s-%s",
			res.StartTime, availability.FormatClock(open), availability.FormatClock(closing))
	}

	sameDay, err := s.Reservations.ListByServiceDate(ctx, res.ServiceID, res.Date)
	if err != nil {
		return fmt.Errorf("failed to list reservations: %w", err)
	}
	for _, other := range sameDay {
		if other.Status != models.StatusConfirmed {
			continue
		}
		if blocksMinute(other, start) {
			return utils.ConflictError("the %s slot is already booked", res.StartTime)
		}
	}

	now = s.Now().UTC()
	res.CreatedAt = now
	res.UpdatedAt = now
	if err := s.Reservations.Create(ctx, res); err != nil {
		return fmt.Errorf("failed to create reservation: %w", err)
	}
	return nil
}

// blocksMinute reports whether a reservation occupies minute m: containment
// when it has an end time, exact match otherwise.
func blocksMinute(res models.Reservation, m int) bool {
	start, err := availability.ParseClock(res.StartTime)
	if err != nil {
		return false
	}
	if res.EndTime == "" {
		return start == m
	}
	end, err := availability.ParseClock(res.EndTime)
	if err != nil {
		return start == m
	}
	return availability.Contains(start, end, m)
}

// afterCreate runs the side effects of a new booking. None of them can fail
// the booking.
func (s *DefaultBookingService) afterCreate(ctx context.Context, res *models.Reservation, in models.CreateReservationInput) {
	if s.Expiry != nil {
		if err := s.Expiry.Arm(ctx, res.ID, res.CreatedAt); err != nil {
			s.Logger.Warn("Expiry not armed, sweeper will expire it", zap.String("reservationId", res.ID), zap.Error(err))
		}
	}

	s.notify(ctx, res.ProviderID, res.RequesterID, "New booking request",
		fmt.Sprintf("You have a new booking request for %s. Confirm it within 30 minutes.", s.slotLabel(res)), res)

	if s.Addresses != nil && (res.RequesterLatitude != nil || res.Address != "") {
		addr := &models.Address{
			ID:        uuid.New().String(),
			OwnerID:   res.RequesterID,
			Label:     "Booking " + res.Date,
			Line:      res.Address,
			Latitude:  res.RequesterLatitude,
			Longitude: res.RequesterLongitude,
			CreatedAt: res.CreatedAt,
		}
		if err := s.Addresses.Save(ctx, addr); err != nil {
			s.Logger.Warn("Address not saved", zap.String("reservationId", res.ID), zap.Error(err))
		}
	}

	if url := s.upload(ctx, res.ID, in.Image); url != "" {
		_, after, err := s.mutate(ctx, res.ID, func(r *models.Reservation) (bool, error) {
			r.ImageURL = url
			r.UpdatedAt = s.Now().UTC()
			return true, nil
		})
		if err != nil {
			s.Logger.Warn("Image not attached", zap.String("reservationId", res.ID), zap.Error(err))
			return
		}
		*res = *after
	}
}

func validCoordinates(lat, lon float64) bool {
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}
