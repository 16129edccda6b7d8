package booking

import (
	"context"
	"fmt"
	"strings"

	"slotwise/models"
	"slotwise/services/availability"
	"slotwise/utils"

	"go.uber.org/zap"
)

// UpdateStatus lets the provider confirm or reject a pending reservation.
func (s *DefaultBookingService) UpdateStatus(ctx context.Context, callerID, reservationID string, in models.StatusUpdateInput) (*models.Reservation, error) {
	to, ok := models.ParseReservationStatus(in.Status)
	if !ok {
		return nil, utils.ValidationError("unknown status %q", in.Status)
	}
	res, err := s.load(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if err := requireProvider(callerID, res); err != nil {
		return nil, err
	}
	if to == models.StatusCompleted {
		return nil, utils.ConflictError("cannot move reservation from %s to %s; record job progress instead", res.Status, to)
	}
	if err := transition(res.Clone(), to); err != nil {
		return nil, err
	}

	var (
		endTime  string
		workNote string
		otpCode  int
		otpHash  string
	)
	if to == models.StatusConfirmed {
		if endTime, workNote, err = confirmFields(res, in); err != nil {
			return nil, err
		}
		if otpCode, err = utils.GenerateNumericOTP(); err != nil {
			return nil, fmt.Errorf("failed to generate completion code: %w", err)
		}
		if otpHash, err = utils.HashOTP(otpCode); err != nil {
			return nil, fmt.Errorf("failed to hash completion code: %w", err)
		}

		release, err := s.lock(ctx, "another booking for this day is in progress, try again",
			serviceDateLock(res.ServiceID, res.Date))
		if err != nil {
			return nil, err
		}
		defer release()
		if err := s.ensureNoOverlap(ctx, res, endTime); err != nil {
			return nil, err
		}
	}

	_, after, err := s.mutate(ctx, reservationID, func(r *models.Reservation) (bool, error) {
		if err := transition(r, to); err != nil {
			return false, err
		}
		if to == models.StatusConfirmed {
			r.EndTime = endTime
			r.WorkNote = workNote
			r.OTPHash = otpHash
			r.OTPVerified = false
		}
		r.UpdatedAt = s.Now().UTC()
		return true, nil
	})
	if err != nil {
		return nil, err
	}

	s.Logger.Info("Reservation status changed",
		zap.String("reservationId", after.ID),
		zap.String("from", string(res.Status)),
		zap.String("to", string(after.Status)))

	if to == models.StatusConfirmed {
		s.afterConfirm(ctx, after, otpCode)
		s.notify(ctx, after.RequesterID, after.ProviderID, "Booking confirmed",
			fmt.Sprintf("Your booking for %s to %s is confirmed.", s.slotLabel(after), after.EndTime), after)
	} else {
		s.notify(ctx, after.RequesterID, after.ProviderID, "Booking declined",
			fmt.Sprintf("Your booking for %s was declined by the provider.", s.slotLabel(after)), after)
	}
	return after, nil
}

func confirmFields(res *models.Reservation, in models.StatusUpdateInput) (string, string, error) {
	if strings.TrimSpace(in.EndTime) == "" {
		return "", "", utils.ValidationError("endTime is required to confirm")
	}
	workNote := strings.TrimSpace(in.WorkNote)
	if workNote == "" {
		return "", "", utils.ValidationError("a work note is required to confirm")
	}
	end, err := availability.ParseClock(in.EndTime)
	if err != nil {
		return "", "", err
	}
	start, err := availability.ParseClock(res.StartTime)
	if err != nil {
		return "", "", utils.ValidationError("reservation has an invalid start time")
	}
	if end <= start {
		return "", "", utils.ValidationError("endTime must be after startTime %s", res.StartTime)
	}
	return availability.FormatClock(end), workNote, nil
}

// ensureNoOverlap rejects a confirmation whose [start, end) meets another
// confirmed reservation of the same service day.
func (s *DefaultBookingService) ensureNoOverlap(ctx context.Context, res *models.Reservation, endTime string) error {
	start, _ := availability.ParseClock(res.StartTime)
	end, _ := availability.ParseClock(endTime)

	sameDay, err := s.Reservations.ListByServiceDate(ctx, res.ServiceID, res.Date)
	if err != nil {
		return fmt.Errorf("failed to list reservations: %w", err)
	}
	for _, other := range sameDay {
		if other.ID == res.ID || other.Status != models.StatusConfirmed {
			continue
		}
		oStart, err := availability.ParseClock(other.StartTime)
		if err != nil {
			continue
		}
		oEnd := oStart + 1
		if other.EndTime != "" {
			if e, err := availability.ParseClock(other.EndTime); err == nil && e > oStart {
				oEnd = e
			}
		}
		if availability.Overlaps(start, end, oStart, oEnd) {
			return utils.ConflictError("slot %s-%s overlaps a confirmed booking %s-%s",
				res.StartTime, endTime, other.StartTime, availability.FormatClock(oEnd))
		}
	}
	return nil
}

// afterConfirm disarms the expiry and emails the completion code to the
// provider. Failures are only logged.
func (s *DefaultBookingService) afterConfirm(ctx context.Context, res *models.Reservation, otpCode int) {
	if s.Expiry != nil {
		if err := s.Expiry.Disarm(ctx, res.ID); err != nil {
			s.Logger.Warn("Expiry not disarmed", zap.String("reservationId", res.ID), zap.Error(err))
		}
	}
	if s.Mailer == nil {
		return
	}
	provider, err := s.account(ctx, res.ProviderID, "provider")
	if err != nil {
		s.Logger.Warn("Completion code not emailed", zap.String("reservationId", res.ID), zap.Error(err))
		return
	}
	if err := s.Mailer.SendOTP(ctx, provider.Email, otpCode); err != nil {
		s.Logger.Warn("Completion code not emailed", zap.String("reservationId", res.ID), zap.Error(err))
	}
}
