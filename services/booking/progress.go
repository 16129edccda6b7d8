package booking

import (
	"context"
	"fmt"
	"strings"
	"time"

	"slotwise/models"
	"slotwise/utils"

	"go.uber.org/zap"
)

// UpdateProgress merges a partial job-progress patch. Only fields present in
// the patch are touched.
func (s *DefaultBookingService) UpdateProgress(ctx context.Context, callerID, reservationID string, patch models.ProgressPatch) (*models.Reservation, error) {
	res, err := s.load(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if err := requireProvider(callerID, res); err != nil {
		return nil, err
	}
	if res.Done() && !patch.TouchesCompletion() && !patch.HasImages() {
		return res, nil
	}
	if res.Status != models.StatusConfirmed && res.Status != models.StatusCompleted {
		return nil, utils.ConflictError("job progress needs a confirmed reservation, this one is %s", res.Status)
	}

	now := s.Now().UTC()
	images := s.uploadJobImages(ctx, res.ID, patch, now)

	before, after, err := s.mutate(ctx, reservationID, func(r *models.Reservation) (bool, error) {
		return applyProgress(r, patch, images, now)
	})
	if err != nil {
		return nil, err
	}

	if before.Status != after.Status {
		s.Logger.Info("Job completed", zap.String("reservationId", after.ID))
		s.notify(ctx, after.RequesterID, after.ProviderID, "Job completed",
			fmt.Sprintf("The job booked for %s has been marked complete.", s.slotLabel(after)), after)
	}
	// Only the writer that moved the row into completed-and-paid sees this edge.
	if !before.Done() && after.Done() {
		s.recomputeTier(ctx, after)
	}
	return after, nil
}

func (s *DefaultBookingService) recomputeTier(ctx context.Context, res *models.Reservation) {
	if s.Tier == nil {
		return
	}
	level, changed, err := s.Tier.Recompute(ctx, res.ProviderID)
	if err != nil {
		s.Logger.Warn("Tier recompute failed", zap.String("providerId", res.ProviderID), zap.Error(err))
		return
	}
	if changed {
		s.notify(ctx, res.ProviderID, "", "New tier reached",
			fmt.Sprintf("Congratulations, you are now a level %d provider.", level), res)
	}
}

func (s *DefaultBookingService) uploadJobImages(ctx context.Context, reservationID string, patch models.ProgressPatch, now time.Time) []models.JobImage {
	var images []models.JobImage
	for _, item := range []struct {
		kind models.ImageKind
		img  *models.ImageUpload
	}{
		{models.ImagePickup, patch.PickupImage},
		{models.ImageDelivery, patch.DeliveryImage},
	} {
		if item.img == nil {
			continue
		}
		url := s.upload(ctx, reservationID, item.img)
		if url == "" {
			continue
		}
		images = append(images, models.JobImage{
			Kind:       item.kind,
			URL:        url,
			Latitude:   item.img.Latitude,
			Longitude:  item.img.Longitude,
			UploadedAt: now,
		})
	}
	return images
}

// applyProgress merges patch into r. Completion flags only ever go from false
// to true, and a completed reservation only accepts payment and images.
func applyProgress(r *models.Reservation, patch models.ProgressPatch, images []models.JobImage, now time.Time) (bool, error) {
	if r.Status != models.StatusConfirmed && r.Status != models.StatusCompleted {
		return false, utils.ConflictError("job progress needs a confirmed reservation, this one is %s", r.Status)
	}
	completed := r.Status == models.StatusCompleted
	changed := false

	if patch.OTPCode != nil {
		if completed {
			return false, utils.ConflictError("reservation is completed; only payment and images can change")
		}
		if r.HasOTP() {
			if !utils.VerifyOTP(r.OTPHash, strings.TrimSpace(*patch.OTPCode)) {
				return false, utils.ValidationError("invalid completion code")
			}
			if !r.OTPVerified {
				r.OTPVerified = true
				changed = true
			}
		}
	}

	if patch.Notes != nil {
		if completed {
			return false, utils.ConflictError("reservation is completed; only payment and images can change")
		}
		if r.Notes != *patch.Notes {
			r.Notes = *patch.Notes
			changed = true
		}
	}

	if patch.JobInProgress != nil {
		switch {
		case *patch.JobInProgress && !r.JobInProgress:
			if err := transition(r, models.StatusCompleted); err != nil {
				return false, err
			}
			changed = true
		case !*patch.JobInProgress && r.JobInProgress:
			return false, utils.ConflictError("a completed job cannot be reopened")
		}
	}

	if patch.PaymentConfirmed != nil {
		switch {
		case *patch.PaymentConfirmed && !r.PaymentConfirmed:
			r.PaymentConfirmed = true
			changed = true
		case !*patch.PaymentConfirmed && r.PaymentConfirmed:
			return false, utils.ConflictError("a confirmed payment cannot be withdrawn")
		}
	}

	if len(images) > 0 {
		r.Images = append(r.Images, images...)
		changed = true
	}

	if changed {
		r.UpdatedAt = now
	}
	return changed, nil
}
