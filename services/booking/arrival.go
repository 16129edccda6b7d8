package booking

import (
	"context"
	"fmt"
	"math"

	"slotwise/models"
	"slotwise/services/availability"
	"slotwise/utils"

	"go.uber.org/zap"
)

// RatingForLateness turns minutes late into a 1-5 punctuality rating.
func RatingForLateness(minutes int) int {
	switch {
	case minutes <= 30:
		return 5
	case minutes <= 60:
		return 4
	case minutes <= 120:
		return 3
	case minutes <= 180:
		return 2
	default:
		return 1
	}
}

// RecordArrival checks the provider's reported position against the
// requester's and rates the provider's punctuality.
func (s *DefaultBookingService) RecordArrival(ctx context.Context, callerID, reservationID string, lat, lon float64) (*models.ArrivalResult, error) {
	if !validCoordinates(lat, lon) {
		return nil, utils.ValidationError("coordinates out of range")
	}
	res, err := s.load(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if err := requireProvider(callerID, res); err != nil {
		return nil, err
	}
	if res.Status != models.StatusConfirmed {
		return nil, utils.ConflictError("arrival can only be recorded on a confirmed reservation, this one is %s", res.Status)
	}
	if res.RequesterLatitude == nil || res.RequesterLongitude == nil {
		return nil, utils.ValidationError("reservation has no requester location to verify against")
	}

	// Centimetre precision keeps the boundary stable against float noise.
	distance := math.Round(utils.HaversineMeters(*res.RequesterLatitude, *res.RequesterLongitude, lat, lon)*100) / 100
	if distance > s.ArrivalTolerance {
		return nil, utils.ValidationError("arrival is %.2f m from the booking location, more than the allowed %.0f m", distance, s.ArrivalTolerance)
	}

	now := s.Now()
	late := availability.MinutesLate(res.Date, res.StartTime, now, s.Location)
	rating := RatingForLateness(late)

	crossed := 0
	_, after, err := s.mutate(ctx, reservationID, func(r *models.Reservation) (bool, error) {
		if r.Status != models.StatusConfirmed {
			return false, utils.ConflictError("arrival can only be recorded on a confirmed reservation, this one is %s", r.Status)
		}
		arrivedAt := now.UTC()
		r.ArrivalLatitude = models.Float(lat)
		r.ArrivalLongitude = models.Float(lon)
		r.ArrivedAt = &arrivedAt
		r.LateMinutes = late
		r.ArrivalRating = rating
		crossed = r.MarkLateness(late)
		r.UpdatedAt = arrivedAt
		return true, nil
	})
	if err != nil {
		return nil, err
	}

	s.Logger.Info("Arrival recorded",
		zap.String("reservationId", after.ID),
		zap.Float64("distanceMeters", distance),
		zap.Int("lateMinutes", late),
		zap.Int("rating", rating))

	if crossed > 0 {
		s.notify(ctx, after.ProviderID, "", "You are running late",
			fmt.Sprintf("You arrived more than %d minutes after the %s start.", crossed, after.StartTime), after)
	}
	return &models.ArrivalResult{
		Reservation:    after,
		DistanceMeters: distance,
		LateMinutes:    late,
		Rating:         rating,
	}, nil
}
