package expiry

import (
	"context"
	"fmt"
	"time"

	reservationRepo "slotwise/database/repository/reservation"
	"slotwise/models"
	"slotwise/services/availability"
	"slotwise/services/notification"

	"go.uber.org/zap"
)

// SweepReport summarises one sweeper pass.
type SweepReport struct {
	Candidates  int
	Expired     int
	Failed      int
	LateNotices int
}

// Sweeper is the periodic safety net behind the one-shot expiry tasks. Each
// tick it expires every PENDING reservation older than TTL, then flags
// confirmed reservations whose provider is running late.
type Sweeper struct {
	Reservations reservationRepo.ReservationRepository
	Expirer      *Expirer
	Notifier     notification.Notifier
	TTL          time.Duration
	Interval     time.Duration
	Location     *time.Location
	Logger       *zap.Logger
	Now          func() time.Time
}

func NewSweeper(reservations reservationRepo.ReservationRepository, expirer *Expirer, notifier notification.Notifier, ttl, interval time.Duration, loc *time.Location, logger *zap.Logger) *Sweeper {
	if loc == nil {
		loc = time.UTC
	}
	return &Sweeper{
		Reservations: reservations,
		Expirer:      expirer,
		Notifier:     notifier,
		TTL:          ttl,
		Interval:     interval,
		Location:     loc,
		Logger:       logger,
		Now:          time.Now,
	}
}

// Run sweeps once immediately and then on every tick until ctx ends.
func (s *Sweeper) Run(ctx context.Context) {
	sugar := s.Logger.Sugar()
	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	sugar.Infof("Expiry sweeper started, interval %s", s.Interval)
	s.tick(ctx)
	for {
		select {
		case <-ctx.Done():
			sugar.Info("Expiry sweeper shutdown signal received.")
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

func (s *Sweeper) tick(ctx context.Context) {
	report := s.Sweep(ctx)
	report.LateNotices = s.MonitorLateness(ctx)
	if report.Expired > 0 || report.Failed > 0 || report.LateNotices > 0 {
		s.Logger.Sugar().Infof("Sweep done: %d candidates, %d expired, %d failed, %d late notices",
			report.Candidates, report.Expired, report.Failed, report.LateNotices)
	}
}

// Sweep expires every reservation still PENDING past its deadline. One
// reservation failing never stops the pass.
func (s *Sweeper) Sweep(ctx context.Context) SweepReport {
	var report SweepReport
	cutoff := s.Now().Add(-s.TTL)

	ids, err := s.Reservations.ListExpiredPending(ctx, cutoff)
	if err != nil {
		s.Logger.Error("Sweep query failed", zap.Error(err))
		report.Failed++
		return report
	}
	report.Candidates = len(ids)

	for _, id := range ids {
		if ctx.Err() != nil {
			break
		}
		deleted, err := s.Expirer.ExpireIfPending(ctx, id)
		if err != nil {
			report.Failed++
			s.Logger.Warn("Sweep could not expire reservation", zap.String("reservationId", id), zap.Error(err))
			continue
		}
		if deleted {
			report.Expired++
		}
	}
	return report
}

// MonitorLateness notifies providers of today's confirmed reservations that
// have started without an arrival. Each threshold notifies at most once.
func (s *Sweeper) MonitorLateness(ctx context.Context) int {
	now := s.Now().In(s.Location)
	today := now.Format(availability.DateLayout)

	reservations, err := s.Reservations.ListAwaitingArrival(ctx, today)
	if err != nil {
		s.Logger.Error("Lateness query failed", zap.Error(err))
		return 0
	}

	sent := 0
	for _, res := range reservations {
		late := availability.MinutesLate(res.Date, res.StartTime, now, s.Location)
		if late < models.LatenessThresholds[0] {
			continue
		}
		crossed := 0
		_, _, err := reservationRepo.Mutate(ctx, s.Reservations, res.ID, func(r *models.Reservation) (bool, error) {
			if r.Status != models.StatusConfirmed || r.ArrivedAt != nil || r.JobInProgress {
				crossed = 0
				return false, nil
			}
			crossed = r.MarkLateness(late)
			if crossed == 0 {
				return false, nil
			}
			r.UpdatedAt = s.Now().UTC()
			return true, nil
		})
		if err != nil {
			s.Logger.Warn("Lateness flags not saved", zap.String("reservationId", res.ID), zap.Error(err))
			continue
		}
		if crossed == 0 {
			continue
		}
		sent++
		msg := fmt.Sprintf("You are %d minutes late for the %s booking. The customer is waiting.", crossed, res.StartTime)
		if err := s.Notifier.Notify(ctx, res.ProviderID, "", "You are running late", msg); err != nil {
			s.Logger.Warn("Lateness notification failed", zap.String("reservationId", res.ID), zap.Error(err))
		}
	}
	return sent
}
