package expiry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// TaskEnqueuer is satisfied by *asynq.Client.
type TaskEnqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// TaskInspector is satisfied by *asynq.Inspector.
type TaskInspector interface {
	DeleteTask(queue, id string) error
	ListScheduledTasks(queue string, opts ...asynq.ListOption) ([]*asynq.TaskInfo, error)
}

const scanPageSize = 100

// Scheduler arms a one-shot expiry task per pending reservation and cancels
// it on confirmation. Every queue call is bounded by Timeout; a miss is left
// to the sweeper.
type Scheduler struct {
	Client    TaskEnqueuer
	Inspector TaskInspector
	Handles   HandleStore
	TTL       time.Duration
	Timeout   time.Duration
	Logger    *zap.Logger
}

func NewScheduler(client TaskEnqueuer, inspector TaskInspector, handles HandleStore, ttl, timeout time.Duration, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		Client:    client,
		Inspector: inspector,
		Handles:   handles,
		TTL:       ttl,
		Timeout:   timeout,
		Logger:    logger,
	}
}

// Arm schedules the reservation to expire TTL after createdAt.
func (s *Scheduler) Arm(ctx context.Context, reservationID string, createdAt time.Time) error {
	delay := max(time.Until(createdAt.Add(s.TTL)), 0)
	task, opts, err := NewExpireTask(ExpirePayload{ReservationID: reservationID, CreatedAt: createdAt}, delay)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	info, err := s.Client.EnqueueContext(ctx, task, opts...)
	if err != nil {
		return fmt.Errorf("failed to arm expiry for %s: %w", reservationID, err)
	}
	if err := s.Handles.Save(ctx, reservationID, Handle{TaskID: info.ID, Queue: info.Queue}); err != nil {
		// The task is armed; disarm falls back to scanning the queue.
		s.Logger.Warn("Expiry handle not saved", zap.String("reservationId", reservationID), zap.Error(err))
	}
	s.Logger.Debug("Expiry armed",
		zap.String("reservationId", reservationID),
		zap.String("taskId", info.ID),
		zap.Duration("in", delay))
	return nil
}

// Disarm cancels the reservation's expiry task. A task that already fired or
// was never armed counts as cancelled.
func (s *Scheduler) Disarm(ctx context.Context, reservationID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	h, found, err := s.Handles.Lookup(ctx, reservationID)
	if err != nil {
		s.Logger.Warn("Expiry handle lookup failed, scanning queue", zap.String("reservationId", reservationID), zap.Error(err))
	}

	err = s.bounded(ctx, func() error {
		if found {
			return s.deleteTask(h.Queue, h.TaskID)
		}
		return s.scanAndDelete(ctx, reservationID)
	})
	fctx, fcancel := context.WithTimeout(context.WithoutCancel(ctx), s.Timeout)
	defer fcancel()
	if ferr := s.Handles.Forget(fctx, reservationID); ferr != nil {
		s.Logger.Warn("Expiry handle not forgotten", zap.String("reservationId", reservationID), zap.Error(ferr))
	}
	if err != nil {
		return fmt.Errorf("failed to disarm expiry for %s: %w", reservationID, err)
	}
	return nil
}

// Forget drops the handle of a reservation that is gone.
func (s *Scheduler) Forget(ctx context.Context, reservationID string) error {
	return s.Handles.Forget(ctx, reservationID)
}

func (s *Scheduler) deleteTask(queue, id string) error {
	err := s.Inspector.DeleteTask(queue, id)
	if errors.Is(err, asynq.ErrTaskNotFound) || errors.Is(err, asynq.ErrQueueNotFound) {
		return nil
	}
	return err
}

// scanAndDelete walks the scheduled tasks of the expiry queue looking for the
// one carrying reservationID.
func (s *Scheduler) scanAndDelete(ctx context.Context, reservationID string) error {
	for page := 1; ; page++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		tasks, err := s.Inspector.ListScheduledTasks(QueueExpiry, asynq.PageSize(scanPageSize), asynq.Page(page))
		if errors.Is(err, asynq.ErrQueueNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		for _, info := range tasks {
			if info.Type != TypeExpireReservation {
				continue
			}
			p, err := ParseExpirePayload(info.Payload)
			if err != nil || p.ReservationID != reservationID {
				continue
			}
			return s.deleteTask(info.Queue, info.ID)
		}
		if len(tasks) < scanPageSize {
			return nil
		}
	}
}

// bounded runs fn, giving up when ctx ends. The inspector API takes no
// context, so a stuck call is abandoned rather than interrupted.
func (s *Scheduler) bounded(ctx context.Context, fn func() error) error {
	done := make(chan error, 1)
	go func() { done <- fn() }()
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
