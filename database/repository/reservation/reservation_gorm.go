package reservationRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"slotwise/models"

	"gorm.io/gorm"
)

// GormReservationRepo implements ReservationRepository on a SQL database.
type GormReservationRepo struct {
	db *gorm.DB
}

func NewGormReservationRepo(db *gorm.DB) *GormReservationRepo {
	return &GormReservationRepo{db: db}
}

func (r *GormReservationRepo) Create(ctx context.Context, res *models.Reservation) error {
	if err := r.db.WithContext(ctx).Create(res).Error; err != nil {
		return fmt.Errorf("error creating reservation: %w", err)
	}
	return nil
}

func (r *GormReservationRepo) GetByID(ctx context.Context, id string) (*models.Reservation, error) {
	var res models.Reservation
	err := r.db.WithContext(ctx).First(&res, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error fetching reservation %s: %w", id, err)
	}
	return &res, nil
}

func (r *GormReservationRepo) Update(ctx context.Context, res *models.Reservation, expectedRevision int64) error {
	next := *res
	next.Revision = expectedRevision + 1
	result := r.db.WithContext(ctx).
		Model(&models.Reservation{}).
		Where("id = ? AND revision = ?", res.ID, expectedRevision).
		Select("*").
		Omit("id", "created_at").
		Updates(&next)
	if result.Error != nil {
		return fmt.Errorf("error updating reservation %s: %w", res.ID, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrRevisionConflict
	}
	res.Revision = next.Revision
	return nil
}

func (r *GormReservationRepo) DeleteIfPending(ctx context.Context, id string) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("id = ? AND status = ?", id, models.StatusPending).
		Delete(&models.Reservation{})
	if result.Error != nil {
		return false, fmt.Errorf("error deleting pending reservation %s: %w", id, result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *GormReservationRepo) Delete(ctx context.Context, id string) (bool, error) {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Reservation{})
	if result.Error != nil {
		return false, fmt.Errorf("error deleting reservation %s: %w", id, result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *GormReservationRepo) FindActive(ctx context.Context, requesterID, serviceID string) (*models.Reservation, error) {
	var res models.Reservation
	err := r.db.WithContext(ctx).
		Where("requester_id = ? AND service_id = ? AND job_in_progress = ? AND status <> ?",
			requesterID, serviceID, false, models.StatusRejected).
		First(&res).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error finding active reservation: %w", err)
	}
	return &res, nil
}

func (r *GormReservationRepo) ListByServiceDate(ctx context.Context, serviceID, date string) ([]models.Reservation, error) {
	return r.find(ctx, r.db.Where("service_id = ? AND date = ?", serviceID, date))
}

func (r *GormReservationRepo) ListByRequester(ctx context.Context, requesterID string) ([]models.Reservation, error) {
	return r.find(ctx, r.db.Where("requester_id = ?", requesterID))
}

func (r *GormReservationRepo) ListByProvider(ctx context.Context, providerID, date string) ([]models.Reservation, error) {
	q := r.db.Where("provider_id = ?", providerID)
	if date != "" {
		q = q.Where("date = ?", date)
	}
	return r.find(ctx, q)
}

func (r *GormReservationRepo) ListExpiredPending(ctx context.Context, cutoff time.Time) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&models.Reservation{}).
		Where("status = ? AND created_at < ?", models.StatusPending, cutoff).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("error finding expired reservations: %w", err)
	}
	return ids, nil
}

func (r *GormReservationRepo) ListAwaitingArrival(ctx context.Context, date string) ([]models.Reservation, error) {
	return r.find(ctx, r.db.Where("date = ? AND status = ? AND job_in_progress = ? AND arrived_at IS NULL",
		date, models.StatusConfirmed, false))
}

func (r *GormReservationRepo) CountDone(ctx context.Context, serviceIDs []string) (int64, error) {
	if len(serviceIDs) == 0 {
		return 0, nil
	}
	var n int64
	err := r.db.WithContext(ctx).
		Model(&models.Reservation{}).
		Where("service_id IN ? AND job_in_progress = ? AND payment_confirmed = ?", serviceIDs, true, true).
		Count(&n).Error
	if err != nil {
		return 0, fmt.Errorf("error counting completed reservations: %w", err)
	}
	return n, nil
}

func (r *GormReservationRepo) find(ctx context.Context, q *gorm.DB) ([]models.Reservation, error) {
	var out []models.Reservation
	if err := q.WithContext(ctx).Order("date ASC, start_time ASC").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("error listing reservations: %w", err)
	}
	return out, nil
}
