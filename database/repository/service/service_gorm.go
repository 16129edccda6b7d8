package serviceRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"slotwise/models"

	"gorm.io/gorm"
)

// GormServiceRepo implements ServiceRepository on a SQL database.
type GormServiceRepo struct {
	db *gorm.DB
}

func NewGormServiceRepo(db *gorm.DB) *GormServiceRepo {
	return &GormServiceRepo{db: db}
}

func (r *GormServiceRepo) Create(ctx context.Context, svc *models.Service, days []models.AvailabilityDay) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(svc).Error; err != nil {
			return fmt.Errorf("error creating service: %w", err)
		}
		if len(days) == 0 {
			return nil
		}
		if err := tx.Create(&days).Error; err != nil {
			return fmt.Errorf("error inserting availability: %w", err)
		}
		return nil
	})
}

func (r *GormServiceRepo) GetByID(ctx context.Context, id string) (*models.Service, error) {
	var svc models.Service
	err := r.db.WithContext(ctx).First(&svc, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error fetching service %s: %w", id, err)
	}
	return &svc, nil
}

func (r *GormServiceRepo) ListByProvider(ctx context.Context, providerID string) ([]models.Service, error) {
	var out []models.Service
	if err := r.db.WithContext(ctx).Where("provider_id = ?", providerID).Order("created_at ASC").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("error listing services: %w", err)
	}
	return out, nil
}

func (r *GormServiceRepo) ListIDsByProvider(ctx context.Context, providerID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).Model(&models.Service{}).Where("provider_id = ?", providerID).Pluck("id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("error listing service ids: %w", err)
	}
	return ids, nil
}

func (r *GormServiceRepo) GetAvailability(ctx context.Context, serviceID string) ([]models.AvailabilityDay, error) {
	var days []models.AvailabilityDay
	if err := r.db.WithContext(ctx).Where("service_id = ?", serviceID).Order("weekday ASC").Find(&days).Error; err != nil {
		return nil, fmt.Errorf("error fetching availability: %w", err)
	}
	return days, nil
}

func (r *GormServiceRepo) GetAvailabilityDay(ctx context.Context, serviceID string, weekday time.Weekday) (*models.AvailabilityDay, error) {
	var day models.AvailabilityDay
	err := r.db.WithContext(ctx).Where("service_id = ? AND weekday = ?", serviceID, int(weekday)).First(&day).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error fetching availability day: %w", err)
	}
	return &day, nil
}

func (r *GormServiceRepo) ReplaceAvailability(ctx context.Context, serviceID string, days []models.AvailabilityDay) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("service_id = ?", serviceID).Delete(&models.AvailabilityDay{}).Error; err != nil {
			return fmt.Errorf("error clearing availability for %s: %w", serviceID, err)
		}
		if len(days) == 0 {
			return nil
		}
		if err := tx.Create(&days).Error; err != nil {
			return fmt.Errorf("error inserting availability: %w", err)
		}
		return nil
	})
}
