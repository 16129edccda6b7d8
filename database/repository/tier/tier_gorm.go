package tierRepo

import (
	"context"
	"errors"
	"fmt"

	"slotwise/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GormTierRepo struct {
	db *gorm.DB
}

func NewGormTierRepo(db *gorm.DB) *GormTierRepo {
	return &GormTierRepo{db: db}
}

func (r *GormTierRepo) Get(ctx context.Context, providerID string) (*models.ProviderTier, error) {
	var tier models.ProviderTier
	err := r.db.WithContext(ctx).First(&tier, "provider_id = ?", providerID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error fetching tier for %s: %w", providerID, err)
	}
	return &tier, nil
}

func (r *GormTierRepo) Save(ctx context.Context, tier *models.ProviderTier) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "provider_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"level", "completed_count", "updated_at"}),
	}).Create(tier).Error
	if err != nil {
		return fmt.Errorf("error saving tier for %s: %w", tier.ProviderID, err)
	}
	return nil
}
