package directoryRepo

import (
	"context"
	"errors"
	"fmt"

	"slotwise/models"

	"gorm.io/gorm"
)

type GormDirectory struct {
	db *gorm.DB
}

func NewGormDirectory(db *gorm.DB) *GormDirectory {
	return &GormDirectory{db: db}
}

func (d *GormDirectory) GetAccount(ctx context.Context, id string) (*models.Account, error) {
	var acc models.Account
	err := d.db.WithContext(ctx).First(&acc, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error fetching account %s: %w", id, err)
	}
	return &acc, nil
}
