package tier

import (
	"context"
	"fmt"
	"time"

	reservationRepo "slotwise/database/repository/reservation"
	serviceRepo "slotwise/database/repository/service"
	tierRepo "slotwise/database/repository/tier"
	"slotwise/models"

	"go.uber.org/zap"
)

// MaxLevel is the highest tier a provider can reach.
const MaxLevel = 9

// levelCeilings[i] is the largest completed count still ranked at level i.
var levelCeilings = [...]int64{10, 25, 62, 155, 387, 967, 2417, 6042, 15105}

// LevelForCount maps a completed-and-paid count onto a tier level.
func LevelForCount(count int64) int {
	for level, ceiling := range levelCeilings {
		if count <= ceiling {
			return level
		}
	}
	return MaxLevel
}

// TierService derives provider tiers from completed, paid reservations.
type TierService interface {
	Recompute(ctx context.Context, providerID string) (level int, changed bool, err error)
	Get(ctx context.Context, providerID string) (*models.ProviderTier, error)
}

type DefaultTierService struct {
	Services     serviceRepo.ServiceRepository
	Reservations reservationRepo.ReservationRepository
	Tiers        tierRepo.TierRepository
	Logger       *zap.Logger
	Now          func() time.Time
}

func NewTierService(services serviceRepo.ServiceRepository, reservations reservationRepo.ReservationRepository, tiers tierRepo.TierRepository, logger *zap.Logger) *DefaultTierService {
	return &DefaultTierService{
		Services:     services,
		Reservations: reservations,
		Tiers:        tiers,
		Logger:       logger,
		Now:          time.Now,
	}
}

// Recompute counts the provider's completed and paid reservations across all
// of their services and stores the level only when it moved.
func (s *DefaultTierService) Recompute(ctx context.Context, providerID string) (int, bool, error) {
	serviceIDs, err := s.Services.ListIDsByProvider(ctx, providerID)
	if err != nil {
		return 0, false, fmt.Errorf("failed to list services of provider %s: %w", providerID, err)
	}
	if len(serviceIDs) == 0 {
		return 0, false, nil
	}

	count, err := s.Reservations.CountDone(ctx, serviceIDs)
	if err != nil {
		return 0, false, fmt.Errorf("failed to count completed reservations: %w", err)
	}
	level := LevelForCount(count)

	current, err := s.Tiers.Get(ctx, providerID)
	if err != nil {
		return 0, false, err
	}
	if current != nil && current.Level == level {
		return level, false, nil
	}
	// A never-ranked provider sits at level 0 already.
	if current == nil && level == 0 {
		return level, false, nil
	}

	next := &models.ProviderTier{
		ProviderID:     providerID,
		Level:          level,
		CompletedCount: count,
		UpdatedAt:      s.Now().UTC(),
	}
	if err := s.Tiers.Save(ctx, next); err != nil {
		return 0, false, fmt.Errorf("failed to save tier: %w", err)
	}
	s.Logger.Info("Provider tier changed",
		zap.String("providerId", providerID),
		zap.Int("level", level),
		zap.Int64("completed", count))
	return level, true, nil
}

// Get returns the stored tier, or level 0 for a provider never ranked.
func (s *DefaultTierService) Get(ctx context.Context, providerID string) (*models.ProviderTier, error) {
	current, err := s.Tiers.Get(ctx, providerID)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return &models.ProviderTier{ProviderID: providerID}, nil
	}
	return current, nil
}
