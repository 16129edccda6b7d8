package tierRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"slotwise/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// TierRepository stores the derived tier of each provider.
type TierRepository interface {
	// Get returns nil when the provider has never been ranked.
	Get(ctx context.Context, providerID string) (*models.ProviderTier, error)
	Save(ctx context.Context, tier *models.ProviderTier) error
}

type MongoTierRepo struct {
	coll *mongo.Collection
}

func NewMongoTierRepo(db *mongo.Database) *MongoTierRepo {
	return &MongoTierRepo{coll: db.Collection("provider_tiers")}
}

func (r *MongoTierRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "provider_id", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("unique_provider"),
	})
	if err != nil {
		return fmt.Errorf("failed to create tier indexes: %w", err)
	}
	return nil
}

func (r *MongoTierRepo) Get(ctx context.Context, providerID string) (*models.ProviderTier, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var tier models.ProviderTier
	err := r.coll.FindOne(ctx, bson.M{"provider_id": providerID}).Decode(&tier)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error fetching tier for %s: %w", providerID, err)
	}
	return &tier, nil
}

// Save upserts the provider's tier document.
func (r *MongoTierRepo) Save(ctx context.Context, tier *models.ProviderTier) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Replace().SetUpsert(true)
	if _, err := r.coll.ReplaceOne(ctx, bson.M{"provider_id": tier.ProviderID}, tier, opts); err != nil {
		return fmt.Errorf("error saving tier for %s: %w", tier.ProviderID, err)
	}
	return nil
}
