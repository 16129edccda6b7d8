package addressRepo

import (
	"context"
	"fmt"
	"time"

	"slotwise/models"

	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// AddressBook keeps addresses requesters can reuse on later bookings.
type AddressBook interface {
	Save(ctx context.Context, addr *models.Address) error
}

type MongoAddressBook struct {
	coll *mongo.Collection
}

func NewMongoAddressBook(db *mongo.Database) *MongoAddressBook {
	return &MongoAddressBook{coll: db.Collection("addresses")}
}

func (b *MongoAddressBook) Save(ctx context.Context, addr *models.Address) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := b.coll.InsertOne(ctx, addr); err != nil {
		return fmt.Errorf("error saving address: %w", err)
	}
	return nil
}

type GormAddressBook struct {
	db *gorm.DB
}

func NewGormAddressBook(db *gorm.DB) *GormAddressBook {
	return &GormAddressBook{db: db}
}

func (b *GormAddressBook) Save(ctx context.Context, addr *models.Address) error {
	if err := b.db.WithContext(ctx).Create(addr).Error; err != nil {
		return fmt.Errorf("error saving address: %w", err)
	}
	return nil
}
