package directoryRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"slotwise/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ErrNotFound is returned when no account has the requested id.
var ErrNotFound = errors.New("account not found")

// Directory is the read-only view of the identity system.
type Directory interface {
	GetAccount(ctx context.Context, id string) (*models.Account, error)
}

// MongoDirectory reads accounts maintained by the identity service.
type MongoDirectory struct {
	coll *mongo.Collection
}

func NewMongoDirectory(db *mongo.Database) *MongoDirectory {
	return &MongoDirectory{coll: db.Collection("accounts")}
}

func (d *MongoDirectory) GetAccount(ctx context.Context, id string) (*models.Account, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var acc models.Account
	if err := d.coll.FindOne(ctx, bson.M{"id": id}).Decode(&acc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching account %s: %w", id, err)
	}
	return &acc, nil
}
