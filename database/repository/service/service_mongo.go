package serviceRepo

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

const opTimeout = 5 * time.Second

// MongoServiceRepo implements ServiceRepository using MongoDB.
type MongoServiceRepo struct {
	serviceColl      *mongo.Collection
	availabilityColl *mongo.Collection
}

func NewMongoServiceRepo(db *mongo.Database) *MongoServiceRepo {
	return &MongoServiceRepo{
		serviceColl:      db.Collection("services"),
		availabilityColl: db.Collection("availability"),
	}
}

// EnsureIndexes creates the necessary indexes on both collections.
func (r *MongoServiceRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if _, err := r.serviceColl.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		{
			Keys:    bson.D{{Key: "provider_id", Value: 1}},
			Options: options.Index().SetName("provider_idx"),
		},
	}); err != nil {
		return fmt.Errorf("failed to create service indexes: %w", err)
	}

	if _, err := r.availabilityColl.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "service_id", Value: 1}, {Key: "weekday", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("service_weekday_idx"),
	}); err != nil {
		return fmt.Errorf("failed to create availability indexes: %w", err)
	}
	return nil
}

func (r *MongoServiceRepo) Create(ctx context.Context, svc *models.Service, days []models.AvailabilityDay) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	if _, err := r.serviceColl.InsertOne(ctx, svc); err != nil {
		return fmt.Errorf("error creating service: %w", err)
	}
	return r.insertDays(ctx, days)
}

func (r *MongoServiceRepo) GetByID(ctx context.Context, id string) (*models.Service, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var svc models.Service
	if err := r.serviceColl.FindOne(ctx, bson.M{"id": id}).Decode(&svc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching service %s: %w", id, err)
	}
	return &svc, nil
}

func (r *MongoServiceRepo) ListByProvider(ctx context.Context, providerID string) ([]models.Service, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	cursor, err := r.serviceColl.Find(ctx, bson.M{"provider_id": providerID})
	if err != nil {
		return nil, fmt.Errorf("error listing services: %w", err)
	}
	defer cursor.Close(ctx)

	var out []models.Service
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("error decoding services: %w", err)
	}
	return out, nil
}

func (r *MongoServiceRepo) ListIDsByProvider(ctx context.Context, providerID string) ([]string, error) {
	services, err := r.ListByProvider(ctx, providerID)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(services))
	for _, s := range services {
		ids = append(ids, s.ID)
	}
	return ids, nil
}

func (r *MongoServiceRepo) GetAvailability(ctx context.Context, serviceID string) ([]models.AvailabilityDay, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "weekday", Value: 1}})
	cursor, err := r.availabilityColl.Find(ctx, bson.M{"service_id": serviceID}, opts)
	if err != nil {
		return nil, fmt.Errorf("error fetching availability: %w", err)
	}
	defer cursor.Close(ctx)

	var days []models.AvailabilityDay
	if err := cursor.All(ctx, &days); err != nil {
		return nil, fmt.Errorf("error decoding availability: %w", err)
	}
	return days, nil
}

func (r *MongoServiceRepo) GetAvailabilityDay(ctx context.Context, serviceID string, weekday time.Weekday) (*models.AvailabilityDay, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var day models.AvailabilityDay
	err := r.availabilityColl.FindOne(ctx, bson.M{"service_id": serviceID, "weekday": weekday}).Decode(&day)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error fetching availability day: %w", err)
	}
	return &day, nil
}

func (r *MongoServiceRepo) ReplaceAvailability(ctx context.Context, serviceID string, days []models.AvailabilityDay) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	if _, err := r.availabilityColl.DeleteMany(ctx, bson.M{"service_id": serviceID}); err != nil {
		return fmt.Errorf("error clearing availability for %s: %w", serviceID, err)
	}
	return r.insertDays(ctx, days)
}

func (r *MongoServiceRepo) insertDays(ctx context.Context, days []models.AvailabilityDay) error {
	if len(days) == 0 {
		return nil
	}
	docs := make([]interface{}, 0, len(days))
	for _, d := range days {
		docs = append(docs, d)
	}
	if _, err := r.availabilityColl.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("error inserting availability: %w", err)
	}
	return nil
}
