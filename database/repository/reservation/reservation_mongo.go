package reservationRepo

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

// MongoReservationRepo implements ReservationRepository using MongoDB.
type MongoReservationRepo struct {
	coll *mongo.Collection
}

// NewMongoReservationRepo constructs a new instance of MongoReservationRepo.
func NewMongoReservationRepo(db *mongo.Database) *MongoReservationRepo {
	return &MongoReservationRepo{coll: db.Collection("reservations")}
}

// EnsureIndexes creates the indexes the lookups below rely on.
func (r *MongoReservationRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		{
			Keys:    bson.D{{Key: "service_id", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index().SetName("service_date_idx"),
		},
		{
			Keys:    bson.D{{Key: "requester_id", Value: 1}, {Key: "service_id", Value: 1}},
			Options: options.Index().SetName("requester_service_idx"),
		},
		{
			Keys:    bson.D{{Key: "provider_id", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index().SetName("provider_date_idx"),
		},
		{
			Keys:    bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: 1}},
			Options: options.Index().SetName("status_created_idx"),
		},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create reservation indexes: %w", err)
	}
	return nil
}

// Create inserts a new reservation document.
func (r *MongoReservationRepo) Create(ctx context.Context, res *models.Reservation) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, res); err != nil {
		return fmt.Errorf("error creating reservation: %w", err)
	}
	return nil
}

// GetByID retrieves a reservation by its id.
func (r *MongoReservationRepo) GetByID(ctx context.Context, id string) (*models.Reservation, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var res models.Reservation
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&res); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching reservation %s: %w", id, err)
	}
	return &res, nil
}

// Update replaces the document when its revision still matches.
func (r *MongoReservationRepo) Update(ctx context.Context, res *models.Reservation, expectedRevision int64) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	next := *res
	next.Revision = expectedRevision + 1
	result, err := r.coll.ReplaceOne(ctx, bson.M{"id": res.ID, "revision": expectedRevision}, &next)
	if err != nil {
		return fmt.Errorf("error updating reservation %s: %w", res.ID, err)
	}
	if result.MatchedCount == 0 {
		return ErrRevisionConflict
	}
	res.Revision = next.Revision
	return nil
}

// DeleteIfPending removes the reservation only while its status is PENDING.
func (r *MongoReservationRepo) DeleteIfPending(ctx context.Context, id string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id, "status": models.StatusPending})
	if err != nil {
		return false, fmt.Errorf("error deleting pending reservation %s: %w", id, err)
	}
	return result.DeletedCount > 0, nil
}

// Delete removes the reservation whatever its state.
func (r *MongoReservationRepo) Delete(ctx context.Context, id string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return false, fmt.Errorf("error deleting reservation %s: %w", id, err)
	}
	return result.DeletedCount > 0, nil
}

func (r *MongoReservationRepo) FindActive(ctx context.Context, requesterID, serviceID string) (*models.Reservation, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	filter := bson.M{
		"requester_id":    requesterID,
		"service_id":      serviceID,
		"job_in_progress": bson.M{"$ne": true},
		"status":          bson.M{"$ne": models.StatusRejected},
	}
	var res models.Reservation
	if err := r.coll.FindOne(ctx, filter).Decode(&res); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("error finding active reservation: %w", err)
	}
	return &res, nil
}

func (r *MongoReservationRepo) ListByServiceDate(ctx context.Context, serviceID, date string) ([]models.Reservation, error) {
	return r.find(ctx, bson.M{"service_id": serviceID, "date": date})
}

func (r *MongoReservationRepo) ListByRequester(ctx context.Context, requesterID string) ([]models.Reservation, error) {
	return r.find(ctx, bson.M{"requester_id": requesterID})
}

func (r *MongoReservationRepo) ListByProvider(ctx context.Context, providerID, date string) ([]models.Reservation, error) {
	filter := bson.M{"provider_id": providerID}
	if date != "" {
		filter["date"] = date
	}
	return r.find(ctx, filter)
}

func (r *MongoReservationRepo) ListExpiredPending(ctx context.Context, cutoff time.Time) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	filter := bson.M{
		"status":     models.StatusPending,
		"created_at": bson.M{"$lt": cutoff},
	}
	opts := options.Find().SetProjection(bson.M{"id": 1})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error finding expired reservations: %w", err)
	}
	defer cursor.Close(ctx)

	var ids []string
	for cursor.Next(ctx) {
		var row struct {
			ID string `bson:"id"`
		}
		if err := cursor.Decode(&row); err != nil {
			return nil, fmt.Errorf("error decoding expired reservation: %w", err)
		}
		ids = append(ids, row.ID)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return ids, nil
}

func (r *MongoReservationRepo) ListAwaitingArrival(ctx context.Context, date string) ([]models.Reservation, error) {
	return r.find(ctx, bson.M{
		"date":            date,
		"status":          models.StatusConfirmed,
		"job_in_progress": bson.M{"$ne": true},
		"arrived_at":      nil,
	})
}

func (r *MongoReservationRepo) CountDone(ctx context.Context, serviceIDs []string) (int64, error) {
	if len(serviceIDs) == 0 {
		return 0, nil
	}
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	filter := bson.M{
		"service_id":        bson.M{"$in": serviceIDs},
		"job_in_progress":   true,
		"payment_confirmed": true,
	}
	n, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("error counting completed reservations: %w", err)
	}
	return n, nil
}

func (r *MongoReservationRepo) find(ctx context.Context, filter bson.M) ([]models.Reservation, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "start_time", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing reservations: %w", err)
	}
	defer cursor.Close(ctx)

	var out []models.Reservation
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("error decoding reservations: %w", err)
	}
	return out, nil
}
