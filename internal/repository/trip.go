package repository

import (
	"context"
	"errors"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/roamly/roamly-go/internal/model"
)

var ErrTripNotFound = errors.New("trip not found")

// TripRepository handles trip persistence in the trips collection. Every
// query carries the owner id; a trip belonging to another user is
// indistinguishable from one that does not exist.
type TripRepository struct {
	col *mongo.Collection
}

// NewTripRepository creates a new TripRepository.
func NewTripRepository(db *mongo.Database) *TripRepository {
	return &TripRepository{col: db.Collection("trips")}
}

// EnsureIndexes creates the query indexes carried over from the original
// schema: owner+status, start date, and destination.
func (r *TripRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "startDate", Value: 1}}},
		{Keys: bson.D{{Key: "destination", Value: 1}}},
	})
	return err
}

// Create inserts a trip and sets the generated id on the struct.
func (r *TripRepository) Create(ctx context.Context, trip *model.Trip) error {
	res, err := r.col.InsertOne(ctx, trip)
	if err != nil {
		return err
	}
	trip.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// filterQuery translates a TripFilter into Mongo predicates scoped to the
// owner. Pure: no request state, each optional field mapped independently.
func filterQuery(ownerID primitive.ObjectID, f model.TripFilter) bson.M {
	q := bson.M{"userId": ownerID}
	if f.Status != nil {
		q["status"] = *f.Status
	}
	if f.Destination != nil {
		q["destination"] = bson.M{
			"$regex":   regexp.QuoteMeta(*f.Destination),
			"$options": "i",
		}
	}
	if f.StartDateFrom != nil || f.StartDateTo != nil {
		rng := bson.M{}
		if f.StartDateFrom != nil {
			rng["$gte"] = *f.StartDateFrom
		}
		if f.StartDateTo != nil {
			rng["$lte"] = *f.StartDateTo
		}
		q["startDate"] = rng
	}
	return q
}

// List returns the owner's trips matching the filter, ascending by start date.
func (r *TripRepository) List(ctx context.Context, ownerID primitive.ObjectID, f model.TripFilter) ([]model.Trip, error) {
	return r.find(ctx, filterQuery(ownerID, f), bson.D{{Key: "startDate", Value: 1}})
}

// ListUpcoming returns the owner's upcoming trips whose start date is still
// in the future, ascending by start date.
func (r *TripRepository) ListUpcoming(ctx context.Context, ownerID primitive.ObjectID, now time.Time) ([]model.Trip, error) {
	q := bson.M{
		"userId":    ownerID,
		"status":    model.StatusUpcoming,
		"startDate": bson.M{"$gt": now},
	}
	return r.find(ctx, q, bson.D{{Key: "startDate", Value: 1}})
}

// ListPast returns the owner's completed trips whose end date has elapsed,
// most recent first.
func (r *TripRepository) ListPast(ctx context.Context, ownerID primitive.ObjectID, now time.Time) ([]model.Trip, error) {
	q := bson.M{
		"userId":  ownerID,
		"status":  model.StatusCompleted,
		"endDate": bson.M{"$lt": now},
	}
	return r.find(ctx, q, bson.D{{Key: "endDate", Value: -1}})
}

// ListEndedWithStatus returns the owner's trips still carrying one of the
// given statuses even though their end date has elapsed. Used to refresh
// stale statuses at read time.
func (r *TripRepository) ListEndedWithStatus(ctx context.Context, ownerID primitive.ObjectID, now time.Time, statuses []string) ([]model.Trip, error) {
	q := bson.M{
		"userId":  ownerID,
		"status":  bson.M{"$in": statuses},
		"endDate": bson.M{"$lt": now},
	}
	return r.find(ctx, q, bson.D{{Key: "endDate", Value: -1}})
}

func (r *TripRepository) find(ctx context.Context, q bson.M, sort bson.D) ([]model.Trip, error) {
	cur, err := r.col.Find(ctx, q, options.Find().SetSort(sort))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	trips := make([]model.Trip, 0)
	if err := cur.All(ctx, &trips); err != nil {
		return nil, err
	}
	return trips, nil
}

// GetByID retrieves one of the owner's trips by id.
func (r *TripRepository) GetByID(ctx context.Context, ownerID, tripID primitive.ObjectID) (*model.Trip, error) {
	trip := &model.Trip{}
	err := r.col.FindOne(ctx, bson.M{"_id": tripID, "userId": ownerID}).Decode(trip)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrTripNotFound
		}
		return nil, err
	}
	return trip, nil
}

// Update replaces one of the owner's trips as a whole document.
func (r *TripRepository) Update(ctx context.Context, trip *model.Trip) error {
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": trip.ID, "userId": trip.UserID}, trip)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrTripNotFound
	}
	return nil
}

// UpdateStatus rewrites only the status and updatedAt fields of a trip.
func (r *TripRepository) UpdateStatus(ctx context.Context, ownerID, tripID primitive.ObjectID, status string, now time.Time) error {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": tripID, "userId": ownerID},
		bson.M{"$set": bson.M{"status": status, "updatedAt": now}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrTripNotFound
	}
	return nil
}

// Delete removes one of the owner's trips.
func (r *TripRepository) Delete(ctx context.Context, ownerID, tripID primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": tripID, "userId": ownerID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrTripNotFound
	}
	return nil
}

// PushTip appends a tip to one of the owner's trips and returns the updated
// document. Existing tips are never replaced.
func (r *TripRepository) PushTip(ctx context.Context, ownerID, tripID primitive.ObjectID, tip model.Tip, now time.Time) (*model.Trip, error) {
	trip := &model.Trip{}
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": tripID, "userId": ownerID},
		bson.M{
			"$push": bson.M{"tips": tip},
			"$set":  bson.M{"updatedAt": now},
		},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(trip)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrTripNotFound
		}
		return nil, err
	}
	return trip, nil
}
