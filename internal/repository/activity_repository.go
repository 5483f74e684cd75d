package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Dias221467/Reminder_Manager/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ActivityRepository is a read-only view over the plan/reflection records
// written by the capture flow.
type ActivityRepository struct {
	collection *mongo.Collection
}

func NewActivityRepository(db *mongo.Database) *ActivityRepository {
	return &ActivityRepository{
		collection: db.Collection("activity_records"),
	}
}

// ListRecords returns all of a user's records, newest day first.
func (r *ActivityRepository) ListRecords(ctx context.Context, userID primitive.ObjectID) ([]models.ActivityRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "day", Value: -1}, {Key: "recorded_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch activity records: %w", err)
	}
	defer cursor.Close(ctx)

	var records []models.ActivityRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("failed to decode activity records: %w", err)
	}
	return records, nil
}

// RecordDaysForUser returns the distinct days the user recorded anything.
func (r *ActivityRepository) RecordDaysForUser(ctx context.Context, userID primitive.ObjectID) ([]time.Time, error) {
	values, err := r.collection.Distinct(ctx, "day", bson.M{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch record days: %w", err)
	}

	days := make([]time.Time, 0, len(values))
	for _, v := range values {
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected record day %v", v)
		}
		d, err := models.ParseDay(s)
		if err != nil {
			return nil, fmt.Errorf("bad record day %q: %w", s, err)
		}
		days = append(days, d)
	}
	return days, nil
}

// HasRecordBetween reports whether a record of kind exists on a day in
// [fromDay, toDay]. An empty kind matches both kinds.
func (r *ActivityRepository) HasRecordBetween(ctx context.Context, userID primitive.ObjectID, kind models.RecordKind, fromDay, toDay string) (bool, error) {
	filter := bson.M{
		"user_id": userID,
		"day":     bson.M{"$gte": fromDay, "$lte": toDay},
	}
	if kind != "" {
		filter["kind"] = kind
	}

	n, err := r.collection.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("failed to count activity records: %w", err)
	}
	return n > 0, nil
}
