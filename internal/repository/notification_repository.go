package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Dias221467/Reminder_Manager/internal/models"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// NotificationRepository is the append-only delivery log.
type NotificationRepository struct {
	collection *mongo.Collection
}

func NewNotificationRepository(db *mongo.Database) *NotificationRepository {
	return &NotificationRepository{
		collection: db.Collection("notification_log"),
	}
}

// EnsureIndexes creates the lookup index and the unique index that allows
// only one sent entry per user, type and day.
func (r *NotificationRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "timestamp", Value: -1}},
		},
		{
			Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "type", Value: 1}, {Key: "day", Value: 1}},
			Options: options.Index().
				SetName("unique_sent_per_day").
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"status": models.StatusSent}),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create notification log indexes: %w", err)
	}
	return nil
}

// Append inserts a log entry. A duplicate sent entry yields models.ErrAlreadySent.
func (r *NotificationRepository) Append(ctx context.Context, entry *models.NotificationLogEntry) error {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}
	if entry.ID.IsZero() {
		entry.ID = primitive.NewObjectID()
	}

	_, err := r.collection.InsertOne(ctx, entry)
	if mongo.IsDuplicateKeyError(err) {
		return models.ErrAlreadySent
	}
	if err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"userID": entry.UserID.Hex(),
			"type":   entry.Type,
		}).Error("Failed to append notification log entry")
		return fmt.Errorf("failed to append notification log: %w", err)
	}
	return nil
}

// HasSent reports whether a sent entry exists for the user, type and day.
func (r *NotificationRepository) HasSent(ctx context.Context, userID primitive.ObjectID, t models.ReminderType, day string) (bool, error) {
	filter := bson.M{
		"user_id": userID,
		"type":    t,
		"day":     day,
		"status":  models.StatusSent,
	}
	n, err := r.collection.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("failed to query notification log: %w", err)
	}
	return n > 0, nil
}

// ListByUser returns a user's log, newest first.
func (r *NotificationRepository) ListByUser(ctx context.Context, userID primitive.ObjectID, limit int64) ([]models.NotificationLogEntry, error) {
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch notification log: %w", err)
	}
	defer cursor.Close(ctx)

	var entries []models.NotificationLogEntry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode notification log: %w", err)
	}
	return entries, nil
}
