package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Dias221467/Reminder_Manager/internal/models"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// UserRepository reads users and their notification settings.
type UserRepository struct {
	collection *mongo.Collection
}

// NewUserRepository creates a new instance of UserRepository.
func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{
		collection: db.Collection("users"),
	}
}

// GetUserByID retrieves a user by their ID.
func (r *UserRepository) GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"userID": id.Hex(),
			"error":  err,
		}).Warn("Failed to find user by ID")
		return nil, fmt.Errorf("failed to find user by id: %w", err)
	}
	return &user, nil
}

// ListEligibleUsers returns every user with email or push delivery enabled.
func (r *UserRepository) ListEligibleUsers(ctx context.Context) ([]models.User, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"notification_settings.email_enabled": true},
		bson.M{"notification_settings.push_enabled": true},
	}}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		logrus.WithError(err).Error("Failed to list eligible users")
		return nil, fmt.Errorf("failed to list eligible users: %w", err)
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("failed to decode users: %w", err)
	}
	return users, nil
}

// UpdateNotificationSettings replaces the user's settings sub-document.
func (r *UserRepository) UpdateNotificationSettings(ctx context.Context, id primitive.ObjectID, settings models.NotificationSettings) error {
	now := time.Now()
	settings.UpdatedAt = now

	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{
			"notification_settings": settings,
			"updated_at":            now,
		}},
	)
	if err != nil {
		logrus.WithError(err).WithField("userID", id.Hex()).Error("Failed to update notification settings")
		return fmt.Errorf("failed to update notification settings: %w", err)
	}
	if res.MatchedCount == 0 {
		return models.ErrNotFound
	}

	logrus.WithField("userID", id.Hex()).Info("Notification settings updated")
	return nil
}
