package repository

import (
	"context"
	"time"

	"github.com/Dias221467/Reminder_Manager/internal/models"
	"github.com/Dias221467/Reminder_Manager/pkg/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GoalRepository struct handles read access to goals
type GoalRepository struct {
	collection *mongo.Collection
}

// NewGoalRepository creates a new instance of GoalRepository
func NewGoalRepository(db *mongo.Database) *GoalRepository {
	return &GoalRepository{
		collection: db.Collection("goals"),
	}
}

// IncompleteGoalsDueWithin fetches a user's open goals with a target date in (now, now+window]
func (r *GoalRepository) IncompleteGoalsDueWithin(ctx context.Context, userID primitive.ObjectID, now time.Time, window time.Duration) ([]models.Goal, error) {
	filter := bson.M{
		"user_id":   userID,
		"completed": bson.M{"$ne": true},
		"target_date": bson.M{
			"$gt":  now,
			"$lte": now.Add(window),
		},
	}
	opts := options.Find().SetSort(bson.D{{Key: "target_date", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		logger.Log.WithError(err).WithField("user_id", userID.Hex()).Error("Failed to fetch goals due soon")
		return nil, err
	}
	defer cursor.Close(ctx)

	var goals []models.Goal
	for cursor.Next(ctx) {
		var goal models.Goal
		if err := cursor.Decode(&goal); err != nil {
			logger.Log.WithError(err).Error("Failed to decode goal")
			return nil, err
		}
		goals = append(goals, goal)
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}

	logger.Log.WithFields(map[string]interface{}{
		"user_id": userID.Hex(),
		"count":   len(goals),
	}).Debug("Goals due soon fetched")
	return goals, nil
}
