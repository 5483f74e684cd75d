package services

import (
	"context"
	"time"

	"github.com/Dias221467/Reminder_Manager/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserStore is implemented by repository.UserRepository and storage.MemoryStorage.
type UserStore interface {
	GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	UpdateNotificationSettings(ctx context.Context, id primitive.ObjectID, settings models.NotificationSettings) error
}

type RecordStore interface {
	RecordDaysForUser(ctx context.Context, userID primitive.ObjectID) ([]time.Time, error)
	ListRecords(ctx context.Context, userID primitive.ObjectID) ([]models.ActivityRecord, error)
}

type LogStore interface {
	ListByUser(ctx context.Context, userID primitive.ObjectID, limit int64) ([]models.NotificationLogEntry, error)
}
