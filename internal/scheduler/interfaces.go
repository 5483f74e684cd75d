package scheduler

import (
	"context"
	"time"

	"github.com/Dias221467/Reminder_Manager/internal/models"
	"github.com/Dias221467/Reminder_Manager/internal/reminder"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserStore interface {
	ListEligibleUsers(ctx context.Context) ([]models.User, error)
}

type ActivityLedger interface {
	reminder.ActivityLedger
	RecordDaysForUser(ctx context.Context, userID primitive.ObjectID) ([]time.Time, error)
}

type GoalStore interface {
	IncompleteGoalsDueWithin(ctx context.Context, userID primitive.ObjectID, now time.Time, window time.Duration) ([]models.Goal, error)
}

type NotificationLog interface {
	reminder.SentLog
	Append(ctx context.Context, entry *models.NotificationLogEntry) error
}

type DeliveryAdapter interface {
	Send(ctx context.Context, ch models.Channel, destination string, msg reminder.Message) error
}
