package repository

import (
	"context"
	"testing"

	"github.com/Dias221467/Reminder_Manager/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestNotificationRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("append assigns id and timestamp", func(mt *mtest.T) {
		repo := NewNotificationRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		entry := &models.NotificationLogEntry{UserID: primitive.NewObjectID(), Type: models.ReminderPlan, Status: models.StatusSent, Day: "2024-05-01"}
		require.NoError(mt, repo.Append(context.Background(), entry))
		assert.False(mt, entry.ID.IsZero())
		assert.False(mt, entry.Timestamp.IsZero())
	})

	mt.Run("duplicate sent entry", func(mt *mtest.T) {
		repo := NewNotificationRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "E11000 duplicate key error",
		}))

		err := repo.Append(context.Background(), &models.NotificationLogEntry{UserID: primitive.NewObjectID(), Status: models.StatusSent})
		assert.ErrorIs(mt, err, models.ErrAlreadySent)
	})

	mt.Run("has sent", func(mt *mtest.T) {
		repo := NewNotificationRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "db.notification_log", mtest.FirstBatch, bson.D{{Key: "n", Value: int32(1)}}))

		sent, err := repo.HasSent(context.Background(), primitive.NewObjectID(), models.ReminderPlan, "2024-05-01")
		require.NoError(mt, err)
		assert.True(mt, sent)
	})

	mt.Run("has not sent", func(mt *mtest.T) {
		repo := NewNotificationRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "db.notification_log", mtest.FirstBatch))

		sent, err := repo.HasSent(context.Background(), primitive.NewObjectID(), models.ReminderPlan, "2024-05-01")
		require.NoError(mt, err)
		assert.False(mt, sent)
	})

	mt.Run("list by user", func(mt *mtest.T) {
		repo := NewNotificationRepository(mt.DB)
		uid := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "db.notification_log", mtest.FirstBatch,
			bson.D{{Key: "_id", Value: primitive.NewObjectID()}, {Key: "user_id", Value: uid}, {Key: "type", Value: "plan_reminder"}, {Key: "status", Value: "sent"}},
			bson.D{{Key: "_id", Value: primitive.NewObjectID()}, {Key: "user_id", Value: uid}, {Key: "type", Value: "plan_reminder"}, {Key: "status", Value: "failed"}, {Key: "error", Value: "smtp down"}},
		))

		entries, err := repo.ListByUser(context.Background(), uid, 10)
		require.NoError(mt, err)
		require.Len(mt, entries, 2)
		assert.Equal(mt, models.StatusFailed, entries[1].Status)
		assert.Equal(mt, "smtp down", entries[1].Error)
	})

	mt.Run("ensure indexes", func(mt *mtest.T) {
		repo := NewNotificationRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		assert.NoError(mt, repo.EnsureIndexes(context.Background()))
	})
}
