package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestGoalRepository_IncompleteGoalsDueWithin(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("decodes goals", func(mt *mtest.T) {
		repo := NewGoalRepository(mt.DB)
		uid := primitive.NewObjectID()
		target := time.Date(2024, 5, 2, 14, 59, 59, 0, time.UTC)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "db.goals", mtest.FirstBatch,
			bson.D{
				{Key: "_id", Value: primitive.NewObjectID()},
				{Key: "user_id", Value: uid},
				{Key: "text", Value: "Submit report"},
				{Key: "target_date", Value: target},
				{Key: "completed", Value: false},
			},
		))

		goals, err := repo.IncompleteGoalsDueWithin(context.Background(), uid, target.Add(-time.Hour), 24*time.Hour)
		require.NoError(mt, err)
		require.Len(mt, goals, 1)
		assert.Equal(mt, "Submit report", goals[0].Text)
		assert.True(mt, goals[0].TargetDate.Equal(target))
	})
}
