package services

import (
	"context"
	"testing"
	"time"

	"github.com/Dias221467/Reminder_Manager/internal/models"
	"github.com/Dias221467/Reminder_Manager/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestStreakService_UsesUserTimezone(t *testing.T) {
	store := storage.NewMemoryStorage()
	user := &models.User{NotificationSettings: models.DefaultNotificationSettings()}
	store.SaveUser(user)
	store.AddRecord(models.ActivityRecord{UserID: user.ID, Kind: models.RecordKindPlan, Day: "2024-05-02"})
	store.AddRecord(models.ActivityRecord{UserID: user.ID, Kind: models.RecordKindReflection, Day: "2024-05-01"})

	svc := NewStreakService(store, store)
	// 2024-05-01 23:30 UTC is already 2024-05-02 in Seoul.
	svc.now = func() time.Time { return time.Date(2024, 5, 1, 23, 30, 0, 0, time.UTC) }

	snap, err := svc.GetStreak(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, snap.CurrentStreak)
	assert.Equal(t, models.StreakActive, snap.Status)
}

func TestStreakService_Stats(t *testing.T) {
	store := storage.NewMemoryStorage()
	user := &models.User{NotificationSettings: models.DefaultNotificationSettings()}
	store.SaveUser(user)
	// Thursday 2024-05-09 in Seoul; the week started Sunday 2024-05-05.
	for _, r := range []struct {
		kind models.RecordKind
		day  string
	}{
		{models.RecordKindPlan, "2024-05-09"},
		{models.RecordKindReflection, "2024-05-09"},
		{models.RecordKindPlan, "2024-05-08"},
		{models.RecordKindPlan, "2024-05-04"},
		{models.RecordKindPlan, "2024-04-30"},
	} {
		store.AddRecord(models.ActivityRecord{UserID: user.ID, Kind: r.kind, Day: r.day})
	}

	svc := NewStreakService(store, store)
	svc.now = func() time.Time { return time.Date(2024, 5, 9, 3, 0, 0, 0, time.UTC) }

	stats, err := svc.GetStreakStats(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, stats.TotalRecords)
	assert.Equal(t, 4, stats.UniqueDays)
	assert.Equal(t, 3, stats.ThisWeekRecords)
	assert.Equal(t, 4, stats.ThisMonthRecords)
	assert.Equal(t, []string{"2024-05-09", "2024-05-08", "2024-05-04", "2024-04-30"}, stats.RecordDates)
	assert.Equal(t, 2, stats.CurrentStreak)
	assert.Equal(t, 2, stats.LongestStreak)
}

func TestStreakService_UnknownUser(t *testing.T) {
	store := storage.NewMemoryStorage()
	_, err := NewStreakService(store, store).GetStreak(context.Background(), primitive.NewObjectID())
	assert.ErrorIs(t, err, models.ErrNotFound)
}
