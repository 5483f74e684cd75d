package services

import (
	"context"
	"errors"
	"testing"

	"github.com/Dias221467/Reminder_Manager/internal/models"
	"github.com/Dias221467/Reminder_Manager/internal/reminder"
	"github.com/Dias221467/Reminder_Manager/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type SettingsServiceSuite struct {
	suite.Suite
	store *storage.MemoryStorage
	svc   *SettingsService
	user  *models.User
}

func (s *SettingsServiceSuite) SetupTest() {
	s.store = storage.NewMemoryStorage()
	s.svc = NewSettingsService(s.store)
	s.user = &models.User{Email: "mina@example.com"}
	s.store.SaveUser(s.user)
}

func (s *SettingsServiceSuite) TestGetCreatesDefaults() {
	settings, err := s.svc.GetSettings(context.Background(), s.user.ID)
	s.Require().NoError(err)
	s.Equal("21:00", settings.PlanReminderTime)
	s.Equal("07:00", settings.ReflectionReminderTime)
	s.Equal("Asia/Seoul", settings.Timezone)
	s.True(settings.EmailEnabled)
	s.False(settings.PushEnabled)

	stored, err := s.store.GetUserByID(context.Background(), s.user.ID)
	s.Require().NoError(err)
	s.False(stored.NotificationSettings.IsZero())
}

func (s *SettingsServiceSuite) TestPartialUpdate() {
	tz := "Asia/Tokyo"
	at := "22:30"
	settings, err := s.svc.UpdateSettings(context.Background(), s.user.ID, models.SettingsPatch{Timezone: &tz, PlanReminderTime: &at})
	s.Require().NoError(err)
	s.Equal("Asia/Tokyo", settings.Timezone)
	s.Equal("22:30", settings.PlanReminderTime)
	s.Equal("07:00", settings.ReflectionReminderTime)
}

func (s *SettingsServiceSuite) TestRejectsInvalidValues() {
	badTZ := "Moon/Base"
	_, err := s.svc.UpdateSettings(context.Background(), s.user.ID, models.SettingsPatch{Timezone: &badTZ})
	var cfgErr *reminder.ConfigurationError
	s.Require().True(errors.As(err, &cfgErr))
	s.Equal("timezone", cfgErr.Field)

	badTime := "7pm"
	_, err = s.svc.UpdateSettings(context.Background(), s.user.ID, models.SettingsPatch{ReflectionReminderTime: &badTime})
	s.Require().True(errors.As(err, &cfgErr))
	s.Equal("reflectionReminderTime", cfgErr.Field)

	settings, err := s.svc.GetSettings(context.Background(), s.user.ID)
	s.Require().NoError(err)
	s.Equal("Asia/Seoul", settings.Timezone)
}

func (s *SettingsServiceSuite) TestPushSubscription() {
	settings, err := s.svc.SubscribePush(context.Background(), s.user.ID)
	s.Require().NoError(err)
	s.True(settings.PushEnabled)

	settings, err = s.svc.UnsubscribePush(context.Background(), s.user.ID)
	s.Require().NoError(err)
	s.False(settings.PushEnabled)
}

func TestSettingsServiceSuite(t *testing.T) {
	suite.Run(t, new(SettingsServiceSuite))
}

func TestNotificationService_History(t *testing.T) {
	store := storage.NewMemoryStorage()
	user := &models.User{}
	store.SaveUser(user)
	ctx := context.Background()
	require.NoError(t, store.Append(ctx, &models.NotificationLogEntry{UserID: user.ID, Type: models.ReminderPlan, Status: models.StatusFailed, Day: "2024-05-01"}))
	require.NoError(t, store.Append(ctx, &models.NotificationLogEntry{UserID: user.ID, Type: models.ReminderPlan, Status: models.StatusSent, Day: "2024-05-01"}))

	entries, err := NewNotificationService(store).GetHistory(ctx, user.ID, 0)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, models.StatusSent, entries[0].Status)

	entries, err = NewNotificationService(store).GetHistory(ctx, store.Entries()[0].ID, 10)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
