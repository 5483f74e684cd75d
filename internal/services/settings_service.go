package services

import (
	"context"
	"fmt"

	"github.com/Dias221467/Reminder_Manager/internal/models"
	"github.com/Dias221467/Reminder_Manager/internal/reminder"
	"github.com/Dias221467/Reminder_Manager/pkg/logger"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SettingsService manages per-user notification settings.
type SettingsService struct {
	users UserStore
}

func NewSettingsService(users UserStore) *SettingsService {
	return &SettingsService{users: users}
}

// GetSettings returns the user's settings, storing the defaults first if the
// user never saved any.
func (s *SettingsService) GetSettings(ctx context.Context, userID primitive.ObjectID) (models.NotificationSettings, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return models.NotificationSettings{}, err
	}
	if !user.NotificationSettings.IsZero() {
		return user.NotificationSettings, nil
	}

	defaults := models.DefaultNotificationSettings()
	if err := s.users.UpdateNotificationSettings(ctx, userID, defaults); err != nil {
		return models.NotificationSettings{}, fmt.Errorf("failed to store default settings: %w", err)
	}
	logger.Log.WithField("user_id", userID.Hex()).Info("Created default notification settings")
	return defaults, nil
}

// UpdateSettings applies patch after validating the result.
func (s *SettingsService) UpdateSettings(ctx context.Context, userID primitive.ObjectID, patch models.SettingsPatch) (models.NotificationSettings, error) {
	current, err := s.GetSettings(ctx, userID)
	if err != nil {
		return models.NotificationSettings{}, err
	}

	updated := patch.Apply(current)
	if err := ValidateSettings(userID.Hex(), updated); err != nil {
		logger.Log.WithError(err).WithField("user_id", userID.Hex()).Warn("Rejected notification settings")
		return models.NotificationSettings{}, err
	}

	if err := s.users.UpdateNotificationSettings(ctx, userID, updated); err != nil {
		return models.NotificationSettings{}, err
	}
	logger.Log.WithFields(logrus.Fields{
		"user_id":  userID.Hex(),
		"timezone": updated.Timezone,
	}).Info("Notification settings updated")
	return updated, nil
}

// SubscribePush turns push delivery on.
func (s *SettingsService) SubscribePush(ctx context.Context, userID primitive.ObjectID) (models.NotificationSettings, error) {
	on := true
	return s.UpdateSettings(ctx, userID, models.SettingsPatch{PushEnabled: &on})
}

// UnsubscribePush turns push delivery off.
func (s *SettingsService) UnsubscribePush(ctx context.Context, userID primitive.ObjectID) (models.NotificationSettings, error) {
	off := false
	return s.UpdateSettings(ctx, userID, models.SettingsPatch{PushEnabled: &off})
}

// ValidateSettings checks the timezone and both reminder times.
func ValidateSettings(userID string, settings models.NotificationSettings) error {
	if _, err := reminder.LoadLocation(settings.Timezone); err != nil {
		return &reminder.ConfigurationError{UserID: userID, Field: "timezone", Value: settings.Timezone, Err: err}
	}
	if _, err := reminder.ParseClock(settings.PlanReminderTime); err != nil {
		return &reminder.ConfigurationError{UserID: userID, Field: "planReminderTime", Value: settings.PlanReminderTime, Err: err}
	}
	if _, err := reminder.ParseClock(settings.ReflectionReminderTime); err != nil {
		return &reminder.ConfigurationError{UserID: userID, Field: "reflectionReminderTime", Value: settings.ReflectionReminderTime, Err: err}
	}
	return nil
}
