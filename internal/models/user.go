package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is the subset of an account the reminder engine reads.
type User struct {
	ID                   primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Email                string               `bson:"email" json:"email"`
	Name                 string               `bson:"name" json:"name"`
	Role                 string               `bson:"role" json:"role"`
	NotificationSettings NotificationSettings `bson:"notification_settings" json:"notification_settings"`
	CreatedAt            time.Time            `bson:"created_at" json:"created_at"`
	UpdatedAt            time.Time            `bson:"updated_at" json:"updated_at"`
}

// NotificationSettings holds per-user reminder preferences.
// Times of day are "HH:MM" in the user's Timezone.
type NotificationSettings struct {
	PlanReminderEnabled       bool      `bson:"plan_reminder_enabled" json:"planReminderEnabled"`
	PlanReminderTime          string    `bson:"plan_reminder_time" json:"planReminderTime"`
	ReflectionReminderEnabled bool      `bson:"reflection_reminder_enabled" json:"reflectionReminderEnabled"`
	ReflectionReminderTime    string    `bson:"reflection_reminder_time" json:"reflectionReminderTime"`
	StreakAlertsEnabled       bool      `bson:"streak_alerts_enabled" json:"streakAlertsEnabled"`
	GoalDeadlineAlertsEnabled bool      `bson:"goal_deadline_alerts_enabled" json:"goalDeadlineAlertsEnabled"`
	EmailEnabled              bool      `bson:"email_enabled" json:"emailEnabled"`
	PushEnabled               bool      `bson:"push_enabled" json:"pushEnabled"`
	Timezone                  string    `bson:"timezone" json:"timezone"`
	UpdatedAt                 time.Time `bson:"updated_at,omitempty" json:"updatedAt,omitempty"`
}

const DefaultTimezone = "Asia/Seoul"

// DefaultNotificationSettings returns the settings a user gets before changing anything.
func DefaultNotificationSettings() NotificationSettings {
	return NotificationSettings{
		PlanReminderEnabled:       true,
		PlanReminderTime:          "21:00",
		ReflectionReminderEnabled: true,
		ReflectionReminderTime:    "07:00",
		StreakAlertsEnabled:       true,
		GoalDeadlineAlertsEnabled: true,
		EmailEnabled:              true,
		PushEnabled:               false,
		Timezone:                  DefaultTimezone,
	}
}

// IsZero reports whether the settings were never stored.
func (s NotificationSettings) IsZero() bool {
	return s.Timezone == "" && s.PlanReminderTime == "" && s.ReflectionReminderTime == ""
}

// Channels lists the enabled delivery channels in delivery order.
func (s NotificationSettings) Channels() []Channel {
	var channels []Channel
	if s.EmailEnabled {
		channels = append(channels, ChannelEmail)
	}
	if s.PushEnabled {
		channels = append(channels, ChannelPush)
	}
	return channels
}

// SettingsPatch is a partial update; nil fields keep their current value.
type SettingsPatch struct {
	PlanReminderEnabled       *bool   `json:"planReminderEnabled,omitempty"`
	PlanReminderTime          *string `json:"planReminderTime,omitempty"`
	ReflectionReminderEnabled *bool   `json:"reflectionReminderEnabled,omitempty"`
	ReflectionReminderTime    *string `json:"reflectionReminderTime,omitempty"`
	StreakAlertsEnabled       *bool   `json:"streakAlertsEnabled,omitempty"`
	GoalDeadlineAlertsEnabled *bool   `json:"goalDeadlineAlertsEnabled,omitempty"`
	EmailEnabled              *bool   `json:"emailEnabled,omitempty"`
	PushEnabled               *bool   `json:"pushEnabled,omitempty"`
	Timezone                  *string `json:"timezone,omitempty"`
}

// Apply returns s with the non-nil fields of p applied.
func (p SettingsPatch) Apply(s NotificationSettings) NotificationSettings {
	setBool := func(dst *bool, v *bool) {
		if v != nil {
			*dst = *v
		}
	}
	setString := func(dst *string, v *string) {
		if v != nil {
			*dst = *v
		}
	}
	setBool(&s.PlanReminderEnabled, p.PlanReminderEnabled)
	setString(&s.PlanReminderTime, p.PlanReminderTime)
	setBool(&s.ReflectionReminderEnabled, p.ReflectionReminderEnabled)
	setString(&s.ReflectionReminderTime, p.ReflectionReminderTime)
	setBool(&s.StreakAlertsEnabled, p.StreakAlertsEnabled)
	setBool(&s.GoalDeadlineAlertsEnabled, p.GoalDeadlineAlertsEnabled)
	setBool(&s.EmailEnabled, p.EmailEnabled)
	setBool(&s.PushEnabled, p.PushEnabled)
	setString(&s.Timezone, p.Timezone)
	return s
}
