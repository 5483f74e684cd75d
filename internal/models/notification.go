package models

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ReminderType string

const (
	ReminderPlan              ReminderType = "plan_reminder"
	ReminderReflection        ReminderType = "reflection_reminder"
	ReminderStreakRisk        ReminderType = "streak_risk"
	ReminderStreakCelebration ReminderType = "streak_celebration"
	ReminderGoalDeadline      ReminderType = "goal_deadline"
)

// ReminderTypes lists every reminder type in evaluation order.
var ReminderTypes = []ReminderType{
	ReminderPlan,
	ReminderReflection,
	ReminderStreakRisk,
	ReminderStreakCelebration,
	ReminderGoalDeadline,
}

type Channel string

const (
	ChannelEmail Channel = "email"
	ChannelPush  Channel = "push"
)

type NotificationStatus string

const (
	StatusSent   NotificationStatus = "sent"
	StatusFailed NotificationStatus = "failed"
)

var (
	ErrNotFound    = errors.New("not found")
	ErrAlreadySent = errors.New("reminder already sent for this day")
)

// NotificationLogEntry records one delivery attempt. Entries are append-only.
type NotificationLogEntry struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"user_id" json:"user_id"`
	Type      ReminderType       `bson:"type" json:"type"`
	Channel   Channel            `bson:"channel" json:"channel"`
	Subject   string             `bson:"subject" json:"subject"`
	Status    NotificationStatus `bson:"status" json:"status"`
	Day       string             `bson:"day" json:"day"` // user-local YYYY-MM-DD
	TickID    string             `bson:"tick_id,omitempty" json:"tick_id,omitempty"`
	Timestamp time.Time          `bson:"timestamp" json:"timestamp"`
	Error     string             `bson:"error,omitempty" json:"error,omitempty"`
}
