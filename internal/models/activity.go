package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type RecordKind string

const (
	RecordKindPlan       RecordKind = "plan"
	RecordKindReflection RecordKind = "reflection"
)

// ActivityRecord is a journal entry written by the capture flow.
// Day is the calendar day the record stands for, not when it was saved.
type ActivityRecord struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID     primitive.ObjectID `bson:"user_id" json:"user_id"`
	Kind       RecordKind         `bson:"kind" json:"kind"`
	Day        string             `bson:"day" json:"day"` // YYYY-MM-DD
	RecordedAt time.Time          `bson:"recorded_at" json:"recorded_at"`
}
