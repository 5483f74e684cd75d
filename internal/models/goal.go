package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Goal struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID     primitive.ObjectID `bson:"user_id" json:"user_id"`
	Text       string             `bson:"text" json:"text"`
	TargetDate time.Time          `bson:"target_date" json:"target_date"`
	Completed  bool               `bson:"completed" json:"completed"`
}
