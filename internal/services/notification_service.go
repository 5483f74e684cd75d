package services

import (
	"context"

	"github.com/Dias221467/Reminder_Manager/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const defaultHistoryLimit = 50

type NotificationService struct {
	log LogStore
}

func NewNotificationService(log LogStore) *NotificationService {
	return &NotificationService{log: log}
}

// GetHistory returns the user's delivery log, newest first.
func (s *NotificationService) GetHistory(ctx context.Context, userID primitive.ObjectID, limit int64) ([]models.NotificationLogEntry, error) {
	if limit <= 0 || limit > 500 {
		limit = defaultHistoryLimit
	}
	entries, err := s.log.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []models.NotificationLogEntry{}
	}
	return entries, nil
}
