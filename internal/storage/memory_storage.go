// Package storage holds an in-memory implementation of every store the
// reminder engine reads or writes. It backs STORAGE=memory and the tests.
package storage

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Dias221467/Reminder_Manager/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type sentKey struct {
	userID primitive.ObjectID
	typ    models.ReminderType
	day    string
}

type MemoryStorage struct {
	mu      sync.RWMutex
	users   map[primitive.ObjectID]*models.User
	records map[primitive.ObjectID][]models.ActivityRecord // userID -> records
	goals   map[primitive.ObjectID][]models.Goal           // userID -> goals
	log     []models.NotificationLogEntry
	sent    map[sentKey]struct{}
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		users:   make(map[primitive.ObjectID]*models.User),
		records: make(map[primitive.ObjectID][]models.ActivityRecord),
		goals:   make(map[primitive.ObjectID][]models.Goal),
		sent:    make(map[sentKey]struct{}),
	}
}

// User methods

func (s *MemoryStorage) SaveUser(user *models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	u := *user
	s.users[user.ID] = &u
}

func (s *MemoryStorage) GetUserByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	u := *user
	return &u, nil
}

// ListEligibleUsers returns users with at least one delivery channel enabled.
func (s *MemoryStorage) ListEligibleUsers(_ context.Context) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var users []models.User
	for _, u := range s.users {
		if len(u.NotificationSettings.Channels()) > 0 {
			users = append(users, *u)
		}
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID.Hex() < users[j].ID.Hex() })
	return users, nil
}

func (s *MemoryStorage) UpdateNotificationSettings(_ context.Context, id primitive.ObjectID, settings models.NotificationSettings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return models.ErrNotFound
	}
	settings.UpdatedAt = time.Now()
	user.NotificationSettings = settings
	user.UpdatedAt = settings.UpdatedAt
	return nil
}

// Activity methods

func (s *MemoryStorage) AddRecord(record models.ActivityRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if record.ID.IsZero() {
		record.ID = primitive.NewObjectID()
	}
	if record.RecordedAt.IsZero() {
		record.RecordedAt = time.Now()
	}
	s.records[record.UserID] = append(s.records[record.UserID], record)
}

func (s *MemoryStorage) ListRecords(_ context.Context, userID primitive.ObjectID) ([]models.ActivityRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := append([]models.ActivityRecord(nil), s.records[userID]...)
	sort.Slice(out, func(i, j int) bool { return out[i].Day > out[j].Day })
	return out, nil
}

func (s *MemoryStorage) RecordDaysForUser(_ context.Context, userID primitive.ObjectID) ([]time.Time, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	days := make([]time.Time, 0, len(s.records[userID]))
	for _, r := range s.records[userID] {
		d, err := models.ParseDay(r.Day)
		if err != nil {
			return nil, err
		}
		days = append(days, d)
	}
	return days, nil
}

func (s *MemoryStorage) HasRecordBetween(_ context.Context, userID primitive.ObjectID, kind models.RecordKind, fromDay, toDay string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, r := range s.records[userID] {
		if kind != "" && r.Kind != kind {
			continue
		}
		if r.Day >= fromDay && r.Day <= toDay {
			return true, nil
		}
	}
	return false, nil
}

// Goal methods

func (s *MemoryStorage) AddGoal(goal models.Goal) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if goal.ID.IsZero() {
		goal.ID = primitive.NewObjectID()
	}
	s.goals[goal.UserID] = append(s.goals[goal.UserID], goal)
}

func (s *MemoryStorage) IncompleteGoalsDueWithin(_ context.Context, userID primitive.ObjectID, now time.Time, window time.Duration) ([]models.Goal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	limit := now.Add(window)
	var out []models.Goal
	for _, g := range s.goals[userID] {
		if !g.Completed && g.TargetDate.After(now) && !g.TargetDate.After(limit) {
			out = append(out, g)
		}
	}
	return out, nil
}

// Notification log methods

// Append stores entry. A second sent entry for the same user, type and day
// is rejected with models.ErrAlreadySent.
func (s *MemoryStorage) Append(_ context.Context, entry *models.NotificationLogEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entry.Status == models.StatusSent {
		key := sentKey{entry.UserID, entry.Type, entry.Day}
		if _, dup := s.sent[key]; dup {
			return models.ErrAlreadySent
		}
		s.sent[key] = struct{}{}
	}
	if entry.ID.IsZero() {
		entry.ID = primitive.NewObjectID()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}
	s.log = append(s.log, *entry)
	return nil
}

func (s *MemoryStorage) HasSent(_ context.Context, userID primitive.ObjectID, t models.ReminderType, day string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.sent[sentKey{userID, t, day}]
	return ok, nil
}

// ListByUser returns the newest entries first, at most limit when limit > 0.
func (s *MemoryStorage) ListByUser(_ context.Context, userID primitive.ObjectID, limit int64) ([]models.NotificationLogEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.NotificationLogEntry
	for i := len(s.log) - 1; i >= 0; i-- {
		if s.log[i].UserID != userID {
			continue
		}
		out = append(out, s.log[i])
		if limit > 0 && int64(len(out)) == limit {
			break
		}
	}
	return out, nil
}

// Entries returns a copy of the whole log in append order.
func (s *MemoryStorage) Entries() []models.NotificationLogEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]models.NotificationLogEntry(nil), s.log...)
}
