package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/Dias221467/Reminder_Manager/internal/models"
	"github.com/Dias221467/Reminder_Manager/internal/reminder"
	"github.com/Dias221467/Reminder_Manager/internal/streak"
	"github.com/Dias221467/Reminder_Manager/pkg/logger"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const recentRecordDays = 30

// StreakService reports streaks in the user's own timezone.
type StreakService struct {
	users   UserStore
	records RecordStore
	now     func() time.Time
}

func NewStreakService(users UserStore, records RecordStore) *StreakService {
	return &StreakService{users: users, records: records, now: time.Now}
}

// GetStreak computes the user's current streak snapshot.
func (s *StreakService) GetStreak(ctx context.Context, userID primitive.ObjectID) (models.StreakSnapshot, error) {
	now, err := s.localNow(ctx, userID)
	if err != nil {
		return models.StreakSnapshot{}, err
	}

	days, err := s.records.RecordDaysForUser(ctx, userID)
	if err != nil {
		logger.Log.WithError(err).WithField("user_id", userID.Hex()).Error("Failed to load record days")
		return models.StreakSnapshot{}, fmt.Errorf("failed to load record days: %w", err)
	}
	return streak.Compute(days, now), nil
}

// GetStreakStats returns the snapshot plus record counters. Weeks start on Sunday.
func (s *StreakService) GetStreakStats(ctx context.Context, userID primitive.ObjectID) (models.StreakStats, error) {
	now, err := s.localNow(ctx, userID)
	if err != nil {
		return models.StreakStats{}, err
	}

	records, err := s.records.ListRecords(ctx, userID)
	if err != nil {
		logger.Log.WithError(err).WithField("user_id", userID.Hex()).Error("Failed to load records")
		return models.StreakStats{}, fmt.Errorf("failed to load records: %w", err)
	}

	today := models.DayOf(now)
	weekStart := today.AddDate(0, 0, -int(today.Weekday())).Format(models.DayLayout)
	monthStart := today.AddDate(0, 0, 1-today.Day()).Format(models.DayLayout)
	todayKey := today.Format(models.DayLayout)

	stats := models.StreakStats{TotalRecords: len(records), RecordDates: []string{}}
	seen := map[string]struct{}{}
	var days []time.Time
	for _, r := range records {
		if r.Day >= weekStart && r.Day <= todayKey {
			stats.ThisWeekRecords++
		}
		if r.Day >= monthStart && r.Day <= todayKey {
			stats.ThisMonthRecords++
		}
		if _, ok := seen[r.Day]; ok {
			continue
		}
		d, err := models.ParseDay(r.Day)
		if err != nil {
			logger.Log.WithField("day", r.Day).Warn("Skipping record with malformed day")
			continue
		}
		seen[r.Day] = struct{}{}
		days = append(days, d)
		stats.RecordDates = append(stats.RecordDates, r.Day)
	}

	sort.Sort(sort.Reverse(sort.StringSlice(stats.RecordDates)))
	if len(stats.RecordDates) > recentRecordDays {
		stats.RecordDates = stats.RecordDates[:recentRecordDays]
	}
	stats.UniqueDays = len(seen)
	stats.StreakSnapshot = streak.Compute(days, now)
	return stats, nil
}

func (s *StreakService) localNow(ctx context.Context, userID primitive.ObjectID) (time.Time, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return time.Time{}, err
	}
	tz := user.NotificationSettings.Timezone
	if tz == "" {
		tz = models.DefaultTimezone
	}
	loc, err := reminder.LoadLocation(tz)
	if err != nil {
		return time.Time{}, &reminder.ConfigurationError{UserID: userID.Hex(), Field: "timezone", Value: tz, Err: err}
	}
	return s.now().In(loc), nil
}
