// Package reminder decides which reminders are due for a user and filters
// out the ones that were already handled.
package reminder

import (
	"time"

	"github.com/Dias221467/Reminder_Manager/internal/models"
)

type PolicyOptions struct {
	Window           time.Duration
	StreakCheckpoint string
	GoalCheckpoint   string
	Milestone        int
	GoalHorizon      time.Duration
}

func DefaultPolicyOptions() PolicyOptions {
	return PolicyOptions{
		Window:           5 * time.Minute,
		StreakCheckpoint: "20:00",
		GoalCheckpoint:   "09:00",
		Milestone:        7,
		GoalHorizon:      24 * time.Hour,
	}
}

// Engine evaluates reminder rules. It holds no per-user state and is safe
// for concurrent use.
type Engine struct {
	window      time.Duration
	streakAt    Clock
	goalAt      Clock
	milestone   int
	goalHorizon time.Duration
}

func NewEngine(opts PolicyOptions) (*Engine, error) {
	def := DefaultPolicyOptions()
	if opts.Window <= 0 {
		opts.Window = def.Window
	}
	if opts.StreakCheckpoint == "" {
		opts.StreakCheckpoint = def.StreakCheckpoint
	}
	if opts.GoalCheckpoint == "" {
		opts.GoalCheckpoint = def.GoalCheckpoint
	}
	if opts.Milestone <= 0 {
		opts.Milestone = def.Milestone
	}
	if opts.GoalHorizon <= 0 {
		opts.GoalHorizon = def.GoalHorizon
	}

	streakAt, err := ParseClock(opts.StreakCheckpoint)
	if err != nil {
		return nil, err
	}
	goalAt, err := ParseClock(opts.GoalCheckpoint)
	if err != nil {
		return nil, err
	}
	return &Engine{
		window:      opts.Window,
		streakAt:    streakAt,
		goalAt:      goalAt,
		milestone:   opts.Milestone,
		goalHorizon: opts.GoalHorizon,
	}, nil
}

func (e *Engine) GoalHorizon() time.Duration { return e.goalHorizon }

// Evaluate returns the reminder types due for user at now, each with the
// local day of the window that matched. goals must hold only the user's
// incomplete goals; snap must be computed for the user's zone.
func (e *Engine) Evaluate(user models.User, settings models.NotificationSettings, snap models.StreakSnapshot, goals []models.Goal, now time.Time) (Due, error) {
	uid := user.ID.Hex()
	loc, err := LoadLocation(settings.Timezone)
	if err != nil {
		return nil, &ConfigurationError{UserID: uid, Field: "timezone", Value: settings.Timezone, Err: err}
	}
	local := now.In(loc)
	due := Due{}

	if settings.PlanReminderEnabled {
		at, err := ParseClock(settings.PlanReminderTime)
		if err != nil {
			return nil, &ConfigurationError{UserID: uid, Field: "plan_reminder_time", Value: settings.PlanReminderTime, Err: err}
		}
		if day, ok := e.matchWindow(local, at); ok {
			due.add(models.ReminderPlan, day)
		}
	}

	if settings.ReflectionReminderEnabled {
		at, err := ParseClock(settings.ReflectionReminderTime)
		if err != nil {
			return nil, &ConfigurationError{UserID: uid, Field: "reflection_reminder_time", Value: settings.ReflectionReminderTime, Err: err}
		}
		if day, ok := e.matchWindow(local, at); ok {
			due.add(models.ReminderReflection, day)
		}
	}

	if day, ok := e.matchWindow(local, e.streakAt); ok && settings.StreakAlertsEnabled {
		recorded := snap.RecordedOn(day)
		if !recorded || snap.Status != models.StreakActive {
			due.add(models.ReminderStreakRisk, day)
		} else if snap.CurrentStreak > 0 && snap.CurrentStreak%e.milestone == 0 {
			due.add(models.ReminderStreakCelebration, day)
		}
	}

	if day, ok := e.matchWindow(local, e.goalAt); ok && settings.GoalDeadlineAlertsEnabled {
		if len(GoalsDueSoon(goals, now, e.goalHorizon)) > 0 {
			due.add(models.ReminderGoalDeadline, day)
		}
	}

	return due, nil
}

// NeedsGoals reports whether Evaluate would look at goals for these settings at now.
func (e *Engine) NeedsGoals(settings models.NotificationSettings, now time.Time) bool {
	if !settings.GoalDeadlineAlertsEnabled {
		return false
	}
	loc, err := LoadLocation(settings.Timezone)
	if err != nil {
		return false
	}
	_, ok := e.matchWindow(now.In(loc), e.goalAt)
	return ok
}

// GoalsDueSoon keeps incomplete goals whose target lies in (now, now+horizon].
func GoalsDueSoon(goals []models.Goal, now time.Time, horizon time.Duration) []models.Goal {
	limit := now.Add(horizon)
	var out []models.Goal
	for _, g := range goals {
		if g.Completed {
			continue
		}
		if g.TargetDate.After(now) && !g.TargetDate.After(limit) {
			out = append(out, g)
		}
	}
	return out
}

// matchWindow checks the configured clock on the local date and both
// neighbours so a window that crosses midnight still matches. It returns the
// date the matched target belongs to, so 00:01 inside a 23:58 window reports
// the previous day.
func (e *Engine) matchWindow(local time.Time, at Clock) (string, bool) {
	for _, offset := range []int{-1, 0, 1} {
		target := at.On(local.AddDate(0, 0, offset))
		diff := local.Sub(target)
		if diff < 0 {
			diff = -diff
		}
		if diff <= e.window {
			return models.FormatDay(target), true
		}
	}
	return "", false
}
