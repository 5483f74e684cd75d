package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/Dias221467/Reminder_Manager/internal/metrics"
	"github.com/Dias221467/Reminder_Manager/internal/models"
	"github.com/Dias221467/Reminder_Manager/internal/reminder"
	"github.com/Dias221467/Reminder_Manager/internal/streak"
	"github.com/Dias221467/Reminder_Manager/pkg/logger"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// CycleReport summarizes one dispatch tick. Evaluated and Skipped count
// users; the other counters count reminder instances.
type CycleReport struct {
	TickID     string    `json:"tick_id"`
	Trigger    string    `json:"trigger"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	Evaluated  int       `json:"evaluated"`
	Sent       int       `json:"sent"`
	Suppressed int       `json:"suppressed"`
	Failed     int       `json:"failed"`
	Skipped    int       `json:"skipped"`
}

type tally struct {
	evaluated, sent, suppressed, failed, skipped atomic.Int64
}

func (t *tally) fill(r *CycleReport) {
	r.Evaluated = int(t.evaluated.Load())
	r.Sent = int(t.sent.Load())
	r.Suppressed = int(t.suppressed.Load())
	r.Failed = int(t.failed.Load())
	r.Skipped = int(t.skipped.Load())
}

// cycle is the state of a single tick.
type cycle struct {
	*Scheduler
	id    string
	now   time.Time
	tally tally
}

func (s *Scheduler) runCycle(ctx context.Context, trigger string) (CycleReport, error) {
	c := &cycle{Scheduler: s, id: uuid.NewString(), now: s.opts.Now()}
	report := CycleReport{TickID: c.id, Trigger: trigger, StartedAt: c.now}
	log := logger.Log.WithFields(logrus.Fields{"tick_id": c.id, "trigger": trigger})
	start := time.Now()

	users, err := s.deps.Users.ListEligibleUsers(ctx)
	if err != nil {
		report.FinishedAt = s.opts.Now()
		metrics.TicksTotal.WithLabelValues(trigger, "error").Inc()
		return report, &reminder.EnumerationError{Err: err}
	}

	var g errgroup.Group
	g.SetLimit(s.opts.Concurrency)
	for _, u := range users {
		u := u
		g.Go(func() error {
			c.processUser(ctx, u)
			return nil
		})
	}
	_ = g.Wait()

	c.tally.fill(&report)
	report.FinishedAt = s.opts.Now()
	s.setLast(report)

	metrics.TickDuration.Observe(time.Since(start).Seconds())
	metrics.TicksTotal.WithLabelValues(trigger, "ok").Inc()
	log.WithFields(logrus.Fields{
		"users":      len(users),
		"evaluated":  report.Evaluated,
		"sent":       report.Sent,
		"suppressed": report.Suppressed,
		"failed":     report.Failed,
		"skipped":    report.Skipped,
	}).Info("Reminder dispatch tick completed")
	return report, nil
}

// processUser runs the whole pipeline for one user. Nothing it does can
// abort the tick.
func (c *cycle) processUser(ctx context.Context, user models.User) {
	log := logger.Log.WithFields(logrus.Fields{"tick_id": c.id, "user_id": user.ID.Hex()})
	defer func() {
		if r := recover(); r != nil {
			log.WithField("panic", r).Error("Recovered panic while processing user")
			c.skip()
		}
	}()

	settings := user.NotificationSettings
	uid := user.ID.Hex()

	loc, err := reminder.LoadLocation(settings.Timezone)
	if err != nil {
		log.WithError(&reminder.ConfigurationError{UserID: uid, Field: "timezone", Value: settings.Timezone, Err: err}).
			Warn("Skipping user with invalid settings")
		c.skip()
		return
	}
	local := c.now.In(loc)

	days, err := c.deps.Ledger.RecordDaysForUser(ctx, user.ID)
	if err != nil {
		c.userFailed(ctx, user, local, &reminder.DataAccessError{UserID: uid, Op: "load record days", Err: err})
		return
	}
	snap := streak.Compute(days, local)

	var goals []models.Goal
	if c.deps.Engine.NeedsGoals(settings, c.now) {
		goals, err = c.deps.Goals.IncompleteGoalsDueWithin(ctx, user.ID, c.now, c.deps.Engine.GoalHorizon())
		if err != nil {
			c.userFailed(ctx, user, local, &reminder.DataAccessError{UserID: uid, Op: "load goals", Err: err})
			return
		}
	}

	due, err := c.deps.Engine.Evaluate(user, settings, snap, goals, c.now)
	if err != nil {
		var cfgErr *reminder.ConfigurationError
		if errors.As(err, &cfgErr) {
			log.WithError(err).Warn("Skipping user with invalid settings")
		} else {
			log.WithError(err).Error("Skipping user")
		}
		c.skip()
		return
	}
	c.tally.evaluated.Add(1)
	if due.Len() == 0 {
		return
	}

	kept := reminder.Due{}
	for day, types := range due.ByDay() {
		res := c.guard.Filter(ctx, user.ID, types, day)
		for _, t := range res.Kept.Sorted() {
			kept[t] = day
		}
		for _, t := range res.Suppressed.Sorted() {
			c.tally.suppressed.Add(1)
			metrics.RemindersTotal.WithLabelValues(string(t), "suppressed").Inc()
		}
		for _, t := range types.Sorted() {
			if err, failed := res.Failed[t]; failed {
				log.WithError(err).WithField("type", t).Error("Idempotency check failed")
				c.appendLog(ctx, &models.NotificationLogEntry{
					UserID: user.ID,
					Type:   t,
					Status: models.StatusFailed,
					Day:    day,
					Error:  err.Error(),
				})
				c.tally.failed.Add(1)
				metrics.RemindersTotal.WithLabelValues(string(t), "failed").Inc()
			}
		}
	}

	tctx := reminder.TemplateContext{
		LocalTime: local.Format("15:04"),
		Streak:    snap,
		Goals:     reminder.GoalsDueSoon(goals, c.now, c.deps.Engine.GoalHorizon()),
		AppURL:    c.opts.AppURL,
	}
	for _, t := range kept.Sorted() {
		inst := reminder.NewInstance(uid, t, kept.Day(t))
		_ = inst.Transition(reminder.StateDue)
		c.deliver(ctx, user, inst, tctx)
	}
}

// deliver tries each enabled channel in order until one succeeds. Every
// attempt appends one log entry.
func (c *cycle) deliver(ctx context.Context, user models.User, inst *reminder.Instance, tctx reminder.TemplateContext) {
	log := logger.Log.WithFields(logrus.Fields{"tick_id": c.id, "user_id": inst.UserID, "type": inst.Type})
	defer func() {
		if r := recover(); r != nil {
			log.WithField("panic", r).Error("Recovered panic while delivering reminder")
			c.fail(ctx, user, inst, "", fmt.Errorf("panic: %v", r))
		}
	}()

	msg, err := c.deps.Templates.Render(inst.Type, user, tctx)
	if err != nil {
		log.WithError(err).Error("Failed to render reminder")
		c.fail(ctx, user, inst, "", err)
		return
	}

	_ = inst.Transition(reminder.StateAttempted)

	var lastErr error
	var lastChannel models.Channel
	for _, ch := range user.NotificationSettings.Channels() {
		err := c.deps.Delivery.Send(ctx, ch, destination(user, ch), msg)
		entry := &models.NotificationLogEntry{
			UserID:  user.ID,
			Type:    inst.Type,
			Channel: ch,
			Subject: msg.Subject,
			Day:     inst.Day,
		}
		if err != nil {
			lastErr, lastChannel = err, ch
			entry.Status = models.StatusFailed
			entry.Error = err.Error()
			c.appendLog(ctx, entry)
			log.WithError(err).WithField("channel", ch).Warn("Reminder delivery failed")
			continue
		}

		entry.Status = models.StatusSent
		c.appendLog(ctx, entry)
		_ = inst.Transition(reminder.StateSent)
		c.tally.sent.Add(1)
		metrics.RemindersTotal.WithLabelValues(string(inst.Type), "sent").Inc()
		log.WithField("channel", ch).Info("Reminder sent")
		return
	}

	if lastErr == nil {
		lastErr = errors.New("no delivery channel enabled")
		c.fail(ctx, user, inst, "", lastErr)
		return
	}
	_ = inst.Transition(reminder.StateFailed)
	c.tally.failed.Add(1)
	metrics.RemindersTotal.WithLabelValues(string(inst.Type), "failed").Inc()
	log.WithError(lastErr).WithField("channel", lastChannel).Error("Reminder not delivered on any channel")
}

// fail records a failure that happened outside a channel attempt.
func (c *cycle) fail(ctx context.Context, user models.User, inst *reminder.Instance, ch models.Channel, err error) {
	if inst.State == reminder.StateDue {
		_ = inst.Transition(reminder.StateAttempted)
	}
	_ = inst.Transition(reminder.StateFailed)
	c.appendLog(ctx, &models.NotificationLogEntry{
		UserID:  user.ID,
		Type:    inst.Type,
		Channel: ch,
		Status:  models.StatusFailed,
		Day:     inst.Day,
		Error:   err.Error(),
	})
	c.tally.failed.Add(1)
	metrics.RemindersTotal.WithLabelValues(string(inst.Type), "failed").Inc()
}

func (c *cycle) appendLog(ctx context.Context, entry *models.NotificationLogEntry) {
	entry.TickID = c.id
	entry.Timestamp = c.opts.Now()
	if err := c.deps.Log.Append(ctx, entry); err != nil {
		logger.Log.WithError(err).WithFields(logrus.Fields{
			"tick_id": c.id,
			"user_id": entry.UserID.Hex(),
			"type":    entry.Type,
			"status":  entry.Status,
		}).Error("Failed to append notification log entry")
	}
}

// userFailed records a per-user failure that happened before any reminder
// type was known. The entry has no type, so it never blocks a later send.
func (c *cycle) userFailed(ctx context.Context, user models.User, local time.Time, err error) {
	logger.Log.WithError(err).WithFields(logrus.Fields{"tick_id": c.id, "user_id": user.ID.Hex()}).
		Error("Skipping user")
	c.appendLog(ctx, &models.NotificationLogEntry{
		UserID: user.ID,
		Status: models.StatusFailed,
		Day:    models.FormatDay(local),
		Error:  err.Error(),
	})
	c.skip()
}

func (c *cycle) skip() {
	c.tally.skipped.Add(1)
	metrics.UsersSkippedTotal.Inc()
}

func destination(user models.User, ch models.Channel) string {
	if ch == models.ChannelEmail {
		return user.Email
	}
	return user.ID.Hex()
}
