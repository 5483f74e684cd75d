// Package scheduler runs the recurring reminder dispatch cycle.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Dias221467/Reminder_Manager/internal/metrics"
	"github.com/Dias221467/Reminder_Manager/internal/reminder"
	"github.com/Dias221467/Reminder_Manager/pkg/logger"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

type Deps struct {
	Users     UserStore
	Ledger    ActivityLedger
	Goals     GoalStore
	Log       NotificationLog
	Delivery  DeliveryAdapter
	Engine    *reminder.Engine
	Templates *reminder.Templates
}

func (d Deps) validate() error {
	switch {
	case d.Users == nil:
		return errors.New("scheduler: user store is required")
	case d.Ledger == nil:
		return errors.New("scheduler: activity ledger is required")
	case d.Goals == nil:
		return errors.New("scheduler: goal store is required")
	case d.Log == nil:
		return errors.New("scheduler: notification log is required")
	case d.Delivery == nil:
		return errors.New("scheduler: delivery adapter is required")
	case d.Engine == nil:
		return errors.New("scheduler: policy engine is required")
	case d.Templates == nil:
		return errors.New("scheduler: templates are required")
	}
	return nil
}

type Options struct {
	Interval    time.Duration
	Concurrency int
	TickTimeout time.Duration
	AppURL      string
	Now         func() time.Time
}

func (o Options) withDefaults() Options {
	if o.Interval <= 0 {
		o.Interval = time.Minute
	}
	if o.Concurrency <= 0 {
		o.Concurrency = 8
	}
	if o.TickTimeout <= 0 {
		o.TickTimeout = 5 * time.Minute
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

// Status describes the scheduler for the admin API.
type Status struct {
	Running    bool         `json:"running"`
	Interval   string       `json:"interval"`
	NextRun    *time.Time   `json:"next_run,omitempty"`
	LastReport *CycleReport `json:"last_report,omitempty"`
}

// Scheduler owns the recurring trigger. Ticks never overlap: the cron job and
// RunOnce share a one-slot semaphore.
type Scheduler struct {
	deps  Deps
	opts  Options
	guard *reminder.Guard

	sem chan struct{}

	mu      sync.Mutex
	cron    *cron.Cron
	entryID cron.EntryID
	running bool
	last    *CycleReport
}

// New builds a scheduler without starting the recurring trigger.
func New(deps Deps, opts Options) (*Scheduler, error) {
	if err := deps.validate(); err != nil {
		return nil, err
	}
	return &Scheduler{
		deps:  deps,
		opts:  opts.withDefaults(),
		guard: reminder.NewGuard(deps.Ledger, deps.Log),
		sem:   make(chan struct{}, 1),
	}, nil
}

// Start builds a scheduler and starts its recurring trigger.
func Start(deps Deps, opts Options) (*Scheduler, error) {
	s, err := New(deps, opts)
	if err != nil {
		return nil, err
	}
	if err := s.Start(); err != nil {
		return nil, err
	}
	return s, nil
}

// Start begins the recurring trigger. Calling it on a running scheduler is a no-op.
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return nil
	}

	log := cronLogger{}
	c := cron.New(
		cron.WithLogger(log),
		cron.WithChain(cron.Recover(log), cron.SkipIfStillRunning(log)),
	)
	id, err := c.AddFunc(fmt.Sprintf("@every %s", s.opts.Interval), s.scheduledTick)
	if err != nil {
		return fmt.Errorf("schedule dispatch: %w", err)
	}
	c.Start()

	s.cron, s.entryID, s.running = c, id, true
	logger.Log.WithFields(logrus.Fields{
		"interval":    s.opts.Interval.String(),
		"concurrency": s.opts.Concurrency,
	}).Info("Reminder scheduler started")
	return nil
}

func (s *Scheduler) scheduledTick() {
	select {
	case s.sem <- struct{}{}:
	default:
		logger.Log.Warn("Previous dispatch still running, skipping tick")
		metrics.TicksTotal.WithLabelValues("cron", "skipped").Inc()
		return
	}
	defer func() { <-s.sem }()

	ctx, cancel := context.WithTimeout(context.Background(), s.opts.TickTimeout)
	defer cancel()

	if _, err := s.runCycle(ctx, "cron"); err != nil {
		logger.Log.WithError(err).Error("Reminder dispatch tick failed")
	}
}

// RunOnce runs one dispatch cycle now, waiting for any in-flight tick first.
// Cancelling ctx stops the wait but not a cycle that already started.
func (s *Scheduler) RunOnce(ctx context.Context) (CycleReport, error) {
	select {
	case s.sem <- struct{}{}:
	case <-ctx.Done():
		return CycleReport{}, ctx.Err()
	}
	defer func() { <-s.sem }()

	tickCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.opts.TickTimeout)
	defer cancel()
	return s.runCycle(tickCtx, "manual")
}

// Stop halts the recurring trigger and waits for the in-flight tick to drain.
func (s *Scheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	c := s.cron
	s.running = false
	s.mu.Unlock()

	if c != nil {
		select {
		case <-c.Stop().Done():
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	select {
	case s.sem <- struct{}{}:
		<-s.sem
	case <-ctx.Done():
		return ctx.Err()
	}
	logger.Log.Info("Reminder scheduler stopped")
	return nil
}

func (s *Scheduler) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := Status{Running: s.running, Interval: s.opts.Interval.String()}
	if s.last != nil {
		last := *s.last
		st.LastReport = &last
	}
	if s.running && s.cron != nil {
		if next := s.cron.Entry(s.entryID).Next; !next.IsZero() {
			st.NextRun = &next
		}
	}
	return st
}

func (s *Scheduler) setLast(r CycleReport) {
	s.mu.Lock()
	s.last = &r
	s.mu.Unlock()
}
