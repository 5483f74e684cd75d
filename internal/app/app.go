// Package app wires configuration, storage, the reminder engine and the HTTP
// API into a runnable service.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/Dias221467/Reminder_Manager/internal/config"
	"github.com/Dias221467/Reminder_Manager/internal/database"
	"github.com/Dias221467/Reminder_Manager/internal/delivery"
	"github.com/Dias221467/Reminder_Manager/internal/models"
	"github.com/Dias221467/Reminder_Manager/internal/reminder"
	"github.com/Dias221467/Reminder_Manager/internal/repository"
	"github.com/Dias221467/Reminder_Manager/internal/scheduler"
	"github.com/Dias221467/Reminder_Manager/internal/services"
	"github.com/Dias221467/Reminder_Manager/internal/storage"
	"github.com/Dias221467/Reminder_Manager/pkg/email"
	"github.com/Dias221467/Reminder_Manager/pkg/logger"
	"go.mongodb.org/mongo-driver/mongo"
)

// Stores groups the persistence the service needs. Both the Mongo
// repositories and storage.MemoryStorage satisfy it.
type Stores struct {
	Users interface {
		scheduler.UserStore
		services.UserStore
	}
	Ledger interface {
		scheduler.ActivityLedger
		services.RecordStore
	}
	Goals scheduler.GoalStore
	Log   interface {
		scheduler.NotificationLog
		services.LogStore
	}
}

// MemoryStores backs every store with one in-memory instance.
func MemoryStores(m *storage.MemoryStorage) Stores {
	return Stores{Users: m, Ledger: m, Goals: m, Log: m}
}

type App struct {
	Config    *config.Config
	Stores    Stores
	Scheduler *scheduler.Scheduler
	Streaks   *services.StreakService
	Settings  *services.SettingsService
	History   *services.NotificationService
	Hub       *delivery.PushHub

	client *mongo.Client
}

// New connects storage according to cfg and builds the service without
// starting anything.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	a := &App{Config: cfg}

	switch cfg.Storage {
	case "memory":
		logger.Log.Warn("Using in-memory storage; data is lost on restart")
		a.Stores = MemoryStores(storage.NewMemoryStorage())
	default:
		client, db, err := database.ConnectDB(ctx, cfg)
		if err != nil {
			return nil, err
		}
		a.client = client

		notificationRepo := repository.NewNotificationRepository(db)
		if err := notificationRepo.EnsureIndexes(ctx); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, err
		}
		a.Stores = Stores{
			Users:  repository.NewUserRepository(db),
			Ledger: repository.NewActivityRepository(db),
			Goals:  repository.NewGoalRepository(db),
			Log:    notificationRepo,
		}
	}

	if err := a.build(); err != nil {
		a.Close(context.Background())
		return nil, err
	}
	return a, nil
}

// NewWithStores builds the service on top of the given stores.
func NewWithStores(cfg *config.Config, stores Stores) (*App, error) {
	a := &App{Config: cfg, Stores: stores}
	if err := a.build(); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *App) build() error {
	cfg := a.Config

	engine, err := reminder.NewEngine(reminder.PolicyOptions{
		Window:           cfg.ReminderWindow,
		StreakCheckpoint: cfg.StreakCheckpoint,
		GoalCheckpoint:   cfg.GoalCheckpoint,
		Milestone:        cfg.StreakMilestone,
	})
	if err != nil {
		return fmt.Errorf("invalid reminder policy: %w", err)
	}
	templates, err := reminder.NewTemplates()
	if err != nil {
		return err
	}

	if cfg.SMTPHost == "" {
		logger.Log.Warn("SMTP_HOST is not set; email reminders will fail")
	}
	a.Hub = delivery.NewPushHub()
	router := delivery.NewRouter()
	router.Register(models.ChannelEmail, delivery.NewEmailTransport(email.NewClient(email.Config{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUser,
		Password: cfg.SMTPPassword,
		Sender:   cfg.SMTPSender,
	})), cfg.EmailRatePerMinute)
	router.Register(models.ChannelPush, a.Hub, cfg.PushRatePerMinute)

	a.Scheduler, err = scheduler.New(scheduler.Deps{
		Users:     a.Stores.Users,
		Ledger:    a.Stores.Ledger,
		Goals:     a.Stores.Goals,
		Log:       a.Stores.Log,
		Delivery:  router,
		Engine:    engine,
		Templates: templates,
	}, scheduler.Options{
		Interval:    cfg.DispatchInterval,
		Concurrency: cfg.DispatchConcurrency,
		TickTimeout: cfg.TickTimeout,
		AppURL:      cfg.AppURL,
	})
	if err != nil {
		return err
	}

	a.Streaks = services.NewStreakService(a.Stores.Users, a.Stores.Ledger)
	a.Settings = services.NewSettingsService(a.Stores.Users)
	a.History = services.NewNotificationService(a.Stores.Log)
	return nil
}

// Run starts the scheduler and the HTTP server and blocks until SIGINT,
// SIGTERM or ctx cancellation, then shuts both down.
func (a *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := a.Scheduler.Start(); err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + a.Config.Port,
		Handler:           a.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Log.WithField("port", a.Config.Port).Info("Server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	var runErr error
	select {
	case <-ctx.Done():
		logger.Log.Info("Shutdown signal received")
	case runErr = <-errCh:
		logger.Log.WithError(runErr).Error("HTTP server failed")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.Config.TickTimeout+10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.WithError(err).Warn("HTTP server shutdown incomplete")
	}
	if err := a.Scheduler.Stop(shutdownCtx); err != nil {
		logger.Log.WithError(err).Warn("Scheduler did not drain before timeout")
	}
	a.Close(shutdownCtx)
	return runErr
}

// Close releases the database connection, if any.
func (a *App) Close(ctx context.Context) {
	if a.client == nil {
		return
	}
	if err := a.client.Disconnect(ctx); err != nil {
		logger.Log.WithError(err).Warn("Failed to disconnect from MongoDB")
	}
	a.client = nil
}
