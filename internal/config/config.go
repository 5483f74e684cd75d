package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"
)

// Config holds application configuration loaded from .env and the environment.
type Config struct {
	Port        string        `envconfig:"PORT" default:"8080"`
	MongoURI    string        `envconfig:"MONGO_URI" default:"mongodb://localhost:27017"`
	MongoDB     string        `envconfig:"MONGO_DB" default:"reminder_manager"`
	Storage     string        `envconfig:"STORAGE" default:"mongo"` // mongo|memory
	JWTSecret   string        `envconfig:"JWT_SECRET" required:"true"`
	TokenExpiry time.Duration `envconfig:"TOKEN_EXPIRY" default:"72h"`
	LogLevel    string        `envconfig:"LOG_LEVEL" default:"info"`

	DispatchInterval    time.Duration `envconfig:"DISPATCH_INTERVAL" default:"1m"`
	DispatchConcurrency int           `envconfig:"DISPATCH_CONCURRENCY" default:"8"`
	TickTimeout         time.Duration `envconfig:"TICK_TIMEOUT" default:"5m"`
	ReminderWindow      time.Duration `envconfig:"REMINDER_WINDOW" default:"5m"`
	StreakCheckpoint    string        `envconfig:"STREAK_CHECKPOINT" default:"20:00"`
	GoalCheckpoint      string        `envconfig:"GOAL_CHECKPOINT" default:"09:00"`
	StreakMilestone     int           `envconfig:"STREAK_MILESTONE" default:"7"`

	SMTPHost     string `envconfig:"SMTP_HOST"`
	SMTPPort     string `envconfig:"SMTP_PORT" default:"587"`
	SMTPUser     string `envconfig:"SMTP_USER"`
	SMTPPassword string `envconfig:"SMTP_PASSWORD"`
	SMTPSender   string `envconfig:"SMTP_SENDER"`

	EmailRatePerMinute int `envconfig:"EMAIL_RATE_PER_MINUTE" default:"120"`
	PushRatePerMinute  int `envconfig:"PUSH_RATE_PER_MINUTE" default:"600"`

	AppURL      string   `envconfig:"APP_URL" default:"http://localhost:3000"`
	CORSOrigins []string `envconfig:"CORS_ORIGINS" default:"http://localhost:3000"`
}

// LoadConfig reads .env if present, then the environment.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logrus.Debug("No .env file found, using environment variables")
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET must not be empty")
	}
	if cfg.Storage != "mongo" && cfg.Storage != "memory" {
		return nil, fmt.Errorf("unsupported STORAGE %q", cfg.Storage)
	}
	if cfg.DispatchConcurrency < 1 {
		return nil, fmt.Errorf("DISPATCH_CONCURRENCY must be positive")
	}
	if cfg.DispatchInterval <= 0 || cfg.ReminderWindow <= 0 {
		return nil, fmt.Errorf("DISPATCH_INTERVAL and REMINDER_WINDOW must be positive")
	}
	// A reminder window spans 2*REMINDER_WINDOW; a longer interval can step over it.
	if cfg.DispatchInterval > 2*cfg.ReminderWindow {
		return nil, fmt.Errorf("DISPATCH_INTERVAL %s exceeds twice REMINDER_WINDOW %s", cfg.DispatchInterval, cfg.ReminderWindow)
	}
	return &cfg, nil
}
