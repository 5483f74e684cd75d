package main

import (
	"context"
	"log"

	"github.com/Dias221467/Reminder_Manager/internal/app"
	"github.com/Dias221467/Reminder_Manager/internal/config"
	"github.com/Dias221467/Reminder_Manager/pkg/logger"
)

func main() {
	// Load configuration from .env file and the environment
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	logger.InitLogger(cfg.LogLevel)
	logger.Log.Info("Logger initialized")

	ctx := context.Background()
	a, err := app.New(ctx, cfg)
	if err != nil {
		logger.Log.WithError(err).Fatal("Failed to initialize application")
	}

	if err := a.Run(ctx); err != nil {
		logger.Log.WithError(err).Fatal("Server stopped with error")
	}
	logger.Log.Info("Server stopped")
}
