package app

import (
	"net/http"

	"github.com/Dias221467/Reminder_Manager/internal/handlers"
	"github.com/Dias221467/Reminder_Manager/pkg/middleware"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
)

// Handler builds the HTTP API.
func (a *App) Handler() http.Handler {
	cfg := a.Config

	streakHandler := handlers.NewStreakHandler(a.Streaks)
	notificationHandler := handlers.NewNotificationHandler(a.Settings, a.History)
	adminHandler := handlers.NewAdminHandler(a.Scheduler)
	pushHandler := handlers.NewPushHandler(a.Hub, cfg.JWTSecret, cfg.CORSOrigins)

	router := mux.NewRouter()

	router.HandleFunc("/healthz", handlers.HealthHandler).Methods("GET")
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	// Token is passed as a query parameter since browsers cannot set headers on websockets.
	router.HandleFunc("/ws/reminders", pushHandler.PushWebSocketHandler)

	streakRoutes := router.PathPrefix("/streak").Subrouter()
	streakRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	streakRoutes.HandleFunc("", streakHandler.GetStreakHandler).Methods("GET")
	streakRoutes.HandleFunc("/stats", streakHandler.GetStreakStatsHandler).Methods("GET")

	notificationRoutes := router.PathPrefix("/notifications").Subrouter()
	notificationRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	notificationRoutes.HandleFunc("/settings", notificationHandler.GetSettingsHandler).Methods("GET")
	notificationRoutes.HandleFunc("/settings", notificationHandler.UpdateSettingsHandler).Methods("PUT")
	notificationRoutes.HandleFunc("/subscribe", notificationHandler.SubscribeHandler).Methods("POST")
	notificationRoutes.HandleFunc("/subscribe", notificationHandler.UnsubscribeHandler).Methods("DELETE")
	notificationRoutes.HandleFunc("/log", notificationHandler.GetLogHandler).Methods("GET")

	adminRoutes := router.PathPrefix("/admin").Subrouter()
	adminRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	adminRoutes.Use(middleware.RequireRole("admin"))
	adminRoutes.HandleFunc("/reminders/dispatch", adminHandler.DispatchHandler).Methods("POST")
	adminRoutes.HandleFunc("/reminders/status", adminHandler.StatusHandler).Methods("GET")

	router.Use(middleware.LoggingMiddleware)

	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})
	return c.Handler(router)
}
