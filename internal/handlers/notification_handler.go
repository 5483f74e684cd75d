package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/Dias221467/Reminder_Manager/internal/models"
	"github.com/Dias221467/Reminder_Manager/internal/reminder"
	"github.com/Dias221467/Reminder_Manager/internal/services"
	"github.com/Dias221467/Reminder_Manager/pkg/logger"
)

type NotificationHandler struct {
	Settings *services.SettingsService
	History  *services.NotificationService
}

func NewNotificationHandler(settings *services.SettingsService, history *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{Settings: settings, History: history}
}

// GET /notifications/settings
func (h *NotificationHandler) GetSettingsHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	settings, err := h.Settings.GetSettings(r.Context(), userID)
	if err != nil {
		writeSettingsError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

// PUT /notifications/settings
func (h *NotificationHandler) UpdateSettingsHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	var patch models.SettingsPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	settings, err := h.Settings.UpdateSettings(r.Context(), userID, patch)
	if err != nil {
		writeSettingsError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

// POST /notifications/subscribe
func (h *NotificationHandler) SubscribeHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	settings, err := h.Settings.SubscribePush(r.Context(), userID)
	if err != nil {
		writeSettingsError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

// DELETE /notifications/subscribe
func (h *NotificationHandler) UnsubscribeHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	settings, err := h.Settings.UnsubscribePush(r.Context(), userID)
	if err != nil {
		writeSettingsError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

// GET /notifications/log?limit=N
func (h *NotificationHandler) GetLogHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	var limit int64
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || n <= 0 {
			http.Error(w, "Invalid limit", http.StatusBadRequest)
			return
		}
		limit = n
	}

	entries, err := h.History.GetHistory(r.Context(), userID, limit)
	if err != nil {
		logger.Log.Errorf("Failed to fetch notification log: %v", err)
		http.Error(w, "Failed to get notification log", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func writeSettingsError(w http.ResponseWriter, err error) {
	var cfgErr *reminder.ConfigurationError
	switch {
	case errors.As(err, &cfgErr):
		http.Error(w, "Invalid "+cfgErr.Field+": "+cfgErr.Value, http.StatusBadRequest)
	case errors.Is(err, models.ErrNotFound):
		http.Error(w, "User not found", http.StatusNotFound)
	default:
		logger.Log.WithError(err).Error("Notification settings request failed")
		http.Error(w, "Failed to process notification settings", http.StatusInternalServerError)
	}
}
