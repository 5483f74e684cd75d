package handlers

import (
	"errors"
	"net/http"

	"github.com/Dias221467/Reminder_Manager/internal/models"
	"github.com/Dias221467/Reminder_Manager/internal/reminder"
	"github.com/Dias221467/Reminder_Manager/internal/services"
	"github.com/Dias221467/Reminder_Manager/pkg/logger"
)

// StreakHandler serves streak queries for the authenticated user.
type StreakHandler struct {
	Service *services.StreakService
}

func NewStreakHandler(service *services.StreakService) *StreakHandler {
	return &StreakHandler{Service: service}
}

// GET /streak
func (h *StreakHandler) GetStreakHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	snap, err := h.Service.GetStreak(r.Context(), userID)
	if err != nil {
		writeStreakError(w, err, "Failed to get streak")
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// GET /streak/stats
func (h *StreakHandler) GetStreakStatsHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	stats, err := h.Service.GetStreakStats(r.Context(), userID)
	if err != nil {
		writeStreakError(w, err, "Failed to get streak stats")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func writeStreakError(w http.ResponseWriter, err error, msg string) {
	var cfgErr *reminder.ConfigurationError
	switch {
	case errors.As(err, &cfgErr):
		http.Error(w, "Invalid "+cfgErr.Field+": "+cfgErr.Value, http.StatusBadRequest)
	case errors.Is(err, models.ErrNotFound):
		http.Error(w, "User not found", http.StatusNotFound)
	default:
		logger.Log.WithError(err).Error(msg)
		http.Error(w, msg, http.StatusInternalServerError)
	}
}
