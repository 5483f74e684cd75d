package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/Dias221467/Reminder_Manager/internal/reminder"
	"github.com/Dias221467/Reminder_Manager/internal/scheduler"
	"github.com/Dias221467/Reminder_Manager/pkg/logger"
	"github.com/sirupsen/logrus"
)

// Dispatcher is the part of the scheduler the admin API drives.
type Dispatcher interface {
	RunOnce(ctx context.Context) (scheduler.CycleReport, error)
	Status() scheduler.Status
}

type AdminHandler struct {
	Dispatcher Dispatcher
}

func NewAdminHandler(d Dispatcher) *AdminHandler {
	return &AdminHandler{Dispatcher: d}
}

// POST /admin/reminders/dispatch
func (h *AdminHandler) DispatchHandler(w http.ResponseWriter, r *http.Request) {
	report, err := h.Dispatcher.RunOnce(r.Context())
	if err != nil {
		var enumErr *reminder.EnumerationError
		if errors.As(err, &enumErr) {
			logger.Log.WithError(err).WithField("tick_id", report.TickID).Error("Manual dispatch failed")
			http.Error(w, "Failed to enumerate users", http.StatusInternalServerError)
			return
		}
		logger.Log.WithError(err).Warn("Manual dispatch aborted")
		http.Error(w, "Dispatch aborted", http.StatusServiceUnavailable)
		return
	}

	logger.Log.WithFields(logrus.Fields{
		"tick_id": report.TickID,
		"sent":    report.Sent,
	}).Info("Manual dispatch completed")
	writeJSON(w, http.StatusOK, report)
}

// GET /admin/reminders/status
func (h *AdminHandler) StatusHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Dispatcher.Status())
}
