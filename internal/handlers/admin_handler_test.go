package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Dias221467/Reminder_Manager/internal/reminder"
	"github.com/Dias221467/Reminder_Manager/internal/scheduler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubDispatcher struct {
	report scheduler.CycleReport
	err    error
}

func (s stubDispatcher) RunOnce(context.Context) (scheduler.CycleReport, error) {
	return s.report, s.err
}

func (s stubDispatcher) Status() scheduler.Status {
	return scheduler.Status{Running: true, Interval: "1m0s", LastReport: &s.report}
}

func TestDispatchHandler(t *testing.T) {
	h := NewAdminHandler(stubDispatcher{report: scheduler.CycleReport{TickID: "t1", Evaluated: 3, Sent: 2, Suppressed: 1}})

	rec := httptest.NewRecorder()
	h.DispatchHandler(rec, httptest.NewRequest(http.MethodPost, "/admin/reminders/dispatch", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "t1", got["tick_id"])
	assert.EqualValues(t, 3, got["evaluated"])
	assert.EqualValues(t, 2, got["sent"])
	assert.EqualValues(t, 1, got["suppressed"])
	assert.EqualValues(t, 0, got["failed"])
}

func TestDispatchHandler_EnumerationError(t *testing.T) {
	h := NewAdminHandler(stubDispatcher{err: &reminder.EnumerationError{Err: errors.New("no servers")}})

	rec := httptest.NewRecorder()
	h.DispatchHandler(rec, httptest.NewRequest(http.MethodPost, "/admin/reminders/dispatch", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestDispatchHandler_Cancelled(t *testing.T) {
	h := NewAdminHandler(stubDispatcher{err: context.Canceled})

	rec := httptest.NewRecorder()
	h.DispatchHandler(rec, httptest.NewRequest(http.MethodPost, "/admin/reminders/dispatch", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestStatusHandler(t *testing.T) {
	h := NewAdminHandler(stubDispatcher{report: scheduler.CycleReport{TickID: "t9"}})

	rec := httptest.NewRecorder()
	h.StatusHandler(rec, httptest.NewRequest(http.MethodGet, "/admin/reminders/status", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var st scheduler.Status
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &st))
	assert.True(t, st.Running)
	require.NotNil(t, st.LastReport)
	assert.Equal(t, "t9", st.LastReport.TickID)
}
