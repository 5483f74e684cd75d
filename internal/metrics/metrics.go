// Package metrics exposes Prometheus collectors for reminder dispatch.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RemindersTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reminder_dispatch_total",
			Help: "Reminder instances by type and outcome (sent, failed, suppressed).",
		},
		[]string{"type", "outcome"},
	)
	DeliveryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "reminder_delivery_duration_seconds",
			Help:    "Duration of a single channel delivery attempt.",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"channel", "status"},
	)
	TickDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "reminder_tick_duration_seconds",
			Help:    "Duration of a full dispatch tick.",
			Buckets: []float64{0.1, 0.5, 1, 5, 15, 30, 60, 120},
		},
	)
	TicksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reminder_ticks_total",
			Help: "Dispatch ticks by trigger and result.",
		},
		[]string{"trigger", "result"},
	)
	UsersSkippedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "reminder_users_skipped_total",
			Help: "Users skipped in a tick because of bad settings or store errors.",
		},
	)
)
