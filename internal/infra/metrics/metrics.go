// Package metrics provides Prometheus metrics for the extension backend:
// webhook traffic, game outcomes, remote platform calls, and reset runs.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ─── Webhooks ───────────────────────────────────────────────────────────────

// WebhookEvents counts received webhook events by top-level type.
var WebhookEvents = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "linkvote",
	Name:      "webhook_events_total",
	Help:      "Total webhook events received, by event type.",
}, []string{"event"})

// ActionLogs counts action_log.created sub-events by action log type.
var ActionLogs = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "linkvote",
	Name:      "action_logs_total",
	Help:      "Total action log events received, by type.",
}, []string{"type"})

// ─── Game ───────────────────────────────────────────────────────────────────

// Outcomes counts selected vote outcomes.
var Outcomes = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "linkvote",
	Name:      "outcomes_total",
	Help:      "Total vote outcomes selected, by outcome type.",
}, []string{"outcome"})

// PenaltySeconds tracks the magnitude of issued time adjustments.
var PenaltySeconds = promauto.NewHistogram(prometheus.HistogramOpts{
	Namespace: "linkvote",
	Name:      "penalty_seconds",
	Help:      "Absolute time adjustment issued per vote, in seconds.",
	Buckets:   []float64{30, 60, 120, 300, 600, 1800, 3600, 10800, 43200},
})

// ─── Remote platform ────────────────────────────────────────────────────────

// RemoteErrors counts failed calls to the lock platform, by operation.
var RemoteErrors = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "linkvote",
	Name:      "remote_errors_total",
	Help:      "Total failed remote platform calls, by operation.",
}, []string{"op"})

// ─── Daily reset ────────────────────────────────────────────────────────────

// ResetRuns counts daily reset executions.
var ResetRuns = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "linkvote",
	Name:      "reset_runs_total",
	Help:      "Total daily quota reset runs.",
})

// ResetSessionFailures counts sessions that failed during a reset run.
// One session's failure never stops the run.
var ResetSessionFailures = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "linkvote",
	Name:      "reset_session_failures_total",
	Help:      "Total sessions that failed processing during daily resets.",
})
