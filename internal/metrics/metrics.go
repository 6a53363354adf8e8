// Package metrics defines and registers the custom Prometheus collectors of
// the project-management API. It is the single source of truth for metric
// names, labels and help strings.
//
// Collectors register with the default registry on package init through
// promauto; HTTP request metrics come from echoprometheus in the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "pm"

// ── Task metrics ──────────────────────────────────────────────────────────────

// TasksCreatedTotal counts newly created tasks.
// Label:
//   - priority: LOW, MEDIUM, HIGH or CRITICAL
var TasksCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tasks_created_total",
		Help:      "Total number of tasks created, by priority.",
	},
	[]string{"priority"},
)

// TaskTransitionsTotal counts status changes applied by the workflow.
// Same-status requests (e.g. DONE -> DONE) are not counted.
var TaskTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "task_transitions_total",
		Help:      "Total number of task status transitions, by source and target status.",
	},
	[]string{"from", "to"},
)

// CascadeDeletedTasksTotal counts tasks removed because their project was deleted.
var CascadeDeletedTasksTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cascade_deleted_tasks_total",
		Help:      "Total number of tasks removed by project cascade deletes.",
	},
)

// ── Activity trail metrics ────────────────────────────────────────────────────

// ActivityErrorsTotal counts activity events that could not be stored.
var ActivityErrorsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "activity_errors_total",
		Help:      "Total number of task activity events that failed to persist.",
	},
)

// ActivityQueueDepth tracks the number of events waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var ActivityQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "activity_queue_depth",
		Help:      "Current number of activity events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// ── Rate limiter metrics ──────────────────────────────────────────────────────

// RateLimitedTotal counts requests rejected by the rate limiter.
var RateLimitedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rate_limited_requests_total",
		Help:      "Total number of requests rejected by the rate limiter, by route.",
	},
	[]string{"route"},
)
