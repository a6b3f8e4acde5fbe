// Package metrics defines and registers all custom Prometheus metrics for
// the billing admin gateway. It is the single source of truth for metric
// names, labels, and help strings; metrics register with the default
// registry at package init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "billing_gateway"

// LoginsTotal counts login attempts by outcome.
// Label:
//   - result: "success", "invalid_credentials", "forbidden", or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// GuardDecisionsTotal counts route guard outcomes.
// Label:
//   - decision: "allow", "redirect_login", "redirect_dashboard", or "forced_logout"
var GuardDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "guard_decisions_total",
		Help:      "Total number of route guard evaluations, by decision.",
	},
	[]string{"decision"},
)

// CacheLookupsTotal counts request cache lookups.
// Label:
//   - result: "hit" (served from cache), "miss" (fetched), "shared" (joined
//     another caller's in-flight fetch), or "error" (fetch failed)
var CacheLookupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_lookups_total",
		Help:      "Total number of request cache lookups, by result.",
	},
	[]string{"result"},
)

// BackendRequestsTotal counts outbound calls to the billing backend.
// Labels:
//   - endpoint: logical endpoint name (e.g. "login", "tariffs")
//   - outcome: "ok", "unauthorized", "forbidden", or "unavailable"
var BackendRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "backend_requests_total",
		Help:      "Total number of requests issued to the billing backend.",
	},
	[]string{"endpoint", "outcome"},
)

// BackendRequestDuration measures billing backend round-trip latency.
// Label:
//   - endpoint: logical endpoint name
var BackendRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "backend_request_duration_seconds",
		Help:      "Duration of billing backend round trips.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"endpoint"},
)

// AuditEventsDroppedTotal counts audit events discarded because the writer
// queue was full.
var AuditEventsDroppedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_events_dropped_total",
		Help:      "Total number of audit events dropped due to a full queue.",
	},
)
