// Package metrics defines and registers all custom Prometheus metrics for
// the Well2Nest hospital API. It is the single source of truth for metric
// names, labels, and help strings.
//
// Metrics register with the default Prometheus registry at import time via
// promauto; the router exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "well2nest"

// ── Gateway metrics ───────────────────────────────────────────────────────────

// GatewayQueriesTotal counts queries issued through the data access gateway.
// Labels:
//   - collection: the remote collection queried (e.g. "appointments")
//   - operation: select, count, insert, update, delete
var GatewayQueriesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "gateway_queries_total",
		Help:      "Total number of queries issued through the data access gateway.",
	},
	[]string{"collection", "operation"},
)

// GatewayErrorsTotal counts gateway queries that failed.
var GatewayErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "gateway_errors_total",
		Help:      "Total number of gateway queries that failed.",
	},
	[]string{"collection", "operation"},
)

// GatewayQueryDuration measures gateway query latency by operation.
var GatewayQueryDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "gateway_query_duration_seconds",
		Help:      "Duration of gateway queries against the remote store.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"operation"},
)

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Labels:
//   - role: the requested role tag
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by requested role and result.",
	},
	[]string{"role", "result"},
)

// ── Write-sequence metrics ────────────────────────────────────────────────────

// PartialWritesTotal counts multi-step write sequences that left a partial
// state behind (earlier step committed, later step failed).
// Label:
//   - operation: the sequence name reported by the failure
var PartialWritesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "partial_writes_total",
		Help:      "Total number of write sequences that failed after a partial commit.",
	},
	[]string{"operation"},
)
