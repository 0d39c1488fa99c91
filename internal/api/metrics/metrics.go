// Package metrics defines and registers the custom Prometheus collectors of
// the Jobly API. HTTP request metrics come from echoprometheus; the
// collectors here cover what that middleware cannot see.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "jobly"

// ── Access gate ───────────────────────────────────────────────────────────────

// GateDecisionsTotal counts access gate outcomes.
// Labels:
//   - gate: "authenticated" or "admin"
//   - outcome: "allowed", "unauthorized", "forbidden", "revoked" or "error"
var GateDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "gate_decisions_total",
		Help:      "Total number of access gate decisions, by gate and outcome.",
	},
	[]string{"gate", "outcome"},
)

// ── Companies ─────────────────────────────────────────────────────────────────

// HandleCollisionsTotal counts company inserts that found their candidate
// handle taken and moved on to the next suffix.
var HandleCollisionsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "company_handle_collisions_total",
		Help:      "Total number of company handle collisions resolved by suffixing.",
	},
)

// ── Audit trail ───────────────────────────────────────────────────────────────

// AuditEntriesTotal counts audit entries by result.
// Label:
//   - result: "recorded", "failed" or "dropped" (shard buffer full)
var AuditEntriesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_entries_total",
		Help:      "Total number of audit entries, labelled by result.",
	},
	[]string{"result"},
)

// AuditQueueDepth tracks entries waiting in each dispatcher shard.
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of audit entries pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// AuditRecordDuration measures how long persisting one entry takes.
var AuditRecordDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "audit_record_duration_seconds",
		Help:      "Duration of a single audit entry write.",
		Buckets:   prometheus.DefBuckets,
	},
)
