// Package metrics defines and registers the custom Prometheus metrics of the
// visa assistant API. All metrics are registered on the default registry at
// package init through promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/visago/visa-assistant/internal/core/fallback"
)

const namespace = "visago"

// ── Backend metrics ───────────────────────────────────────────────────────────

// BackendCallsTotal counts backend-first operations by how they were served.
// Labels:
//   - service: "auth", "countries", "community", "notifications"
//   - operation: e.g. "login", "list"
//   - outcome: "remote", "fallback" or "error"
var BackendCallsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "backend_calls_total",
		Help:      "Total number of backend-first operations, by outcome.",
	},
	[]string{"service", "operation", "outcome"},
)

// RecordBackendCall is a fallback.RecordFunc feeding BackendCallsTotal.
func RecordBackendCall(service, operation string, outcome fallback.Outcome) {
	BackendCallsTotal.WithLabelValues(service, operation, string(outcome)).Inc()
}

// SessionsOpenedTotal counts successful logins and registrations.
// Label:
//   - mode: "online" or "offline"
var SessionsOpenedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_opened_total",
		Help:      "Total number of sessions opened, by backend mode.",
	},
	[]string{"mode"},
)

// ── Document metrics ──────────────────────────────────────────────────────────

var DocumentsUploadedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "documents_uploaded_total",
		Help:      "Total number of documents stored.",
	},
)

// DocumentsRejectedTotal counts refused uploads.
// Label:
//   - reason: "too_many_files", "file_too_large", "invalid_type", "no_files" or "error"
var DocumentsRejectedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "documents_rejected_total",
		Help:      "Total number of rejected upload requests, by reason.",
	},
	[]string{"reason"},
)

// ── Chat metrics ──────────────────────────────────────────────────────────────

// ChatRequestsTotal counts chat proxy calls.
// Label:
//   - status: HTTP status relayed to the client, e.g. "200", "429", "502"
var ChatRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "chat_requests_total",
		Help:      "Total number of chat proxy requests, by response status.",
	},
	[]string{"status"},
)
