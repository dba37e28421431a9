// Package metrics defines and registers all custom Prometheus metrics for the
// note system. It is the single source of truth for metric names, labels, and
// help strings.
//
// Metrics register themselves with the default Prometheus registry at import
// time via promauto; the HTTP exposition endpoint is wired in the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "noteapp"

// RegistrationsTotal counts registration attempts.
// Label:
//   - result: "ok", "duplicate_id", or "error"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of registration attempts, by result.",
	},
	[]string{"result"},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "ok", "unknown_id", "wrong_password", or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// NotesSentTotal counts successfully delivered notes.
var NotesSentTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notes_sent_total",
		Help:      "Total number of notes successfully sent.",
	},
)

// NotesRejectedTotal counts note submissions that failed.
// Label:
//   - reason: "recipient_not_found" or "error"
var NotesRejectedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notes_rejected_total",
		Help:      "Total number of note submissions rejected, by reason.",
	},
	[]string{"reason"},
)
