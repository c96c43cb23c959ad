// Package metrics defines and registers all custom Prometheus metrics for
// the player catalog. It is the single source of truth for metric names,
// labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "catalog"

// ListRequestsTotal counts catalog listing requests.
// Labels:
//   - view: "landing" (store order) or "overview" (sorted)
//   - sort_key: requested sort attribute, or "none" for the landing view
var ListRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "list_requests_total",
		Help:      "Total number of player listing requests, by view and sort key.",
	},
	[]string{"view", "sort_key"},
)

// PlayerUpdatesTotal counts successful player mutations.
// Label:
//   - field_count: number of fields changed by the patch
var PlayerUpdatesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "player_updates_total",
		Help:      "Total number of successful player updates.",
	},
	[]string{"field_count"},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// RegistrationsTotal counts account registrations.
// Label:
//   - result: "created" or "failure"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of registration attempts, by result.",
	},
	[]string{"result"},
)
