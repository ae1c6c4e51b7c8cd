// Package metrics defines the custom Prometheus metrics for the gesture
// portal: signup, login, logout and access-gate outcomes.
//
// Call Register once per registry at startup; HTTP request metrics are
// collected separately by the echoprometheus middleware.
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "gesture_portal"

// SignupsTotal counts signup attempts.
// Label:
//   - result: "created", "duplicate", "invalid" or "error"
var SignupsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signups_total",
		Help:      "Total number of signup attempts, by result.",
	},
	[]string{"result"},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "invalid_credentials" or "error"
var LoginsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// LogoutsTotal counts sessions ended by an explicit logout.
var LogoutsTotal = prometheus.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logouts_total",
		Help:      "Total number of sessions invalidated by logout.",
	},
)

// GateDecisionsTotal counts access gate outcomes on protected routes.
// Label:
//   - result: "allowed", "denied" or "error"
var GateDecisionsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "gate_decisions_total",
		Help:      "Total number of access gate decisions, by result.",
	},
	[]string{"result"},
)

func collectors() []prometheus.Collector {
	return []prometheus.Collector{SignupsTotal, LoginsTotal, LogoutsTotal, GateDecisionsTotal}
}

// Register adds every custom metric to reg. Registering into a registry that
// already holds them is not an error.
func Register(reg prometheus.Registerer) error {
	for _, c := range collectors() {
		if err := reg.Register(c); err != nil {
			var are prometheus.AlreadyRegisteredError
			if errors.As(err, &are) {
				continue
			}
			return err
		}
	}
	return nil
}
