// Package metrics exposes Prometheus counters for the roster API.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	rosterGenerated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "roster_engine",
			Name:      "roster_generated_total",
			Help:      "Count of month generation runs by outcome.",
		},
		[]string{"outcome"},
	)

	shiftAssigned = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "roster_engine",
			Name:      "shift_assigned_total",
			Help:      "Count of shift assignments by outcome.",
		},
		[]string{"outcome"},
	)

	breakViolations = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "roster_engine",
			Name:      "break_violations_total",
			Help:      "Count of rest-period violations surfaced to users.",
		},
	)

	breakOverrides = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "roster_engine",
			Name:      "break_overrides_total",
			Help:      "Count of assignments committed despite a violation.",
		},
	)

	payComputed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "roster_engine",
			Name:      "pay_computed_total",
			Help:      "Count of per-entry pay computations.",
		},
	)
)

// Register registers metrics (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(rosterGenerated, shiftAssigned, breakViolations, breakOverrides, payComputed)
	})
}

func IncRosterGenerated(outcome string) {
	rosterGenerated.WithLabelValues(outcome).Inc()
}

func IncShiftAssigned(outcome string) {
	shiftAssigned.WithLabelValues(outcome).Inc()
}

func IncBreakViolation() {
	breakViolations.Inc()
}

func IncBreakOverride() {
	breakOverrides.Inc()
}

func IncPayComputed() {
	payComputed.Inc()
}
