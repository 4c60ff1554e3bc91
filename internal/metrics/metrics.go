// Package metrics exposes Prometheus counters for change, resolution and
// compilation activity. Each Metrics owns its own registry so separate
// sessions and tests never share counters.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "officegraph"

// Metrics holds the counters. A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	ChangesApplied  prometheus.Counter
	ChangesReverted prometheus.Counter
	LinksResolved   prometheus.Counter
	LinksDropped    prometheus.Counter
	CompileIssues   prometheus.Counter
	ArchitectCalls  *prometheus.CounterVec
}

// New creates a Metrics with every counter registered on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		ChangesApplied: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "change",
			Name:      "applied_total",
			Help:      "Number of changes applied, including redone changes.",
		}),
		ChangesReverted: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "change",
			Name:      "reverted_total",
			Help:      "Number of changes reverted.",
		}),
		LinksResolved: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "resolver",
			Name:      "links_resolved_total",
			Help:      "Number of persisted connections resolved into live links.",
		}),
		LinksDropped: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "resolver",
			Name:      "links_dropped_total",
			Help:      "Number of persisted connections dropped because an endpoint did not resolve.",
		}),
		CompileIssues: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "compiler",
			Name:      "issues_total",
			Help:      "Number of issues reported while compiling.",
		}),
		ArchitectCalls: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "compiler",
			Name:      "architect_calls_total",
			Help:      "Number of architect calls issued, by operation.",
		}, []string{"operation"}),
	}
}

// Registry returns the registry holding the counters.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

func (m *Metrics) ObserveApply() {
	if m != nil {
		m.ChangesApplied.Inc()
	}
}

func (m *Metrics) ObserveRevert() {
	if m != nil {
		m.ChangesReverted.Inc()
	}
}

// ObserveResolution records the outcome of one resolver pass.
func (m *Metrics) ObserveResolution(resolved, dropped int) {
	if m == nil {
		return
	}
	m.LinksResolved.Add(float64(resolved))
	m.LinksDropped.Add(float64(dropped))
}

func (m *Metrics) ObserveIssue() {
	if m != nil {
		m.CompileIssues.Inc()
	}
}

func (m *Metrics) ObserveCall(operation string) {
	if m != nil {
		m.ArchitectCalls.WithLabelValues(operation).Inc()
	}
}
