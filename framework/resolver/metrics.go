package resolver

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

// source names the step of the algorithm that produced a value.
type source string

const (
	sourceBinding     source = "binding"
	sourceDouble      source = "double"
	sourceConstructor source = "constructor"
	sourceInstantiate source = "instantiate"
	sourceZero        source = "zero"
)

// metrics are per session: each resolver owns its own registry, so parallel
// tests never share counters.
type metrics struct {
	registry *prometheus.Registry

	// Resolutions by source. Nested resolutions are counted too.
	resolutions *prometheus.CounterVec

	// Doubles minted by the engine (cache hits are not counted).
	doubles prometheus.Counter

	// Failed top-level resolutions by error kind.
	failures *prometheus.CounterVec
}

func newMetrics() *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		resolutions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "magicmock_resolutions_total",
				Help: "Resolved values by the step that produced them",
			},
			[]string{"source"},
		),
		doubles: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "magicmock_doubles_created_total",
				Help: "Test doubles created by the double engine",
			},
		),
		failures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "magicmock_resolution_failures_total",
				Help: "Failed resolutions by error kind",
			},
			[]string{"kind"},
		),
	}
	m.registry.MustRegister(m.resolutions, m.doubles, m.failures)
	return m
}

func (m *metrics) resolved(s source) {
	m.resolutions.WithLabelValues(string(s)).Inc()
}

func (m *metrics) doubleCreated() {
	m.doubles.Inc()
}

func (m *metrics) failed(err error) {
	m.failures.WithLabelValues(failureKind(err)).Inc()
}

// failureKind labels err by its most specific cause.
func failureKind(err error) string {
	switch {
	case errors.Is(err, ErrCyclicDependency):
		return "cyclic"
	case errors.Is(err, ErrDepthExceeded):
		return "depth"
	case errors.Is(err, ErrUnsupportedType):
		return "unsupported"
	case errors.Is(err, ErrIncompatibleBinding):
		return "binding"
	case errors.Is(err, ErrConstruction):
		return "construction"
	default:
		return "other"
	}
}

// Gatherer exposes the session's metrics, e.g. for prometheus/testutil.
func (r *Resolver) Gatherer() prometheus.Gatherer {
	return r.metrics.registry
}
