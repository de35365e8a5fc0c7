// Package metrics provides Prometheus metrics for service invocations.
package metrics

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/ib-77/ropsvc/pkg/rop/service"
)

const namespace = "ropsvc"

// Collector records every invocation it observes. It implements
// service.Observer.
type Collector struct {
	Invocations *prometheus.CounterVec
	Duration    *prometheus.HistogramVec
	Aborts      *prometheus.CounterVec
	Errors      *prometheus.CounterVec
}

// New creates a collector registered with the default registry.
func New() *Collector {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

// NewWithRegistry creates a collector with a custom registry.
// Useful for testing to avoid global state.
func NewWithRegistry(reg prometheus.Registerer) *Collector {
	factory := promauto.With(reg)

	return &Collector{
		Invocations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "invocations_total",
				Help:      "Total number of service invocations by outcome",
			},
			[]string{"service", "outcome"},
		),
		Duration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "invocation_duration_seconds",
				Help:      "Service invocation duration in seconds",
				Buckets:   []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1, 5},
			},
			[]string{"service"},
		),
		Aborts: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "aborts_total",
				Help:      "Total number of invocations that stopped early through an abort",
			},
			[]string{"service"},
		),
		Errors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "errors_total",
				Help:      "Total number of invocations that returned an error instead of a result",
			},
			[]string{"service"},
		),
	}
}

func (c *Collector) Observe(_ context.Context, inv service.Invocation) {
	c.Invocations.WithLabelValues(inv.Service, string(inv.Outcome)).Inc()
	c.Duration.WithLabelValues(inv.Service).Observe(inv.Duration.Seconds())

	switch inv.Outcome {
	case service.OutcomeAborted:
		c.Aborts.WithLabelValues(inv.Service).Inc()
	case service.OutcomeErrored, service.OutcomeCanceled:
		c.Errors.WithLabelValues(inv.Service).Inc()
	}
}
