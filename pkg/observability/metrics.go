package observability

import (
	"context"

	"github.com/aretw0/augmenter/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the prometheus collectors fed by the engine's lifecycle hooks.
type Metrics struct {
	shapesTotal   *prometheus.CounterVec // by status (ok/error)
	shapeDuration prometheus.Histogram
	nodesTotal    prometheus.Counter
	resolvesTotal *prometheus.CounterVec // by declared (true/false)
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		shapesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "augmenter",
			Subsystem: "engine",
			Name:      "shapes_total",
			Help:      "Total number of top-level shaping calls",
		}, []string{"status"}),

		shapeDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "augmenter",
			Subsystem: "engine",
			Name:      "shape_duration_seconds",
			Help:      "Duration of top-level shaping calls in seconds",
			Buckets:   []float64{0.00001, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		}),

		nodesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "augmenter",
			Subsystem: "engine",
			Name:      "root_nodes_total",
			Help:      "Total number of root-level objects materialized",
		}),

		resolvesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "augmenter",
			Subsystem: "store",
			Name:      "type_builds_total",
			Help:      "Total number of effective type configurations built",
		}, []string{"declared"}),
	}

	for _, c := range []prometheus.Collector{m.shapesTotal, m.shapeDuration, m.nodesTotal, m.resolvesTotal} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Hooks returns the lifecycle hooks recording into m.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnShapeEnd: func(_ context.Context, ev *domain.ShapeEvent) {
			status := "ok"
			if ev.Err != nil {
				status = "error"
			}
			m.shapesTotal.WithLabelValues(status).Inc()
			m.shapeDuration.Observe(ev.Duration.Seconds())
		},
		OnNode: func(context.Context, *domain.AugmentationContext) {
			m.nodesTotal.Inc()
		},
		OnResolve: func(ev *domain.ResolveEvent) {
			declared := "false"
			if ev.Declared {
				declared = "true"
			}
			m.resolvesTotal.WithLabelValues(declared).Inc()
		},
	}
}
