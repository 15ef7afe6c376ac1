// Package metrics exports growth controller activity to Prometheus.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/phanxgames/sprout"
)

// Observer records controller events as Prometheus metrics.
type Observer struct {
	growths      *prometheus.CounterVec
	segments     *prometheus.HistogramVec
	growDuration *prometheus.HistogramVec
	stops        *prometheus.CounterVec
	released     *prometheus.CounterVec
	trees        prometheus.Gauge
	liveSegments prometheus.Gauge
	tickDuration prometheus.Histogram
}

var _ sprout.Observer = (*Observer)(nil)

// New creates an Observer and registers its collectors with reg.
func New(reg prometheus.Registerer) *Observer {
	o := &Observer{
		growths: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sprout_growths_total",
				Help: "Total number of growth sessions started",
			},
			[]string{"variant"},
		),
		segments: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "sprout_growth_segments",
				Help:    "Segments created per growth session",
				Buckets: prometheus.ExponentialBuckets(4, 2, 8),
			},
			[]string{"variant"},
		),
		growDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "sprout_growth_duration_seconds",
				Help:    "Time spent building a growth tree",
				Buckets: prometheus.ExponentialBuckets(0.0001, 2, 12),
			},
			[]string{"variant"},
		),
		stops: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sprout_stops_total",
				Help: "Total number of growth sessions stopped",
			},
			[]string{"variant"},
		),
		released: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sprout_released_claims_total",
				Help: "Lattice claims released by stopped sessions",
			},
			[]string{"variant"},
		),
		trees: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "sprout_active_trees",
			Help: "Trees advanced by the last tick",
		}),
		liveSegments: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "sprout_active_segments",
			Help: "Segments advanced by the last tick",
		}),
		tickDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "sprout_tick_duration_seconds",
			Help:    "Time spent in one scheduling tick",
			Buckets: prometheus.ExponentialBuckets(0.00001, 2, 12),
		}),
	}
	reg.MustRegister(o.growths, o.segments, o.growDuration, o.stops, o.released,
		o.trees, o.liveSegments, o.tickDuration)
	return o
}

// GrowthStarted implements sprout.Observer.
func (o *Observer) GrowthStarted(variant string, segments, claims int, took time.Duration) {
	o.growths.WithLabelValues(variant).Inc()
	o.segments.WithLabelValues(variant).Observe(float64(segments))
	o.growDuration.WithLabelValues(variant).Observe(took.Seconds())
}

// GrowthStopped implements sprout.Observer.
func (o *Observer) GrowthStopped(variant string, released int) {
	o.stops.WithLabelValues(variant).Inc()
	o.released.WithLabelValues(variant).Add(float64(released))
}

// Ticked implements sprout.Observer.
func (o *Observer) Ticked(trees, segments int, took time.Duration) {
	o.trees.Set(float64(trees))
	o.liveSegments.Set(float64(segments))
	o.tickDuration.Observe(took.Seconds())
}

// Handler serves the metrics gathered by g in the Prometheus text format.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
