// ABOUTME: Prometheus metrics for the collector
// ABOUTME: Counters, gauges, and a duration histogram updated per collection

package vm

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type metrics struct {
	collections prometheus.Counter
	reclaimed   prometheus.Counter
	liveObjects prometheus.Gauge
	trigger     prometheus.Gauge
	duration    prometheus.Histogram
}

func newMetrics(reg prometheus.Registerer) *metrics {
	return &metrics{
		collections: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "microgc_collections_total",
			Help: "Total number of stop-the-world collection passes.",
		}),
		reclaimed: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "microgc_reclaimed_objects_total",
			Help: "Total number of objects reclaimed by sweeps.",
		}),
		liveObjects: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name: "microgc_live_objects",
			Help: "Live objects after the most recent collection.",
		}),
		trigger: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name: "microgc_gc_trigger_threshold",
			Help: "Live object count at which the next collection fires.",
		}),
		duration: promauto.With(reg).NewHistogram(prometheus.HistogramOpts{
			Name:    "microgc_collection_duration_seconds",
			Help:    "Time spent in stop-the-world collection.",
			Buckets: prometheus.ExponentialBuckets(1e-6, 4, 10),
		}),
	}
}
