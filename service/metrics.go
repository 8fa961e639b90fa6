package service

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// metrics holds the service's Prometheus collectors, registered on the
// default registry so promhttp.Handler serves them. Registration happens
// once per process; every Service shares the collectors.
type metrics struct {
	transforms *prometheus.CounterVec
	duration   *prometheus.HistogramVec
}

var (
	metricsOnce   sync.Once
	sharedMetrics *metrics
)

func newMetrics() *metrics {
	metricsOnce.Do(func() {
		sharedMetrics = register()
	})
	return sharedMetrics
}

func register() *metrics {
	return &metrics{
		transforms: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "platechange",
			Name:      "transforms_total",
			Help:      "Transformation requests by transformation and outcome.",
		}, []string{"transformation", "outcome"}),
		duration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "platechange",
			Name:      "transform_duration_seconds",
			Help:      "End-to-end transformation request duration.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"transformation"}),
	}
}

func (m *metrics) observe(transformation, outcome string, d time.Duration) {
	m.transforms.WithLabelValues(transformation, outcome).Inc()
	m.duration.WithLabelValues(transformation).Observe(d.Seconds())
}
