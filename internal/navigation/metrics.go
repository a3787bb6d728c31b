package navigation

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// notFoundLabel is the route label of navigations that matched no route.
const notFoundLabel = "not_found"

// Metrics counts navigations handled by a [Controller].
type Metrics struct {
	navigations *prometheus.CounterVec
	duration    *prometheus.HistogramVec
}

// NewMetrics creates the navigation metrics and registers them on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		navigations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mini_capstone",
			Name:      "navigations_total",
			Help:      "Total number of navigations by route name.",
		}, []string{"route"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "mini_capstone",
			Name:      "view_render_seconds",
			Help:      "Time spent rendering views by route name.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
	}
	reg.MustRegister(m.navigations, m.duration)
	return m
}

func (m *Metrics) observe(route string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.navigations.WithLabelValues(route).Inc()
	if route != notFoundLabel {
		m.duration.WithLabelValues(route).Observe(elapsed.Seconds())
	}
}
