package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the collectors the server updates.
type Metrics struct {
	UpdateEvents   prometheus.Counter
	Notifications  prometheus.Counter
	ActiveSessions prometheus.Gauge

	gatherer prometheus.Gatherer
}

// NewMetrics registers the server collectors on reg. A nil reg gets a
// private registry so several servers can live in one process.
func NewMetrics(reg *prometheus.Registry) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	factory := promauto.With(reg)
	return &Metrics{
		UpdateEvents: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "rangeslider",
			Name:      "update_events_total",
			Help:      "Slider update events received from browser sessions.",
		}),
		Notifications: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "rangeslider",
			Name:      "output_notifications_total",
			Help:      "Output change notifications raised by hosted controls.",
		}),
		ActiveSessions: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "rangeslider",
			Name:      "active_sessions",
			Help:      "Connected slider sessions.",
		}),
		gatherer: reg,
	}
}

// Handler exposes the collectors in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
