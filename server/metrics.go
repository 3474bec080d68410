package server

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Prompt outcomes recorded in supportai_prompts_total.
const (
	outcomeOK          = "ok"
	outcomeInvalid     = "invalid"
	outcomeUnavailable = "unavailable"
	outcomeCanceled    = "canceled"
)

// Metrics holds the server's Prometheus collectors on a private registry.
type Metrics struct {
	registry      *prometheus.Registry
	prompts       *prometheus.CounterVec
	duration      *prometheus.HistogramVec
	activeSockets prometheus.Gauge
}

// NewMetrics creates and registers the server collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		prompts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "supportai_prompts_total",
			Help: "Prompts handled, by transport and outcome.",
		}, []string{"transport", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "supportai_prompt_duration_seconds",
			Help:    "Time to answer a prompt.",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 4, 8, 16, 32, 60},
		}, []string{"transport"}),
		activeSockets: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "supportai_active_sockets",
			Help: "Open socket connections.",
		}),
	}

	m.registry.MustRegister(
		m.prompts,
		m.duration,
		m.activeSockets,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) observePrompt(transport, outcome string, elapsed time.Duration) {
	m.prompts.WithLabelValues(transport, outcome).Inc()
	m.duration.WithLabelValues(transport).Observe(elapsed.Seconds())
}
