// Package metrics exposes Prometheus instruments for solve runs.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "valvenet"

// Metrics groups the solve instruments registered on one registry.
type Metrics struct {
	reg *prometheus.Registry

	// duration measures wall time per solve.
	// Labels: agents, status (ok, stopped, error)
	duration *prometheus.HistogramVec

	// nodes counts search nodes expanded.
	// Labels: agents
	nodes *prometheus.CounterVec

	// score records the best yield of the last finished solve.
	// Labels: scenario
	score *prometheus.GaugeVec

	// runs counts solves by outcome.
	// Labels: status
	runs *prometheus.CounterVec
}

// New registers the instruments on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)
	return &Metrics{
		reg: reg,
		duration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "solve",
			Name:      "duration_seconds",
			Help:      "Wall time of one solve in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 30, 120},
		}, []string{"agents", "status"}),
		nodes: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "solve",
			Name:      "nodes_total",
			Help:      "Total search nodes expanded",
		}, []string{"agents"}),
		score: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "solve",
			Name:      "score",
			Help:      "Best yield of the most recent solve per scenario",
		}, []string{"scenario"}),
		runs: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "solve",
			Name:      "runs_total",
			Help:      "Total solves by outcome",
		}, []string{"status"}),
	}
}

// Observe records one solve. status is "ok", "stopped" or "error".
func (m *Metrics) Observe(scenario, agents, status string, score int, nodes int64, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.duration.WithLabelValues(agents, status).Observe(elapsed.Seconds())
	m.nodes.WithLabelValues(agents).Add(float64(nodes))
	m.runs.WithLabelValues(status).Inc()
	if status != "error" {
		m.score.WithLabelValues(scenario).Set(float64(score))
	}
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry { return m.reg }

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{})
}
