// Package metrics holds the prometheus instruments the worker exposes on
// /metrics.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Metrics bundles the engine's instruments on one registerer.
type Metrics struct {
	ExecutionsTotal *prometheus.CounterVec
	NodesTotal      *prometheus.CounterVec
	NodeDuration    *prometheus.HistogramVec
	JobsInFlight    prometheus.Gauge
}

// New registers the engine instruments. Pass prometheus.DefaultRegisterer in
// the worker; tests use a private registry.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		ExecutionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "weft_executions_total",
				Help: "Executions finished, by terminal status.",
			},
			[]string{"status"},
		),
		NodesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "weft_nodes_total",
				Help: "Node runs, by node type and result.",
			},
			[]string{"type", "status"},
		),
		NodeDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "weft_node_duration_seconds",
				Help: "Wall-clock duration of node implementation calls.",
			},
			[]string{"type"},
		),
		JobsInFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "weft_jobs_in_flight",
				Help: "Queue jobs currently being processed.",
			},
		),
	}
	reg.MustRegister(m.ExecutionsTotal, m.NodesTotal, m.NodeDuration, m.JobsInFlight)
	return m
}

// NewNop returns metrics bound to a throwaway registry.
func NewNop() *Metrics {
	return New(prometheus.NewRegistry())
}
