// Package metrics defines the Prometheus collectors exported on /metrics.
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Computation outcomes used as the "outcome" label.
const (
	OutcomeOK      = "ok"
	OutcomeEmpty   = "empty"
	OutcomeInvalid = "invalid"
	OutcomeError   = "error"
)

var (
	// HTTPRequestsTotal counts requests by method, route and status code.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rfw_http_requests_total",
			Help: "Total number of HTTP requests processed",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "rfw_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"method", "path"},
	)

	// GraphComputationsTotal counts engine runs by outcome.
	GraphComputationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rfw_graph_computations_total",
			Help: "Total number of relationship graph computations",
		},
		[]string{"outcome"},
	)

	// GraphComputationDuration measures end-to-end engine runs.
	GraphComputationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "rfw_graph_computation_duration_seconds",
			Help:    "Duration of relationship graph computations in seconds",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
	)

	// GraphNodes holds the node count of the last graph, by population.
	GraphNodes = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "rfw_graph_nodes",
			Help: "Number of nodes in the most recently computed graph",
		},
		[]string{"population"},
	)

	GraphEdges = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "rfw_graph_edges",
			Help: "Number of edges in the most recently computed graph",
		},
	)

	// SnapshotRecords is the number of relationship records currently loaded.
	SnapshotRecords = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "rfw_snapshot_records",
			Help: "Number of relationship records in the loaded snapshot",
		},
	)
)

// Graph is the shape of a computed graph as seen by the collectors.
type Graph struct {
	Projects int
	Tools    int
	Edges    int
	Seconds  float64
}

// ObserveComputation records one engine run. invalid lists the errors that
// count as caller mistakes rather than failures.
func ObserveComputation(g Graph, err error, invalid ...error) {
	if err != nil {
		for _, target := range invalid {
			if errors.Is(err, target) {
				GraphComputationsTotal.WithLabelValues(OutcomeInvalid).Inc()
				return
			}
		}
		GraphComputationsTotal.WithLabelValues(OutcomeError).Inc()
		return
	}

	if g.Edges == 0 {
		GraphComputationsTotal.WithLabelValues(OutcomeEmpty).Inc()
	} else {
		GraphComputationsTotal.WithLabelValues(OutcomeOK).Inc()
	}
	GraphComputationDuration.Observe(g.Seconds)
	GraphNodes.WithLabelValues("project").Set(float64(g.Projects))
	GraphNodes.WithLabelValues("tool").Set(float64(g.Tools))
	GraphEdges.Set(float64(g.Edges))
}
