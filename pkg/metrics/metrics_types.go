package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Label values for the transaction label dimension.
const (
	LabelFraud = "fraud"
	LabelLegit = "legit"
)

// Registry holds all metrics for a generation run
type Registry struct {
	// Generation Metrics
	AccountsTotal              prometheus.Gauge
	TransactionsGeneratedTotal *prometheus.CounterVec
	TransactionAmount          *prometheus.HistogramVec

	// Graph Metrics
	GraphNodesTotal prometheus.Gauge
	GraphEdgesTotal prometheus.Gauge

	// Output Metrics
	RowsWrittenTotal *prometheus.CounterVec
	SinkErrorsTotal  *prometheus.CounterVec

	// Pipeline Metrics
	StageDuration *prometheus.HistogramVec

	registry *prometheus.Registry
}

// NewRegistry creates a new metrics registry with all metrics initialized
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	r := &Registry{
		registry: reg,
	}

	r.initGeneratorMetrics()
	r.initOutputMetrics()

	return r
}

// GetPrometheusRegistry returns the underlying Prometheus registry
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}
