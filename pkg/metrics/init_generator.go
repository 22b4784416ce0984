package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initGeneratorMetrics() {
	r.AccountsTotal = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "fraudgen_accounts_total",
			Help: "Number of accounts in the generated pool",
		},
	)

	r.TransactionsGeneratedTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "fraudgen_transactions_generated_total",
			Help: "Total number of transactions sampled, by label",
		},
		[]string{"label"},
	)

	r.TransactionAmount = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fraudgen_transaction_amount",
			Help:    "Distribution of transaction amounts, by label",
			Buckets: []float64{10, 50, 100, 200, 500, 1000, 2500, 5000, 10000, 25000},
		},
		[]string{"label"},
	)

	r.GraphNodesTotal = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "fraudgen_graph_nodes_total",
			Help: "Number of nodes in the projected graph",
		},
	)

	r.GraphEdgesTotal = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "fraudgen_graph_edges_total",
			Help: "Number of edges in the projected graph",
		},
	)

	r.StageDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fraudgen_stage_duration_seconds",
			Help:    "Pipeline stage duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0, 5.0},
		},
		[]string{"stage"},
	)
}
