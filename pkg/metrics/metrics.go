// Package metrics exposes run statistics in Prometheus form. A run has no
// scrape endpoint, so the registry is dumped to a textfile at the end.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// RecordTransaction counts one sampled transaction and observes its amount
func (r *Registry) RecordTransaction(fraud bool, amount float64) {
	label := LabelLegit
	if fraud {
		label = LabelFraud
	}
	r.TransactionsGeneratedTotal.WithLabelValues(label).Inc()
	r.TransactionAmount.WithLabelValues(label).Observe(amount)
}

// SetAccounts records the pool size
func (r *Registry) SetAccounts(n int) {
	r.AccountsTotal.Set(float64(n))
}

// SetGraphSize records the projected graph's node and edge counts
func (r *Registry) SetGraphSize(nodes, edges int) {
	r.GraphNodesTotal.Set(float64(nodes))
	r.GraphEdgesTotal.Set(float64(edges))
}

// RecordStage records how long a pipeline stage took
func (r *Registry) RecordStage(stage string, duration time.Duration) {
	r.StageDuration.WithLabelValues(stage).Observe(duration.Seconds())
}

// RecordTableWrite records the outcome of writing one table to a sink
func (r *Registry) RecordTableWrite(sink, table string, rows int, err error) {
	if err != nil {
		r.SinkErrorsTotal.WithLabelValues(sink).Inc()
		return
	}
	r.RowsWrittenTotal.WithLabelValues(sink, table).Add(float64(rows))
}

// WriteTextfile writes every registered metric to path in the Prometheus
// text exposition format, replacing the file atomically.
func (r *Registry) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
