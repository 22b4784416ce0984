package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initOutputMetrics() {
	r.RowsWrittenTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "fraudgen_rows_written_total",
			Help: "Total number of data rows written, by sink and table",
		},
		[]string{"sink", "table"},
	)

	r.SinkErrorsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "fraudgen_sink_errors_total",
			Help: "Total number of failed table writes, by sink",
		},
		[]string{"sink"},
	)
}
