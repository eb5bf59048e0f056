// Package metrics exposes pipeline decision counters over Prometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/insightdelivered/statement-normalizer/internal/pipeline"
)

// Metrics holds the collectors for one registry.
type Metrics struct {
	Registry *prometheus.Registry

	runs              prometheus.Counter
	tablesSkipped     prometheus.Counter
	rowsSkipped       *prometheus.CounterVec
	transactions      *prometheus.CounterVec
	duplicatesRemoved prometheus.Counter
}

// New registers the pipeline collectors on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		runs: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "normalizer_runs_total",
			Help: "Completed pipeline runs.",
		}),
		tablesSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "normalizer_tables_skipped_total",
			Help: "Extracted tables dropped as noise.",
		}),
		rowsSkipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "normalizer_rows_skipped_total",
			Help: "Rows dropped during classification, by reason.",
		}, []string{"reason"}),
		transactions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "normalizer_transactions_total",
			Help: "Emitted transactions, by type.",
		}, []string{"type"}),
		duplicatesRemoved: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "normalizer_duplicates_removed_total",
			Help: "Transactions removed by deduplication.",
		}),
	}
	m.Registry.MustRegister(m.runs, m.tablesSkipped, m.rowsSkipped, m.transactions, m.duplicatesRemoved)
	return m
}

// Observe folds one run's counters into the collectors.
func (m *Metrics) Observe(res *pipeline.Result) {
	m.runs.Inc()
	m.tablesSkipped.Add(float64(res.Stats.TablesSkipped))
	for reason, n := range res.Stats.RowsSkipped {
		m.rowsSkipped.WithLabelValues(reason).Add(float64(n))
	}
	for typ, n := range res.Stats.TransactionsByType {
		m.transactions.WithLabelValues(string(typ)).Add(float64(n))
	}
	m.duplicatesRemoved.Add(float64(res.Stats.DuplicatesRemoved))
}
