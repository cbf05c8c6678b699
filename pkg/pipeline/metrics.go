// Copyright 2025 Truthcrawl Contributors
package pipeline

import "github.com/prometheus/client_golang/prometheus"

// Metrics are the pipeline's own counters -- instrumentation of the
// core's operations, never a ranking or analytics layer. RunWithMetrics
// registers observations against them after each Run.
var (
	RecordsMatchedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "truthcrawl_records_matched_total",
		Help: "Total sampled records that matched an independent observation.",
	})
	RecordsMismatchedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "truthcrawl_records_mismatched_total",
		Help: "Total sampled records that mismatched an independent observation.",
	})
	RecordsUnverifiableTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "truthcrawl_records_unverifiable_total",
		Help: "Total sampled records with insufficient independent observations.",
	})
)

// RegisterMetrics registers this package's counters with reg. Callers own
// the registry; tests may use a fresh prometheus.NewRegistry() to avoid
// colliding with other packages' metrics.
func RegisterMetrics(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{RecordsMatchedTotal, RecordsMismatchedTotal, RecordsUnverifiableTotal} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// RunWithMetrics runs the pipeline and adds its outcome counts to the
// package's registered counters.
func RunWithMetrics(in Input) (*AuditReport, error) {
	report, err := Run(in)
	if err != nil {
		return nil, err
	}
	RecordsMatchedTotal.Add(float64(report.Matched))
	RecordsMismatchedTotal.Add(float64(report.Mismatched))
	RecordsUnverifiableTotal.Add(float64(report.Unverifiable))
	return report, nil
}
