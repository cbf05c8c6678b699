// Copyright 2025 Truthcrawl Contributors
package exchange

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/RyanDickinsonDev/truthcrawl-sub000/pkg/store"
)

// ImportsTotal counts Import outcomes, partitioned by whether the bundle
// validated cleanly.
var ImportsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
	Name: "truthcrawl_imports_total",
	Help: "Total batch bundle imports, labeled by validity.",
}, []string{"valid"})

// RegisterMetrics registers this package's counters with reg.
func RegisterMetrics(reg prometheus.Registerer) error {
	return reg.Register(ImportsTotal)
}

// ImportWithMetrics calls Import and records its outcome on ImportsTotal.
func ImportWithMetrics(bundleDir, publisherPublicKeyB64 string, s *store.Store) (*ImportReceipt, error) {
	receipt, err := Import(bundleDir, publisherPublicKeyB64, s)
	if err != nil {
		return nil, err
	}
	ImportsTotal.WithLabelValues(strconv.FormatBool(receipt.Valid)).Inc()
	return receipt, nil
}
