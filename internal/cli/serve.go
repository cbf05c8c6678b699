// Copyright 2025 Truthcrawl Contributors
package cli

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/RyanDickinsonDev/truthcrawl-sub000/internal/errs"
	"github.com/RyanDickinsonDev/truthcrawl-sub000/pkg/exchange"
	"github.com/RyanDickinsonDev/truthcrawl-sub000/pkg/pipeline"
)

var serveMetricsAddr string

var serveMetricsCmd = &cobra.Command{
	Use:   "serve-metrics",
	Short: "Serve the pipeline and exchange counters on a Prometheus scrape endpoint",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr := serveMetricsAddr
		if addr == "" {
			addr = loadConfig().MetricsAddr
		}
		if addr == "" {
			return errs.New(errs.IllegalInput, "no metrics address configured: pass --addr or set TRUTHCRAWL_METRICS_ADDR")
		}

		reg := prometheus.NewRegistry()
		if err := pipeline.RegisterMetrics(reg); err != nil {
			return errs.Wrap(err, errs.ValidationError, "register pipeline metrics")
		}
		if err := exchange.RegisterMetrics(reg); err != nil {
			return errs.Wrap(err, errs.ValidationError, "register exchange metrics")
		}

		http.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		fmt.Printf("serving metrics on %s/metrics\n", addr)
		return http.ListenAndServe(addr, nil)
	},
}

func init() {
	serveMetricsCmd.Flags().StringVar(&serveMetricsAddr, "addr", "", "address to serve /metrics on (defaults to $TRUTHCRAWL_METRICS_ADDR)")
}

// RegisterServe adds the metrics-serving command to the root CLI.
func RegisterServe(root *cobra.Command) { root.AddCommand(serveMetricsCmd) }
