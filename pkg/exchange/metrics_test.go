// Copyright 2025 Truthcrawl Contributors
package exchange

import (
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/RyanDickinsonDev/truthcrawl-sub000/pkg/signing"
	"github.com/RyanDickinsonDev/truthcrawl-sub000/pkg/store"
)

func TestImportWithMetrics_LabelsValidOutcome(t *testing.T) {
	reg := prometheus.NewRegistry()
	if err := RegisterMetrics(reg); err != nil {
		t.Fatalf("RegisterMetrics: %v", err)
	}

	kp, err := signing.Generate()
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	srcStore := store.New(filepath.Join(t.TempDir(), "src"))
	link, manifest, sig := buildTwoRecordBatch(t, kp, srcStore)
	bundleDir, err := Export(t.TempDir(), link, manifest, sig, srcStore)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}

	dstStore := store.New(filepath.Join(t.TempDir(), "dst"))
	receipt, err := ImportWithMetrics(bundleDir, kp.PublicKey().Base64(), dstStore)
	if err != nil {
		t.Fatalf("ImportWithMetrics: %v", err)
	}
	if !receipt.Valid {
		t.Fatalf("expected valid import, got errors: %v", receipt.Errors)
	}

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}
	var found bool
	for _, f := range families {
		if f.GetName() != "truthcrawl_imports_total" {
			continue
		}
		for _, m := range f.GetMetric() {
			for _, l := range m.GetLabel() {
				if l.GetName() == "valid" && l.GetValue() == "true" {
					found = true
				}
			}
		}
	}
	if !found {
		t.Fatalf("expected truthcrawl_imports_total{valid=true} to be recorded")
	}
}
