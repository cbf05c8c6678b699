// Copyright 2025 Truthcrawl Contributors
package compare

import (
	"testing"
	"time"

	"github.com/RyanDickinsonDev/truthcrawl-sub000/pkg/recordmodel"
)

func rec(t *testing.T, cfg recordmodel.Config) *recordmodel.ObservationRecord {
	t.Helper()
	if cfg.Version == "" {
		cfg.Version = "1"
	}
	if cfg.ObservedAt.IsZero() {
		cfg.ObservedAt = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	}
	if cfg.ContentHash == "" {
		cfg.ContentHash = "ab00000000000000000000000000000000000000000000000000000000000001"
	}
	if cfg.NodeID == "" {
		cfg.NodeID = "cd00000000000000000000000000000000000000000000000000000000000002"
	}
	if cfg.URL == "" {
		cfg.URL = "https://example.com"
	}
	if cfg.FinalURL == "" {
		cfg.FinalURL = cfg.URL
	}
	r, err := recordmodel.New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return r
}

func TestCompare_MatchIgnoresExcludedFields(t *testing.T) {
	a := rec(t, recordmodel.Config{StatusCode: 200, FetchMS: 5, NodeID: "aa0000000000000000000000000000000000000000000000000000000000000a"})
	b := rec(t, recordmodel.Config{StatusCode: 200, FetchMS: 999, NodeID: "bb0000000000000000000000000000000000000000000000000000000000000b"})

	result := Compare(a, b)
	if !result.Match {
		t.Fatalf("expected match ignoring fetch_ms/node_id, got discrepancies: %v", result.Discrepancies)
	}
}

func TestCompare_DetectsMismatch(t *testing.T) {
	a := rec(t, recordmodel.Config{StatusCode: 200})
	b := rec(t, recordmodel.Config{StatusCode: 404})

	result := Compare(a, b)
	if result.Match {
		t.Fatalf("expected mismatch")
	}
	if len(result.Discrepancies) != 1 || result.Discrepancies[0].Field != "status_code" {
		t.Fatalf("expected single status_code discrepancy, got %v", result.Discrepancies)
	}
}

func TestCompare_DetectsLinkListDifference(t *testing.T) {
	a := rec(t, recordmodel.Config{Links: []string{"https://a.example", "https://b.example"}})
	b := rec(t, recordmodel.Config{Links: []string{"https://a.example"}})

	result := Compare(a, b)
	if result.Match {
		t.Fatalf("expected mismatch on outbound_links")
	}
	found := false
	for _, d := range result.Discrepancies {
		if d.Field == "outbound_links" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected outbound_links discrepancy, got %v", result.Discrepancies)
	}
}
