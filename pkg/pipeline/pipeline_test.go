// Copyright 2025 Truthcrawl Contributors
package pipeline

import (
	"testing"
	"time"

	"github.com/RyanDickinsonDev/truthcrawl-sub000/internal/hexhash"
	"github.com/RyanDickinsonDev/truthcrawl-sub000/pkg/batchchain"
	"github.com/RyanDickinsonDev/truthcrawl-sub000/pkg/recordmodel"
	"github.com/RyanDickinsonDev/truthcrawl-sub000/pkg/store"
)

func putRecord(t *testing.T, s *store.Store, url, nodeID string, statusCode int) *recordmodel.ObservationRecord {
	t.Helper()
	rec, err := recordmodel.New(recordmodel.Config{
		Version:     "1",
		ObservedAt:  time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		URL:         url,
		FinalURL:    url,
		StatusCode:  statusCode,
		FetchMS:     10,
		ContentHash: "ab00000000000000000000000000000000000000000000000000000000000001",
		NodeID:      nodeID,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	rec = rec.WithSignature("c2ln")
	if err := s.Put(rec); err != nil {
		t.Fatalf("Put: %v", err)
	}
	return rec
}

func TestRun_MatchedWhenIndependentObservationAgrees(t *testing.T) {
	s := store.New(t.TempDir())
	a := putRecord(t, s, "https://example.com/x", "111111111111111111111111111111111111111111111111111111111111001a", 200)
	putRecord(t, s, "https://example.com/x", "222222222222222222222222222222222222222222222222222222222222002b", 200)

	manifest, err := batchchain.NewManifest([]string{a.HashHex()})
	if err != nil {
		t.Fatalf("NewManifest: %v", err)
	}
	root, err := manifest.MerkleRootHex()
	if err != nil {
		t.Fatalf("MerkleRootHex: %v", err)
	}

	report, err := Run(Input{
		BatchID:    "2026-01-01",
		Manifest:   manifest,
		MerkleRoot: root,
		UserSeed:   "auditor-1",
		Store:      s,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if report.Matched != 1 || report.Mismatched != 0 {
		t.Fatalf("expected 1 matched, got matched=%d mismatched=%d details=%v", report.Matched, report.Mismatched, report.Details)
	}
}

func TestRun_MismatchedWhenIndependentObservationDisagrees(t *testing.T) {
	s := store.New(t.TempDir())
	a := putRecord(t, s, "https://example.com/y", "111111111111111111111111111111111111111111111111111111111111001a", 200)
	putRecord(t, s, "https://example.com/y", "222222222222222222222222222222222222222222222222222222222222002b", 500)

	manifest, err := batchchain.NewManifest([]string{a.HashHex()})
	if err != nil {
		t.Fatalf("NewManifest: %v", err)
	}
	root, err := manifest.MerkleRootHex()
	if err != nil {
		t.Fatalf("MerkleRootHex: %v", err)
	}

	report, err := Run(Input{
		BatchID:    "2026-01-01",
		Manifest:   manifest,
		MerkleRoot: root,
		UserSeed:   "auditor-1",
		Store:      s,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if report.Mismatched != 1 {
		t.Fatalf("expected 1 mismatched, got %d details=%v", report.Mismatched, report.Details)
	}
	if len(report.MismatchedHashes) != 1 || report.MismatchedHashes[0] != a.HashHex() {
		t.Fatalf("expected mismatched hash list to contain sampled hash, got %v", report.MismatchedHashes)
	}
}

func TestRun_UnverifiableWhenNoIndependentObservation(t *testing.T) {
	s := store.New(t.TempDir())
	a := putRecord(t, s, "https://example.com/z", "111111111111111111111111111111111111111111111111111111111111001a", 200)

	manifest, err := batchchain.NewManifest([]string{a.HashHex()})
	if err != nil {
		t.Fatalf("NewManifest: %v", err)
	}
	root, err := manifest.MerkleRootHex()
	if err != nil {
		t.Fatalf("MerkleRootHex: %v", err)
	}

	report, err := Run(Input{
		BatchID:    "2026-01-01",
		Manifest:   manifest,
		MerkleRoot: root,
		UserSeed:   "auditor-1",
		Store:      s,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if report.Unverifiable != 1 || report.Sampled != 0 {
		t.Fatalf("expected unverifiable=1 sampled=0, got unverifiable=%d sampled=%d", report.Unverifiable, report.Sampled)
	}
}

func TestRun_DeterministicAcrossRuns(t *testing.T) {
	s := store.New(t.TempDir())
	var hashes []string
	for i := 0; i < 5; i++ {
		nodeID := make([]byte, 32)
		nodeID[0] = byte(i)
		r := putRecord(t, s, "https://example.com/multi", hexhash.EncodeLower(nodeID), 200)
		hashes = append(hashes, r.HashHex())
	}
	manifest, err := batchchain.NewManifest(hashes)
	if err != nil {
		t.Fatalf("NewManifest: %v", err)
	}
	root, err := manifest.MerkleRootHex()
	if err != nil {
		t.Fatalf("MerkleRootHex: %v", err)
	}

	in := Input{BatchID: "2026-01-01", Manifest: manifest, MerkleRoot: root, UserSeed: "auditor-x", MaxSampleSize: 3, Store: s}
	first, err := Run(in)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	second, err := Run(in)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(first.Details) != len(second.Details) {
		t.Fatalf("expected identical detail count across runs")
	}
	for i := range first.Details {
		if first.Details[i].Hash != second.Details[i].Hash || first.Details[i].Status != second.Details[i].Status {
			t.Fatalf("run %d detail differs: %+v vs %+v", i, first.Details[i], second.Details[i])
		}
	}
}
