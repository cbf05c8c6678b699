// Copyright 2025 Truthcrawl Contributors
package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/RyanDickinsonDev/truthcrawl-sub000/pkg/recordmodel"
)

func newTestRecord(t *testing.T, url, nodeID string) *recordmodel.ObservationRecord {
	t.Helper()
	rec, err := recordmodel.New(recordmodel.Config{
		Version:     "1",
		ObservedAt:  time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		URL:         url,
		FinalURL:    url,
		StatusCode:  200,
		FetchMS:     10,
		ContentHash: "ab00000000000000000000000000000000000000000000000000000000000001",
		NodeID:      nodeID,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return rec.WithSignature("c2ln")
}

func TestPut_IsIdempotentAndLoadRoundTrips(t *testing.T) {
	dir := t.TempDir()
	s := New(filepath.Join(dir, "store"))
	rec := newTestRecord(t, "https://example.com/a", "111111111111111111111111111111111111111111111111111111111111001a")

	if err := s.Put(rec); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := s.Put(rec); err != nil {
		t.Fatalf("second Put should be a no-op, got: %v", err)
	}
	if !s.Contains(rec.HashHex()) {
		t.Fatalf("expected store to contain %s", rec.HashHex())
	}

	loaded, err := s.Load(rec.HashHex())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.HashHex() != rec.HashHex() {
		t.Fatalf("loaded record hash mismatch")
	}
}

func TestLoad_NotFound(t *testing.T) {
	s := New(t.TempDir())
	zero := "000000000000000000000000000000000000000000000000000000000000000a"
	if _, err := s.Load(zero); err == nil {
		t.Fatalf("expected not-found error")
	}
}

func TestBuildIndex_GroupsByURLAndNode(t *testing.T) {
	s := New(t.TempDir())
	r1 := newTestRecord(t, "https://example.com/a", "111111111111111111111111111111111111111111111111111111111111001a")
	r2 := newTestRecord(t, "https://example.com/a", "222222222222222222222222222222222222222222222222222222222222002b")

	if err := s.Put(r1); err != nil {
		t.Fatalf("Put r1: %v", err)
	}
	if err := s.Put(r2); err != nil {
		t.Fatalf("Put r2: %v", err)
	}

	idx, err := BuildIndex(s)
	if err != nil {
		t.Fatalf("BuildIndex: %v", err)
	}
	hashes := idx.HashesForURL("https://example.com/a")
	if len(hashes) != 2 {
		t.Fatalf("expected 2 hashes for url, got %d: %v", len(hashes), hashes)
	}
	if len(idx.HashesForNode(r1.NodeID())) != 1 {
		t.Fatalf("expected 1 hash for node %s", r1.NodeID())
	}
}

func TestBuildIndex_EmptyStoreRoot(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "does-not-exist"))
	idx, err := BuildIndex(s)
	if err != nil {
		t.Fatalf("BuildIndex on missing root: %v", err)
	}
	if len(idx.ByURL) != 0 || len(idx.ByNodeID) != 0 {
		t.Fatalf("expected empty index")
	}
}
