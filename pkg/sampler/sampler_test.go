// Copyright 2025 Truthcrawl Contributors
package sampler

import (
	"sort"
	"testing"

	"github.com/RyanDickinsonDev/truthcrawl-sub000/internal/hexhash"
	"github.com/RyanDickinsonDev/truthcrawl-sub000/pkg/batchchain"
)

func buildManifest(t *testing.T, n int) *batchchain.Manifest {
	t.Helper()
	hashes := make([]string, n)
	for i := 0; i < n; i++ {
		b := make([]byte, 32)
		b[0] = byte(i)
		b[1] = byte(i >> 8)
		hashes[i] = hexhash.EncodeLower(b)
	}
	m, err := batchchain.NewManifest(hashes)
	if err != nil {
		t.Fatalf("NewManifest: %v", err)
	}
	return m
}

func TestSample_DeterministicForSameInputs(t *testing.T) {
	m := buildManifest(t, 50)
	a, err := Sample("root-a", "seed-1", 10, m)
	if err != nil {
		t.Fatalf("Sample: %v", err)
	}
	b, err := Sample("root-a", "seed-1", 10, m)
	if err != nil {
		t.Fatalf("Sample: %v", err)
	}
	if len(a) != len(b) {
		t.Fatalf("length mismatch")
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("sample %d differs: %q vs %q", i, a[i], b[i])
		}
	}
}

func TestSample_DifferentSeedsDifferentSamples(t *testing.T) {
	m := buildManifest(t, 50)
	a, err := Sample("root-a", "seed-1", 10, m)
	if err != nil {
		t.Fatalf("Sample: %v", err)
	}
	b, err := Sample("root-a", "seed-2", 10, m)
	if err != nil {
		t.Fatalf("Sample: %v", err)
	}
	same := len(a) == len(b)
	if same {
		for i := range a {
			if a[i] != b[i] {
				same = false
				break
			}
		}
	}
	if same {
		t.Fatalf("expected different seeds to (almost certainly) produce different samples")
	}
}

func TestSample_OutputIsSortedAndUnique(t *testing.T) {
	m := buildManifest(t, 30)
	got, err := Sample("root-x", "seed-x", 12, m)
	if err != nil {
		t.Fatalf("Sample: %v", err)
	}
	if !sort.StringsAreSorted(got) {
		t.Fatalf("expected sorted output, got %v", got)
	}
	seen := make(map[string]struct{})
	for _, h := range got {
		if _, ok := seen[h]; ok {
			t.Fatalf("duplicate hash %q in sample", h)
		}
		seen[h] = struct{}{}
	}
}

func TestSample_RequestedLargerThanManifestCapsToManifestSize(t *testing.T) {
	m := buildManifest(t, 5)
	got, err := Sample("root-y", "seed-y", 100, m)
	if err != nil {
		t.Fatalf("Sample: %v", err)
	}
	if len(got) != 5 {
		t.Fatalf("expected capped sample size of 5, got %d", len(got))
	}
}

func TestSample_ZeroRequestedReturnsEmpty(t *testing.T) {
	m := buildManifest(t, 5)
	got, err := Sample("root-z", "seed-z", 0, m)
	if err != nil {
		t.Fatalf("Sample: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty sample, got %v", got)
	}
}

func TestSample_RejectsNegativeRequested(t *testing.T) {
	m := buildManifest(t, 5)
	if _, err := Sample("root-z", "seed-z", -1, m); err == nil {
		t.Fatalf("expected error for negative requested size")
	}
}
