// Copyright 2025 Truthcrawl Contributors
//
// Package sampler implements deterministic, seeded sampling without
// replacement over a batch manifest: the same (merkle_root, user_seed,
// requested, manifest) always yields the same selection, so any auditor
// can reproduce another auditor's sample.
package sampler

import (
	"crypto/sha256"
	"encoding/binary"
	"sort"

	"github.com/RyanDickinsonDev/truthcrawl-sub000/internal/errs"
	"github.com/RyanDickinsonDev/truthcrawl-sub000/pkg/batchchain"
)

// Sample selects min(requested, manifest.Size()) record hashes from
// manifest, deterministically derived from merkleRoot and userSeed. The
// result is sorted lexicographically.
func Sample(merkleRoot, userSeed string, requested int, manifest *batchchain.Manifest) ([]string, error) {
	if requested < 0 {
		return nil, errs.New(errs.IllegalInput, "requested sample size must not be negative")
	}

	n := manifest.Size()
	want := requested
	if want > n {
		want = n
	}

	hashes := manifest.Hashes()
	if want == 0 {
		return []string{}, nil
	}

	baseSeed := sha256.Sum256(append([]byte(merkleRoot), []byte(userSeed)...))

	selected := make(map[int]struct{}, want)
	var round uint32
	for len(selected) < want {
		roundSeedInput := make([]byte, len(baseSeed)+4)
		copy(roundSeedInput, baseSeed[:])
		binary.BigEndian.PutUint32(roundSeedInput[len(baseSeed):], round)
		roundSeed := sha256.Sum256(roundSeedInput)

		raw := binary.BigEndian.Uint64(roundSeed[:8])
		unsigned := raw &^ (uint64(1) << 63)
		index := int(unsigned % uint64(n))

		if _, ok := selected[index]; !ok {
			selected[index] = struct{}{}
		}
		round++
	}

	out := make([]string, 0, want)
	for idx := range selected {
		out = append(out, hashes[idx])
	}
	sort.Strings(out)
	return out, nil
}
