// Copyright 2025 Truthcrawl Contributors
//
// BatchManifest: the sorted, deduplicated set of record hashes in a
// batch, per spec §3.
package batchchain

import (
	"sort"

	"github.com/RyanDickinsonDev/truthcrawl-sub000/internal/canon"
	"github.com/RyanDickinsonDev/truthcrawl-sub000/internal/errs"
	"github.com/RyanDickinsonDev/truthcrawl-sub000/internal/hexhash"
	"github.com/RyanDickinsonDev/truthcrawl-sub000/pkg/merkle"
)

// Manifest is an immutable, non-empty, lexicographically sorted,
// deduplicated sequence of 64-hex record hashes.
type Manifest struct {
	hashes []string
}

// NewManifest validates and sorts hashes into a Manifest. Duplicates are
// removed; an empty result is rejected.
func NewManifest(hashes []string) (*Manifest, error) {
	if len(hashes) == 0 {
		return nil, errs.New(errs.IllegalInput, "manifest must contain at least one record hash")
	}

	seen := make(map[string]struct{}, len(hashes))
	out := make([]string, 0, len(hashes))
	for _, h := range hashes {
		if !hexhash.IsValid(h) {
			return nil, errs.Newf(errs.IllegalInput, "manifest entry %q is not a valid 64-hex hash", h)
		}
		if _, ok := seen[h]; ok {
			continue
		}
		seen[h] = struct{}{}
		out = append(out, h)
	}
	sort.Strings(out)

	return &Manifest{hashes: out}, nil
}

// Hashes returns the manifest's sorted, deduplicated hash list.
func (m *Manifest) Hashes() []string {
	out := make([]string, len(m.hashes))
	copy(out, m.hashes)
	return out
}

// Size returns the number of record hashes in the manifest.
func (m *Manifest) Size() int {
	return len(m.hashes)
}

// Contains reports whether hash is present in the manifest.
func (m *Manifest) Contains(hash string) bool {
	i := sort.SearchStrings(m.hashes, hash)
	return i < len(m.hashes) && m.hashes[i] == hash
}

// CanonicalText renders one hash per line, in sorted order.
func (m *Manifest) CanonicalText() []byte {
	w := canon.NewWriter()
	for _, h := range m.hashes {
		w.Raw(h)
	}
	return w.Bytes()
}

// Hash returns the SHA-256 of the manifest's canonical text.
func (m *Manifest) Hash() [32]byte {
	return hexhash.Sum(m.CanonicalText())
}

// HashHex returns Hash as lowercase hex -- manifest_hash.
func (m *Manifest) HashHex() string {
	return hexhash.SumHex(m.CanonicalText())
}

// MerkleRoot builds a Merkle tree over the manifest's hashes (decoded to
// raw bytes, not re-hashed) and returns its root.
func (m *Manifest) MerkleRoot() ([32]byte, error) {
	leaves := make([][32]byte, len(m.hashes))
	for i, h := range m.hashes {
		raw, err := hexhash.Decode(h)
		if err != nil {
			return [32]byte{}, err
		}
		copy(leaves[i][:], raw)
	}
	tree, err := merkle.Build(leaves)
	if err != nil {
		return [32]byte{}, err
	}
	return tree.Root(), nil
}

// MerkleRootHex returns MerkleRoot as lowercase hex.
func (m *Manifest) MerkleRootHex() (string, error) {
	root, err := m.MerkleRoot()
	if err != nil {
		return "", err
	}
	return hexhash.EncodeLower(root[:]), nil
}

// ParseManifest parses one-hash-per-line canonical text into a Manifest,
// rejecting unsorted, duplicate, or malformed entries.
func ParseManifest(data []byte) (*Manifest, error) {
	lines, err := canon.Lines(data)
	if err != nil {
		return nil, err
	}

	last := ""
	for i, line := range lines {
		if !hexhash.IsValid(line) {
			return nil, errs.Newf(errs.FormatError, "manifest line %d is not a valid 64-hex hash", i)
		}
		if i > 0 && line <= last {
			return nil, errs.Newf(errs.FormatError, "manifest entries must be sorted and unique, got %q after %q", line, last)
		}
		last = line
	}

	return NewManifest(lines)
}
