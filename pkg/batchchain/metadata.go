// Copyright 2025 Truthcrawl Contributors
//
// BatchMetadata: a derived view of a chain link without its
// back-reference, per spec §3.
package batchchain

import (
	"regexp"
	"strconv"

	"github.com/RyanDickinsonDev/truthcrawl-sub000/internal/canon"
	"github.com/RyanDickinsonDev/truthcrawl-sub000/internal/errs"
	"github.com/RyanDickinsonDev/truthcrawl-sub000/internal/hexhash"
	"github.com/RyanDickinsonDev/truthcrawl-sub000/pkg/signing"
)

var batchIDPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Metadata is the immutable, derived batch summary: batch_id,
// merkle_root, manifest_hash, record_count.
type Metadata struct {
	BatchID      string
	MerkleRoot   string
	ManifestHash string
	RecordCount  int
}

// NewMetadata validates and constructs Metadata.
func NewMetadata(batchID, merkleRoot, manifestHash string, recordCount int) (*Metadata, error) {
	if !batchIDPattern.MatchString(batchID) {
		return nil, errs.Newf(errs.IllegalInput, "batch_id must be YYYY-MM-DD, got %q", batchID)
	}
	if !hexhash.IsValid(merkleRoot) {
		return nil, errs.New(errs.IllegalInput, "merkle_root must be 64 lowercase hex characters")
	}
	if !hexhash.IsValid(manifestHash) {
		return nil, errs.New(errs.IllegalInput, "manifest_hash must be 64 lowercase hex characters")
	}
	if recordCount < 1 {
		return nil, errs.New(errs.IllegalInput, "record_count must be at least 1")
	}
	return &Metadata{
		BatchID:      batchID,
		MerkleRoot:   merkleRoot,
		ManifestHash: manifestHash,
		RecordCount:  recordCount,
	}, nil
}

// CanonicalText renders batch_id, merkle_root, manifest_hash,
// record_count in that fixed order.
func (m *Metadata) CanonicalText() []byte {
	w := canon.NewWriter()
	w.Line("batch_id", m.BatchID)
	w.Line("merkle_root", m.MerkleRoot)
	w.Line("manifest_hash", m.ManifestHash)
	w.Line("record_count", strconv.Itoa(m.RecordCount))
	return w.Bytes()
}

// SigningInput returns the batch-metadata domain-separated signing
// input per spec §4.3 (omits previous_root).
func (m *Metadata) SigningInput() []byte {
	return signing.BuildInput(signing.DomainBatchMetadata,
		m.BatchID, m.MerkleRoot, m.ManifestHash, strconv.Itoa(m.RecordCount))
}

// ParseMetadata parses canonical BatchMetadata text.
func ParseMetadata(data []byte) (*Metadata, error) {
	lines, err := canon.Lines(data)
	if err != nil {
		return nil, err
	}
	if len(lines) != 4 {
		return nil, errs.Newf(errs.FormatError, "batch metadata must have exactly 4 lines, got %d", len(lines))
	}

	fields, err := expectKeys(lines, []string{"batch_id", "merkle_root", "manifest_hash", "record_count"})
	if err != nil {
		return nil, err
	}

	recordCount, err := strconv.Atoi(fields[3])
	if err != nil {
		return nil, errs.Wrapf(err, errs.FormatError, "parse record_count %q", fields[3])
	}

	return NewMetadata(fields[0], fields[1], fields[2], recordCount)
}

func expectKeys(lines []string, keys []string) ([]string, error) {
	values := make([]string, len(keys))
	for i, key := range keys {
		k, v, err := canon.SplitKeyValue(lines[i])
		if err != nil {
			return nil, err
		}
		if k != key {
			return nil, errs.Newf(errs.FormatError, "expected %q at line %d, got key %q", key, i+1, k)
		}
		values[i] = v
	}
	return values, nil
}
