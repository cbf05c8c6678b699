// Copyright 2025 Truthcrawl Contributors
//
// ChainLink: a batch's metadata plus a back-reference to the previous
// batch's Merkle root, signed by the publisher. Per spec §3/§4.3.
package batchchain

import (
	"strconv"

	"github.com/RyanDickinsonDev/truthcrawl-sub000/internal/canon"
	"github.com/RyanDickinsonDev/truthcrawl-sub000/internal/errs"
	"github.com/RyanDickinsonDev/truthcrawl-sub000/internal/hexhash"
	"github.com/RyanDickinsonDev/truthcrawl-sub000/pkg/signing"
)

// GenesisRoot is the 64-zero sentinel identifying the first link of a
// chain.
var GenesisRoot = hexhash.Zero

// ChainLink is the immutable unit of a BatchChain.
type ChainLink struct {
	BatchID      string
	MerkleRoot   string
	ManifestHash string
	RecordCount  int
	PreviousRoot string
}

// NewChainLink validates and constructs a ChainLink.
func NewChainLink(batchID, merkleRoot, manifestHash string, recordCount int, previousRoot string) (*ChainLink, error) {
	meta, err := NewMetadata(batchID, merkleRoot, manifestHash, recordCount)
	if err != nil {
		return nil, err
	}
	if !hexhash.IsValid(previousRoot) {
		return nil, errs.New(errs.IllegalInput, "previous_root must be 64 lowercase hex characters")
	}
	return &ChainLink{
		BatchID:      meta.BatchID,
		MerkleRoot:   meta.MerkleRoot,
		ManifestHash: meta.ManifestHash,
		RecordCount:  meta.RecordCount,
		PreviousRoot: previousRoot,
	}, nil
}

// Metadata returns the derived, back-reference-free view of this link.
func (c *ChainLink) Metadata() *Metadata {
	return &Metadata{
		BatchID:      c.BatchID,
		MerkleRoot:   c.MerkleRoot,
		ManifestHash: c.ManifestHash,
		RecordCount:  c.RecordCount,
	}
}

// CanonicalText renders batch_id, merkle_root, manifest_hash,
// record_count, previous_root in that fixed order.
func (c *ChainLink) CanonicalText() []byte {
	w := canon.NewWriter()
	w.Line("batch_id", c.BatchID)
	w.Line("merkle_root", c.MerkleRoot)
	w.Line("manifest_hash", c.ManifestHash)
	w.Line("record_count", strconv.Itoa(c.RecordCount))
	w.Line("previous_root", c.PreviousRoot)
	return w.Bytes()
}

// SigningInput returns the chain-link domain-separated signing input.
func (c *ChainLink) SigningInput() []byte {
	return signing.BuildInput(signing.DomainChainLink,
		c.BatchID, c.MerkleRoot, c.ManifestHash, strconv.Itoa(c.RecordCount), c.PreviousRoot)
}

// ParseChainLink parses canonical ChainLink text.
func ParseChainLink(data []byte) (*ChainLink, error) {
	lines, err := canon.Lines(data)
	if err != nil {
		return nil, err
	}
	if len(lines) != 5 {
		return nil, errs.Newf(errs.FormatError, "chain link must have exactly 5 lines, got %d", len(lines))
	}

	fields, err := expectKeys(lines, []string{"batch_id", "merkle_root", "manifest_hash", "record_count", "previous_root"})
	if err != nil {
		return nil, err
	}

	recordCount, err := strconv.Atoi(fields[3])
	if err != nil {
		return nil, errs.Wrapf(err, errs.FormatError, "parse record_count %q", fields[3])
	}

	return NewChainLink(fields[0], fields[1], fields[2], recordCount, fields[4])
}
