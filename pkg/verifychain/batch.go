// Copyright 2025 Truthcrawl Contributors
//
// BatchVerifier recomputes manifest_hash, merkle_root, and record_count
// from a manifest and checks the publisher signature over the signing
// input. Every check always runs -- callers see every failure, the way
// pkg/verification.UnifiedVerifier accumulates Errors instead of
// short-circuiting on the first mismatch.
package verifychain

import (
	"fmt"

	"github.com/RyanDickinsonDev/truthcrawl-sub000/pkg/batchchain"
	"github.com/RyanDickinsonDev/truthcrawl-sub000/pkg/signing"
)

// Result is the accumulator every verifier in this package returns:
// Valid reflects whether Errors is empty, and Errors always lists every
// failure found, never just the first.
type Result struct {
	Valid  bool
	Errors []string
}

func newResult() *Result {
	return &Result{Valid: true}
}

func (r *Result) fail(format string, args ...any) {
	r.Valid = false
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// verifyRecomputation checks manifest_hash, merkle_root, and record_count
// against a recomputation from manifest; shared by VerifyBatchMetadata and
// VerifyChainLink.
func verifyRecomputation(r *Result, meta *batchchain.Metadata, manifest *batchchain.Manifest) {
	wantManifestHash := manifest.HashHex()
	if meta.ManifestHash != wantManifestHash {
		r.fail("manifest_hash mismatch: metadata has %q, recomputed %q", meta.ManifestHash, wantManifestHash)
	}

	wantRoot, err := manifest.MerkleRootHex()
	if err != nil {
		r.fail("failed to recompute merkle_root: %v", err)
	} else if meta.MerkleRoot != wantRoot {
		r.fail("merkle_root mismatch: metadata has %q, recomputed %q", meta.MerkleRoot, wantRoot)
	}

	if meta.RecordCount != manifest.Size() {
		r.fail("record_count mismatch: metadata has %d, manifest has %d", meta.RecordCount, manifest.Size())
	}
}

// VerifyBatchMetadata recomputes manifest_hash, merkle_root, and
// record_count from manifest and checks the publisher signature over
// meta's signing input.
func VerifyBatchMetadata(meta *batchchain.Metadata, manifest *batchchain.Manifest, signatureB64, publisherPublicKeyB64 string) *Result {
	r := newResult()
	verifyRecomputation(r, meta, manifest)

	if !signing.Verify(publisherPublicKeyB64, meta.SigningInput(), signatureB64) {
		r.fail("publisher signature over batch metadata is invalid")
	}

	return r
}

// VerifyChainLink performs the same recomputation as VerifyBatchMetadata
// against a ChainLink's embedded metadata, plus a signature check over
// the chain-link signing input (which additionally covers previous_root).
func VerifyChainLink(link *batchchain.ChainLink, manifest *batchchain.Manifest, signatureB64, publisherPublicKeyB64 string) *Result {
	r := newResult()
	verifyRecomputation(r, link.Metadata(), manifest)

	if !signing.Verify(publisherPublicKeyB64, link.SigningInput(), signatureB64) {
		r.fail("publisher signature over chain link is invalid")
	}

	return r
}
