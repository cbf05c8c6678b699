// Copyright 2025 Truthcrawl Contributors
package verifychain

import (
	"github.com/RyanDickinsonDev/truthcrawl-sub000/internal/errs"
	"github.com/RyanDickinsonDev/truthcrawl-sub000/pkg/batchchain"
)

// ChainInput bundles the per-link material ChainVerifier needs: the link
// itself, its manifest, its publisher signature, and the signing public
// key of the node that published it.
type ChainInput struct {
	Link                  *batchchain.ChainLink
	Manifest              *batchchain.Manifest
	SignatureB64          string
	PublisherPublicKeyB64 string
}

// VerifyChain checks genesis anchoring, link-to-link continuity, and each
// link's recomputation and signature. Every link is always checked; a
// failure on one link does not stop verification of the rest. An empty
// input is a usage error and fails fast rather than accumulating.
func VerifyChain(inputs []ChainInput) (*Result, error) {
	if len(inputs) == 0 {
		return nil, errs.New(errs.IllegalInput, "chain verification requires at least one link")
	}

	r := newResult()

	if inputs[0].Link.PreviousRoot != batchchain.GenesisRoot {
		r.fail("link 0 (%s) does not reference the genesis root, got %q", inputs[0].Link.BatchID, inputs[0].Link.PreviousRoot)
	}
	for i := 1; i < len(inputs); i++ {
		prev, cur := inputs[i-1].Link, inputs[i].Link
		if cur.PreviousRoot != prev.MerkleRoot {
			r.fail("link %d (%s) previous_root %q does not match link %d (%s) merkle_root %q",
				i, cur.BatchID, cur.PreviousRoot, i-1, prev.BatchID, prev.MerkleRoot)
		}
	}

	for i, in := range inputs {
		linkResult := VerifyChainLink(in.Link, in.Manifest, in.SignatureB64, in.PublisherPublicKeyB64)
		for _, e := range linkResult.Errors {
			r.fail("link %d (%s): %s", i, in.Link.BatchID, e)
		}
	}

	return r, nil
}
