// Copyright 2025 Truthcrawl Contributors
//
// BatchChain: an ordered, genesis-anchored sequence of chain links.
package batchchain

import "github.com/RyanDickinsonDev/truthcrawl-sub000/internal/errs"

// Chain is an ordered sequence of ChainLinks, genesis first.
type Chain struct {
	Links []*ChainLink
}

// NewChain validates link continuity and constructs a Chain:
// links[0].PreviousRoot must be the genesis constant, and every
// subsequent link's PreviousRoot must equal the prior link's MerkleRoot.
func NewChain(links []*ChainLink) (*Chain, error) {
	if len(links) == 0 {
		return nil, errs.New(errs.IllegalInput, "chain must contain at least one link")
	}
	if links[0].PreviousRoot != GenesisRoot {
		return nil, errs.Newf(errs.ValidationError, "first chain link must reference the genesis root, got %q", links[0].PreviousRoot)
	}
	for i := 1; i < len(links); i++ {
		if links[i].PreviousRoot != links[i-1].MerkleRoot {
			return nil, errs.Newf(errs.ValidationError,
				"link %d previous_root %q does not match link %d merkle_root %q",
				i, links[i].PreviousRoot, i-1, links[i-1].MerkleRoot)
		}
	}
	return &Chain{Links: links}, nil
}

// Head returns the most recently appended link.
func (c *Chain) Head() *ChainLink {
	return c.Links[len(c.Links)-1]
}

// Append validates that next continues the chain and returns a new
// Chain with it appended; c is left unmodified.
func (c *Chain) Append(next *ChainLink) (*Chain, error) {
	if next.PreviousRoot != c.Head().MerkleRoot {
		return nil, errs.Newf(errs.ValidationError,
			"next link previous_root %q does not match chain head merkle_root %q",
			next.PreviousRoot, c.Head().MerkleRoot)
	}
	links := make([]*ChainLink, len(c.Links)+1)
	copy(links, c.Links)
	links[len(c.Links)] = next
	return &Chain{Links: links}, nil
}
