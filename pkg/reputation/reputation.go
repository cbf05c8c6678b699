// Copyright 2025 Truthcrawl Contributors
//
// Package reputation computes per-node dispute win/loss and observation
// counts, a pure deterministic function of its inputs, per spec §4.13.
package reputation

import (
	"sort"

	"github.com/RyanDickinsonDev/truthcrawl-sub000/pkg/dispute"
)

// Score is one node's reputation summary.
type Score struct {
	NodeID            string
	DisputesWon       int
	DisputesLost      int
	ObservationsTotal int
}

// Compute derives a sorted-by-node_id reputation Score list from a set of
// resolutions and an externally supplied observation-count map.
// INCONCLUSIVE resolutions do not affect win/loss counts. When a dispute
// is UPHELD, the challenged node loses and every other node in
// MajorityNodes wins; when it is DISMISSED, the challenged node wins and
// every node in MinorityNodes loses.
func Compute(resolutions []*dispute.Resolution, challengedNodeByDispute map[string]string, observationsTotal map[string]int) []Score {
	scores := make(map[string]*Score)

	get := func(nodeID string) *Score {
		s, ok := scores[nodeID]
		if !ok {
			s = &Score{NodeID: nodeID}
			scores[nodeID] = s
		}
		return s
	}

	for _, r := range resolutions {
		if r.Outcome == dispute.Inconclusive {
			continue
		}
		challenged := challengedNodeByDispute[r.DisputeID]

		switch r.Outcome {
		case dispute.Upheld:
			// The challenged node loses; every majority node (the
			// nodes the challenge was upheld against the minority on)
			// wins.
			get(challenged).DisputesLost++
			for _, nodeID := range r.MajorityNodes {
				if nodeID == challenged {
					continue
				}
				get(nodeID).DisputesWon++
			}
		case dispute.Dismissed:
			// The challenged node wins by being vindicated in the
			// majority; minority nodes lose.
			get(challenged).DisputesWon++
			for _, nodeID := range r.MinorityNodes {
				get(nodeID).DisputesLost++
			}
		}
	}

	for nodeID, count := range observationsTotal {
		get(nodeID).ObservationsTotal = count
	}

	out := make([]Score, 0, len(scores))
	for _, s := range scores {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].NodeID < out[j].NodeID })
	return out
}
