// Copyright 2025 Truthcrawl Contributors
package reputation

import (
	"testing"

	"github.com/RyanDickinsonDev/truthcrawl-sub000/pkg/dispute"
)

func TestCompute_UpheldAndDismissedAffectWinLoss(t *testing.T) {
	resolutions := []*dispute.Resolution{
		{DisputeID: "d1", Outcome: dispute.Upheld, MajorityNodes: []string{"node-b"}, MinorityNodes: []string{"node-a"}},
		{DisputeID: "d2", Outcome: dispute.Dismissed, MajorityNodes: []string{"node-a", "node-c"}, MinorityNodes: []string{"node-d"}},
		{DisputeID: "d3", Outcome: dispute.Inconclusive, MajorityNodes: nil, MinorityNodes: nil},
	}
	challenged := map[string]string{"d1": "node-a", "d2": "node-a"}
	observations := map[string]int{"node-a": 10, "node-b": 5}

	scores := Compute(resolutions, challenged, observations)

	byID := make(map[string]Score)
	for _, s := range scores {
		byID[s.NodeID] = s
	}

	if byID["node-a"].DisputesLost != 1 {
		t.Fatalf("expected node-a to lose dispute d1, got %+v", byID["node-a"])
	}
	if byID["node-a"].DisputesWon != 1 {
		t.Fatalf("expected node-a to win dispute d2 (dismissed, majority), got %+v", byID["node-a"])
	}
	if byID["node-b"].DisputesWon != 1 {
		t.Fatalf("expected node-b to win dispute d1, got %+v", byID["node-b"])
	}
	if byID["node-d"].DisputesLost != 1 {
		t.Fatalf("expected node-d to lose dispute d2, got %+v", byID["node-d"])
	}
	if byID["node-a"].ObservationsTotal != 10 {
		t.Fatalf("expected node-a observations_total 10, got %d", byID["node-a"].ObservationsTotal)
	}
}

func TestCompute_SortedByNodeID(t *testing.T) {
	observations := map[string]int{"node-z": 1, "node-a": 2, "node-m": 3}
	scores := Compute(nil, nil, observations)
	if len(scores) != 3 {
		t.Fatalf("expected 3 scores, got %d", len(scores))
	}
	if scores[0].NodeID != "node-a" || scores[1].NodeID != "node-m" || scores[2].NodeID != "node-z" {
		t.Fatalf("expected sorted output, got %v", scores)
	}
}
