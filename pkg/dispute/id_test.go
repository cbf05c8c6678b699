// Copyright 2025 Truthcrawl Contributors
package dispute

import "testing"

func TestNewDisputeID_ProducesDistinctValues(t *testing.T) {
	a := NewDisputeID()
	b := NewDisputeID()
	if a == "" || b == "" {
		t.Fatalf("expected non-empty dispute IDs")
	}
	if a == b {
		t.Fatalf("expected distinct dispute IDs across calls")
	}
}
