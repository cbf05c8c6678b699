// Copyright 2025 Truthcrawl Contributors
package dispute

import "github.com/google/uuid"

// NewDisputeID generates a fresh dispute identifier. The CLI's
// `dispute file` command is the normal caller; NewRecord accepts any
// non-empty string, so tests and replayed bundles can still supply
// their own fixed IDs.
func NewDisputeID() string {
	return uuid.New().String()
}
