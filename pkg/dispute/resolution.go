// Copyright 2025 Truthcrawl Contributors
package dispute

import (
	"strconv"
	"strings"
	"time"

	"github.com/RyanDickinsonDev/truthcrawl-sub000/internal/canon"
	"github.com/RyanDickinsonDev/truthcrawl-sub000/internal/hexhash"
)

// Outcome is a Resolution's final verdict.
type Outcome string

const (
	Upheld       Outcome = "UPHELD"
	Dismissed    Outcome = "DISMISSED"
	Inconclusive Outcome = "INCONCLUSIVE"
)

// ConsensusFields is the fixed, ordered list of fields evaluated for
// majority consensus, per spec §4.12.
var ConsensusFields = []string{
	"status_code",
	"content_hash",
	"final_url",
	"directive:canonical",
	"directive:robots_meta",
	"directive:robots_header",
}

// FieldConsensus is one field's majority outcome.
type FieldConsensus struct {
	Field         string
	MajorityValue string
	HasMajority   bool
}

// Resolution is the deterministic, canonically-encodable verdict on a
// dispute.
type Resolution struct {
	DisputeID         string
	Outcome           Outcome
	ResolvedAt        time.Time
	ObservationsCount int
	FieldConsensus    []FieldConsensus // in ConsensusFields order
	MajorityNodes     []string         // sorted
	MinorityNodes     []string         // sorted
}

// CanonicalText renders the deterministic hashing input: dispute_id,
// outcome, resolved_at, observations_count, the per-field consensus rows
// in fixed field order, then majority_nodes and minority_nodes.
func (r *Resolution) CanonicalText() []byte {
	w := canon.NewWriter()
	w.Line("dispute_id", r.DisputeID)
	w.Line("outcome", string(r.Outcome))
	w.Line("resolved_at", r.ResolvedAt.UTC().Format(timeLayout))
	w.Line("observations_count", strconv.Itoa(r.ObservationsCount))
	for _, fc := range r.FieldConsensus {
		value := fc.MajorityValue
		if !fc.HasMajority {
			value = ""
		}
		w.Raw("consensus:" + fc.Field + ":" + strconv.FormatBool(fc.HasMajority) + ":" + value)
	}
	w.Line("majority_nodes", strings.Join(r.MajorityNodes, ","))
	w.Line("minority_nodes", strings.Join(r.MinorityNodes, ","))
	return w.Bytes()
}

// Hash returns the SHA-256 of the canonical text.
func (r *Resolution) Hash() [32]byte {
	return hexhash.Sum(r.CanonicalText())
}

// HashHex returns Hash as lowercase hex.
func (r *Resolution) HashHex() string {
	return hexhash.SumHex(r.CanonicalText())
}
