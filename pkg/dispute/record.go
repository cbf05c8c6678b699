// Copyright 2025 Truthcrawl Contributors
//
// Package dispute implements DisputeRecord, Resolution, and the
// majority-vote Resolver per spec §3/§4.12.
package dispute

import (
	"time"

	"github.com/RyanDickinsonDev/truthcrawl-sub000/internal/canon"
	"github.com/RyanDickinsonDev/truthcrawl-sub000/internal/errs"
	"github.com/RyanDickinsonDev/truthcrawl-sub000/internal/hexhash"
)

const timeLayout = "2006-01-02T15:04:05Z"

// Record is a filed dispute over one challenged observation.
type Record struct {
	DisputeID            string
	ChallengedRecordHash string
	ChallengerRecordHash string
	URL                  string
	FiledAt              time.Time
	ChallengerNodeID     string
	signature            string // stored form only, not canonical
}

// NewRecord validates and constructs an unsigned dispute Record.
func NewRecord(disputeID, challengedHash, challengerHash, url string, filedAt time.Time, challengerNodeID string) (*Record, error) {
	if disputeID == "" {
		return nil, errs.New(errs.IllegalInput, "dispute_id is required")
	}
	if !hexhash.IsValid(challengedHash) {
		return nil, errs.New(errs.IllegalInput, "challenged_record_hash must be 64 lowercase hex characters")
	}
	if !hexhash.IsValid(challengerHash) {
		return nil, errs.New(errs.IllegalInput, "challenger_record_hash must be 64 lowercase hex characters")
	}
	if url == "" {
		return nil, errs.New(errs.IllegalInput, "url is required")
	}
	if filedAt.IsZero() {
		return nil, errs.New(errs.IllegalInput, "filed_at is required")
	}
	if !hexhash.IsValid(challengerNodeID) {
		return nil, errs.New(errs.IllegalInput, "challenger_node_id must be 64 lowercase hex characters")
	}
	return &Record{
		DisputeID:            disputeID,
		ChallengedRecordHash: challengedHash,
		ChallengerRecordHash: challengerHash,
		URL:                  url,
		FiledAt:              filedAt.UTC(),
		ChallengerNodeID:     challengerNodeID,
	}, nil
}

// WithSignature returns a copy of r with its stored signature set.
func (r *Record) WithSignature(signatureB64 string) *Record {
	clone := *r
	clone.signature = signatureB64
	return &clone
}

// Signature returns the stored signature, or "" if unsigned.
func (r *Record) Signature() string { return r.signature }

// CanonicalText renders the deterministic hashing/signing input.
func (r *Record) CanonicalText() []byte {
	w := canon.NewWriter()
	w.Line("dispute_id", r.DisputeID)
	w.Line("challenged_record_hash", r.ChallengedRecordHash)
	w.Line("challenger_record_hash", r.ChallengerRecordHash)
	w.Line("url", r.URL)
	w.Line("filed_at", r.FiledAt.UTC().Format(timeLayout))
	w.Line("challenger_node_id", r.ChallengerNodeID)
	return w.Bytes()
}

// FullText appends the stored (non-canonical) signature line.
func (r *Record) FullText() []byte {
	text := r.CanonicalText()
	return append(text, []byte("challenger_signature:"+r.signature+"\n")...)
}

// Hash returns the SHA-256 of the canonical text.
func (r *Record) Hash() [32]byte {
	return hexhash.Sum(r.CanonicalText())
}

// HashHex returns Hash as lowercase hex.
func (r *Record) HashHex() string {
	return hexhash.SumHex(r.CanonicalText())
}
