// Copyright 2025 Truthcrawl Contributors
//
// Package vstatus derives and persists a batch's VerificationStatus from
// a pipeline AuditReport, per spec §3/§4.9.
package vstatus

import (
	"strconv"
	"time"

	"github.com/RyanDickinsonDev/truthcrawl-sub000/internal/canon"
	"github.com/RyanDickinsonDev/truthcrawl-sub000/internal/errs"
	"github.com/RyanDickinsonDev/truthcrawl-sub000/internal/hexhash"
	"github.com/RyanDickinsonDev/truthcrawl-sub000/pkg/pipeline"
)

// BatchStatus is the outcome classification for a batch's verification.
type BatchStatus string

const (
	Pending               BatchStatus = "PENDING"
	VerifiedClean         BatchStatus = "VERIFIED_CLEAN"
	VerifiedWithDisputes  BatchStatus = "VERIFIED_WITH_DISPUTES"
	Unverifiable          BatchStatus = "UNVERIFIABLE"
)

// Status is the immutable, canonically-encodable verification outcome of
// one batch. Invariant: Matched + Mismatched == Checked.
type Status struct {
	BatchID      string
	BatchStatus  BatchStatus
	Total        int
	Checked      int
	Matched      int
	Mismatched   int
	Unverifiable int
	CheckedAt    time.Time
}

// FromPipelineResult derives a Status from an AuditReport and a
// wall-clock instant, per the §4.9 decision table.
func FromPipelineResult(report *pipeline.AuditReport, total int, checkedAt time.Time) (*Status, error) {
	checked := report.Matched + report.Mismatched

	var batchStatus BatchStatus
	switch {
	case checked == 0 && report.Unverifiable > 0:
		batchStatus = Unverifiable
	case report.Mismatched > 0:
		batchStatus = VerifiedWithDisputes
	default:
		batchStatus = VerifiedClean
	}

	return New(report.BatchID, batchStatus, total, checked, report.Matched, report.Mismatched, report.Unverifiable, checkedAt)
}

// New validates and constructs a Status, enforcing
// Matched + Mismatched == Checked.
func New(batchID string, batchStatus BatchStatus, total, checked, matched, mismatched, unverifiable int, checkedAt time.Time) (*Status, error) {
	if matched+mismatched != checked {
		return nil, errs.Newf(errs.IllegalInput, "matched (%d) + mismatched (%d) must equal checked (%d)", matched, mismatched, checked)
	}
	switch batchStatus {
	case Pending, VerifiedClean, VerifiedWithDisputes, Unverifiable:
	default:
		return nil, errs.Newf(errs.IllegalInput, "unknown batch_status %q", batchStatus)
	}
	return &Status{
		BatchID:      batchID,
		BatchStatus:  batchStatus,
		Total:        total,
		Checked:      checked,
		Matched:      matched,
		Mismatched:   mismatched,
		Unverifiable: unverifiable,
		CheckedAt:    checkedAt.UTC(),
	}, nil
}

const timeLayout = "2006-01-02T15:04:05Z"

// CanonicalText renders the deterministic hashing input.
func (s *Status) CanonicalText() []byte {
	w := canon.NewWriter()
	w.Line("batch_id", s.BatchID)
	w.Line("batch_status", string(s.BatchStatus))
	w.Line("total", strconv.Itoa(s.Total))
	w.Line("checked", strconv.Itoa(s.Checked))
	w.Line("matched", strconv.Itoa(s.Matched))
	w.Line("mismatched", strconv.Itoa(s.Mismatched))
	w.Line("unverifiable", strconv.Itoa(s.Unverifiable))
	w.Line("checked_at", s.CheckedAt.UTC().Format(timeLayout))
	return w.Bytes()
}

// Hash returns the SHA-256 of CanonicalText -- statusHash.
func (s *Status) Hash() [32]byte {
	return hexhash.Sum(s.CanonicalText())
}

// HashHex returns Hash as lowercase hex.
func (s *Status) HashHex() string {
	return hexhash.SumHex(s.CanonicalText())
}

// Parse parses canonical Status text.
func Parse(data []byte) (*Status, error) {
	lines, err := canon.Lines(data)
	if err != nil {
		return nil, err
	}
	if len(lines) != 8 {
		return nil, errs.Newf(errs.FormatError, "verification status must have exactly 8 lines, got %d", len(lines))
	}

	keys := []string{"batch_id", "batch_status", "total", "checked", "matched", "mismatched", "unverifiable", "checked_at"}
	values := make([]string, len(keys))
	for i, key := range keys {
		k, v, err := canon.SplitKeyValue(lines[i])
		if err != nil {
			return nil, err
		}
		if k != key {
			return nil, errs.Newf(errs.FormatError, "expected %q at line %d, got key %q", key, i+1, k)
		}
		values[i] = v
	}

	total, err := strconv.Atoi(values[2])
	if err != nil {
		return nil, errs.Wrapf(err, errs.FormatError, "parse total %q", values[2])
	}
	checked, err := strconv.Atoi(values[3])
	if err != nil {
		return nil, errs.Wrapf(err, errs.FormatError, "parse checked %q", values[3])
	}
	matched, err := strconv.Atoi(values[4])
	if err != nil {
		return nil, errs.Wrapf(err, errs.FormatError, "parse matched %q", values[4])
	}
	mismatched, err := strconv.Atoi(values[5])
	if err != nil {
		return nil, errs.Wrapf(err, errs.FormatError, "parse mismatched %q", values[5])
	}
	unverifiable, err := strconv.Atoi(values[6])
	if err != nil {
		return nil, errs.Wrapf(err, errs.FormatError, "parse unverifiable %q", values[6])
	}
	checkedAt, err := time.Parse(timeLayout, values[7])
	if err != nil {
		return nil, errs.Wrapf(err, errs.FormatError, "parse checked_at %q", values[7])
	}

	return New(values[0], BatchStatus(values[1]), total, checked, matched, mismatched, unverifiable, checkedAt)
}

// Describe renders a short human-readable description of a status --
// spec-silent, grounded on the teacher's per-status message idiom
// (pkg/batch/status.go).
func Describe(s BatchStatus) string {
	switch s {
	case Pending:
		return "verification has not yet run for this batch"
	case VerifiedClean:
		return "all checked records matched an independent observation"
	case VerifiedWithDisputes:
		return "at least one checked record disagreed with an independent observation"
	case Unverifiable:
		return "no checked records had sufficient independent observations"
	default:
		return "unknown verification status"
	}
}
