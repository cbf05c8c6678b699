// Copyright 2025 Truthcrawl Contributors
//
// Package pipeline runs the cross-node verification procedure: sample a
// batch's manifest, look up independent observations of each sampled
// URL, compare, and report. The store is read once to build the index and
// then again to load each sampled record and its observations.
package pipeline

import (
	"sort"

	"github.com/RyanDickinsonDev/truthcrawl-sub000/internal/errs"
	"github.com/RyanDickinsonDev/truthcrawl-sub000/pkg/batchchain"
	"github.com/RyanDickinsonDev/truthcrawl-sub000/pkg/compare"
	"github.com/RyanDickinsonDev/truthcrawl-sub000/pkg/sampler"
	"github.com/RyanDickinsonDev/truthcrawl-sub000/pkg/store"
)

// Status classifies one sampled record's verification outcome.
type Status string

const (
	Matched      Status = "MATCHED"
	Mismatched   Status = "MISMATCHED"
	Unverifiable Status = "UNVERIFIABLE"
)

const (
	// DefaultMaxSampleSize is the sample size used when callers don't
	// specify one.
	DefaultMaxSampleSize = 10
	// DefaultMinObservations is the minimum number of independent
	// observations required before a sampled record can be compared.
	DefaultMinObservations = 1
)

// RecordDetail is the per-sampled-record outcome of one pipeline run.
type RecordDetail struct {
	Hash          string
	Status        Status
	ComparedWith  string
	Discrepancies []compare.Discrepancy
}

// AuditReport is the deterministic output of a pipeline run.
type AuditReport struct {
	BatchID        string
	Sampled        int
	Matched        int
	Mismatched     int
	Unverifiable   int
	DisputesFiled  int
	Details        []RecordDetail
	MismatchedHashes []string
}

// Input bundles a pipeline run's parameters.
type Input struct {
	BatchID         string
	Manifest        *batchchain.Manifest
	MerkleRoot      string
	UserSeed        string
	Store           *store.Store
	MaxSampleSize   int
	MinObservations int
}

// Run executes the five-step verification procedure against Input and
// returns a deterministic AuditReport.
func Run(in Input) (*AuditReport, error) {
	maxSample := in.MaxSampleSize
	if maxSample == 0 {
		maxSample = DefaultMaxSampleSize
	}
	minObs := in.MinObservations
	if minObs == 0 {
		minObs = DefaultMinObservations
	}

	sampled, err := sampler.Sample(in.MerkleRoot, in.UserSeed, maxSample, in.Manifest)
	if err != nil {
		return nil, errs.Wrap(err, errs.ValidationError, "sample manifest")
	}

	idx, err := store.BuildIndex(in.Store)
	if err != nil {
		return nil, errs.Wrap(err, errs.IoError, "build index for pipeline run")
	}

	report := &AuditReport{BatchID: in.BatchID}
	for _, hash := range sampled {
		detail, err := evaluate(in.Store, idx, hash, minObs)
		if err != nil {
			return nil, err
		}
		report.Details = append(report.Details, detail)
		switch detail.Status {
		case Matched:
			report.Matched++
		case Mismatched:
			report.Mismatched++
			report.MismatchedHashes = append(report.MismatchedHashes, hash)
		case Unverifiable:
			report.Unverifiable++
		}
	}
	sort.Strings(report.MismatchedHashes)
	report.Sampled = report.Matched + report.Mismatched

	return report, nil
}

func evaluate(s *store.Store, idx *store.Index, hash string, minObs int) (RecordDetail, error) {
	rec, err := s.Load(hash)
	if err != nil {
		return RecordDetail{}, errs.Wrapf(err, errs.IoError, "load sampled record %s", hash)
	}

	candidates := idx.HashesForURL(rec.URL())
	var independent []string
	for _, h := range candidates {
		if h == hash {
			continue
		}
		other, err := s.Load(h)
		if err != nil {
			return RecordDetail{}, errs.Wrapf(err, errs.IoError, "load candidate record %s", h)
		}
		if other.NodeID() != rec.NodeID() {
			independent = append(independent, h)
		}
	}
	sort.Strings(independent)

	if len(independent) < minObs {
		return RecordDetail{Hash: hash, Status: Unverifiable}, nil
	}

	comparisonHash := independent[0]
	other, err := s.Load(comparisonHash)
	if err != nil {
		return RecordDetail{}, errs.Wrapf(err, errs.IoError, "load comparison record %s", comparisonHash)
	}

	result := compare.Compare(rec, other)
	if result.Match {
		return RecordDetail{Hash: hash, Status: Matched, ComparedWith: comparisonHash}, nil
	}
	return RecordDetail{
		Hash:          hash,
		Status:        Mismatched,
		ComparedWith:  comparisonHash,
		Discrepancies: result.Discrepancies,
	}, nil
}
