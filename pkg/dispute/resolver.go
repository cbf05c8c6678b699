// Copyright 2025 Truthcrawl Contributors
package dispute

import (
	"sort"
	"strconv"
	"time"

	"github.com/RyanDickinsonDev/truthcrawl-sub000/internal/errs"
	"github.com/RyanDickinsonDev/truthcrawl-sub000/pkg/recordmodel"
)

// Observation pairs a node's record with the node that produced it, the
// unit Resolve takes a slice of.
type Observation struct {
	NodeID string
	Record *recordmodel.ObservationRecord
}

func fieldValue(field string, rec *recordmodel.ObservationRecord) string {
	switch field {
	case "status_code":
		return strconv.Itoa(rec.StatusCode())
	case "content_hash":
		return rec.ContentHash()
	case "final_url":
		return rec.FinalURL()
	case "directive:canonical":
		return rec.DirectiveCanonical()
	case "directive:robots_meta":
		return rec.DirectiveRobotsMeta()
	case "directive:robots_header":
		return rec.DirectiveRobotsHeader()
	default:
		return ""
	}
}

// Resolve evaluates a dispute over observations: requires at least three
// independent observations (distinct node IDs) of the same URL. It is
// order-independent -- the same set of observations always produces the
// same outcome and byte-identical canonical text, regardless of input
// ordering.
func Resolve(disputeID string, challengedNodeID string, observations []Observation, resolvedAt time.Time) (*Resolution, error) {
	if len(observations) < 3 {
		return nil, errs.Newf(errs.IllegalInput, "dispute resolution requires at least 3 independent observations, got %d", len(observations))
	}

	url := observations[0].Record.URL()
	seen := make(map[string]struct{}, len(observations))
	for _, o := range observations {
		if o.Record.URL() != url {
			return nil, errs.Newf(errs.IllegalInput, "observation from node %s is for url %s, not %s", o.NodeID, o.Record.URL(), url)
		}
		if _, ok := seen[o.NodeID]; ok {
			return nil, errs.Newf(errs.IllegalInput, "duplicate node_id %s in observation set", o.NodeID)
		}
		seen[o.NodeID] = struct{}{}
	}
	if _, ok := seen[challengedNodeID]; !ok {
		return nil, errs.Newf(errs.IllegalInput, "challenged node_id %s is not among the observations", challengedNodeID)
	}

	total := len(observations)
	consensus := make([]FieldConsensus, 0, len(ConsensusFields))
	// disagreeingNodes[field] = set of node IDs whose value differs from
	// that field's majority value.
	disagreeingNodes := make(map[string]map[string]struct{}, len(ConsensusFields))

	for _, field := range ConsensusFields {
		counts := make(map[string]int)
		for _, o := range observations {
			counts[fieldValue(field, o.Record)]++
		}

		majorityValue := ""
		hasMajority := false
		for value, count := range counts {
			if count*2 > total {
				majorityValue = value
				hasMajority = true
				break
			}
		}

		consensus = append(consensus, FieldConsensus{Field: field, MajorityValue: majorityValue, HasMajority: hasMajority})

		disagreeing := make(map[string]struct{})
		if hasMajority {
			for _, o := range observations {
				if fieldValue(field, o.Record) != majorityValue {
					disagreeing[o.NodeID] = struct{}{}
				}
			}
		}
		disagreeingNodes[field] = disagreeing
	}

	outcome := Upheld
	allHaveMajority := true
	for _, fc := range consensus {
		if !fc.HasMajority {
			allHaveMajority = false
			break
		}
	}

	if !allHaveMajority {
		outcome = Inconclusive
	} else {
		challengedAgreesOnEveryField := true
		for _, field := range ConsensusFields {
			if _, disagreed := disagreeingNodes[field][challengedNodeID]; disagreed {
				challengedAgreesOnEveryField = false
				break
			}
		}
		if challengedAgreesOnEveryField {
			outcome = Dismissed
		} else {
			outcome = Upheld
		}
	}

	minoritySet := make(map[string]struct{})
	for _, field := range ConsensusFields {
		for nodeID := range disagreeingNodes[field] {
			minoritySet[nodeID] = struct{}{}
		}
	}

	var majorityNodes, minorityNodes []string
	for _, o := range observations {
		if _, ok := minoritySet[o.NodeID]; ok {
			minorityNodes = append(minorityNodes, o.NodeID)
		} else {
			majorityNodes = append(majorityNodes, o.NodeID)
		}
	}
	sort.Strings(majorityNodes)
	sort.Strings(minorityNodes)

	return &Resolution{
		DisputeID:         disputeID,
		Outcome:           outcome,
		ResolvedAt:        resolvedAt.UTC(),
		ObservationsCount: total,
		FieldConsensus:    consensus,
		MajorityNodes:     majorityNodes,
		MinorityNodes:     minorityNodes,
	}, nil
}
