// Copyright 2025 Truthcrawl Contributors
//
// Package compare implements the field-level comparison between two
// observations of the same URL, excluding fields expected to differ
// across observers and time (observed_at, fetch_ms, node_id,
// node_signature).
package compare

import (
	"strconv"
	"strings"

	"github.com/RyanDickinsonDev/truthcrawl-sub000/pkg/recordmodel"
)

// Discrepancy records one field's disagreement between two observations.
type Discrepancy struct {
	Field    string
	Expected string
	Actual   string
}

// Result is the outcome of comparing two records.
type Result struct {
	Match         bool
	Discrepancies []Discrepancy
}

// Compare checks expected against actual across status_code,
// content_hash, final_url, the three directive fields, and
// outbound_links (as a whole ordered list).
func Compare(expected, actual *recordmodel.ObservationRecord) Result {
	var discrepancies []Discrepancy

	check := func(field, want, got string) {
		if want != got {
			discrepancies = append(discrepancies, Discrepancy{Field: field, Expected: want, Actual: got})
		}
	}

	check("status_code", strconv.Itoa(expected.StatusCode()), strconv.Itoa(actual.StatusCode()))
	check("content_hash", expected.ContentHash(), actual.ContentHash())
	check("final_url", expected.FinalURL(), actual.FinalURL())
	check("directive:canonical", expected.DirectiveCanonical(), actual.DirectiveCanonical())
	check("directive:robots_meta", expected.DirectiveRobotsMeta(), actual.DirectiveRobotsMeta())
	check("directive:robots_header", expected.DirectiveRobotsHeader(), actual.DirectiveRobotsHeader())

	if linksDiffer := !equalLinks(expected.Links(), actual.Links()); linksDiffer {
		discrepancies = append(discrepancies, Discrepancy{
			Field:    "outbound_links",
			Expected: joinLinks(expected.Links()),
			Actual:   joinLinks(actual.Links()),
		})
	}

	return Result{Match: len(discrepancies) == 0, Discrepancies: discrepancies}
}

func equalLinks(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func joinLinks(links []string) string {
	return strings.Join(links, ",")
}
