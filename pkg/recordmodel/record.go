// Copyright 2025 Truthcrawl Contributors
//
// ObservationRecord: a signed crawl observation, canonical-text encoded
// per spec §3. Parsing then re-serializing must yield the identical byte
// string; record_hash is SHA-256 of the canonical bytes.
package recordmodel

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/RyanDickinsonDev/truthcrawl-sub000/internal/canon"
	"github.com/RyanDickinsonDev/truthcrawl-sub000/internal/errs"
	"github.com/RyanDickinsonDev/truthcrawl-sub000/internal/hexhash"
)

// TimeLayout is the single date-format routine used everywhere a
// timestamp is rendered to canonical text: ISO-8601 UTC with a literal Z
// suffix and no fractional seconds.
const TimeLayout = "2006-01-02T15:04:05Z"

// ObservationRecord is an immutable, signed observation of a single
// crawl fetch. Construct with New, which validates and fails fast on the
// first violation; mutate only by building a new value.
type ObservationRecord struct {
	version               string
	observedAt            time.Time
	url                   string
	finalURL              string
	statusCode            int
	fetchMS               int
	contentHash           string
	headers               map[string]string
	directiveCanonical    string
	directiveRobotsMeta   string
	directiveRobotsHeader string
	links                 []string
	nodeID                string
	signature             string // base64, stored form only, not canonical
}

// Config is the plain configuration struct New validates and freezes
// into an ObservationRecord (spec §9's alternative to a builder).
type Config struct {
	Version               string
	ObservedAt            time.Time
	URL                   string
	FinalURL              string
	StatusCode            int
	FetchMS               int
	ContentHash           string
	Headers               map[string]string
	DirectiveCanonical    string
	DirectiveRobotsMeta   string
	DirectiveRobotsHeader string
	Links                 []string
	NodeID                string
}

// New validates cfg and constructs an unsigned ObservationRecord.
func New(cfg Config) (*ObservationRecord, error) {
	if cfg.Version == "" {
		return nil, errs.New(errs.IllegalInput, "version is required")
	}
	if cfg.ObservedAt.IsZero() {
		return nil, errs.New(errs.IllegalInput, "observed_at is required")
	}
	if cfg.URL == "" {
		return nil, errs.New(errs.IllegalInput, "url is required")
	}
	if cfg.FinalURL == "" {
		return nil, errs.New(errs.IllegalInput, "final_url is required")
	}
	if cfg.StatusCode < 0 {
		return nil, errs.New(errs.IllegalInput, "status_code must not be negative")
	}
	if cfg.FetchMS < 0 {
		return nil, errs.New(errs.IllegalInput, "fetch_ms must not be negative")
	}
	if !hexhash.IsValid(cfg.ContentHash) {
		return nil, errs.New(errs.IllegalInput, "content_hash must be 64 lowercase hex characters")
	}
	if !hexhash.IsValid(cfg.NodeID) {
		return nil, errs.New(errs.IllegalInput, "node_id must be 64 lowercase hex characters")
	}

	headers := make(map[string]string, len(cfg.Headers))
	for k, v := range cfg.Headers {
		lower := strings.ToLower(k)
		if lower == "" {
			return nil, errs.New(errs.IllegalInput, "header key must not be empty")
		}
		headers[lower] = v
	}

	links := dedupeSorted(cfg.Links)

	return &ObservationRecord{
		version:               cfg.Version,
		observedAt:            cfg.ObservedAt.UTC(),
		url:                   cfg.URL,
		finalURL:              cfg.FinalURL,
		statusCode:            cfg.StatusCode,
		fetchMS:               cfg.FetchMS,
		contentHash:           strings.ToLower(cfg.ContentHash),
		headers:               headers,
		directiveCanonical:    cfg.DirectiveCanonical,
		directiveRobotsMeta:   cfg.DirectiveRobotsMeta,
		directiveRobotsHeader: cfg.DirectiveRobotsHeader,
		links:                 links,
		nodeID:                strings.ToLower(cfg.NodeID),
	}, nil
}

func dedupeSorted(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, v := range in {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// WithSignature returns a copy of r with its node_signature set. Entities
// are immutable after construction; this produces a new value rather
// than mutating r.
func (r *ObservationRecord) WithSignature(signatureB64 string) *ObservationRecord {
	clone := *r
	clone.signature = signatureB64
	return &clone
}

// Signature returns the stored node_signature, or "" if unsigned.
func (r *ObservationRecord) Signature() string { return r.signature }

// Accessors used by the comparator, sampler, and store.
func (r *ObservationRecord) Version() string            { return r.version }
func (r *ObservationRecord) ObservedAt() time.Time       { return r.observedAt }
func (r *ObservationRecord) URL() string                 { return r.url }
func (r *ObservationRecord) FinalURL() string             { return r.finalURL }
func (r *ObservationRecord) StatusCode() int              { return r.statusCode }
func (r *ObservationRecord) FetchMS() int                 { return r.fetchMS }
func (r *ObservationRecord) ContentHash() string          { return r.contentHash }
func (r *ObservationRecord) NodeID() string               { return r.nodeID }
func (r *ObservationRecord) DirectiveCanonical() string   { return r.directiveCanonical }
func (r *ObservationRecord) DirectiveRobotsMeta() string  { return r.directiveRobotsMeta }
func (r *ObservationRecord) DirectiveRobotsHeader() string { return r.directiveRobotsHeader }

// Links returns the sorted, deduplicated outbound link list.
func (r *ObservationRecord) Links() []string {
	out := make([]string, len(r.links))
	copy(out, r.links)
	return out
}

// Header returns the value for a lowercased header key and whether it
// was present.
func (r *ObservationRecord) Header(key string) (string, bool) {
	v, ok := r.headers[strings.ToLower(key)]
	return v, ok
}

// Headers returns a copy of the lowercased header map.
func (r *ObservationRecord) Headers() map[string]string {
	out := make(map[string]string, len(r.headers))
	for k, v := range r.headers {
		out[k] = v
	}
	return out
}

// CanonicalText renders the deterministic signing/hashing input: every
// field in the fixed order from spec §3, never including the signature.
func (r *ObservationRecord) CanonicalText() []byte {
	w := canon.NewWriter()
	w.Line("version", r.version)
	w.Line("observed_at", r.observedAt.UTC().Format(TimeLayout))
	w.Line("url", r.url)
	w.Line("final_url", r.finalURL)
	w.Line("status_code", strconv.Itoa(r.statusCode))
	w.Line("fetch_ms", strconv.Itoa(r.fetchMS))
	w.Line("content_hash", r.contentHash)

	headerKeys := make([]string, 0, len(r.headers))
	for k := range r.headers {
		headerKeys = append(headerKeys, k)
	}
	sort.Strings(headerKeys)
	for _, k := range headerKeys {
		w.Raw(fmt.Sprintf("header:%s:%s", k, r.headers[k]))
	}

	w.Raw(fmt.Sprintf("directive:canonical:%s", r.directiveCanonical))
	w.Raw(fmt.Sprintf("directive:robots_meta:%s", r.directiveRobotsMeta))
	w.Raw(fmt.Sprintf("directive:robots_header:%s", r.directiveRobotsHeader))

	for _, link := range r.links {
		w.Raw(fmt.Sprintf("link:%s", link))
	}

	w.Line("node_id", r.nodeID)
	return w.Bytes()
}

// FullText appends the non-canonical node_signature line to
// CanonicalText -- the form stored on disk and exported in bundles.
func (r *ObservationRecord) FullText() []byte {
	text := r.CanonicalText()
	text = append(text, []byte(fmt.Sprintf("node_signature:%s\n", r.signature))...)
	return text
}

// Hash returns the SHA-256 of the canonical text.
func (r *ObservationRecord) Hash() [32]byte {
	return hexhash.Sum(r.CanonicalText())
}

// HashHex returns Hash as lowercase hex -- the record_hash used
// throughout the manifest, sampler, and store.
func (r *ObservationRecord) HashHex() string {
	return hexhash.SumHex(r.CanonicalText())
}

// SigningInput returns the bytes to sign: the canonical text itself,
// undisambiguated by a domain prefix per spec §4.3 (the "version" line
// and record structure already disambiguate it from other artifacts).
func (r *ObservationRecord) SigningInput() []byte {
	return r.CanonicalText()
}

// Parse parses canonical-text-plus-signature full text (as stored on
// disk) into an ObservationRecord. It rejects unexpected keys, missing
// keys, and wrong field order -- a strict, fail-fast parser.
func Parse(data []byte) (*ObservationRecord, error) {
	lines, err := canon.Lines(data)
	if err != nil {
		return nil, err
	}

	idx := 0
	next := func(expectKey string) (string, error) {
		if idx >= len(lines) {
			return "", errs.Newf(errs.FormatError, "missing %q line", expectKey)
		}
		key, value, err := canon.SplitKeyValue(lines[idx])
		if err != nil {
			return "", err
		}
		if key != expectKey {
			return "", errs.Newf(errs.FormatError, "expected %q line, got key %q", expectKey, key)
		}
		idx++
		return value, nil
	}

	version, err := next("version")
	if err != nil {
		return nil, err
	}
	observedAtStr, err := next("observed_at")
	if err != nil {
		return nil, err
	}
	observedAt, err := time.Parse(TimeLayout, observedAtStr)
	if err != nil {
		return nil, errs.Wrapf(err, errs.FormatError, "parse observed_at %q", observedAtStr)
	}
	url, err := next("url")
	if err != nil {
		return nil, err
	}
	finalURL, err := next("final_url")
	if err != nil {
		return nil, err
	}
	statusCodeStr, err := next("status_code")
	if err != nil {
		return nil, err
	}
	statusCode, err := strconv.Atoi(statusCodeStr)
	if err != nil {
		return nil, errs.Wrapf(err, errs.FormatError, "parse status_code %q", statusCodeStr)
	}
	fetchMSStr, err := next("fetch_ms")
	if err != nil {
		return nil, err
	}
	fetchMS, err := strconv.Atoi(fetchMSStr)
	if err != nil {
		return nil, errs.Wrapf(err, errs.FormatError, "parse fetch_ms %q", fetchMSStr)
	}
	contentHash, err := next("content_hash")
	if err != nil {
		return nil, err
	}
	if !hexhash.IsValid(contentHash) {
		return nil, errs.New(errs.FormatError, "content_hash must be 64 lowercase hex characters")
	}

	headers := make(map[string]string)
	lastHeaderKey := ""
	for idx < len(lines) && canon.HasPrefix(lines[idx], "header") {
		rest, err := canon.CutPrefix(lines[idx], "header")
		if err != nil {
			return nil, err
		}
		parts := strings.SplitN(rest, ":", 2)
		if len(parts) != 2 {
			return nil, errs.Newf(errs.FormatError, "malformed header line %q", lines[idx])
		}
		key, value := parts[0], parts[1]
		if key <= lastHeaderKey && lastHeaderKey != "" {
			return nil, errs.Newf(errs.FormatError, "header keys must be sorted and unique, got %q after %q", key, lastHeaderKey)
		}
		headers[key] = value
		lastHeaderKey = key
		idx++
	}

	directiveCanonical, err := parseDirective(lines, &idx, "canonical")
	if err != nil {
		return nil, err
	}
	directiveRobotsMeta, err := parseDirective(lines, &idx, "robots_meta")
	if err != nil {
		return nil, err
	}
	directiveRobotsHeader, err := parseDirective(lines, &idx, "robots_header")
	if err != nil {
		return nil, err
	}

	var links []string
	lastLink := ""
	first := true
	for idx < len(lines) && canon.HasPrefix(lines[idx], "link") {
		value, err := canon.CutPrefix(lines[idx], "link")
		if err != nil {
			return nil, err
		}
		if !first && value <= lastLink {
			return nil, errs.Newf(errs.FormatError, "link lines must be sorted and unique, got %q after %q", value, lastLink)
		}
		links = append(links, value)
		lastLink = value
		first = false
		idx++
	}

	nodeID, err := next("node_id")
	if err != nil {
		return nil, err
	}
	if !hexhash.IsValid(nodeID) {
		return nil, errs.New(errs.FormatError, "node_id must be 64 lowercase hex characters")
	}

	signature := ""
	if idx < len(lines) {
		value, err := canon.CutPrefix(lines[idx], "node_signature")
		if err != nil {
			return nil, errs.Newf(errs.FormatError, "unexpected trailing line %q", lines[idx])
		}
		signature = value
		idx++
	}

	if idx != len(lines) {
		return nil, errs.Newf(errs.FormatError, "unexpected trailing content after line %d", idx)
	}

	rec, err := New(Config{
		Version:               version,
		ObservedAt:            observedAt,
		URL:                   url,
		FinalURL:              finalURL,
		StatusCode:            statusCode,
		FetchMS:               fetchMS,
		ContentHash:           contentHash,
		Headers:               headers,
		DirectiveCanonical:    directiveCanonical,
		DirectiveRobotsMeta:   directiveRobotsMeta,
		DirectiveRobotsHeader: directiveRobotsHeader,
		Links:                 links,
		NodeID:                nodeID,
	})
	if err != nil {
		return nil, err
	}
	if signature != "" {
		rec = rec.WithSignature(signature)
	}
	return rec, nil
}

func parseDirective(lines []string, idx *int, name string) (string, error) {
	prefix := "directive:" + name
	if *idx >= len(lines) {
		return "", errs.Newf(errs.FormatError, "missing %q line", prefix)
	}
	if !strings.HasPrefix(lines[*idx], prefix+":") {
		return "", errs.Newf(errs.FormatError, "expected %q line, got %q", prefix, lines[*idx])
	}
	value := lines[*idx][len(prefix)+1:]
	*idx++
	return value, nil
}
