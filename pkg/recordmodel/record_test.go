// Copyright 2025 Truthcrawl Contributors
package recordmodel

import (
	"strings"
	"testing"
	"time"
)

func validConfig() Config {
	return Config{
		Version:               "1",
		ObservedAt:            time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC),
		URL:                   "https://example.com/a",
		FinalURL:              "https://example.com/a",
		StatusCode:            200,
		FetchMS:               12,
		ContentHash:           "ab00000000000000000000000000000000000000000000000000000000000001",
		Headers:               map[string]string{"Content-Type": "text/html"},
		DirectiveCanonical:    "https://example.com/a",
		DirectiveRobotsMeta:   "index",
		DirectiveRobotsHeader: "index",
		Links:                 []string{"https://example.com/b", "https://example.com/c"},
		NodeID:                "cd00000000000000000000000000000000000000000000000000000000000002",
	}
}

func signedRecord(t *testing.T) *ObservationRecord {
	t.Helper()
	rec, err := New(validConfig())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return rec.WithSignature("c2ln")
}

func TestParse_RoundTripsFullText(t *testing.T) {
	rec := signedRecord(t)
	parsed, err := Parse(rec.FullText())
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if string(parsed.CanonicalText()) != string(rec.CanonicalText()) {
		t.Fatalf("canonical text mismatch after round trip")
	}
	if parsed.Signature() != rec.Signature() {
		t.Fatalf("signature mismatch after round trip: got %q, want %q", parsed.Signature(), rec.Signature())
	}
	if parsed.HashHex() != rec.HashHex() {
		t.Fatalf("hash mismatch after round trip")
	}
}

func TestParse_RejectsMissingKey(t *testing.T) {
	rec := signedRecord(t)
	lines := strings.Split(strings.TrimSuffix(string(rec.CanonicalText()), "\n"), "\n")
	// Drop the url line entirely.
	var kept []string
	for _, l := range lines {
		if strings.HasPrefix(l, "url:") {
			continue
		}
		kept = append(kept, l)
	}
	mangled := strings.Join(kept, "\n") + "\n"

	if _, err := Parse([]byte(mangled)); err == nil {
		t.Fatal("expected error when url line is missing")
	}
}

func TestParse_RejectsMisorderedKeys(t *testing.T) {
	rec := signedRecord(t)
	lines := strings.Split(strings.TrimSuffix(string(rec.CanonicalText()), "\n"), "\n")
	if len(lines) < 2 {
		t.Fatalf("expected at least two lines")
	}
	lines[0], lines[1] = lines[1], lines[0]
	mangled := strings.Join(lines, "\n") + "\n"

	if _, err := Parse([]byte(mangled)); err == nil {
		t.Fatal("expected error when the first two lines are swapped")
	}
}

func TestParse_RejectsUnexpectedTrailingLine(t *testing.T) {
	rec := signedRecord(t)
	mangled := append(rec.FullText(), []byte("unexpected:line\n")...)

	if _, err := Parse(mangled); err == nil {
		t.Fatal("expected error for unexpected trailing line")
	}
}

func TestParse_RejectsUnsortedHeaders(t *testing.T) {
	rec, err := New(Config{
		Version:     "1",
		ObservedAt:  time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		URL:         "https://example.com",
		FinalURL:    "https://example.com",
		ContentHash: "ab00000000000000000000000000000000000000000000000000000000000001",
		NodeID:      "cd00000000000000000000000000000000000000000000000000000000000002",
		Headers:     map[string]string{"b-header": "1", "a-header": "2"},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	text := string(rec.CanonicalText())
	// CanonicalText always emits headers sorted; manually scramble them to
	// simulate a malformed artifact from an untrusted peer.
	scrambled := strings.Replace(text, "header:a-header:2\nheader:b-header:1\n", "header:b-header:1\nheader:a-header:2\n", 1)
	if scrambled == text {
		t.Fatalf("test setup did not find the expected header lines to scramble")
	}

	if _, err := Parse([]byte(scrambled)); err == nil {
		t.Fatal("expected error for unsorted header keys")
	}
}

func TestParse_RejectsInvalidContentHash(t *testing.T) {
	rec := signedRecord(t)
	mangled := strings.Replace(string(rec.FullText()), validConfig().ContentHash, "not-a-valid-hash", 1)

	if _, err := Parse([]byte(mangled)); err == nil {
		t.Fatal("expected error for malformed content_hash")
	}
}

func TestNew_RejectsNegativeStatusCode(t *testing.T) {
	cfg := validConfig()
	cfg.StatusCode = -1
	if _, err := New(cfg); err == nil {
		t.Fatal("expected error for negative status_code")
	}
}

func TestNew_RejectsEmptyURL(t *testing.T) {
	cfg := validConfig()
	cfg.URL = ""
	if _, err := New(cfg); err == nil {
		t.Fatal("expected error for empty url")
	}
}

func TestNew_DedupesAndSortsLinks(t *testing.T) {
	cfg := validConfig()
	cfg.Links = []string{"https://example.com/z", "https://example.com/a", "https://example.com/z"}
	rec, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	links := rec.Links()
	if len(links) != 2 {
		t.Fatalf("expected 2 deduplicated links, got %d: %v", len(links), links)
	}
	if links[0] != "https://example.com/a" || links[1] != "https://example.com/z" {
		t.Fatalf("expected sorted links, got %v", links)
	}
}
