// Copyright 2025 Truthcrawl Contributors
//
// Package canon provides the low-level primitives shared by every
// entity's canonical text codec: a fixed sequence of "key:value\n" lines,
// UTF-8, LF-only, a trailing newline on the final line, no BOM. Each
// entity package (recordmodel, batchchain, dispute, vstatus, profile)
// builds its own Parse/CanonicalText pair on top of these.
package canon

import (
	"bytes"
	"strings"

	"github.com/RyanDickinsonDev/truthcrawl-sub000/internal/errs"
)

// Writer accumulates canonical "key:value" lines in the order they're
// appended and renders them with a trailing LF on every line including
// the last.
type Writer struct {
	buf bytes.Buffer
}

// NewWriter returns an empty Writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Line appends a "key:value\n" line.
func (w *Writer) Line(key, value string) *Writer {
	w.buf.WriteString(key)
	w.buf.WriteByte(':')
	w.buf.WriteString(value)
	w.buf.WriteByte('\n')
	return w
}

// Raw appends a pre-formatted "key:value" pair followed by LF, for lines
// whose key itself is structured (e.g. "header:x-foo:bar").
func (w *Writer) Raw(line string) *Writer {
	w.buf.WriteString(line)
	w.buf.WriteByte('\n')
	return w
}

// Bytes returns the accumulated canonical text.
func (w *Writer) Bytes() []byte {
	out := make([]byte, w.buf.Len())
	copy(out, w.buf.Bytes())
	return out
}

// Lines splits canonical text into its constituent lines, validating the
// framing rules: UTF-8 (callers use string(data) which already assumes
// this), no CRLF, no BOM, and a trailing LF on the final line with no
// trailing blank line after it.
func Lines(data []byte) ([]string, error) {
	if len(data) == 0 {
		return nil, errs.New(errs.FormatError, "canonical text is empty")
	}
	if bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}) {
		return nil, errs.New(errs.FormatError, "canonical text must not have a BOM")
	}
	if bytes.Contains(data, []byte("\r")) {
		return nil, errs.New(errs.FormatError, "canonical text must use LF line endings, found CR")
	}
	if data[len(data)-1] != '\n' {
		return nil, errs.New(errs.FormatError, "canonical text must end with a trailing newline")
	}
	text := string(data[:len(data)-1])
	if strings.HasSuffix(text, "\n") {
		return nil, errs.New(errs.FormatError, "canonical text must not end with a blank line")
	}
	return strings.Split(text, "\n"), nil
}

// SplitKeyValue splits a "key:value" line into its two parts on the
// first colon. Lines with structured keys (e.g. "header:x-foo:bar")
// should instead use CutPrefix.
func SplitKeyValue(line string) (key, value string, err error) {
	idx := strings.IndexByte(line, ':')
	if idx < 0 {
		return "", "", errs.Newf(errs.FormatError, "malformed line %q: missing ':'", line)
	}
	return line[:idx], line[idx+1:], nil
}

// HasPrefix reports whether line begins with prefix+":".
func HasPrefix(line, prefix string) bool {
	return strings.HasPrefix(line, prefix+":")
}

// CutPrefix removes "prefix:" from the front of line, returning the rest
// unchanged (it may still contain colons, e.g. header/link/directive
// lines whose value carries structure of its own).
func CutPrefix(line, prefix string) (string, error) {
	full := prefix + ":"
	if !strings.HasPrefix(line, full) {
		return "", errs.Newf(errs.FormatError, "expected line to start with %q, got %q", full, line)
	}
	return line[len(full):], nil
}
