// Copyright 2025 Truthcrawl Contributors
//
// Package hexhash provides the SHA-256 and lowercase-hex primitives every
// canonical entity in truthcrawl is built from. Outputs are always 32 raw
// bytes, surfaced as 64-character lowercase hex.
package hexhash

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/RyanDickinsonDev/truthcrawl-sub000/internal/errs"
)

// Size is the number of raw bytes in a hash, and HexSize is its
// lowercase-hex encoding length.
const (
	Size    = sha256.Size
	HexSize = Size * 2
)

// Zero is the 64-zero sentinel used as the genesis previous_root.
var Zero = strings.Repeat("0", HexSize)

// Sum returns the SHA-256 hash of data as raw bytes.
func Sum(data []byte) [Size]byte {
	return sha256.Sum256(data)
}

// SumHex returns the SHA-256 hash of data as lowercase hex.
func SumHex(data []byte) string {
	h := Sum(data)
	return EncodeLower(h[:])
}

// EncodeLower encodes raw bytes as lowercase hex.
func EncodeLower(b []byte) string {
	return hex.EncodeToString(b)
}

// Decode decodes a hex string, rejecting any input whose length isn't
// exactly HexSize or that contains non-hex characters.
func Decode(s string) ([]byte, error) {
	if len(s) != HexSize {
		return nil, errs.Newf(errs.FormatError, "hash must be %d hex characters, got %d", HexSize, len(s))
	}
	for _, r := range s {
		isHex := (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
		if !isHex {
			return nil, errs.Newf(errs.FormatError, "hash contains non-hex character %q", r)
		}
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, errs.Wrapf(err, errs.FormatError, "decode hash %q", s)
	}
	return b, nil
}

// IsValid reports whether s is a well-formed 64-character lowercase hex
// string, the canonical form every hash field in this system must take.
func IsValid(s string) bool {
	if len(s) != HexSize {
		return false
	}
	for _, r := range s {
		if !((r >= '0' && r <= '9') || (r >= 'a' && r <= 'f')) {
			return false
		}
	}
	return true
}
