// Copyright 2025 Truthcrawl Contributors
package profile

import (
	"github.com/RyanDickinsonDev/truthcrawl-sub000/pkg/signing"
)

// VerifyResult accumulates every check Verify performs; callers see every
// failure, not just the first.
type VerifyResult struct {
	Valid  bool
	Errors []string
}

func (r *VerifyResult) fail(msg string) {
	r.Valid = false
	r.Errors = append(r.Errors, msg)
}

// Verify recomputes node_id from the registration's embedded public key
// and checks the registration signature and, if present, the attestation
// signature -- using only p's own contents.
func Verify(p *Profile) *VerifyResult {
	r := &VerifyResult{Valid: true}

	pub, err := signing.PublicKeyFromBase64(p.Registration.PublicKeyB64)
	if err != nil {
		r.fail("registration public_key is not a valid base64-encoded Ed25519 key")
		return r
	}

	wantNodeID := pub.NodeID()
	if p.Registration.NodeID != wantNodeID {
		r.fail("registration node_id does not match SHA-256 fingerprint of its public key")
	}

	if !signing.Verify(p.Registration.PublicKeyB64, p.Registration.SigningInput(), p.Registration.Signature()) {
		r.fail("registration signature is invalid")
	}

	if p.Attestation != nil {
		if p.Attestation.NodeID != p.Registration.NodeID {
			r.fail("attestation node_id does not match registration node_id")
		}
		if !signing.Verify(p.Registration.PublicKeyB64, p.Attestation.SigningInput(), p.Attestation.Signature()) {
			r.fail("attestation signature is invalid")
		}
	}

	return r
}
