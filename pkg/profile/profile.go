// Copyright 2025 Truthcrawl Contributors
//
// Package profile implements self-signed node identity per spec §3/§4.14:
// NodeRegistration binds operator info to a public key, CrawlAttestation
// declares a sorted domain list, and NodeProfile binds one of each under
// a shared node_id -- verified using only the profile's own contents.
package profile

import (
	"sort"
	"strings"
	"time"

	"github.com/RyanDickinsonDev/truthcrawl-sub000/internal/canon"
	"github.com/RyanDickinsonDev/truthcrawl-sub000/internal/errs"
	"github.com/RyanDickinsonDev/truthcrawl-sub000/internal/hexhash"
	"github.com/RyanDickinsonDev/truthcrawl-sub000/pkg/signing"
)

const timeLayout = "2006-01-02T15:04:05Z"

// Registration binds an operator identity to an Ed25519 public key.
type Registration struct {
	OperatorName   string
	Organization   string
	ContactEmail   string
	NodeID         string
	PublicKeyB64   string
	RegisteredAt   time.Time
	signature      string
}

// NewRegistration validates and constructs an unsigned Registration.
// NodeID must equal the public key's derived fingerprint.
func NewRegistration(operatorName, organization, contactEmail, publicKeyB64 string, registeredAt time.Time) (*Registration, error) {
	if operatorName == "" {
		return nil, errs.New(errs.IllegalInput, "operator_name is required")
	}
	if contactEmail == "" {
		return nil, errs.New(errs.IllegalInput, "contact_email is required")
	}
	pub, err := signing.PublicKeyFromBase64(publicKeyB64)
	if err != nil {
		return nil, err
	}
	if registeredAt.IsZero() {
		return nil, errs.New(errs.IllegalInput, "registered_at is required")
	}
	return &Registration{
		OperatorName: operatorName,
		Organization: organization,
		ContactEmail: contactEmail,
		NodeID:       pub.NodeID(),
		PublicKeyB64: publicKeyB64,
		RegisteredAt: registeredAt.UTC(),
	}, nil
}

// WithSignature returns a copy of r with its stored signature set.
func (r *Registration) WithSignature(signatureB64 string) *Registration {
	clone := *r
	clone.signature = signatureB64
	return &clone
}

// Signature returns the stored signature, or "" if unsigned.
func (r *Registration) Signature() string { return r.signature }

// SigningInput is the domain-separated bytes a node signs to register:
// prefix + operator_name + organization + contact_email + node_id +
// registered_at.
func (r *Registration) SigningInput() []byte {
	return signing.BuildInput(signing.DomainRegistration,
		r.OperatorName, r.Organization, r.ContactEmail, r.NodeID, r.RegisteredAt.UTC().Format(timeLayout))
}

// CanonicalText renders the deterministic storage form.
func (r *Registration) CanonicalText() []byte {
	w := canon.NewWriter()
	w.Line("operator_name", r.OperatorName)
	w.Line("organization", r.Organization)
	w.Line("contact_email", r.ContactEmail)
	w.Line("node_id", r.NodeID)
	w.Line("public_key", r.PublicKeyB64)
	w.Line("registered_at", r.RegisteredAt.UTC().Format(timeLayout))
	return w.Bytes()
}

// FullText appends the stored (non-canonical) signature line.
func (r *Registration) FullText() []byte {
	text := r.CanonicalText()
	return append(text, []byte("registration_signature:"+r.signature+"\n")...)
}

// ParseRegistration parses canonical-text-plus-signature registration
// data as written by FullText.
func ParseRegistration(data []byte) (*Registration, error) {
	lines, err := canon.Lines(data)
	if err != nil {
		return nil, err
	}
	if len(lines) != 7 {
		return nil, errs.Newf(errs.FormatError, "registration must have exactly 7 lines, got %d", len(lines))
	}
	keys := []string{"operator_name", "organization", "contact_email", "node_id", "public_key", "registered_at", "registration_signature"}
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
	registeredAt, err := time.Parse(timeLayout, values[5])
	if err != nil {
		return nil, errs.Wrapf(err, errs.FormatError, "parse registered_at %q", values[5])
	}
	reg, err := NewRegistration(values[0], values[1], values[2], values[4], registeredAt)
	if err != nil {
		return nil, err
	}
	if reg.NodeID != values[3] {
		return nil, errs.Newf(errs.FormatError, "stored node_id %q does not match derived node_id %q", values[3], reg.NodeID)
	}
	return reg.WithSignature(values[6]), nil
}

// Attestation is a separately signed, sorted list of lowercased domains a
// node claims to crawl.
type Attestation struct {
	NodeID    string
	Domains   []string
	AttestedAt time.Time
	signature string
}

// NewAttestation validates and constructs an unsigned Attestation,
// lowercasing and sorting domains and dropping duplicates.
func NewAttestation(nodeID string, domains []string, attestedAt time.Time) (*Attestation, error) {
	if !hexhash.IsValid(nodeID) {
		return nil, errs.New(errs.IllegalInput, "node_id must be 64 lowercase hex characters")
	}
	if len(domains) == 0 {
		return nil, errs.New(errs.IllegalInput, "attestation must declare at least one domain")
	}
	if attestedAt.IsZero() {
		return nil, errs.New(errs.IllegalInput, "attested_at is required")
	}

	seen := make(map[string]struct{}, len(domains))
	lowered := make([]string, 0, len(domains))
	for _, d := range domains {
		l := strings.ToLower(d)
		if l == "" {
			return nil, errs.New(errs.IllegalInput, "domain must not be empty")
		}
		if _, ok := seen[l]; ok {
			continue
		}
		seen[l] = struct{}{}
		lowered = append(lowered, l)
	}
	sort.Strings(lowered)

	return &Attestation{NodeID: nodeID, Domains: lowered, AttestedAt: attestedAt.UTC()}, nil
}

// WithSignature returns a copy of a with its stored signature set.
func (a *Attestation) WithSignature(signatureB64 string) *Attestation {
	clone := *a
	clone.signature = signatureB64
	return &clone
}

// Signature returns the stored signature, or "" if unsigned.
func (a *Attestation) Signature() string { return a.signature }

// SigningInput is the domain-separated bytes a node signs to attest:
// prefix + node_id + sorted-comma-joined domains + attested_at.
func (a *Attestation) SigningInput() []byte {
	return signing.BuildInput(signing.DomainAttestation, a.NodeID, strings.Join(a.Domains, ","), a.AttestedAt.UTC().Format(timeLayout))
}

// CanonicalText renders the deterministic storage form.
func (a *Attestation) CanonicalText() []byte {
	w := canon.NewWriter()
	w.Line("node_id", a.NodeID)
	w.Line("domains", strings.Join(a.Domains, ","))
	w.Line("attested_at", a.AttestedAt.UTC().Format(timeLayout))
	return w.Bytes()
}

// FullText appends the stored (non-canonical) signature line.
func (a *Attestation) FullText() []byte {
	text := a.CanonicalText()
	return append(text, []byte("attestation_signature:"+a.signature+"\n")...)
}

// ParseAttestation parses canonical-text-plus-signature attestation data
// as written by FullText.
func ParseAttestation(data []byte) (*Attestation, error) {
	lines, err := canon.Lines(data)
	if err != nil {
		return nil, err
	}
	if len(lines) != 4 {
		return nil, errs.Newf(errs.FormatError, "attestation must have exactly 4 lines, got %d", len(lines))
	}
	keys := []string{"node_id", "domains", "attested_at", "attestation_signature"}
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
	attestedAt, err := time.Parse(timeLayout, values[2])
	if err != nil {
		return nil, errs.Wrapf(err, errs.FormatError, "parse attested_at %q", values[2])
	}
	att, err := NewAttestation(values[0], strings.Split(values[1], ","), attestedAt)
	if err != nil {
		return nil, err
	}
	return att.WithSignature(values[3]), nil
}

// Profile binds one Registration and an optional Attestation sharing the
// same node_id.
type Profile struct {
	Registration *Registration
	Attestation  *Attestation // nil if the node has not attested
}

// NewProfile validates that registration and attestation (if present)
// share a node_id.
func NewProfile(registration *Registration, attestation *Attestation) (*Profile, error) {
	if registration == nil {
		return nil, errs.New(errs.IllegalInput, "registration is required")
	}
	if attestation != nil && attestation.NodeID != registration.NodeID {
		return nil, errs.Newf(errs.ValidationError, "attestation node_id %q does not match registration node_id %q", attestation.NodeID, registration.NodeID)
	}
	return &Profile{Registration: registration, Attestation: attestation}, nil
}
