// Copyright 2025 Truthcrawl Contributors
package profile

import (
	"testing"
	"time"

	"github.com/RyanDickinsonDev/truthcrawl-sub000/pkg/signing"
)

func TestVerify_ValidProfileWithAttestation(t *testing.T) {
	kp, err := signing.Generate()
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	reg, err := NewRegistration("Alice Operator", "ExampleOrg", "alice@example.com", kp.PublicKey().Base64(), time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("NewRegistration: %v", err)
	}
	reg = reg.WithSignature(kp.SignBase64(reg.SigningInput()))

	att, err := NewAttestation(reg.NodeID, []string{"Example.com", "sub.example.com"}, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("NewAttestation: %v", err)
	}
	att = att.WithSignature(kp.SignBase64(att.SigningInput()))

	p, err := NewProfile(reg, att)
	if err != nil {
		t.Fatalf("NewProfile: %v", err)
	}

	result := Verify(p)
	if !result.Valid {
		t.Fatalf("expected valid profile, got errors: %v", result.Errors)
	}
	if att.Domains[0] != "example.com" {
		t.Fatalf("expected lowercased domains, got %v", att.Domains)
	}
}

func TestVerify_DetectsBadSignature(t *testing.T) {
	kp, err := signing.Generate()
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	other, err := signing.Generate()
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	reg, err := NewRegistration("Bob Operator", "", "bob@example.com", kp.PublicKey().Base64(), time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("NewRegistration: %v", err)
	}
	reg = reg.WithSignature(other.SignBase64(reg.SigningInput()))

	p, err := NewProfile(reg, nil)
	if err != nil {
		t.Fatalf("NewProfile: %v", err)
	}

	result := Verify(p)
	if result.Valid {
		t.Fatalf("expected invalid profile due to mismatched signer")
	}
}

func TestNewProfile_RejectsMismatchedNodeID(t *testing.T) {
	kp, err := signing.Generate()
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	reg, err := NewRegistration("Carl", "", "carl@example.com", kp.PublicKey().Base64(), time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("NewRegistration: %v", err)
	}
	att, err := NewAttestation("ffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff00ff", []string{"example.com"}, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("NewAttestation: %v", err)
	}
	if _, err := NewProfile(reg, att); err == nil {
		t.Fatalf("expected error for mismatched node_id")
	}
}
