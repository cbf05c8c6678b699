// Copyright 2025 Truthcrawl Contributors
//
// Ed25519 keypair: sign, verify, encode. Verify never panics on bad
// input -- a malformed base64 blob or a wrong-length key is a
// verification failure, not an exception, matching the contract
// ed25519_strategy.go's Verify/VerifySignatureBytes follow.
package signing

import (
	"crypto/ed25519"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"

	"github.com/RyanDickinsonDev/truthcrawl-sub000/internal/errs"
	"github.com/RyanDickinsonDev/truthcrawl-sub000/internal/hexhash"
)

// KeyPair holds an Ed25519 private key (and its derived public key).
type KeyPair struct {
	private ed25519.PrivateKey
	public  ed25519.PublicKey
}

// Generate creates a fresh Ed25519 keypair.
func Generate() (*KeyPair, error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, errs.Wrap(err, errs.IoError, "generate ed25519 keypair")
	}
	return &KeyPair{private: priv, public: pub}, nil
}

// FromSeed deterministically derives a keypair from a 32-byte seed.
func FromSeed(seed []byte) (*KeyPair, error) {
	if len(seed) != ed25519.SeedSize {
		return nil, errs.Newf(errs.IllegalInput, "seed must be %d bytes, got %d", ed25519.SeedSize, len(seed))
	}
	priv := ed25519.NewKeyFromSeed(seed)
	return &KeyPair{private: priv, public: priv.Public().(ed25519.PublicKey)}, nil
}

// FromPrivateKeyBase64 loads a keypair from a base64-encoded raw
// Ed25519 private key (64 bytes).
func FromPrivateKeyBase64(encoded string) (*KeyPair, error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, errs.Wrap(err, errs.FormatError, "decode private key base64")
	}
	if len(raw) != ed25519.PrivateKeySize {
		return nil, errs.Newf(errs.FormatError, "private key must be %d bytes, got %d", ed25519.PrivateKeySize, len(raw))
	}
	priv := ed25519.PrivateKey(raw)
	return &KeyPair{private: priv, public: priv.Public().(ed25519.PublicKey)}, nil
}

// PrivateKeyBase64 returns the raw private key, base64-encoded, for
// storage in a key file.
func (k *KeyPair) PrivateKeyBase64() string {
	return base64.StdEncoding.EncodeToString(k.private)
}

// PublicKey returns a PublicKey wrapping this keypair's public half.
func (k *KeyPair) PublicKey() PublicKey {
	return PublicKey{raw: k.public}
}

// Sign signs message (already domain-prefixed by the caller) and returns
// a raw signature.
func (k *KeyPair) Sign(message []byte) []byte {
	return ed25519.Sign(k.private, message)
}

// SignBase64 signs message and returns the signature base64-encoded, the
// form every canonical "*_signature:" line stores.
func (k *KeyPair) SignBase64(message []byte) string {
	return base64.StdEncoding.EncodeToString(k.Sign(message))
}

// PublicKey wraps a serialized Ed25519 public key for verification and
// for deriving a node_id.
type PublicKey struct {
	raw ed25519.PublicKey
}

// PublicKeyFromBase64 decodes a base64-encoded Ed25519 public key.
func PublicKeyFromBase64(encoded string) (PublicKey, error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return PublicKey{}, errs.Wrap(err, errs.FormatError, "decode public key base64")
	}
	if len(raw) != ed25519.PublicKeySize {
		return PublicKey{}, errs.Newf(errs.FormatError, "public key must be %d bytes, got %d", ed25519.PublicKeySize, len(raw))
	}
	return PublicKey{raw: raw}, nil
}

// Base64 returns the public key as a base64-encoded blob -- the form
// used both on the wire and as the pre-image of NodeID.
func (p PublicKey) Base64() string {
	return base64.StdEncoding.EncodeToString(p.raw)
}

// Bytes returns the raw public key bytes.
func (p PublicKey) Bytes() []byte {
	out := make([]byte, len(p.raw))
	copy(out, p.raw)
	return out
}

// NodeID computes SHA-256(base64_public_key_bytes) as lowercase hex, the
// glossary's definition of a node's identity fingerprint.
func (p PublicKey) NodeID() string {
	sum := sha256.Sum256([]byte(p.Base64()))
	return hexhash.EncodeLower(sum[:])
}

// Verify checks a signature over message. It never panics: a malformed
// public key or signature length is reported as false, not an error,
// because verification is always the caller's last line of defense.
func Verify(publicKeyB64 string, message []byte, signatureB64 string) bool {
	pub, err := base64.StdEncoding.DecodeString(publicKeyB64)
	if err != nil || len(pub) != ed25519.PublicKeySize {
		return false
	}
	sig, err := base64.StdEncoding.DecodeString(signatureB64)
	if err != nil || len(sig) != ed25519.SignatureSize {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(pub), message, sig)
}
