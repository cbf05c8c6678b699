// Copyright 2025 Truthcrawl Contributors
package profile

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/RyanDickinsonDev/truthcrawl-sub000/internal/errs"
	"github.com/RyanDickinsonDev/truthcrawl-sub000/pkg/signing"
)

// BootstrapFile is the on-disk node.yaml shape an operator hand-writes
// before running register-node: everything NewRegistration/NewAttestation
// need except the key pair and timestamps, which the CLI supplies.
type BootstrapFile struct {
	OperatorName string   `yaml:"operator_name"`
	Organization string   `yaml:"organization"`
	ContactEmail string   `yaml:"contact_email"`
	Domains      []string `yaml:"domains"`
}

// LoadBootstrapFile reads and parses a node.yaml file.
func LoadBootstrapFile(path string) (*BootstrapFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errs.Wrapf(err, errs.IoError, "read bootstrap file %s", path)
	}
	var bf BootstrapFile
	if err := yaml.Unmarshal(data, &bf); err != nil {
		return nil, errs.Wrapf(err, errs.FormatError, "parse bootstrap file %s", path)
	}
	return &bf, nil
}

// Bootstrap builds and signs a full Profile from a BootstrapFile and a
// node's key pair, using now for both registered_at and attested_at. A
// BootstrapFile with no domains produces a Profile with no Attestation.
func Bootstrap(bf *BootstrapFile, kp *signing.KeyPair, now time.Time) (*Profile, error) {
	reg, err := NewRegistration(bf.OperatorName, bf.Organization, bf.ContactEmail, kp.PublicKey().Base64(), now)
	if err != nil {
		return nil, err
	}
	reg = reg.WithSignature(kp.SignBase64(reg.SigningInput()))

	if len(bf.Domains) == 0 {
		return NewProfile(reg, nil)
	}

	att, err := NewAttestation(reg.NodeID, bf.Domains, now)
	if err != nil {
		return nil, err
	}
	att = att.WithSignature(kp.SignBase64(att.SigningInput()))

	return NewProfile(reg, att)
}
