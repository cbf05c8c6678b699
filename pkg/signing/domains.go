// Copyright 2025 Truthcrawl Contributors
//
// Domain-separation prefixes for every signed artifact in the system.
// Each signed byte string is prefixed by its domain followed by "\n" so a
// signature produced for one artifact kind can never be replayed as
// another. Named exactly as the ed25519_strategy.go constant table names
// its Ed25519DomainAttestation / Ed25519DomainResult domains.
package signing

const (
	// DomainBatchMetadata signs BatchMetadata.
	DomainBatchMetadata = "truthcrawl-batch-v1"

	// DomainChainLink signs a ChainLink.
	DomainChainLink = "truthcrawl-chain-v1"

	// DomainRequestAuth signs an HTTP-surface request (external
	// collaborator; truthcrawl only supplies the signing-input builder).
	DomainRequestAuth = "truthcrawl-auth-v1"

	// DomainTimestamp signs a trusted-timestamp token (external
	// collaborator; truthcrawl only supplies the signing-input builder).
	DomainTimestamp = "truthcrawl-timestamp-v1"

	// DomainAttestation signs a CrawlAttestation.
	DomainAttestation = "truthcrawl-attestation-v1"

	// DomainRegistration signs a NodeRegistration.
	DomainRegistration = "truthcrawl-registration-v1"
)
