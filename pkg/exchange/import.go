// Copyright 2025 Truthcrawl Contributors
package exchange

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/RyanDickinsonDev/truthcrawl-sub000/internal/errs"
	"github.com/RyanDickinsonDev/truthcrawl-sub000/pkg/batchchain"
	"github.com/RyanDickinsonDev/truthcrawl-sub000/pkg/recordmodel"
	"github.com/RyanDickinsonDev/truthcrawl-sub000/pkg/signing"
	"github.com/RyanDickinsonDev/truthcrawl-sub000/pkg/store"
)

// ImportReceipt reports the outcome of one Import call.
type ImportReceipt struct {
	BatchID               string
	RecordsImported       int
	RecordsAlreadyPresent int
	Valid                 bool
	Errors                []string
}

// Import reads the four top-level files and every record file under
// bundleDir, validates them against publisherPublicKeyB64, and -- only if
// every check passes -- stores the records in s. No records are stored if
// any validation error is found (transactional at the batch level).
// Import is not internally concurrent; callers serialize concurrent
// imports of the same batch.
func Import(bundleDir, publisherPublicKeyB64 string, s *store.Store) (*ImportReceipt, error) {
	var errs_ []string

	linkData, err := os.ReadFile(filepath.Join(bundleDir, "chain-link.txt"))
	if err != nil {
		return nil, errs.Wrapf(err, errs.IoError, "read chain-link.txt")
	}
	link, err := batchchain.ParseChainLink(linkData)
	if err != nil {
		return nil, errs.Wrapf(err, errs.FormatError, "parse chain-link.txt")
	}

	metaData, err := os.ReadFile(filepath.Join(bundleDir, "metadata.txt"))
	if err != nil {
		return nil, errs.Wrapf(err, errs.IoError, "read metadata.txt")
	}
	meta, err := batchchain.ParseMetadata(metaData)
	if err != nil {
		return nil, errs.Wrapf(err, errs.FormatError, "parse metadata.txt")
	}

	manifestData, err := os.ReadFile(filepath.Join(bundleDir, "manifest.txt"))
	if err != nil {
		return nil, errs.Wrapf(err, errs.IoError, "read manifest.txt")
	}
	manifest, err := batchchain.ParseManifest(manifestData)
	if err != nil {
		return nil, errs.Wrapf(err, errs.FormatError, "parse manifest.txt")
	}

	sigData, err := os.ReadFile(filepath.Join(bundleDir, "signature.txt"))
	if err != nil {
		return nil, errs.Wrapf(err, errs.IoError, "read signature.txt")
	}
	signatureB64 := strings.TrimSuffix(string(sigData), "\n")

	// 1. Publisher signature over the chain link's signing input.
	if !signing.Verify(publisherPublicKeyB64, link.SigningInput(), signatureB64) {
		errs_ = append(errs_, "publisher signature over chain link is invalid")
	}

	// 2. metadata.manifest_hash == manifest.manifest_hash
	manifestHash := manifest.HashHex()
	if meta.ManifestHash != manifestHash {
		errs_ = append(errs_, fmt.Sprintf("metadata.manifest_hash %q does not match manifest.manifest_hash %q", meta.ManifestHash, manifestHash))
	}

	// 3. metadata.merkle_root == manifest.merkle_root
	manifestRoot, rootErr := manifest.MerkleRootHex()
	if rootErr != nil {
		errs_ = append(errs_, fmt.Sprintf("failed to recompute manifest merkle_root: %v", rootErr))
	} else if meta.MerkleRoot != manifestRoot {
		errs_ = append(errs_, fmt.Sprintf("metadata.merkle_root %q does not match manifest.merkle_root %q", meta.MerkleRoot, manifestRoot))
	}

	// 4. metadata.record_count == manifest.size
	if meta.RecordCount != manifest.Size() {
		errs_ = append(errs_, fmt.Sprintf("metadata.record_count %d does not match manifest size %d", meta.RecordCount, manifest.Size()))
	}

	// 5. For each manifest hash: record file exists, parses, and
	// record.HashHex() == hash.
	recordsDir := filepath.Join(bundleDir, "records")
	records := make(map[string]*recordmodel.ObservationRecord, manifest.Size())
	for _, hash := range manifest.Hashes() {
		recPath := filepath.Join(recordsDir, hash+".txt")
		recData, readErr := os.ReadFile(recPath)
		if readErr != nil {
			errs_ = append(errs_, fmt.Sprintf("record file for %s is missing or unreadable: %v", hash, readErr))
			continue
		}
		rec, parseErr := recordmodel.Parse(recData)
		if parseErr != nil {
			errs_ = append(errs_, fmt.Sprintf("record file for %s failed to parse: %v", hash, parseErr))
			continue
		}
		if rec.HashHex() != hash {
			errs_ = append(errs_, fmt.Sprintf("record file for %s has mismatched content hash %s", hash, rec.HashHex()))
			continue
		}
		records[hash] = rec
	}

	receipt := &ImportReceipt{
		BatchID: link.BatchID,
		Valid:   len(errs_) == 0,
		Errors:  errs_,
	}
	if !receipt.Valid {
		return receipt, nil
	}

	for _, hash := range manifest.Hashes() {
		if s.Contains(hash) {
			receipt.RecordsAlreadyPresent++
			continue
		}
		if err := s.Put(records[hash]); err != nil {
			return nil, errs.Wrapf(err, errs.IoError, "store imported record %s", hash)
		}
		receipt.RecordsImported++
	}

	return receipt, nil
}
