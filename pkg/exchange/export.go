// Copyright 2025 Truthcrawl Contributors
//
// Package exchange implements the self-verifying cross-node batch
// bundle: Export produces a batch-{batch_id}/ directory, Import reads
// one back and validates it transactionally before storing any record.
package exchange

import (
	"os"
	"path/filepath"

	"github.com/RyanDickinsonDev/truthcrawl-sub000/internal/errs"
	"github.com/RyanDickinsonDev/truthcrawl-sub000/pkg/batchchain"
	"github.com/RyanDickinsonDev/truthcrawl-sub000/pkg/store"
)

// PeerFetcher is the seam an external HTTP/peer-sync layer implements to
// retrieve a remote node's exported batch bundle by batch_id. Nothing in
// this package implements it; it exists so Import has a concrete type to
// compile against when wired to a transport this repository doesn't own.
type PeerFetcher interface {
	FetchBundle(nodeAddr, batchID string) (dir string, cleanup func(), err error)
}

// Export writes a self-contained bundle for link at
// {exportRoot}/batch-{batch_id}/, failing with a NotFound error if any
// manifest entry is missing from s.
func Export(exportRoot string, link *batchchain.ChainLink, manifest *batchchain.Manifest, signatureB64 string, s *store.Store) (string, error) {
	bundleDir := filepath.Join(exportRoot, "batch-"+link.BatchID)
	recordsDir := filepath.Join(bundleDir, "records")

	for _, hash := range manifest.Hashes() {
		if !s.Contains(hash) {
			return "", errs.Newf(errs.NotFound, "manifest entry %s is missing from the record store", hash)
		}
	}

	if err := os.MkdirAll(recordsDir, 0o755); err != nil {
		return "", errs.Wrapf(err, errs.IoError, "create bundle directory %s", bundleDir)
	}

	writeFile := func(name string, data []byte) error {
		if err := os.WriteFile(filepath.Join(bundleDir, name), data, 0o644); err != nil {
			return errs.Wrapf(err, errs.IoError, "write %s", name)
		}
		return nil
	}

	if err := writeFile("metadata.txt", link.Metadata().CanonicalText()); err != nil {
		return "", err
	}
	if err := writeFile("manifest.txt", manifest.CanonicalText()); err != nil {
		return "", err
	}
	if err := writeFile("chain-link.txt", link.CanonicalText()); err != nil {
		return "", err
	}
	if err := writeFile("signature.txt", []byte(signatureB64+"\n")); err != nil {
		return "", err
	}

	for _, hash := range manifest.Hashes() {
		rec, err := s.Load(hash)
		if err != nil {
			return "", errs.Wrapf(err, errs.IoError, "load record %s for export", hash)
		}
		if err := os.WriteFile(filepath.Join(recordsDir, hash+".txt"), rec.FullText(), 0o644); err != nil {
			return "", errs.Wrapf(err, errs.IoError, "write record file %s", hash)
		}
	}

	return bundleDir, nil
}
