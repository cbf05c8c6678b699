// Copyright 2025 Truthcrawl Contributors
package exchange

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/RyanDickinsonDev/truthcrawl-sub000/pkg/batchchain"
	"github.com/RyanDickinsonDev/truthcrawl-sub000/pkg/recordmodel"
	"github.com/RyanDickinsonDev/truthcrawl-sub000/pkg/signing"
	"github.com/RyanDickinsonDev/truthcrawl-sub000/pkg/store"
)

func buildTwoRecordBatch(t *testing.T, kp *signing.KeyPair, s *store.Store) (*batchchain.ChainLink, *batchchain.Manifest, string) {
	t.Helper()

	rec1, err := recordmodel.New(recordmodel.Config{
		Version: "1", ObservedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		URL: "https://example.com/a", FinalURL: "https://example.com/a",
		StatusCode: 200, FetchMS: 5,
		ContentHash: "ab00000000000000000000000000000000000000000000000000000000000001",
		NodeID:      "111111111111111111111111111111111111111111111111111111111111001a",
	})
	if err != nil {
		t.Fatalf("New rec1: %v", err)
	}
	rec1 = rec1.WithSignature(kp.SignBase64(rec1.SigningInput()))

	rec2, err := recordmodel.New(recordmodel.Config{
		Version: "1", ObservedAt: time.Date(2026, 1, 1, 0, 1, 0, 0, time.UTC),
		URL: "https://example.com/b", FinalURL: "https://example.com/b",
		StatusCode: 200, FetchMS: 7,
		ContentHash: "cd00000000000000000000000000000000000000000000000000000000000002",
		NodeID:      "111111111111111111111111111111111111111111111111111111111111001a",
	})
	if err != nil {
		t.Fatalf("New rec2: %v", err)
	}
	rec2 = rec2.WithSignature(kp.SignBase64(rec2.SigningInput()))

	if err := s.Put(rec1); err != nil {
		t.Fatalf("Put rec1: %v", err)
	}
	if err := s.Put(rec2); err != nil {
		t.Fatalf("Put rec2: %v", err)
	}

	manifest, err := batchchain.NewManifest([]string{rec1.HashHex(), rec2.HashHex()})
	if err != nil {
		t.Fatalf("NewManifest: %v", err)
	}
	root, err := manifest.MerkleRootHex()
	if err != nil {
		t.Fatalf("MerkleRootHex: %v", err)
	}
	link, err := batchchain.NewChainLink("2026-01-01", root, manifest.HashHex(), manifest.Size(), batchchain.GenesisRoot)
	if err != nil {
		t.Fatalf("NewChainLink: %v", err)
	}
	sig := kp.SignBase64(link.SigningInput())
	return link, manifest, sig
}

func TestExportImport_RoundTrip(t *testing.T) {
	kp, err := signing.Generate()
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	srcStore := store.New(filepath.Join(t.TempDir(), "src"))
	link, manifest, sig := buildTwoRecordBatch(t, kp, srcStore)

	exportRoot := t.TempDir()
	bundleDir, err := Export(exportRoot, link, manifest, sig, srcStore)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}

	for _, name := range []string{"metadata.txt", "manifest.txt", "chain-link.txt", "signature.txt"} {
		if _, err := os.Stat(filepath.Join(bundleDir, name)); err != nil {
			t.Fatalf("expected bundle file %s: %v", name, err)
		}
	}
	for _, hash := range manifest.Hashes() {
		if _, err := os.Stat(filepath.Join(bundleDir, "records", hash+".txt")); err != nil {
			t.Fatalf("expected record file %s: %v", hash, err)
		}
	}

	dstStore := store.New(filepath.Join(t.TempDir(), "dst"))
	receipt, err := Import(bundleDir, kp.PublicKey().Base64(), dstStore)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if !receipt.Valid {
		t.Fatalf("expected valid import, got errors: %v", receipt.Errors)
	}
	if receipt.RecordsImported != 2 {
		t.Fatalf("expected 2 records imported, got %d", receipt.RecordsImported)
	}
	for _, hash := range manifest.Hashes() {
		if !dstStore.Contains(hash) {
			t.Fatalf("expected destination store to contain %s after import", hash)
		}
	}

	receipt2, err := Import(bundleDir, kp.PublicKey().Base64(), dstStore)
	if err != nil {
		t.Fatalf("second Import: %v", err)
	}
	if receipt2.RecordsAlreadyPresent != 2 || receipt2.RecordsImported != 0 {
		t.Fatalf("expected re-import to be idempotent, got %+v", receipt2)
	}
}

func TestImport_RejectsTamperedManifestAndStoresNothing(t *testing.T) {
	kp, err := signing.Generate()
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	srcStore := store.New(filepath.Join(t.TempDir(), "src"))
	link, manifest, sig := buildTwoRecordBatch(t, kp, srcStore)

	exportRoot := t.TempDir()
	bundleDir, err := Export(exportRoot, link, manifest, sig, srcStore)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}

	// Tamper with the manifest after export: append a bogus line.
	manifestPath := filepath.Join(bundleDir, "manifest.txt")
	data, err := os.ReadFile(manifestPath)
	if err != nil {
		t.Fatalf("read manifest: %v", err)
	}
	tampered := append(data, []byte("ffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff\n")...)
	if err := os.WriteFile(manifestPath, tampered, 0o644); err != nil {
		t.Fatalf("write tampered manifest: %v", err)
	}

	dstStore := store.New(filepath.Join(t.TempDir(), "dst"))
	receipt, err := Import(bundleDir, kp.PublicKey().Base64(), dstStore)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if receipt.Valid {
		t.Fatalf("expected invalid import due to tampered manifest")
	}
	if receipt.RecordsImported != 0 {
		t.Fatalf("expected no records stored on invalid import")
	}
	for _, hash := range manifest.Hashes() {
		if dstStore.Contains(hash) {
			t.Fatalf("expected destination store to remain empty after rejected import")
		}
	}
}

func TestExport_FailsOnMissingRecord(t *testing.T) {
	kp, err := signing.Generate()
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	srcStore := store.New(filepath.Join(t.TempDir(), "src"))
	link, manifest, sig := buildTwoRecordBatch(t, kp, srcStore)

	// Remove one record from the store before export.
	hash := manifest.Hashes()[0]
	recPath := filepath.Join(srcStore.Root(), hash[:2], hash+".txt")
	if err := os.Remove(recPath); err != nil {
		t.Fatalf("remove record: %v", err)
	}

	if _, err := Export(t.TempDir(), link, manifest, sig, srcStore); err == nil {
		t.Fatalf("expected export to fail on missing record")
	}
}
