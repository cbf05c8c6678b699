// Copyright 2025 Truthcrawl Contributors
package vstatus

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/RyanDickinsonDev/truthcrawl-sub000/internal/errs"
)

// Store persists VerificationStatus values under a root directory as
// write-once files: verification/{batch_id}.txt, never overwritten once
// written.
type Store struct {
	root string
}

// NewStore returns a Store rooted at root.
func NewStore(root string) *Store {
	return &Store{root: root}
}

func (s *Store) path(batchID string) string {
	return filepath.Join(s.root, batchID+".txt")
}

// Save writes status's canonical text at its write-once path. Calling
// Save again for a batch_id that was already verified is rejected: the
// directory is append-only, not a log of re-runs.
func (s *Store) Save(status *Status) error {
	dst := s.path(status.BatchID)
	if _, err := os.Stat(dst); err == nil {
		return errs.Newf(errs.ValidationError, "verification status for batch %s already recorded", status.BatchID)
	} else if !os.IsNotExist(err) {
		return errs.Wrapf(err, errs.IoError, "stat verification status for batch %s", status.BatchID)
	}

	if err := os.MkdirAll(s.root, 0o755); err != nil {
		return errs.Wrapf(err, errs.IoError, "create verification status directory")
	}

	tmp := filepath.Join(s.root, fmt.Sprintf(".tmp-%s-%d", status.BatchID, os.Getpid()))
	if err := os.WriteFile(tmp, status.CanonicalText(), 0o644); err != nil {
		return errs.Wrapf(err, errs.IoError, "write temp verification status for batch %s", status.BatchID)
	}
	if err := os.Rename(tmp, dst); err != nil {
		os.Remove(tmp)
		return errs.Wrapf(err, errs.IoError, "rename temp verification status for batch %s", status.BatchID)
	}
	return nil
}

// Load reads and parses the verification status recorded for batchID.
func (s *Store) Load(batchID string) (*Status, error) {
	data, err := os.ReadFile(s.path(batchID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errs.Newf(errs.NotFound, "no verification status recorded for batch %s", batchID)
		}
		return nil, errs.Wrapf(err, errs.IoError, "read verification status for batch %s", batchID)
	}
	return Parse(data)
}
