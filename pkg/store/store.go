// Copyright 2025 Truthcrawl Contributors
//
// Package store is a hash-addressed, append-only filesystem store for
// ObservationRecords: store/{hash[0:2]}/{hash}.txt, written via
// temp-file-plus-rename so concurrent Put calls for the same record never
// race on a partial write.
package store

import (
	"os"
	"path/filepath"

	"github.com/RyanDickinsonDev/truthcrawl-sub000/internal/errs"
	"github.com/RyanDickinsonDev/truthcrawl-sub000/internal/hexhash"
	"github.com/RyanDickinsonDev/truthcrawl-sub000/pkg/recordmodel"
)

// Store is a hash-addressed record store rooted at a directory. It holds
// no in-memory state; every operation reads or writes the filesystem
// directly, so a Store value may be shared freely across goroutines.
type Store struct {
	root string
}

// New returns a Store rooted at root. The directory is created on first
// Put, not here.
func New(root string) *Store {
	return &Store{root: root}
}

// Root returns the store's root directory.
func (s *Store) Root() string { return s.root }

func (s *Store) path(hash string) string {
	return filepath.Join(s.root, hash[:2], hash+".txt")
}

// Put writes record's full text (canonical form plus signature line) at
// its content-addressed path. Put is idempotent: if the file already
// exists, it is left untouched and Put returns nil.
func (s *Store) Put(record *recordmodel.ObservationRecord) error {
	hash := record.HashHex()
	dst := s.path(hash)

	if _, err := os.Stat(dst); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return errs.Wrapf(err, errs.IoError, "stat record %s", hash)
	}

	dir := filepath.Dir(dst)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errs.Wrapf(err, errs.IoError, "create shard directory %s", dir)
	}

	f, err := os.CreateTemp(dir, ".tmp-"+hash+"-*")
	if err != nil {
		return errs.Wrapf(err, errs.IoError, "create temp record file for %s", hash)
	}
	tmp := f.Name()
	_, werr := f.Write(record.FullText())
	if cerr := f.Close(); werr == nil {
		werr = cerr
	}
	if werr == nil {
		werr = os.Chmod(tmp, 0o644)
	}
	if werr != nil {
		os.Remove(tmp)
		return errs.Wrapf(werr, errs.IoError, "write temp record file for %s", hash)
	}
	if err := os.Rename(tmp, dst); err != nil {
		os.Remove(tmp)
		return errs.Wrapf(err, errs.IoError, "rename temp record file for %s", hash)
	}
	return nil
}

// Contains reports whether hash exists in the store, in O(1) via a single
// filesystem stat.
func (s *Store) Contains(hash string) bool {
	_, err := os.Stat(s.path(hash))
	return err == nil
}

// Load reads and parses the record stored under hash. It returns a
// NotFound error if no such record exists.
func (s *Store) Load(hash string) (*recordmodel.ObservationRecord, error) {
	if !hexhash.IsValid(hash) {
		return nil, errs.New(errs.IllegalInput, "hash must be 64 lowercase hex characters")
	}
	data, err := os.ReadFile(s.path(hash))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errs.Newf(errs.NotFound, "no record stored for hash %s", hash).WithDetails(s.path(hash))
		}
		return nil, errs.Wrapf(err, errs.IoError, "read record file for %s", hash)
	}
	rec, err := recordmodel.Parse(data)
	if err != nil {
		return nil, errs.Wrapf(err, errs.FormatError, "parse stored record %s", hash)
	}
	return rec, nil
}
