// Copyright 2025 Truthcrawl Contributors
package store

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/RyanDickinsonDev/truthcrawl-sub000/internal/errs"
	"github.com/RyanDickinsonDev/truthcrawl-sub000/pkg/recordmodel"
)

// Index is the deterministic, on-demand view of a Store's contents: every
// record hash grouped by url and by node_id, each list sorted.
type Index struct {
	ByURL    map[string][]string
	ByNodeID map[string][]string
}

// HashesForURL returns the sorted hash list observed for url, or nil.
func (idx *Index) HashesForURL(url string) []string {
	return idx.ByURL[url]
}

// HashesForNode returns the sorted hash list produced by nodeID, or nil.
func (idx *Index) HashesForNode(nodeID string) []string {
	return idx.ByNodeID[nodeID]
}

// BuildIndex walks the store's directory tree and groups every record it
// finds by url and by node_id. Same filesystem state always produces an
// identical Index; no persistent index file is read or written.
func BuildIndex(s *Store) (*Index, error) {
	byURL := make(map[string][]string)
	byNode := make(map[string][]string)

	if _, err := os.Stat(s.root); os.IsNotExist(err) {
		return &Index{ByURL: byURL, ByNodeID: byNode}, nil
	}

	walkErr := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".txt") || strings.Contains(d.Name(), ".tmp-") {
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return errs.Wrapf(err, errs.IoError, "read %s while building index", path)
		}
		rec, err := recordmodel.Parse(data)
		if err != nil {
			return errs.Wrapf(err, errs.FormatError, "parse %s while building index", path)
		}

		hash := rec.HashHex()
		byURL[rec.URL()] = append(byURL[rec.URL()], hash)
		byNode[rec.NodeID()] = append(byNode[rec.NodeID()], hash)
		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}

	for k := range byURL {
		sort.Strings(byURL[k])
	}
	for k := range byNode {
		sort.Strings(byNode[k])
	}

	return &Index{ByURL: byURL, ByNodeID: byNode}, nil
}
