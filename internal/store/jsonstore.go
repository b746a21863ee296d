// Package store persists whole collections as flat JSON arrays, one file per
// entity type. Every write re-serializes and replaces the entire collection;
// writes go through a tmp file and os.Rename so a crash mid-write never
// leaves a half-written file behind.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
)

type Options struct {
	// StrictRead surfaces decode errors from corrupt collection files.
	// When false (the default), a corrupt file loads as an empty
	// collection, indistinguishable from a missing one; the parse error
	// is only logged.
	StrictRead bool
	Logger     *slog.Logger
}

type Store struct {
	dir        string
	strictRead bool
	log        *slog.Logger
}

func Open(dir string, opts Options) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("store.Open: %w", err)
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Store{dir: dir, strictRead: opts.StrictRead, log: log}, nil
}

func (s *Store) Dir() string { return s.dir }

func (s *Store) path(collection string) string {
	return filepath.Join(s.dir, collection+".json")
}

// Load reads an entire collection. A missing file is an empty collection in
// both read modes; what happens to a corrupt file depends on StrictRead.
func Load[T any](s *Store, collection string) ([]T, error) {
	f, err := os.Open(s.path(collection))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		if !s.strictRead {
			s.log.Warn("unreadable collection treated as empty", "collection", collection, "error", err)
			return nil, nil
		}
		return nil, fmt.Errorf("store.Load %s: %w", collection, err)
	}
	defer f.Close()

	var records []T
	if err := json.NewDecoder(f).Decode(&records); err != nil {
		if !s.strictRead {
			s.log.Warn("corrupt collection treated as empty", "collection", collection, "error", err)
			return nil, nil
		}
		return nil, fmt.Errorf("store.Load %s: %w", collection, err)
	}
	return records, nil
}

// Save replaces the whole collection atomically.
func Save[T any](s *Store, collection string, records []T) error {
	if records == nil {
		records = []T{}
	}

	path := s.path(collection)
	tmp := path + ".tmp"

	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("store.Save %s: %w", collection, err)
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("store.Save %s: %w", collection, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("store.Save %s: %w", collection, err)
	}

	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("store.Save %s: %w", collection, err)
	}
	return nil
}
