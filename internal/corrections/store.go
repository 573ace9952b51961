package corrections

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/gofrs/flock"
)

// Map is the lookup surface shared by the writable store and its read-only
// wrapper. Keys are lowercased cleaned titles.
type Map interface {
	Lookup(originalLower string) (string, bool)
	Apply(originalLower, canonical string) error
	Snapshot() map[string]string
	Len() int
}

// Store holds title corrections backed by a pipe-delimited file. Apply
// persists the full map; concurrent writers are serialized with a file
// lock next to the data file.
type Store struct {
	mu      sync.RWMutex
	path    string
	entries map[string]string
}

var header = []string{"original_title", "canonical_title", "source"}

// Load reads a corrections file. A missing file yields an empty store
// bound to the same path.
func Load(path string) (*Store, error) {
	store := &Store{path: path, entries: make(map[string]string)}

	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return store, nil
		}
		return nil, fmt.Errorf("open corrections %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.Comma = '|'
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse corrections %s: %w", path, err)
	}
	if len(records) == 0 {
		return store, nil
	}

	originalIdx, canonicalIdx := columnIndexes(records[0])
	for _, record := range records[1:] {
		if originalIdx >= len(record) || canonicalIdx >= len(record) {
			continue
		}
		original := strings.ToLower(strings.TrimSpace(record[originalIdx]))
		canonical := strings.TrimSpace(record[canonicalIdx])
		if original == "" || canonical == "" {
			continue
		}
		store.entries[original] = canonical
	}
	return store, nil
}

func columnIndexes(head []string) (int, int) {
	originalIdx, canonicalIdx := 0, 1
	for i, name := range head {
		switch strings.TrimSpace(strings.ToLower(name)) {
		case "original_title":
			originalIdx = i
		case "canonical_title":
			canonicalIdx = i
		}
	}
	return originalIdx, canonicalIdx
}

func (s *Store) Lookup(originalLower string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	canonical, ok := s.entries[originalLower]
	return canonical, ok
}

// Apply records a correction and rewrites the backing file.
func (s *Store) Apply(originalLower, canonical string) error {
	s.mu.Lock()
	s.entries[originalLower] = canonical
	s.mu.Unlock()
	return s.save()
}

// Snapshot returns a copy of the current mappings.
func (s *Store) Snapshot() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]string, len(s.entries))
	for k, v := range s.entries {
		out[k] = v
	}
	return out
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Path returns the backing file location.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) save() error {
	if s.path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("ensure corrections directory: %w", err)
	}

	lock := flock.New(s.path + ".lock")
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("lock corrections %s: %w", s.path, err)
	}
	defer lock.Unlock()

	s.mu.RLock()
	keys := make([]string, 0, len(s.entries))
	for k := range s.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	rows := make([][]string, 0, len(keys))
	for _, k := range keys {
		rows = append(rows, []string{k, s.entries[k], "learned"})
	}
	s.mu.RUnlock()

	tmp := s.path + ".tmp"
	file, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("write corrections %s: %w", s.path, err)
	}

	writer := csv.NewWriter(file)
	writer.Comma = '|'
	if err := writer.Write(header); err != nil {
		file.Close()
		return fmt.Errorf("write corrections header: %w", err)
	}
	if err := writer.WriteAll(rows); err != nil {
		file.Close()
		return fmt.Errorf("write corrections rows: %w", err)
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		file.Close()
		return fmt.Errorf("flush corrections: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("close corrections: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace corrections %s: %w", s.path, err)
	}
	return nil
}

// ReadOnly wraps a store so Apply updates memory without touching disk.
// Scans that must not mutate shared state use this wrapper.
func ReadOnly(store *Store) Map {
	return readOnlyStore{store: store}
}

type readOnlyStore struct {
	store *Store
}

func (r readOnlyStore) Lookup(originalLower string) (string, bool) {
	return r.store.Lookup(originalLower)
}

func (r readOnlyStore) Apply(originalLower, canonical string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.entries[originalLower] = canonical
	return nil
}

func (r readOnlyStore) Snapshot() map[string]string {
	return r.store.Snapshot()
}

func (r readOnlyStore) Len() int {
	return r.store.Len()
}
