package registry

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"
)

const fileVersion = 1

// ErrNotFound is returned by Get for an unknown session name.
var ErrNotFound = errors.New("session not found")

// Store is a durable session registry backed by a single YAML file.
// Mutations are serialized and flushed to disk before returning; reads
// serve the in-memory copy.
type Store struct {
	path string

	mu   sync.RWMutex
	file *File
}

// Open loads the registry at path, creating an empty one if the file does
// not exist yet.
func Open(path string) (*Store, error) {
	s := &Store{path: path, file: &File{Version: fileVersion, Sessions: map[string]*Record{}}}

	data, err := os.ReadFile(path) //nolint:gosec // path is the registry file under the data dir
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("reading registry: %w", err)
	}

	f, err := Parse(data)
	if err != nil {
		return nil, err
	}
	if f.Sessions == nil {
		f.Sessions = map[string]*Record{}
	}
	s.file = f
	return s, nil
}

// Parse parses sessions.yaml content.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing registry YAML: %w", err)
	}
	return &f, nil
}

// Upsert inserts or replaces a record and flushes to disk.
func (s *Store) Upsert(rec *Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.file.Sessions[rec.Name] = rec
	return s.save()
}

// Get returns the record for a session name.
func (s *Store) Get(name string) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.file.Sessions[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	cp := *rec
	return &cp, nil
}

// Delete removes a record and flushes to disk. Deleting an unknown name is
// a no-op.
func (s *Store) Delete(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.file.Sessions[name]; !ok {
		return nil
	}
	delete(s.file.Sessions, name)
	return s.save()
}

// List returns all records sorted by name.
func (s *Store) List() []*Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Record, 0, len(s.file.Sessions))
	for _, rec := range s.file.Sessions {
		cp := *rec
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// save writes the registry file. Callers must hold the write lock.
func (s *Store) save() error {
	data, err := yaml.Marshal(s.file)
	if err != nil {
		return fmt.Errorf("marshaling registry: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("writing registry: %w", err)
	}
	return nil
}
