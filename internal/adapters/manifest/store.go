// Package manifest records resolved target descriptors for the build executor.
package manifest

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"go.trai.ch/targets/internal/core/domain"
	"go.trai.ch/zerr"
)

// Store implements ports.DescriptorStore using a flat JSON file keyed by output name.
// The file is read on first use.
type Store struct {
	path   string
	mu     sync.RWMutex
	loaded bool
	cache  map[string]domain.TargetDescriptor
}

// NewStore creates a new DescriptorStore backed by the file at the given path.
func NewStore(path string) *Store {
	return &Store{
		path:  filepath.Clean(path),
		cache: make(map[string]domain.TargetDescriptor),
	}
}

// Path returns the manifest location.
func (s *Store) Path() string {
	return s.path
}

// load must be called with the write lock held.
func (s *Store) load() error {
	if s.loaded {
		return nil
	}

	//nolint:gosec // Path is cleaned and provided by trusted caller
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.loaded = true
			return nil
		}
		return s.storeError(domain.ErrStoreReadFailed, "failed to read descriptor manifest", err)
	}

	if len(data) > 0 {
		if err := json.Unmarshal(data, &s.cache); err != nil {
			return s.storeError(domain.ErrStoreReadFailed, "failed to unmarshal descriptor manifest", err)
		}
	}

	s.loaded = true
	return nil
}

// save must be called with the write lock held.
func (s *Store) save() error {
	data, err := json.MarshalIndent(s.cache, "", "  ")
	if err != nil {
		return s.storeError(domain.ErrStoreWriteFailed, "failed to marshal descriptor manifest", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), domain.DirPerm); err != nil {
		return s.storeError(domain.ErrStoreWriteFailed, "failed to create manifest directory", err)
	}

	//nolint:gosec // Path is cleaned and provided by trusted caller
	if err := os.WriteFile(s.path, append(data, '\n'), domain.FilePerm); err != nil {
		return s.storeError(domain.ErrStoreWriteFailed, "failed to write descriptor manifest", err)
	}

	return nil
}

// Get retrieves the descriptor recorded under an output name.
// Reads share the lock once the manifest has been loaded.
func (s *Store) Get(outputName string) (*domain.TargetDescriptor, error) {
	s.mu.RLock()
	if s.loaded {
		desc, ok := s.cache[outputName]
		s.mu.RUnlock()
		return found(desc, ok), nil
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.load(); err != nil {
		return nil, err
	}

	desc, ok := s.cache[outputName]
	return found(desc, ok), nil
}

func found(desc domain.TargetDescriptor, ok bool) *domain.TargetDescriptor {
	if !ok {
		return nil
	}
	desc.Modules = slices.Clone(desc.Modules)
	return &desc
}

// Put records the descriptors and rewrites the manifest.
func (s *Store) Put(descriptors ...domain.TargetDescriptor) error {
	if len(descriptors) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.load(); err != nil {
		return err
	}

	for _, desc := range descriptors {
		s.cache[desc.OutputName] = desc
	}

	return s.save()
}

func (s *Store) storeError(sentinel error, msg string, cause error) error {
	err := zerr.Wrap(sentinel, msg)
	err = zerr.With(err, "path", s.path)
	return zerr.With(err, "reason", cause.Error())
}
