// Package storage wraps a hackpadfs.FS as a small, thread-safe artifact
// store: named byte blobs read and written under a common root, used to
// persist and reload index snapshots, WAND metadata, and Taily statistics
// files without every caller re-deriving hackpadfs error handling.
package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sync"

	"github.com/hack-pad/hackpadfs"
)

// Store is a directory of named artifacts backed by a hackpadfs.FS. It is
// safe for concurrent use: reads share a read lock, writes take an
// exclusive lock so a reader never observes a half-written file.
type Store struct {
	FS   hackpadfs.FS
	Root string

	mu sync.RWMutex
}

// New returns a Store rooted at root within hfs. root may be empty, in
// which case paths are resolved relative to hfs's own root.
func New(hfs hackpadfs.FS, root string) *Store {
	return &Store{FS: hfs, Root: root}
}

func (s *Store) path(name string) string {
	if s.Root == "" {
		return name
	}
	return path.Join(s.Root, name)
}

// Put writes name's contents, replacing any prior contents in full.
func (s *Store) Put(name string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Root != "" {
		if err := hackpadfs.MkdirAll(s.FS, s.Root, 0o755); err != nil {
			return fmt.Errorf("storage: mkdir %s: %w", s.Root, err)
		}
	}
	if err := hackpadfs.WriteFullFile(s.FS, s.path(name), data, 0o644); err != nil {
		return fmt.Errorf("storage: write %s: %w", name, err)
	}
	return nil
}

// Get reads name's full contents.
func (s *Store) Get(name string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := hackpadfs.ReadFile(s.FS, s.path(name))
	if err != nil {
		return nil, fmt.Errorf("storage: read %s: %w", name, err)
	}
	return data, nil
}

// Exists reports whether name can currently be read.
func (s *Store) Exists(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, err := hackpadfs.Stat(s.FS, s.path(name))
	return err == nil
}

// Remove deletes name. Removing a name that does not exist is not an
// error.
func (s *Store) Remove(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := hackpadfs.Remove(s.FS, s.path(name))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("storage: remove %s: %w", name, err)
	}
	return nil
}
