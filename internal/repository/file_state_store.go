package repository

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// FileStateStore keeps one JSON document per logical key in a state
// directory. Writes go through a temp file and rename so a document is never
// observed half-written.
type FileStateStore struct {
	dir string
}

func NewFileStateStore(dir string) (*FileStateStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create state dir: %w", err)
	}
	return &FileStateStore{dir: dir}, nil
}

func (s *FileStateStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	b, err := os.ReadFile(s.keyPath(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("read state %s: %w", key, err)
	}
	return b, true, nil
}

func (s *FileStateStore) Set(_ context.Context, key string, value []byte) error {
	path := s.keyPath(key)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, value, 0o644); err != nil {
		return fmt.Errorf("write state %s: %w", key, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("commit state %s: %w", key, err)
	}
	return nil
}

func (s *FileStateStore) Delete(_ context.Context, key string) error {
	if err := os.Remove(s.keyPath(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete state %s: %w", key, err)
	}
	return nil
}

func (s *FileStateStore) keyPath(key string) string {
	return filepath.Join(s.dir, key+".json")
}
