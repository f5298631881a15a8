package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// FileStore persists the snapshot as one pretty-printed JSON file. It is the
// small-deployment alternative to the document store; the engine cannot tell
// the two apart.
type FileStore struct {
	Path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

// SaveAll writes the snapshot to a temp file and renames it into place, so a
// crash mid-write cannot leave a torn snapshot behind.
func (s *FileStore) SaveAll(_ context.Context, snap *Snapshot) error {
	b, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	tmp := s.Path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(s.Path), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.Path)
}

// LoadAll reads the snapshot file; a missing file means a fresh start.
func (s *FileStore) LoadAll(_ context.Context) (*Snapshot, error) {
	b, err := os.ReadFile(s.Path)
	if os.IsNotExist(err) {
		return Empty(), nil
	}
	if err != nil {
		return nil, err
	}
	snap := Empty()
	if err := json.Unmarshal(b, snap); err != nil {
		return nil, fmt.Errorf("decode snapshot %s: %w", s.Path, err)
	}
	return snap, nil
}
