package store

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/archmap-dev/archmap/pkg/layout"
)

// FileStore keeps one JSON file per project in a directory. It backs the
// CLI, where layouts run across separate processes.
type FileStore struct {
	dir string
}

// NewFileStore creates a file-based store rooted at dir, creating the
// directory if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// Get loads the saved positions of a project. A missing or corrupt file is
// treated as no saved positions.
func (s *FileStore) Get(ctx context.Context, project string) (layout.PositionMap, error) {
	data, err := os.ReadFile(s.path(project))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var positions layout.PositionMap
	if err := json.Unmarshal(data, &positions); err != nil {
		// Corrupt entry: discard rather than fail the layout.
		_ = os.Remove(s.path(project))
		return nil, nil
	}
	return positions, nil
}

// Set replaces the saved positions of a project. The write goes through a
// temp file and rename so readers never observe a partial file.
func (s *FileStore) Set(ctx context.Context, project string, positions layout.PositionMap) error {
	data, err := json.Marshal(positions)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.dir, "positions-*.tmp")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		_ = os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), s.path(project))
}

// Clear discards the saved positions of a project.
func (s *FileStore) Clear(ctx context.Context, project string) error {
	err := os.Remove(s.path(project))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Close does nothing.
func (s *FileStore) Close() error { return nil }

// path maps a project name to its file. Project names are hashed so
// arbitrary names never escape the store directory.
func (s *FileStore) path(project string) string {
	sum := sha256.Sum256([]byte(project))
	return filepath.Join(s.dir, hex.EncodeToString(sum[:16])+".json")
}

var _ PositionStore = (*FileStore)(nil)
