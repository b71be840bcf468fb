package nickstore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// FileStore reads nicknames from a directory of <uuid>.json documents.
type FileStore struct {
	dir string
}

// NewFileStore creates a file-backed store rooted at dir.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// Nickname implements Store.
func (s *FileStore) Nickname(_ context.Context, id uuid.UUID) (string, error) {
	path := filepath.Join(s.dir, id.String()+".json")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("failed to read nickname file: %w", err)
	}

	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		return "", fmt.Errorf("failed to parse nickname file: %w", err)
	}
	return rec.nickname()
}

// Ping reports whether the store directory is readable.
func (s *FileStore) Ping(_ context.Context) error {
	if _, err := os.Stat(s.dir); err != nil {
		return fmt.Errorf("nickname directory unavailable: %w", err)
	}
	return nil
}
