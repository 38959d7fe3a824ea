// Package session provides the file-backed local session store: the Go
// equivalent of the browser-local storage the persisted session record
// originally lived in. One record, one writer, read once at startup.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/well2nest/hospital-system/internal/core/domain"
)

// FileStore persists the session record as a small JSON file.
type FileStore struct {
	path string
}

// NewFileStore creates a store writing to path. The parent directory must
// exist.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// DefaultPath places the record under the user config directory, falling
// back to the working directory when none is resolvable.
func DefaultPath() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "well2nest", "session.json")
	}
	return ".well2nest-session.json"
}

func (s *FileStore) Save(_ context.Context, rec domain.SessionRecord) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode session record: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	if err := os.WriteFile(s.path, raw, 0o600); err != nil {
		return fmt.Errorf("write session record: %w", err)
	}
	return nil
}

// Load returns (nil, nil) when no record has been written. A file that
// exists but does not parse is reported as an error; the auth manager
// treats that as corrupt state and clears it.
func (s *FileStore) Load(_ context.Context) (*domain.SessionRecord, error) {
	raw, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read session record: %w", err)
	}
	var rec domain.SessionRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("decode session record: %w", err)
	}
	return &rec, nil
}

// Clear removes the record. Clearing an absent record is not an error.
func (s *FileStore) Clear(_ context.Context) error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("erase session record: %w", err)
	}
	return nil
}
