package registry

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/hupe1980/payrouter/core"
)

// Store persists the role to agent-id mapping between process runs.
type Store interface {
	Load() (map[core.Role]string, error)
	Save(ids map[core.Role]string) error
}

// FileStore persists the mapping as a JSON object keyed by role. Saving an
// empty mapping removes the file so a wiped pool leaves no stale state
// behind.
type FileStore struct {
	path string
}

// NewFileStore creates a FileStore writing to the given path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

var _ Store = (*FileStore)(nil)

// Load reads the persisted mapping. A missing file yields an empty mapping.
func (s *FileStore) Load() (map[core.Role]string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return map[core.Role]string{}, nil
		}
		return nil, fmt.Errorf("read agent ids: %w", err)
	}

	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse agent ids: %w", err)
	}

	ids := make(map[core.Role]string, len(raw))
	for role, id := range raw {
		ids[core.Role(role)] = id
	}
	return ids, nil
}

// Save writes the mapping, or removes the file when the mapping is empty.
func (s *FileStore) Save(ids map[core.Role]string) error {
	if len(ids) == 0 {
		if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("remove agent ids: %w", err)
		}
		return nil
	}

	raw := make(map[string]string, len(ids))
	for role, id := range ids {
		raw[string(role)] = id
	}
	data, err := json.MarshalIndent(raw, "", "  ")
	if err != nil {
		return fmt.Errorf("encode agent ids: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write agent ids: %w", err)
	}
	return nil
}
