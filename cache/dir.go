package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DirStore persists one JSON file per feed name inside a directory.
type DirStore struct {
	dir string
}

// NewDirStore creates the directory if needed.
func NewDirStore(dir string) (*DirStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	return &DirStore{dir: dir}, nil
}

func (s *DirStore) path(name string) string {
	// Feed names come from config, but keep path traversal out regardless.
	name = strings.ReplaceAll(name, string(os.PathSeparator), "_")
	return filepath.Join(s.dir, name+".json")
}

// Get reads and decodes the entry for name. A missing file and an
// undecodable file both report ErrNotFound, so corruption behaves as a
// plain cache miss.
func (s *DirStore) Get(name string) (Entry, error) {
	data, err := os.ReadFile(s.path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return Entry{}, ErrNotFound
		}
		return Entry{}, fmt.Errorf("read cache entry %s: %w", name, err)
	}
	var e Entry
	if err := json.Unmarshal(data, &e); err != nil {
		return Entry{}, ErrNotFound
	}
	return e, nil
}

// Put writes the entry via a temp file and rename so a crashed writer
// never leaves a half-written entry behind.
func (s *DirStore) Put(name string, e Entry) error {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encode cache entry %s: %w", name, err)
	}
	tmp, err := os.CreateTemp(s.dir, name+"-*")
	if err != nil {
		return fmt.Errorf("write cache entry %s: %w", name, err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write cache entry %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write cache entry %s: %w", name, err)
	}
	return os.Rename(tmp.Name(), s.path(name))
}
